package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"blogscout/internal/pipeline"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	runStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// progressRenderer prints one line per stage transition. It implements
// pipeline.ProgressSink by diffing each snapshot against the previous
// one, so repeated per-item updates of a running stage refresh in place
// without flooding the output.
type progressRenderer struct {
	out  io.Writer
	last map[pipeline.Stage]pipeline.StageStatus
}

func newProgressRenderer(out io.Writer) *progressRenderer {
	return &progressRenderer{
		out:  out,
		last: make(map[pipeline.Stage]pipeline.StageStatus),
	}
}

// OnUpdate renders the transitions contained in a snapshot.
func (r *progressRenderer) OnUpdate(stages []pipeline.StageStatus) {
	for _, s := range stages {
		prev, seen := r.last[s.Stage]
		if seen && prev == s {
			continue
		}
		r.last[s.Stage] = s

		switch s.State {
		case pipeline.StageRunning:
			if s.Message != "" {
				fmt.Fprintf(r.out, "%s %s %s\n", runStyle.Render("▸"), s.Stage, dimStyle.Render(s.Message))
			} else {
				fmt.Fprintf(r.out, "%s %s\n", runStyle.Render("▸"), s.Stage)
			}
		case pipeline.StageCompleted:
			if s.Message != "" {
				fmt.Fprintf(r.out, "%s %s %s\n", doneStyle.Render("✓"), s.Stage, dimStyle.Render(s.Message))
			} else {
				fmt.Fprintf(r.out, "%s %s\n", doneStyle.Render("✓"), s.Stage)
			}
		case pipeline.StageError:
			fmt.Fprintf(r.out, "%s %s %s\n", errStyle.Render("✗"), s.Stage, s.Message)
		}
	}
}
