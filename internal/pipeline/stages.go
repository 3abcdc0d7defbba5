package pipeline

// Stage names one independently progress-tracked step of a collection
// run. The nine stages always execute in order; none is skipped, even
// when its input is empty.
type Stage string

const (
	StageKeywordExpansion  Stage = "keyword_expansion"
	StageArticleSearch     Stage = "article_search"
	StageVideoSearch       Stage = "video_search"
	StageVideoThinning     Stage = "video_thinning"
	StageAISelection       Stage = "ai_selection"
	StageVideoEnrichment   Stage = "video_enrichment"
	StageArticleEnrichment Stage = "article_enrichment"
	StageContentSummary    Stage = "content_summary"
	StageSEOInsight        Stage = "seo_insight"
)

// StageOrder is the fixed execution order of a run.
var StageOrder = []Stage{
	StageKeywordExpansion,
	StageArticleSearch,
	StageVideoSearch,
	StageVideoThinning,
	StageAISelection,
	StageVideoEnrichment,
	StageArticleEnrichment,
	StageContentSummary,
	StageSEOInsight,
}

// StageState is the lifecycle state of a stage.
type StageState string

const (
	StagePending   StageState = "pending"
	StageRunning   StageState = "running"
	StageCompleted StageState = "completed"
	StageError     StageState = "error"
)

// StageStatus is one entry of the progress vector. Snapshots handed to a
// ProgressSink are copies; consumers never hold a reference into
// pipeline-internal state.
type StageStatus struct {
	Stage   Stage      `json:"stage"`
	State   StageState `json:"state"`
	Message string     `json:"message,omitempty"`
}

// ProgressSink receives a fresh snapshot of all stage statuses after
// every transition and, within enrichment stages, after every item. It
// is a fire-and-forget push notification.
type ProgressSink interface {
	OnUpdate(stages []StageStatus)
}

// ProgressFunc adapts a plain function to the ProgressSink interface.
type ProgressFunc func(stages []StageStatus)

// OnUpdate calls f.
func (f ProgressFunc) OnUpdate(stages []StageStatus) {
	f(stages)
}

// tracker owns the progress vector for one run. It is not safe for
// concurrent use; stages execute strictly one after another.
type tracker struct {
	statuses []StageStatus
	index    map[Stage]int
	sink     ProgressSink
}

func newTracker(sink ProgressSink) *tracker {
	t := &tracker{
		statuses: make([]StageStatus, len(StageOrder)),
		index:    make(map[Stage]int, len(StageOrder)),
		sink:     sink,
	}
	for i, stage := range StageOrder {
		t.statuses[i] = StageStatus{Stage: stage, State: StagePending}
		t.index[stage] = i
	}
	return t
}

func (t *tracker) start(stage Stage) {
	t.set(stage, StageRunning, "")
}

func (t *tracker) complete(stage Stage, message string) {
	t.set(stage, StageCompleted, message)
}

func (t *tracker) fail(stage Stage, err error) {
	t.set(stage, StageError, err.Error())
}

// progress updates the message of a running stage, for per-item updates
// inside enrichment.
func (t *tracker) progress(stage Stage, message string) {
	t.set(stage, StageRunning, message)
}

func (t *tracker) set(stage Stage, state StageState, message string) {
	i := t.index[stage]
	t.statuses[i].State = state
	t.statuses[i].Message = message
	t.notify()
}

func (t *tracker) notify() {
	if t.sink != nil {
		t.sink.OnUpdate(t.snapshot())
	}
}

func (t *tracker) snapshot() []StageStatus {
	out := make([]StageStatus, len(t.statuses))
	copy(out, t.statuses)
	return out
}
