package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "blogscout",
	Short: "blogscout collects and ranks reference material for blog posts",
	Long: `blogscout researches a blog post title: it gathers article and video
candidates from search providers, narrows them down with AI-assisted
relevance ranking, extracts full text and captions for the survivors,
and produces a content summary plus SEO guidelines.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.blogscout.yaml)")
}
