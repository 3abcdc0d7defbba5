package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"blogscout/internal/config"
	"blogscout/internal/enrich"
	"blogscout/internal/insights"
	"blogscout/internal/llm"
	"blogscout/internal/pipeline"
	"blogscout/internal/rank"
	"blogscout/internal/search"
	"blogscout/internal/video"
)

var (
	collectTitle       string
	collectKeyword     string
	collectMainKeyword string
	collectContentType string
	collectMock        bool
	collectJSON        bool
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run a collection for a blog post title",
	Long: `Collect gathers article and video candidates for the given title,
selects the most relevant subset with the reasoning service, enriches
the survivors with full text and captions, and prints the aggregated
result. With --mock all providers are replaced by offline stand-ins.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectTitle, "title", "", "target blog post title (required)")
	collectCmd.Flags().StringVar(&collectKeyword, "keyword", "", "search keyword (defaults to the title)")
	collectCmd.Flags().StringVar(&collectMainKeyword, "main-keyword", "", "main keyword for the secondary article search")
	collectCmd.Flags().StringVar(&collectContentType, "content-type", "", "content type hint (e.g. tutorial, comparison)")
	collectCmd.Flags().BoolVar(&collectMock, "mock", false, "use offline mock providers, no API keys needed")
	collectCmd.Flags().BoolVar(&collectJSON, "json", false, "print the full result as JSON")
	_ = collectCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	keyword := collectKeyword
	if keyword == "" {
		keyword = collectTitle
	}

	var completer llm.Completer
	var articles search.Provider
	var videos video.Provider

	if collectMock {
		// Offline run: mock pools and an unavailable reasoning service,
		// exercising the deterministic fallback paths end to end.
		completer = &llm.MockCompleter{Err: errors.New("reasoning service disabled in mock mode")}
		articles = search.NewMockProvider()
		videos = video.NewMockProvider()
	} else {
		client, err := llm.NewClient(ctx, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model)
		if err != nil {
			return err
		}
		defer client.Close()
		completer = client

		articles, err = search.NewProvider(search.ProviderType(cfg.Search.Provider), map[string]string{
			"api_key": cfg.Search.SerpAPI.APIKey,
		})
		if err != nil {
			return err
		}

		videos, err = video.NewProvider(ctx, video.ProviderType(cfg.Video.Provider), map[string]string{
			"api_key": cfg.Video.YouTube.APIKey,
		}, nil)
		if err != nil {
			return err
		}
	}

	delay, err := time.ParseDuration(cfg.Enrich.SummaryDelay)
	if err != nil {
		delay = 2 * time.Second
	}

	sequencer := enrich.NewSequencer(
		enrich.NewHTTPExtractor(),
		enrich.NewTimedTextExtractor(cfg.Enrich.CaptionLanguage),
		completer,
		enrich.NewFixedDelayLimiter(delay),
		cfg.Enrich.ArticleLimit,
	)

	p := pipeline.New(
		articles,
		videos,
		rank.NewReranker(completer),
		sequencer,
		insights.NewGenerator(completer),
		completer,
		pipeline.Config{ArticleQuota: cfg.Search.Quota, VideoQuota: cfg.Video.Quota},
	)

	renderer := newProgressRenderer(os.Stdout)
	result, err := p.Run(ctx, pipeline.Request{
		Title:         collectTitle,
		SearchKeyword: keyword,
		MainKeyword:   collectMainKeyword,
		ContentType:   collectContentType,
		Sink:          renderer,
	})
	if err != nil {
		return err
	}

	if collectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printSummary(result)
	return nil
}

func printSummary(result *pipeline.Result) {
	fmt.Println()
	fmt.Println(headingStyle.Render("Collection result"))
	fmt.Printf("  run:      %s\n", result.RunID)
	fmt.Printf("  sources:  %d articles, %d videos (quality: %s)\n",
		result.ArticleCount, result.VideoCount, result.Quality)
	fmt.Printf("  elapsed:  %s\n", result.Elapsed.Round(time.Millisecond))
	if result.FallbackSelection {
		fmt.Println("  " + warnStyle.Render("selection used the positional fallback (AI analysis unavailable)"))
	}

	if len(result.SelectedArticles) > 0 {
		fmt.Println()
		fmt.Println(headingStyle.Render("Selected articles"))
		for _, a := range result.SelectedArticles {
			fmt.Printf("  %2d. %s\n      %s\n", a.Rank, a.Title, dimStyle.Render(a.URL))
		}
	}
	if len(result.SelectedVideos) > 0 {
		fmt.Println()
		fmt.Println(headingStyle.Render("Selected videos"))
		for _, v := range result.SelectedVideos {
			fmt.Printf("   - %s (%s)\n      %s\n", v.Title, v.ChannelName, dimStyle.Render(v.URL))
		}
	}
	if result.ContentSummary != "" {
		fmt.Println()
		fmt.Println(headingStyle.Render("Content summary"))
		fmt.Println("  " + result.ContentSummary)
	}

	g := result.SEOGuideline
	fmt.Println()
	fmt.Println(headingStyle.Render("SEO guideline"))
	fmt.Printf("  words: %d-%d, headings: %d, tone: %s\n", g.MinWords, g.MaxWords, g.HeadingCount, g.Tone)
	if len(g.Keywords) > 0 {
		fmt.Printf("  keywords: %v\n", g.Keywords)
	}
}
