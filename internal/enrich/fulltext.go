package enrich

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// FullTextExtractor retrieves the main textual content of an article URL.
type FullTextExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// HTTPExtractor is a goquery-based FullTextExtractor. It strips obvious
// boilerplate and walks a cascade of common main-content selectors before
// falling back to the whole body.
type HTTPExtractor struct {
	client *http.Client
}

// NewHTTPExtractor creates an extractor with a 30 second request timeout.
func NewHTTPExtractor() *HTTPExtractor {
	return &HTTPExtractor{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

var mainContentSelectors = []string{
	"article", "main", ".main-content", ".entry-content", ".post-content",
	".post-body", ".article-body", "[role='main']", ".content", "#content",
}

var multiNewlineRegex = regexp.MustCompile(`\n{3,}`)

// Extract fetches url and returns its cleaned article text.
func (e *HTTPExtractor) Extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "blogscout/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: status code %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	text := ExtractArticleText(doc)
	if text == "" {
		return "", fmt.Errorf("no article text extracted from %s", url)
	}
	return text, nil
}

// ExtractArticleText pulls the main text out of a parsed document. Split
// out of Extract so tests can feed documents directly.
func ExtractArticleText(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, header, aside, form, iframe, noscript, .sidebar, #sidebar, .ad, .advertisement, .popup, .modal, .cookie-banner").Remove()

	var textBuilder strings.Builder
	appendBlocks := func(s *goquery.Selection) {
		s.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, pre").Each(func(_ int, item *goquery.Selection) {
			if t := strings.TrimSpace(item.Text()); t != "" {
				textBuilder.WriteString(t)
				textBuilder.WriteString("\n\n")
			}
		})
	}

	for _, selector := range mainContentSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			appendBlocks(s)
		})
		if textBuilder.Len() > 0 {
			break
		}
	}

	if textBuilder.Len() == 0 {
		appendBlocks(doc.Find("body"))
	}

	cleaned := multiNewlineRegex.ReplaceAllString(textBuilder.String(), "\n\n")
	return strings.TrimSpace(cleaned)
}
