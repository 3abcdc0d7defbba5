package enrich

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse test HTML: %v", err)
	}
	return doc
}

func TestExtractArticleTextPrefersArticleElement(t *testing.T) {
	html := `<html><body>
		<nav><p>navigation junk</p></nav>
		<article><h1>Real Title</h1><p>First paragraph.</p><p>Second paragraph.</p></article>
		<footer><p>footer junk</p></footer>
	</body></html>`

	got := ExtractArticleText(docFrom(t, html))

	if !strings.Contains(got, "First paragraph.") || !strings.Contains(got, "Second paragraph.") {
		t.Errorf("article paragraphs missing from extraction: %q", got)
	}
	if strings.Contains(got, "navigation junk") || strings.Contains(got, "footer junk") {
		t.Errorf("boilerplate leaked into extraction: %q", got)
	}
}

func TestExtractArticleTextStripsScriptsAndAds(t *testing.T) {
	html := `<html><body><article>
		<p>Content here.</p>
		<script>var tracking = true;</script>
		<div class="advertisement"><p>Buy now!</p></div>
	</article></body></html>`

	got := ExtractArticleText(docFrom(t, html))

	if strings.Contains(got, "tracking") || strings.Contains(got, "Buy now!") {
		t.Errorf("scripts or ads leaked into extraction: %q", got)
	}
}

func TestExtractArticleTextBodyFallback(t *testing.T) {
	html := `<html><body><div><p>Plain page paragraph.</p></div></body></html>`

	got := ExtractArticleText(docFrom(t, html))

	if !strings.Contains(got, "Plain page paragraph.") {
		t.Errorf("body fallback missed content: %q", got)
	}
}

func TestExtractArticleTextEmptyDocument(t *testing.T) {
	if got := ExtractArticleText(docFrom(t, "<html><body></body></html>")); got != "" {
		t.Errorf("empty document should yield empty text, got %q", got)
	}
}
