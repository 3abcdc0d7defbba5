package enrich

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ErrNoCaptions reports that a video legitimately has no caption track.
// This is not an extraction failure; the sequencer records a sentinel
// explanation instead.
var ErrNoCaptions = errors.New("no captions available")

// CaptionExtractor retrieves the caption text for a video ID.
type CaptionExtractor interface {
	Extract(ctx context.Context, videoID string) (string, error)
}

// TimedTextExtractor fetches captions from YouTube's timedtext endpoint,
// which serves auto-generated English tracks without an API key.
type TimedTextExtractor struct {
	client   *http.Client
	endpoint string
	language string
}

// NewTimedTextExtractor creates a caption extractor for lang (empty means
// English).
func NewTimedTextExtractor(lang string) *TimedTextExtractor {
	if lang == "" {
		lang = "en"
	}
	return &TimedTextExtractor{
		client:   &http.Client{Timeout: 20 * time.Second},
		endpoint: "https://video.google.com/timedtext",
		language: lang,
	}
}

// timedTextDoc mirrors the timedtext XML response.
type timedTextDoc struct {
	Texts []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Value string  `xml:",chardata"`
	} `xml:"text"`
}

// Extract fetches and cleans the caption track for videoID. A video
// without any caption track yields ErrNoCaptions.
func (e *TimedTextExtractor) Extract(ctx context.Context, videoID string) (string, error) {
	params := url.Values{}
	params.Set("lang", e.language)
	params.Set("v", videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create caption request for %s: %w", videoID, err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch captions for %s: %w", videoID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNoCaptions
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caption request for %s returned status %d", videoID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read caption response for %s: %w", videoID, err)
	}
	// The endpoint answers 200 with an empty body when no track exists.
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", ErrNoCaptions
	}

	var doc timedTextDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("failed to parse captions for %s: %w", videoID, err)
	}
	if len(doc.Texts) == 0 {
		return "", ErrNoCaptions
	}

	var lines []string
	for _, t := range doc.Texts {
		if v := strings.TrimSpace(html.UnescapeString(t.Value)); v != "" {
			lines = append(lines, v)
		}
	}
	return CleanCaptionText(strings.Join(lines, " ")), nil
}

var (
	timestampRegex = regexp.MustCompile(`\[\d{2}:\d{2}(?::\d{2})?\]`)
	spaceRegex     = regexp.MustCompile(`\s+`)
)

// CleanCaptionText strips inline timestamps and normalizes whitespace so
// the transcript reads as continuous prose.
func CleanCaptionText(s string) string {
	s = timestampRegex.ReplaceAllString(s, "")
	s = spaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/shorts/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([a-zA-Z0-9_-]{11})`),
}

// VideoIDFromURL extracts the video ID from the common YouTube URL forms
// (watch, youtu.be, embed, shorts).
func VideoIDFromURL(videoURL string) (string, error) {
	for _, re := range videoIDPatterns {
		if matches := re.FindStringSubmatch(videoURL); len(matches) > 1 {
			return matches[1], nil
		}
	}
	return "", fmt.Errorf("could not extract video ID from URL: %s", videoURL)
}
