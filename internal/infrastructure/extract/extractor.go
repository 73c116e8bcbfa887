// Package extract derives cleaned body text and a representative image
// from a full article page. Discovery runs ordered strategy chains so the
// priority of each selector stays auditable and testable on its own.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"SpursScanner/internal/ports"
)

const (
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	// Paragraph fragments shorter than these are treated as furniture.
	minFragmentLen = 20
	minFallbackLen = 15
	minBodyLen     = 100
)

var whitespaceExpr = regexp.MustCompile(`\s+`)

// imageStrategy is one candidate location for the article image, tried in
// declaration order.
type imageStrategy struct {
	selector string
	attrs    []string
}

var imageStrategies = []imageStrategy{
	{selector: `meta[property="og:image"]`, attrs: []string{"content"}},
	{selector: `meta[name="twitter:image"]`, attrs: []string{"content"}},
	{selector: `.article-image img`, attrs: []string{"src", "data-src"}},
	{selector: `.featured-image img`, attrs: []string{"src", "data-src"}},
	{selector: `.post-thumbnail img`, attrs: []string{"src", "data-src"}},
	{selector: `article img:first-of-type`, attrs: []string{"src", "data-src"}},
}

// textSelectors name likely article body containers, most specific first.
var textSelectors = []string{
	".entry-content p",
	".article-body p",
	".story-body p",
	".content p",
	"article p",
	"main p",
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

var skipPatterns = []string{"placeholder", "default", "logo", "avatar", "icon"}

// Extractor fetches article pages and scrapes body text and images.
type Extractor struct {
	client *http.Client
	logger *slog.Logger
}

var _ ports.ArticleExtractor = (*Extractor)(nil)

// NewExtractor wires an HTTP client; a nil client gets a 15s timeout default.
func NewExtractor(client *http.Client, logger *slog.Logger) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Extractor{client: client, logger: logger}
}

// Extract fetches pageURL and returns the cleaned article text and an image
// URL, either of which may be empty. Any failure degrades to empty results:
// the article loses its full content but is never aborted.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (string, string) {
	doc, err := e.fetchDocument(ctx, pageURL)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("article fetch failed", "url", pageURL, "error", err)
		}
		return "", ""
	}

	imageURL := findImage(doc, pageURL)

	doc.Find("script, style, nav, header, footer").Remove()
	body := normalizeWhitespace(findText(doc))

	if e.logger != nil {
		e.logger.Debug("article extracted", "url", pageURL, "chars", len(body), "image", imageURL != "")
	}
	return body, imageURL
}

func (e *Extractor) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return doc, nil
}

// findImage walks the strategy chain and returns the first candidate URL
// that passes the plausibility check, resolved against the page URL.
func findImage(doc *goquery.Document, pageURL string) string {
	for _, strategy := range imageStrategies {
		element := doc.Find(strategy.selector).First()
		if element.Length() == 0 {
			continue
		}

		var candidate string
		for _, attr := range strategy.attrs {
			if value, ok := element.Attr(attr); ok && value != "" {
				candidate = value
				break
			}
		}
		if candidate == "" || !plausibleImageURL(candidate) {
			continue
		}
		return absoluteURL(candidate, pageURL)
	}
	return ""
}

// plausibleImageURL requires an image file extension and rejects common
// placeholder, logo, avatar, and icon addresses.
func plausibleImageURL(candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, pattern := range skipPatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}

func absoluteURL(candidate, pageURL string) string {
	if strings.HasPrefix(candidate, "http") {
		return candidate
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return candidate
	}
	ref, err := url.Parse(candidate)
	if err != nil {
		return candidate
	}
	return base.ResolveReference(ref).String()
}

// findText tries each content selector in turn; the first one yielding
// fragments longer than minFragmentLen wins. When the result is still too
// short, every paragraph above a lower threshold is scanned instead.
func findText(doc *goquery.Document) string {
	var body string
	for _, selector := range textSelectors {
		selection := doc.Find(selector)
		if selection.Length() == 0 {
			continue
		}

		parts := collectFragments(selection, minFragmentLen)
		if len(parts) > 0 {
			body = strings.Join(parts, " ")
			break
		}
	}

	if len(body) < minBodyLen {
		parts := collectFragments(doc.Find("p"), minFallbackLen)
		body = strings.Join(parts, " ")
	}
	return body
}

func collectFragments(selection *goquery.Selection, minLen int) []string {
	var parts []string
	selection.Each(func(_ int, fragment *goquery.Selection) {
		text := strings.TrimSpace(fragment.Text())
		if len(text) > minLen {
			parts = append(parts, text)
		}
	})
	return parts
}

func normalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceExpr.ReplaceAllString(text, " "))
}
