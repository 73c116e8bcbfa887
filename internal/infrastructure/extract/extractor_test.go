package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}

func TestFindImagePrefersOpenGraph(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `
	<html><head>
	  <meta property="og:image" content="https://cdn.example.com/hero.jpg">
	  <meta name="twitter:image" content="https://cdn.example.com/twitter.png">
	</head><body>
	  <article><img src="https://cdn.example.com/inline.jpg"></article>
	</body></html>`)

	got := findImage(doc, "https://example.com/story")
	if got != "https://cdn.example.com/hero.jpg" {
		t.Fatalf("expected og:image to win, got %s", got)
	}
}

func TestFindImageSkipsImplausibleCandidates(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `
	<html><head>
	  <meta property="og:image" content="https://cdn.example.com/site-logo.png">
	</head><body>
	  <div class="featured-image"><img src="https://cdn.example.com/match.webp"></div>
	</body></html>`)

	got := findImage(doc, "https://example.com/story")
	if got != "https://cdn.example.com/match.webp" {
		t.Fatalf("expected logo to be skipped, got %s", got)
	}
}

func TestFindImageResolvesRelativeURLs(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `
	<html><body>
	  <div class="post-thumbnail"><img data-src="/images/thumb.jpeg"></div>
	</body></html>`)

	got := findImage(doc, "https://example.com/news/story")
	if got != "https://example.com/images/thumb.jpeg" {
		t.Fatalf("relative URL not resolved: %s", got)
	}
}

func TestFindImageRejectsNonImageExtensions(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `
	<html><head>
	  <meta property="og:image" content="https://cdn.example.com/preview.svg">
	</head></html>`)

	if got := findImage(doc, "https://example.com/story"); got != "" {
		t.Fatalf("expected no image, got %s", got)
	}
}

func TestFindTextPrefersSpecificContainer(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `
	<html><body>
	  <div class="entry-content">
	    <p>Tottenham completed the move late on Tuesday night after weeks of talks.</p>
	    <p>The striker joins on a five year contract with an option for a sixth season.</p>
	  </div>
	  <p>Unrelated sidebar paragraph that should not be picked while the container works.</p>
	</body></html>`)

	got := findText(doc)
	if !strings.HasPrefix(got, "Tottenham completed the move") {
		t.Fatalf("expected entry-content text first, got %q", got)
	}
	if strings.Contains(got, "sidebar") {
		t.Fatalf("generic paragraphs leaked into container result: %q", got)
	}
}

func TestFindTextFallsBackToGenericParagraphs(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `
	<html><body>
	  <p>Short.</p>
	  <p>A long enough opening paragraph about the match that clears the lower threshold.</p>
	  <p>Another paragraph describing the second half in reasonable detail for readers.</p>
	</body></html>`)

	got := findText(doc)
	if !strings.Contains(got, "opening paragraph") || !strings.Contains(got, "second half") {
		t.Fatalf("fallback scan missed paragraphs: %q", got)
	}
	if strings.Contains(got, "Short.") {
		t.Fatalf("sub-threshold fragment kept: %q", got)
	}
}

func TestExtractEndToEnd(t *testing.T) {
	t.Parallel()

	page := `
	<html><head>
	  <meta property="og:image" content="/media/hero.jpg">
	</head><body>
	  <nav><p>Navigation links that are long enough to pass thresholds easily here.</p></nav>
	  <article>
	    <p>Tottenham   have completed the signing of a new striker from Serie A.</p>
	    <p>The club confirmed the deal on Tuesday with the player set for a medical.</p>
	  </article>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client(), nil)
	body, imageURL := extractor.Extract(context.Background(), server.URL+"/story")

	if !strings.Contains(body, "Tottenham have completed the signing") {
		t.Fatalf("body missing article text: %q", body)
	}
	if strings.Contains(body, "Navigation") {
		t.Fatalf("nav content not removed: %q", body)
	}
	if strings.Contains(body, "  ") {
		t.Fatalf("whitespace not collapsed: %q", body)
	}
	if imageURL != server.URL+"/media/hero.jpg" {
		t.Fatalf("unexpected image URL: %s", imageURL)
	}
}

func TestExtractFailureDegradesToEmpty(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client(), nil)
	body, imageURL := extractor.Extract(context.Background(), server.URL+"/missing")
	if body != "" || imageURL != "" {
		t.Fatalf("expected empty results on fetch failure, got %q / %q", body, imageURL)
	}
}
