package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"SpursScanner/internal/domain"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Football News</title>
    <item>
      <title>Spurs sign new striker</title>
      <link>https://example.com/spurs-sign-new-striker</link>
      <description>&lt;p&gt;Tottenham have &lt;b&gt;completed&lt;/b&gt; a deal.&lt;/p&gt;</description>
      <pubDate>Thu, 05 Jun 2025 11:14:56 GMT</pubDate>
    </item>
    <item>
      <title>Second story</title>
      <link>https://example.com/second</link>
      <description>Plain text description</description>
      <pubDate>Thu, 05 Jun 2025 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Third story</title>
      <link>https://example.com/third</link>
      <description>Another one</description>
    </item>
  </channel>
</rss>`

func TestFetchParsesItems(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), nil)
	source := domain.FeedSource{Name: "BBC Sport", URL: server.URL}

	items, err := fetcher.Fetch(context.Background(), source, 15)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "Spurs sign new striker" {
		t.Fatalf("unexpected title: %s", first.Title)
	}
	if first.Link != "https://example.com/spurs-sign-new-striker" {
		t.Fatalf("unexpected link: %s", first.Link)
	}
	if first.Description != "Tottenham have completed a deal." {
		t.Fatalf("description HTML not stripped: %q", first.Description)
	}
	if first.RawDate != "Thu, 05 Jun 2025 11:14:56 GMT" {
		t.Fatalf("raw date altered: %q", first.RawDate)
	}
	if first.SourceName != "BBC Sport" {
		t.Fatalf("unexpected source name: %s", first.SourceName)
	}

	if items[2].RawDate != "" {
		t.Fatalf("item without pubDate should carry empty raw date, got %q", items[2].RawDate)
	}
}

func TestFetchHonorsItemLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), nil)
	items, err := fetcher.Fetch(context.Background(), domain.FeedSource{Name: "BBC Sport", URL: server.URL}, 2)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected limit of 2 items, got %d", len(items))
	}
}

func TestFetchRejectsBadStatusAndMalformedXML(t *testing.T) {
	t.Parallel()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	fetcher := NewFetcher(failing.Client(), nil)
	if _, err := fetcher.Fetch(context.Background(), domain.FeedSource{Name: "Down", URL: failing.URL}, 15); err == nil {
		t.Fatal("expected error for non-200 status")
	}

	malformed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<rss><channel><item>broken"))
	}))
	defer malformed.Close()

	fetcher = NewFetcher(malformed.Client(), nil)
	if _, err := fetcher.Fetch(context.Background(), domain.FeedSource{Name: "Broken", URL: malformed.URL}, 15); err == nil {
		t.Fatal("expected error for malformed feed document")
	}
}
