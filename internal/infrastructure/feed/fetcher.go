// Package feed retrieves configured RSS/Atom documents and maps their
// entries to candidate items for the poll cycle.
package feed

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"SpursScanner/internal/domain"
	"SpursScanner/internal/ports"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Fetcher downloads feed documents over HTTP and parses them with gofeed.
// Descriptions are stripped of embedded HTML before filtering sees them.
type Fetcher struct {
	client    *http.Client
	parser    *gofeed.Parser
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

var _ ports.FeedFetcher = (*Fetcher)(nil)

// NewFetcher wires an HTTP client; a nil client gets a 15s timeout default.
func NewFetcher(client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Fetcher{
		client:    client,
		parser:    gofeed.NewParser(),
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// Fetch downloads and parses source's feed, returning up to limit items in
// feed order. Network failures, bad statuses, and malformed documents all
// surface as errors for the caller to treat as a feed-level skip.
func (f *Fetcher) Fetch(ctx context.Context, source domain.FeedSource, limit int) ([]domain.CandidateItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s returned %s", source.Name, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}

	parsed, err := f.parser.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", source.Name, err)
	}

	items := parsed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	candidates := make([]domain.CandidateItem, 0, len(items))
	for _, item := range items {
		candidates = append(candidates, domain.CandidateItem{
			Title:       strings.TrimSpace(item.Title),
			Link:        strings.TrimSpace(item.Link),
			Description: f.stripHTML(item.Description),
			RawDate:     rawDate(item),
			SourceName:  source.Name,
		})
	}

	if f.logger != nil {
		f.logger.Debug("feed fetched", "source", source.Name, "items", len(candidates))
	}
	return candidates, nil
}

// stripHTML drops markup from HTML-bearing descriptions, keeping text only.
func (f *Fetcher) stripHTML(text string) string {
	return strings.TrimSpace(html.UnescapeString(f.sanitizer.Sanitize(text)))
}

// rawDate keeps the textual publish date untouched; normalization happens
// downstream where the ordering policy lives.
func rawDate(item *gofeed.Item) string {
	if item.Published != "" {
		return item.Published
	}
	return item.Updated
}
