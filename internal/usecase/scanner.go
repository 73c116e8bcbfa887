package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"SpursScanner/internal/dates"
	"SpursScanner/internal/domain"
	"SpursScanner/internal/ports"
	"SpursScanner/internal/relevance"
)

// ModeSettings tunes one of the scanner's two operating modes.
type ModeSettings struct {
	ItemsPerFeed int
	Throttle     time.Duration
	ArticleCap   int
}

// ScannerDeps wires all driven adapters into the poll cycle.
type ScannerDeps struct {
	Feeds      []domain.FeedSource
	Fetcher    ports.FeedFetcher
	Filter     *relevance.Filter
	Extractor  ports.ArticleExtractor
	Summarizer ports.Summarizer
	Seen       ports.SeenStore
	Store      ports.ArticleStore
	Logger     *slog.Logger

	Cutoff  time.Time
	Initial ModeSettings
	Regular ModeSettings
}

// Scanner drives one polling cycle across all configured feeds. It starts
// in initial mode when no prior article document existed and switches to
// regular mode, once and irreversibly, after the first cycle that accepts
// at least one article.
type Scanner struct {
	feeds      []domain.FeedSource
	fetcher    ports.FeedFetcher
	filter     *relevance.Filter
	extractor  ports.ArticleExtractor
	summarizer ports.Summarizer
	seen       ports.SeenStore
	store      ports.ArticleStore
	logger     *slog.Logger

	cutoff  time.Time
	initial ModeSettings
	regular ModeSettings

	initialMode bool

	now   func() time.Time
	sleep func(context.Context, time.Duration)
}

// NewScanner constructs the orchestrator. The starting mode is derived from
// whether the article store already has a persisted document.
func NewScanner(deps ScannerDeps) *Scanner {
	s := &Scanner{
		feeds:       deps.Feeds,
		fetcher:     deps.Fetcher,
		filter:      deps.Filter,
		extractor:   deps.Extractor,
		summarizer:  deps.Summarizer,
		seen:        deps.Seen,
		store:       deps.Store,
		logger:      deps.Logger,
		cutoff:      deps.Cutoff,
		initial:     deps.Initial,
		regular:     deps.Regular,
		initialMode: deps.Store != nil && !deps.Store.Exists(),
		now:         time.Now,
		sleep:       ctxSleep,
	}
	return s
}

// InitialMode reports whether the scanner is still in its deep first scan.
func (s *Scanner) InitialMode() bool {
	return s.initialMode
}

// RunCycle polls every configured feed once, in configuration order.
// Feed-level failures are logged and skipped; the cycle itself only fails
// on a persistence error or context cancellation.
func (s *Scanner) RunCycle(ctx context.Context) error {
	mode := s.regular
	if s.initialMode {
		mode = s.initial
	}

	s.info("cycle start", "initial_mode", s.initialMode, "items_per_feed", mode.ItemsPerFeed)

	var newArticles []domain.Article
	for _, feed := range s.feeds {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		items, err := s.fetcher.Fetch(ctx, feed, mode.ItemsPerFeed)
		if err != nil {
			s.warn("feed skipped", "source", feed.Name, "error", err)
			continue
		}

		accepted, err := s.processFeed(ctx, feed, items, mode)
		if err != nil {
			return err
		}
		newArticles = append(newArticles, accepted...)

		s.info("feed done", "source", feed.Name, "accepted", len(accepted))
	}

	if len(newArticles) == 0 {
		s.info("cycle done, nothing new")
		return nil
	}

	total, err := s.store.MergeAndPersist(newArticles, mode.ArticleCap)
	if err != nil {
		return fmt.Errorf("persist articles: %w", err)
	}
	if err := s.seen.Persist(); err != nil {
		return fmt.Errorf("persist seen store: %w", err)
	}

	s.info("cycle done", "new", len(newArticles), "total", total)

	if s.initialMode {
		s.initialMode = false
		s.info("switching to regular scan mode")
	}
	return nil
}

// processFeed applies the per-item gates and enriches accepted items.
func (s *Scanner) processFeed(ctx context.Context, feed domain.FeedSource, items []domain.CandidateItem, mode ModeSettings) ([]domain.Article, error) {
	var accepted []domain.Article
	for _, item := range items {
		if ctx.Err() != nil {
			return accepted, ctx.Err()
		}

		if item.Title == "" || item.Link == "" {
			continue
		}
		if item.RawDate != "" && !dates.OnOrAfter(item.RawDate, s.cutoff) {
			continue
		}
		if !s.filter.IsRelevant(item.Title, item.Description, feed.Name) {
			s.debug("item skipped", "source", feed.Name, "title", item.Title)
			continue
		}
		if s.seen.Contains(item.Link) {
			continue
		}

		accepted = append(accepted, s.buildArticle(ctx, feed, item))
		s.info("item accepted", "source", feed.Name, "title", item.Title)

		s.sleep(ctx, mode.Throttle)
	}
	return accepted, nil
}

// buildArticle runs extraction and summarization and marks the link seen.
func (s *Scanner) buildArticle(ctx context.Context, feed domain.FeedSource, item domain.CandidateItem) domain.Article {
	body, imageURL := s.extractor.Extract(ctx, item.Link)
	summaryText := s.summarizer.Summarize(body)
	foundAt := s.now().Format(time.RFC3339)

	s.seen.Mark(item.Link, item.Title, foundAt)

	return domain.Article{
		Source:         feed.Name,
		SourceHomepage: feed.Homepage,
		Title:          item.Title,
		Summary:        summaryText,
		Link:           item.Link,
		ImageURL:       imageURL,
		PublishedDate:  dates.Display(item.RawDate),
		Chars:          len(summaryText),
		HasFullContent: len(body) > 100,
		ContentLength:  len(body),
		FoundAt:        foundAt,
	}
}

func ctxSleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

func (s *Scanner) info(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Scanner) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *Scanner) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
