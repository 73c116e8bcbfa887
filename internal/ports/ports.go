package ports

import (
	"context"
	"time"

	"SpursScanner/internal/domain"
)

// FeedFetcher pulls and parses one configured feed, returning at most limit
// candidate items in feed order.
type FeedFetcher interface {
	Fetch(ctx context.Context, source domain.FeedSource, limit int) ([]domain.CandidateItem, error)
}

// ArticleExtractor retrieves a full article page and derives its cleaned
// body text and a representative image URL. Failures degrade to empty
// results rather than errors: a missing body downgrades the article, it
// never aborts the item.
type ArticleExtractor interface {
	Extract(ctx context.Context, pageURL string) (body string, imageURL string)
}

// Summarizer condenses full article text into a short summary.
type Summarizer interface {
	Summarize(fullText string) string
}

// SeenStore is the durable set of previously accepted article links.
type SeenStore interface {
	Contains(link string) bool
	Mark(link, title, firstSeen string)
	Persist() error
}

// ArticleStore merges newly accepted articles into the capped, sorted
// persisted collection.
type ArticleStore interface {
	Exists() bool
	MergeAndPersist(newArticles []domain.Article, limit int) (int, error)
}

// PageRenderer produces the externally served page from the final article list.
type PageRenderer interface {
	Render(articles []domain.Article, lastUpdated time.Time) error
}

// Scheduler controls when poll cycles execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
