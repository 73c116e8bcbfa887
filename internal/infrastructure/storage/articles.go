package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"SpursScanner/internal/dates"
	"SpursScanner/internal/domain"
	"SpursScanner/internal/ports"
)

// ArticleRepository is the capped, date-sorted collection of accepted
// articles, persisted as a single JSON document and mirrored onto the
// generated page after every merge.
type ArticleRepository struct {
	path     string
	renderer ports.PageRenderer
	logger   *slog.Logger
	now      func() time.Time
}

var _ ports.ArticleStore = (*ArticleRepository)(nil)

type articleDocument struct {
	LastUpdated   string           `json:"last_updated"`
	TotalArticles int              `json:"total_articles"`
	Articles      []domain.Article `json:"articles"`
}

// NewArticleRepository wires the document path with the page renderer.
func NewArticleRepository(path string, renderer ports.PageRenderer, logger *slog.Logger) *ArticleRepository {
	return &ArticleRepository{path: path, renderer: renderer, logger: logger, now: time.Now}
}

// Exists reports whether a persisted document was already written.
func (r *ArticleRepository) Exists() bool {
	_, err := os.Stat(r.path)
	return err == nil
}

// LoadExisting reads the persisted article list. A missing or corrupt
// document yields an empty list.
func (r *ArticleRepository) LoadExisting() []domain.Article {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil
	}

	var doc articleDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		if r.logger != nil {
			r.logger.Warn("article store unreadable, starting empty", "path", r.path, "error", err)
		}
		return nil
	}
	return doc.Articles
}

// MergeAndPersist folds newArticles into the persisted set: new entries
// supersede existing ones with the same link, the union is sorted
// descending by best-available date and truncated to limit before being
// written back and rendered. Returns the persisted count.
func (r *ArticleRepository) MergeAndPersist(newArticles []domain.Article, limit int) (int, error) {
	existing := r.LoadExisting()

	merged := make([]domain.Article, 0, len(newArticles)+len(existing))
	seenLinks := map[string]struct{}{}
	for _, article := range append(append([]domain.Article{}, newArticles...), existing...) {
		if _, ok := seenLinks[article.Link]; ok {
			continue
		}
		seenLinks[article.Link] = struct{}{}
		merged = append(merged, article)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return sortDate(merged[i]).After(sortDate(merged[j]))
	})

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}

	updatedAt := r.now()
	doc := articleDocument{
		LastUpdated:   updatedAt.Format(time.RFC3339),
		TotalArticles: len(merged),
		Articles:      merged,
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshal article store: %w", err)
	}
	if err := os.WriteFile(r.path, raw, 0o644); err != nil {
		return 0, fmt.Errorf("write article store: %w", err)
	}

	if r.renderer != nil {
		if err := r.renderer.Render(merged, updatedAt); err != nil {
			return 0, fmt.Errorf("render page: %w", err)
		}
	}

	return len(merged), nil
}

// sortDate derives the ordering key: the display-formatted published date
// when parseable, else the discovery timestamp, else the zero time so the
// article sorts last.
func sortDate(article domain.Article) time.Time {
	if article.PublishedDate != "" {
		if t, err := time.Parse(dates.DisplayLayout, article.PublishedDate); err == nil {
			return t
		}
	}
	if article.FoundAt != "" {
		if t, err := time.Parse(time.RFC3339, article.FoundAt); err == nil {
			return t
		}
	}
	return time.Time{}
}
