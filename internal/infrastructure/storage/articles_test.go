package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"SpursScanner/internal/dates"
	"SpursScanner/internal/domain"
)

type recordingRenderer struct {
	calls     int
	lastCount int
}

func (r *recordingRenderer) Render(articles []domain.Article, _ time.Time) error {
	r.calls++
	r.lastCount = len(articles)
	return nil
}

func testArticle(i int, published time.Time) domain.Article {
	return domain.Article{
		Source:        "BBC Sport",
		Title:         fmt.Sprintf("Story %d", i),
		Link:          fmt.Sprintf("https://example.com/story-%d", i),
		Summary:       "Summary.",
		PublishedDate: published.Format(dates.DisplayLayout),
		FoundAt:       published.Format(time.RFC3339),
	}
}

func TestMergeDeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	renderer := &recordingRenderer{}
	repo := NewArticleRepository(filepath.Join(t.TempDir(), "articles_data.json"), renderer, nil)

	base := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	existing := make([]domain.Article, 0, 60)
	for i := 0; i < 60; i++ {
		existing = append(existing, testArticle(i, base.Add(-time.Duration(i)*time.Hour)))
	}
	if _, err := repo.MergeAndPersist(existing, 100); err != nil {
		t.Fatalf("seed merge: %v", err)
	}

	// Five new articles, two sharing links with existing ones.
	newer := base.Add(time.Hour)
	incoming := []domain.Article{
		testArticle(100, newer),
		testArticle(101, newer.Add(time.Minute)),
		testArticle(102, newer.Add(2*time.Minute)),
		testArticle(0, newer.Add(3*time.Minute)),
		testArticle(1, newer.Add(4*time.Minute)),
	}
	incoming[3].Title = "Story 0 updated"

	total, err := repo.MergeAndPersist(incoming, 100)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if total != 63 {
		t.Fatalf("expected 63 unique links, got %d", total)
	}

	persisted := repo.LoadExisting()
	links := map[string]bool{}
	for _, article := range persisted {
		if links[article.Link] {
			t.Fatalf("duplicate link persisted: %s", article.Link)
		}
		links[article.Link] = true
	}

	for i := 1; i < len(persisted); i++ {
		if sortDate(persisted[i]).After(sortDate(persisted[i-1])) {
			t.Fatalf("articles not sorted descending at index %d", i)
		}
	}

	// The new entry superseded the existing one for the shared link.
	for _, article := range persisted {
		if article.Link == "https://example.com/story-0" && article.Title != "Story 0 updated" {
			t.Fatalf("new article did not supersede existing: %s", article.Title)
		}
	}

	if renderer.calls != 2 || renderer.lastCount != 63 {
		t.Fatalf("renderer not invoked with merged list: calls=%d last=%d", renderer.calls, renderer.lastCount)
	}
}

func TestMergeAppliesCap(t *testing.T) {
	t.Parallel()

	repo := NewArticleRepository(filepath.Join(t.TempDir(), "articles_data.json"), nil, nil)

	base := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	articles := make([]domain.Article, 0, 60)
	for i := 0; i < 60; i++ {
		articles = append(articles, testArticle(i, base.Add(-time.Duration(i)*time.Hour)))
	}

	total, err := repo.MergeAndPersist(articles, 50)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if total != 50 {
		t.Fatalf("expected cap of 50, got %d", total)
	}

	persisted := repo.LoadExisting()
	if len(persisted) != 50 {
		t.Fatalf("expected 50 persisted, got %d", len(persisted))
	}
	// Newest kept, oldest dropped.
	if persisted[0].Link != "https://example.com/story-0" {
		t.Fatalf("expected newest first, got %s", persisted[0].Link)
	}
	for _, article := range persisted {
		if article.Link == "https://example.com/story-59" {
			t.Fatal("oldest article should have fallen outside the cap")
		}
	}
}

func TestMergeIdempotentWithNoNewArticles(t *testing.T) {
	t.Parallel()

	repo := NewArticleRepository(filepath.Join(t.TempDir(), "articles_data.json"), nil, nil)

	base := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	seed := []domain.Article{testArticle(1, base), testArticle(2, base.Add(-time.Hour))}
	if _, err := repo.MergeAndPersist(seed, 50); err != nil {
		t.Fatalf("seed merge: %v", err)
	}
	before := repo.LoadExisting()

	total, err := repo.MergeAndPersist(nil, 50)
	if err != nil {
		t.Fatalf("empty merge: %v", err)
	}
	if total != len(before) {
		t.Fatalf("size changed on empty merge: %d -> %d", len(before), total)
	}

	after := repo.LoadExisting()
	for i := range before {
		if before[i].Link != after[i].Link {
			t.Fatalf("order changed on empty merge at %d: %s -> %s", i, before[i].Link, after[i].Link)
		}
	}
}

func TestUnknownDatesSortLast(t *testing.T) {
	t.Parallel()

	repo := NewArticleRepository(filepath.Join(t.TempDir(), "articles_data.json"), nil, nil)

	dated := testArticle(1, time.Date(2025, time.June, 5, 11, 14, 0, 0, time.UTC))
	undated := domain.Article{Title: "No dates at all", Link: "https://example.com/undated"}

	if _, err := repo.MergeAndPersist([]domain.Article{undated, dated}, 50); err != nil {
		t.Fatalf("merge: %v", err)
	}

	persisted := repo.LoadExisting()
	if len(persisted) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(persisted))
	}
	if persisted[1].Link != "https://example.com/undated" {
		t.Fatal("article without any parseable date must sort last")
	}
}

func TestExists(t *testing.T) {
	t.Parallel()

	repo := NewArticleRepository(filepath.Join(t.TempDir(), "articles_data.json"), nil, nil)
	if repo.Exists() {
		t.Fatal("store should not exist before first persist")
	}
	if _, err := repo.MergeAndPersist([]domain.Article{testArticle(1, time.Now())}, 50); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !repo.Exists() {
		t.Fatal("store should exist after persist")
	}
}
