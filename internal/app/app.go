package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"SpursScanner/internal/config"
	"SpursScanner/internal/domain"
	"SpursScanner/internal/infrastructure/extract"
	"SpursScanner/internal/infrastructure/feed"
	"SpursScanner/internal/infrastructure/page"
	"SpursScanner/internal/infrastructure/scheduler"
	"SpursScanner/internal/infrastructure/storage"
	"SpursScanner/internal/logging"
	"SpursScanner/internal/relevance"
	"SpursScanner/internal/summary"
	"SpursScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	renderer *page.Renderer
	scanner  *usecase.Scanner
	runner   *usecase.Runner
	firstRun bool
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	httpClient := &http.Client{Timeout: cfg.Scanner.FetchTimeoutDuration()}

	filter := relevance.NewFilter(cfg.Relevance.Keywords, cfg.Relevance.TrustedSources)
	summarizer := summary.New(cfg.Summary.Keywords, cfg.Summary.ActionWords)
	fetcher := feed.NewFetcher(httpClient, baseLogger.With("component", "feed"))
	extractor := extract.NewExtractor(httpClient, baseLogger.With("component", "extract"))

	seen := storage.NewSeenStore(cfg.Storage.SeenFile)
	renderer := page.NewRenderer(cfg.Storage.PageFile)
	store := storage.NewArticleRepository(cfg.Storage.ArticlesFile, renderer, baseLogger.With("component", "storage"))
	firstRun := !store.Exists()

	scanner := usecase.NewScanner(usecase.ScannerDeps{
		Feeds:      toFeedSources(cfg.Feeds),
		Fetcher:    fetcher,
		Filter:     filter,
		Extractor:  extractor,
		Summarizer: summarizer,
		Seen:       seen,
		Store:      store,
		Logger:     baseLogger.With("component", "scanner"),
		Cutoff:     cfg.Scanner.Cutoff(),
		Initial:    toModeSettings(cfg.Scanner.Initial),
		Regular:    toModeSettings(cfg.Scanner.Regular),
	})

	driver := scheduler.NewIntervalScheduler(cfg.Scanner.CycleIntervalDuration())
	runner := usecase.NewRunner(driver, scanner, baseLogger.With("component", "runner"))

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		renderer: renderer,
		scanner:  scanner,
		runner:   runner,
		firstRun: firstRun,
	}
}

// Run starts the poll loop and blocks until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if a.firstRun {
		// Serve an empty page until the first cycle lands articles.
		if err := a.renderer.Render(nil, time.Now()); err != nil {
			a.logger.Warn("initial page render failed", "error", err)
		}
	}

	if err := a.runner.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	a.logger.Info("shutting down")
	return a.runner.Stop(context.Background())
}

func toFeedSources(cfg []config.FeedConfig) []domain.FeedSource {
	sources := make([]domain.FeedSource, 0, len(cfg))
	for _, f := range cfg {
		sources = append(sources, domain.FeedSource{Name: f.Name, URL: f.URL, Homepage: f.Homepage})
	}
	return sources
}

func toModeSettings(cfg config.ModeConfig) usecase.ModeSettings {
	return usecase.ModeSettings{
		ItemsPerFeed: cfg.ItemsPerFeed,
		Throttle:     cfg.ThrottleDuration(),
		ArticleCap:   cfg.ArticleCap,
	}
}
