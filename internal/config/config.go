package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "SPURS_SCANNER_CONFIG"
	logLevelEnv   = "SPURS_SCANNER_LOG_LEVEL"
	dataDirEnv    = "SPURS_SCANNER_DATA_DIR"

	cutoffLayout = "2006-01-02T15:04:05"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Scanner   ScannerConfig   `yaml:"scanner"`
	Storage   StorageConfig   `yaml:"storage"`
	Relevance RelevanceConfig `yaml:"relevance"`
	Summary   SummaryConfig   `yaml:"summary"`
	Feeds     []FeedConfig    `yaml:"feeds"`
}

// LoggingConfig controls the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ModeConfig tunes one scanner mode: how deep to scan each feed, how long
// to pause between full-article extractions, and the repository cap.
type ModeConfig struct {
	ItemsPerFeed int    `yaml:"itemsPerFeed"`
	Throttle     string `yaml:"throttle"`
	ArticleCap   int    `yaml:"articleCap"`
}

// ThrottleDuration resolves the throttle string, defaulting to one second.
func (m ModeConfig) ThrottleDuration() time.Duration {
	if d, err := time.ParseDuration(m.Throttle); err == nil {
		return d
	}
	return time.Second
}

// ScannerConfig defines polling cadence and the recency cutoff.
type ScannerConfig struct {
	CutoffDate    string     `yaml:"cutoffDate"`
	CycleInterval string     `yaml:"cycleInterval"`
	FetchTimeout  string     `yaml:"fetchTimeout"`
	Initial       ModeConfig `yaml:"initial"`
	Regular       ModeConfig `yaml:"regular"`
}

// Cutoff resolves the recency cutoff; items older than this are skipped.
func (s ScannerConfig) Cutoff() time.Time {
	if t, err := time.Parse(cutoffLayout, s.CutoffDate); err == nil {
		return t
	}
	return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
}

// CycleIntervalDuration resolves the inter-cycle pause, defaulting to a minute.
func (s ScannerConfig) CycleIntervalDuration() time.Duration {
	if d, err := time.ParseDuration(s.CycleInterval); err == nil {
		return d
	}
	return time.Minute
}

// FetchTimeoutDuration resolves the per-request timeout, defaulting to 15s.
func (s ScannerConfig) FetchTimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(s.FetchTimeout); err == nil {
		return d
	}
	return 15 * time.Second
}

// StorageConfig locates the durable files and the generated page.
type StorageConfig struct {
	SeenFile     string `yaml:"seenFile"`
	ArticlesFile string `yaml:"articlesFile"`
	PageFile     string `yaml:"pageFile"`
}

// RelevanceConfig lists the primary keywords and the single-topic sources
// whose items are accepted without keyword inspection.
type RelevanceConfig struct {
	Keywords       []string `yaml:"keywords"`
	TrustedSources []string `yaml:"trustedSources"`
}

// SummaryConfig lists the scoring vocabulary for the extractive summarizer.
type SummaryConfig struct {
	Keywords    []string `yaml:"keywords"`
	ActionWords []string `yaml:"actionWords"`
}

// FeedConfig describes one upstream source.
type FeedConfig struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Homepage string `yaml:"homepage"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Feeds) == 0 {
		cfg.Feeds = defaultConfig().Feeds
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if dir := os.Getenv(dataDirEnv); dir != "" {
		c.Storage.SeenFile = filepath.Join(dir, filepath.Base(c.Storage.SeenFile))
		c.Storage.ArticlesFile = filepath.Join(dir, filepath.Base(c.Storage.ArticlesFile))
		c.Storage.PageFile = filepath.Join(dir, filepath.Base(c.Storage.PageFile))
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Scanner.CutoffDate != "" {
		base.Scanner.CutoffDate = override.Scanner.CutoffDate
	}
	if override.Scanner.CycleInterval != "" {
		base.Scanner.CycleInterval = override.Scanner.CycleInterval
	}
	if override.Scanner.FetchTimeout != "" {
		base.Scanner.FetchTimeout = override.Scanner.FetchTimeout
	}
	if override.Scanner.Initial.ItemsPerFeed > 0 {
		base.Scanner.Initial = override.Scanner.Initial
	}
	if override.Scanner.Regular.ItemsPerFeed > 0 {
		base.Scanner.Regular = override.Scanner.Regular
	}

	if override.Storage.SeenFile != "" {
		base.Storage.SeenFile = override.Storage.SeenFile
	}
	if override.Storage.ArticlesFile != "" {
		base.Storage.ArticlesFile = override.Storage.ArticlesFile
	}
	if override.Storage.PageFile != "" {
		base.Storage.PageFile = override.Storage.PageFile
	}

	if len(override.Relevance.Keywords) > 0 {
		base.Relevance.Keywords = override.Relevance.Keywords
	}
	if len(override.Relevance.TrustedSources) > 0 {
		base.Relevance.TrustedSources = override.Relevance.TrustedSources
	}

	if len(override.Summary.Keywords) > 0 {
		base.Summary.Keywords = override.Summary.Keywords
	}
	if len(override.Summary.ActionWords) > 0 {
		base.Summary.ActionWords = override.Summary.ActionWords
	}

	if len(override.Feeds) > 0 {
		base.Feeds = override.Feeds
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Scanner: ScannerConfig{
			CutoffDate:    "2025-06-01T00:00:00",
			CycleInterval: "60s",
			FetchTimeout:  "15s",
			Initial:       ModeConfig{ItemsPerFeed: 25, Throttle: "1s", ArticleCap: 100},
			Regular:       ModeConfig{ItemsPerFeed: 15, Throttle: "2s", ArticleCap: 50},
		},
		Storage: StorageConfig{
			SeenFile:     "seen_articles.json",
			ArticlesFile: "articles_data.json",
			PageFile:     "index.html",
		},
		Relevance: RelevanceConfig{
			Keywords: []string{"tottenham", "spurs", "thfc"},
			TrustedSources: []string{
				"tottenhamhotspurnews",
				"spurs-web",
				"tothelaneandback",
				"tottenhamhotspur.com",
			},
		},
		Summary: SummaryConfig{
			Keywords:    []string{"tottenham", "spurs", "thfc", "postecoglou", "ange", "levy", "son", "kane"},
			ActionWords: []string{"sign", "buy", "sell", "target", "win", "lose", "beat", "defeat", "transfer"},
		},
		Feeds: []FeedConfig{
			{Name: "BBC Sport", URL: "http://feeds.bbci.co.uk/sport/football/rss.xml", Homepage: "https://www.bbc.com/sport/football"},
			{Name: "Guardian Football", URL: "https://www.theguardian.com/football/rss", Homepage: "https://www.theguardian.com/football"},
			{Name: "Sky Sports", URL: "https://www.skysports.com/rss/12040", Homepage: "https://www.skysports.com/football"},
			{Name: "Mirror Football", URL: "https://www.mirror.co.uk/sport/football/rss.xml", Homepage: "https://www.mirror.co.uk/sport/football"},
			{Name: "TeamTalk", URL: "https://www.teamtalk.com/feed", Homepage: "https://www.teamtalk.com"},
			{Name: "Football365", URL: "https://www.football365.com/feed", Homepage: "https://www.football365.com"},
			{Name: "Football Insider", URL: "https://www.footballinsider247.com/feed/", Homepage: "https://www.footballinsider247.com"},
			{Name: "Tottenham Official", URL: "https://www.tottenhamhotspur.com/news/feed/", Homepage: "https://www.tottenhamhotspur.com/news"},
			{Name: "TottenhamHotspurNews", URL: "https://www.tottenhamhotspurnews.com/feed/", Homepage: "https://www.tottenhamhotspurnews.com"},
			{Name: "SpursWeb", URL: "https://www.spurs-web.com/feed/", Homepage: "https://www.spurs-web.com"},
			{Name: "To The Lane And Back", URL: "https://tothelaneandback.com/feed/", Homepage: "https://tothelaneandback.com"},
		},
	}
}
