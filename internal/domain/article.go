package domain

// FeedSource is immutable configuration for a single upstream feed.
type FeedSource struct {
	Name     string
	URL      string
	Homepage string
}

// CandidateItem is one feed entry as pulled during a poll cycle. It lives
// only for the duration of that cycle.
type CandidateItem struct {
	Title       string
	Link        string
	Description string
	RawDate     string
	SourceName  string
}

// SeenRecord is the metadata kept per accepted link identifier.
type SeenRecord struct {
	Title     string `json:"title"`
	FirstSeen string `json:"found_at"`
}

// Article is the accepted, enriched record persisted to the article store.
// PublishedDate holds the display-formatted date string, or the raw feed
// value when it could not be parsed, or is empty when the feed carried none.
type Article struct {
	Source         string `json:"source"`
	SourceHomepage string `json:"source_homepage"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	Link           string `json:"link"`
	ImageURL       string `json:"image_url,omitempty"`
	PublishedDate  string `json:"published_date,omitempty"`
	Chars          int    `json:"chars"`
	HasFullContent bool   `json:"has_full_content"`
	ContentLength  int    `json:"content_length"`
	FoundAt        string `json:"found_at"`
}
