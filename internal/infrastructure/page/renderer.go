// Package page writes the static article page served to readers.
package page

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"SpursScanner/internal/dates"
	"SpursScanner/internal/domain"
	"SpursScanner/internal/ports"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Tottenham Hotspur News</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Arial, sans-serif; margin: 0; background: #f8f9fa; line-height: 1.6; }
.header { background: #132257; color: white; padding: 18px; text-align: center; }
.header h1 { margin: 0 0 6px 0; }
.stamp { font-size: 0.8em; opacity: 0.85; }
.articles { max-width: 720px; margin: 0 auto; padding: 12px; }
.article { background: white; margin: 18px 0; border-radius: 10px; border-left: 4px solid #132257; overflow: hidden; box-shadow: 0 3px 12px rgba(0,0,0,0.08); }
.article img { width: 100%; height: 180px; object-fit: cover; display: block; }
.article-content { padding: 14px; }
.source { color: #666; font-size: 0.8em; margin-bottom: 8px; }
.source a { color: #666; text-decoration: none; }
.title { color: #132257; font-size: 1.1em; font-weight: bold; margin-bottom: 10px; }
.summary { color: #333; font-size: 0.95em; }
.read-more { display: block; margin-top: 10px; color: #132257; font-size: 0.9em; text-decoration: none; }
</style>
</head>
<body>
<div class="header">
  <h1>Tottenham Hotspur News</h1>
  <div class="stamp">Last updated: {{.LastUpdated}}</div>
</div>
<div class="articles">
{{range .Articles}}
<div class="article">
  {{if .ImageURL}}<img src="{{.ImageURL}}" alt="Article image">{{end}}
  <div class="article-content">
    <div class="source"><a href="{{.SourceHomepage}}" target="_blank">{{.Source}}</a>{{if .PublishedDate}} - {{.PublishedDate}}{{end}}</div>
    <div class="title">{{.Title}}</div>
    <div class="summary">{{.Summary}}</div>
    <a class="read-more" href="{{.Link}}" target="_blank">Read the full article here...</a>
  </div>
</div>
{{end}}
</div>
</body>
</html>
`

// Renderer regenerates the static page from the final article list.
type Renderer struct {
	path string
	tmpl *template.Template
}

var _ ports.PageRenderer = (*Renderer)(nil)

// NewRenderer parses the page template once.
func NewRenderer(path string) *Renderer {
	return &Renderer{
		path: path,
		tmpl: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// Render writes the page file for the given articles.
func (r *Renderer) Render(articles []domain.Article, lastUpdated time.Time) error {
	file, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("create page file: %w", err)
	}

	data := struct {
		LastUpdated string
		Articles    []domain.Article
	}{
		LastUpdated: lastUpdated.Format(dates.DisplayLayout),
		Articles:    articles,
	}

	if err := r.tmpl.Execute(file, data); err != nil {
		_ = file.Close()
		return fmt.Errorf("render page: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close page file: %w", err)
	}
	return nil
}
