package news

import "time"

// Article is the raw shape delivered by an external news source, before it
// becomes a stored model.Article.
type Article struct {
	ExternalID  string
	Title       string
	Description string
	URL         string
	SourceName  string
	Category    string
	PublishedAt time.Time
	Latitude    float64
	Longitude   float64
}

type Client interface {
	Fetch(limit int) ([]Article, error)
	Name() string
}
