package model

import "time"

// Event types accepted at ingestion. Anything else is rejected at the
// boundary, so the trending engine never sees an unknown type.
const (
	EventTypeView  = "view"
	EventTypeClick = "click"
	EventTypeShare = "share"
)

func ValidEventType(t string) bool {
	switch t {
	case EventTypeView, EventTypeClick, EventTypeShare:
		return true
	}
	return false
}

type Article struct {
	ID              string
	Title           string
	Description     string
	URL             string
	PublicationDate time.Time
	SourceName      string
	Category        string
	RelevanceScore  float64
	Latitude        float64
	Longitude       float64
}

// InteractionEvent is an append-only record of a user acting on an article.
// The article reference is not ownership: events may outlive their article,
// and joins skip the orphans.
type InteractionEvent struct {
	ID        string
	ArticleID string
	UserID    string
	EventType string
	Timestamp time.Time
	Latitude  float64
	Longitude float64
}
