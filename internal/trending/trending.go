package trending

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/geo"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/model"
)

// Window is the hard cutoff for event age. Older events contribute nothing;
// this is an exclusion, not a decay.
const Window = 24 * time.Hour

var ErrInvalidRadius = errors.New("radius must be greater than zero")

// Weights maps each recognized event type to its score contribution. A click
// must weigh strictly more than a view, and a share more than a click.
type Weights struct {
	View  float64
	Click float64
	Share float64
}

func DefaultWeights() Weights {
	return Weights{View: 1, Click: 2, Share: 3}
}

func (w Weights) Validate() error {
	if w.View <= 0 {
		return fmt.Errorf("view weight must be positive, got %v", w.View)
	}
	if w.Click <= w.View {
		return fmt.Errorf("click weight (%v) must exceed view weight (%v)", w.Click, w.View)
	}
	if w.Share <= w.Click {
		return fmt.Errorf("share weight (%v) must exceed click weight (%v)", w.Share, w.Click)
	}
	return nil
}

func (w Weights) forType(t string) float64 {
	switch t {
	case model.EventTypeView:
		return w.View
	case model.EventTypeClick:
		return w.Click
	case model.EventTypeShare:
		return w.Share
	}
	// Unknown types are rejected at ingestion and should never reach here.
	return 0
}

// Scores aggregates events into per-article totals relative to the requester
// location and clock. Each surviving event contributes
// typeWeight * (1 - d/radius): full weight at zero distance, zero exactly at
// the radius edge. Events older than Window or farther than radius are
// excluded outright. The sum is commutative, so event order never matters.
func Scores(events []model.InteractionEvent, w Weights, lat, lon, radiusKm float64, now time.Time) (map[string]float64, error) {
	if radiusKm <= 0 {
		return nil, ErrInvalidRadius
	}
	if !geo.ValidCoordinate(lat, lon) {
		return nil, geo.ErrInvalidCoordinate
	}

	cutoff := now.Add(-Window)
	scores := make(map[string]float64)

	for _, ev := range events {
		if ev.Timestamp.Before(cutoff) {
			continue
		}
		km, err := geo.Distance(ev.Latitude, ev.Longitude, lat, lon)
		if err != nil {
			slog.Warn("skipping event with bad coordinates", "event_id", ev.ID, "error", err)
			continue
		}
		if km > radiusKm {
			continue
		}
		spatial := 1 - km/radiusKm
		scores[ev.ArticleID] += w.forType(ev.EventType) * spatial
	}

	return scores, nil
}

type ArticleSource interface {
	FetchWithinRadius(lat, lon, radiusKm float64) ([]model.Article, error)
}

type EventSource interface {
	FetchSince(t time.Time) ([]model.InteractionEvent, error)
}

type Engine struct {
	articles ArticleSource
	events   EventSource
	weights  Weights
}

func NewEngine(articles ArticleSource, events EventSource, weights Weights) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Engine{articles: articles, events: events, weights: weights}, nil
}

// Trending returns up to limit articles within radiusKm of the requester,
// ranked by aggregated event score descending. Articles whose events all
// aged out, landed outside the radius, or summed to zero are not trending
// and do not appear at all. The clock is injected so identical inputs always
// produce identical output.
func (e *Engine) Trending(lat, lon, radiusKm float64, limit int, now time.Time) ([]model.Article, error) {
	events, err := e.events.FetchSince(now.Add(-Window))
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}

	scores, err := Scores(events, e.weights, lat, lon, radiusKm, now)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return []model.Article{}, nil
	}

	candidates, err := e.articles.FetchWithinRadius(lat, lon, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("fetching candidate articles: %w", err)
	}

	// Events whose article fell outside the radius or no longer exists drop
	// out of the join silently.
	trending := make([]model.Article, 0, len(candidates))
	for _, a := range candidates {
		if scores[a.ID] > 0 {
			trending = append(trending, a)
		}
	}

	sort.Slice(trending, func(i, j int) bool {
		if scores[trending[i].ID] != scores[trending[j].ID] {
			return scores[trending[i].ID] > scores[trending[j].ID]
		}
		return trending[i].ID < trending[j].ID
	})

	if limit >= 0 && limit < len(trending) {
		trending = trending[:limit]
	}
	return trending, nil
}
