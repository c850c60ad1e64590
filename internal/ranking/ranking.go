package ranking

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/geo"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/model"
)

var ErrMissingLocation = errors.New("ranking by distance requires a location")

// Every strategy breaks ties on the primary key by article ID ascending, so
// the same candidate multiset always produces the same output order no matter
// how the input was ordered.

// Recency orders candidates by publication date, newest first.
func Recency(articles []model.Article) []model.Article {
	out := clone(articles)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublicationDate.Equal(out[j].PublicationDate) {
			return out[i].PublicationDate.After(out[j].PublicationDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Relevance orders candidates by the upstream relevance score, highest first.
// The score is opaque here: it is supplied by the search/classifier stage and
// only ordered by.
func Relevance(articles []model.Article) []model.Article {
	out := clone(articles)
	sort.Slice(out, func(i, j int) bool {
		if out[i].RelevanceScore != out[j].RelevanceScore {
			return out[i].RelevanceScore > out[j].RelevanceScore
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Distance orders candidates by geodesic distance from the request point,
// nearest first. Articles with out-of-range stored coordinates are logged and
// dropped rather than failing the whole list.
func Distance(articles []model.Article, lat, lon *float64) ([]model.Article, error) {
	if lat == nil || lon == nil {
		return nil, ErrMissingLocation
	}
	if !geo.ValidCoordinate(*lat, *lon) {
		return nil, geo.ErrInvalidCoordinate
	}

	type ranked struct {
		article model.Article
		km      float64
	}

	candidates := make([]ranked, 0, len(articles))
	for _, a := range articles {
		km, err := geo.Distance(a.Latitude, a.Longitude, *lat, *lon)
		if err != nil {
			slog.Warn("skipping article with bad coordinates", "article_id", a.ID, "error", err)
			continue
		}
		candidates = append(candidates, ranked{article: a, km: km})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].km != candidates[j].km {
			return candidates[i].km < candidates[j].km
		}
		return candidates[i].article.ID < candidates[j].article.ID
	})

	out := make([]model.Article, len(candidates))
	for i, c := range candidates {
		out[i] = c.article
	}
	return out, nil
}

// Truncate cuts an already-ranked list down to limit. Ranking always happens
// over the full candidate set first; never limit before sorting.
func Truncate(articles []model.Article, limit int) []model.Article {
	if limit < 0 || limit >= len(articles) {
		return articles
	}
	return articles[:limit]
}

func clone(articles []model.Article) []model.Article {
	out := make([]model.Article, len(articles))
	copy(out, articles)
	return out
}
