package query

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/model"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/ranking"
)

// Intent is the closed set of retrieval strategies. The classifier's string
// output is parsed into this enum at the boundary; nothing loosely typed
// reaches the dispatch table.
type Intent int

const (
	IntentSearch Intent = iota
	IntentCategory
	IntentSource
	IntentNearby
	IntentScore
	IntentTrending
)

func (i Intent) String() string {
	switch i {
	case IntentSearch:
		return "search"
	case IntentCategory:
		return "category"
	case IntentSource:
		return "source"
	case IntentNearby:
		return "nearby"
	case IntentScore:
		return "score"
	case IntentTrending:
		return "trending"
	}
	return "unknown"
}

// ParseIntent maps a classifier intent label to the enum. The second return
// is false for anything outside the recognized set.
func ParseIntent(s string) (Intent, bool) {
	switch s {
	case "search":
		return IntentSearch, true
	case "category":
		return IntentCategory, true
	case "source":
		return IntentSource, true
	case "nearby":
		return IntentNearby, true
	case "score":
		return IntentScore, true
	case "trending":
		return IntentTrending, true
	}
	return IntentSearch, false
}

const (
	DefaultLimit            = 10
	DefaultRadiusKm         = 10.0
	DefaultTrendingRadiusKm = 20.0
	DefaultMinScore         = 0.7
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnknownIntent    = errors.New("unknown intent")
)

type ArticleStore interface {
	FetchByCategory(name string) ([]model.Article, error)
	FetchBySource(name string) ([]model.Article, error)
	FetchWithinRadius(lat, lon, radiusKm float64) ([]model.Article, error)
	SearchByText(terms string) ([]model.Article, error)
	FetchByMinScore(min float64) ([]model.Article, error)
}

type TrendingEngine interface {
	Trending(lat, lon, radiusKm float64, limit int, now time.Time) ([]model.Article, error)
}

// Request carries one retrieval call. Lat/Lon are pointers because absence
// and zero are different things for coordinates. Zero Limit and Radius mean
// "apply the default"; explicitly negative values are rejected.
type Request struct {
	Intent   Intent
	Category string
	Source   string
	Terms    string
	MinScore float64
	Lat      *float64
	Lon      *float64
	Radius   float64
	Limit    int
	Now      time.Time
}

type Router struct {
	articles ArticleStore
	trending TrendingEngine
}

func NewRouter(articles ArticleStore, trending TrendingEngine) *Router {
	return &Router{articles: articles, trending: trending}
}

type strategy func(r *Router, req Request) ([]model.Article, error)

// One entry per intent. Keeping the table closed over the enum means a new
// intent without a strategy is caught by Retrieve, not silently misrouted.
var strategies = map[Intent]strategy{
	IntentSearch:   bySearch,
	IntentCategory: byCategory,
	IntentSource:   bySource,
	IntentNearby:   byNearby,
	IntentScore:    byScore,
	IntentTrending: byTrending,
}

// Retrieve validates the request, fetches the candidate set for the intent,
// and returns it ranked and truncated. An empty result is a valid answer,
// never an error.
func (r *Router) Retrieve(req Request) ([]model.Article, error) {
	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}
	if req.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidParameter)
	}
	if req.Radius < 0 {
		return nil, fmt.Errorf("%w: radius must be positive", ErrInvalidParameter)
	}
	if req.Now.IsZero() {
		req.Now = time.Now()
	}

	fn, ok := strategies[req.Intent]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownIntent, req.Intent)
	}

	articles, err := fn(r, req)
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []model.Article{}
	}
	return articles, nil
}

func byCategory(r *Router, req Request) ([]model.Article, error) {
	if req.Category == "" {
		return nil, fmt.Errorf("%w: category name required", ErrInvalidParameter)
	}
	candidates, err := r.articles.FetchByCategory(req.Category)
	if err != nil {
		return nil, err
	}
	return ranking.Truncate(ranking.Recency(candidates), req.Limit), nil
}

func bySource(r *Router, req Request) ([]model.Article, error) {
	if req.Source == "" {
		return nil, fmt.Errorf("%w: source name required", ErrInvalidParameter)
	}
	candidates, err := r.articles.FetchBySource(req.Source)
	if err != nil {
		return nil, err
	}
	return ranking.Truncate(ranking.Recency(candidates), req.Limit), nil
}

func bySearch(r *Router, req Request) ([]model.Article, error) {
	if req.Terms == "" {
		return nil, fmt.Errorf("%w: search terms required", ErrInvalidParameter)
	}
	candidates, err := r.articles.SearchByText(req.Terms)
	if err != nil {
		return nil, err
	}
	return ranking.Truncate(ranking.Relevance(candidates), req.Limit), nil
}

func byScore(r *Router, req Request) ([]model.Article, error) {
	candidates, err := r.articles.FetchByMinScore(req.MinScore)
	if err != nil {
		return nil, err
	}
	return ranking.Truncate(ranking.Relevance(candidates), req.Limit), nil
}

func byNearby(r *Router, req Request) ([]model.Article, error) {
	if req.Lat == nil || req.Lon == nil {
		return nil, ranking.ErrMissingLocation
	}
	radius := req.Radius
	if radius == 0 {
		radius = DefaultRadiusKm
	}
	candidates, err := r.articles.FetchWithinRadius(*req.Lat, *req.Lon, radius)
	if err != nil {
		return nil, err
	}
	ordered, err := ranking.Distance(candidates, req.Lat, req.Lon)
	if err != nil {
		return nil, err
	}
	return ranking.Truncate(ordered, req.Limit), nil
}

func byTrending(r *Router, req Request) ([]model.Article, error) {
	if req.Lat == nil || req.Lon == nil {
		return nil, ranking.ErrMissingLocation
	}
	radius := req.Radius
	if radius == 0 {
		radius = DefaultTrendingRadiusKm
	}
	return r.trending.Trending(*req.Lat, *req.Lon, radius, req.Limit, req.Now)
}
