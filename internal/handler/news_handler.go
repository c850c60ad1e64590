package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/geo"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/model"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/query"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/ranking"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/trending"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/pkg/llm"
)

type Retriever interface {
	Retrieve(req query.Request) ([]model.Article, error)
}

// TrendingCache stores rendered trending responses. Implementations may be
// backed by redis; a nil cache simply disables caching.
type TrendingCache interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Key(lat, lon, radiusKm float64) string
}

type NewsHandler struct {
	router Retriever
	llm    llm.Client
	cache  TrendingCache
}

// NewNewsHandler wires the retrieval router with an optional LLM client for
// query analysis and summaries, and an optional trending response cache.
func NewNewsHandler(router Retriever, client llm.Client, cache TrendingCache) *NewsHandler {
	return &NewsHandler{router: router, llm: client, cache: cache}
}

// GetNews handles the unified smart query: the classifier decides the intent
// and the router takes it from there. A classifier failure degrades to a
// plain text search instead of failing the request.
func (h *NewsHandler) GetNews(c *gin.Context) {
	rawQuery := c.Query("query")
	if rawQuery == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter required"})
		return
	}

	lat, lon, ok := optionalPoint(c)
	if !ok {
		return
	}

	analysis := h.analyze(rawQuery)

	req, ok := h.buildRequest(c, analysis, rawQuery, lat, lon)
	if !ok {
		return
	}

	articles, err := h.router.Retrieve(req)
	if err != nil {
		respondRetrieveError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewsQueryResponse{
		QueryAnalysis: QueryAnalysisResponse{
			Intent:   req.Intent.String(),
			Entities: analysis.Entities,
			Category: analysis.Category,
			Source:   analysis.Source,
			Location: analysis.Location,
		},
		Articles: h.enrich(articles),
	})
}

// analyze runs the classifier, degrading to a search descriptor whenever the
// upstream cannot produce a usable one.
func (h *NewsHandler) analyze(rawQuery string) *llm.QueryAnalysis {
	analysis := &llm.QueryAnalysis{Intent: query.IntentSearch.String()}

	if h.llm != nil {
		got, err := h.llm.Analyze(rawQuery)
		if err != nil {
			slog.Warn("intent resolution failed, falling back to search", "error", err, "query", rawQuery)
		} else {
			analysis = got
		}
	}

	// Entities always serializes as a list, never null.
	if analysis.Entities == nil {
		analysis.Entities = []string{}
	}
	return analysis
}

// buildRequest turns a classifier descriptor into a typed retrieval request.
// Descriptors that name an intent but lack its parameters degrade to search;
// location-bound intents without a request point are a client error.
func (h *NewsHandler) buildRequest(c *gin.Context, analysis *llm.QueryAnalysis, rawQuery string, lat, lon *float64) (query.Request, bool) {
	intent, known := query.ParseIntent(analysis.Intent)
	if !known {
		slog.Warn("classifier returned unrecognized intent, falling back to search", "intent", analysis.Intent)
		intent = query.IntentSearch
	}

	req := query.Request{Intent: intent, Lat: lat, Lon: lon, Now: time.Now()}

	switch intent {
	case query.IntentCategory:
		if analysis.Category == "" {
			req.Intent = query.IntentSearch
		}
		req.Category = analysis.Category
	case query.IntentSource:
		if analysis.Source == "" {
			req.Intent = query.IntentSearch
		}
		req.Source = analysis.Source
	case query.IntentNearby, query.IntentTrending:
		if lat == nil || lon == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required for location-based queries"})
			return query.Request{}, false
		}
	case query.IntentScore:
		req.MinScore = query.DefaultMinScore
	}

	if req.Intent == query.IntentSearch {
		terms := strings.Join(analysis.Entities, " ")
		if terms == "" {
			terms = rawQuery
		}
		req.Terms = terms
	}
	return req, true
}

// GetByCategory handles GET /news/category?name=...&limit=...
func (h *NewsHandler) GetByCategory(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name parameter required"})
		return
	}

	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	h.retrieve(c, query.Request{Intent: query.IntentCategory, Category: name, Limit: limit})
}

// GetBySource handles GET /news/source?name=...&limit=...
func (h *NewsHandler) GetBySource(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name parameter required"})
		return
	}

	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	h.retrieve(c, query.Request{Intent: query.IntentSource, Source: name, Limit: limit})
}

// GetBySearch handles GET /news/search?search_term=...&limit=...
func (h *NewsHandler) GetBySearch(c *gin.Context) {
	term := c.Query("search_term")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search_term parameter required"})
		return
	}

	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	h.retrieve(c, query.Request{Intent: query.IntentSearch, Terms: term, Limit: limit})
}

// GetByScore handles GET /news/score?min_score=...&limit=...
func (h *NewsHandler) GetByScore(c *gin.Context) {
	minScore := query.DefaultMinScore
	if raw := c.Query("min_score"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_score parameter"})
			return
		}
		minScore = parsed
	}

	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	h.retrieve(c, query.Request{Intent: query.IntentScore, MinScore: minScore, Limit: limit})
}

// GetNearby handles GET /news/nearby?lat=...&lon=...&radius=...&limit=...
func (h *NewsHandler) GetNearby(c *gin.Context) {
	lat, lon, ok := requiredPoint(c)
	if !ok {
		return
	}
	radius, ok := queryRadius(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	h.retrieve(c, query.Request{
		Intent: query.IntentNearby,
		Lat:    &lat,
		Lon:    &lon,
		Radius: radius,
		Limit:  limit,
	})
}

// GetTrending handles GET /news/trending?lat=...&lon=...&radius=...&limit=...
// Responses are cached per geohash cell and radius for a few minutes.
func (h *NewsHandler) GetTrending(c *gin.Context) {
	lat, lon, ok := requiredPoint(c)
	if !ok {
		return
	}
	radius, ok := queryRadius(c)
	if !ok {
		return
	}
	if radius == 0 {
		radius = query.DefaultTrendingRadiusKm
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	var cacheKey string
	if h.cache != nil {
		cacheKey = h.cache.Key(lat, lon, radius)
		if cached, hit, err := h.cache.Get(cacheKey); err != nil {
			slog.Warn("trending cache read failed", "error", err, "key", cacheKey)
		} else if hit {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	articles, err := h.router.Retrieve(query.Request{
		Intent: query.IntentTrending,
		Lat:    &lat,
		Lon:    &lon,
		Radius: radius,
		Limit:  limit,
		Now:    time.Now(),
	})
	if err != nil {
		respondRetrieveError(c, err)
		return
	}

	res := ArticleListResponse{Articles: h.enrich(articles)}

	if h.cache != nil {
		if body, err := json.Marshal(res); err == nil {
			if err := h.cache.Set(cacheKey, string(body)); err != nil {
				slog.Warn("trending cache write failed", "error", err, "key", cacheKey)
			}
		}
	}

	c.JSON(http.StatusOK, res)
}

// WarmTrending precomputes and caches the trending response for a location,
// so scheduled refreshes hit the same path as live requests.
func (h *NewsHandler) WarmTrending(lat, lon, radiusKm float64) error {
	if h.cache == nil {
		return nil
	}

	articles, err := h.router.Retrieve(query.Request{
		Intent: query.IntentTrending,
		Lat:    &lat,
		Lon:    &lon,
		Radius: radiusKm,
		Now:    time.Now(),
	})
	if err != nil {
		return err
	}

	body, err := json.Marshal(ArticleListResponse{Articles: h.enrich(articles)})
	if err != nil {
		return err
	}
	return h.cache.Set(h.cache.Key(lat, lon, radiusKm), string(body))
}

func (h *NewsHandler) retrieve(c *gin.Context, req query.Request) {
	req.Now = time.Now()

	articles, err := h.router.Retrieve(req)
	if err != nil {
		respondRetrieveError(c, err)
		return
	}

	c.JSON(http.StatusOK, ArticleListResponse{Articles: h.enrich(articles)})
}

func respondRetrieveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, query.ErrInvalidParameter),
		errors.Is(err, ranking.ErrMissingLocation),
		errors.Is(err, trending.ErrInvalidRadius),
		errors.Is(err, geo.ErrInvalidCoordinate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("error retrieving articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
	}
}

func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
		return 0, false
	}
	return limit, true
}

func queryRadius(c *gin.Context) (float64, bool) {
	raw := c.Query("radius")
	if raw == "" {
		return 0, true
	}

	radius, err := strconv.ParseFloat(raw, 64)
	if err != nil || radius <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius parameter"})
		return 0, false
	}
	return radius, true
}

func requiredPoint(c *gin.Context) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat parameter required"})
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lon parameter required"})
		return 0, 0, false
	}
	if !geo.ValidCoordinate(lat, lon) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return 0, 0, false
	}
	return lat, lon, true
}

func optionalPoint(c *gin.Context) (*float64, *float64, bool) {
	rawLat, rawLon := c.Query("lat"), c.Query("lon")
	if rawLat == "" && rawLon == "" {
		return nil, nil, true
	}

	lat, errLat := strconv.ParseFloat(rawLat, 64)
	lon, errLon := strconv.ParseFloat(rawLon, 64)
	if errLat != nil || errLon != nil || !geo.ValidCoordinate(lat, lon) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat/lon parameters"})
		return nil, nil, false
	}
	return &lat, &lon, true
}
