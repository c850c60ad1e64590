package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/abhishek23012000/Contextual-News-Retrieval-API/db"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/handler"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/query"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/repository"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/trending"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/pkg/llm"
)

// redisCache adapts the db redis helpers to the handler's cache interface.
type redisCache struct{}

func (redisCache) Get(key string) (string, bool, error) { return db.GetCached(key) }
func (redisCache) Set(key, value string) error {
	return db.SetCached(key, value, db.TrendingCacheTTL)
}
func (redisCache) Key(lat, lon, radiusKm float64) string { return db.TrendingKey(lat, lon, radiusKm) }

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("error initializing schema: %v", err)
	}

	articleRepo := repository.NewArticleRepository(db.DB)
	eventRepo := repository.NewEventRepository(db.DB)

	engine, err := trending.NewEngine(articleRepo, eventRepo, trending.DefaultWeights())
	if err != nil {
		log.Fatalf("invalid trending weights: %v", err)
	}

	router := query.NewRouter(articleRepo, engine)

	llmClient, err := llm.NewFromEnv()
	if err != nil {
		slog.Warn("LLM client disabled", "reason", err)
	}

	var cache handler.TrendingCache
	if err := db.ConnectRedis(); err != nil {
		slog.Warn("redis unavailable, trending cache disabled", "error", err)
	} else {
		defer db.CloseRedis()
		cache = redisCache{}
	}

	newsHandler := handler.NewNewsHandler(router, llmClient, cache)
	eventHandler := handler.NewEventHandler(eventRepo, articleRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	v1 := r.Group("/api/v1")
	news := v1.Group("/news")
	{
		news.GET("", newsHandler.GetNews)
		news.GET("/category", newsHandler.GetByCategory)
		news.GET("/source", newsHandler.GetBySource)
		news.GET("/search", newsHandler.GetBySearch)
		news.GET("/score", newsHandler.GetByScore)
		news.GET("/nearby", newsHandler.GetNearby)
		news.GET("/trending", newsHandler.GetTrending)
	}
	v1.POST("/events", eventHandler.CreateEvent)

	r.GET("/health", func(c *gin.Context) {
		if err := db.DB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "unhealthy", "database": "disconnected"})
			return
		}
		c.JSON(200, gin.H{"status": "healthy", "database": "connected"})
	})

	if cache != nil {
		startCacheWarmer(newsHandler)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

// startCacheWarmer refreshes the trending cache hourly for the locations
// listed in TRENDING_WARM_LOCATIONS ("lat,lon;lat,lon").
func startCacheWarmer(h *handler.NewsHandler) {
	points := parseWarmLocations(os.Getenv("TRENDING_WARM_LOCATIONS"))
	if len(points) == 0 {
		return
	}

	c := cron.New()
	c.AddFunc("@hourly", func() {
		for _, p := range points {
			if err := h.WarmTrending(p[0], p[1], query.DefaultTrendingRadiusKm); err != nil {
				slog.Error("error warming trending cache", "error", err, "lat", p[0], "lon", p[1])
			}
		}
		slog.Info("trending cache warmed", "locations", len(points))
	})
	c.Start()
}

func parseWarmLocations(value string) [][2]float64 {
	var points [][2]float64
	for _, entry := range strings.Split(value, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ",", 2)
		if len(parts) != 2 {
			slog.Warn("skipping malformed warm location", "entry", entry)
			continue
		}
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errLat != nil || errLon != nil {
			slog.Warn("skipping malformed warm location", "entry", entry)
			continue
		}
		points = append(points, [2]float64{lat, lon})
	}
	return points
}
