package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/abhishek23012000/Contextual-News-Retrieval-API/db"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/model"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/repository"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/pkg/news"
)

// The fetcher pulls articles from the configured external sources and stores
// them, deduplicating on URL. Sources without per-item coordinates get the
// configured default location.
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

	var clients []news.Client
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		clients = append(clients, news.NewFinnhubClient(key))
	}
	if raw := os.Getenv("RSS_FEEDS"); raw != "" {
		feeds, err := news.ParseFeedsEnv(raw)
		if err != nil {
			log.Fatalf("invalid RSS_FEEDS: %v", err)
		}
		for _, feed := range feeds {
			clients = append(clients, news.NewRSSClient(feed))
		}
	}

	if len(clients) == 0 {
		slog.Error("no news sources configured")
		return
	}

	defaultLat := envFloat("FETCHER_DEFAULT_LAT", 0)
	defaultLon := envFloat("FETCHER_DEFAULT_LON", 0)

	repo := repository.NewArticleRepository(db.DB)

	for _, client := range clients {
		source := client.Name()

		fetched, err := client.Fetch(50)
		if err != nil {
			slog.Error("error fetching articles", "source", source, "error", err)
			continue
		}

		var saved, duplicated, errors int

		for _, a := range fetched {
			if a.URL == "" || a.Title == "" {
				continue
			}

			lat, lon := a.Latitude, a.Longitude
			if lat == 0 && lon == 0 {
				lat, lon = defaultLat, defaultLon
			}

			article := model.Article{
				ID:              a.ExternalID,
				Title:           a.Title,
				Description:     a.Description,
				URL:             a.URL,
				PublicationDate: a.PublishedAt,
				SourceName:      a.SourceName,
				Category:        a.Category,
				RelevanceScore:  0.5,
				Latitude:        lat,
				Longitude:       lon,
			}

			success, err := repo.Save(&article)
			if err != nil {
				slog.Error("error saving article", "source", source, "error", err)
				errors++
				continue
			}

			if !success {
				duplicated++
				continue
			}

			saved++
		}

		slog.Info("fetch complete", "source", source, "saved", saved, "duplicated", duplicated, "errors", errors)
	}
}

func envFloat(name string, fallback float64) float64 {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		slog.Warn("invalid float in env, using fallback", "name", name, "value", raw)
		return fallback
	}
	return v
}
