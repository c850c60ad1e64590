package main

import (
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhishek23012000/Contextual-News-Retrieval-API/db"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/model"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/repository"
)

type seedArticle struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	URL             string  `json:"url"`
	PublicationDate string  `json:"publication_date"`
	SourceName      string  `json:"source_name"`
	Category        string  `json:"category"`
	RelevanceScore  float64 `json:"relevance_score"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

// The loader seeds the article catalog from a JSON file. Records without an
// id are skipped with a warning rather than failing the whole load.
func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	path := flag.String("file", "news_data.json", "path to the articles JSON file")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("error reading %s: %v", *path, err)
	}

	var seeds []seedArticle
	if err := json.Unmarshal(data, &seeds); err != nil {
		log.Fatalf("error parsing %s: %v", *path, err)
	}

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("error initializing schema: %v", err)
	}

	repo := repository.NewArticleRepository(db.DB)

	var saved, skipped, duplicated, errors int

	for i, seed := range seeds {
		if seed.ID == "" {
			slog.Warn("skipping article without id", "index", i, "title", seed.Title)
			skipped++
			continue
		}

		published, err := parseDate(seed.PublicationDate)
		if err != nil {
			slog.Warn("skipping article with unparseable date", "id", seed.ID, "date", seed.PublicationDate)
			skipped++
			continue
		}

		article := model.Article{
			ID:              seed.ID,
			Title:           seed.Title,
			Description:     seed.Description,
			URL:             seed.URL,
			PublicationDate: published,
			SourceName:      seed.SourceName,
			Category:        seed.Category,
			RelevanceScore:  seed.RelevanceScore,
			Latitude:        seed.Latitude,
			Longitude:       seed.Longitude,
		}

		success, err := repo.Save(&article)
		if err != nil {
			slog.Error("error saving article", "id", seed.ID, "error", err)
			errors++
			continue
		}

		if !success {
			duplicated++
			continue
		}
		saved++
	}

	slog.Info("load complete", "total", len(seeds), "saved", saved, "skipped", skipped, "duplicated", duplicated, "errors", errors)
}

func parseDate(raw string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	var err error
	for _, layout := range layouts {
		var t time.Time
		t, err = time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
