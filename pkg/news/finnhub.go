package news

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{client: client}
}

func (c *FinnhubClient) Name() string {
	return "Finnhub"
}

// Fetch pulls general market news. Finnhub items carry no coordinates; the
// fetcher fills in its configured default location.
func (c *FinnhubClient) Fetch(limit int) ([]Article, error) {
	res, _, err := c.client.MarketNews(context.Background()).Category("general").Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub fetch: %w", err)
	}

	var articles []Article
	for _, item := range res {
		if limit > 0 && len(articles) >= limit {
			break
		}

		a := Article{Category: "Business"}

		if item.Url != nil {
			a.URL = *item.Url
			a.ExternalID = generateExternalID(*item.Url)
		}
		if item.Headline != nil {
			a.Title = *item.Headline
		}
		if item.Summary != nil {
			a.Description = *item.Summary
		}
		if item.Datetime != nil {
			a.PublishedAt = time.Unix(*item.Datetime, 0)
		}
		if item.Source != nil {
			a.SourceName = *item.Source
		}
		if item.Category != nil && *item.Category != "" {
			a.Category = *item.Category
		}

		articles = append(articles, a)
	}

	return articles, nil
}

func generateExternalID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x", sum)[:16]
}
