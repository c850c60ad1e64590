package news

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedConfig describes one RSS source. Feeds are regional, so each carries
// the coordinates and category its items are stamped with.
type FeedConfig struct {
	Name      string
	URL       string
	Category  string
	Latitude  float64
	Longitude float64
}

type RSSClient struct {
	parser *gofeed.Parser
	feed   FeedConfig
}

func NewRSSClient(feed FeedConfig) *RSSClient {
	return &RSSClient{parser: gofeed.NewParser(), feed: feed}
}

func (c *RSSClient) Name() string {
	return c.feed.Name
}

func (c *RSSClient) Fetch(limit int) ([]Article, error) {
	feed, err := c.parser.ParseURLWithContext(c.feed.URL, context.Background())
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", c.feed.Name, err)
	}

	articles := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if limit > 0 && len(articles) >= limit {
			break
		}

		published := time.Now()
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		desc := item.Description
		if desc == "" {
			desc = item.Content
		}

		articles = append(articles, Article{
			ExternalID:  generateExternalID(item.Link),
			Title:       item.Title,
			Description: truncate(stripHTML(desc), 500),
			URL:         item.Link,
			SourceName:  c.feed.Name,
			Category:    c.feed.Category,
			PublishedAt: published,
			Latitude:    c.feed.Latitude,
			Longitude:   c.feed.Longitude,
		})
	}

	return articles, nil
}

// ParseFeedsEnv reads feed definitions from an env value of the form
// "name|url|category|lat|lon;name|url|category|lat|lon".
func ParseFeedsEnv(value string) ([]FeedConfig, error) {
	var feeds []FeedConfig
	for _, entry := range strings.Split(value, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, "|")
		if len(parts) != 5 {
			return nil, fmt.Errorf("feed entry %q: want name|url|category|lat|lon", entry)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("feed entry %q: bad latitude: %w", entry, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[4]), 64)
		if err != nil {
			return nil, fmt.Errorf("feed entry %q: bad longitude: %w", entry, err)
		}

		feeds = append(feeds, FeedConfig{
			Name:      strings.TrimSpace(parts[0]),
			URL:       strings.TrimSpace(parts[1]),
			Category:  strings.TrimSpace(parts[2]),
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return feeds, nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
