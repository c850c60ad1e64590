package handler

import (
	"sync"
	"time"

	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/model"
)

const summaryFallback = "Summary not available."

// enrich maps ranked articles to responses, generating one-sentence summaries
// concurrently. A failed summary degrades to the fallback text; it never
// fails the request or disturbs the ranking order.
func (h *NewsHandler) enrich(articles []model.Article) []ArticleResponse {
	res := make([]ArticleResponse, len(articles))
	for i, a := range articles {
		res[i] = ArticleResponse{
			ID:              a.ID,
			Title:           a.Title,
			Description:     a.Description,
			URL:             a.URL,
			PublicationDate: a.PublicationDate.Format(time.RFC3339),
			SourceName:      a.SourceName,
			Category:        a.Category,
			RelevanceScore:  a.RelevanceScore,
			Latitude:        a.Latitude,
			Longitude:       a.Longitude,
		}
	}

	if h.llm == nil {
		return res
	}

	var wg sync.WaitGroup
	for i := range res {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			summary, err := h.llm.Summarize(articles[i].Title, articles[i].Description)
			if err != nil || summary == "" {
				summary = summaryFallback
			}
			res[i].LLMSummary = summary
		}(i)
	}
	wg.Wait()

	return res
}
