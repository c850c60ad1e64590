package handler

type ArticleResponse struct {
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
	LLMSummary      string  `json:"llm_summary,omitempty"`
}

type ArticleListResponse struct {
	Articles []ArticleResponse `json:"articles"`
}

type QueryAnalysisResponse struct {
	Intent   string   `json:"intent"`
	Entities []string `json:"entities"`
	Category string   `json:"category,omitempty"`
	Source   string   `json:"source,omitempty"`
	Location string   `json:"location,omitempty"`
}

// NewsQueryResponse is the envelope for the unified smart-query endpoint.
type NewsQueryResponse struct {
	QueryAnalysis QueryAnalysisResponse `json:"query_analysis"`
	Articles      []ArticleResponse     `json:"articles"`
}

type EventRequest struct {
	ArticleID string   `json:"article_id" binding:"required"`
	UserID    string   `json:"user_id" binding:"required"`
	EventType string   `json:"event_type" binding:"required"`
	UserLat   *float64 `json:"user_lat" binding:"required"`
	UserLon   *float64 `json:"user_lon" binding:"required"`
}
