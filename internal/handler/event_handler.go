package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/geo"
	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/model"
)

type EventStore interface {
	Append(event *model.InteractionEvent) error
}

type ArticleCatalog interface {
	Exists(id string) (bool, error)
}

type EventHandler struct {
	events   EventStore
	articles ArticleCatalog
}

func NewEventHandler(events EventStore, articles ArticleCatalog) *EventHandler {
	return &EventHandler{events: events, articles: articles}
}

// CreateEvent handles POST /events. The timestamp is set here at receipt,
// never taken from the client, and unrecognized event types are rejected
// before anything is stored.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload: " + err.Error()})
		return
	}

	if !model.ValidEventType(req.EventType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unrecognized event type: " + req.EventType})
		return
	}

	if !geo.ValidCoordinate(*req.UserLat, *req.UserLon) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}

	exists, err := h.articles.Exists(req.ArticleID)
	if err != nil {
		slog.Error("error checking article existence", "error", err, "article_id", req.ArticleID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	event := model.InteractionEvent{
		ArticleID: req.ArticleID,
		UserID:    req.UserID,
		EventType: req.EventType,
		Timestamp: time.Now(),
		Latitude:  *req.UserLat,
		Longitude: *req.UserLon,
	}

	if err := h.events.Append(&event); err != nil {
		slog.Error("error logging event", "error", err, "article_id", req.ArticleID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	slog.Info("event logged", "event_type", event.EventType, "article_id", event.ArticleID)
	c.JSON(http.StatusCreated, gin.H{"message": "Event logged successfully"})
}
