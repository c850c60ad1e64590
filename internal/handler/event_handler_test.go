package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/model"
)

type fakeEventStore struct {
	appended []*model.InteractionEvent
	err      error
}

func (f *fakeEventStore) Append(event *model.InteractionEvent) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, event)
	return nil
}

type fakeCatalog struct {
	exists bool
	err    error
}

func (f *fakeCatalog) Exists(id string) (bool, error) {
	return f.exists, f.err
}

func newEventRouter(events EventStore, articles ArticleCatalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewEventHandler(events, articles)
	r.POST("/events", h.CreateEvent)
	return r
}

func postEvent(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/events", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

const validEvent = `{"article_id":"a1","user_id":"u1","event_type":"click","user_lat":19.07,"user_lon":72.88}`

func TestCreateEvent_LogsWithServerTimestamp(t *testing.T) {
	store := &fakeEventStore{}
	r := newEventRouter(store, &fakeCatalog{exists: true})

	before := time.Now()
	w := postEvent(r, validEvent)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, len(store.appended))

	got := store.appended[0]
	assert.Equal(t, "a1", got.ArticleID)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, model.EventTypeClick, got.EventType)
	assert.Equal(t, 19.07, got.Latitude)
	assert.Equal(t, 72.88, got.Longitude)
	if got.Timestamp.Before(before) || got.Timestamp.After(time.Now()) {
		t.Errorf("timestamp not set at receipt: %v", got.Timestamp)
	}
}

func TestCreateEvent_ZeroCoordinatesAreValid(t *testing.T) {
	store := &fakeEventStore{}
	r := newEventRouter(store, &fakeCatalog{exists: true})

	w := postEvent(r, `{"article_id":"a1","user_id":"u1","event_type":"view","user_lat":0,"user_lon":0}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0.0, store.appended[0].Latitude)
	assert.Equal(t, 0.0, store.appended[0].Longitude)
}

func TestCreateEvent_UnrecognizedEventType(t *testing.T) {
	store := &fakeEventStore{}
	r := newEventRouter(store, &fakeCatalog{exists: true})

	w := postEvent(r, `{"article_id":"a1","user_id":"u1","event_type":"hover","user_lat":19.07,"user_lon":72.88}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, len(store.appended))
}

func TestCreateEvent_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty payload", `{}`},
		{"missing article id", `{"user_id":"u1","event_type":"view","user_lat":1,"user_lon":1}`},
		{"missing coordinates", `{"article_id":"a1","user_id":"u1","event_type":"view"}`},
		{"malformed json", `{"article_id":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEventRouter(&fakeEventStore{}, &fakeCatalog{exists: true})
			w := postEvent(r, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateEvent_OutOfRangeCoordinates(t *testing.T) {
	r := newEventRouter(&fakeEventStore{}, &fakeCatalog{exists: true})

	w := postEvent(r, `{"article_id":"a1","user_id":"u1","event_type":"view","user_lat":95.0,"user_lon":72.88}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEvent_UnknownArticle(t *testing.T) {
	store := &fakeEventStore{}
	r := newEventRouter(store, &fakeCatalog{exists: false})

	w := postEvent(r, validEvent)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, len(store.appended))
}

func TestCreateEvent_StorageFailure(t *testing.T) {
	r := newEventRouter(&fakeEventStore{err: errors.New("connection refused")}, &fakeCatalog{exists: true})

	w := postEvent(r, validEvent)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateEvent_CatalogFailure(t *testing.T) {
	r := newEventRouter(&fakeEventStore{}, &fakeCatalog{err: errors.New("connection refused")})

	w := postEvent(r, validEvent)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
