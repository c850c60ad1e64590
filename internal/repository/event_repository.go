package repository

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/model"
	"github.com/google/uuid"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Append writes one interaction event. Events are append-only: nothing in
// this repository updates or deletes them. The caller sets the timestamp at
// receipt; the ID is assigned here if missing.
func (r *EventRepository) Append(event *model.InteractionEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	_, err := r.db.Exec(`
		INSERT INTO user_events(id, article_id, user_id, event_type, ts, user_lat, user_lon)
		VALUES($1, $2, $3, $4, $5, $6, $7)
	`, event.ID, event.ArticleID, event.UserID, event.EventType, event.Timestamp,
		event.Latitude, event.Longitude)
	return err
}

func (r *EventRepository) FetchSince(t time.Time) ([]model.InteractionEvent, error) {
	rows, err := r.db.Query(`
		SELECT id, article_id, user_id, event_type, ts, user_lat, user_lon
		FROM user_events
		WHERE ts >= $1
	`, t)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.InteractionEvent
	for rows.Next() {
		var ev model.InteractionEvent
		err := rows.Scan(&ev.ID, &ev.ArticleID, &ev.UserID, &ev.EventType, &ev.Timestamp,
			&ev.Latitude, &ev.Longitude)
		if err != nil {
			slog.Warn("skipping unreadable event row", "error", err)
			continue
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
