package db

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func Connect() error {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		fmt.Println("DATABASE_URL environment variable is not set")
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return DB.Ping()
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}

// InitSchema creates the two core tables if they are missing. There is
// deliberately no foreign key from user_events to articles: events must
// survive their article disappearing, and joins skip the orphans.
func InitSchema() error {
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS articles (
			id               TEXT PRIMARY KEY,
			title            TEXT NOT NULL,
			description      TEXT NOT NULL DEFAULT '',
			url              TEXT NOT NULL UNIQUE,
			publication_date TIMESTAMPTZ NOT NULL,
			source_name      TEXT NOT NULL,
			category         TEXT NOT NULL,
			relevance_score  DOUBLE PRECISION NOT NULL DEFAULT 0,
			latitude         DOUBLE PRECISION NOT NULL,
			longitude        DOUBLE PRECISION NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS user_events (
			id         TEXT PRIMARY KEY,
			article_id TEXT NOT NULL,
			user_id    TEXT NOT NULL,
			event_type TEXT NOT NULL,
			ts         TIMESTAMPTZ NOT NULL,
			user_lat   DOUBLE PRECISION NOT NULL,
			user_lon   DOUBLE PRECISION NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = DB.Exec(`CREATE INDEX IF NOT EXISTS idx_user_events_ts ON user_events (ts)`)
	return err
}
