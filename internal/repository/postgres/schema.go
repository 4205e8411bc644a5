package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements create the tables on first run. Statements are idempotent
// so startup is safe against an already-provisioned database.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		user_preferences TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		date_time TIMESTAMPTZ NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		keywords TEXT[] NOT NULL DEFAULT '{}',
		event_type TEXT NOT NULL DEFAULT '',
		event_location_type TEXT NOT NULL DEFAULT '',
		organizer TEXT NOT NULL DEFAULT '',
		organizer_id TEXT NOT NULL DEFAULT '',
		external_link TEXT NOT NULL DEFAULT '',
		rsvp JSONB NOT NULL DEFAULT '[]',
		rsvp_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_date_time ON events (date_time)`,
	`CREATE INDEX IF NOT EXISTS idx_events_rsvp_count ON events (rsvp_count DESC)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_events_title_date_location ON events (title, date_time, location)`,
}

// EnsureSchema creates the application tables and indexes if they don't exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
