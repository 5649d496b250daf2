package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id          TEXT PRIMARY KEY,
		email       TEXT NOT NULL UNIQUE,
		password    TEXT NOT NULL,
		name        TEXT NOT NULL,
		phone       TEXT NOT NULL DEFAULT '',
		department  TEXT NOT NULL DEFAULT '',
		role        TEXT NOT NULL,
		is_approved BOOLEAN NOT NULL DEFAULT FALSE,
		is_active   BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		slug        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		color       TEXT NOT NULL,
		icon        TEXT NOT NULL DEFAULT '',
		is_active   BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS venues (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		building   TEXT NOT NULL,
		capacity   INTEGER NOT NULL DEFAULT 0,
		facilities TEXT[] NOT NULL DEFAULT '{}',
		is_active  BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		description      TEXT NOT NULL,
		category_id      TEXT NOT NULL,
		organizer_id     TEXT NOT NULL,
		date             DATE NOT NULL,
		start_time       TEXT NOT NULL,
		end_time         TEXT NOT NULL,
		venue            TEXT NOT NULL,
		location         TEXT NOT NULL,
		capacity         INTEGER NOT NULL,
		registered_count INTEGER NOT NULL DEFAULT 0,
		waitlist_count   INTEGER NOT NULL DEFAULT 0,
		status           TEXT NOT NULL,
		image_url        TEXT NOT NULL DEFAULT '',
		tags             TEXT[] NOT NULL DEFAULT '{}',
		is_featured      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		published_at     TIMESTAMPTZ,
		cancelled_at     TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_status ON events (status)`,
	`CREATE INDEX IF NOT EXISTS idx_events_date ON events (date)`,
	`CREATE INDEX IF NOT EXISTS idx_events_category ON events (category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_organizer ON events (organizer_id)`,
	`CREATE TABLE IF NOT EXISTS registrations (
		id         TEXT PRIMARY KEY,
		event_id   TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (event_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS waitlist_entries (
		id         TEXT PRIMARY KEY,
		event_id   TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		position   INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (event_id, user_id)
	)`,
}

// seedCategories are the eight predefined campus categories. Seeding is
// idempotent: existing slugs are left untouched.
var seedCategories = []struct {
	name, slug, color, icon string
}{
	{"Academic", "academic", "blue", "book"},
	{"Career", "career", "green", "briefcase"},
	{"Cultural", "cultural", "purple", "globe"},
	{"Sports", "sports", "red", "trophy"},
	{"Arts", "arts", "pink", "palette"},
	{"Technology", "technology", "indigo", "cpu"},
	{"Wellness", "wellness", "teal", "heart"},
	{"Environmental", "environmental", "emerald", "leaf"},
}

// Migrate creates the schema if absent and seeds the predefined
// categories.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	for _, c := range seedCategories {
		_, err := pool.Exec(ctx,
			`INSERT INTO categories (id, name, slug, color, icon)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (slug) DO NOTHING`,
			uuid.New().String(), c.name, c.slug, c.color, c.icon,
		)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.slug, err)
		}
	}
	return nil
}
