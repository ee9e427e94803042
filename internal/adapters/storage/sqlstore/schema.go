package sqlstore

import (
	"context"
	"fmt"
	"strings"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		username   TEXT NOT NULL UNIQUE,
		email      TEXT NOT NULL UNIQUE,
		created_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dogs (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		breed          TEXT NOT NULL,
		size           TEXT NOT NULL,
		age_years      {{float}} NOT NULL,
		weight_lbs     {{float}} NOT NULL,
		color          TEXT NOT NULL,
		sex            TEXT NOT NULL,
		coat_length    TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		image_url      TEXT NOT NULL DEFAULT '',
		is_rescue      BOOLEAN NOT NULL DEFAULT FALSE,
		good_with_cats BOOLEAN NOT NULL DEFAULT FALSE,
		good_with_kids BOOLEAN NOT NULL DEFAULT FALSE,
		created_at     {{ts}} NOT NULL,
		updated_at     {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dogs_catalog ON dogs (created_at, id)`,
	`CREATE TABLE IF NOT EXISTS swipes (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		dog_id     TEXT NOT NULL REFERENCES dogs(id) ON DELETE CASCADE,
		direction  TEXT NOT NULL CHECK (direction IN ('left', 'right')),
		created_at {{ts}} NOT NULL,
		UNIQUE (user_id, dog_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_swipes_user ON swipes (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS user_preferences (
		user_id                TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		preferred_size         TEXT,
		preferred_breed        TEXT,
		preferred_coat_length  TEXT,
		min_age                {{float}},
		max_age                {{float}},
		min_weight             {{float}},
		max_weight             {{float}},
		prefers_good_with_cats BOOLEAN,
		prefers_good_with_kids BOOLEAN,
		prefers_rescue         BOOLEAN,
		updated_at             {{ts}} NOT NULL
	)`,
}

var dropOrder = []string{"user_preferences", "swipes", "dogs", "users"}

func (s *Store) ddl(stmt string) string {
	r := strings.NewReplacer("{{ts}}", "TIMESTAMPTZ", "{{float}}", "DOUBLE PRECISION")
	if s.driver == DriverSQLite {
		r = strings.NewReplacer("{{ts}}", "TIMESTAMP", "{{float}}", "REAL")
	}
	return r.Replace(stmt)
}

// Migrate crea las tablas si no existen. Es idempotente.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, s.ddl(stmt)); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Drop borra todas las tablas; lo usa el seed con --reset.
func (s *Store) Drop(ctx context.Context) error {
	for _, table := range dropOrder {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
