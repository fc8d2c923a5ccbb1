package database

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"github.com/johanfuertv/WhereToGo-App/internal/infrastructure/clients/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS favorites (
	user_id    TEXT NOT NULL,
	place_id   TEXT NOT NULL,
	name       TEXT NOT NULL,
	place_type TEXT NOT NULL,
	image      TEXT NOT NULL DEFAULT '',
	location   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, place_id)
);

CREATE TABLE IF NOT EXISTS ratings (
	id         TEXT PRIMARY KEY,
	place_id   TEXT NOT NULL,
	place_type TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	user_name  TEXT NOT NULL DEFAULT '',
	rating     SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
	date       TIMESTAMPTZ NOT NULL,
	UNIQUE (user_id, place_id, place_type)
);
CREATE INDEX IF NOT EXISTS ratings_place_idx ON ratings (place_id, place_type);

CREATE TABLE IF NOT EXISTS reviews (
	id         TEXT PRIMARY KEY,
	place_id   TEXT NOT NULL,
	place_type TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	user_name  TEXT NOT NULL,
	rating     SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment    TEXT NOT NULL DEFAULT '',
	date       TIMESTAMPTZ NOT NULL,
	UNIQUE (user_id, place_id, place_type)
);
CREATE INDEX IF NOT EXISTS reviews_place_idx ON reviews (place_id, place_type);
`

// EnsureSchema creates the tables used by the Postgres record stores.
func EnsureSchema(ctx context.Context, client *postgres.Client) error {
	_, err := client.DB().ExecContext(ctx, schema)
	return err
}

// isUniqueViolation reports whether err is a Postgres unique constraint failure.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
