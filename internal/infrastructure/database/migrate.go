package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
)

// schema is applied in order on every start. Statements must stay idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS contact_leads (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		subject    TEXT NOT NULL,
		message    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS newsletter_subscribers (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL,
		name          TEXT,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		subscribed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS newsletter_subscribers_email_key
		ON newsletter_subscribers (LOWER(email))`,
	`CREATE TABLE IF NOT EXISTS blog_posts (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		slug         TEXT NOT NULL UNIQUE,
		excerpt      TEXT,
		content      TEXT NOT NULL,
		author       TEXT,
		tags         TEXT NOT NULL DEFAULT '',
		published    BOOLEAN NOT NULL DEFAULT FALSE,
		published_at TIMESTAMPTZ,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS job_postings (
		id                   TEXT PRIMARY KEY,
		title                TEXT NOT NULL,
		department           TEXT NOT NULL,
		location             TEXT NOT NULL,
		type                 TEXT NOT NULL,
		description          TEXT NOT NULL,
		requirements         TEXT NOT NULL DEFAULT '',
		responsibilities     TEXT NOT NULL DEFAULT '',
		salary               TEXT,
		benefits             TEXT,
		application_deadline TIMESTAMPTZ,
		is_active            BOOLEAN NOT NULL DEFAULT TRUE,
		views                INTEGER NOT NULL DEFAULT 0,
		applications         INTEGER NOT NULL DEFAULT 0,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS testimonials (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		company    TEXT NOT NULL DEFAULT '',
		position   TEXT NOT NULL DEFAULT '',
		content    TEXT NOT NULL,
		rating     INTEGER NOT NULL DEFAULT 5,
		service    TEXT,
		image      TEXT,
		is_active  BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS job_applications (
		id                 TEXT PRIMARY KEY,
		job_id             TEXT,
		full_name          TEXT NOT NULL,
		email              TEXT NOT NULL,
		phone              TEXT NOT NULL,
		position           TEXT NOT NULL,
		department         TEXT NOT NULL DEFAULT '',
		cover_letter       TEXT,
		resume_path        TEXT NOT NULL,
		education_path     TEXT,
		certification_path TEXT,
		portfolio_path     TEXT,
		status             TEXT NOT NULL DEFAULT 'pending',
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS contact_info (
		id         TEXT PRIMARY KEY,
		type       TEXT NOT NULL,
		label      TEXT NOT NULL,
		value      TEXT NOT NULL,
		platform   TEXT,
		icon       TEXT,
		is_active  BOOLEAN NOT NULL DEFAULT TRUE,
		sort_order INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		slug        TEXT NOT NULL UNIQUE,
		summary     TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		icon        TEXT,
		sort_order  INTEGER NOT NULL DEFAULT 0,
		is_active   BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS team_members (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		role       TEXT NOT NULL,
		bio        TEXT NOT NULL DEFAULT '',
		email      TEXT,
		linkedin   TEXT,
		image      TEXT,
		sort_order INTEGER NOT NULL DEFAULT 0,
		is_active  BOOLEAN NOT NULL DEFAULT TRUE
	)`,
}

// Migrate creates every table the API serves.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	log.Println("[DATABASE] Applying schema...")

	err := db.ExecuteInTransaction(ctx, func(tx pgx.Tx) error {
		for i, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("schema statement %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[DATABASE] Schema ready (%d statements)", len(schema))
	return nil
}
