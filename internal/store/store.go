// Package store persists every catalog of the tracker in Postgres via pgx.
// It owns the schema and adapts itself to the catalog interfaces the indexer
// and importer reconcile against.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// schema holds the DDL for every catalog table. Companies deliberately has no
// unique index on website: soft-uniqueness is enforced by the importer because
// unlimited rows with an absent website must be allowed.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		rel_path TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL DEFAULT 'other',
		ext TEXT NOT NULL DEFAULT '',
		size_bytes BIGINT NOT NULL DEFAULT 0,
		mtime_unix BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents (kind)`,

	`CREATE TABLE IF NOT EXISTS companies (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		category TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		website TEXT,
		score TEXT NOT NULL DEFAULT '',
		reasoning TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		raw_json TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_companies_website ON companies (website)`,
	`CREATE INDEX IF NOT EXISTS idx_companies_category ON companies (category)`,

	`CREATE TABLE IF NOT EXISTS vp_points (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		job_to_be_done TEXT NOT NULL DEFAULT '',
		pain_friction TEXT NOT NULL DEFAULT '',
		outcome_metric TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS icps (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT '',
		scale TEXT NOT NULL DEFAULT '',
		decision_context TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS verticals (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS sub_verticals (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		vertical_id BIGINT NOT NULL REFERENCES verticals(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (vertical_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS hypotheses (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		title TEXT NOT NULL,
		vp_point_id BIGINT REFERENCES vp_points(id),
		icp_id BIGINT REFERENCES icps(id),
		sub_vertical_id BIGINT REFERENCES sub_verticals(id),
		pain TEXT NOT NULL DEFAULT '',
		expected_signal TEXT NOT NULL DEFAULT '',
		disqualifiers TEXT NOT NULL DEFAULT '',
		segment TEXT NOT NULL DEFAULT '',
		problem TEXT NOT NULL DEFAULT '',
		assumption TEXT NOT NULL DEFAULT '',
		channel TEXT NOT NULL DEFAULT '',
		success_metric TEXT NOT NULL DEFAULT '',
		minimal_signal TEXT NOT NULL DEFAULT '',
		decision TEXT NOT NULL DEFAULT 'open',
		decision_notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft',
		start_date DATE,
		end_date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS tals (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		hypothesis_id BIGINT NOT NULL UNIQUE REFERENCES hypotheses(id) ON DELETE CASCADE,
		name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS tal_accounts (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		tal_id BIGINT NOT NULL REFERENCES tals(id) ON DELETE CASCADE,
		company_id BIGINT NOT NULL REFERENCES companies(id),
		fit_reason TEXT NOT NULL DEFAULT '',
		pain_hint TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'not_contacted',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (tal_id, company_id)
	)`,

	`CREATE TABLE IF NOT EXISTS calls (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		hypothesis_id BIGINT REFERENCES hypotheses(id) ON DELETE CASCADE,
		tal_account_id BIGINT REFERENCES tal_accounts(id),
		company_id BIGINT REFERENCES companies(id),
		call_date DATE,
		summary TEXT NOT NULL DEFAULT '',
		transcript_url TEXT NOT NULL DEFAULT '',
		pain_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		severity INT NOT NULL DEFAULT 0,
		interest BOOLEAN NOT NULL DEFAULT FALSE,
		follow_up BOOLEAN NOT NULL DEFAULT FALSE,
		disqualifier TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_calls_hypothesis ON calls (hypothesis_id)`,
}

// InitSchema creates all catalog tables if they do not exist.
func (s *Store) InitSchema(ctx context.Context) error {
	for _, ddl := range schema {
		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
