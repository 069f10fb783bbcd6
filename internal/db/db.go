package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool and verifies the connection.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the workflow tables if they do not exist. Status is
// constrained to the closed enumeration; everything text-valued defaults to
// empty string so scans stay simple.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('requester', 'reviewer', 'approver')),
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS templates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			file_ref TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS submissions (
			id TEXT PRIMARY KEY,
			template_id TEXT NOT NULL REFERENCES templates(id),
			owner_id TEXT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL CHECK (status IN (
				'submitted', 'reviewed_by_reviewer', 'approved_by_reviewer', 'rejected_by_reviewer',
				'reviewed_by_approver', 'rejected_by_approver', 'completed')),
			submitted_file_ref TEXT NOT NULL,
			approved_file_ref TEXT NOT NULL DEFAULT '',
			reviewer_notes TEXT NOT NULL DEFAULT '',
			reviewer_id TEXT NOT NULL DEFAULT '',
			reviewer_acted_at TIMESTAMPTZ,
			approver_notes TEXT NOT NULL DEFAULT '',
			approver_id TEXT NOT NULL DEFAULT '',
			approver_acted_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_status ON submissions (status, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_owner ON submissions (owner_id, created_at DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
