//go:build integration

// Package containers starts throwaway backing services for integration tests.
package containers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresContainer wraps a testcontainers Postgres instance with the schema
// applied and a ready pgx pool.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	Pool      *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS auditors (
    id            UUID PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    name          TEXT NOT NULL,
    level         TEXT NOT NULL,
    department    TEXT NOT NULL DEFAULT '',
    phone         TEXT NOT NULL DEFAULT '',
    status        TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS auditors_level_status_idx ON auditors (level, status, created_at);

CREATE TABLE IF NOT EXISTS cases (
    id                UUID PRIMARY KEY,
    customer_id       UUID NOT NULL,
    risk_tier         TEXT NOT NULL,
    investment_amount NUMERIC(20, 2) NOT NULL,
    planned_stages    TEXT NOT NULL,
    stage_index       INT NOT NULL,
    status            TEXT NOT NULL,
    assigned_auditor  UUID,
    version           BIGINT NOT NULL,
    created_at        TIMESTAMPTZ NOT NULL,
    updated_at        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS cases_assignee_status_idx ON cases (assigned_auditor, status);

CREATE TABLE IF NOT EXISTS audit_trail (
    id         UUID PRIMARY KEY,
    case_id    UUID NOT NULL,
    auditor_id UUID NOT NULL,
    stage      TEXT NOT NULL,
    outcome    TEXT NOT NULL,
    opinion    TEXT NOT NULL DEFAULT '',
    decided_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS audit_trail_case_idx ON audit_trail (case_id, decided_at);

CREATE TABLE IF NOT EXISTS customers (
    id                UUID PRIMARY KEY,
    name              TEXT NOT NULL,
    phone             TEXT NOT NULL UNIQUE,
    national_id       TEXT NOT NULL UNIQUE,
    questionnaire     JSONB NOT NULL,
    investment_amount NUMERIC(20, 2) NOT NULL,
    score             INT NOT NULL,
    risk_tier         TEXT NOT NULL,
    advice            JSONB NOT NULL,
    case_id           UUID NOT NULL,
    status            TEXT NOT NULL,
    created_at        TIMESTAMPTZ NOT NULL,
    updated_at        TIMESTAMPTZ NOT NULL
);
`

// NewPostgresContainer starts a Postgres container and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("riskgate_test"),
		tcpostgres.WithUsername("riskgate"),
		tcpostgres.WithPassword("riskgate"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	pc := &PostgresContainer{Container: container, DSN: dsn, Pool: pool}
	t.Cleanup(func() {
		pc.Pool.Close()
		_ = pc.Container.Terminate(context.Background())
	})
	return pc
}

// TruncateTables clears the given tables between tests.
func (c *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := c.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}
