package auditor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
)

// PostgresStore persists auditors in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE auditors (
//	    id            UUID PRIMARY KEY,
//	    username      TEXT NOT NULL UNIQUE,
//	    password_hash TEXT NOT NULL,
//	    name          TEXT NOT NULL,
//	    level         TEXT NOT NULL,
//	    department    TEXT NOT NULL DEFAULT '',
//	    phone         TEXT NOT NULL DEFAULT '',
//	    status        TEXT NOT NULL,
//	    created_at    TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX auditors_level_status_idx ON auditors (level, status, created_at);
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const auditorColumns = `id, username, password_hash, name, level, department, phone, status, created_at`

func (s *PostgresStore) Create(ctx context.Context, a *Auditor) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO auditors (`+auditorColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID.String(), a.Username, a.PasswordHash, a.Name, a.Level.String(),
		a.Department, a.Phone, string(a.Status), a.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create auditor: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, auditorID id.AuditorID) (*Auditor, error) {
	return s.findOne(ctx, `SELECT `+auditorColumns+` FROM auditors WHERE id = $1`, auditorID.String())
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (*Auditor, error) {
	return s.findOne(ctx, `SELECT `+auditorColumns+` FROM auditors WHERE lower(username) = lower($1)`, username)
}

func (s *PostgresStore) FirstActiveByLevel(ctx context.Context, level id.AuditLevel) (*Auditor, error) {
	a, err := s.findOne(ctx,
		`SELECT `+auditorColumns+` FROM auditors
		 WHERE level = $1 AND status = 'active'
		 ORDER BY created_at LIMIT 1`,
		level.String(),
	)
	if errors.Is(err, sentinel.ErrNotFound) {
		// No qualified active auditor is a valid outcome, not an error.
		return nil, nil
	}
	return a, err
}

func (s *PostgresStore) SetStatus(ctx context.Context, auditorID id.AuditorID, status Status) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE auditors SET status = $2 WHERE id = $1`,
		auditorID.String(), string(status),
	)
	if err != nil {
		return fmt.Errorf("set auditor status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*Auditor, error) {
	var (
		a                 Auditor
		idStr, lvl, state string
	)
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&idStr, &a.Username, &a.PasswordHash, &a.Name, &lvl,
		&a.Department, &a.Phone, &state, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("query auditor: %w", err)
	}
	parsed, err := id.ParseAuditorID(idStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt auditor id: %w", err)
	}
	a.ID = parsed
	a.Level = id.AuditLevel(lvl)
	a.Status = Status(state)
	return &a, nil
}
