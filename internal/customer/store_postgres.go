package customer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
)

// PostgresStore persists customers in PostgreSQL.
//
// The questionnaire and the advice portfolio are frozen at registration and
// only ever read back whole, so they are stored as JSONB blobs rather than
// normalized columns.
//
// Schema:
//
//	CREATE TABLE customers (
//	    id                UUID PRIMARY KEY,
//	    name              TEXT NOT NULL,
//	    phone             TEXT NOT NULL UNIQUE,
//	    national_id       TEXT NOT NULL UNIQUE,
//	    questionnaire     JSONB NOT NULL,
//	    investment_amount NUMERIC(20, 2) NOT NULL,
//	    score             INT NOT NULL,
//	    risk_tier         TEXT NOT NULL,
//	    advice            JSONB NOT NULL,
//	    case_id           UUID NOT NULL,
//	    status            TEXT NOT NULL,
//	    created_at        TIMESTAMPTZ NOT NULL,
//	    updated_at        TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const customerColumns = `id, name, phone, national_id, questionnaire, investment_amount,
	score, risk_tier, advice, case_id, status, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, c *Customer) error {
	questionnaire, err := json.Marshal(c.Questionnaire)
	if err != nil {
		return fmt.Errorf("encode questionnaire: %w", err)
	}
	portfolio, err := json.Marshal(c.Advice)
	if err != nil {
		return fmt.Errorf("encode advice: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO customers (`+customerColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		c.ID.String(), c.Name, c.Phone, c.NationalID, questionnaire, c.InvestmentAmount,
		c.Score, c.RiskTier.String(), portfolio, c.CaseID.String(), string(c.Status),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, customerID id.CustomerID) (*Customer, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, customerID.String())

	var (
		c             Customer
		questionnaire []byte
		portfolio     []byte
	)
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.NationalID, &questionnaire, &c.InvestmentAmount,
		&c.Score, &c.RiskTier, &portfolio, &c.CaseID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if err := json.Unmarshal(questionnaire, &c.Questionnaire); err != nil {
		return nil, fmt.Errorf("decode questionnaire: %w", err)
	}
	if err := json.Unmarshal(portfolio, &c.Advice); err != nil {
		return nil, fmt.Errorf("decode advice: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) SetCase(ctx context.Context, customerID id.CustomerID, caseID id.CaseID, now time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE customers SET case_id = $2, updated_at = $3 WHERE id = $1`,
		customerID.String(), caseID.String(), now,
	)
	if err != nil {
		return fmt.Errorf("set customer case: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SetStatus(ctx context.Context, customerID id.CustomerID, status Status, now time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE customers SET status = $2, updated_at = $3 WHERE id = $1`,
		customerID.String(), string(status), now,
	)
	if err != nil {
		return fmt.Errorf("set customer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
