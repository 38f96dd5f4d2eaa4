package cases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"riskgate/internal/workflow/models"
	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
)

// PostgresStore persists cases in PostgreSQL. Optimistic concurrency rides
// on a version column: UPDATE ... WHERE version = $expected affects zero
// rows when a concurrent writer committed first.
//
// Schema:
//
//	CREATE TABLE cases (
//	    id                UUID PRIMARY KEY,
//	    customer_id       UUID NOT NULL,
//	    risk_tier         TEXT NOT NULL,
//	    investment_amount NUMERIC(15,2) NOT NULL,
//	    planned_stages    TEXT NOT NULL,
//	    stage_index       INT NOT NULL,
//	    status            TEXT NOT NULL,
//	    assigned_auditor  UUID,
//	    version           BIGINT NOT NULL,
//	    created_at        TIMESTAMPTZ NOT NULL,
//	    updated_at        TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX cases_assignee_status_idx ON cases (assigned_auditor, status);
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, c *models.Case) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO cases (id, customer_id, risk_tier, investment_amount, planned_stages,
		                    stage_index, status, assigned_auditor, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID.String(), c.CustomerID.String(), c.RiskTier.String(), c.InvestmentAmount,
		encodePlan(c.PlannedStages), c.StageIndex, c.Status.String(),
		assigneeArg(c.AssignedAuditor), c.Version, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create case: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, caseID id.CaseID) (*models.Case, error) {
	row := s.pool.QueryRow(ctx, selectCases+` WHERE id = $1`, caseID.String())
	c, err := scanCase(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *PostgresStore) Update(ctx context.Context, c *models.Case) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE cases
		 SET stage_index = $2, status = $3, assigned_auditor = $4, version = version + 1, updated_at = $5
		 WHERE id = $1 AND version = $6`,
		c.ID.String(), c.StageIndex, c.Status.String(), assigneeArg(c.AssignedAuditor), c.UpdatedAt, c.Version,
	)
	if err != nil {
		return fmt.Errorf("update case: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the case vanished or a concurrent writer bumped the version.
		var exists bool
		if err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM cases WHERE id = $1)`, c.ID.String()).Scan(&exists); err != nil {
			return fmt.Errorf("update case: %w", err)
		}
		if !exists {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	c.Version++
	return nil
}

func (s *PostgresStore) ListByAssignee(ctx context.Context, auditorID id.AuditorID, statuses []id.CaseStatus) ([]*models.Case, error) {
	statusStrs := make([]string, len(statuses))
	for i, st := range statuses {
		statusStrs[i] = st.String()
	}
	rows, err := s.pool.Query(ctx,
		selectCases+` WHERE assigned_auditor = $1 AND status = ANY($2) ORDER BY created_at`,
		auditorID.String(), statusStrs,
	)
	if err != nil {
		return nil, fmt.Errorf("list cases by assignee: %w", err)
	}
	defer rows.Close()

	var out []*models.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SumCompletedAmount(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(investment_amount), 0) FROM cases WHERE status = 'completed'`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum completed amount: %w", err)
	}
	return total, nil
}

const selectCases = `SELECT id, customer_id, risk_tier, investment_amount, planned_stages,
       stage_index, status, assigned_auditor, version, created_at, updated_at
FROM cases`

func scanCase(row pgx.Row) (*models.Case, error) {
	var (
		c                models.Case
		idStr, custStr   string
		tierStr, plan    string
		statusStr        string
		assignee         *string
	)
	err := row.Scan(&idStr, &custStr, &tierStr, &c.InvestmentAmount, &plan,
		&c.StageIndex, &statusStr, &assignee, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	caseID, err := id.ParseCaseID(idStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt case id: %w", err)
	}
	custID, err := id.ParseCustomerID(custStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt customer id: %w", err)
	}
	c.ID = caseID
	c.CustomerID = custID
	c.RiskTier = id.RiskTier(tierStr)
	c.Status = id.CaseStatus(statusStr)
	c.PlannedStages = decodePlan(plan)
	if assignee != nil {
		aid, err := id.ParseAuditorID(*assignee)
		if err != nil {
			return nil, fmt.Errorf("corrupt assignee id: %w", err)
		}
		c.AssignedAuditor = &aid
	}
	return &c, nil
}

// The plan is a frozen ordered list, so a comma-joined text column keeps it
// readable in psql without a join table.
func encodePlan(plan []id.AuditLevel) string {
	parts := make([]string, len(plan))
	for i, l := range plan {
		parts[i] = l.String()
	}
	return strings.Join(parts, ",")
}

func decodePlan(raw string) []id.AuditLevel {
	parts := strings.Split(raw, ",")
	plan := make([]id.AuditLevel, len(parts))
	for i, p := range parts {
		plan[i] = id.AuditLevel(p)
	}
	return plan
}

func assigneeArg(assignee *id.AuditorID) *string {
	if assignee == nil {
		return nil
	}
	s := assignee.String()
	return &s
}
