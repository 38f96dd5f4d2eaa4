package trail

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	id "riskgate/pkg/domain"
)

// PostgresStore persists decision records in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE audit_trail (
//	    id         UUID PRIMARY KEY,
//	    case_id    UUID NOT NULL,
//	    auditor_id UUID NOT NULL,
//	    stage      TEXT NOT NULL,
//	    outcome    TEXT NOT NULL,
//	    opinion    TEXT NOT NULL DEFAULT '',
//	    decided_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX audit_trail_case_idx ON audit_trail (case_id, decided_at);
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, d *Decision) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO audit_trail (id, case_id, auditor_id, stage, outcome, opinion, decided_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.CaseID.String(), d.AuditorID.String(), d.Stage.String(), d.Outcome.String(), d.Opinion, d.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit trail record: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByCase(ctx context.Context, caseID id.CaseID) ([]*Decision, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, case_id, auditor_id, stage, outcome, opinion, decided_at
		 FROM audit_trail WHERE case_id = $1 ORDER BY decided_at`,
		caseID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list audit trail: %w", err)
	}
	defer rows.Close()

	var out []*Decision
	for rows.Next() {
		var (
			d                 Decision
			caseStr, audStr   string
			stageStr, outcome string
		)
		if err := rows.Scan(&d.ID, &caseStr, &audStr, &stageStr, &outcome, &d.Opinion, &d.DecidedAt); err != nil {
			return nil, fmt.Errorf("scan audit trail row: %w", err)
		}
		cid, err := id.ParseCaseID(caseStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt case id in audit trail: %w", err)
		}
		aid, err := id.ParseAuditorID(audStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt auditor id in audit trail: %w", err)
		}
		d.CaseID = cid
		d.AuditorID = aid
		d.Stage = id.AuditLevel(stageStr)
		d.Outcome = id.AuditOutcome(outcome)
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountByAuditorOutcome(ctx context.Context, auditorID id.AuditorID, outcome id.AuditOutcome) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM audit_trail WHERE auditor_id = $1 AND outcome = $2`,
		auditorID.String(), outcome.String(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count audit trail records: %w", err)
	}
	return count, nil
}
