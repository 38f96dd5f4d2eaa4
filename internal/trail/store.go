package trail

import (
	"context"

	id "riskgate/pkg/domain"
)

// Store persists decision records. Appends across different cases may run
// concurrently; within one case the workflow engine serializes appends by
// committing the case transition first.
type Store interface {
	Append(ctx context.Context, d *Decision) error
	ListByCase(ctx context.Context, caseID id.CaseID) ([]*Decision, error)
	CountByAuditorOutcome(ctx context.Context, auditorID id.AuditorID, outcome id.AuditOutcome) (int, error)
}
