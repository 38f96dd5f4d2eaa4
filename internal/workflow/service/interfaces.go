package service

import (
	"context"

	"github.com/shopspring/decimal"

	"riskgate/internal/trail"
	"riskgate/internal/workflow/models"
	id "riskgate/pkg/domain"
)

// CaseStore persists cases. Update must be an atomic compare-and-set on the
// case version: implementations return sentinel.ErrConflict when the stored
// version differs from the caller's, so two racing decisions can never both
// advance the same case.
type CaseStore interface {
	Create(ctx context.Context, c *models.Case) error
	FindByID(ctx context.Context, caseID id.CaseID) (*models.Case, error)
	Update(ctx context.Context, c *models.Case) error
	ListByAssignee(ctx context.Context, auditorID id.AuditorID, statuses []id.CaseStatus) ([]*models.Case, error)
	SumCompletedAmount(ctx context.Context) (decimal.Decimal, error)
}

// AuditorDirectory selects auditors for stages. Returns nil when no
// qualified active auditor exists; the engine treats that as a valid,
// non-fatal staffing gap. Directory reads are best-effort: they are not
// required to be linearizable with case mutation.
type AuditorDirectory interface {
	FirstActiveByLevel(ctx context.Context, level id.AuditLevel) (*id.AuditorID, error)
}

// Notifier observes terminal transitions. Calls are fire-and-forget: the
// engine invokes them exactly once per terminal transition, after the case
// mutation has committed, and never rolls back on notifier failure.
type Notifier interface {
	CaseResolved(ctx context.Context, c *models.Case)
}

// CustomerNames resolves display names for the dashboard's pending list.
type CustomerNames interface {
	NameOf(ctx context.Context, customerID id.CustomerID) (string, error)
}

// TrailStore is the append-only decision log (see internal/trail).
type TrailStore = trail.Store
