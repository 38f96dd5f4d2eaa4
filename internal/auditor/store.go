package auditor

import (
	"context"

	id "riskgate/pkg/domain"
)

// Store persists auditor records. Interface-driven so the directory can be
// backed by memory in tests and PostgreSQL in production without rewiring
// business code.
type Store interface {
	Create(ctx context.Context, a *Auditor) error
	FindByID(ctx context.Context, auditorID id.AuditorID) (*Auditor, error)
	FindByUsername(ctx context.Context, username string) (*Auditor, error)
	// FirstActiveByLevel returns the first active auditor whose level equals
	// level exactly, or nil when none exists. "None" is a fact, not an error.
	FirstActiveByLevel(ctx context.Context, level id.AuditLevel) (*Auditor, error)
	SetStatus(ctx context.Context, auditorID id.AuditorID, status Status) error
}
