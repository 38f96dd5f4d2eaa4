// Package trail keeps the append-only record of audit decisions. The
// sequence of records for a case, ordered by timestamp, is the complete
// provenance of how it reached its current status.
package trail

import (
	"time"

	"github.com/google/uuid"

	id "riskgate/pkg/domain"
)

// Decision is one immutable audit trail entry. Records reference their case
// by identity only; nothing points back into workflow state.
type Decision struct {
	ID        uuid.UUID       `json:"id"`
	CaseID    id.CaseID       `json:"case_id"`
	AuditorID id.AuditorID    `json:"auditor_id"`
	Stage     id.AuditLevel   `json:"stage"`
	Outcome   id.AuditOutcome `json:"outcome"`
	Opinion   string          `json:"opinion,omitempty"`
	DecidedAt time.Time       `json:"decided_at"`
}
