// Package auditor owns the auditor directory: who can audit, at what level,
// and whether they are currently active. It also authenticates auditors for
// the decision boundary.
package auditor

import (
	"time"

	id "riskgate/pkg/domain"
)

// Status marks whether an auditor may receive assignments.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Auditor is a directory record. PasswordHash never leaves this package.
type Auditor struct {
	ID           id.AuditorID  `json:"id"`
	Username     string        `json:"username"`
	PasswordHash string        `json:"-"`
	Name         string        `json:"name"`
	Level        id.AuditLevel `json:"level"`
	Department   string        `json:"department,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	Status       Status        `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

// IsActive reports whether the auditor may receive assignments.
func (a *Auditor) IsActive() bool {
	return a.Status == StatusActive
}
