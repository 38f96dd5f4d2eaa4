package domain

import dErrors "riskgate/pkg/domain-errors"

// CaseStatus is the workflow state of a case.
//
// Transitions: pending → in_progress → completed | rejected, with pending →
// completed permitted for single-stage plans and pending/in_progress →
// rejected at any stage. Terminal statuses admit no further transitions.
type CaseStatus string

const (
	StatusPending    CaseStatus = "pending"
	StatusInProgress CaseStatus = "in_progress"
	StatusCompleted  CaseStatus = "completed"
	StatusRejected   CaseStatus = "rejected"
)

var validCaseStatuses = map[CaseStatus]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusRejected:   true,
}

// ParseCaseStatus constructs a CaseStatus from external input.
func ParseCaseStatus(s string) (CaseStatus, error) {
	st := CaseStatus(s)
	if !validCaseStatuses[st] {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid case status %q", s)
	}
	return st, nil
}

// IsValid checks if the status is one of the supported enum values.
func (s CaseStatus) IsValid() bool {
	return validCaseStatuses[s]
}

// IsTerminal reports whether the status admits no further transitions.
func (s CaseStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// String returns the string representation of the status.
func (s CaseStatus) String() string {
	return string(s)
}
