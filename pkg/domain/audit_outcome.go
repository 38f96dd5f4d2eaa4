package domain

import dErrors "riskgate/pkg/domain-errors"

// AuditOutcome is the verdict an auditor submits for a stage.
//
// approved advances or completes the case and rejected terminates it.
// need_review leaves the case at its current stage for resubmission, a
// valid "return to sender" rather than an error.
type AuditOutcome string

const (
	OutcomeApproved   AuditOutcome = "approved"
	OutcomeRejected   AuditOutcome = "rejected"
	OutcomeNeedReview AuditOutcome = "need_review"
)

var validAuditOutcomes = map[AuditOutcome]bool{
	OutcomeApproved:   true,
	OutcomeRejected:   true,
	OutcomeNeedReview: true,
}

// ParseAuditOutcome constructs an AuditOutcome from external input.
//
// Errors: CodeInvalidInput when the value is empty or unsupported.
func ParseAuditOutcome(s string) (AuditOutcome, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "audit outcome cannot be empty")
	}
	o := AuditOutcome(s)
	if !o.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid audit outcome %q", s)
	}
	return o, nil
}

// IsValid checks if the outcome is one of the supported enum values.
func (o AuditOutcome) IsValid() bool {
	return validAuditOutcomes[o]
}

// String returns the string representation of the outcome.
func (o AuditOutcome) String() string {
	return string(o)
}
