package domain

import dErrors "riskgate/pkg/domain-errors"

// AuditLevel is an ordered approval tier. It doubles as a case's stage
// pointer and an auditor's qualification.
//
// Ordering: junior < senior < expert < committee.
type AuditLevel string

const (
	LevelJunior    AuditLevel = "junior"
	LevelSenior    AuditLevel = "senior"
	LevelExpert    AuditLevel = "expert"
	LevelCommittee AuditLevel = "committee"
)

// levelRanks is the single source of truth for level ordering.
var levelRanks = map[AuditLevel]int{
	LevelJunior:    0,
	LevelSenior:    1,
	LevelExpert:    2,
	LevelCommittee: 3,
}

// ParseAuditLevel constructs an AuditLevel from external input.
//
// Errors: CodeInvalidInput when the value is empty or unsupported.
func ParseAuditLevel(s string) (AuditLevel, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "audit level cannot be empty")
	}
	l := AuditLevel(s)
	if !l.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid audit level %q", s)
	}
	return l, nil
}

// IsValid checks if the level is one of the supported enum values.
func (l AuditLevel) IsValid() bool {
	_, ok := levelRanks[l]
	return ok
}

// Rank returns the level's position in the seniority order; -1 for an
// invalid level so comparisons against real levels always fail.
func (l AuditLevel) Rank() int {
	if r, ok := levelRanks[l]; ok {
		return r
	}
	return -1
}

// Before reports whether l is strictly junior to other.
func (l AuditLevel) Before(other AuditLevel) bool {
	return l.Rank() < other.Rank()
}

// String returns the string representation of the level.
func (l AuditLevel) String() string {
	return string(l)
}
