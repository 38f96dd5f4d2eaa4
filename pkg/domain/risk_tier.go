package domain

import dErrors "riskgate/pkg/domain-errors"

// RiskTier is the coarse classification derived from a numeric risk score.
// It is a closed set: routing rules dispatch on exactly these three values
// and treat anything else as the most conservative routing choice
// (see workflow.PlanStages).
type RiskTier string

const (
	TierConservative RiskTier = "conservative"
	TierModerate     RiskTier = "moderate"
	TierAggressive   RiskTier = "aggressive"
)

var validRiskTiers = map[RiskTier]bool{
	TierConservative: true,
	TierModerate:     true,
	TierAggressive:   true,
}

// ParseRiskTier constructs a RiskTier from external input.
//
// Errors: CodeInvalidInput when the value is empty or unsupported.
func ParseRiskTier(s string) (RiskTier, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "risk tier cannot be empty")
	}
	t := RiskTier(s)
	if !t.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid risk tier %q", s)
	}
	return t, nil
}

// IsValid checks if the tier is one of the supported enum values.
func (t RiskTier) IsValid() bool {
	return validRiskTiers[t]
}

// String returns the string representation of the tier.
func (t RiskTier) String() string {
	return string(t)
}
