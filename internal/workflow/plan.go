// Package workflow owns the routing and state-transition rules of the
// approval pipeline: how many stages a case requires, who is assigned, and
// how an audit decision advances, terminates, or stalls a case.
package workflow

import (
	"github.com/shopspring/decimal"

	id "riskgate/pkg/domain"
)

// LargeAmountThreshold is the investment amount above which a moderate-tier
// case picks up an extra expert stage.
var LargeAmountThreshold = decimal.NewFromInt(1_000_000)

// PlanStages computes the ordered, non-empty list of approval stages a case
// must pass through. The plan is computed exactly once per case and frozen;
// later stage changes only move a pointer through it.
//
// Any tier outside the closed set routes like aggressive, the strictest
// plan, so an unmatched tier can never shorten review.
func PlanStages(tier id.RiskTier, amount decimal.Decimal) []id.AuditLevel {
	switch tier {
	case id.TierConservative:
		return []id.AuditLevel{id.LevelJunior}
	case id.TierModerate:
		stages := []id.AuditLevel{id.LevelJunior, id.LevelSenior}
		if amount.GreaterThan(LargeAmountThreshold) {
			stages = append(stages, id.LevelExpert)
		}
		return stages
	default:
		return []id.AuditLevel{id.LevelJunior, id.LevelSenior, id.LevelExpert, id.LevelCommittee}
	}
}
