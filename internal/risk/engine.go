// Package risk converts a customer questionnaire into a bounded numeric
// score and a coarse risk tier. The tier is the workflow's routing key, so
// the weight tables below are fixed constants: changing a value shifts tier
// boundaries and with them the number of approval stages downstream.
package risk

import id "riskgate/pkg/domain"

const (
	baseScore = 50
	minScore  = 0
	maxScore  = 100
)

// Tier boundaries, inclusive lower bounds.
const (
	moderateFloor   = 40
	aggressiveFloor = 70
)

// Per-dimension signed weights keyed by the categorical answer. Answers not
// present in a table contribute zero: scoring fails open, never closed.
var (
	ageWeights = map[string]int{
		"18-30":   15,
		"31-45":   10,
		"46-60":   5,
		"over-60": -10,
	}
	incomeWeights = map[string]int{
		"over-500k": 15,
		"300-500k":  10,
		"100-300k":  5,
		"under-100k": 0,
	}
	experienceWeights = map[string]int{
		"over-5y": 15,
		"3-5y":    10,
		"1-3y":    5,
		"none":    0,
	}
	toleranceWeights = map[string]int{
		"over-30pct": 20,
		"15-30pct":   10,
		"5-15pct":    5,
		"under-5pct": -10,
	}
	goalWeights = map[string]int{
		"high-return":          15,
		"active-growth":        10,
		"steady-growth":        5,
		"capital-preservation": -5,
	}
	horizonWeights = map[string]int{
		"over-5y":  10,
		"3-5y":     5,
		"1-3y":     0,
		"under-1y": -10,
	}
)

// Engine scores questionnaires. It is stateless; the zero value is not
// usable, construct via NewEngine so future tuning knobs have a home.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Score computes the risk score for a questionnaire. The result is always
// within [0,100]; there is no error path.
func (e *Engine) Score(q Questionnaire) int {
	score := baseScore
	score += ageWeights[q.Age]
	score += incomeWeights[q.Income]
	score += experienceWeights[q.Experience]
	score += toleranceWeights[q.RiskTolerance]
	score += goalWeights[q.Goal]
	score += horizonWeights[q.Horizon]

	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// TierFor maps a score to its risk tier. Boundaries: score < 40 is
// conservative, 40 <= score < 70 is moderate, 70 and above is aggressive.
func (e *Engine) TierFor(score int) id.RiskTier {
	switch {
	case score < moderateFloor:
		return id.TierConservative
	case score < aggressiveFloor:
		return id.TierModerate
	default:
		return id.TierAggressive
	}
}

// Assess scores a questionnaire and returns both score and tier.
func (e *Engine) Assess(q Questionnaire) (int, id.RiskTier) {
	score := e.Score(q)
	return score, e.TierFor(score)
}
