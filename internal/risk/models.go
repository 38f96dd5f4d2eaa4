package risk

import (
	"time"

	id "riskgate/pkg/domain"
)

// Questionnaire holds the six categorical answers a customer submits at
// intake. Answers are free-form at this layer; unrecognized values simply
// contribute nothing to the score, so a questionnaire never fails scoring.
type Questionnaire struct {
	Age           string `json:"age"`
	Income        string `json:"income"`
	Experience    string `json:"experience"`
	RiskTolerance string `json:"risk_tolerance"`
	Goal          string `json:"goal"`
	Horizon       string `json:"horizon"`
}

// Profile is the immutable result of scoring one questionnaire. A
// re-assessment produces a new Profile; existing ones are never mutated.
type Profile struct {
	CustomerID    id.CustomerID `json:"customer_id"`
	Questionnaire Questionnaire `json:"questionnaire"`
	Score         int           `json:"score"`
	Tier          id.RiskTier   `json:"tier"`
	AssessedAt    time.Time     `json:"assessed_at"`
}
