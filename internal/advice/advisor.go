// Package advice maps a risk tier to a fixed advisory template. The advisor
// is a pure function of the tier; the amount is accepted for future
// per-amount tailoring but does not alter the template today.
package advice

import (
	"github.com/shopspring/decimal"

	id "riskgate/pkg/domain"
)

// Portfolio is the advisory template returned for a tier. Allocation units
// sum to 100.
type Portfolio struct {
	Tier              id.RiskTier     `json:"tier"`
	ExpectedReturnMin decimal.Decimal `json:"expected_return_min"`
	ExpectedReturnMax decimal.Decimal `json:"expected_return_max"`
	Allocation        map[string]int  `json:"allocation"`
	Narrative         string          `json:"narrative"`
}

var templates = map[id.RiskTier]Portfolio{
	id.TierConservative: {
		Tier:              id.TierConservative,
		ExpectedReturnMin: decimal.RequireFromString("4.0"),
		ExpectedReturnMax: decimal.RequireFromString("6.0"),
		Allocation: map[string]int{
			"money_fund":       40,
			"government_bonds": 30,
			"bank_products":    20,
			"bond_fund":        10,
		},
		Narrative: "Based on your conservative risk profile, we recommend low-risk products concentrated in money funds and government bonds for stable returns.",
	},
	id.TierModerate: {
		Tier:              id.TierModerate,
		ExpectedReturnMin: decimal.RequireFromString("6.0"),
		ExpectedReturnMax: decimal.RequireFromString("10.0"),
		Allocation: map[string]int{
			"mixed_fund":     35,
			"bond_fund":      25,
			"quality_stocks": 25,
			"money_fund":     15,
		},
		Narrative: "Based on your moderate risk profile, we recommend a balanced portfolio with measured exposure to equities and funds.",
	},
	id.TierAggressive: {
		Tier:              id.TierAggressive,
		ExpectedReturnMin: decimal.RequireFromString("10.0"),
		ExpectedReturnMax: decimal.RequireFromString("15.0"),
		Allocation: map[string]int{
			"growth_stocks":    50,
			"tech_fund":        25,
			"emerging_markets": 15,
			"bond_fund":        10,
		},
		Narrative: "Based on your aggressive risk profile, we recommend a high-yield portfolio weighted toward growth stocks and technology funds.",
	},
}

// Advisor produces portfolio recommendations.
type Advisor struct{}

func NewAdvisor() *Advisor {
	return &Advisor{}
}

// Advise returns the template for the tier. An unrecognized tier falls back
// to the moderate template so the advisory step always succeeds.
func (a *Advisor) Advise(tier id.RiskTier, amount decimal.Decimal) Portfolio {
	_ = amount // reserved for amount-sensitive tailoring
	if p, ok := templates[tier]; ok {
		return p
	}
	return templates[id.TierModerate]
}
