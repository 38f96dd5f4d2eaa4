package customer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"riskgate/internal/advice"
	"riskgate/internal/risk"
	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
)

// Status tracks where a customer sits in the approval pipeline. It mirrors
// the resolution of the customer's workflow case.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Customer is an applicant together with the assessment produced at intake.
// Score, tier and advice are frozen at registration time; only Status moves
// afterwards, driven by the workflow outcome.
type Customer struct {
	ID               id.CustomerID
	Name             string
	Phone            string
	NationalID       string
	Questionnaire    risk.Questionnaire
	InvestmentAmount decimal.Decimal
	Score            int
	RiskTier         id.RiskTier
	Advice           advice.Portfolio
	CaseID           id.CaseID
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RegistrationInput is the raw intake form before assessment.
type RegistrationInput struct {
	Name             string
	Phone            string
	NationalID       string
	Questionnaire    risk.Questionnaire
	InvestmentAmount decimal.Decimal
}

// Validate checks the identity fields; questionnaire answers are free-form
// and unrecognized ones simply score zero.
func (in RegistrationInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "phone is required")
	}
	if strings.TrimSpace(in.NationalID) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "national id is required")
	}
	if in.InvestmentAmount.Sign() <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "investment amount must be positive")
	}
	return nil
}
