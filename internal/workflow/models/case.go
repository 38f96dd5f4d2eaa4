package models

import (
	"time"

	"github.com/shopspring/decimal"

	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
)

// Case is the aggregate root for one submission moving through the approval
// workflow.
//
// Invariants:
//   - PlannedStages is non-empty, computed once at creation, never mutated
//   - StageIndex always points inside PlannedStages, so the current stage is
//     always an element of the plan
//   - Status completed/rejected is terminal: no further transitions
//   - Status in_progress implies the case advanced past the first planned
//     stage at least once
//
// The plan is exclusively owned by the case: stores must copy the slice on
// read and write so later stage changes only ever move StageIndex.
type Case struct {
	ID               id.CaseID        `json:"id"`
	CustomerID       id.CustomerID    `json:"customer_id"`
	RiskTier         id.RiskTier      `json:"risk_tier"`
	InvestmentAmount decimal.Decimal  `json:"investment_amount"`
	PlannedStages    []id.AuditLevel  `json:"planned_stages"`
	StageIndex       int              `json:"stage_index"`
	Status           id.CaseStatus    `json:"status"`
	AssignedAuditor  *id.AuditorID    `json:"assigned_auditor,omitempty"`
	Version          int64            `json:"version"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// NewCase constructs a case at the first planned stage with status pending.
func NewCase(caseID id.CaseID, customerID id.CustomerID, tier id.RiskTier, amount decimal.Decimal, plan []id.AuditLevel, assignee *id.AuditorID, now time.Time) (*Case, error) {
	if len(plan) == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "stage plan cannot be empty")
	}
	if amount.Sign() <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "investment amount must be positive")
	}
	planCopy := make([]id.AuditLevel, len(plan))
	copy(planCopy, plan)
	return &Case{
		ID:               caseID,
		CustomerID:       customerID,
		RiskTier:         tier,
		InvestmentAmount: amount,
		PlannedStages:    planCopy,
		StageIndex:       0,
		Status:           id.StatusPending,
		AssignedAuditor:  assignee,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// CurrentStage returns the stage the case is waiting on.
func (c *Case) CurrentStage() id.AuditLevel {
	return c.PlannedStages[c.StageIndex]
}

// NextStage returns the stage after the current one, if the plan has one.
func (c *Case) NextStage() (id.AuditLevel, bool) {
	if c.StageIndex+1 < len(c.PlannedStages) {
		return c.PlannedStages[c.StageIndex+1], true
	}
	return "", false
}

// IsTerminal reports whether the case admits no further decisions.
func (c *Case) IsTerminal() bool {
	return c.Status.IsTerminal()
}

// CanDecide checks that auditorID may submit a decision for this case.
// A terminal case and an assignment mismatch are both conflicts, not silent
// no-ops: the caller must see the submission rejected.
func (c *Case) CanDecide(auditorID id.AuditorID) error {
	if c.IsTerminal() {
		return dErrors.Newf(dErrors.CodeConflict, "case %s is already %s", c.ID, c.Status)
	}
	if c.AssignedAuditor == nil || *c.AssignedAuditor != auditorID {
		return dErrors.New(dErrors.CodeConflict, "case is not assigned to this auditor")
	}
	return nil
}

// ApplyApproval advances the stage pointer, or completes the case when the
// current stage is the last planned one. Returns true when the case
// advanced to another stage. nextAssignee may be nil when no qualified
// auditor is available; the case then waits unassigned at the new stage.
func (c *Case) ApplyApproval(nextAssignee *id.AuditorID, now time.Time) bool {
	if _, ok := c.NextStage(); ok {
		c.StageIndex++
		c.AssignedAuditor = nextAssignee
		c.Status = id.StatusInProgress
		c.UpdatedAt = now
		return true
	}
	c.Status = id.StatusCompleted
	c.UpdatedAt = now
	return false
}

// ApplyRejection terminates the case regardless of plan position.
func (c *Case) ApplyRejection(now time.Time) {
	c.Status = id.StatusRejected
	c.UpdatedAt = now
}

// Reassign points the case at a new auditor without moving the stage.
func (c *Case) Reassign(assignee id.AuditorID, now time.Time) {
	c.AssignedAuditor = &assignee
	c.UpdatedAt = now
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// mutate persisted state, and the plan slice is never shared.
func (c *Case) Clone() *Case {
	cp := *c
	cp.PlannedStages = make([]id.AuditLevel, len(c.PlannedStages))
	copy(cp.PlannedStages, c.PlannedStages)
	if c.AssignedAuditor != nil {
		a := *c.AssignedAuditor
		cp.AssignedAuditor = &a
	}
	return &cp
}
