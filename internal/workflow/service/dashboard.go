package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"riskgate/internal/workflow"
	"riskgate/internal/workflow/models"
	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
)

// Dashboard summarizes one auditor's workload.
type Dashboard struct {
	PendingCount    int             `json:"pending_count"`
	ApprovedCount   int             `json:"approved_count"`
	NeedReviewCount int             `json:"need_review_count"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	PendingList     []PendingItem   `json:"pending_list"`
}

// PendingItem is one open case in the dashboard's work queue.
type PendingItem struct {
	CaseID       id.CaseID       `json:"case_id"`
	CustomerID   id.CustomerID   `json:"customer_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	Amount       decimal.Decimal `json:"investment_amount"`
	RiskTier     id.RiskTier     `json:"risk_tier"`
	Stage        id.AuditLevel   `json:"stage"`
	Priority     string          `json:"priority"`
	SubmittedAt  time.Time       `json:"submitted_at"`
}

// DashboardFor aggregates the auditor's queue and lifetime counters. The
// four reads are independent, so they run in parallel with shared
// cancellation.
func (e *Engine) DashboardFor(ctx context.Context, auditorID id.AuditorID, names CustomerNames) (*Dashboard, error) {
	var (
		pending    []*models.Case
		approved   int
		needReview int
		total      decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pending, err = e.cases.ListByAssignee(gctx, auditorID, []id.CaseStatus{id.StatusPending, id.StatusInProgress})
		return err
	})
	g.Go(func() error {
		var err error
		approved, err = e.trail.CountByAuditorOutcome(gctx, auditorID, id.OutcomeApproved)
		return err
	})
	g.Go(func() error {
		var err error
		needReview, err = e.trail.CountByAuditorOutcome(gctx, auditorID, id.OutcomeNeedReview)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = e.cases.SumCompletedAmount(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to aggregate dashboard")
	}

	d := &Dashboard{
		PendingCount:    len(pending),
		ApprovedCount:   approved,
		NeedReviewCount: needReview,
		TotalInvestment: total,
		PendingList:     make([]PendingItem, 0, len(pending)),
	}
	for _, c := range pending {
		item := PendingItem{
			CaseID:      c.ID,
			CustomerID:  c.CustomerID,
			Amount:      c.InvestmentAmount,
			RiskTier:    c.RiskTier,
			Stage:       c.CurrentStage(),
			Priority:    priorityFor(c.InvestmentAmount),
			SubmittedAt: c.CreatedAt,
		}
		if names != nil {
			// Name resolution is cosmetic; a miss never fails the dashboard.
			if name, err := names.NameOf(ctx, c.CustomerID); err == nil {
				item.CustomerName = name
			}
		}
		d.PendingList = append(d.PendingList, item)
	}
	return d, nil
}

func priorityFor(amount decimal.Decimal) string {
	if amount.GreaterThan(workflow.LargeAmountThreshold) {
		return "high"
	}
	return "normal"
}
