package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"riskgate/internal/trail"
	"riskgate/internal/workflow"
	wfmetrics "riskgate/internal/workflow/metrics"
	"riskgate/internal/workflow/models"
	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
	"riskgate/pkg/platform/sentinel"
	"riskgate/pkg/requestcontext"
)

// Engine owns case state: it creates cases from routing output and applies
// audit decisions, the only two mutations a case ever sees.
type Engine struct {
	cases     CaseStore
	trail     TrailStore
	directory AuditorDirectory
	notifiers []Notifier
	metrics   *wfmetrics.Metrics
	logger    *slog.Logger
}

// NewEngine constructs the workflow engine. Notifiers are optional; every
// registered one is invoked once per terminal transition.
func NewEngine(cases CaseStore, trailStore TrailStore, directory AuditorDirectory, metrics *wfmetrics.Metrics, logger *slog.Logger, notifiers ...Notifier) *Engine {
	return &Engine{
		cases:     cases,
		trail:     trailStore,
		directory: directory,
		notifiers: notifiers,
		metrics:   metrics,
		logger:    logger,
	}
}

// RegisterNotifier adds a resolution listener after construction. Wiring
// only; must not be called once the engine is serving requests.
func (e *Engine) RegisterNotifier(n Notifier) {
	e.notifiers = append(e.notifiers, n)
}

// CreateCaseRequest carries intake output into the workflow.
type CreateCaseRequest struct {
	CustomerID id.CustomerID
	RiskTier   id.RiskTier
	Amount     decimal.Decimal
}

// CreateCase computes the frozen stage plan, assigns a first-stage auditor
// (or none, when the directory has no qualified active candidate) and
// persists the case at the first planned stage with status pending.
func (e *Engine) CreateCase(ctx context.Context, req CreateCaseRequest) (*models.Case, error) {
	if req.Amount.Sign() <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "investment amount must be positive")
	}

	plan := workflow.PlanStages(req.RiskTier, req.Amount)

	assignee, err := e.directory.FirstActiveByLevel(ctx, plan[0])
	if err != nil {
		return nil, err
	}

	c, err := models.NewCase(id.NewCaseID(), req.CustomerID, req.RiskTier, req.Amount, plan, assignee, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := e.cases.Create(ctx, c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist case")
	}

	e.metrics.IncrementCasesCreated(req.RiskTier)
	e.logger.InfoContext(ctx, "case created",
		"request_id", requestcontext.RequestID(ctx),
		"case_id", c.ID,
		"risk_tier", c.RiskTier,
		"planned_stages", len(c.PlannedStages),
		"assigned", c.AssignedAuditor != nil,
	)
	return c, nil
}

// SubmitDecisionRequest carries one auditor verdict.
type SubmitDecisionRequest struct {
	CaseID    id.CaseID
	AuditorID id.AuditorID
	Outcome   id.AuditOutcome
	Opinion   string
}

// SubmitDecision applies one audit decision to a case:
//
//   - rejected terminates the case at its current stage
//   - approved advances to the next planned stage (re-running assignment)
//     or completes the case at the last one
//   - need_review records the verdict and leaves the case untouched for
//     resubmission
//
// The case mutation is a compare-and-set; a lost race surfaces as
// CodeConflict and is safe to retry after re-reading. The trail record is
// appended only after the mutation commits, so trail order always matches
// the serialized order of accepted decisions.
func (e *Engine) SubmitDecision(ctx context.Context, req SubmitDecisionRequest) (*models.Case, error) {
	if !req.Outcome.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid audit outcome %q", req.Outcome)
	}

	c, err := e.cases.FindByID(ctx, req.CaseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "case not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load case")
	}

	if err := c.CanDecide(req.AuditorID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	decidedStage := c.CurrentStage()

	switch req.Outcome {
	case id.OutcomeRejected:
		c.ApplyRejection(now)
		if err := e.commit(ctx, c); err != nil {
			return nil, err
		}
	case id.OutcomeApproved:
		var nextAssignee *id.AuditorID
		if next, ok := c.NextStage(); ok {
			// Assignment for the computed next stage is authoritative; the
			// directory read may be slightly stale and that is acceptable.
			nextAssignee, err = e.directory.FirstActiveByLevel(ctx, next)
			if err != nil {
				return nil, err
			}
		}
		c.ApplyApproval(nextAssignee, now)
		if err := e.commit(ctx, c); err != nil {
			return nil, err
		}
	case id.OutcomeNeedReview:
		// Return to sender: no stage or status change, only provenance.
	}

	record := &trail.Decision{
		ID:        uuid.New(),
		CaseID:    c.ID,
		AuditorID: req.AuditorID,
		Stage:     decidedStage,
		Outcome:   req.Outcome,
		Opinion:   req.Opinion,
		DecidedAt: now,
	}
	if err := e.trail.Append(ctx, record); err != nil {
		// The transition is already committed; a trail failure must not
		// unwind it. Surface loudly and move on.
		e.logger.ErrorContext(ctx, "failed to append audit trail record",
			"request_id", requestcontext.RequestID(ctx),
			"case_id", c.ID,
			"error", err,
		)
	}

	e.metrics.IncrementDecisionsProcessed(req.Outcome)
	e.logger.InfoContext(ctx, "decision processed",
		"request_id", requestcontext.RequestID(ctx),
		"case_id", c.ID,
		"auditor_id", req.AuditorID,
		"stage", decidedStage,
		"outcome", req.Outcome,
		"status", c.Status,
	)

	if c.IsTerminal() {
		for _, n := range e.notifiers {
			n.CaseResolved(ctx, c.Clone())
		}
	}
	return c, nil
}

// PendingFor lists the open cases assigned to an auditor. Read-only.
func (e *Engine) PendingFor(ctx context.Context, auditorID id.AuditorID) ([]*models.Case, error) {
	out, err := e.cases.ListByAssignee(ctx, auditorID, []id.CaseStatus{id.StatusPending, id.StatusInProgress})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending cases")
	}
	return out, nil
}

// Reassign re-runs auditor assignment for a case stuck at its current
// stage, typically after a staffing gap left it unassigned.
//
// Errors: CodeConflict for terminal cases, CodeUnassigned when the
// directory still has no qualified active auditor.
func (e *Engine) Reassign(ctx context.Context, caseID id.CaseID) (*models.Case, error) {
	c, err := e.cases.FindByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "case not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load case")
	}
	if c.IsTerminal() {
		return nil, dErrors.Newf(dErrors.CodeConflict, "case %s is already %s", c.ID, c.Status)
	}

	assignee, err := e.directory.FirstActiveByLevel(ctx, c.CurrentStage())
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, dErrors.Newf(dErrors.CodeUnassigned, "no active auditor qualified for level %s", c.CurrentStage())
	}

	c.Reassign(*assignee, requestcontext.Now(ctx))
	if err := e.commit(ctx, c); err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "case reassigned",
		"request_id", requestcontext.RequestID(ctx),
		"case_id", c.ID,
		"stage", c.CurrentStage(),
		"auditor_id", *assignee,
	)
	return c, nil
}

// Trail returns the full decision provenance of a case, oldest first.
func (e *Engine) Trail(ctx context.Context, caseID id.CaseID) ([]*trail.Decision, error) {
	records, err := e.trail.ListByCase(ctx, caseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read audit trail")
	}
	return records, nil
}

func (e *Engine) commit(ctx context.Context, c *models.Case) error {
	if err := e.cases.Update(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			e.metrics.IncrementDecisionConflicts()
			return dErrors.New(dErrors.CodeConflict, "case was modified concurrently; re-read and retry")
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "case not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update case")
	}
	return nil
}
