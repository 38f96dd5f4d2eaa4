package customer

import (
	"context"
	"errors"
	"log/slog"

	"riskgate/internal/advice"
	"riskgate/internal/platform/metrics"
	"riskgate/internal/risk"
	"riskgate/internal/workflow/models"
	wfservice "riskgate/internal/workflow/service"
	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
	"riskgate/pkg/platform/sentinel"
	"riskgate/pkg/requestcontext"
)

// CaseCreator opens approval cases for freshly registered customers.
type CaseCreator interface {
	CreateCase(ctx context.Context, req wfservice.CreateCaseRequest) (*models.Case, error)
}

// Service runs customer intake: assessment, advice, and handoff to the
// approval workflow. It also listens for workflow resolutions to keep the
// customer status in sync.
type Service struct {
	store   Store
	engine  *risk.Engine
	advisor *advice.Advisor
	cases   CaseCreator
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(store Store, engine *risk.Engine, advisor *advice.Advisor, cases CaseCreator, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		engine:  engine,
		advisor: advisor,
		cases:   cases,
		metrics: m,
		logger:  logger,
	}
}

// Register assesses the questionnaire, freezes the advice, persists the
// customer and opens the approval case. The customer row is written before
// the case so the phone and national id uniqueness checks run first; a
// duplicate never leaves an orphaned case behind.
func (s *Service) Register(ctx context.Context, in RegistrationInput) (*Customer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	score, tier := s.engine.Assess(in.Questionnaire)
	portfolio := s.advisor.Advise(tier, in.InvestmentAmount)

	c := &Customer{
		ID:               id.NewCustomerID(),
		Name:             in.Name,
		Phone:            in.Phone,
		NationalID:       in.NationalID,
		Questionnaire:    in.Questionnaire,
		InvestmentAmount: in.InvestmentAmount,
		Score:            score,
		RiskTier:         tier,
		Advice:           portfolio,
		Status:           StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.store.Create(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "phone or national id already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist customer")
	}

	approvalCase, err := s.cases.CreateCase(ctx, wfservice.CreateCaseRequest{
		CustomerID: c.ID,
		RiskTier:   tier,
		Amount:     in.InvestmentAmount,
	})
	if err != nil {
		// The customer record stands; the case can be opened again later.
		s.logger.ErrorContext(ctx, "failed to open approval case",
			"request_id", requestcontext.RequestID(ctx),
			"customer_id", c.ID,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open approval case")
	}

	c.CaseID = approvalCase.ID
	if err := s.store.SetCase(ctx, c.ID, approvalCase.ID, now); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to link approval case")
	}

	s.metrics.IncrementCustomersRegistered()
	s.logger.InfoContext(ctx, "customer registered",
		"request_id", requestcontext.RequestID(ctx),
		"customer_id", c.ID,
		"score", score,
		"risk_tier", tier,
		"case_id", approvalCase.ID,
	)
	return c, nil
}

// Get returns a customer by id.
func (s *Service) Get(ctx context.Context, customerID id.CustomerID) (*Customer, error) {
	c, err := s.store.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "customer not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load customer")
	}
	return c, nil
}

// Advice returns the portfolio frozen at registration.
func (s *Service) Advice(ctx context.Context, customerID id.CustomerID) (*advice.Portfolio, error) {
	c, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &c.Advice, nil
}

// NameOf resolves a customer's display name for workflow views.
func (s *Service) NameOf(ctx context.Context, customerID id.CustomerID) (string, error) {
	c, err := s.store.FindByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	return c.Name, nil
}

// CaseResolved flips the customer status when their approval case reaches a
// terminal state. It satisfies the workflow notifier contract, so failures
// are logged rather than returned.
func (s *Service) CaseResolved(ctx context.Context, c *models.Case) {
	var status Status
	switch c.Status {
	case id.StatusCompleted:
		status = StatusApproved
	case id.StatusRejected:
		status = StatusRejected
	default:
		return
	}

	if err := s.store.SetStatus(ctx, c.CustomerID, status, requestcontext.Now(ctx)); err != nil {
		s.logger.ErrorContext(ctx, "failed to update customer status",
			"request_id", requestcontext.RequestID(ctx),
			"customer_id", c.CustomerID,
			"case_id", c.ID,
			"status", status,
			"error", err,
		)
		return
	}

	s.logger.InfoContext(ctx, "customer status updated",
		"customer_id", c.CustomerID,
		"case_id", c.ID,
		"status", status,
	)
}
