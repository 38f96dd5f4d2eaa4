package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"riskgate/internal/workflow/models"
	"riskgate/internal/workflow/service"
	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
	"riskgate/pkg/platform/httputil"
	"riskgate/pkg/requestcontext"
)

// Handler exposes the workflow engine over HTTP. Every endpoint requires an
// authenticated auditor; the auditor identity always comes from the token,
// never from the request body.
type Handler struct {
	engine *service.Engine
	names  service.CustomerNames
	logger *slog.Logger
}

func New(engine *service.Engine, names service.CustomerNames, logger *slog.Logger) *Handler {
	return &Handler{engine: engine, names: names, logger: logger}
}

// RegisterProtected mounts the workflow endpoints on an authenticated router.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/workflow/audit", h.HandleAudit)
	r.Get("/workflow/pending", h.HandlePending)
	r.Get("/workflow/dashboard", h.HandleDashboard)
	r.Post("/workflow/cases/{caseID}/reassign", h.HandleReassign)
	r.Get("/workflow/cases/{caseID}/trail", h.HandleTrail)
}

type auditRequest struct {
	CaseID  string `json:"case_id"`
	Outcome string `json:"outcome"`
	Opinion string `json:"opinion"`
}

type caseResponse struct {
	ID               id.CaseID       `json:"id"`
	CustomerID       id.CustomerID   `json:"customer_id"`
	RiskTier         id.RiskTier     `json:"risk_tier"`
	InvestmentAmount decimal.Decimal `json:"investment_amount"`
	PlannedStages    []id.AuditLevel `json:"planned_stages"`
	CurrentStage     id.AuditLevel   `json:"current_stage"`
	Status           id.CaseStatus   `json:"status"`
	AssignedAuditor  *id.AuditorID   `json:"assigned_auditor,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func toCaseResponse(c *models.Case) caseResponse {
	return caseResponse{
		ID:               c.ID,
		CustomerID:       c.CustomerID,
		RiskTier:         c.RiskTier,
		InvestmentAmount: c.InvestmentAmount,
		PlannedStages:    c.PlannedStages,
		CurrentStage:     c.CurrentStage(),
		Status:           c.Status,
		AssignedAuditor:  c.AssignedAuditor,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// HandleAudit handles POST /workflow/audit.
func (h *Handler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	auditorID := requestcontext.AuditorID(ctx)
	if auditorID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[auditRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	caseID, err := id.ParseCaseID(req.CaseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	outcome, err := id.ParseAuditOutcome(req.Outcome)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	c, err := h.engine.SubmitDecision(ctx, service.SubmitDecisionRequest{
		CaseID:    caseID,
		AuditorID: auditorID,
		Outcome:   outcome,
		Opinion:   req.Opinion,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "audit decision rejected",
			"request_id", requestID,
			"case_id", req.CaseID,
			"auditor_id", auditorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toCaseResponse(c))
}

// HandlePending handles GET /workflow/pending.
func (h *Handler) HandlePending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	auditorID := requestcontext.AuditorID(ctx)
	if auditorID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	pending, err := h.engine.PendingFor(ctx, auditorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]caseResponse, 0, len(pending))
	for _, c := range pending {
		out = append(out, toCaseResponse(c))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"cases": out})
}

// HandleDashboard handles GET /workflow/dashboard.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	auditorID := requestcontext.AuditorID(ctx)
	if auditorID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	d, err := h.engine.DashboardFor(ctx, auditorID, h.names)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

// HandleReassign handles POST /workflow/cases/{caseID}/reassign.
func (h *Handler) HandleReassign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	auditorID := requestcontext.AuditorID(ctx)
	if auditorID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	caseID, err := id.ParseCaseID(chi.URLParam(r, "caseID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	c, err := h.engine.Reassign(ctx, caseID)
	if err != nil {
		h.logger.WarnContext(ctx, "reassignment failed",
			"request_id", requestID,
			"case_id", caseID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCaseResponse(c))
}

type trailRecord struct {
	AuditorID id.AuditorID    `json:"auditor_id"`
	Stage     id.AuditLevel   `json:"stage"`
	Outcome   id.AuditOutcome `json:"outcome"`
	Opinion   string          `json:"opinion,omitempty"`
	DecidedAt time.Time       `json:"decided_at"`
}

// HandleTrail handles GET /workflow/cases/{caseID}/trail.
func (h *Handler) HandleTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	auditorID := requestcontext.AuditorID(ctx)
	if auditorID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	caseID, err := id.ParseCaseID(chi.URLParam(r, "caseID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	records, err := h.engine.Trail(ctx, caseID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]trailRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, trailRecord{
			AuditorID: rec.AuditorID,
			Stage:     rec.Stage,
			Outcome:   rec.Outcome,
			Opinion:   rec.Opinion,
			DecidedAt: rec.DecidedAt,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"case_id": caseID, "records": out})
}
