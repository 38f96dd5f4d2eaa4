package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"riskgate/internal/advice"
	"riskgate/internal/customer"
	"riskgate/internal/notify"
	"riskgate/internal/risk"
	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/httputil"
	"riskgate/pkg/requestcontext"
)

// Handler exposes customer intake and self-service lookups. These endpoints
// are public: applicants have no credentials before approval.
type Handler struct {
	service       *customer.Service
	notifications notify.Reader
	logger        *slog.Logger
}

func New(service *customer.Service, notifications notify.Reader, logger *slog.Logger) *Handler {
	return &Handler{service: service, notifications: notifications, logger: logger}
}

// RegisterPublic mounts the customer endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/customers/register", h.HandleRegister)
	r.Get("/customers/{customerID}", h.HandleGet)
	r.Get("/customers/{customerID}/advice", h.HandleAdvice)
	r.Get("/customers/{customerID}/notifications", h.HandleNotifications)
}

type registerRequest struct {
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	NationalID       string          `json:"national_id"`
	InvestmentAmount decimal.Decimal `json:"investment_amount"`

	Age           string `json:"age"`
	Income        string `json:"income"`
	Experience    string `json:"experience"`
	RiskTolerance string `json:"risk_tolerance"`
	Goal          string `json:"goal"`
	Horizon       string `json:"horizon"`
}

type customerResponse struct {
	ID               id.CustomerID   `json:"id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	InvestmentAmount decimal.Decimal `json:"investment_amount"`
	Score            int             `json:"score"`
	RiskTier         id.RiskTier     `json:"risk_tier"`
	CaseID           id.CaseID       `json:"case_id"`
	Status           customer.Status `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
}

func toCustomerResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:               c.ID,
		Name:             c.Name,
		Phone:            c.Phone,
		InvestmentAmount: c.InvestmentAmount,
		Score:            c.Score,
		RiskTier:         c.RiskTier,
		CaseID:           c.CaseID,
		Status:           c.Status,
		CreatedAt:        c.CreatedAt,
	}
}

type registerResponse struct {
	Customer customerResponse `json:"customer"`
	Advice   advice.Portfolio `json:"advice"`
}

// HandleRegister handles POST /customers/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[registerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.service.Register(ctx, customer.RegistrationInput{
		Name:             req.Name,
		Phone:            req.Phone,
		NationalID:       req.NationalID,
		InvestmentAmount: req.InvestmentAmount,
		Questionnaire: risk.Questionnaire{
			Age:           req.Age,
			Income:        req.Income,
			Experience:    req.Experience,
			RiskTolerance: req.RiskTolerance,
			Goal:          req.Goal,
			Horizon:       req.Horizon,
		},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "customer registration failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, registerResponse{
		Customer: toCustomerResponse(c),
		Advice:   c.Advice,
	})
}

// HandleGet handles GET /customers/{customerID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customerID, err := id.ParseCustomerID(chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	c, err := h.service.Get(ctx, customerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCustomerResponse(c))
}

// HandleAdvice handles GET /customers/{customerID}/advice.
func (h *Handler) HandleAdvice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customerID, err := id.ParseCustomerID(chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	portfolio, err := h.service.Advice(ctx, customerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, portfolio)
}

// HandleNotifications handles GET /customers/{customerID}/notifications.
func (h *Handler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customerID, err := id.ParseCustomerID(chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	// 404 for unknown customers, empty list for known ones with no mail.
	if _, err := h.service.Get(ctx, customerID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	notifications, err := h.notifications.ListByCustomer(ctx, customerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}
