package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"riskgate/internal/advice"
	"riskgate/internal/auditor"
	"riskgate/internal/customer"
	"riskgate/internal/notify"
	"riskgate/internal/risk"
	"riskgate/internal/trail"
	"riskgate/internal/workflow/service"
	"riskgate/internal/workflow/store/cases"
	id "riskgate/pkg/domain"
	"riskgate/pkg/testutil"
)

// newRouter wires the full intake path: registration drives the real risk
// engine, advisor, and workflow engine against in-memory stores.
func newRouter(t *testing.T) (chi.Router, *notify.InMemoryStore) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	auditorService := auditor.NewService(auditor.NewInMemoryStore(), logger)
	require.NoError(t, auditor.SeedDefaults(context.Background(), auditorService, "test"))

	engine := service.NewEngine(cases.NewInMemoryStore(), trail.NewInMemoryStore(), auditorService, nil, logger)
	customerService := customer.NewService(customer.NewInMemoryStore(), risk.NewEngine(), advice.NewAdvisor(), engine, nil, logger)
	engine.RegisterNotifier(customerService)

	notifyStore := notify.NewInMemoryStore()

	router := chi.NewRouter()
	New(customerService, notifyStore, logger).RegisterPublic(router)
	return router, notifyStore
}

func registerPayload() map[string]any {
	return map[string]any{
		"name":              "Dana Whitfield",
		"phone":             "+1-555-0100",
		"national_id":       "AB1234567",
		"investment_amount": "250000",
		"age":               "46-60",
		"income":            "100-300k",
		"experience":        "1-3y",
		"risk_tolerance":    "5-15pct",
		"goal":              "steady-growth",
		"horizon":           "1-3y",
	}
}

func TestRegisterReturnsAssessmentAndAdvice(t *testing.T) {
	router, _ := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/customers/register", registerPayload())
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusCreated)
	resp := testutil.UnmarshalResponse[registerResponse](t, rr)
	// 50 base + 5+5+5+5+5+0 from the weight tables.
	require.Equal(t, 75, resp.Customer.Score)
	require.Equal(t, id.TierAggressive, resp.Customer.RiskTier)
	require.Equal(t, customer.StatusPending, resp.Customer.Status)
	require.False(t, resp.Customer.CaseID.IsNil())
	require.NotEmpty(t, resp.Advice.Allocation)
}

func TestRegisterValidation(t *testing.T) {
	router, _ := newRouter(t)

	payload := registerPayload()
	payload["phone"] = ""
	req := testutil.NewJSONRequest(t, http.MethodPost, "/customers/register", payload)
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusUnprocessableEntity)
	testutil.AssertErrorCode(t, rr, "invalid_input")
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	router, _ := newRouter(t)

	first := testutil.NewJSONRequest(t, http.MethodPost, "/customers/register", registerPayload())
	testutil.AssertStatus(t, testutil.DoRequest(router, first), http.StatusCreated)

	second := testutil.NewJSONRequest(t, http.MethodPost, "/customers/register", registerPayload())
	rr := testutil.DoRequest(router, second)
	testutil.AssertStatus(t, rr, http.StatusConflict)
	testutil.AssertErrorCode(t, rr, "conflict")
}

func TestGetAndAdviceRoundTrip(t *testing.T) {
	router, _ := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/customers/register", registerPayload())
	created := testutil.UnmarshalResponse[registerResponse](t, testutil.DoRequest(router, req))

	get := testutil.NewRequest(t, http.MethodGet, "/customers/"+created.Customer.ID.String())
	rr := testutil.DoRequest(router, get)
	testutil.AssertStatus(t, rr, http.StatusOK)

	adviceReq := testutil.NewRequest(t, http.MethodGet, "/customers/"+created.Customer.ID.String()+"/advice")
	rr = testutil.DoRequest(router, adviceReq)
	testutil.AssertStatus(t, rr, http.StatusOK)
	portfolio := testutil.UnmarshalResponse[advice.Portfolio](t, rr)
	require.Equal(t, created.Customer.RiskTier, portfolio.Tier)
}

func TestGetUnknownCustomer(t *testing.T) {
	router, _ := newRouter(t)

	req := testutil.NewRequest(t, http.MethodGet, "/customers/"+id.NewCustomerID().String())
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestNotificationsFeed(t *testing.T) {
	router, store := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/customers/register", registerPayload())
	created := testutil.UnmarshalResponse[registerResponse](t, testutil.DoRequest(router, req))

	require.NoError(t, store.Append(context.Background(), &notify.Notification{
		CustomerID: created.Customer.ID,
		CaseID:     created.Customer.CaseID,
		Kind:       notify.KindApproved,
		Message:    "Your investment application has been approved.",
		CreatedAt:  time.Now(),
	}))

	get := testutil.NewRequest(t, http.MethodGet, "/customers/"+created.Customer.ID.String()+"/notifications")
	rr := testutil.DoRequest(router, get)
	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[struct {
		Notifications []notify.Notification `json:"notifications"`
	}](t, rr)
	require.Len(t, resp.Notifications, 1)
	require.Equal(t, notify.KindApproved, resp.Notifications[0].Kind)
}

func TestNotificationsUnknownCustomer(t *testing.T) {
	router, _ := newRouter(t)

	req := testutil.NewRequest(t, http.MethodGet, "/customers/"+id.NewCustomerID().String()+"/notifications")
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}
