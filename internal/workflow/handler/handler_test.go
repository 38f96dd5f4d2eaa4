package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"riskgate/internal/trail"
	"riskgate/internal/workflow/models"
	"riskgate/internal/workflow/service"
	"riskgate/internal/workflow/store/cases"
	id "riskgate/pkg/domain"
	"riskgate/pkg/testutil"
)

// fixedDirectory assigns a predetermined auditor per level.
type fixedDirectory map[id.AuditLevel]id.AuditorID

func (d fixedDirectory) FirstActiveByLevel(_ context.Context, level id.AuditLevel) (*id.AuditorID, error) {
	if auditorID, ok := d[level]; ok {
		return &auditorID, nil
	}
	return nil, nil
}

type fixture struct {
	router    chi.Router
	engine    *service.Engine
	directory fixedDirectory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	directory := fixedDirectory{
		id.LevelJunior: id.NewAuditorID(),
		id.LevelSenior: id.NewAuditorID(),
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	engine := service.NewEngine(cases.NewInMemoryStore(), trail.NewInMemoryStore(), directory, nil, logger)

	router := chi.NewRouter()
	New(engine, nil, logger).RegisterProtected(router)
	return &fixture{router: router, engine: engine, directory: directory}
}

func (f *fixture) createCase(t *testing.T) *models.Case {
	t.Helper()
	c, err := f.engine.CreateCase(context.Background(), service.CreateCaseRequest{
		CustomerID: id.NewCustomerID(),
		RiskTier:   id.TierModerate,
		Amount:     decimal.NewFromInt(500_000),
	})
	require.NoError(t, err)
	return c
}

func TestAuditRequiresAuthentication(t *testing.T) {
	f := newFixture(t)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/workflow/audit", map[string]string{})
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	testutil.AssertErrorCode(t, rr, "unauthorized")
}

func TestAuditApprovesAndAdvances(t *testing.T) {
	f := newFixture(t)
	c := f.createCase(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/workflow/audit", map[string]string{
		"case_id": c.ID.String(),
		"outcome": "approved",
		"opinion": "documents verified",
	})
	req = testutil.WithAuditor(req, f.directory[id.LevelJunior])
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[caseResponse](t, rr)
	require.Equal(t, id.StatusInProgress, resp.Status)
	require.Equal(t, id.LevelSenior, resp.CurrentStage)
}

func TestAuditByWrongAuditorConflicts(t *testing.T) {
	f := newFixture(t)
	c := f.createCase(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/workflow/audit", map[string]string{
		"case_id": c.ID.String(),
		"outcome": "approved",
	})
	req = testutil.WithAuditor(req, id.NewAuditorID())
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusConflict)
	testutil.AssertErrorCode(t, rr, "conflict")
}

func TestAuditRejectsBadOutcome(t *testing.T) {
	f := newFixture(t)
	c := f.createCase(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/workflow/audit", map[string]string{
		"case_id": c.ID.String(),
		"outcome": "maybe",
	})
	req = testutil.WithAuditor(req, f.directory[id.LevelJunior])
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusUnprocessableEntity)
}

func TestPendingListsAssignedCases(t *testing.T) {
	f := newFixture(t)
	f.createCase(t)
	f.createCase(t)

	req := testutil.NewRequest(t, http.MethodGet, "/workflow/pending")
	req = testutil.WithAuditor(req, f.directory[id.LevelJunior])
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[struct {
		Cases []caseResponse `json:"cases"`
	}](t, rr)
	require.Len(t, resp.Cases, 2)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	f.createCase(t)

	req := testutil.NewRequest(t, http.MethodGet, "/workflow/dashboard")
	req = testutil.WithAuditor(req, f.directory[id.LevelJunior])
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[service.Dashboard](t, rr)
	require.Equal(t, 1, resp.PendingCount)
}

func TestReassignUnknownCase(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/workflow/cases/"+id.NewCaseID().String()+"/reassign", nil)
	req = testutil.WithAuditor(req, f.directory[id.LevelJunior])
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestTrailReturnsDecisions(t *testing.T) {
	f := newFixture(t)
	c := f.createCase(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/workflow/audit", map[string]string{
		"case_id": c.ID.String(),
		"outcome": "need_review",
		"opinion": "income proof is stale",
	})
	req = testutil.WithAuditor(req, f.directory[id.LevelJunior])
	testutil.AssertStatus(t, testutil.DoRequest(f.router, req), http.StatusOK)

	get := testutil.NewRequest(t, http.MethodGet, "/workflow/cases/"+c.ID.String()+"/trail")
	get = testutil.WithAuditor(get, f.directory[id.LevelJunior])
	rr := testutil.DoRequest(f.router, get)

	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[struct {
		Records []trailRecord `json:"records"`
	}](t, rr)
	require.Len(t, resp.Records, 1)
	require.Equal(t, id.OutcomeNeedReview, resp.Records[0].Outcome)
	require.Equal(t, "income proof is stale", resp.Records[0].Opinion)
}
