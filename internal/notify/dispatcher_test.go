package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"riskgate/internal/workflow/models"
	id "riskgate/pkg/domain"
	"riskgate/pkg/requestcontext"
)

func newResolvedCase(t *testing.T, status id.CaseStatus) *models.Case {
	t.Helper()
	auditorID := id.NewAuditorID()
	c, err := models.NewCase(
		id.NewCaseID(), id.NewCustomerID(), id.TierModerate,
		decimal.NewFromInt(500_000),
		[]id.AuditLevel{id.LevelJunior, id.LevelSenior},
		&auditorID, time.Now(),
	)
	require.NoError(t, err)
	c.Status = status
	return c
}

func TestDispatcherDeliversTerminalOutcomes(t *testing.T) {
	store := NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	d := NewDispatcher(store, 8, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = d.Run(ctx)
	}()

	approved := newResolvedCase(t, id.StatusCompleted)
	rejected := newResolvedCase(t, id.StatusRejected)
	d.CaseResolved(ctx, approved)
	d.CaseResolved(ctx, rejected)

	require.Eventually(t, func() bool {
		got, err := store.ListByCustomer(ctx, approved.CustomerID)
		return err == nil && len(got) == 1
	}, time.Second, 10*time.Millisecond)

	got, err := store.ListByCustomer(ctx, approved.CustomerID)
	require.NoError(t, err)
	require.Equal(t, KindApproved, got[0].Kind)
	require.Equal(t, approved.ID, got[0].CaseID)

	require.Eventually(t, func() bool {
		got, err := store.ListByCustomer(ctx, rejected.CustomerID)
		return err == nil && len(got) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestDispatcherIgnoresOpenCases(t *testing.T) {
	store := NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	d := NewDispatcher(store, 1, logger)

	open := newResolvedCase(t, id.StatusInProgress)
	d.CaseResolved(context.Background(), open)

	require.Empty(t, d.inbox)
}

func TestListByCustomerNewestFirst(t *testing.T) {
	store := NewInMemoryStore()
	customerID := id.NewCustomerID()
	base := time.Now()

	ctx := context.Background()
	for i, kind := range []Kind{KindRejected, KindApproved} {
		ctx = requestcontext.WithTime(ctx, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Append(ctx, &Notification{
			CustomerID: customerID,
			Kind:       kind,
			CreatedAt:  requestcontext.Now(ctx),
		}))
	}

	got, err := store.ListByCustomer(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, KindApproved, got[0].Kind)
}
