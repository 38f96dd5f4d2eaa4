package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"riskgate/internal/workflow/models"
	id "riskgate/pkg/domain"
	"riskgate/pkg/requestcontext"
)

// Dispatcher turns terminal case transitions into customer notifications.
// CaseResolved only enqueues; a background Run loop does the persisting, so
// the workflow engine never blocks on delivery.
type Dispatcher struct {
	store  Store
	inbox  chan *Notification
	logger *slog.Logger
}

func NewDispatcher(store Store, buffer int, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:  store,
		inbox:  make(chan *Notification, buffer),
		logger: logger,
	}
}

// CaseResolved satisfies the workflow notifier contract.
func (d *Dispatcher) CaseResolved(ctx context.Context, c *models.Case) {
	var kind Kind
	var message string
	switch c.Status {
	case id.StatusCompleted:
		kind = KindApproved
		message = fmt.Sprintf("Your investment application for %s has been approved.", c.InvestmentAmount.StringFixed(2))
	case id.StatusRejected:
		kind = KindRejected
		message = fmt.Sprintf("Your investment application for %s was rejected at the %s review stage.", c.InvestmentAmount.StringFixed(2), c.CurrentStage())
	default:
		return
	}

	n := &Notification{
		ID:         uuid.New(),
		CustomerID: c.CustomerID,
		CaseID:     c.ID,
		Kind:       kind,
		Message:    message,
		CreatedAt:  requestcontext.Now(ctx),
	}

	select {
	case d.inbox <- n:
	default:
		// A full inbox means delivery is badly behind; dropping one
		// best-effort message beats stalling a decision.
		d.logger.WarnContext(ctx, "notification inbox full, message dropped",
			"customer_id", n.CustomerID,
			"case_id", n.CaseID,
		)
	}
}

// Run drains the inbox until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-d.inbox:
			if err := d.store.Append(ctx, n); err != nil {
				d.logger.ErrorContext(ctx, "failed to persist notification",
					"customer_id", n.CustomerID,
					"error", err,
				)
			}
		}
	}
}
