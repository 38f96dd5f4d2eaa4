package customer

import (
	"context"
	"time"

	id "riskgate/pkg/domain"
)

// Store persists customers.
//
// Create returns sentinel.ErrAlreadyUsed when the phone or national id is
// already registered. FindByID returns sentinel.ErrNotFound for unknown
// customers. SetStatus is a no-op returning sentinel.ErrNotFound when the
// customer does not exist.
type Store interface {
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, customerID id.CustomerID) (*Customer, error)
	SetCase(ctx context.Context, customerID id.CustomerID, caseID id.CaseID, now time.Time) error
	SetStatus(ctx context.Context, customerID id.CustomerID, status Status, now time.Time) error
}
