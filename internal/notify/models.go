// Package notify delivers resolution messages to customers. Delivery is
// in-process and best effort: a full outbox would be overkill while the only
// channel is the customer's own notification feed.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	id "riskgate/pkg/domain"
)

// Kind labels what a notification is about.
type Kind string

const (
	KindApproved Kind = "application_approved"
	KindRejected Kind = "application_rejected"
)

// Notification is one message addressed to a customer.
type Notification struct {
	ID         uuid.UUID     `json:"id"`
	CustomerID id.CustomerID `json:"customer_id"`
	CaseID     id.CaseID     `json:"case_id"`
	Kind       Kind          `json:"kind"`
	Message    string        `json:"message"`
	CreatedAt  time.Time     `json:"created_at"`
}

// Reader serves a customer's notification feed.
type Reader interface {
	ListByCustomer(ctx context.Context, customerID id.CustomerID) ([]*Notification, error)
}

// Store persists notifications.
type Store interface {
	Reader
	Append(ctx context.Context, n *Notification) error
}
