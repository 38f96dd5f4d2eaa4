package notify

import (
	"context"
	"sort"
	"sync"

	id "riskgate/pkg/domain"
)

// InMemoryStore keeps notifications per customer, newest first.
type InMemoryStore struct {
	mu         sync.RWMutex
	byCustomer map[id.CustomerID][]*Notification
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byCustomer: make(map[id.CustomerID][]*Notification)}
}

func (s *InMemoryStore) Append(_ context.Context, n *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *n
	s.byCustomer[n.CustomerID] = append(s.byCustomer[n.CustomerID], &cp)
	return nil
}

func (s *InMemoryStore) ListByCustomer(_ context.Context, customerID id.CustomerID) ([]*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.byCustomer[customerID]
	out := make([]*Notification, 0, len(stored))
	for _, n := range stored {
		cp := *n
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
