package customer

import (
	"context"
	"strings"
	"sync"
	"time"

	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
)

// InMemoryStore is the default backend for local runs and tests.
type InMemoryStore struct {
	mu          sync.RWMutex
	byID        map[id.CustomerID]*Customer
	phones      map[string]id.CustomerID
	nationalIDs map[string]id.CustomerID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:        make(map[id.CustomerID]*Customer),
		phones:      make(map[string]id.CustomerID),
		nationalIDs: make(map[string]id.CustomerID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, c *Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	phone := strings.TrimSpace(c.Phone)
	nationalID := strings.TrimSpace(c.NationalID)
	if _, exists := s.byID[c.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	if _, exists := s.phones[phone]; exists {
		return sentinel.ErrAlreadyUsed
	}
	if _, exists := s.nationalIDs[nationalID]; exists {
		return sentinel.ErrAlreadyUsed
	}

	cp := *c
	s.byID[c.ID] = &cp
	s.phones[phone] = c.ID
	s.nationalIDs[nationalID] = c.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, customerID id.CustomerID) (*Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[customerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *InMemoryStore) SetCase(_ context.Context, customerID id.CustomerID, caseID id.CaseID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[customerID]
	if !ok {
		return sentinel.ErrNotFound
	}
	c.CaseID = caseID
	c.UpdatedAt = now
	return nil
}

func (s *InMemoryStore) SetStatus(_ context.Context, customerID id.CustomerID, status Status, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[customerID]
	if !ok {
		return sentinel.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = now
	return nil
}
