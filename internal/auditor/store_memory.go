package auditor

import (
	"context"
	"sort"
	"strings"
	"sync"

	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
)

// InMemoryStore keeps auditors in memory. Selection order for assignment is
// deterministic: creation order within a level.
type InMemoryStore struct {
	mu       sync.RWMutex
	auditors map[id.AuditorID]*Auditor
	order    []id.AuditorID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{auditors: make(map[id.AuditorID]*Auditor)}
}

func (s *InMemoryStore) Create(_ context.Context, a *Auditor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.auditors {
		if strings.EqualFold(existing.Username, a.Username) {
			return sentinel.ErrAlreadyUsed
		}
	}
	cp := *a
	s.auditors[a.ID] = &cp
	s.order = append(s.order, a.ID)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, auditorID id.AuditorID) (*Auditor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.auditors[auditorID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByUsername(_ context.Context, username string) (*Auditor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.auditors {
		if strings.EqualFold(a.Username, username) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FirstActiveByLevel(_ context.Context, level id.AuditLevel) (*Auditor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, auditorID := range s.order {
		a := s.auditors[auditorID]
		if a.Level == level && a.IsActive() {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *InMemoryStore) SetStatus(_ context.Context, auditorID id.AuditorID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auditors[auditorID]
	if !ok {
		return sentinel.ErrNotFound
	}
	a.Status = status
	return nil
}

// List returns all auditors sorted by username. Test helper, also used by
// the seedable default pool.
func (s *InMemoryStore) List() []*Auditor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Auditor, 0, len(s.auditors))
	for _, a := range s.auditors {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}
