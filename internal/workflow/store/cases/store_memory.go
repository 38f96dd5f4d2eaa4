package cases

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"riskgate/internal/workflow/models"
	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
)

// InMemoryStore keeps cases in memory with optimistic concurrency: Update
// succeeds only when the caller's Version matches the stored one, so two
// racing decisions can never both advance the same case.
type InMemoryStore struct {
	mu    sync.RWMutex
	cases map[id.CaseID]*models.Case
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{cases: make(map[id.CaseID]*models.Case)}
}

func (s *InMemoryStore) Create(_ context.Context, c *models.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.cases[c.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.cases[c.ID] = c.Clone()
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, caseID id.CaseID) (*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.cases[caseID]; ok {
		return c.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

// Update commits a mutation when c.Version matches the stored version, then
// bumps the version. Losers of a concurrent race get sentinel.ErrConflict.
func (s *InMemoryStore) Update(_ context.Context, c *models.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.cases[c.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if stored.Version != c.Version {
		return sentinel.ErrConflict
	}
	next := c.Clone()
	next.Version++
	s.cases[c.ID] = next
	c.Version = next.Version
	return nil
}

func (s *InMemoryStore) ListByAssignee(_ context.Context, auditorID id.AuditorID, statuses []id.CaseStatus) ([]*models.Case, error) {
	wanted := make(map[id.CaseStatus]bool, len(statuses))
	for _, st := range statuses {
		wanted[st] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Case
	for _, c := range s.cases {
		if c.AssignedAuditor != nil && *c.AssignedAuditor == auditorID && wanted[c.Status] {
			out = append(out, c.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) SumCompletedAmount(_ context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, c := range s.cases {
		if c.Status == id.StatusCompleted {
			total = total.Add(c.InvestmentAmount)
		}
	}
	return total, nil
}
