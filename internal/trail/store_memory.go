package trail

import (
	"context"
	"sort"
	"sync"

	id "riskgate/pkg/domain"
)

// InMemoryStore keeps decision records in memory. It favors clarity over
// performance and is the default store for tests and local runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []*Decision
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, d *Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *d
	s.records = append(s.records, &cp)
	return nil
}

func (s *InMemoryStore) ListByCase(_ context.Context, caseID id.CaseID) ([]*Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Decision
	for _, r := range s.records {
		if r.CaseID == caseID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DecidedAt.Before(out[j].DecidedAt)
	})
	return out, nil
}

func (s *InMemoryStore) CountByAuditorOutcome(_ context.Context, auditorID id.AuditorID, outcome id.AuditOutcome) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, r := range s.records {
		if r.AuditorID == auditorID && r.Outcome == outcome {
			count++
		}
	}
	return count, nil
}
