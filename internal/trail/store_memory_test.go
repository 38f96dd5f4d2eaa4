package trail

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "riskgate/pkg/domain"
)

type TrailStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestTrailStoreSuite(t *testing.T) {
	suite.Run(t, new(TrailStoreSuite))
}

func (s *TrailStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *TrailStoreSuite) record(caseID id.CaseID, auditorID id.AuditorID, outcome id.AuditOutcome, at time.Time) *Decision {
	return &Decision{
		ID:        uuid.New(),
		CaseID:    caseID,
		AuditorID: auditorID,
		Stage:     id.LevelJunior,
		Outcome:   outcome,
		DecidedAt: at,
	}
}

func (s *TrailStoreSuite) TestListByCaseOrdersByTimestamp() {
	caseID := id.NewCaseID()
	auditorID := id.NewAuditorID()
	base := time.Now()

	later := s.record(caseID, auditorID, id.OutcomeApproved, base.Add(time.Minute))
	earlier := s.record(caseID, auditorID, id.OutcomeNeedReview, base)
	other := s.record(id.NewCaseID(), auditorID, id.OutcomeRejected, base)

	s.Require().NoError(s.store.Append(s.ctx, later))
	s.Require().NoError(s.store.Append(s.ctx, earlier))
	s.Require().NoError(s.store.Append(s.ctx, other))

	records, err := s.store.ListByCase(s.ctx, caseID)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(id.OutcomeNeedReview, records[0].Outcome)
	s.Equal(id.OutcomeApproved, records[1].Outcome)
}

func (s *TrailStoreSuite) TestAppendCopiesRecord() {
	caseID := id.NewCaseID()
	d := s.record(caseID, id.NewAuditorID(), id.OutcomeApproved, time.Now())
	s.Require().NoError(s.store.Append(s.ctx, d))

	d.Opinion = "mutated after append"

	records, err := s.store.ListByCase(s.ctx, caseID)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Empty(records[0].Opinion, "stored record must be immutable once written")
}

func (s *TrailStoreSuite) TestCountByAuditorOutcome() {
	auditorID := id.NewAuditorID()
	now := time.Now()
	s.Require().NoError(s.store.Append(s.ctx, s.record(id.NewCaseID(), auditorID, id.OutcomeApproved, now)))
	s.Require().NoError(s.store.Append(s.ctx, s.record(id.NewCaseID(), auditorID, id.OutcomeApproved, now)))
	s.Require().NoError(s.store.Append(s.ctx, s.record(id.NewCaseID(), auditorID, id.OutcomeNeedReview, now)))
	s.Require().NoError(s.store.Append(s.ctx, s.record(id.NewCaseID(), id.NewAuditorID(), id.OutcomeApproved, now)))

	approved, err := s.store.CountByAuditorOutcome(s.ctx, auditorID, id.OutcomeApproved)
	s.Require().NoError(err)
	s.Equal(2, approved)

	review, err := s.store.CountByAuditorOutcome(s.ctx, auditorID, id.OutcomeNeedReview)
	s.Require().NoError(err)
	s.Equal(1, review)
}
