package cases

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"riskgate/internal/workflow/models"
	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
)

type CaseStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestCaseStoreSuite(t *testing.T) {
	suite.Run(t, new(CaseStoreSuite))
}

func (s *CaseStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *CaseStoreSuite) newCase(plan []id.AuditLevel, assignee *id.AuditorID) *models.Case {
	c, err := models.NewCase(id.NewCaseID(), id.NewCustomerID(), id.TierModerate,
		decimal.NewFromInt(500_000), plan, assignee, time.Now())
	s.Require().NoError(err)
	return c
}

func (s *CaseStoreSuite) TestCreateAndFind() {
	c := s.newCase([]id.AuditLevel{id.LevelJunior, id.LevelSenior}, nil)
	s.Require().NoError(s.store.Create(s.ctx, c))

	found, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(c.ID, found.ID)
	s.Equal(id.StatusPending, found.Status)
	s.Equal(id.LevelJunior, found.CurrentStage())
}

func (s *CaseStoreSuite) TestFindUnknownReturnsNotFound() {
	_, err := s.store.FindByID(s.ctx, id.NewCaseID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *CaseStoreSuite) TestFindReturnsIsolatedCopy() {
	c := s.newCase([]id.AuditLevel{id.LevelJunior, id.LevelSenior}, nil)
	s.Require().NoError(s.store.Create(s.ctx, c))

	found, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	found.PlannedStages[0] = id.LevelCommittee
	found.Status = id.StatusRejected

	fresh, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(id.LevelJunior, fresh.PlannedStages[0], "plan must not be shared with callers")
	s.Equal(id.StatusPending, fresh.Status)
}

func (s *CaseStoreSuite) TestUpdateBumpsVersion() {
	c := s.newCase([]id.AuditLevel{id.LevelJunior, id.LevelSenior}, nil)
	s.Require().NoError(s.store.Create(s.ctx, c))

	loaded, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	loaded.ApplyApproval(nil, time.Now())
	s.Require().NoError(s.store.Update(s.ctx, loaded))
	s.Equal(int64(2), loaded.Version)

	fresh, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(id.StatusInProgress, fresh.Status)
	s.Equal(id.LevelSenior, fresh.CurrentStage())
}

func (s *CaseStoreSuite) TestStaleUpdateConflicts() {
	c := s.newCase([]id.AuditLevel{id.LevelJunior, id.LevelSenior}, nil)
	s.Require().NoError(s.store.Create(s.ctx, c))

	first, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	second, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)

	first.ApplyApproval(nil, time.Now())
	s.Require().NoError(s.store.Update(s.ctx, first))

	second.ApplyRejection(time.Now())
	err = s.store.Update(s.ctx, second)
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	fresh, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(id.StatusInProgress, fresh.Status, "loser must not overwrite the winner")
}

func (s *CaseStoreSuite) TestConcurrentUpdatesExactlyOneWins() {
	c := s.newCase([]id.AuditLevel{id.LevelJunior, id.LevelSenior}, nil)
	s.Require().NoError(s.store.Create(s.ctx, c))

	const goroutines = 20
	var wg sync.WaitGroup
	var wins, conflicts atomic.Int32

	snapshot, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			attempt := snapshot.Clone()
			attempt.ApplyApproval(nil, time.Now())
			switch err := s.store.Update(s.ctx, attempt); {
			case err == nil:
				wins.Add(1)
			default:
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load())
	s.Equal(int32(goroutines-1), conflicts.Load())
}

func (s *CaseStoreSuite) TestListByAssignee() {
	auditorID := id.NewAuditorID()
	other := id.NewAuditorID()

	mine := s.newCase([]id.AuditLevel{id.LevelJunior}, &auditorID)
	theirs := s.newCase([]id.AuditLevel{id.LevelJunior}, &other)
	unassigned := s.newCase([]id.AuditLevel{id.LevelJunior}, nil)
	s.Require().NoError(s.store.Create(s.ctx, mine))
	s.Require().NoError(s.store.Create(s.ctx, theirs))
	s.Require().NoError(s.store.Create(s.ctx, unassigned))

	got, err := s.store.ListByAssignee(s.ctx, auditorID, []id.CaseStatus{id.StatusPending, id.StatusInProgress})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(mine.ID, got[0].ID)

	// Terminal cases drop out of the pending view.
	loaded, err := s.store.FindByID(s.ctx, mine.ID)
	s.Require().NoError(err)
	loaded.ApplyRejection(time.Now())
	s.Require().NoError(s.store.Update(s.ctx, loaded))

	got, err = s.store.ListByAssignee(s.ctx, auditorID, []id.CaseStatus{id.StatusPending, id.StatusInProgress})
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *CaseStoreSuite) TestSumCompletedAmount() {
	done := s.newCase([]id.AuditLevel{id.LevelJunior}, nil)
	s.Require().NoError(s.store.Create(s.ctx, done))
	loaded, err := s.store.FindByID(s.ctx, done.ID)
	s.Require().NoError(err)
	loaded.ApplyApproval(nil, time.Now()) // single stage: completes
	s.Require().NoError(s.store.Update(s.ctx, loaded))

	open := s.newCase([]id.AuditLevel{id.LevelJunior}, nil)
	s.Require().NoError(s.store.Create(s.ctx, open))

	total, err := s.store.SumCompletedAmount(s.ctx)
	s.Require().NoError(err)
	s.True(total.Equal(decimal.NewFromInt(500_000)), "got %s", total)
}
