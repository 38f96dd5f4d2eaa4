//go:build integration

package auditor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"riskgate/internal/auditor"
	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
	"riskgate/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *auditor.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = auditor.NewPostgres(s.postgres.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "auditors"))
}

func newTestAuditor(username string, level id.AuditLevel, status auditor.Status, createdAt time.Time) *auditor.Auditor {
	return &auditor.Auditor{
		ID:           id.NewAuditorID(),
		Username:     username,
		PasswordHash: "x",
		Name:         "Test " + username,
		Level:        level,
		Status:       status,
		CreatedAt:    createdAt,
	}
}

func (s *PostgresStoreSuite) TestDuplicateUsernameRejected() {
	ctx := context.Background()
	now := time.Now().UTC()
	s.Require().NoError(s.store.Create(ctx, newTestAuditor("junior1", id.LevelJunior, auditor.StatusActive, now)))
	err := s.store.Create(ctx, newTestAuditor("junior1", id.LevelJunior, auditor.StatusActive, now))
	s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *PostgresStoreSuite) TestFirstActiveByLevelPicksOldest() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	newest := newTestAuditor("senior-new", id.LevelSenior, auditor.StatusActive, base.Add(time.Hour))
	oldest := newTestAuditor("senior-old", id.LevelSenior, auditor.StatusActive, base)
	inactive := newTestAuditor("senior-gone", id.LevelSenior, auditor.StatusInactive, base.Add(-time.Hour))
	for _, a := range []*auditor.Auditor{newest, oldest, inactive} {
		s.Require().NoError(s.store.Create(ctx, a))
	}

	got, err := s.store.FirstActiveByLevel(ctx, id.LevelSenior)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(oldest.ID, got.ID)
}

func (s *PostgresStoreSuite) TestFirstActiveByLevelEmptyPool() {
	got, err := s.store.FirstActiveByLevel(context.Background(), id.LevelCommittee)
	s.Require().NoError(err)
	s.Nil(got)
}
