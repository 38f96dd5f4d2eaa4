package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "riskgate/pkg/domain-errors"
)

func TestParseIDInvariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseCaseID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseAuditorID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		got, err := ParseCustomerID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, CustomerID(valid), got)
	})

	t.Run("round trips through String", func(t *testing.T) {
		caseID := NewCaseID()
		parsed, err := ParseCaseID(caseID.String())
		require.NoError(t, err)
		assert.Equal(t, caseID, parsed)
	})
}

func TestIsNil(t *testing.T) {
	assert.True(t, AuditorID{}.IsNil())
	assert.False(t, NewAuditorID().IsNil())
}

func TestAuditLevelOrdering(t *testing.T) {
	levels := []AuditLevel{LevelJunior, LevelSenior, LevelExpert, LevelCommittee}
	for i := 0; i < len(levels)-1; i++ {
		assert.True(t, levels[i].Before(levels[i+1]),
			"%s must rank below %s", levels[i], levels[i+1])
	}
	assert.Equal(t, -1, AuditLevel("intern").Rank())
}

func TestParseEnums(t *testing.T) {
	tier, err := ParseRiskTier("moderate")
	require.NoError(t, err)
	assert.Equal(t, TierModerate, tier)
	_, err = ParseRiskTier("reckless")
	require.Error(t, err)

	outcome, err := ParseAuditOutcome("need_review")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNeedReview, outcome)
	_, err = ParseAuditOutcome("maybe")
	require.Error(t, err)

	level, err := ParseAuditLevel("committee")
	require.NoError(t, err)
	assert.Equal(t, LevelCommittee, level)
}

func TestCaseStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}
