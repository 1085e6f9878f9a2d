package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResult(id string, winner *entity.PlayerID) *entity.MatchResult {
	return &entity.MatchResult{
		MatchID:    id,
		Rounds:     3,
		Wins:       [entity.PlayerCount]int{2, 1},
		Winner:     winner,
		FinishedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestResultRepository_List(t *testing.T) {
	t.Run("Returns newest first", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage)

		// Given: three finished matches
		winner := entity.PlayerID(0)
		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, resultRepo.Append(ctx, newTestResult(id, &winner)))
		}

		// When: listing all results
		results, err := resultRepo.List(ctx, 0)

		// Then: the latest one comes first
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "c", results[0].MatchID)
		assert.Equal(t, "a", results[2].MatchID)
		require.NotNil(t, results[0].Winner)
		assert.Equal(t, winner, *results[0].Winner)
	})

	t.Run("Respects the limit", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage)

		// Given: three finished matches, the last one a tie
		require.NoError(t, resultRepo.Append(ctx, newTestResult("a", nil)))
		require.NoError(t, resultRepo.Append(ctx, newTestResult("b", nil)))
		require.NoError(t, resultRepo.Append(ctx, newTestResult("c", nil)))

		// When: listing two of them
		results, err := resultRepo.List(ctx, 2)

		// Then: only the two newest come back
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "c", results[0].MatchID)
		assert.Equal(t, "b", results[1].MatchID)
		assert.Nil(t, results[0].Winner)
	})

	t.Run("Empty history", func(t *testing.T) {
		ctx, st := suite.New(t)

		results, err := NewResultRepository(st.Storage).List(ctx, 10)

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
