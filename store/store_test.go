package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndLoadGame(t *testing.T) {
	s := openTestStore(t)

	game := &GameRecord{
		GameID:     "game-1",
		PlayerID:   "player-1",
		ScenarioID: 2,
		Constraints: []ConstraintRecord{
			{Attribute: "young", MinCount: 600},
		},
		Frequencies: map[string]float64{"young": 0.32},
		Correlation: map[string]map[string]float64{"young": {"local": -0.2}},
	}
	require.NoError(t, s.SaveGame(game))
	assert.False(t, game.CreatedAt.IsZero(), "SaveGame should stamp CreatedAt")

	got, err := s.Game("game-1")
	require.NoError(t, err)
	assert.Equal(t, "player-1", got.PlayerID)
	assert.Equal(t, 2, got.ScenarioID)
	assert.Equal(t, game.Constraints, got.Constraints)
	assert.Equal(t, game.Frequencies, got.Frequencies)
	assert.Equal(t, game.Correlation, got.Correlation)
}

func TestStore_GameNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Game("missing")
	assert.Error(t, err)
}

func TestStore_SaveGameRequiresID(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.SaveGame(&GameRecord{}))
}

func TestStore_AttemptsNumberedInOrder(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 3; i++ {
		a := &Attempt{
			GameID:        "game-1",
			Status:        "failed",
			AdmittedCount: 100 * (i + 1),
			RejectedCount: 50,
		}
		require.NoError(t, s.SaveAttempt(a))
		assert.Equal(t, i+1, a.Number)
		assert.NotEmpty(t, a.ID)
	}

	attempts, err := s.Attempts("game-1")
	require.NoError(t, err)
	require.Len(t, attempts, 3)
	for i, a := range attempts {
		assert.Equal(t, i+1, a.Number)
		assert.Equal(t, 100*(i+1), a.AdmittedCount)
	}

	// Attempts are scoped per game.
	other, err := s.Attempts("game-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestStore_LeaderboardMostRecentFirst(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2025, 9, 6, 20, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveLeaderboardEntry(&LeaderboardEntry{
			GameID:        "game-1",
			Timestamp:     base.Add(time.Duration(i) * time.Hour),
			Status:        "completed",
			AdmittedCount: 1000,
			RejectedCount: 1000 + i,
		}))
	}

	entries, err := s.Leaderboard(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 1002, entries[0].RejectedCount, "most recent entry first")
	assert.Equal(t, 1000, entries[2].RejectedCount)

	limited, err := s.Leaderboard(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
