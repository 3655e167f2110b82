package player

import (
	"path/filepath"
	"testing"

	"cardtable/internal/database"
	"cardtable/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "players.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB)
}

func TestPlaceBet(t *testing.T) {
	p := &Player{Balance: 100, LastBet: 10}

	require.NoError(t, p.PlaceBet(100))
	assert.Equal(t, 100, p.LastBet)
	assert.Equal(t, 100, p.Balance)

	for _, bet := range []int{0, -1, 101} {
		err := p.PlaceBet(bet)
		assert.ErrorIs(t, err, game.ErrInvalidBet, "bet %d", bet)
		assert.Equal(t, 100, p.Balance)
		assert.Equal(t, 100, p.LastBet)
	}
}

func TestApplySettlement(t *testing.T) {
	p := &Player{Balance: 100}

	p.ApplySettlement(game.Settlement{
		Results: []int{-10, -10, 0},
		Losses:  2,
		Ties:    1,
	})
	assert.Equal(t, 80, p.Balance)
	assert.Equal(t, 2, p.Losses)
	assert.Equal(t, 1, p.Ties)
	assert.Equal(t, 1, p.Games)

	p.ApplySettlement(game.Settlement{Results: []int{10}, Wins: 1})
	assert.Equal(t, 90, p.Balance)
	assert.Equal(t, 2, p.Games)
	assert.InDelta(t, 50.0, p.WinRate(), 1e-9)
}

func TestRecordHighScore(t *testing.T) {
	p := &Player{}
	assert.True(t, p.RecordHighScore(3))
	assert.False(t, p.RecordHighScore(3))
	assert.False(t, p.RecordHighScore(1))
	assert.Equal(t, 3, p.HighScore)
}

func TestCanAfford(t *testing.T) {
	p := &Player{Balance: 50}
	assert.True(t, p.CanAfford(50))
	assert.False(t, p.CanAfford(51))
	assert.Equal(t, 0.0, p.WinRate())
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := setupRepo(t)

	p, err := repo.GetOrCreate(42, 100, 10)
	require.NoError(t, err)
	assert.Equal(t, 100, p.Balance)
	assert.Equal(t, 10, p.LastBet)

	p.ApplySettlement(game.Settlement{Results: []int{25}, Wins: 1})
	p.RecordHighScore(7)
	require.NoError(t, repo.Save(p))

	got, err := repo.GetOrCreate(42, 100, 10)
	require.NoError(t, err)
	assert.Equal(t, *p, *got)
}

func TestGetTopByBalance(t *testing.T) {
	repo := setupRepo(t)

	for i, net := range []int{30, -50, 10} {
		p, err := repo.GetOrCreate(int64(i+1), 100, 10)
		require.NoError(t, err)
		p.ApplySettlement(game.Settlement{Results: []int{net}})
		require.NoError(t, repo.Save(p))
	}
	// never played, not listed
	_, err := repo.GetOrCreate(99, 1000, 10)
	require.NoError(t, err)

	stats, err := repo.GetTopByBalance(2)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, int64(1), stats[0].ChatID)
	assert.Equal(t, 130, stats[0].Balance)
	assert.Equal(t, int64(3), stats[1].ChatID)
}
