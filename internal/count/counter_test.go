package count

import (
	"fmt"
	"testing"

	"cardtable/internal/card"
	"cardtable/internal/shoe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCounter(t *testing.T, decks int) *Counter {
	t.Helper()
	c, err := New(decks)
	require.NoError(t, err)
	return c
}

func TestObserveRunningCount(t *testing.T) {
	c := newCounter(t, 6)

	for _, r := range []card.Rank{card.Two, card.Two, card.Ten, card.Ace} {
		require.NoError(t, c.Observe(r))
	}

	assert.Equal(t, 0, c.RunningCount())
	assert.Equal(t, 6*52-4, c.CardsRemaining())
	assert.Equal(t, 22, c.Remaining(card.Two))
	assert.Equal(t, []card.Rank{card.Two, card.Two, card.Ten, card.Ace}, c.History())
}

func TestObserveDepletedRank(t *testing.T) {
	c := newCounter(t, 1)

	for i := 0; i < 4; i++ {
		require.NoError(t, c.Observe(card.King))
	}
	before := c.Status()

	err := c.Observe(card.King)
	assert.ErrorIs(t, err, ErrDepletedRank)
	assert.Equal(t, before, c.Status())
	assert.Len(t, c.History(), 4)
}

func TestObserveInvalidRank(t *testing.T) {
	c := newCounter(t, 1)
	assert.ErrorIs(t, c.Observe(card.Rank(1)), card.ErrUnknownRank)
	assert.Equal(t, 52, c.CardsRemaining())
}

func TestTrueCount(t *testing.T) {
	c := newCounter(t, 6)

	// ten low cards then forty-two neutral ones: running +10, 260 cards left
	lows := []card.Rank{card.Two, card.Three, card.Four, card.Five, card.Six}
	for i := 0; i < 10; i++ {
		require.NoError(t, c.Observe(lows[i%len(lows)]))
	}
	neutrals := []card.Rank{card.Seven, card.Eight, card.Nine}
	for i := 0; i < 42; i++ {
		require.NoError(t, c.Observe(neutrals[i%len(neutrals)]))
	}

	require.Equal(t, 10, c.RunningCount())
	require.Equal(t, 260, c.CardsRemaining())
	assert.InDelta(t, 2.0, c.TrueCount(), 1e-9)
	assert.Equal(t, 2.0, c.Status().TrueCount)
}

func TestTrueCountClampsToOneDeck(t *testing.T) {
	c := newCounter(t, 1)

	for _, r := range []card.Rank{card.Two, card.Three, card.Four} {
		require.NoError(t, c.Observe(r))
	}

	assert.Equal(t, 49, c.CardsRemaining())
	assert.Equal(t, 1.0, c.DecksRemaining())
	assert.Equal(t, 3.0, c.TrueCount())
}

func TestStatusRoundsTrueCount(t *testing.T) {
	c := newCounter(t, 6)
	require.NoError(t, c.Observe(card.Two))

	// 1 / (311/52)
	assert.Equal(t, 0.17, c.Status().TrueCount)
}

func TestStatusRoundsHalfLikeFormatting(t *testing.T) {
	c := newCounter(t, 2)
	for _, r := range []card.Rank{card.Two, card.Three, card.Four, card.Seven, card.Eight, card.Nine, card.Seven, card.Eight} {
		require.NoError(t, c.Observe(r))
	}
	require.Equal(t, 96, c.CardsRemaining())

	// 3 / (96/52) sits on the half
	st := c.Status()
	assert.Equal(t, 1.62, st.TrueCount)
	assert.Equal(t, fmt.Sprintf("%.2f", c.TrueCount()), fmt.Sprintf("%.2f", st.TrueCount))
}

func TestStatusOrder(t *testing.T) {
	c := newCounter(t, 2)
	require.NoError(t, c.Observe(card.Queen))

	st := c.Status()
	var order []string
	for _, rc := range st.Remaining {
		order = append(order, rc.Rank.String())
	}

	assert.Equal(t, []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "A", "J", "K", "Q"}, order)
	assert.Equal(t, 7, st.Remaining[12].Remaining)
	assert.Equal(t, 103, st.CardsRemaining)
	assert.Equal(t, -1, st.RunningCount)
}

func TestReset(t *testing.T) {
	c := newCounter(t, 6)
	for _, r := range []card.Rank{card.Ace, card.Ace, card.Five, card.Ten} {
		require.NoError(t, c.Observe(r))
	}

	c.Reset()

	assert.Equal(t, 0, c.RunningCount())
	assert.Empty(t, c.History())
	for _, r := range card.Ranks() {
		assert.Equal(t, 24, c.Remaining(r), r.String())
	}
	assert.Equal(t, 6*52, c.CardsRemaining())
}

func TestNewInvalidDecks(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, shoe.ErrInvalidDeckCount)
}
