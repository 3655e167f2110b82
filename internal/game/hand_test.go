package game

import (
	"testing"

	"cardtable/internal/card"

	"github.com/stretchr/testify/assert"
)

func c(r card.Rank, s card.Suit) card.Card {
	return card.New(r, s)
}

// hand builds a hand of clubs from ranks.
func hand(ranks ...card.Rank) Hand {
	h := make(Hand, 0, len(ranks))
	for _, r := range ranks {
		h = append(h, c(r, card.Clubs))
	}
	return h
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name string
		hand Hand
		want int
		soft bool
	}{
		{"ace king", hand(card.Ace, card.King), 21, true},
		{"two aces and nine", hand(card.Ace, card.Ace, card.Nine), 21, true},
		{"three aces", hand(card.Ace, card.Ace, card.Ace), 13, true},
		{"ace recounted", hand(card.Ace, card.Six, card.Nine), 16, false},
		{"hard twenty", hand(card.Queen, card.Jack), 20, false},
		{"bust", hand(card.Ten, card.Five, card.Seven), 22, false},
		{"four aces and seven", hand(card.Ace, card.Ace, card.Ace, card.Ace, card.Seven), 21, true},
		{"empty", Hand{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.hand.Value())
			assert.Equal(t, tt.soft, tt.hand.IsSoft())
			assert.Equal(t, tt.want > 21, tt.hand.IsBust())
		})
	}
}

func TestCanSplit(t *testing.T) {
	assert.True(t, Hand{c(card.Eight, card.Clubs), c(card.Eight, card.Diamonds)}.CanSplit())
	assert.False(t, Hand{c(card.Eight, card.Clubs), c(card.Nine, card.Diamonds)}.CanSplit())
	// same value, different rank
	assert.False(t, Hand{c(card.King, card.Clubs), c(card.Ten, card.Diamonds)}.CanSplit())
	assert.False(t, hand(card.Eight, card.Eight, card.Eight).CanSplit())
	assert.False(t, hand(card.Eight).CanSplit())
}

func TestDealerShouldDraw(t *testing.T) {
	assert.True(t, DealerShouldDraw(hand(card.Ten, card.Six)))
	assert.False(t, DealerShouldDraw(hand(card.Ten, card.Seven)))
	// soft 17 stands
	assert.False(t, DealerShouldDraw(hand(card.Ace, card.Six)))
	assert.True(t, DealerShouldDraw(hand(card.Ace, card.Five)))
}

func TestValidateBet(t *testing.T) {
	assert.NoError(t, ValidateBet(10, 100))
	assert.NoError(t, ValidateBet(100, 100))
	assert.ErrorIs(t, ValidateBet(0, 100), ErrInvalidBet)
	assert.ErrorIs(t, ValidateBet(-5, 100), ErrInvalidBet)
	assert.ErrorIs(t, ValidateBet(101, 100), ErrInvalidBet)
}
