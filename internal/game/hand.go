package game

import (
	"errors"
	"fmt"

	"cardtable/internal/card"
)

const (
	blackjack      = 21
	dealerStandsOn = 17
)

var ErrInvalidBet = errors.New("invalid bet")

// Hand is the ordered cards held by the player, the dealer, or one split hand.
type Hand []card.Card

// Value counts every ace as 11, then turns them into 1 one at a time while the hand is over 21.
func (h Hand) Value() int {
	score, _ := h.score()
	return score
}

// IsSoft reports whether an ace is still counted as 11.
func (h Hand) IsSoft() bool {
	_, soft := h.score()
	return soft > 0
}

func (h Hand) score() (int, int) {
	score := 0
	aces := 0

	for _, c := range h {
		score += c.Rank.BlackjackValue()
		if c.Rank == card.Ace {
			aces++
		}
	}

	for score > blackjack && aces > 0 {
		score -= 10
		aces--
	}
	return score, aces
}

func (h Hand) IsBust() bool {
	return h.Value() > blackjack
}

// CanSplit is true for exactly two cards of the same rank.
func (h Hand) CanSplit() bool {
	return len(h) == 2 && h[0].Rank == h[1].Rank
}

func (h Hand) String() string {
	return fmt.Sprintf("%v", []card.Card(h))
}

// DealerShouldDraw: the dealer hits below 17, soft or hard.
func DealerShouldDraw(h Hand) bool {
	return h.Value() < dealerStandsOn
}

// ValidateBet rejects non-positive bets and bets above the balance.
func ValidateBet(bet, balance int) error {
	if bet <= 0 {
		return fmt.Errorf("%w: %d must be positive", ErrInvalidBet, bet)
	}
	if bet > balance {
		return fmt.Errorf("%w: %d exceeds balance %d", ErrInvalidBet, bet, balance)
	}
	return nil
}
