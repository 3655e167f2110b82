package game

import (
	"context"
	"errors"
	"fmt"

	"cardtable/internal/card"
	"cardtable/internal/shoe"

	"github.com/google/uuid"
	"github.com/qmuntal/stateless"
	"github.com/sirupsen/logrus"
)

var (
	ErrRoundOver   = errors.New("round is not in the player's turn")
	ErrCannotSplit = errors.New("hand cannot be split")
)

type Phase string

const (
	PhasePlayer  Phase = "player_turn"
	PhaseDealer  Phase = "dealer_turn"
	PhaseSettled Phase = "settled"
	PhaseAborted Phase = "aborted"
)

type trigger string

const (
	triggerPlayerDone trigger = "player_done"
	triggerDealerDone trigger = "dealer_done"
	triggerAbort      trigger = "abort"
)

// Round is one Blackjack round: player hands in turn order with an active index,
// the dealer's hand, and the shoe the cards come from.
type Round struct {
	ID     uuid.UUID
	Bet    int
	Hands  []Hand
	Dealer Hand
	Active int

	finished []bool
	split    bool
	shoe     *shoe.Shoe
	machine  *stateless.StateMachine
	result   *Settlement
	log      logrus.FieldLogger
}

// NewRound deals two cards to the player and two to the dealer.
func NewRound(bet int, s *shoe.Shoe, log logrus.FieldLogger) (*Round, error) {
	if bet <= 0 {
		return nil, fmt.Errorf("%w: %d must be positive", ErrInvalidBet, bet)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := &Round{
		ID:       uuid.New(),
		Bet:      bet,
		Hands:    make([]Hand, 1, 4),
		Dealer:   make(Hand, 0, 6),
		finished: make([]bool, 1, 4),
		shoe:     s,
		machine:  stateless.NewStateMachine(PhasePlayer),
	}
	r.log = log.WithField("round_id", r.ID.String())
	r.configure()

	for _, to := range []*Hand{&r.Hands[0], &r.Hands[0], &r.Dealer, &r.Dealer} {
		c, err := s.Draw()
		if err != nil {
			return nil, fmt.Errorf("deal: %w", err)
		}
		*to = append(*to, c)
	}

	r.log.WithFields(logrus.Fields{
		"bet":    bet,
		"player": r.Hands[0].String(),
	}).Debug("round dealt")
	return r, nil
}

func (r *Round) configure() {
	r.machine.Configure(PhasePlayer).
		Permit(triggerPlayerDone, PhaseDealer).
		Permit(triggerAbort, PhaseAborted)

	r.machine.Configure(PhaseDealer).
		Permit(triggerDealerDone, PhaseSettled).
		Permit(triggerAbort, PhaseAborted)

	r.machine.Configure(PhaseSettled)
	r.machine.Configure(PhaseAborted)

	r.machine.OnTransitioning(func(_ context.Context, t stateless.Transition) {
		r.log.WithFields(logrus.Fields{
			"source":      t.Source,
			"destination": t.Destination,
			"trigger":     t.Trigger,
		}).Debug("round transition")
	})
}

func (r *Round) Phase() Phase {
	return r.machine.MustState().(Phase)
}

func (r *Round) IsActive() bool {
	return r.Phase() == PhasePlayer
}

// текущая рука
func (r *Round) Current() Hand {
	if r.Active >= len(r.Hands) {
		return nil
	}
	return r.Hands[r.Active]
}

// DealerUpcard is the dealer card shown while the player acts.
func (r *Round) DealerUpcard() card.Card {
	return r.Dealer[len(r.Dealer)-1]
}

// Result is nil until the round is settled.
func (r *Round) Result() *Settlement {
	return r.result
}

func (r *Round) HasMultipleHands() bool {
	return len(r.Hands) > 1
}

// Hit draws a card for the active hand. A bust finishes that hand.
func (r *Round) Hit() (card.Card, error) {
	if !r.IsActive() {
		return card.Card{}, ErrRoundOver
	}

	c, err := r.draw()
	if err != nil {
		return card.Card{}, err
	}
	r.Hands[r.Active] = append(r.Hands[r.Active], c)

	if r.Hands[r.Active].IsBust() {
		r.log.WithField("hand", r.Active).Debug("hand busted")
		return c, r.nextHand()
	}
	return c, nil
}

// Stand finishes the active hand.
func (r *Round) Stand() error {
	if !r.IsActive() {
		return ErrRoundOver
	}
	return r.nextHand()
}

// CanSplit allows one split per round, on a pair.
func (r *Round) CanSplit() bool {
	return r.IsActive() && !r.split && r.Current().CanSplit()
}

// Split turns the active pair into two hands, each dealt one more card.
// The second hand is played right after the first.
func (r *Round) Split() error {
	if !r.IsActive() {
		return ErrRoundOver
	}
	if !r.CanSplit() {
		return ErrCannotSplit
	}

	hand := r.Hands[r.Active]
	first, err := r.draw()
	if err != nil {
		return err
	}
	second, err := r.draw()
	if err != nil {
		return err
	}

	hands := make([]Hand, 0, len(r.Hands)+1)
	hands = append(hands, r.Hands[:r.Active]...)
	hands = append(hands, Hand{hand[0], first}, Hand{hand[1], second})
	hands = append(hands, r.Hands[r.Active+1:]...)
	r.Hands = hands

	finished := make([]bool, 0, len(r.finished)+1)
	finished = append(finished, r.finished[:r.Active+1]...)
	finished = append(finished, false)
	finished = append(finished, r.finished[r.Active+1:]...)
	r.finished = finished

	r.split = true
	r.log.WithField("hands", len(r.Hands)).Debug("hand split")
	return nil
}

// Abort ends the round without a settlement.
func (r *Round) Abort() {
	switch r.Phase() {
	case PhasePlayer, PhaseDealer:
		if err := r.machine.Fire(triggerAbort); err != nil {
			r.log.WithError(err).Error("failed to abort round")
		}
	}
}

// переход на следующую руку
func (r *Round) nextHand() error {
	r.finished[r.Active] = true

	for i := r.Active + 1; i < len(r.Hands); i++ {
		if !r.finished[i] {
			r.Active = i
			return nil
		}
	}
	return r.dealerPlay()
}

func (r *Round) dealerPlay() error {
	if err := r.machine.Fire(triggerPlayerDone); err != nil {
		return err
	}

	for DealerShouldDraw(r.Dealer) {
		c, err := r.draw()
		if err != nil {
			return err
		}
		r.Dealer = append(r.Dealer, c)
	}

	s := Settle(r.Hands, r.Dealer, r.Bet)
	r.result = &s

	r.log.WithFields(logrus.Fields{
		"dealer": r.Dealer.Value(),
		"net":    s.Net(),
	}).Debug("round settled")
	return r.machine.Fire(triggerDealerDone)
}

// draw aborts the round when the shoe runs out.
func (r *Round) draw() (card.Card, error) {
	c, err := r.shoe.Draw()
	if err != nil {
		r.log.WithError(err).Warn("shoe exhausted, aborting round")
		r.Abort()
		return card.Card{}, err
	}
	return c, nil
}
