package hilo

import (
	"errors"
	"fmt"

	"cardtable/internal/card"
	"cardtable/internal/shoe"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrGameOver = errors.New("game is over")

type Guess int

const (
	Higher Guess = iota
	Lower
)

type Outcome int

const (
	OutcomeCorrect Outcome = iota
	OutcomeTie
	OutcomeWrong
)

type Turn struct {
	Previous card.Card
	Next     card.Card
	Outcome  Outcome
}

// Hint holds the odds for the next card, ignoring cards equal to the current rank.
type Hint struct {
	Higher    float64
	Lower     float64
	Remaining int
	AllEqual  bool
}

// Game is a higher-or-lower run over one shoe. Aces are high.
type Game struct {
	ID        uuid.UUID
	Current   card.Card
	Score     int
	HighScore int
	Over      bool

	shoe *shoe.Shoe
	log  logrus.FieldLogger
}

func New(s *shoe.Shoe, log logrus.FieldLogger) (*Game, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	g := &Game{log: log}
	if err := g.Restart(s); err != nil {
		return nil, err
	}
	return g, nil
}

// Restart begins a new run on s. The high score is kept.
func (g *Game) Restart(s *shoe.Shoe) error {
	first, err := s.Draw()
	if err != nil {
		return fmt.Errorf("first card: %w", err)
	}

	g.ID = uuid.New()
	g.shoe = s
	g.Current = first
	g.Score = 0
	g.Over = false
	g.log = g.log.WithField("game_id", g.ID.String())
	return nil
}

func (g *Game) Remaining() int {
	return g.shoe.Len()
}

// Guess draws the next card and scores the guess against it.
// An equal rank is a tie: no point, and the game goes on.
func (g *Game) Guess(guess Guess) (Turn, error) {
	if g.Over {
		return Turn{}, ErrGameOver
	}

	next, err := g.shoe.Draw()
	if err != nil {
		g.end()
		return Turn{}, err
	}

	turn := Turn{Previous: g.Current, Next: next}
	g.Current = next

	switch {
	case next.Rank == turn.Previous.Rank:
		turn.Outcome = OutcomeTie
	case (guess == Higher) == (next.Rank > turn.Previous.Rank):
		turn.Outcome = OutcomeCorrect
		g.Score++
		if g.Score > g.HighScore {
			g.HighScore = g.Score
		}
	default:
		turn.Outcome = OutcomeWrong
		g.end()
	}
	return turn, nil
}

func (g *Game) Hint() (Hint, error) {
	cards := g.shoe.Cards()
	if len(cards) == 0 {
		return Hint{}, shoe.ErrEmptyDeck
	}

	var higher, lower int
	for _, c := range cards {
		switch {
		case c.Rank > g.Current.Rank:
			higher++
		case c.Rank < g.Current.Rank:
			lower++
		}
	}

	total := higher + lower
	if total == 0 {
		return Hint{AllEqual: true}, nil
	}
	return Hint{
		Higher:    float64(higher) / float64(total) * 100,
		Lower:     float64(lower) / float64(total) * 100,
		Remaining: total,
	}, nil
}

func (g *Game) end() {
	g.Over = true
	g.log.WithFields(logrus.Fields{
		"score":      g.Score,
		"high_score": g.HighScore,
	}).Debug("hilo game over")
}
