package count

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"cardtable/internal/card"
	"cardtable/internal/shoe"

	"github.com/emirpasic/gods/maps/treemap"
)

var ErrDepletedRank = errors.New("no cards of that rank remain")

// Counter is one Hi-Lo counting session over a shoe of numDecks decks.
// Observe and Reset are the only mutators.
type Counter struct {
	numDecks  int
	running   int
	remaining *treemap.Map // card.Rank -> int, in display order
	history   []card.Rank
}

type RankCount struct {
	Rank      card.Rank
	Remaining int
}

type Status struct {
	RunningCount   int
	TrueCount      float64
	CardsRemaining int
	Remaining      []RankCount
}

// displayOrder puts numeric ranks first in ascending order, then face ranks by label.
func displayOrder(a, b interface{}) int {
	ra, rb := a.(card.Rank), b.(card.Rank)
	fa, fb := isLettered(ra), isLettered(rb)

	switch {
	case fa != fb:
		if fa {
			return 1
		}
		return -1
	case fa:
		return strings.Compare(ra.String(), rb.String())
	default:
		return int(ra) - int(rb)
	}
}

func isLettered(r card.Rank) bool {
	return r.IsFace() || r == card.Ace
}

func New(numDecks int) (*Counter, error) {
	if numDecks < 1 {
		return nil, shoe.ErrInvalidDeckCount
	}

	c := &Counter{
		numDecks:  numDecks,
		remaining: treemap.NewWith(displayOrder),
	}
	c.Reset()
	return c, nil
}

func (c *Counter) Reset() {
	c.running = 0
	c.history = nil
	for _, r := range card.Ranks() {
		c.remaining.Put(r, 4*c.numDecks)
	}
}

// Observe records one seen card. A depleted or unknown rank leaves the state unchanged.
func (c *Counter) Observe(r card.Rank) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %d", card.ErrUnknownRank, int(r))
	}
	left, _ := c.remaining.Get(r)
	if left.(int) == 0 {
		return fmt.Errorf("%w: %s", ErrDepletedRank, r)
	}

	c.remaining.Put(r, left.(int)-1)
	c.running += r.HiLoWeight()
	c.history = append(c.history, r)
	return nil
}

func (c *Counter) RunningCount() int {
	return c.running
}

func (c *Counter) CardsRemaining() int {
	total := 0
	c.remaining.Each(func(_ interface{}, v interface{}) {
		total += v.(int)
	})
	return total
}

// DecksRemaining never drops below one deck.
func (c *Counter) DecksRemaining() float64 {
	return math.Max(1, float64(c.CardsRemaining())/shoe.DeckSize)
}

func (c *Counter) TrueCount() float64 {
	return float64(c.running) / c.DecksRemaining()
}

func (c *Counter) NumDecks() int {
	return c.numDecks
}

func (c *Counter) Remaining(r card.Rank) int {
	v, ok := c.remaining.Get(r)
	if !ok {
		return 0
	}
	return v.(int)
}

func (c *Counter) History() []card.Rank {
	return append([]card.Rank(nil), c.history...)
}

// roundCents rounds the way %.2f prints, so exact halves go to even.
func roundCents(x float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	return v
}

func (c *Counter) Status() Status {
	st := Status{
		RunningCount:   c.running,
		TrueCount:      roundCents(c.TrueCount()),
		CardsRemaining: c.CardsRemaining(),
		Remaining:      make([]RankCount, 0, c.remaining.Size()),
	}
	c.remaining.Each(func(k interface{}, v interface{}) {
		st.Remaining = append(st.Remaining, RankCount{Rank: k.(card.Rank), Remaining: v.(int)})
	})
	return st
}
