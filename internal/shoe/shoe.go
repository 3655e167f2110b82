package shoe

import (
	"errors"
	"math/rand"
	"time"

	"cardtable/internal/card"
)

const DeckSize = 52

var (
	ErrEmptyDeck        = errors.New("deck is empty")
	ErrInvalidDeckCount = errors.New("number of decks must be at least 1")
)

// Shoe is the working set of cards drawn from. Draw takes from the end.
type Shoe struct {
	cards []card.Card
	decks int
	rng   *rand.Rand
}

// Build returns numDecks full decks in suit-major order, unshuffled.
func Build(numDecks int) []card.Card {
	if numDecks < 1 {
		return nil
	}

	cards := make([]card.Card, 0, DeckSize*numDecks)
	for i := 0; i < numDecks; i++ {
		for _, s := range card.Suits() {
			for _, r := range card.Ranks() {
				cards = append(cards, card.New(r, s))
			}
		}
	}
	return cards
}

// Shuffle is an in-place Fisher-Yates.
func Shuffle(cards []card.Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// New builds a shuffled shoe. A nil rng is seeded from the clock.
func New(numDecks int, rng *rand.Rand) (*Shoe, error) {
	if numDecks < 1 {
		return nil, ErrInvalidDeckCount
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Shoe{decks: numDecks, rng: rng}
	s.Reset()
	return s, nil
}

// FromCards wraps an explicit order; the last card is drawn first.
func FromCards(cards []card.Card) *Shoe {
	return &Shoe{
		cards: append([]card.Card(nil), cards...),
	}
}

func (s *Shoe) Draw() (card.Card, error) {
	if len(s.cards) == 0 {
		return card.Card{}, ErrEmptyDeck
	}

	c := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return c, nil
}

// Reset rebuilds and reshuffles the shoe. A shoe made with FromCards is left empty.
func (s *Shoe) Reset() {
	s.cards = Build(s.decks)
	if s.rng != nil {
		Shuffle(s.cards, s.rng)
	}
}

func (s *Shoe) Len() int {
	return len(s.cards)
}

func (s *Shoe) Decks() int {
	return s.decks
}

// Cards returns a copy of the remaining cards.
func (s *Shoe) Cards() []card.Card {
	return append([]card.Card(nil), s.cards...)
}
