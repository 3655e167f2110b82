package card

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownRank = errors.New("unknown rank")

type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var suits = []Suit{Clubs, Diamonds, Hearts, Spades}

var rankNames = map[Rank]string{
	Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7", Eight: "8", Nine: "9", Ten: "10",
	Jack: "J", Queen: "Q", King: "K", Ace: "A",
}

// имена для файлов с картинками карт
var rankWords = map[Rank]string{
	Jack: "jack", Queen: "queen", King: "king", Ace: "ace",
}

var suitNames = map[Suit]string{
	Clubs: "clubs", Diamonds: "diamonds", Hearts: "hearts", Spades: "spades",
}

var suitSymbols = map[Suit]string{
	Clubs: "♣", Diamonds: "♦", Hearts: "♥", Spades: "♠",
}

// Ranks returns the thirteen ranks from Two to Ace.
func Ranks() []Rank {
	return append([]Rank(nil), ranks...)
}

func Suits() []Suit {
	return append([]Suit(nil), suits...)
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// IsFace is true for J, Q and K.
func (r Rank) IsFace() bool {
	return r >= Jack && r <= King
}

// BlackjackValue is the base value of the rank before any ace is softened.
func (r Rank) BlackjackValue() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// HiLoWeight is the Hi-Lo counting weight: 2-6 +1, 7-9 0, tens and aces -1.
func (r Rank) HiLoWeight() int {
	switch {
	case r <= Six:
		return 1
	case r <= Nine:
		return 0
	default:
		return -1
	}
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Suit(%d)", int(s))
}

func (s Suit) Symbol() string {
	return suitSymbols[s]
}

type Card struct {
	Rank Rank
	Suit Suit
}

func New(r Rank, s Suit) Card {
	return Card{Rank: r, Suit: s}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// Label is the art identifier, e.g. "queen_of_hearts" or "10_of_clubs".
func (c Card) Label() string {
	name, ok := rankWords[c.Rank]
	if !ok {
		name = c.Rank.String()
	}
	return name + "_of_" + c.Suit.String()
}

// ParseRank accepts 2..10, J, Q, K, A in any case.
func ParseRank(token string) (Rank, error) {
	t := strings.ToUpper(strings.TrimSpace(token))
	for _, r := range ranks {
		if rankNames[r] == t {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRank, token)
}
