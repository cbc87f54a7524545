package hand

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/paulhankin/poker"

	"github.com/verte-zerg/preflop/internal/model"
)

var suits = []poker.Suit{poker.Club, poker.Diamond, poker.Heart, poker.Spade}

var suitSymbols = map[poker.Suit]string{
	poker.Club:    "♣",
	poker.Diamond: "♦",
	poker.Heart:   "♥",
	poker.Spade:   "♠",
}

// Card is a concrete playing card.
type Card struct {
	Rank byte
	Suit poker.Suit
	card poker.Card
}

// Red reports whether the card is a heart or a diamond.
func (c Card) Red() bool {
	return c.Suit == poker.Heart || c.Suit == poker.Diamond
}

func (c Card) String() string {
	return string(c.Rank) + suitSymbols[c.Suit]
}

// HoleCards is a concrete two-card holding drawn for a canonical hand.
type HoleCards [2]Card

func (h HoleCards) String() string {
	return h[0].String() + " " + h[1].String()
}

func makeCard(rank byte, suit poker.Suit) (Card, error) {
	idx := strings.IndexByte(Ranks, rank)
	if idx < 0 {
		return Card{}, fmt.Errorf("invalid rank %q", rank)
	}
	// Ranks runs A..2; the evaluator numbers the ace 1 and the rest by pip.
	r := poker.Rank(14 - idx)
	if idx == 0 {
		r = poker.Rank(1)
	}
	pc, err := poker.MakeCard(suit, r)
	if err != nil {
		return Card{}, fmt.Errorf("make card %c: %w", rank, err)
	}
	return Card{Rank: rank, Suit: suit, card: pc}, nil
}

// Deal picks random suits that satisfy the canonical hand: one suit for
// suited hands, two different suits for pairs and offsuit hands.
func Deal(h model.Hand, rng *rand.Rand) (HoleCards, error) {
	if !Valid(h) {
		return HoleCards{}, fmt.Errorf("invalid hand %q", h)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	s := string(h)
	first := suits[rng.Intn(len(suits))]
	second := first
	if len(s) == 2 || s[2] == 'o' {
		for second == first {
			second = suits[rng.Intn(len(suits))]
		}
	}
	c1, err := makeCard(s[0], first)
	if err != nil {
		return HoleCards{}, err
	}
	c2, err := makeCard(s[1], second)
	if err != nil {
		return HoleCards{}, err
	}
	return HoleCards{c1, c2}, nil
}
