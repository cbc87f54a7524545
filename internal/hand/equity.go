package hand

import (
	"errors"
	"math/rand"

	"github.com/paulhankin/poker"
)

// EquityTrials is the number of runouts the practice screen samples.
const EquityTrials = 1500

// Equity estimates the share of the pot h takes against one random hand
// by sampling trials villain holdings and five-card boards. Ties count half.
func Equity(h HoleCards, rng *rand.Rand, trials int) (float64, error) {
	if !h[0].card.Valid() || !h[1].card.Valid() || h[0].card == h[1].card {
		return 0, errors.New("equity needs two distinct dealt cards")
	}
	if trials <= 0 {
		trials = EquityTrials
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	deck := make([]poker.Card, 0, len(poker.Cards)-2)
	for _, c := range poker.Cards {
		if c != h[0].card && c != h[1].card {
			deck = append(deck, c)
		}
	}

	var hero, villain [7]poker.Card
	hero[0], hero[1] = h[0].card, h[1].card
	var won float64
	for range trials {
		// Partial shuffle: the first seven cards are two for the villain
		// and five for the board.
		for i := 0; i < 7; i++ {
			j := i + rng.Intn(len(deck)-i)
			deck[i], deck[j] = deck[j], deck[i]
		}
		villain[0], villain[1] = deck[0], deck[1]
		for i := 0; i < 5; i++ {
			hero[2+i] = deck[2+i]
			villain[2+i] = deck[2+i]
		}
		hs, vs := poker.Eval7(&hero), poker.Eval7(&villain)
		switch {
		case hs > vs:
			won++
		case hs == vs:
			won += 0.5
		}
	}
	return won / float64(trials), nil
}
