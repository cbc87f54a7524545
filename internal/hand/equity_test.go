package hand

import (
	"math/rand"
	"testing"

	"github.com/verte-zerg/preflop/internal/model"
)

func dealt(t *testing.T, h model.Hand, seed int64) HoleCards {
	t.Helper()
	cards, err := Deal(h, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("deal %s: %v", h, err)
	}
	return cards
}

func TestEquityOrdersPremiumOverTrash(t *testing.T) {
	aces, err := Equity(dealt(t, "AA", 1), rand.New(rand.NewSource(3)), 4000)
	if err != nil {
		t.Fatalf("equity: %v", err)
	}
	trash, err := Equity(dealt(t, "72o", 1), rand.New(rand.NewSource(3)), 4000)
	if err != nil {
		t.Fatalf("equity: %v", err)
	}
	// Known values vs a random hand: AA about 85%, 72o about 35%.
	if aces < 0.80 || aces > 0.90 {
		t.Fatalf("expected AA near 85%%, got %.3f", aces)
	}
	if trash < 0.28 || trash > 0.42 {
		t.Fatalf("expected 72o near 35%%, got %.3f", trash)
	}
}

func TestEquityIsDeterministicForASeed(t *testing.T) {
	cards := dealt(t, "T9s", 2)
	a, _ := Equity(cards, rand.New(rand.NewSource(9)), 500)
	b, _ := Equity(cards, rand.New(rand.NewSource(9)), 500)
	if a != b {
		t.Fatalf("expected same estimate for the same seed, got %.3f and %.3f", a, b)
	}
}

func TestEquityRejectsUndealtCards(t *testing.T) {
	if _, err := Equity(HoleCards{}, nil, 10); err == nil {
		t.Fatalf("expected error for empty hole cards")
	}
}
