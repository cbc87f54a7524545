package hand

import (
	"math/rand"
	"testing"

	"github.com/verte-zerg/preflop/internal/model"
)

func TestAllReturnsUniqueCanonicalHands(t *testing.T) {
	hands := All()
	if len(hands) != Count {
		t.Fatalf("expected %d hands, got %d", Count, len(hands))
	}
	seen := make(map[model.Hand]bool)
	pairs, suited, offsuit := 0, 0, 0
	for _, h := range hands {
		if seen[h] {
			t.Fatalf("duplicate hand %q", h)
		}
		seen[h] = true
		if !Valid(h) {
			t.Fatalf("expected %q to be valid", h)
		}
		switch {
		case len(h) == 2:
			pairs++
		case h[2] == 's':
			suited++
		default:
			offsuit++
		}
	}
	if pairs != 13 || suited != 78 || offsuit != 78 {
		t.Fatalf("unexpected split: %d pairs, %d suited, %d offsuit", pairs, suited, offsuit)
	}
	if hands[0] != "AA" || hands[1] != "AKs" || hands[13] != "AKo" || hands[168] != "22" {
		t.Fatalf("unexpected order: %v %v %v %v", hands[0], hands[1], hands[13], hands[168])
	}
}

func TestClassifyPairsOnlyWhenRanksMatch(t *testing.T) {
	for _, h := range All() {
		got := Classify(h)
		isPair := h[0] == h[1]
		if (got == model.PocketPair) != isPair {
			t.Fatalf("hand %q classified as %s", h, got)
		}
	}
}

func TestClassifyCategories(t *testing.T) {
	cases := map[model.Hand]model.Category{
		"AKs": model.SuitedBroadway,
		"KTo": model.OffsuitBroadway,
		"A5s": model.SuitedAce,
		"A9o": model.OffsuitAce,
		"K7s": model.SuitedKing,
		"98s": model.SuitedConnector,
		"86s": model.SuitedGapper,
		"98o": model.Trash,
		"72o": model.Trash,
		"77":  model.PocketPair,
		"ak":  model.OffsuitBroadway,
	}
	for h, want := range cases {
		if got := Classify(h); got != want {
			t.Fatalf("classify %q: expected %s, got %s", h, want, got)
		}
	}
}

func TestClassifyMalformedIsTrash(t *testing.T) {
	for _, h := range []model.Hand{"", "A", "XY", "1Ks"} {
		if got := Classify(h); got != model.Trash {
			t.Fatalf("expected trash for %q, got %s", h, got)
		}
	}
}

func TestParseNormalizesOrder(t *testing.T) {
	h, err := Parse("kas")
	if err != nil || h != "AKs" {
		t.Fatalf("expected AKs, got %q (%v)", h, err)
	}
	if _, err := Parse("AA s"); err == nil {
		t.Fatalf("expected error for malformed pair")
	}
	if _, err := Parse("AK"); err == nil {
		t.Fatalf("expected error for missing marker")
	}
}

func TestParseSelection(t *testing.T) {
	set, err := ParseSelection("AA, KQs suited_ace")
	if err != nil {
		t.Fatalf("parse selection: %v", err)
	}
	if !set["AA"] || !set["KQs"] || !set["A2s"] {
		t.Fatalf("unexpected selection: %v", set)
	}
	all, err := ParseSelection("all")
	if err != nil || len(all) != Count {
		t.Fatalf("expected all hands, got %d (%v)", len(all), err)
	}
	if _, err := ParseSelection("ZZ"); err == nil {
		t.Fatalf("expected error for unknown hand")
	}
}

func TestDealMatchesSuitedness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		suited, err := Deal("T9s", rng)
		if err != nil {
			t.Fatalf("deal: %v", err)
		}
		if suited[0].Suit != suited[1].Suit {
			t.Fatalf("expected same suit, got %s", suited)
		}
		pair, err := Deal("QQ", rng)
		if err != nil {
			t.Fatalf("deal: %v", err)
		}
		if pair[0].Suit == pair[1].Suit || pair[0].Rank != 'Q' {
			t.Fatalf("unexpected pair cards %s", pair)
		}
	}
	if _, err := Deal("bad", rng); err == nil {
		t.Fatalf("expected error for invalid hand")
	}
}
