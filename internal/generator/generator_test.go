package generator

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/verte-zerg/preflop/internal/model"
	"github.com/verte-zerg/preflop/internal/ranges"
)

func newTestGenerator() *Generator {
	return NewWithRand(rand.New(rand.NewSource(42)), nil)
}

func anyConfig(start model.HandStart) model.PracticeConfig {
	return model.PracticeConfig{
		HeroPosition:    model.AnyPosition,
		VillainPosition: model.AnyPosition,
		GameType:        model.FullMode,
		HandStart:       start,
	}
}

func TestMatchupsAnyAnyBoth(t *testing.T) {
	pairs := Matchups(anyConfig(model.StartBoth))
	if len(pairs) != 20 {
		t.Fatalf("expected 20 matchups, got %d", len(pairs))
	}
	seen := make(map[model.Matchup]bool)
	for _, m := range pairs {
		if m.Hero == m.Villain {
			t.Fatalf("unexpected self matchup %v", m)
		}
		if seen[m] {
			t.Fatalf("duplicate matchup %v", m)
		}
		seen[m] = true
	}
}

func TestMatchupsDirectionKeepsButtonSmallBlind(t *testing.T) {
	bu := model.Matchup{Hero: model.BU, Villain: model.SB}
	sb := model.Matchup{Hero: model.SB, Villain: model.BU}

	early := Matchups(anyConfig(model.StartEarlyVsLate))
	if !hasMatchup(early, bu) || hasMatchup(early, sb) {
		t.Fatalf("early-vs-late: expected BU vs SB only, got %v", early)
	}
	late := Matchups(anyConfig(model.StartLateVsEarly))
	if !hasMatchup(late, sb) || hasMatchup(late, bu) {
		t.Fatalf("late-vs-early: expected SB vs BU only, got %v", late)
	}
	if len(early)+len(late) != 20 {
		t.Fatalf("expected the two directions to partition 20 matchups, got %d+%d", len(early), len(late))
	}
}

func hasMatchup(list []model.Matchup, m model.Matchup) bool {
	for _, v := range list {
		if v == m {
			return true
		}
	}
	return false
}

func TestMatchupsOneFixedSide(t *testing.T) {
	cfg := anyConfig(model.StartBoth)
	cfg.HeroPosition = model.BB
	pairs := Matchups(cfg)
	if len(pairs) != 4 {
		t.Fatalf("expected 4 matchups, got %v", pairs)
	}
	for _, m := range pairs {
		if m.Hero != model.BB {
			t.Fatalf("expected BB hero, got %v", m)
		}
	}
}

func TestBuildOnlyPlayableWithoutEntriesIsEmpty(t *testing.T) {
	table := ranges.NewTable(nil, ranges.Set{"BU_vs_SB": {"KK": model.OrCall}}, nil, nil)
	cfg := anyConfig(model.StartBoth)
	cfg.SelectedHands = map[model.Hand]bool{"AA": true}
	cfg.OnlyPlayableHands = true

	deck, err := newTestGenerator().Build(cfg, table)
	if len(deck) != 0 {
		t.Fatalf("expected empty deck, got %v", deck)
	}
	var empty *EmptyDeckError
	if !errors.As(err, &empty) || empty.Cause != CauseNoPlayableHands {
		t.Fatalf("expected no playable hands error, got %v", err)
	}
}

func TestBuildSingleItemScenario(t *testing.T) {
	table := ranges.NewTable(nil, ranges.Set{"BU_vs_SB": {"AKs": model.OrFold}}, nil, nil)
	cfg := model.PracticeConfig{
		HeroPosition:    model.BU,
		VillainPosition: model.SB,
		GameType:        model.FullMode,
		HandStart:       model.StartBoth,
		SelectedHands:   map[model.Hand]bool{"AKs": true},
	}
	deck, err := newTestGenerator().Build(cfg, table)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(deck) != 1 || deck[0].CorrectAction != model.OrFold || !deck[0].Assigned {
		t.Fatalf("unexpected deck %v", deck)
	}
}

func TestBuildDefaultsUnassignedToFold(t *testing.T) {
	table := ranges.NewTable(nil, ranges.Set{"CO_vs_BU": {"AA": model.Or4BetCall}}, nil, nil)
	cfg := model.PracticeConfig{
		HeroPosition:    model.CO,
		VillainPosition: model.BU,
		HandStart:       model.StartBoth,
		SelectedHands:   map[model.Hand]bool{"AA": true, "72o": true},
	}
	deck, err := newTestGenerator().Build(cfg, table)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(deck) != 2 {
		t.Fatalf("expected 2 items, got %v", deck)
	}
	for _, item := range deck {
		if item.Hand == "72o" && (item.CorrectAction != model.Fold || item.Assigned) {
			t.Fatalf("expected unassigned fold fallback, got %+v", item)
		}
	}
}

func TestBuildSnapshotsSelection(t *testing.T) {
	table := ranges.NewTable(nil, ranges.Set{"CO_vs_BU": {"AA": model.Or4BetCall}}, nil, nil)
	selected := map[model.Hand]bool{"AA": true}
	cfg := model.PracticeConfig{HeroPosition: model.CO, VillainPosition: model.BU, HandStart: model.StartBoth, SelectedHands: selected}
	deck, err := newTestGenerator().Build(cfg, table)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	selected["KK"] = true
	if len(deck) != 1 {
		t.Fatalf("expected deck to stay at 1 item, got %d", len(deck))
	}
}

func TestBuildEmptyCauses(t *testing.T) {
	g := newTestGenerator()
	cfg := anyConfig(model.StartBoth)

	_, err := g.Build(cfg, ranges.NewTable(nil, nil, nil, nil))
	if !errors.Is(err, ErrNoSelectedHands) {
		t.Fatalf("expected no selected hands, got %v", err)
	}

	cfg.SelectedHands = map[model.Hand]bool{"AA": true}
	_, err = g.Build(cfg, ranges.NewTable(nil, nil, nil, nil))
	var empty *EmptyDeckError
	if !errors.As(err, &empty) || empty.Cause != CauseNoRangeData {
		t.Fatalf("expected no range data, got %v", err)
	}

	cfg.HeroPosition, cfg.VillainPosition = model.MP, model.CO
	_, err = g.Build(cfg, ranges.NewTable(nil, ranges.Set{"BB_vs_SB": {"AA": model.Call}}, nil, nil))
	if !errors.As(err, &empty) || empty.Cause != CauseNoMatchupData {
		t.Fatalf("expected no matchup data, got %v", err)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	items := make([]model.PracticeItem, 10)
	for i := range items {
		items[i] = model.PracticeItem{Hand: model.Hand(string(rune('A' + i)))}
	}
	Shuffle(rand.New(rand.NewSource(3)), items)
	seen := make(map[model.Hand]bool)
	for _, it := range items {
		seen[it.Hand] = true
	}
	if len(seen) != 10 {
		t.Fatalf("expected a permutation, got %v", items)
	}
}
