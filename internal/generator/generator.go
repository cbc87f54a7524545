// Package generator builds practice decks from a configuration and range table.
package generator

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/preflop/internal/hand"
	"github.com/verte-zerg/preflop/internal/model"
	"github.com/verte-zerg/preflop/internal/ranges"
)

// ErrNoSelectedHands rejects a configuration with an empty hand set.
var ErrNoSelectedHands = errors.New("no hands selected for practice")

// Cause tells why a configuration produced no practice items.
type Cause string

// Empty deck causes.
const (
	CauseNoRangeData     Cause = "no-range-data"
	CauseNoSelectedHands Cause = "no-selected-hands"
	CauseNoMatchupData   Cause = "no-matchup-data"
	CauseNoPlayableHands Cause = "no-playable-hands"
)

// EmptyDeckError reports a configuration that yields zero practice items.
type EmptyDeckError struct {
	Cause            Cause
	MatchupsTried    int
	MatchupsWithData int
}

func (e *EmptyDeckError) Error() string {
	switch e.Cause {
	case CauseNoRangeData:
		return "no hands available: no range data is loaded (import ranges or restore the defaults)"
	case CauseNoSelectedHands:
		return "no hands available: no hands are selected"
	case CauseNoMatchupData:
		return fmt.Sprintf("no hands available: none of the %d matchups has range data (try any position)", e.MatchupsTried)
	default:
		return fmt.Sprintf("no hands available: the selected hands have no action in %d matchups (turn off only-playable)", e.MatchupsWithData)
	}
}

// Unwrap lets errors.Is match ErrNoSelectedHands.
func (e *EmptyDeckError) Unwrap() error {
	if e.Cause == CauseNoSelectedHands {
		return ErrNoSelectedHands
	}
	return nil
}

// Source resolves a range by matchup key.
type Source interface {
	Range(key string) (ranges.Range, bool)
}

// Generator shuffles practice decks.
type Generator struct {
	rnd    *rand.Rand
	logger *log.Logger
}

// New returns a Generator seeded with the current time.
func New(logger *log.Logger) *Generator {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())), logger)
}

// NewWithRand returns a Generator drawing from rnd.
func NewWithRand(rnd *rand.Rand, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{rnd: rnd, logger: logger}
}

// Matchups lists the hero/villain pairs a configuration trains, filtered by
// opening direction.
func Matchups(cfg model.PracticeConfig) []model.Matchup {
	var heroes, villains []model.Position
	if cfg.HeroPosition == model.AnyPosition {
		heroes = model.Positions
	} else {
		heroes = []model.Position{cfg.HeroPosition}
	}
	if cfg.VillainPosition == model.AnyPosition {
		villains = model.Positions
	} else {
		villains = []model.Position{cfg.VillainPosition}
	}

	var out []model.Matchup
	for _, h := range heroes {
		for _, v := range villains {
			if h == v {
				continue
			}
			if !matchesStart(cfg.HandStart, h, v) {
				continue
			}
			out = append(out, model.Matchup{Hero: h, Villain: v})
		}
	}
	return out
}

func matchesStart(start model.HandStart, hero, villain model.Position) bool {
	switch start {
	case model.StartEarlyVsLate:
		return model.IsOpenRaiseSpot(hero, villain)
	case model.StartLateVsEarly:
		return model.IsThreeBetSpot(hero, villain)
	}
	return true
}

// Build compiles a shuffled deck. The configuration is snapshotted so later
// edits to the caller's hand set cannot reach the deck, and actions are
// resolved now so range edits do not change dealt items.
func (g *Generator) Build(cfg model.PracticeConfig, src Source) ([]model.PracticeItem, error) {
	cfg = cfg.Clone()
	if len(cfg.SelectedHands) == 0 {
		return nil, &EmptyDeckError{Cause: CauseNoSelectedHands}
	}
	selected := hand.Sorted(cfg.SelectedHands)

	matchups := Matchups(cfg)
	withData := 0
	var deck []model.PracticeItem
	for _, m := range matchups {
		r, ok := src.Range(m.Key())
		if !ok || len(r) == 0 {
			continue
		}
		withData++
		for _, h := range selected {
			assignment := r.Lookup(h)
			if cfg.OnlyPlayableHands && !assignment.IsAssigned() {
				continue
			}
			deck = append(deck, model.PracticeItem{
				Hero:          m.Hero,
				Villain:       m.Villain,
				Hand:          h,
				CorrectAction: assignment.OrFold(),
				Assigned:      assignment.IsAssigned(),
			})
		}
	}
	g.logger.Debug("deck built", "matchups", len(matchups), "with_data", withData, "items", len(deck))

	if len(deck) == 0 {
		err := &EmptyDeckError{MatchupsTried: len(matchups), MatchupsWithData: withData}
		switch {
		case withData > 0:
			err.Cause = CauseNoPlayableHands
		case !hasAnyData(src):
			err.Cause = CauseNoRangeData
		default:
			err.Cause = CauseNoMatchupData
		}
		return nil, err
	}

	Shuffle(g.rnd, deck)
	return deck, nil
}

func hasAnyData(src Source) bool {
	for _, h := range model.Positions {
		for _, v := range model.Positions {
			if h == v {
				continue
			}
			if r, ok := src.Range(model.MatchupKey(h, v)); ok && len(r) > 0 {
				return true
			}
		}
	}
	return false
}

// Shuffle applies a uniform in-place permutation, swapping from the last
// index down to 1.
func Shuffle(rnd *rand.Rand, items []model.PracticeItem) {
	for i := len(items) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
