// Package model defines shared data structures.
package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Position is a seat at a five-handed table.
type Position string

// Positions in preflop acting order, early to late.
const (
	MP Position = "MP"
	CO Position = "CO"
	BU Position = "BU"
	SB Position = "SB"
	BB Position = "BB"
)

// AnyPosition matches every seat in a practice configuration.
const AnyPosition Position = "Any"

// Positions lists every seat in rank-index order.
var Positions = []Position{MP, CO, BU, SB, BB}

// Index returns the rank index of p (MP=0 .. BB=4), or -1 for unknown seats.
func (p Position) Index() int {
	for i, pos := range Positions {
		if pos == p {
			return i
		}
	}
	return -1
}

// Valid reports whether p is a concrete seat.
func (p Position) Valid() bool {
	return p.Index() >= 0
}

// ParsePosition accepts a seat name (case-insensitive), "BTN" for the button
// and "any" for AnyPosition.
func ParsePosition(s string) (Position, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	switch v {
	case "ANY", "":
		return AnyPosition, nil
	case "BTN":
		return BU, nil
	}
	p := Position(v)
	if !p.Valid() {
		return "", fmt.Errorf("unknown position %q", s)
	}
	return p, nil
}

// IsOpenRaiseSpot reports whether hero acts first against villain. BU versus
// SB counts as an open because the small blind acts after the button.
func IsOpenRaiseSpot(hero, villain Position) bool {
	if hero == BU && villain == SB {
		return true
	}
	if hero == SB && villain == BU {
		return false
	}
	return hero.Index() < villain.Index()
}

// IsThreeBetSpot reports whether hero faces an open from villain.
func IsThreeBetSpot(hero, villain Position) bool {
	if hero == SB && villain == BU {
		return true
	}
	if hero == BU && villain == SB {
		return false
	}
	return hero.Index() > villain.Index()
}

// MatchupKey returns the range table key for a hero/villain pair.
func MatchupKey(hero, villain Position) string {
	return string(hero) + "_vs_" + string(villain)
}

// ParseMatchupKey splits "HERO_vs_VILLAIN" into its seats.
func ParseMatchupKey(key string) (Position, Position, error) {
	parts := strings.Split(key, "_vs_")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid matchup key %q", key)
	}
	hero, villain := Position(parts[0]), Position(parts[1])
	if !hero.Valid() || !villain.Valid() || hero == villain {
		return "", "", fmt.Errorf("invalid matchup key %q", key)
	}
	return hero, villain, nil
}

// Matchup is an ordered hero/villain pair.
type Matchup struct {
	Hero    Position
	Villain Position
}

// Key returns the range table key for the matchup.
func (m Matchup) Key() string {
	return MatchupKey(m.Hero, m.Villain)
}

func (m Matchup) String() string {
	return fmt.Sprintf("%s vs %s", m.Hero, m.Villain)
}

// Hand is a canonical starting hand such as "AA", "AKs" or "72o".
type Hand string

// GameType selects the grading policy.
type GameType string

// Grading policies.
const (
	FullMode   GameType = "full-mode"
	FoldNoFold GameType = "fold-no-fold"
)

// ParseGameType validates a game type string.
func ParseGameType(s string) (GameType, error) {
	switch GameType(strings.ToLower(strings.TrimSpace(s))) {
	case FullMode, "full", "":
		return FullMode, nil
	case FoldNoFold, "fnf":
		return FoldNoFold, nil
	}
	return "", fmt.Errorf("unknown game type %q (want full-mode or fold-no-fold)", s)
}

// Label returns the display name used in session summaries.
func (g GameType) Label() string {
	if g == FullMode {
		return "Full Mode"
	}
	return "Fold/No Fold"
}

// HandStart filters matchups by opening direction.
type HandStart string

// Matchup direction filters.
const (
	StartBoth        HandStart = "both"
	StartEarlyVsLate HandStart = "early-vs-late"
	StartLateVsEarly HandStart = "late-vs-early"
)

// ParseHandStart validates a hand start string.
func ParseHandStart(s string) (HandStart, error) {
	switch HandStart(strings.ToLower(strings.TrimSpace(s))) {
	case StartBoth, "":
		return StartBoth, nil
	case StartEarlyVsLate:
		return StartEarlyVsLate, nil
	case StartLateVsEarly:
		return StartLateVsEarly, nil
	}
	return "", fmt.Errorf("unknown hand start %q (want both, early-vs-late or late-vs-early)", s)
}

// Label returns the display name used in session summaries.
func (h HandStart) Label() string {
	switch h {
	case StartBoth:
		return "Both (OR + 3BET)"
	case StartEarlyVsLate:
		return "Early vs Late"
	case StartLateVsEarly:
		return "Late vs Early"
	}
	return string(h)
}

// Hint describes which actions a hand start filter trains.
func (h HandStart) Hint() string {
	switch h {
	case StartEarlyVsLate:
		return "Early positions vs Later (OR/FOLD, OR/CALL)"
	case StartLateVsEarly:
		return "Later positions vs Early (3BET/FOLD, 3BET/CALL)"
	}
	return "Both action types: OR and 3BET scenarios"
}

// PracticeConfig defines a practice session.
type PracticeConfig struct {
	HeroPosition      Position      `json:"heroPosition"`
	VillainPosition   Position      `json:"villainPosition"`
	GameType          GameType      `json:"gameType"`
	HandStart         HandStart     `json:"handStart"`
	SelectedHands     map[Hand]bool `json:"-"`
	OnlyPlayableHands bool          `json:"onlyPlayableHands"`
}

// Clone returns a deep copy so later edits cannot reach an in-flight deck.
func (c PracticeConfig) Clone() PracticeConfig {
	out := c
	out.SelectedHands = make(map[Hand]bool, len(c.SelectedHands))
	for h, ok := range c.SelectedHands {
		if ok {
			out.SelectedHands[h] = true
		}
	}
	return out
}

// PositionLabel returns "Any Position" or "HERO vs VILLAIN".
func (c PracticeConfig) PositionLabel() string {
	if c.HeroPosition == AnyPosition && c.VillainPosition == AnyPosition {
		return "Any Position"
	}
	return fmt.Sprintf("%s vs %s", c.HeroPosition, c.VillainPosition)
}

// PracticeItem is one dealt spot with its expected answer. Assigned is false
// when the range had no entry and CorrectAction holds the fold fallback.
type PracticeItem struct {
	Hero          Position `json:"hero"`
	Villain       Position `json:"villain"`
	Hand          Hand     `json:"hand"`
	CorrectAction Action   `json:"correctAction"`
	Assigned      bool     `json:"assigned"`
}

// Matchup returns the item's hero/villain pair.
func (p PracticeItem) Matchup() Matchup {
	return Matchup{Hero: p.Hero, Villain: p.Villain}
}

// HandRecord is a graded practice item.
type HandRecord struct {
	PracticeItem
	UserAction   Action        `json:"userAction"`
	IsCorrect    bool          `json:"isCorrect"`
	WasSkipped   bool          `json:"wasSkipped,omitempty"`
	HandNumber   int           `json:"handNumber"`
	DecisionTime time.Duration `json:"decisionTime,omitempty"`
}

// SessionStats holds running counters for the active session.
type SessionStats struct {
	HandsPlayed      int
	CorrectDecisions int
	CurrentStreak    int
	BestStreak       int
	StartedAt        time.Time
}

// Accuracy returns the rounded percentage of correct decisions.
func (s SessionStats) Accuracy() int {
	return AccuracyPct(s.CorrectDecisions, s.HandsPlayed)
}

// AccuracyPct returns round(100*correct/total), or 0 when total is 0.
func AccuracyPct(correct, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(correct) * 100 / float64(total)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Bucket counts graded answers for one position or category.
type Bucket struct {
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

// Total returns the number of graded answers in the bucket.
func (b Bucket) Total() int {
	return b.Correct + b.Wrong
}

// Breakdown groups graded answers by hero position and hand category.
type Breakdown struct {
	ByPosition map[Position]Bucket `json:"byPosition,omitempty"`
	ByCategory map[Category]Bucket `json:"byCategory,omitempty"`
}

// MinWeakSamples is the smallest bucket considered when picking weak spots.
const MinWeakSamples = 3

// WeakestPosition returns the position with the lowest accuracy below 100%
// among those with at least MinWeakSamples answers.
func (b Breakdown) WeakestPosition() (Position, bool) {
	var best Position
	found := false
	bestAcc := 1.0
	for _, p := range Positions {
		bucket, ok := b.ByPosition[p]
		if !ok || bucket.Total() < MinWeakSamples {
			continue
		}
		acc := float64(bucket.Correct) / float64(bucket.Total())
		if acc < bestAcc {
			best, bestAcc, found = p, acc, true
		}
	}
	return best, found
}

// WeakestCategory returns the category with the lowest accuracy below 100%
// among those with at least MinWeakSamples answers.
func (b Breakdown) WeakestCategory() (Category, bool) {
	var best Category
	found := false
	bestAcc := 1.0
	for _, c := range Categories {
		bucket, ok := b.ByCategory[c]
		if !ok || bucket.Total() < MinWeakSamples {
			continue
		}
		acc := float64(bucket.Correct) / float64(bucket.Total())
		if acc < bestAcc {
			best, bestAcc, found = c, acc, true
		}
	}
	return best, found
}

// Merge adds other's counts into b.
func (b *Breakdown) Merge(other Breakdown) {
	if b.ByPosition == nil {
		b.ByPosition = make(map[Position]Bucket)
	}
	if b.ByCategory == nil {
		b.ByCategory = make(map[Category]Bucket)
	}
	for k, v := range other.ByPosition {
		cur := b.ByPosition[k]
		b.ByPosition[k] = Bucket{Correct: cur.Correct + v.Correct, Wrong: cur.Wrong + v.Wrong}
	}
	for k, v := range other.ByCategory {
		cur := b.ByCategory[k]
		b.ByCategory[k] = Bucket{Correct: cur.Correct + v.Correct, Wrong: cur.Wrong + v.Wrong}
	}
}

// SessionSummary is the persisted record of a finished session.
type SessionSummary struct {
	ID                   int64     `json:"id"`
	SessionEndTime       int64     `json:"sessionEndTime"`
	SessionStartTime     int64     `json:"sessionStartTime"`
	Timestamp            string    `json:"timestamp"`
	ReadableDate         string    `json:"readableDate"`
	TotalHands           int       `json:"totalHands"`
	CorrectHands         int       `json:"correctHands"`
	Accuracy             int       `json:"accuracy"`
	SessionTime          int64     `json:"sessionTime"`
	SessionTimeFormatted string    `json:"sessionTimeFormatted"`
	BestStreak           int       `json:"bestStreak"`
	GameType             GameType  `json:"gameType"`
	GameTypeDisplay      string    `json:"gameTypeDisplay"`
	HandStartMode        HandStart `json:"handStartMode"`
	HandStartDisplay     string    `json:"handStartDisplay"`
	HeroPosition         Position  `json:"heroPosition"`
	VillainPosition      Position  `json:"villainPosition"`
	PositionDisplay      string    `json:"positionDisplay"`
	SelectedHandsCount   int       `json:"selectedHandsCount"`
	Breakdown            Breakdown `json:"breakdown"`
	WeakestPosition      Position  `json:"weakestPosition,omitempty"`
	WeakestCategory      Category  `json:"weakestCategory,omitempty"`
}

// EndedAt returns the end time of the session.
func (s SessionSummary) EndedAt() time.Time {
	return time.UnixMilli(s.SessionEndTime)
}
