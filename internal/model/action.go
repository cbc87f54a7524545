package model

import "strings"

// Action is a preflop decision stored in a range or submitted by the player.
type Action string

// Range actions.
const (
	Fold         Action = "fold"
	OrFold       Action = "or-fold"
	OrCall       Action = "or-call"
	Or4BetFold   Action = "or-4bet-fold"
	Or4BetCall   Action = "or-4bet-call"
	ThreeBetFold Action = "three-bet-fold"
	ThreeBetCall Action = "three-bet-call"
	ThreeBetPush Action = "three-bet-push"
	Call         Action = "call"
)

// Coarse answers used by fold/no-fold grading and skip input.
const (
	NoFold  Action = "no-fold"
	Skipped Action = "skipped"
)

// RangeActions lists every action a range may assign.
var RangeActions = []Action{Fold, OrFold, OrCall, Or4BetFold, Or4BetCall, ThreeBetFold, ThreeBetCall, ThreeBetPush, Call}

// Valid reports whether a is one of the nine range actions.
func (a Action) Valid() bool {
	for _, v := range RangeActions {
		if v == a {
			return true
		}
	}
	return false
}

// Label returns the button text for the action.
func (a Action) Label() string {
	switch a {
	case Fold:
		return "Fold"
	case NoFold:
		return "No Fold"
	case OrFold:
		return "OR/Fold"
	case OrCall:
		return "OR/Call"
	case Or4BetFold:
		return "OR/4Bet/Fold"
	case Or4BetCall:
		return "OR/4Bet/Call"
	case ThreeBetFold:
		return "3Bet/Fold"
	case ThreeBetCall:
		return "3Bet/Call"
	case ThreeBetPush:
		return "3Bet/Push"
	case Call:
		return "Call"
	case Skipped:
		return "Skipped"
	}
	return string(a)
}

// ParseAction normalizes a range action string. The second result is false
// for anything outside the nine-value domain.
func ParseAction(s string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	return a, a.Valid()
}

// Assignment is a range lookup result that keeps "no entry" apart from an
// explicit fold.
type Assignment struct {
	action Action
	ok     bool
}

// Assigned wraps an explicit range action.
func Assigned(a Action) Assignment {
	return Assignment{action: a, ok: true}
}

// Unassigned is the result for a hand the range does not mention.
var Unassigned = Assignment{}

// Action returns the stored action and whether one exists.
func (a Assignment) Action() (Action, bool) {
	return a.action, a.ok
}

// IsAssigned reports whether the range has an entry.
func (a Assignment) IsAssigned() bool {
	return a.ok
}

// OrFold returns the stored action, or Fold when unassigned.
func (a Assignment) OrFold() Action {
	if !a.ok {
		return Fold
	}
	return a.action
}

// ActionsFor returns the answer buttons for a spot, fold first.
func ActionsFor(hero, villain Position, gameType GameType) []Action {
	if gameType == FoldNoFold {
		return []Action{Fold, NoFold}
	}
	if hero != BB && IsOpenRaiseSpot(hero, villain) {
		return []Action{Fold, OrFold, OrCall, Or4BetFold, Or4BetCall}
	}
	return []Action{Fold, Call, ThreeBetFold, ThreeBetCall, ThreeBetPush}
}
