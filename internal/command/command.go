// Package command maps free-form answer text to practice actions.
package command

import (
	"strings"

	"github.com/verte-zerg/preflop/internal/model"
)

// Command is a parsed answer: either an action or a skip.
type Command struct {
	Action model.Action
	Skip   bool
}

var phrases = map[string]model.Action{
	"fold": model.Fold, "fault": model.Fold, "ford": model.Fold, "folds": model.Fold,
	"folding": model.Fold, "foe": model.Fold, "full": model.Fold, "fall": model.Fold,
	"folk": model.Fold, "phone": model.Fold, "fast": model.Fold, "old": model.Fold,
	"hold": model.Fold, "mold": model.Fold, "told": model.Fold, "sold": model.Fold,
	"bold": model.Fold, "gold": model.Fold, "false": model.Fold, "fort": model.Fold,
	"food": model.Fold, "four": model.Fold, "for": model.Fold, "fog": model.Fold,
	"fought": model.Fold, "foam": model.Fold,

	"no fold": model.NoFold, "no-fold": model.NoFold, "nofold": model.NoFold,
	"don't fold": model.NoFold, "not fold": model.NoFold, "play": model.NoFold,
	"stay": model.NoFold, "continue": model.NoFold, "keep": model.NoFold, "raise": model.NoFold,

	"call": model.Call, "calls": model.Call, "calling": model.Call, "cool": model.Call,
	"cold": model.Call, "car": model.Call, "caught": model.Call, "paul": model.Call,
	"ball": model.Call, "tall": model.Call, "hall": model.Call, "wall": model.Call,
	"mall": model.Call, "core": model.Call, "cor": model.Call, "caw": model.Call,
	"cal": model.Call, "carl": model.Call, "coal": model.Call, "cow": model.Call,
	"cause": model.Call, "cost": model.Call, "col": model.Call, "kyle": model.Call,

	"open": model.OrFold, "open raise": model.OrFold, "open fold": model.OrFold, "open call": model.OrCall,
	"open four bet fold": model.Or4BetFold, "open four bet call": model.Or4BetCall,
	"open 4 bet fold": model.Or4BetFold, "open 4 bet call": model.Or4BetCall,
	"open fourbet fold": model.Or4BetFold, "open fourbet call": model.Or4BetCall,

	"three bet": model.ThreeBetFold, "3 bet": model.ThreeBetFold,
	"three bet fold": model.ThreeBetFold, "3 bet fold": model.ThreeBetFold,
	"three bet call": model.ThreeBetCall, "3 bet call": model.ThreeBetCall,
	"three bet push": model.ThreeBetPush, "3 bet push": model.ThreeBetPush,
	"three bet all in": model.ThreeBetPush, "3 bet all in": model.ThreeBetPush,
	"threebet": model.ThreeBetFold, "threebet fold": model.ThreeBetFold,
	"threebet call": model.ThreeBetCall, "threebet push": model.ThreeBetPush,
}

var (
	foldWords = words("fold", "fault", "ford", "folds", "folding", "foe", "full", "fall", "folk",
		"false", "fort", "food", "phone", "fast", "old", "hold", "mold", "told", "sold", "bold",
		"gold", "four", "for", "fog", "fought", "foam")
	noFoldWords = words("no", "play", "stay", "continue", "keep", "raise", "bet", "don't")
	callWords   = words("call", "calls", "calling", "cool", "cold", "car", "coal")
	skipWords   = words("skip", "pass", "next", "tilt")
)

func words(list ...string) map[string]bool {
	out := make(map[string]bool, len(list))
	for _, w := range list {
		out[w] = true
	}
	return out
}

// Normalize lowercases text, drops . , ! ? and collapses whitespace.
func Normalize(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', '!', '?':
			return -1
		}
		return r
	}, strings.ToLower(text))
	return strings.Join(strings.Fields(cleaned), " ")
}

// Parse interprets text as an answer. The bool is false for unrecognized
// input.
func Parse(text string) (Command, bool) {
	cleaned := Normalize(text)
	if cleaned == "" {
		return Command{}, false
	}
	if skipWords[cleaned] {
		return Command{Skip: true}, true
	}
	if a, ok := model.ParseAction(cleaned); ok {
		return Command{Action: a}, true
	}
	if a, ok := phrases[cleaned]; ok {
		return Command{Action: a}, true
	}

	tokens := strings.Split(cleaned, " ")
	has := func(ws ...string) bool {
		for _, t := range tokens {
			for _, w := range ws {
				if t == w {
					return true
				}
			}
		}
		return false
	}
	anyIn := func(set map[string]bool) bool {
		for _, t := range tokens {
			if set[t] {
				return true
			}
		}
		return false
	}

	if has("open", "or") {
		if has("four", "4") {
			if has("call") {
				return Command{Action: model.Or4BetCall}, true
			}
			return Command{Action: model.Or4BetFold}, true
		}
		if has("call") {
			return Command{Action: model.OrCall}, true
		}
		return Command{Action: model.OrFold}, true
	}

	if has("three", "3") || (has("bet") && !has("four", "4")) {
		if has("push", "all", "in") {
			return Command{Action: model.ThreeBetPush}, true
		}
		if has("call") {
			return Command{Action: model.ThreeBetCall}, true
		}
		return Command{Action: model.ThreeBetFold}, true
	}

	noFold := anyIn(noFoldWords)
	fold := anyIn(foldWords)
	switch {
	case noFold && fold:
		return Command{Action: model.NoFold}, true
	case noFold && has("play", "stay", "continue"):
		return Command{Action: model.NoFold}, true
	case fold:
		return Command{Action: model.Fold}, true
	}

	if anyIn(callWords) && !has("open", "three", "3") {
		return Command{Action: model.Call}, true
	}
	if anyIn(skipWords) {
		return Command{Skip: true}, true
	}
	return Command{}, false
}
