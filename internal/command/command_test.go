package command

import (
	"testing"

	"github.com/verte-zerg/preflop/internal/model"
)

func TestParsePhrases(t *testing.T) {
	cases := map[string]model.Action{
		"Fold!":                 model.Fold,
		"ford":                  model.Fold,
		"no fold":               model.NoFold,
		"don't fold it":         model.NoFold,
		"let's play":            model.NoFold,
		"call":                  model.Call,
		"i will calling":        model.Call,
		"open":                  model.OrFold,
		"or call":               model.OrCall,
		"open 4 bet call":       model.Or4BetCall,
		"open four bet":         model.Or4BetFold,
		"3 bet":                 model.ThreeBetFold,
		"three bet call please": model.ThreeBetCall,
		"three bet all in now":  model.ThreeBetPush,
		"three-bet-push":        model.ThreeBetPush,
		"  Three   Bet,  Push ": model.ThreeBetPush,
	}
	for text, want := range cases {
		got, ok := Parse(text)
		if !ok || got.Skip || got.Action != want {
			t.Fatalf("parse %q: expected %s, got %+v ok=%v", text, want, got, ok)
		}
	}
}

func TestParseSkip(t *testing.T) {
	for _, text := range []string{"skip", "Pass.", "please skip this"} {
		got, ok := Parse(text)
		if !ok || !got.Skip {
			t.Fatalf("parse %q: expected skip, got %+v ok=%v", text, got, ok)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	for _, text := range []string{"", "banana", "hello there"} {
		if got, ok := Parse(text); ok {
			t.Fatalf("parse %q: expected no match, got %+v", text, got)
		}
	}
}
