package practice

import "github.com/verte-zerg/preflop/internal/model"

// Coarsen maps a range action onto the fold/no-fold domain. An empty action
// counts as fold.
func Coarsen(a model.Action) model.Action {
	if a == "" || a == model.Fold {
		return model.Fold
	}
	return model.NoFold
}

// Grade reports whether user matches correct under the game type. Unknown
// or mode-mismatched answers grade as incorrect.
func Grade(correct, user model.Action, gameType model.GameType) bool {
	if gameType == model.FoldNoFold {
		if user != model.Fold && user != model.NoFold {
			return false
		}
		return user == Coarsen(correct)
	}
	if !user.Valid() {
		return false
	}
	return user == correct
}
