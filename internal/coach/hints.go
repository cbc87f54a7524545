// Package coach gives rule-based hints and running feedback during practice.
package coach

import (
	"github.com/verte-zerg/preflop/internal/hand"
	"github.com/verte-zerg/preflop/internal/model"
)

var positionHints = map[model.Position]map[model.Category]string{
	model.MP: {
		model.PocketPair:      "From MP, open pocket pairs 55+. Premium pairs (QQ+) can stack off vs 3-bets in most lineups.",
		model.SuitedBroadway:  "AKs-AJs and KQs are standard opens. KJs/QJs are marginal, so weigh the table dynamics.",
		model.OffsuitBroadway: "AKo/AQo are opens. AJo and KQo depend on the table and get tighter in tough games.",
		model.SuitedConnector: "Most suited connectors are folds from MP. 98s+ might work in soft games.",
		model.SuitedGapper:    "Suited gappers are generally too weak for MP. Save them for later positions.",
		model.SuitedAce:       "A5s-A2s have blockers and nut potential. A5s/A4s are borderline opens.",
		model.OffsuitAce:      "Offsuit aces weaker than AT are folds from MP.",
		model.SuitedKing:      "K9s and worse are folds. KTs is marginal depending on lineup.",
		model.Trash:           "Fold these hands from MP. The blinds aren't worth the risk.",
	},
	model.CO: {
		model.PocketPair:      "Open all pocket pairs from CO. Small pairs (22-44) can be opened or folded depending on action.",
		model.SuitedBroadway:  "Open all suited broadways from CO. These hands play well postflop.",
		model.OffsuitBroadway: "AKo-ATo and KQo-KJo are opens. QJo is borderline.",
		model.SuitedConnector: "Open 54s+ from CO. These have good playability when in position.",
		model.SuitedGapper:    "Suited one-gappers like 86s/97s become opens from CO.",
		model.SuitedAce:       "All suited aces become opens from CO. Great for nut flush potential.",
		model.OffsuitAce:      "A9o+ are opens. A8o and below are marginal.",
		model.SuitedKing:      "K8s+ are opens from CO. Nice blocker hands.",
		model.Trash:           "Even from CO, avoid pure trash. You still face 3 players behind.",
	},
	model.BU: {
		model.PocketPair:      "Open every pocket pair from the button. Even 22 has value vs the blinds.",
		model.SuitedBroadway:  "Open all suited broadways. Premium hands in this position.",
		model.OffsuitBroadway: "Open all broadway combos from the button. Position makes up for weaker holdings.",
		model.SuitedConnector: "Open 32s+ from the button. Position makes these very profitable.",
		model.SuitedGapper:    "Open all playable gappers. 85s/96s become profitable here.",
		model.SuitedAce:       "Open all suited aces. These are auto-opens from the button.",
		model.OffsuitAce:      "A2o-A9o become opens. Position is everything.",
		model.SuitedKing:      "K2s+ are opens from the button in most games.",
		model.Trash:           "Even pure trash can be opened vs weak or passive blinds. Use reads.",
	},
	model.SB: {
		model.PocketPair:      "From SB, open pocket pairs for value or complete. 22-55 can go either way.",
		model.SuitedBroadway:  "Open or complete all suited broadways. Raising is often preferred vs a weak BB.",
		model.OffsuitBroadway: "AKo-ATo and broadway combos are opens. Some prefer limping to see a cheap flop.",
		model.SuitedConnector: "Suited connectors can open or complete. Consider the BB's tendencies.",
		model.SuitedGapper:    "Borderline hands. Complete or fold depending on BB aggression.",
		model.SuitedAce:       "Suited aces are good opens. Nut potential is valuable heads-up.",
		model.OffsuitAce:      "Weaker aces can complete. A5o-A2o have some blocker value.",
		model.SuitedKing:      "K7s+ are reasonable opens. Weaker kings can complete.",
		model.Trash:           "You can complete trash vs a passive BB, but fold vs aggressive opponents.",
	},
	model.BB: {
		model.PocketPair:      "Defend all pocket pairs vs opens. 3-bet JJ+ for value; TT/99 is player-dependent.",
		model.SuitedBroadway:  "Defend all suited broadways. 3-bet AKs/KQs for value.",
		model.OffsuitBroadway: "Defend broadway combos. AKo/KQo can 3-bet or call based on the opponent.",
		model.SuitedConnector: "Great defends from BB. Call to set-mine or 3-bet as a bluff.",
		model.SuitedGapper:    "Solid calls vs wide openers. Fold vs tight early opens.",
		model.SuitedAce:       "Defend all suited aces. A5s/A4s can 3-bet as bluffs.",
		model.OffsuitAce:      "Call weaker aces vs late opens. Fold vs early ones.",
		model.SuitedKing:      "K8s+ are defends vs most opens.",
		model.Trash:           "Even from BB some hands are too weak. Fold the worst combos vs early opens.",
	},
}

var generalTips = map[model.Position]string{
	model.MP: "Middle Position is the tightest opening spot. Quality over quantity here.",
	model.CO: "Cutoff opens wider than MP but still respects the button behind.",
	model.BU: "Button is the best position. Maximum aggression, maximum profit.",
	model.SB: "Small Blind is the worst postflop seat. Raise or fold and avoid weak limps.",
	model.BB: "Big Blind is about defending correctly. Don't over-defend vs tight ranges.",
}

// Hint is the coaching text for a hand in a position.
type Hint struct {
	Position     model.Position
	Hand         model.Hand
	Category     model.Category
	CategoryName string
	Text         string
	GeneralTip   string
}

// HintFor returns the hint for hand played from pos. Unknown positions use
// the button hints.
func HintFor(pos model.Position, h model.Hand) Hint {
	category := hand.Classify(h)
	hints, ok := positionHints[pos]
	if !ok {
		hints = positionHints[model.BU]
	}
	text, ok := hints[category]
	if !ok {
		text = "No specific advice for this hand type."
	}
	return Hint{
		Position:     pos,
		Hand:         h,
		Category:     category,
		CategoryName: category.Label(),
		Text:         text,
		GeneralTip:   generalTips[pos],
	}
}

// CategoryHint returns the hint for a whole category from pos.
func CategoryHint(pos model.Position, c model.Category) string {
	hints, ok := positionHints[pos]
	if !ok {
		hints = positionHints[model.BU]
	}
	return hints[c]
}
