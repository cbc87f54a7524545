// Package hand enumerates and classifies canonical starting hands.
package hand

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/preflop/internal/model"
)

// Ranks is the fixed rank order used for the 13x13 matrix, high to low.
const Ranks = "AKQJT98765432"

// Count is the number of canonical starting hands.
const Count = 169

// At returns the hand in matrix cell (row, col): the diagonal holds pairs,
// cells above it suited hands and cells below it offsuit hands.
func At(row, col int) model.Hand {
	switch {
	case row == col:
		return model.Hand([]byte{Ranks[row], Ranks[col]})
	case row < col:
		return model.Hand([]byte{Ranks[row], Ranks[col], 's'})
	default:
		return model.Hand([]byte{Ranks[col], Ranks[row], 'o'})
	}
}

// All returns every canonical hand in row-major matrix order.
func All() []model.Hand {
	out := make([]model.Hand, 0, Count)
	for row := 0; row < len(Ranks); row++ {
		for col := 0; col < len(Ranks); col++ {
			out = append(out, At(row, col))
		}
	}
	return out
}

// Valid reports whether h is one of the 169 canonical hands.
func Valid(h model.Hand) bool {
	s := string(h)
	if len(s) < 2 || len(s) > 3 {
		return false
	}
	r1 := strings.IndexByte(Ranks, s[0])
	r2 := strings.IndexByte(Ranks, s[1])
	if r1 < 0 || r2 < 0 {
		return false
	}
	if len(s) == 2 {
		return r1 == r2
	}
	return r1 < r2 && (s[2] == 's' || s[2] == 'o')
}

// Parse normalizes user input such as "aks" or "KAs" into a canonical hand.
func Parse(s string) (model.Hand, error) {
	v := strings.TrimSpace(s)
	if len(v) < 2 || len(v) > 3 {
		return "", fmt.Errorf("invalid hand %q", s)
	}
	b := []byte(strings.ToUpper(v[:2]))
	r1 := strings.IndexByte(Ranks, b[0])
	r2 := strings.IndexByte(Ranks, b[1])
	if r1 < 0 || r2 < 0 {
		return "", fmt.Errorf("invalid hand %q", s)
	}
	if r1 > r2 {
		b[0], b[1] = b[1], b[0]
	}
	if r1 == r2 {
		if len(v) == 3 {
			return "", fmt.Errorf("invalid hand %q: pairs take no suit marker", s)
		}
		return model.Hand(b), nil
	}
	if len(v) != 3 {
		return "", fmt.Errorf("invalid hand %q: missing s/o marker", s)
	}
	switch strings.ToLower(v[2:]) {
	case "s":
		return model.Hand(string(b) + "s"), nil
	case "o":
		return model.Hand(string(b) + "o"), nil
	}
	return "", fmt.Errorf("invalid hand %q", s)
}

// Classify maps a hand string to its category. Malformed input is trash.
func Classify(h model.Hand) model.Category {
	s := strings.ToUpper(strings.TrimSpace(string(h)))
	if len(s) < 2 {
		return model.Trash
	}
	r1 := strings.IndexByte(Ranks, s[0])
	r2 := strings.IndexByte(Ranks, s[1])
	if r1 < 0 || r2 < 0 {
		return model.Trash
	}
	if r1 == r2 {
		return model.PocketPair
	}

	suited := strings.Contains(s[2:], "S")
	broadway1 := r1 <= 4
	broadway2 := r2 <= 4

	switch {
	case broadway1 && broadway2 && suited:
		return model.SuitedBroadway
	case broadway1 && broadway2:
		return model.OffsuitBroadway
	case s[0] == 'A' && suited:
		return model.SuitedAce
	case s[0] == 'A':
		return model.OffsuitAce
	case s[0] == 'K' && suited:
		return model.SuitedKing
	}

	gap := r1 - r2
	if gap < 0 {
		gap = -gap
	}
	switch {
	case gap == 1 && suited:
		return model.SuitedConnector
	case gap == 2 && suited:
		return model.SuitedGapper
	}
	return model.Trash
}

// InCategory returns every canonical hand in category c, in matrix order.
func InCategory(c model.Category) []model.Hand {
	var out []model.Hand
	for _, h := range All() {
		if Classify(h) == c {
			out = append(out, h)
		}
	}
	return out
}

// Combos returns how many two-card combinations a canonical hand covers.
func Combos(h model.Hand) int {
	switch {
	case len(h) == 2:
		return 6
	case strings.HasSuffix(string(h), "s"):
		return 4
	default:
		return 12
	}
}
