package hand

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/preflop/internal/model"
)

// ParseSelection turns a comma or space separated list into a hand set.
// Items may be canonical hands, category names such as "suited_ace" or
// "pairs", or "all".
func ParseSelection(list string) (map[model.Hand]bool, error) {
	out := make(map[model.Hand]bool)
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return out, nil
	}
	for _, field := range fields {
		name := strings.ToLower(field)
		if name == "all" {
			for _, h := range All() {
				out[h] = true
			}
			continue
		}
		if c, ok := categoryAlias(name); ok {
			for _, h := range InCategory(c) {
				out[h] = true
			}
			continue
		}
		h, err := Parse(field)
		if err != nil {
			return nil, fmt.Errorf("hands: %w", err)
		}
		out[h] = true
	}
	return out, nil
}

func categoryAlias(name string) (model.Category, bool) {
	switch name {
	case "pairs", "pocket-pairs":
		return model.PocketPair, true
	case "connectors":
		return model.SuitedConnector, true
	case "gappers":
		return model.SuitedGapper, true
	}
	for _, c := range model.Categories {
		if name == string(c) || name == strings.ReplaceAll(string(c), "_", "-") {
			return c, true
		}
	}
	return "", false
}

// Sorted returns the selected hands in matrix order.
func Sorted(set map[model.Hand]bool) []model.Hand {
	out := make([]model.Hand, 0, len(set))
	for _, h := range All() {
		if set[h] {
			out = append(out, h)
		}
	}
	return out
}
