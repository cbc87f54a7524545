package stats

import (
	"sort"

	"github.com/verte-zerg/preflop/internal/model"
)

// BestSessions returns the top n sessions by accuracy, larger sessions first
// on ties. Sessions shorter than minHands are ignored.
func BestSessions(sessions []model.SessionSummary, minHands, n int) []model.SessionSummary {
	if n <= 0 || len(sessions) == 0 {
		return nil
	}
	items := make([]model.SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		if s.TotalHands >= minHands {
			items = append(items, s)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Accuracy == items[j].Accuracy {
			return items[i].TotalHands > items[j].TotalHands
		}
		return items[i].Accuracy > items[j].Accuracy
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
