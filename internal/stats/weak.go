package stats

import (
	"sort"

	"github.com/verte-zerg/preflop/internal/model"
)

// SpotKind tells whether a weak spot is a seat or a hand category.
type SpotKind string

// Spot kinds.
const (
	SpotPosition SpotKind = "position"
	SpotCategory SpotKind = "category"
)

// WeakSpot is one position or category bucket summed across sessions.
type WeakSpot struct {
	Kind     SpotKind
	Label    string
	Correct  int
	Wrong    int
	Accuracy int
}

// Breakdown sums the per-session breakdowns.
func Breakdown(sessions []model.SessionSummary) model.Breakdown {
	var out model.Breakdown
	for _, s := range sessions {
		out.Merge(s.Breakdown)
	}
	return out
}

// WeakSpots returns buckets with at least minSamples answers and accuracy
// below 100%, lowest accuracy first. top <= 0 keeps all of them.
func WeakSpots(sessions []model.SessionSummary, minSamples, top int) []WeakSpot {
	b := Breakdown(sessions)
	var spots []WeakSpot
	add := func(kind SpotKind, label string, bucket model.Bucket) {
		if bucket.Total() < minSamples || bucket.Wrong == 0 {
			return
		}
		spots = append(spots, WeakSpot{
			Kind:     kind,
			Label:    label,
			Correct:  bucket.Correct,
			Wrong:    bucket.Wrong,
			Accuracy: model.AccuracyPct(bucket.Correct, bucket.Total()),
		})
	}
	for _, p := range model.Positions {
		add(SpotPosition, string(p), b.ByPosition[p])
	}
	for _, c := range model.Categories {
		add(SpotCategory, c.Label(), b.ByCategory[c])
	}
	sort.SliceStable(spots, func(i, j int) bool {
		ai := ratio(spots[i])
		aj := ratio(spots[j])
		if ai == aj {
			return spots[i].Correct+spots[i].Wrong > spots[j].Correct+spots[j].Wrong
		}
		return ai < aj
	})
	if top > 0 && len(spots) > top {
		spots = spots[:top]
	}
	return spots
}

func ratio(s WeakSpot) float64 {
	total := s.Correct + s.Wrong
	if total == 0 {
		return 1.0
	}
	return float64(s.Correct) / float64(total)
}
