package stats

import (
	"context"
	"time"

	"github.com/verte-zerg/preflop/internal/model"
)

// Source lists stored sessions, oldest first.
type Source interface {
	History(ctx context.Context) ([]model.SessionSummary, error)
}

// Filter narrows the sessions a report covers.
type Filter struct {
	Since       *time.Time
	Last        int
	GameType    model.GameType
	CurveWindow int
	MinSamples  int
	WeakTop     int
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions []model.SessionSummary
	Overview Overview
	Curve    []float64
	Weak     []WeakSpot
	Best     []model.SessionSummary
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, src Source, f Filter) (Report, error) {
	history, err := src.History(ctx)
	if err != nil {
		return Report{}, err
	}
	sessions := make([]model.SessionSummary, 0, len(history))
	for _, s := range history {
		if f.Since != nil && s.EndedAt().Before(*f.Since) {
			continue
		}
		if f.GameType != "" && s.GameType != f.GameType {
			continue
		}
		sessions = append(sessions, s)
	}
	if f.Last > 0 && len(sessions) > f.Last {
		sessions = sessions[len(sessions)-f.Last:]
	}

	minSamples := f.MinSamples
	if minSamples <= 0 {
		minSamples = model.MinWeakSamples
	}
	return Report{
		Sessions: sessions,
		Overview: Summarize(sessions),
		Curve:    MovingAverage(AccuracySeries(sessions), f.CurveWindow),
		Weak:     WeakSpots(sessions, minSamples, f.WeakTop),
		Best:     BestSessions(sessions, minSamples, 5),
	}, nil
}
