// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/preflop/internal/model"
	"github.com/verte-zerg/preflop/internal/recorder"
)

const sparkChars = " .:-=+*#%@"

// Overview aggregates every stored session.
type Overview struct {
	Sessions     int
	TotalHands   int
	CorrectHands int
	Accuracy     int
	StudyTime    time.Duration
	BestStreak   int
}

// Summarize totals sessions. Accuracy is weighted by hands.
func Summarize(sessions []model.SessionSummary) Overview {
	var o Overview
	for _, s := range sessions {
		o.Sessions++
		o.TotalHands += s.TotalHands
		o.CorrectHands += s.CorrectHands
		o.StudyTime += time.Duration(s.SessionTime) * time.Millisecond
		o.BestStreak = max(o.BestStreak, s.BestStreak)
	}
	o.Accuracy = model.AccuracyPct(o.CorrectHands, o.TotalHands)
	return o
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := seriesMinMaxSingle(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = min(max(idx, 0), len(sparkChars)-1)
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// AccuracySeries returns per-session accuracy in percent, oldest first.
func AccuracySeries(sessions []model.SessionSummary) []float64 {
	out := make([]float64, len(sessions))
	for i, s := range sessions {
		out[i] = float64(s.Accuracy)
	}
	return out
}

// RenderSummary prints the overview cards.
func RenderSummary(w io.Writer, sessions []model.SessionSummary) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions yet. Play a few hands first.")
		return err
	}
	o := Summarize(sessions)
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", o.Sessions),
		fmt.Sprintf("Total Hands: %d", o.TotalHands),
		fmt.Sprintf("Overall Accuracy: %d%%", o.Accuracy),
		fmt.Sprintf("Study Time: %s", recorder.FormatDurationHours(o.StudyTime)),
		fmt.Sprintf("Best Streak: %d", o.BestStreak),
		fmt.Sprintf("Trend: %s", Sparkline(AccuracySeries(sessions))),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints the accuracy curve.
func RenderCurves(w io.Writer, sessions []model.SessionSummary, window int) error {
	return RenderCurvesWithSize(w, sessions, window, 0, 10, false)
}

// RenderCurvesWithSize prints the accuracy curve sized to a given total width.
func RenderCurvesWithSize(w io.Writer, sessions []model.SessionSummary, window, totalWidth, height int, useColor bool) error {
	if len(sessions) == 0 {
		return nil
	}
	raw := AccuracySeries(sessions)
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotAccuracy(w, "Accuracy", []Curve{
		{Name: "Session", Values: raw},
		{Name: fmt.Sprintf("Avg(%d)", window), Values: MovingAverage(raw, window)},
	}, width, height, useColor)
}

// RenderSessionTable prints sessions most recent first.
func RenderSessionTable(w io.Writer, sessions []model.SessionSummary) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Sessions"); err != nil {
		return err
	}
	headers, rows := SessionRows(sessions)
	for _, line := range alignColumns(headers, rows, 1, 2, 3, 4, 5) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// SessionRows returns the session table cells, most recent first.
func SessionRows(sessions []model.SessionSummary) ([]string, [][]string) {
	headers := []string{"Date", "Hands", "Correct", "Accuracy", "Time", "Streak", "Mode", "Start", "Position"}
	rows := make([][]string, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		rows = append(rows, []string{
			s.ReadableDate,
			fmt.Sprintf("%d", s.TotalHands),
			fmt.Sprintf("%d", s.CorrectHands),
			fmt.Sprintf("%d%%", s.Accuracy),
			s.SessionTimeFormatted,
			fmt.Sprintf("%d", s.BestStreak),
			s.GameTypeDisplay,
			s.HandStartDisplay,
			s.PositionDisplay,
		})
	}
	return headers, rows
}

// RenderWeakSpots prints the weakest positions and categories.
func RenderWeakSpots(w io.Writer, spots []WeakSpot) error {
	if len(spots) == 0 {
		_, err := fmt.Fprintln(w, "No weak spots yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Weak Spots"); err != nil {
		return err
	}
	headers, rows := WeakSpotRows(spots)
	for _, line := range alignColumns(headers, rows, 2, 3, 4) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// WeakSpotRows returns the weak spot table cells.
func WeakSpotRows(spots []WeakSpot) ([]string, [][]string) {
	headers := []string{"Kind", "Spot", "Accuracy", "Correct", "Wrong"}
	rows := make([][]string, 0, len(spots))
	for _, s := range spots {
		rows = append(rows, []string{
			string(s.Kind),
			s.Label,
			fmt.Sprintf("%d%%", s.Accuracy),
			fmt.Sprintf("%d", s.Correct),
			fmt.Sprintf("%d", s.Wrong),
		})
	}
	return headers, rows
}
