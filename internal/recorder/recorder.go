// Package recorder persists finished practice sessions to a key-value store.
package recorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/preflop/internal/model"
	"github.com/verte-zerg/preflop/internal/practice"
)

// HistoryKey is the key-value entry holding the session log.
const HistoryKey = "practiceSessionHistory"

// MaxSessions is the number of summaries kept; older ones are evicted first.
const MaxSessions = 50

// ErrCorruptHistory is returned when the stored log is not valid JSON.
var ErrCorruptHistory = errors.New("session history is corrupt")

// KV is the persisted key-value store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Recorder appends session summaries to the history log.
type Recorder struct {
	kv     KV
	logger *log.Logger
}

// New returns a Recorder writing to kv.
func New(kv KV, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{kv: kv, logger: logger}
}

// Save records a finished session. Sessions without hands are skipped and
// storage failures are logged, never returned.
func (r *Recorder) Save(ctx context.Context, res practice.Result) {
	if res.Stats.HandsPlayed == 0 {
		return
	}
	if _, err := r.Append(ctx, Summarize(res)); err != nil {
		r.logger.Warn("session history not saved", "err", err)
	}
}

// Append adds summary to the log, trims it to MaxSessions and returns the
// stored summary. IDs are bumped when two sessions end in the same
// millisecond. A failed read leaves the stored log untouched; a corrupt log
// is replaced.
func (r *Recorder) Append(ctx context.Context, summary model.SessionSummary) (model.SessionSummary, error) {
	history, err := r.History(ctx)
	switch {
	case errors.Is(err, ErrCorruptHistory):
		r.logger.Warn("discarding corrupt session history", "err", err)
		history = nil
	case err != nil:
		return summary, err
	}
	if n := len(history); n > 0 && history[n-1].ID >= summary.ID {
		summary.ID = history[n-1].ID + 1
	}
	history = append(history, summary)
	if len(history) > MaxSessions {
		history = history[len(history)-MaxSessions:]
	}
	data, err := json.Marshal(history)
	if err != nil {
		return summary, fmt.Errorf("encode session history: %w", err)
	}
	if err := r.kv.Set(ctx, HistoryKey, data); err != nil {
		return summary, fmt.Errorf("write session history: %w", err)
	}
	r.logger.Debug("session saved", "id", summary.ID, "hands", summary.TotalHands, "accuracy", summary.Accuracy)
	return summary, nil
}

// History returns the stored summaries, oldest first.
func (r *Recorder) History(ctx context.Context) ([]model.SessionSummary, error) {
	data, ok, err := r.kv.Get(ctx, HistoryKey)
	if err != nil {
		return nil, fmt.Errorf("read session history: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var history []model.SessionSummary
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHistory, err)
	}
	return history, nil
}

// Summarize builds the persisted summary for a session result.
func Summarize(res practice.Result) model.SessionSummary {
	end := res.EndedAt
	var duration time.Duration
	var startMs int64
	if !res.Stats.StartedAt.IsZero() {
		duration = end.Sub(res.Stats.StartedAt)
		startMs = res.Stats.StartedAt.UnixMilli()
	}
	if duration < 0 {
		duration = 0
	}
	cfg := res.Config
	summary := model.SessionSummary{
		ID:                   end.UnixMilli(),
		SessionEndTime:       end.UnixMilli(),
		SessionStartTime:     startMs,
		Timestamp:            end.UTC().Format("2006-01-02T15:04:05.000Z"),
		ReadableDate:         end.Local().Format("2006-01-02 15:04"),
		TotalHands:           res.Stats.HandsPlayed,
		CorrectHands:         res.Stats.CorrectDecisions,
		Accuracy:             res.Stats.Accuracy(),
		SessionTime:          duration.Milliseconds(),
		SessionTimeFormatted: FormatDuration(duration),
		BestStreak:           res.Stats.BestStreak,
		GameType:             cfg.GameType,
		GameTypeDisplay:      cfg.GameType.Label(),
		HandStartMode:        cfg.HandStart,
		HandStartDisplay:     cfg.HandStart.Label(),
		HeroPosition:         cfg.HeroPosition,
		VillainPosition:      cfg.VillainPosition,
		PositionDisplay:      cfg.PositionLabel(),
		SelectedHandsCount:   len(cfg.SelectedHands),
		Breakdown:            res.Breakdown,
	}
	if p, ok := res.Breakdown.WeakestPosition(); ok {
		summary.WeakestPosition = p
	}
	if c, ok := res.Breakdown.WeakestCategory(); ok {
		summary.WeakestCategory = c
	}
	return summary
}

// FormatDuration renders d as m:ss.
func FormatDuration(d time.Duration) string {
	seconds := int64(d / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatDurationHours renders d as "Xm", "Xh" or "Xh Ym".
func FormatDurationHours(d time.Duration) string {
	totalMinutes := int64(d / time.Minute)
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}
