package recorder

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/preflop/internal/model"
	"github.com/verte-zerg/preflop/internal/practice"
	"github.com/verte-zerg/preflop/internal/store"
)

type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk gone")
}

func (failingKV) Set(context.Context, string, []byte) error {
	return errors.New("disk gone")
}

// flakyKV fails the next failGets reads and passes everything else to kv.
type flakyKV struct {
	KV
	failGets int
}

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.failGets > 0 {
		f.failGets--
		return nil, false, errors.New("database is locked")
	}
	return f.KV.Get(ctx, key)
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "preflop.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func result(end time.Time, hands, correct int) practice.Result {
	return practice.Result{
		Config: model.PracticeConfig{
			HeroPosition:    model.AnyPosition,
			VillainPosition: model.AnyPosition,
			GameType:        model.FoldNoFold,
			HandStart:       model.StartLateVsEarly,
			SelectedHands:   map[model.Hand]bool{"AA": true, "KK": true},
		},
		Stats: model.SessionStats{
			HandsPlayed:      hands,
			CorrectDecisions: correct,
			BestStreak:       correct,
			StartedAt:        end.Add(-95 * time.Second),
		},
		EndedAt: end,
	}
}

func TestSaveKeepsMostRecentFifty(t *testing.T) {
	ctx := context.Background()
	rec := New(openStore(t), nil)
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 55; i++ {
		rec.Save(ctx, result(base.Add(time.Duration(i)*time.Minute), 10, i%10))
	}
	history, err := rec.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != MaxSessions {
		t.Fatalf("expected %d sessions, got %d", MaxSessions, len(history))
	}
	wantFirst := base.Add(5 * time.Minute).UnixMilli()
	if history[0].ID != wantFirst {
		t.Fatalf("expected oldest kept id %d, got %d", wantFirst, history[0].ID)
	}
	wantLast := base.Add(54 * time.Minute).UnixMilli()
	if history[len(history)-1].ID != wantLast {
		t.Fatalf("expected newest id %d, got %d", wantLast, history[len(history)-1].ID)
	}
}

func TestSaveSkipsEmptySessions(t *testing.T) {
	ctx := context.Background()
	rec := New(openStore(t), nil)
	rec.Save(ctx, result(time.Now(), 0, 0))
	history, err := rec.History(ctx)
	if err != nil || len(history) != 0 {
		t.Fatalf("expected no history, got %v (%v)", history, err)
	}
}

func TestSaveSwallowsStorageFailures(t *testing.T) {
	rec := New(failingKV{}, nil)
	rec.Save(context.Background(), result(time.Now(), 3, 2))
	if _, err := rec.Append(context.Background(), model.SessionSummary{ID: 1}); err == nil {
		t.Fatalf("expected Append to report the failure")
	}
}

func TestReadFailureKeepsStoredHistory(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{KV: openStore(t)}
	rec := New(kv, nil)
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		rec.Save(ctx, result(base.Add(time.Duration(i)*time.Minute), 5, 3))
	}

	kv.failGets = 1
	rec.Save(ctx, result(base.Add(time.Hour), 5, 3))

	history, err := rec.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 10 {
		t.Fatalf("expected 10 sessions after a failed read, got %d", len(history))
	}
	rec.Save(ctx, result(base.Add(2*time.Hour), 5, 3))
	if history, _ = rec.History(ctx); len(history) != 11 {
		t.Fatalf("expected saving to resume, got %d sessions", len(history))
	}
}

func TestCorruptHistoryIsReplaced(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	if err := st.Set(ctx, HistoryKey, []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rec := New(st, nil)
	if _, err := rec.History(ctx); !errors.Is(err, ErrCorruptHistory) {
		t.Fatalf("expected corrupt history error, got %v", err)
	}
	rec.Save(ctx, result(time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC), 4, 4))
	history, err := rec.History(ctx)
	if err != nil || len(history) != 1 {
		t.Fatalf("expected a fresh one-entry log, got %v (%v)", history, err)
	}
}

func TestSummarizeLabels(t *testing.T) {
	end := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
	s := Summarize(result(end, 3, 2))
	if s.Accuracy != 67 || s.TotalHands != 3 || s.CorrectHands != 2 {
		t.Fatalf("unexpected totals %+v", s)
	}
	if s.SessionTimeFormatted != "1:35" || s.SessionTime != 95000 {
		t.Fatalf("unexpected duration %q %d", s.SessionTimeFormatted, s.SessionTime)
	}
	if s.GameTypeDisplay != "Fold/No Fold" || s.HandStartDisplay != "Late vs Early" || s.PositionDisplay != "Any Position" {
		t.Fatalf("unexpected labels %+v", s)
	}
	if s.SelectedHandsCount != 2 || s.ID != end.UnixMilli() {
		t.Fatalf("unexpected id or count %+v", s)
	}
	if s.Timestamp != "2025-02-01T09:30:00.000Z" {
		t.Fatalf("unexpected timestamp %q", s.Timestamp)
	}
}

func TestSameMillisecondGetsUniqueID(t *testing.T) {
	ctx := context.Background()
	rec := New(openStore(t), nil)
	end := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	rec.Save(ctx, result(end, 1, 1))
	rec.Save(ctx, result(end, 1, 0))
	history, _ := rec.History(ctx)
	if len(history) != 2 || history[0].ID == history[1].ID {
		t.Fatalf("expected unique ids, got %+v", history)
	}
}

func TestFormatDurations(t *testing.T) {
	if got := FormatDuration(65 * time.Second); got != "1:05" {
		t.Fatalf("expected 1:05, got %s", got)
	}
	cases := map[time.Duration]string{
		45 * time.Minute:             "45m",
		2 * time.Hour:                "2h",
		2*time.Hour + 5*time.Minute:  "2h 5m",
		time.Minute + 59*time.Second: "1m",
	}
	for d, want := range cases {
		if got := FormatDurationHours(d); got != want {
			t.Fatalf("%s: expected %s, got %s", d, want, got)
		}
	}
}
