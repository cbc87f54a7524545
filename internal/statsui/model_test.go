package statsui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/preflop/internal/model"
	"github.com/verte-zerg/preflop/internal/stats"
)

type fakeSource struct {
	sessions []model.SessionSummary
	err      error
}

func (f fakeSource) History(context.Context) ([]model.SessionSummary, error) {
	return f.sessions, f.err
}

func session(id int64, end time.Time, gameType model.GameType, correct, total int) model.SessionSummary {
	b := model.Breakdown{
		ByPosition: map[model.Position]model.Bucket{model.BB: {Correct: correct, Wrong: total - correct}},
		ByCategory: map[model.Category]model.Bucket{model.SuitedGapper: {Correct: correct, Wrong: total - correct}},
	}
	return model.SessionSummary{
		ID:              id,
		SessionEndTime:  end.UnixMilli(),
		ReadableDate:    end.Format("2006-01-02 15:04"),
		TotalHands:      total,
		CorrectHands:    correct,
		Accuracy:        model.AccuracyPct(correct, total),
		SessionTime:     90_000,
		BestStreak:      correct,
		GameType:        gameType,
		GameTypeDisplay: gameType.Label(),
		PositionDisplay: "BB vs Any",
		Breakdown:       b,
	}
}

func sampleSource() fakeSource {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	return fakeSource{sessions: []model.SessionSummary{
		session(1, base, model.FullMode, 6, 10),
		session(2, base.Add(24*time.Hour), model.FoldNoFold, 9, 10),
		session(3, base.Add(48*time.Hour), model.FullMode, 4, 10),
	}}
}

func sized(m *Model) *Model {
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOverviewShowsCards(t *testing.T) {
	m := sized(NewModel(sampleSource(), stats.Filter{CurveWindow: 2}))
	view := m.View()
	for _, want := range []string{"Sessions", "Total Hands", "Best Streak", "Percent scale.", "Best Sessions"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in overview:\n%s", want, view)
		}
	}
	if m.report.Overview.TotalHands != 30 {
		t.Fatalf("expected 30 hands, got %d", m.report.Overview.TotalHands)
	}
}

func TestTabsCycle(t *testing.T) {
	m := sized(NewModel(sampleSource(), stats.Filter{}))
	m.Update(key("l"))
	if m.tab != tabSessions {
		t.Fatalf("expected sessions tab, got %d", m.tab)
	}
	if !strings.Contains(m.View(), "Position") {
		t.Fatalf("expected session table header")
	}
	m.Update(key("l"))
	if m.tab != tabWeak {
		t.Fatalf("expected weak tab, got %d", m.tab)
	}
	view := m.View()
	if !strings.Contains(view, "Suited Gapper") || !strings.Contains(view, "Tip (BB") {
		t.Fatalf("expected weak spots with a tip:\n%s", view)
	}
	m.Update(key("l"))
	if m.tab != tabOverview {
		t.Fatalf("expected wrap to overview, got %d", m.tab)
	}
}

func TestCurveWindowKeys(t *testing.T) {
	m := sized(NewModel(sampleSource(), stats.Filter{CurveWindow: 3}))
	m.Update(key("="))
	if m.filter.CurveWindow != 5 {
		t.Fatalf("expected window 5, got %d", m.filter.CurveWindow)
	}
	m.Update(key("-"))
	m.Update(key("-"))
	if m.filter.CurveWindow != 1 {
		t.Fatalf("expected window 1, got %d", m.filter.CurveWindow)
	}
}

func TestFilterFormAppliesGameType(t *testing.T) {
	m := sized(NewModel(sampleSource(), stats.Filter{}))
	m.Update(key("/"))
	if !m.form.active {
		t.Fatalf("expected filter mode")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(key("fnf"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.form.active {
		t.Fatalf("expected filter applied, error %q", m.form.err)
	}
	if m.filter.GameType != model.FoldNoFold || len(m.report.Sessions) != 1 {
		t.Fatalf("expected one fold-no-fold session, got %+v", m.report.Sessions)
	}
}

func TestFilterFormRejectsBadDate(t *testing.T) {
	m := sized(NewModel(sampleSource(), stats.Filter{}))
	m.Update(key("/"))
	m.Update(key("yesterday"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.form.active || !strings.Contains(m.form.err, "invalid since date") {
		t.Fatalf("expected date error, got mode=%v err=%q", m.form.active, m.form.err)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.form.active {
		t.Fatalf("expected esc to close the form")
	}
}

func TestEmptyAndFailingSources(t *testing.T) {
	m := sized(NewModel(fakeSource{}, stats.Filter{}))
	if !strings.Contains(m.View(), "No sessions found.") {
		t.Fatalf("expected empty message")
	}
	m = sized(NewModel(fakeSource{err: errors.New("disk gone")}, stats.Filter{}))
	if !strings.Contains(m.View(), "disk gone") {
		t.Fatalf("expected error in footer:\n%s", m.View())
	}
}

func TestQuit(t *testing.T) {
	m := sized(NewModel(sampleSource(), stats.Filter{}))
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestCurveWindowSteps(t *testing.T) {
	if widerWindow(1) != 5 || widerWindow(5) != 10 || widerWindow(7) != 10 {
		t.Fatalf("unexpected next window steps")
	}
	if narrowerWindow(5) != 1 || narrowerWindow(10) != 5 || narrowerWindow(7) != 5 {
		t.Fatalf("unexpected prev window steps")
	}
}
