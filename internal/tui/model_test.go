package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/preflop/internal/coach"
	"github.com/verte-zerg/preflop/internal/generator"
	"github.com/verte-zerg/preflop/internal/model"
	"github.com/verte-zerg/preflop/internal/practice"
	"github.com/verte-zerg/preflop/internal/ranges"
)

type fakeSource map[string]ranges.Range

func (f fakeSource) Range(key string) (ranges.Range, bool) {
	r, ok := f[key]
	return r, ok
}

func newTestModel(t *testing.T, delay time.Duration, opts ...practice.Option) *Model {
	t.Helper()
	cfg := model.PracticeConfig{
		HeroPosition:    model.BU,
		VillainPosition: model.SB,
		GameType:        model.FullMode,
		HandStart:       model.StartBoth,
		SelectedHands:   map[model.Hand]bool{"AKs": true},
	}
	src := fakeSource{"BU_vs_SB": {"AKs": model.OrCall}}
	tracker := coach.NewTracker(rand.New(rand.NewSource(1)))
	session := practice.New(cfg, append([]practice.Option{practice.WithObserver(tracker)}, opts...)...)
	m, err := NewModel(Deps{
		Session:   session,
		Generator: generator.NewWithRand(rand.New(rand.NewSource(1)), nil),
		Source:    src,
		Tracker:   tracker,
		Rand:      rand.New(rand.NewSource(1)),
	}, Options{DealDelay: delay})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func press(m *Model, keys string) tea.Cmd {
	var cmd tea.Cmd
	for _, r := range keys {
		_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return cmd
}

func TestNumberKeyAnswers(t *testing.T) {
	m := newTestModel(t, 0)
	if m.item.Hand != "AKs" || len(m.actions) != 5 {
		t.Fatalf("unexpected deal %+v actions=%v", m.item, m.actions)
	}
	press(m, "3")
	stats := m.deps.Session.Stats()
	if stats.HandsPlayed != 1 || stats.CorrectDecisions != 1 {
		t.Fatalf("expected one correct hand, got %+v", stats)
	}
	if !m.hasLast || !m.last.IsCorrect || m.last.UserAction != model.OrCall {
		t.Fatalf("unexpected last record %+v", m.last)
	}
	if !m.hasFeedback {
		t.Fatalf("expected coach feedback")
	}
	if !m.deps.Session.Accepting() {
		t.Fatalf("expected next hand dealt immediately")
	}
}

func TestCommandPromptAndSkip(t *testing.T) {
	m := newTestModel(t, 0)
	press(m, ":fold")
	if !m.prompting {
		t.Fatalf("expected prompt to be open")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.prompting {
		t.Fatalf("expected prompt closed after enter")
	}
	if m.last.IsCorrect || m.last.UserAction != model.Fold {
		t.Fatalf("expected wrong fold answer, got %+v", m.last)
	}

	press(m, ":banana")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.notice, "Unknown command") {
		t.Fatalf("expected unknown command notice, got %q", m.notice)
	}

	press(m, "s")
	if !m.last.WasSkipped || m.deps.Session.Stats().HandsPlayed != 2 {
		t.Fatalf("expected skip recorded, got %+v", m.last)
	}
}

func TestDealDelayBlocksAnswers(t *testing.T) {
	m := newTestModel(t, time.Second)
	if cmd := press(m, "1"); cmd == nil {
		t.Fatalf("expected a deal tick")
	}
	press(m, "2")
	if got := m.deps.Session.Stats().HandsPlayed; got != 1 {
		t.Fatalf("expected answers ignored while waiting, got %d hands", got)
	}
	m.Update(dealMsg{seq: m.dealSeq - 1})
	if m.deps.Session.Accepting() {
		t.Fatalf("stale deal message must be ignored")
	}
	m.Update(dealMsg{seq: m.dealSeq})
	if !m.deps.Session.Accepting() {
		t.Fatalf("expected hand dealt after tick")
	}
}

type countingRecorder struct {
	saves []practice.Result
}

func (r *countingRecorder) Save(_ context.Context, res practice.Result) {
	r.saves = append(r.saves, res)
}

func TestResultsThenNewSessionRecordsOnce(t *testing.T) {
	rec := &countingRecorder{}
	m := newTestModel(t, 0, practice.WithRecorder(rec))
	press(m, "3")
	press(m, "q")
	if m.screen != screenResults || m.Result().Stats.HandsPlayed != 1 {
		t.Fatalf("expected results for one hand, got screen=%v result=%+v", m.screen, m.Result().Stats)
	}
	if !strings.Contains(m.View(), "Session results") {
		t.Fatalf("expected results card")
	}
	if len(rec.saves) != 0 {
		t.Fatalf("expected nothing recorded while the results card is open")
	}
	press(m, "n")
	if m.screen != screenPractice || m.deps.Session.Stats().HandsPlayed != 0 {
		t.Fatalf("expected fresh session")
	}
	if len(rec.saves) != 1 || rec.saves[0].Stats.HandsPlayed != 1 {
		t.Fatalf("expected the finished session recorded once, got %d", len(rec.saves))
	}
	if _, ok := m.deps.Tracker.Last(); ok {
		t.Fatalf("expected tracker reset")
	}
}

func TestContinueKeepsSessionGoing(t *testing.T) {
	rec := &countingRecorder{}
	m := newTestModel(t, time.Second, practice.WithRecorder(rec))
	press(m, "3")
	press(m, "q")
	press(m, "c")
	if m.screen != screenPractice || !m.deps.Session.Accepting() {
		t.Fatalf("expected the next hand dealt after continuing, screen=%v", m.screen)
	}
	press(m, "3")
	if got := m.deps.Session.Stats().HandsPlayed; got != 2 {
		t.Fatalf("expected the same session to keep counting, got %d hands", got)
	}
	press(m, "q")
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Fatalf("expected quit from the results card")
	}
	if len(rec.saves) != 1 || rec.saves[0].Stats.HandsPlayed != 2 {
		t.Fatalf("expected one save with both hands, got %+v", rec.saves)
	}
}

func TestDetailsShowRecordAndRange(t *testing.T) {
	m := newTestModel(t, 0)
	press(m, "d")
	if m.screen != screenPractice || m.notice == "" {
		t.Fatalf("expected a notice before any hand is played")
	}
	press(m, "1")
	press(m, "d")
	if m.screen != screenDetails || m.detail != 0 {
		t.Fatalf("expected details for the first hand, screen=%v detail=%d", m.screen, m.detail)
	}
	view := m.View()
	for _, want := range []string{"Hand #1 of 1", "Incorrect", "Correct action: OR/Call", "AKs"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in details:\n%s", want, view)
		}
	}
	press(m, "d")
	if m.screen != screenPractice || !m.deps.Session.Accepting() {
		t.Fatalf("expected to be back at the table with a hand dealt")
	}
}

func TestHintShowsEquity(t *testing.T) {
	m := newTestModel(t, 0)
	if !m.hasEq || m.equity < 0.5 || m.equity > 0.8 {
		t.Fatalf("expected AKs equity estimate near 67%%, got %.3f (ok=%v)", m.equity, m.hasEq)
	}
	press(m, "?")
	if !strings.Contains(m.View(), "Equity vs a random hand:") {
		t.Fatalf("expected equity in the hint")
	}
}

func TestHistoryStripShowsCompletedHands(t *testing.T) {
	m := newTestModel(t, 0)
	press(m, "31")
	out := m.renderHistory()
	if !containsAll(out, []string{"#1 AKs ✓", "#2 AKs ✗", "#3 ?", "#4 ·"}) {
		t.Fatalf("unexpected history strip %q", out)
	}
}

func TestRenderFooterFormats(t *testing.T) {
	m := newTestModel(t, 0)
	press(m, "33")
	out := m.renderFooter()
	if !containsAll(out, []string{"Hands 2", "Accuracy 100%", "Streak 2 · best 2"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
