// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/preflop/internal/coach"
	"github.com/verte-zerg/preflop/internal/command"
	"github.com/verte-zerg/preflop/internal/generator"
	"github.com/verte-zerg/preflop/internal/hand"
	"github.com/verte-zerg/preflop/internal/model"
	"github.com/verte-zerg/preflop/internal/practice"
	"github.com/verte-zerg/preflop/internal/recorder"
)

// Options tune the practice screen.
type Options struct {
	HistoryWidth int
	MaxHands     int
	DealDelay    time.Duration
}

// Deps are the collaborators the practice screen drives. Tracker may be nil
// to run without coaching.
type Deps struct {
	Session   *practice.Session
	Generator *generator.Generator
	Source    generator.Source
	Tracker   *coach.Tracker
	Logger    *log.Logger
	Rand      *rand.Rand
}

type screen int

const (
	screenPractice screen = iota
	screenResults
	screenDetails
)

type dealMsg struct {
	seq int
}

// Model implements the Bubble Tea practice UI.
type Model struct {
	deps    Deps
	opts    Options
	history *practice.History
	prompt  textinput.Model

	width  int
	height int

	screen    screen
	prompting bool
	showHint  bool
	notice    string
	dealSeq   int

	item    model.PracticeItem
	cards   hand.HoleCards
	actions []model.Action
	equity  float64
	hasEq   bool
	detail  int

	last        model.HandRecord
	hasLast     bool
	feedback    coach.Feedback
	hasFeedback bool

	result practice.Result
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	matchupStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	blackCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	redCardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	skippedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0")).Italic(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 3)
)

var feedbackStyles = map[coach.Kind]lipgloss.Style{
	coach.Neutral: hintStyle,
	coach.Success: correctStyle,
	coach.Warning: incorrectStyle,
}

// NewModel builds the practice screen and deals the first hand of a fresh
// session.
func NewModel(deps Deps, opts Options) (*Model, error) {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	prompt := textinput.New()
	prompt.Prompt = ": "
	prompt.Placeholder = "fold, three bet call, skip..."
	prompt.CharLimit = 64

	m := &Model{
		deps:    deps,
		opts:    opts,
		history: practice.NewHistory(opts.HistoryWidth, opts.MaxHands),
		prompt:  prompt,
	}
	if err := m.startSession(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case dealMsg:
		if msg.seq == m.dealSeq && m.screen == screenPractice {
			m.deal()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.finish()
			return m, tea.Quit
		}
		switch m.screen {
		case screenResults:
			return m.updateResults(msg)
		case screenDetails:
			return m.updateDetails(msg)
		}
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updatePractice(msg)
	default:
		return m, nil
	}
}

func (m *Model) updatePractice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "esc":
		m.pause()
		return m, nil
	case "d":
		m.openDetails()
		return m, nil
	case "s":
		return m, m.answer(command.Command{Skip: true})
	case "?":
		m.showHint = !m.showHint
		return m, nil
	case ":":
		m.prompting = true
		m.notice = ""
		return m, m.prompt.Focus()
	case "[":
		m.history.Previous()
		return m, nil
	case "]":
		m.history.Next(m.deps.Session.Stats().HandsPlayed)
		return m, nil
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(m.actions) {
			return m, m.answer(command.Command{Action: m.actions[idx]})
		}
	}
	return m, nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		text := m.prompt.Value()
		m.closePrompt()
		cmd, ok := command.Parse(text)
		if !ok {
			m.notice = fmt.Sprintf("Unknown command %q", strings.TrimSpace(text))
			return m, nil
		}
		return m, m.answer(cmd)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Reset()
	m.prompt.Blur()
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		m.resume()
		return m, nil
	case "n", "enter":
		m.finish()
		if err := m.startSession(); err != nil {
			m.notice = err.Error()
		}
		return m, nil
	case "q", "esc":
		m.finish()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) startSession() error {
	cfg := m.deps.Session.Config()
	deck, err := m.deps.Generator.Build(cfg, m.deps.Source)
	if err != nil {
		return err
	}
	if err := m.deps.Session.Start(deck); err != nil {
		return err
	}
	if m.deps.Tracker != nil {
		m.deps.Tracker.Reset()
	}
	m.history.Reset()
	m.screen = screenPractice
	m.hasLast = false
	m.hasFeedback = false
	m.notice = ""
	m.deal()
	return nil
}

func (m *Model) deal() {
	item, err := m.deps.Session.DealNext()
	if err != nil {
		m.notice = err.Error()
		return
	}
	cards, err := hand.Deal(item.Hand, m.deps.Rand)
	if err != nil {
		m.deps.Logger.Warn("cannot deal hole cards", "hand", item.Hand, "err", err)
	}
	m.item = item
	m.cards = cards
	m.hasEq = false
	if err == nil {
		eq, eqErr := hand.Equity(cards, m.deps.Rand, hand.EquityTrials)
		m.equity, m.hasEq = eq, eqErr == nil
	}
	m.actions = model.ActionsFor(item.Hero, item.Villain, m.deps.Session.Config().GameType)
	m.showHint = false
}

func (m *Model) answer(c command.Command) tea.Cmd {
	var (
		rec model.HandRecord
		err error
	)
	if c.Skip {
		rec, err = m.deps.Session.Skip()
	} else {
		rec, err = m.deps.Session.Submit(c.Action)
	}
	if err != nil {
		if !errors.Is(err, practice.ErrNotAccepting) {
			m.notice = err.Error()
		}
		return nil
	}
	m.notice = ""
	m.last = rec
	m.hasLast = true
	m.history.HandCompleted(rec.HandNumber)
	if m.deps.Tracker != nil {
		m.feedback, m.hasFeedback = m.deps.Tracker.Last()
	}

	m.dealSeq++
	if m.opts.DealDelay <= 0 {
		m.deal()
		return nil
	}
	seq := m.dealSeq
	return tea.Tick(m.opts.DealDelay, func(time.Time) tea.Msg {
		return dealMsg{seq: seq}
	})
}

// pause shows the results card over a live session.
func (m *Model) pause() {
	m.result = m.deps.Session.Snapshot()
	m.leavePractice(screenResults)
}

// resume returns to the table, dealing if the pending deal was cancelled.
func (m *Model) resume() {
	m.screen = screenPractice
	m.notice = ""
	if !m.deps.Session.Accepting() {
		m.deal()
	}
}

// finish ends the session, which records it once.
func (m *Model) finish() {
	m.result = m.deps.Session.End(context.Background())
}

func (m *Model) leavePractice(to screen) {
	m.screen = to
	m.closePrompt()
	m.dealSeq++
}

// Result returns the result of the last paused or finished session.
func (m *Model) Result() practice.Result {
	return m.result
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.screen {
	case screenResults:
		content = m.renderResults()
	case screenDetails:
		content = m.renderDetails()
	default:
		content = m.renderPractice()
	}
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 72
	}
	return max(int(float64(m.width)*0.70), 20)
}

func (m *Model) renderPractice() string {
	width := m.contentWidth()
	cfg := m.deps.Session.Config()
	stats := m.deps.Session.Stats()

	lines := []string{
		titleStyle.Render(fmt.Sprintf("Hand #%d", stats.HandsPlayed+1)) + "  " +
			footerStyle.Render(cfg.GameType.Label()+" · "+cfg.HandStart.Label()),
		matchupStyle.Render(m.item.Matchup().String()),
		"",
		m.renderCards() + "   " + titleStyle.Render(string(m.item.Hand)),
		"",
		wrapStyledRunes(m.renderActionKeys(), width),
	}
	if m.hasLast {
		lines = append(lines, "", m.renderLastAnswer(width))
	}
	if m.hasFeedback {
		style := feedbackStyles[m.feedback.Kind]
		lines = append(lines, wrapText(m.feedback.Message, style, width))
	}
	if m.showHint {
		lines = append(lines, "", m.renderHint(width))
	}
	if m.notice != "" {
		lines = append(lines, "", incorrectStyle.Render(m.notice))
	}
	lines = append(lines, "", m.renderHistory())
	if m.prompting {
		lines = append(lines, "", m.prompt.View())
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderCards() string {
	parts := make([]string, 0, len(m.cards))
	for _, c := range m.cards {
		if c.Rank == 0 {
			continue
		}
		style := blackCardStyle
		if c.Red() {
			style = redCardStyle
		}
		parts = append(parts, style.Render(c.String()))
	}
	return strings.Join(parts, " ")
}

// renderActionKeys lays out the numbered answers as styled runes so the row
// wraps between buttons.
func (m *Model) renderActionKeys() []styledRune {
	var out []styledRune
	add := func(key, label string) {
		if len(out) > 0 {
			out = append(out, styledRune{s: " ", width: 1}, styledRune{s: " ", width: 1, isSpace: true})
		}
		out = append(out, buildStyledText("["+key+"]", keyStyle)...)
		out = append(out, styledRune{s: " ", width: 1})
		out = append(out, buildStyledText(label, titleStyle)...)
	}
	for i, a := range m.actions {
		add(fmt.Sprintf("%d", i+1), a.Label())
	}
	add("s", "Skip")
	add("?", "Hint")
	add("d", "Details")
	add(":", "Command")
	return out
}

// expectedFor is the answer graded for rec in the current game type.
func (m *Model) expectedFor(rec model.HandRecord) model.Action {
	if m.deps.Session.Config().GameType == model.FoldNoFold {
		return practice.Coarsen(rec.CorrectAction)
	}
	return rec.CorrectAction
}

func (m *Model) renderLastAnswer(width int) string {
	rec := m.last
	expected := m.expectedFor(rec)
	var text string
	var style lipgloss.Style
	switch {
	case rec.WasSkipped:
		text = fmt.Sprintf("Skipped %s (%s): answer was %s", rec.Hand, rec.Matchup(), expected.Label())
		style = skippedStyle
	case rec.IsCorrect:
		text = fmt.Sprintf("Correct! %s (%s): %s", rec.Hand, rec.Matchup(), expected.Label())
		style = correctStyle
	default:
		text = fmt.Sprintf("Wrong. %s (%s): %s, you chose %s", rec.Hand, rec.Matchup(), expected.Label(), rec.UserAction.Label())
		style = incorrectStyle
	}
	if !rec.Assigned {
		text += " (not in range)"
	}
	return wrapText(text, style, width)
}

func (m *Model) renderHint(width int) string {
	h := coach.HintFor(m.item.Hero, m.item.Hand)
	lines := []string{
		wrapText(fmt.Sprintf("%s · %s: %s", h.Hand, h.CategoryName, h.Text), hintStyle, width),
	}
	if h.GeneralTip != "" {
		lines = append(lines, wrapText(h.GeneralTip, footerStyle, width))
	}
	if m.hasEq {
		lines = append(lines, hintStyle.Render(fmt.Sprintf("Equity vs a random hand: %.0f%%", m.equity*100)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderHistory() string {
	records := m.deps.Session.Records()
	current := m.deps.Session.Stats().HandsPlayed + 1
	slots := m.history.Slots(records, current)
	parts := make([]string, 0, len(slots)+2)
	if m.history.CanPrevious() {
		parts = append(parts, keyStyle.Render("["))
	} else {
		parts = append(parts, " ")
	}
	for _, slot := range slots {
		parts = append(parts, renderSlot(slot))
	}
	if m.history.CanNext(len(records)) {
		parts = append(parts, keyStyle.Render("]"))
	}
	return strings.Join(parts, " ")
}

func renderSlot(slot practice.Slot) string {
	label := fmt.Sprintf("#%d", slot.HandNumber)
	switch slot.Kind {
	case practice.SlotCompleted:
		rec := slot.Record
		switch {
		case rec.WasSkipped:
			return skippedStyle.Render(fmt.Sprintf("%s %s -", label, rec.Hand))
		case rec.IsCorrect:
			return correctStyle.Render(fmt.Sprintf("%s %s ✓", label, rec.Hand))
		default:
			return incorrectStyle.Render(fmt.Sprintf("%s %s ✗", label, rec.Hand))
		}
	case practice.SlotCurrent:
		return currentStyle.Render(label + " ?")
	case practice.SlotFuture:
		return pendingStyle.Render(label + " ·")
	default:
		return ""
	}
}

func (m *Model) renderResults() string {
	res := m.result
	duration := res.EndedAt.Sub(res.Stats.StartedAt)
	if res.Stats.StartedAt.IsZero() || duration < 0 {
		duration = 0
	}
	lines := []string{
		titleStyle.Render("Session results"),
		"",
		fmt.Sprintf("Hands:       %d", res.Stats.HandsPlayed),
		fmt.Sprintf("Correct:     %d", res.Stats.CorrectDecisions),
		fmt.Sprintf("Accuracy:    %d%%", res.Stats.Accuracy()),
		fmt.Sprintf("Time:        %s", recorder.FormatDuration(duration)),
		fmt.Sprintf("Best streak: %d", res.Stats.BestStreak),
	}
	if p, ok := res.Breakdown.WeakestPosition(); ok {
		lines = append(lines, fmt.Sprintf("Weakest seat: %s", p))
	}
	if c, ok := res.Breakdown.WeakestCategory(); ok {
		lines = append(lines, fmt.Sprintf("Weakest hands: %s", c.Plural()))
	}
	if res.Stats.HandsPlayed == 0 {
		lines = append(lines, "", footerStyle.Render("No hands played, nothing will be saved."))
	}
	if m.notice != "" {
		lines = append(lines, "", incorrectStyle.Render(m.notice))
	}
	lines = append(lines, "",
		keyStyle.Render("[c]")+" continue  "+keyStyle.Render("[n]")+" save and start new  "+keyStyle.Render("[q]")+" save and quit")
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	stats := m.deps.Session.Stats()
	segments := []string{
		fmt.Sprintf("Hands %d", stats.HandsPlayed),
		fmt.Sprintf("Accuracy %d%%", stats.Accuracy()),
		fmt.Sprintf("Streak %d · best %d", stats.CurrentStreak, stats.BestStreak),
	}
	if m.screen == screenPractice {
		segments = append(segments, "q results")
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
