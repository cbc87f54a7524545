package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// openDetails shows the newest graded hand in the visible history window.
func (m *Model) openDetails() {
	records := m.deps.Session.Records()
	if len(records) == 0 {
		m.notice = "No hands played yet."
		return
	}
	last := m.history.ViewStart() + m.history.Width() - 1
	m.detail = min(last, len(records)-1)
	m.leavePractice(screenDetails)
}

func (m *Model) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "[", "left", "h":
		m.detail = max(m.detail-1, 0)
	case "]", "right", "l":
		m.detail = min(m.detail+1, len(m.deps.Session.Records())-1)
	case "d", "q", "esc", "enter":
		m.resume()
	}
	return m, nil
}

func (m *Model) renderDetails() string {
	records := m.deps.Session.Records()
	if m.detail < 0 || m.detail >= len(records) {
		return cardStyle.Render("No hand selected.")
	}
	rec := records[m.detail]
	expected := m.expectedFor(rec)

	var verdict string
	switch {
	case rec.WasSkipped:
		verdict = skippedStyle.Render("Skipped")
	case rec.IsCorrect:
		verdict = correctStyle.Render("Correct")
	default:
		verdict = incorrectStyle.Render("Incorrect")
	}
	yours := "-"
	if !rec.WasSkipped {
		yours = rec.UserAction.Label()
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("Hand #%d of %d", rec.HandNumber, len(records))) + "  " + verdict,
		matchupStyle.Render(rec.Matchup().String()) + "   " + titleStyle.Render(string(rec.Hand)),
		"",
		fmt.Sprintf("Correct action: %s", expected.Label()),
		fmt.Sprintf("Your action:    %s", yours),
	}
	if rec.DecisionTime > 0 {
		lines = append(lines, fmt.Sprintf("Decision time:  %.1fs", rec.DecisionTime.Seconds()))
	}
	lines = append(lines, "")
	if r, ok := m.deps.Source.Range(rec.Matchup().Key()); ok {
		lines = append(lines, strings.TrimRight(RenderMatrix("", r), "\n"))
	} else {
		lines = append(lines, footerStyle.Render("No range chart for this matchup."))
	}
	lines = append(lines, "",
		keyStyle.Render("[ ]")+" previous/next  "+keyStyle.Render("[d]")+" back to the table")
	return cardStyle.Render(strings.Join(lines, "\n"))
}
