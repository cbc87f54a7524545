package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/preflop/internal/coach"
	"github.com/verte-zerg/preflop/internal/model"
	"github.com/verte-zerg/preflop/internal/recorder"
	"github.com/verte-zerg/preflop/internal/stats"
)

var (
	feltColor   = lipgloss.Color("#2E7D4F")
	mutedColor  = lipgloss.Color("#5C6B63")
	brightColor = lipgloss.Color("#ECEFEA")

	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(mutedColor).
			Foreground(lipgloss.Color("#A7B1AB"))
	activeTabStyle = tabStyle.
			BorderForeground(feltColor).
			Foreground(brightColor).
			Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5484D"))
	cardStyle      = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder(), true).BorderForeground(mutedColor)
	cardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8FA397"))
	cardValueStyle = lipgloss.NewStyle().Foreground(brightColor).Bold(true)
	tipStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#B5C4BA")).Italic(true)
)

func renderTabs(names []string, active int) string {
	parts := make([]string, len(names))
	for i, name := range names {
		style := tabStyle
		if i == active {
			style = activeTabStyle
		}
		parts[i] = style.Render(name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func describeFilter(f stats.Filter) string {
	since := "any date"
	if f.Since != nil {
		since = f.Since.Format(dateLayout)
	}
	last := "all"
	if f.Last > 0 {
		last = fmt.Sprintf("%d", f.Last)
	}
	mode := "any mode"
	if f.GameType != "" {
		mode = f.GameType.Label()
	}
	return fmt.Sprintf("Filter: since %s · last %s · %s · window %d", since, last, mode, f.CurveWindow)
}

func renderOverview(r stats.Report, window, width int) string {
	if len(r.Sessions) == 0 {
		return "No sessions found."
	}
	var curve bytes.Buffer
	if err := stats.RenderCurvesWithSize(&curve, r.Sessions, window, width, plotHeight, true); err != nil {
		curve.Reset()
		fmt.Fprintf(&curve, "Failed to render curve: %v", err)
	}
	blocks := []string{
		renderCards(r.Overview, width),
		strings.TrimRight(curve.String(), "\n"),
	}
	if best := renderBest(r.Best); best != "" {
		blocks = append(blocks, best)
	}
	return strings.Join(blocks, "\n\n")
}

func renderCards(o stats.Overview, width int) string {
	cards := []string{
		card("Sessions", fmt.Sprintf("%d", o.Sessions)),
		card("Total Hands", fmt.Sprintf("%d", o.TotalHands)),
		card("Accuracy", fmt.Sprintf("%d%%", o.Accuracy)),
		card("Study Time", recorder.FormatDurationHours(o.StudyTime)),
		card("Best Streak", fmt.Sprintf("%d", o.BestStreak)),
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if lipgloss.Width(row) <= width {
		return row
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cards[:3]...),
		lipgloss.JoinHorizontal(lipgloss.Top, cards[3:]...),
	)
}

func card(label, value string) string {
	return cardStyle.Render(cardLabelStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

func renderBest(best []model.SessionSummary) string {
	if len(best) == 0 {
		return ""
	}
	lines := []string{cardValueStyle.Render("Best Sessions")}
	for _, s := range best {
		lines = append(lines, fmt.Sprintf("%s  %3d%%  %3d hands  %s", s.ReadableDate, s.Accuracy, s.TotalHands, s.PositionDisplay))
	}
	return strings.Join(lines, "\n")
}

// renderWeak prints the weak-spot table plus one coach tip for the weakest
// category, seen from the weakest seat.
func renderWeak(spots []stats.WeakSpot, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderWeakSpots(&buf, spots); err != nil {
		return fmt.Sprintf("Failed to render weak spots: %v", err)
	}
	out := strings.TrimRight(buf.String(), "\n")

	seat := model.BU
	for _, s := range spots {
		if s.Kind == stats.SpotPosition {
			seat = model.Position(s.Label)
			break
		}
	}
	for _, s := range spots {
		if s.Kind != stats.SpotCategory {
			continue
		}
		for _, c := range model.Categories {
			if c.Label() != s.Label {
				continue
			}
			tip := fmt.Sprintf("Tip (%s, %s): %s", seat, s.Label, coach.CategoryHint(seat, c))
			return out + "\n\n" + tipStyle.Width(max(width-2, 20)).Render(tip)
		}
	}
	return out
}

var sessionColumns = []table.Column{
	{Title: "Date", Width: 16},
	{Title: "Hands", Width: 5},
	{Title: "Correct", Width: 7},
	{Title: "Acc", Width: 4},
	{Title: "Time", Width: 6},
	{Title: "Streak", Width: 6},
	{Title: "Mode", Width: 12},
	{Title: "Start", Width: 14},
	{Title: "Position", Width: 12},
}

func sessionTableRows(sessions []model.SessionSummary) []table.Row {
	_, cells := stats.SessionRows(sessions)
	rows := make([]table.Row, len(cells))
	for i, c := range cells {
		rows[i] = table.Row(c)
	}
	return rows
}

func sessionTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(mutedColor).
		Foreground(cardLabelStyle.GetForeground()).
		Bold(true).
		PaddingLeft(0).
		PaddingRight(1)
	s.Cell = s.Cell.PaddingLeft(0).PaddingRight(1)
	s.Selected = s.Cell.Foreground(brightColor).Background(feltColor)
	return s
}

// frame pads every line to width and cuts or fills to exactly height lines.
// A negative height keeps the line count.
func frame(s string, width, height int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if height >= 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, line := range lines {
		if gap := width - lipgloss.Width(line); gap > 0 {
			lines[i] = line + strings.Repeat(" ", gap)
		}
	}
	return strings.Join(lines, "\n")
}
