package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/preflop/internal/hand"
	"github.com/verte-zerg/preflop/internal/model"
	"github.com/verte-zerg/preflop/internal/ranges"
)

var actionColors = map[model.Action]lipgloss.Color{
	model.Fold:         lipgloss.Color("#3A3A3A"),
	model.OrFold:       lipgloss.Color("#2E7D32"),
	model.OrCall:       lipgloss.Color("#1565C0"),
	model.Or4BetFold:   lipgloss.Color("#6A1B9A"),
	model.Or4BetCall:   lipgloss.Color("#AD1457"),
	model.ThreeBetFold: lipgloss.Color("#EF6C00"),
	model.ThreeBetCall: lipgloss.Color("#C62828"),
	model.ThreeBetPush: lipgloss.Color("#F9A825"),
	model.Call:         lipgloss.Color("#00838F"),
	model.NoFold:       lipgloss.Color("#558B2F"),
}

var (
	cellStyle        = lipgloss.NewStyle().Width(4).Foreground(lipgloss.Color("#F0F0F0"))
	emptyCellStyle   = cellStyle.Foreground(lipgloss.Color("#5A5A5A"))
	matrixTitleStyle = lipgloss.NewStyle().Bold(true)
)

func actionStyle(a model.Action) lipgloss.Style {
	color, ok := actionColors[a]
	if !ok {
		return emptyCellStyle
	}
	style := cellStyle.Background(color)
	if a == model.ThreeBetPush {
		style = style.Foreground(lipgloss.Color("#1A1A1A"))
	}
	return style
}

// RenderMatrix draws r as the 13x13 hand grid with one color per action and
// a legend of the actions in use.
func RenderMatrix(title string, r ranges.Range) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(matrixTitleStyle.Render(title))
		b.WriteString("\n")
	}
	counts := map[model.Action]int{}
	for row := 0; row < len(hand.Ranks); row++ {
		cells := make([]string, 0, len(hand.Ranks))
		for col := 0; col < len(hand.Ranks); col++ {
			h := hand.At(row, col)
			a, ok := r.Lookup(h).Action()
			label := fmt.Sprintf("%-4s", h)
			if !ok {
				cells = append(cells, emptyCellStyle.Render(label))
				continue
			}
			counts[a] += hand.Combos(h)
			cells = append(cells, actionStyle(a).Render(label))
		}
		b.WriteString(strings.Join(cells, ""))
		b.WriteString("\n")
	}
	b.WriteString(renderLegend(counts))
	return b.String()
}

func renderLegend(combos map[model.Action]int) string {
	parts := make([]string, 0, len(combos))
	for _, a := range model.RangeActions {
		n, ok := combos[a]
		if !ok {
			continue
		}
		swatch := actionStyle(a).Width(2).Render("  ")
		pct := float64(n) / 1326 * 100
		parts = append(parts, fmt.Sprintf("%s %s %.1f%%", swatch, a.Label(), pct))
	}
	if len(parts) == 0 {
		return "No hands assigned."
	}
	return strings.Join(parts, "  ")
}
