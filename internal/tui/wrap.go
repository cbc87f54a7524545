package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// styledRune is one pre-rendered cell. Only runes with isSpace set are break
// points.
type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledText splits text into styled runes. Runs of whitespace collapse
// to a single breakable space.
func buildStyledText(text string, style lipgloss.Style) []styledRune {
	text = strings.Join(strings.Fields(text), " ")
	out := make([]styledRune, 0, len(text))
	for _, r := range text {
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

// wrapText renders text in style, broken at spaces to fit width.
func wrapText(text string, style lipgloss.Style, width int) string {
	return wrapStyledRunes(buildStyledText(text, style), width)
}

// word is a run of unbreakable cells plus the space that preceded it.
type word struct {
	gap  []styledRune
	body []styledRune
}

func splitWords(runes []styledRune) []word {
	words := []word{{}}
	for _, r := range runes {
		if r.isSpace {
			words = append(words, word{gap: []styledRune{r}})
			continue
		}
		last := &words[len(words)-1]
		last.body = append(last.body, r)
	}
	return words
}

// wrapStyledRunes lays runes out in lines no wider than width. Words wider
// than a line are split mid-word. Spaces at a break are dropped.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return joinCells(runes)
	}
	var lines []string
	var line []styledRune
	used := 0
	flush := func() {
		lines = append(lines, joinCells(line))
		line = line[:0]
		used = 0
	}

	for _, w := range splitWords(runes) {
		if len(line) > 0 {
			if used+cellWidth(w.gap)+cellWidth(w.body) > width {
				flush()
			} else {
				line = append(line, w.gap...)
				used += cellWidth(w.gap)
			}
		}
		for _, r := range w.body {
			if len(line) > 0 && used+r.width > width {
				flush()
			}
			line = append(line, r)
			used += r.width
		}
	}
	flush()
	return strings.Join(lines, "\n")
}

func joinCells(cells []styledRune) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.s)
	}
	return b.String()
}

func cellWidth(cells []styledRune) int {
	n := 0
	for _, c := range cells {
		n += c.width
	}
	return n
}
