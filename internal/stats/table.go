package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// alignColumns lays out header plus rows as space-separated columns sized to
// their widest cell. Columns listed in right are right-aligned.
func alignColumns(header []string, rows [][]string, right ...int) []string {
	grid := make([][]string, 0, len(rows)+1)
	if len(header) > 0 {
		grid = append(grid, header)
	}
	grid = append(grid, rows...)

	var widths []int
	for _, cells := range grid {
		for len(widths) < len(cells) {
			widths = append(widths, 0)
		}
		for i, cell := range cells {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	if len(widths) == 0 {
		return nil
	}

	rightAligned := make([]bool, len(widths))
	for _, col := range right {
		if col >= 0 && col < len(rightAligned) {
			rightAligned[col] = true
		}
	}

	out := make([]string, len(grid))
	cells := make([]string, len(widths))
	for r, row := range grid {
		for i, w := range widths {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			if rightAligned[i] {
				cells[i] = runewidth.FillLeft(cell, w)
			} else {
				cells[i] = runewidth.FillRight(cell, w)
			}
		}
		out[r] = strings.TrimRight(strings.Join(cells, " "), " ")
	}
	return out
}
