// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Curve is one named line on an accuracy chart. Values are percentages.
type Curve struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelTop        = "100%"
	axisLabelMid        = "50%"
	axisLabelBottom     = "0%"
	axisSeparator       = " │ "
	percentNote         = "Percent scale."
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

// dash draws `on` dots out of every `period` columns.
type dash struct {
	name   string
	period int
	on     int
}

func (d dash) draws(x int) bool {
	if d.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%d.period < d.on
}

var dashes = []dash{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var curveColors = []string{"\x1b[36m", "\x1b[33m", "\x1b[35m"}

// canvas is a grid of braille cells, each 2 dots wide and 4 dots tall.
type canvas struct {
	cells [][]uint8
}

func newCanvas(cols, rows int) *canvas {
	cells := make([][]uint8, rows)
	for i := range cells {
		cells[i] = make([]uint8, cols)
	}
	return &canvas{cells: cells}
}

func (c *canvas) dot(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	row, col := y/4, x/2
	if row >= len(c.cells) || col >= len(c.cells[row]) {
		return
	}
	c.cells[row][col] |= dotBit(x%2, y%4)
}

// line plots a Bresenham segment, skipping the gaps of d.
func (c *canvas) line(x0, y0, x1, y1 int, d dash) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if d.draws(x0) {
			c.dot(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *canvas) at(col, row int) uint8 {
	return c.cells[row][col]
}

// dotBit returns the braille bit for a dot inside one cell.
func dotBit(x, y int) uint8 {
	left := [4]uint8{0x01, 0x02, 0x04, 0x40}
	right := [4]uint8{0x08, 0x10, 0x20, 0x80}
	if x == 0 {
		return left[y]
	}
	return right[y]
}

func braille(mask uint8) rune {
	return rune(0x2800 + int(mask))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// PlotAccuracy renders curves on a fixed 0-100 scale using braille dots.
// width and height count character cells; zero picks the defaults.
func PlotAccuracy(w io.Writer, title string, curves []Curve, width, height int, forceColor bool) error {
	kept := make([]Curve, 0, len(curves))
	for _, c := range curves {
		if len(c.Values) > 0 {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	width = max(width, minPlotWidth)

	dotRows := height * 4
	layers := make([]*canvas, len(kept))
	for i, c := range kept {
		layers[i] = newCanvas(width, height)
		d := dashes[i%len(dashes)]
		points := fitPoints(c.Values, width)
		prevX, prevY := -1, -1
		for x, v := range points {
			y := percentRow(v, dotRows)
			if prevX < 0 {
				if d.draws(0) {
					layers[i].dot(0, y)
				}
			} else {
				layers[i].line(prevX, prevY, x*2, y, d)
			}
			prevX, prevY = x*2, y
		}
	}

	color := shouldUseColor(w, forceColor)
	var b strings.Builder
	if title != "" {
		b.WriteString(title + "\n")
	}
	b.WriteString(percentNote + "\n")
	for row := 0; row < height; row++ {
		fmt.Fprintf(&b, "%*s%s", utf8.RuneCountInString(axisLabelTop), axisLabel(row, height), axisSeparator)
		for col := 0; col < width; col++ {
			var mask uint8
			owner := -1
			for i, layer := range layers {
				if m := layer.at(col, row); m != 0 {
					mask |= m
					if owner < 0 {
						owner = i
					}
				}
			}
			if color && owner >= 0 {
				b.WriteString(curveColors[owner%len(curveColors)])
				b.WriteRune(braille(mask))
				b.WriteString(colorReset)
				continue
			}
			b.WriteRune(braille(mask))
		}
		b.WriteString("\n")
	}
	b.WriteString(legend(kept, color) + "\n\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// percentRow maps a percentage onto a dot row, 100 at the top.
func percentRow(v float64, dotRows int) int {
	v = min(max(v, 0), 100)
	row := int(math.Round((1 - v/100) * float64(dotRows-1)))
	return min(max(row, 0), dotRows-1)
}

func axisLabel(row, height int) string {
	switch {
	case row == 0:
		return axisLabelTop
	case height > 1 && row == height-1:
		return axisLabelBottom
	case height > 2 && row == height/2:
		return axisLabelMid
	}
	return ""
}

// fitPoints stretches or averages values down to exactly n points.
func fitPoints(values []float64, n int) []float64 {
	out := make([]float64, n)
	switch {
	case len(values) == n:
		copy(out, values)
	case len(values) > n:
		for i := range out {
			lo := i * len(values) / n
			hi := max((i+1)*len(values)/n, lo+1)
			var sum float64
			for _, v := range values[lo:hi] {
				sum += v
			}
			out[i] = sum / float64(hi-lo)
		}
	case len(values) == 1 || n == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		step := float64(len(values)-1) / float64(n-1)
		for i := range out {
			pos := float64(i) * step
			idx := int(pos)
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx] + (values[idx+1]-values[idx])*frac
		}
	}
	return out
}

func legend(curves []Curve, color bool) string {
	parts := make([]string, len(curves))
	for i, c := range curves {
		label := fmt.Sprintf("%c %s (%s)", braille(0x01), c.Name, dashes[i%len(dashes)].name)
		if color {
			label = curveColors[i%len(curveColors)] + label + colorReset
		}
		parts[i] = label
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	return max(totalWidth-axisWidth, minPlotWidth)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
