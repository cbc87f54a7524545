package stats

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlotAccuracy(t *testing.T) {
	var buf bytes.Buffer
	err := PlotAccuracy(&buf, "Accuracy", []Curve{
		{Name: "Session", Values: []float64{40, 60, 80, 60, 40}},
		{Name: "Avg(3)", Values: []float64{40, 50, 60, 67, 60}},
		{Name: "Empty"},
	}, 12, 4, false)
	if err != nil {
		t.Fatalf("PlotAccuracy failed: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title, note, 4 plot rows, legend
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "Accuracy" || lines[1] != percentNote {
		t.Fatalf("unexpected header %q %q", lines[0], lines[1])
	}
	if !strings.HasPrefix(lines[2], axisLabelTop+axisSeparator) || !strings.HasPrefix(lines[5], "  "+axisLabelBottom+axisSeparator) {
		t.Fatalf("unexpected axis labels:\n%s", out)
	}
	if !strings.Contains(lines[6], "Session (solid)") || !strings.Contains(lines[6], "Avg(3) (dashed)") || strings.Contains(lines[6], "Empty") {
		t.Fatalf("unexpected legend %q", lines[6])
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color when writing to a buffer")
	}
}

func TestPlotAccuracyFullScoreHitsTopRow(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotAccuracy(&buf, "", []Curve{{Name: "S", Values: []float64{100, 100}}}, 10, 3, false); err != nil {
		t.Fatalf("PlotAccuracy failed: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	top := strings.TrimPrefix(lines[1], axisLabelTop+axisSeparator)
	if strings.Trim(top, string(braille(0))) == "" {
		t.Fatalf("expected dots on the top row, got %q", lines[1])
	}
}

func TestPercentRowClamps(t *testing.T) {
	if percentRow(150, 40) != 0 || percentRow(-5, 40) != 39 || percentRow(50, 41) != 20 {
		t.Fatalf("unexpected row mapping")
	}
}

func TestFitPoints(t *testing.T) {
	got := fitPoints([]float64{0, 100}, 5)
	want := []float64{0, 25, 50, 75, 100}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stretch: expected %v, got %v", want, got)
		}
	}
	got = fitPoints([]float64{10, 20, 30, 40}, 2)
	if got[0] != 15 || got[1] != 35 {
		t.Fatalf("average: expected [15 35], got %v", got)
	}
}

func TestPlotWidthFor(t *testing.T) {
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	if got := PlotWidthFor(80); got != 80-axisWidth {
		t.Fatalf("expected width %d, got %d", 80-axisWidth, got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}
