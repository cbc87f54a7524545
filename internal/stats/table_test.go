package stats

import "testing"

func TestAlignColumnsPadsToWidestCell(t *testing.T) {
	lines := alignColumns(
		[]string{"Spot", "Accuracy", "Hands"},
		[][]string{{"BB", "97%", "120"}, {"Suited Gapper", "8%", "3"}},
		1, 2,
	)
	want := []string{
		"Spot          Accuracy Hands",
		"BB                 97%   120",
		"Suited Gapper       8%     3",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestAlignColumnsWideRunes(t *testing.T) {
	lines := alignColumns([]string{"Hand", "N"}, [][]string{{"AKs", "1"}, {"漢字", "2"}})
	if lines[1] != "AKs  1" || lines[2] != "漢字 2" {
		t.Fatalf("unexpected wide rune padding: %q", lines)
	}
}

func TestAlignColumnsRaggedRows(t *testing.T) {
	lines := alignColumns(nil, [][]string{{"a"}, {"bb", "c"}}, 7)
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "bb c" {
		t.Fatalf("unexpected ragged layout: %q", lines)
	}
	if alignColumns(nil, nil) != nil {
		t.Fatalf("expected nil for an empty grid")
	}
}
