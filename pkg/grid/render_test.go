package grid

import (
	"testing"
)

func TestCells(t *testing.T) {
	cw := FromWords([]Word{NewAcross("CAT", 5, 5), NewDown("ART", 6, 5)})
	cells := cw.Cells()

	want := []string{
		"CAT",
		" R ",
		" T ",
	}
	if len(cells) != len(want) {
		t.Fatalf("rows = %d, want %d", len(cells), len(want))
	}
	for i, row := range cells {
		if string(row) != want[i] {
			t.Errorf("row %d = %q, want %q", i, string(row), want[i])
		}
	}
}

func TestDisplay(t *testing.T) {
	cw := FromWords([]Word{NewAcross("CAT", 0, 0), NewDown("ART", 1, 0)})
	want := " C  A  T\n    R\n    T\n(3 x 3) (1 crossings)"
	if got := cw.Display(); got != want {
		t.Errorf("Display() =\n%s\nwant\n%s", got, want)
	}
}

func TestClues(t *testing.T) {
	cw := FromWords([]Word{
		NewAcross("TOE", 1, 2),
		NewDown("ART", 1, 0),
		NewAcross("CAT", 0, 0),
		NewDown("CAT", 0, 0),
	})

	want := []Clue{
		{Word: "CAT", Row: 0, Col: 0, Direction: "A"},
		{Word: "CAT", Row: 0, Col: 0, Direction: "D"},
		{Word: "ART", Row: 0, Col: 1, Direction: "D"},
		{Word: "TOE", Row: 2, Col: 1, Direction: "A"},
	}
	got := cw.Clues()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("clue %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestClueList(t *testing.T) {
	cw := FromWords([]Word{NewAcross("CAT", 0, 0), NewDown("ART", 1, 0)})
	want := " 1. CAT             (0, 0, A)\n 2. ART             (0, 1, D)"
	if got := cw.ClueList(); got != want {
		t.Errorf("ClueList() =\n%q\nwant\n%q", got, want)
	}
}
