package grid

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Blank is the rune used for empty cells in [Crossword.Cells].
const Blank = ' '

// Clue is one entry of a clue listing: a word and where it starts.
type Clue struct {
	Word      string `json:"word"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Direction string `json:"direction"`
}

// Cells returns the grid of the aligned crossword as rows of runes. Cells not
// covered by any word hold [Blank]. Later words overwrite earlier ones, which
// only matters for invalid crosswords.
func (c *Crossword) Cells() [][]rune {
	a := c.Align(0, 0)
	width, height := a.BoundingBox()
	for _, w := range a.words {
		if w.Orient == Across {
			height = max(height, w.Y+1)
		} else {
			width = max(width, w.X+1)
		}
	}

	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(string(Blank), width))
	}
	for _, w := range a.words {
		for i, r := range w.runes {
			if w.Orient == Across {
				cells[w.Y][w.X+i] = r
			} else {
				cells[w.Y+i][w.X] = r
			}
		}
	}
	return cells
}

// Display renders the grid as text, three characters per cell with trailing
// blanks trimmed, followed by a "(W x H) (N crossings)" footer.
func (c *Crossword) Display() string {
	var b strings.Builder
	for _, row := range c.Cells() {
		var line strings.Builder
		for _, r := range row {
			line.WriteByte(' ')
			line.WriteRune(r)
			line.WriteByte(' ')
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	w, h := c.Align(0, 0).BoundingBox()
	fmt.Fprintf(&b, "(%d x %d) (%d crossings)", w, h, c.Crossings())
	return b.String()
}

// Clues lists the words by (row, col, orientation). Coordinates are taken
// as-is; align or centre the crossword first to control them.
func (c *Crossword) Clues() []Clue {
	words := slices.Clone(c.words)
	slices.SortStableFunc(words, func(a, b Word) int {
		return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X), cmp.Compare(a.Orient, b.Orient))
	})
	clues := make([]Clue, len(words))
	for i, w := range words {
		clues[i] = Clue{Word: w.text, Row: w.Y, Col: w.X, Direction: w.Orient.Token()}
	}
	return clues
}

// ClueList renders [Crossword.Clues] as a numbered list.
func (c *Crossword) ClueList() string {
	lines := make([]string, 0, len(c.words))
	for i, cl := range c.Clues() {
		lines = append(lines, fmt.Sprintf("%2d. %-15s (%d, %d, %s)", i+1, cl.Word, cl.Row, cl.Col, cl.Direction))
	}
	return strings.Join(lines, "\n")
}

// placement is the JSON form of a Word.
type placement struct {
	Word      string `json:"word"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
}

// MarshalJSON encodes the crossword as a list of word placements in
// insertion order.
func (c *Crossword) MarshalJSON() ([]byte, error) {
	out := make([]placement, len(c.words))
	for i, w := range c.words {
		out[i] = placement{Word: w.text, X: w.X, Y: w.Y, Direction: w.Orient.Token()}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a list of word placements.
func (c *Crossword) UnmarshalJSON(data []byte) error {
	var in []placement
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if len(in) == 0 {
		return fmt.Errorf("crossword has no words")
	}
	words := make([]Word, len(in))
	for i, p := range in {
		w, err := NewWord(p.Word, p.X, p.Y, p.Direction)
		if err != nil {
			return fmt.Errorf("word %d: %w", i, err)
		}
		words[i] = w
	}
	c.words = words
	return nil
}
