package grid

import (
	"fmt"
	"strings"

	"github.com/matzehuels/crossgrid/pkg/errors"
)

// Orientation is the direction a word runs in the grid.
type Orientation uint8

const (
	// Across words run left to right (increasing x).
	Across Orientation = iota
	// Down words run top to bottom (increasing y).
	Down
)

// ParseOrientation recognises an orientation token by its first letter,
// case-insensitively, so "A", "across" and "Across" all parse as [Across].
func ParseOrientation(token string) (Orientation, error) {
	t := strings.ToUpper(strings.TrimSpace(token))
	switch {
	case strings.HasPrefix(t, "A"):
		return Across, nil
	case strings.HasPrefix(t, "D"):
		return Down, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidOrientation, "cannot recognise value %q as a direction", token)
}

// String returns "ACROSS" or "DOWN".
func (o Orientation) String() string {
	if o == Down {
		return "DOWN"
	}
	return "ACROSS"
}

// Token returns the single-letter form used in clue listings and JSON.
func (o Orientation) Token() string {
	if o == Down {
		return "D"
	}
	return "A"
}

// Perpendicular returns the other orientation.
func (o Orientation) Perpendicular() Orientation {
	if o == Across {
		return Down
	}
	return Across
}

// Point is an integer grid coordinate. X grows to the right, Y grows downward.
type Point struct {
	X, Y int
}

// Word is a single placed word. Words are values: moving a word produces a
// new Word, and its letters never change after construction.
type Word struct {
	text   string
	runes  []rune
	X, Y   int
	Orient Orientation
}

// NewWord builds a word from user-supplied values. The text is upper-cased
// and the orientation token is parsed with [ParseOrientation].
func NewWord(text string, x, y int, orientation string) (Word, error) {
	if err := errors.ValidateWordText(text); err != nil {
		return Word{}, err
	}
	o, err := ParseOrientation(orientation)
	if err != nil {
		return Word{}, err
	}
	return newWord(text, x, y, o), nil
}

// NewAcross returns an across word at (x, y).
func NewAcross(text string, x, y int) Word { return newWord(text, x, y, Across) }

// NewDown returns a down word at (x, y).
func NewDown(text string, x, y int) Word { return newWord(text, x, y, Down) }

func newWord(text string, x, y int, o Orientation) Word {
	t := Normalize(text)
	return Word{text: t, runes: []rune(t), X: x, Y: y, Orient: o}
}

// Normalize returns the canonical form of a word's text.
func Normalize(text string) string {
	return strings.ToUpper(strings.TrimSpace(text))
}

// Text returns the normalized text.
func (w Word) Text() string { return w.text }

// Len returns the number of letters.
func (w Word) Len() int { return len(w.runes) }

// Origin returns the coordinate of the first letter.
func (w Word) Origin() Point { return Point{w.X, w.Y} }

// LetterAt returns the letter at offset, or 0 when offset is outside the word.
// Out-of-range lookups are not errors; perpendicular validity relies on two
// out-of-range lookups comparing equal.
func (w Word) LetterAt(offset int) rune {
	if offset < 0 || offset >= len(w.runes) {
		return 0
	}
	return w.runes[offset]
}

// Shifted returns a copy of w translated by (dx, dy).
func (w Word) Shifted(dx, dy int) Word {
	w.X += dx
	w.Y += dy
	return w
}

// End returns the exclusive end coordinate along the word's own axis.
func (w Word) End() int {
	if w.Orient == Across {
		return w.X + len(w.runes)
	}
	return w.Y + len(w.runes)
}

// Equal reports whether both words have the same text, origin and orientation.
func (w Word) Equal(o Word) bool {
	return w.text == o.text && w.X == o.X && w.Y == o.Y && w.Orient == o.Orient
}

// FindIntersections returns every origin at which candidate, placed
// perpendicular to w, shares a matching letter with w. One origin is returned
// per matching letter pair, so the result may contain duplicates.
func (w Word) FindIntersections(candidate string) []Point {
	cand := []rune(Normalize(candidate))
	var out []Point
	for i, c := range w.runes {
		for j, nc := range cand {
			if c != nc {
				continue
			}
			if w.Orient == Across {
				out = append(out, Point{w.X + i, w.Y - j})
			} else {
				out = append(out, Point{w.X - j, w.Y + i})
			}
		}
	}
	return out
}

// String returns "TEXT(x,y,A)".
func (w Word) String() string {
	return fmt.Sprintf("%s(%d,%d,%s)", w.text, w.X, w.Y, w.Orient.Token())
}
