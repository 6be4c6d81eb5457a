package grid

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Crossword is an immutable, ordered collection of placed words.
//
// Crosswords are snapshots: [Crossword.Add] returns a new crossword and never
// touches the receiver, so a search can abandon a branch without undoing
// anything. Geometry is recomputed on every query.
type Crossword struct {
	words []Word
}

// New returns a crossword containing only the seed word.
func New(seed Word) *Crossword {
	return &Crossword{words: []Word{seed}}
}

// FromWords returns a crossword containing words in the given order.
// It returns nil for an empty slice.
func FromWords(words []Word) *Crossword {
	if len(words) == 0 {
		return nil
	}
	return &Crossword{words: slices.Clone(words)}
}

// Add returns a new crossword with w appended.
func (c *Crossword) Add(w Word) *Crossword {
	words := make([]Word, len(c.words), len(c.words)+1)
	copy(words, c.words)
	return &Crossword{words: append(words, w)}
}

// Words returns a copy of the words in insertion order.
func (c *Crossword) Words() []Word {
	return slices.Clone(c.words)
}

// Len returns the number of words.
func (c *Crossword) Len() int { return len(c.words) }

// IsValid reports whether every pair of words satisfies [Crossword.ValidPair].
func (c *Crossword) IsValid() bool {
	for i := 0; i < len(c.words); i++ {
		for j := i + 1; j < len(c.words); j++ {
			if !c.ValidPair(c.words[i], c.words[j]) {
				return false
			}
		}
	}
	return true
}

// ValidPair reports whether two words can coexist in c. The result does not
// depend on argument order.
//
// Parallel words on the same line must leave at least one blank cell between
// them. Parallel words on neighbouring lines may only touch where every
// touching cell is bridged by a perpendicular word of c covering both lines.
// Parallel words two or more lines apart never interact. Perpendicular words
// must agree on the letter at their crossing point; when neither word reaches
// that point both lookups return 0 and the pair is accepted.
func (c *Crossword) ValidPair(a, b Word) bool {
	if a.Orient != b.Orient {
		across, down := a, b
		if a.Orient == Down {
			across, down = b, a
		}
		return across.LetterAt(down.X-across.X) == down.LetterAt(across.Y-down.Y)
	}

	// Line is the coordinate shared by every cell of a word; pos runs along it.
	line := func(w Word) int {
		if w.Orient == Across {
			return w.Y
		}
		return w.X
	}
	pos := func(w Word) int {
		if w.Orient == Across {
			return w.X
		}
		return w.Y
	}

	lo, hi := max(pos(a), pos(b)), min(a.End(), b.End())
	switch dl := line(a) - line(b); {
	case dl == 0:
		return hi < lo
	case dl == 1 || dl == -1:
		top, bottom := min(line(a), line(b)), max(line(a), line(b))
		for i := lo; i < hi; i++ {
			if !c.bridged(a.Orient.Perpendicular(), i, top, bottom) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// bridged reports whether some word with orientation o sits on line i and
// covers both lines top and bottom.
func (c *Crossword) bridged(o Orientation, i, top, bottom int) bool {
	for _, w := range c.words {
		if w.Orient != o {
			continue
		}
		wl, start := w.X, w.Y
		if o == Across {
			wl, start = w.Y, w.X
		}
		if wl == i && start <= top && w.End() > bottom {
			return true
		}
	}
	return false
}

// Min returns the smallest x and y over all word origins.
func (c *Crossword) Min() Point {
	p := Point{c.words[0].X, c.words[0].Y}
	for _, w := range c.words[1:] {
		p.X = min(p.X, w.X)
		p.Y = min(p.Y, w.Y)
	}
	return p
}

// Align returns a translated copy whose smallest word origin is (x, y).
func (c *Crossword) Align(x, y int) *Crossword {
	m := c.Min()
	dx, dy := x-m.X, y-m.Y
	words := make([]Word, len(c.words))
	for i, w := range c.words {
		words[i] = w.Shifted(dx, dy)
	}
	return &Crossword{words: words}
}

// Canonical returns the crossword aligned to (0, 0) with words sorted by
// text, then origin, then orientation. Two crosswords built from the same
// placements in any order have equal canonical forms.
func (c *Crossword) Canonical() *Crossword {
	a := c.Align(0, 0)
	slices.SortFunc(a.words, compareWords)
	return a
}

func compareWords(a, b Word) int {
	return cmp.Or(
		cmp.Compare(a.text, b.text),
		cmp.Compare(a.X, b.X),
		cmp.Compare(a.Y, b.Y),
		cmp.Compare(a.Orient, b.Orient),
	)
}

// Key returns a string that identifies the crossword up to insertion order
// and translation. It is the hash key used for deduplication.
func (c *Crossword) Key() string {
	var b strings.Builder
	for i, w := range c.Canonical().words {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(w.text)
		b.WriteByte('@')
		b.WriteString(strconv.Itoa(w.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(w.Y))
		b.WriteByte(',')
		b.WriteString(w.Orient.Token())
	}
	return b.String()
}

// Equal reports structural equality.
func (c *Crossword) Equal(o *Crossword) bool {
	return c.Key() == o.Key()
}

// BoundingBox returns the grid width (furthest end of any across word) and
// height (furthest end of any down word), each at least 1. Coordinates are
// taken as-is, so the box is measured from (0, 0).
func (c *Crossword) BoundingBox() (width, height int) {
	width, height = 1, 1
	for _, w := range c.words {
		if w.Orient == Across {
			width = max(width, w.End())
		} else {
			height = max(height, w.End())
		}
	}
	return width, height
}

// Area returns width × height of the bounding box.
func (c *Crossword) Area() int {
	w, h := c.BoundingBox()
	return w * h
}

// AspectRatio returns the longer side of the bounding box over the shorter.
func (c *Crossword) AspectRatio() float64 {
	w, h := c.BoundingBox()
	return float64(max(w, h)) / float64(min(w, h))
}

// Crossings counts perpendicular pairs whose across row falls inside the
// down word's span. It is a ranking heuristic, not a validity check.
func (c *Crossword) Crossings() int {
	n := 0
	for i := 0; i < len(c.words); i++ {
		for j := i + 1; j < len(c.words); j++ {
			a, d := c.words[i], c.words[j]
			if a.Orient == d.Orient {
				continue
			}
			if a.Orient == Down {
				a, d = d, a
			}
			if d.Y <= a.Y && a.Y < d.End() {
				n++
			}
		}
	}
	return n
}

// Centered re-centres the grid inside its own bounding square: the shorter
// dimension is offset by half the difference between width and height.
func (c *Crossword) Centered() *Crossword {
	a := c.Align(0, 0)
	w, h := a.BoundingBox()
	adj := w - h
	if adj < 0 {
		adj = -adj
	}
	adj /= 2
	if w > h {
		return a.Align(0, adj)
	}
	return a.Align(adj, 0)
}

// GridSize returns the side of the bounding square.
func (c *Crossword) GridSize() int {
	w, h := c.BoundingBox()
	return max(w, h)
}

// String returns the canonical key, which is stable and readable.
func (c *Crossword) String() string {
	return "Crossword(" + c.Key() + ")"
}
