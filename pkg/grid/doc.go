// Package grid models placed words and the crosswords built from them.
//
// # Words
//
// A [Word] is a piece of upper-cased text with an integer origin and an
// [Orientation]. Across words occupy (x+i, y) for each letter i; down words
// occupy (x, y+i). Words are values, and moving one with [Word.Shifted]
// returns a copy.
//
// [Word.FindIntersections] is the placement generator used by the search:
// for each pair of equal letters it returns the origin a perpendicular
// candidate needs so the two letters share a cell.
//
// # Crosswords
//
// A [Crossword] is an immutable snapshot. [Crossword.Add] copies, so a
// backtracking search can hold many partial crosswords that share a prefix
// without any of them observing the others.
//
// [Crossword.IsValid] checks every word pair with [Crossword.ValidPair]:
//
//   - parallel, same line: at least one blank cell between the spans
//   - parallel, neighbouring lines: every touching cell is bridged by a
//     perpendicular word covering both lines
//   - parallel, two or more lines apart: always fine
//   - perpendicular: the letters at the crossing point agree; two
//     out-of-range lookups agree trivially
//
// # Canonical Form
//
// Structural equality ignores insertion order and translation.
// [Crossword.Canonical] aligns the top-left word origin to (0, 0) and sorts
// words; [Crossword.Key] serialises that form and is used as a set key.
//
// # Rendering
//
// [Crossword.Display] draws the grid as text and [Crossword.Clues] lists the
// words sorted by row, column and orientation:
//
//	 C  A  T
//	    R
//	    T
//	(3 x 3) (1 crossings)
package grid
