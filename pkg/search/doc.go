// Package search places words into crosswords by backtracking.
//
// Each search node is a partial [grid.Crossword] plus the words still to be
// placed. Children are generated by taking every placed word, every remaining
// text, and every origin from [grid.Word.FindIntersections], and placing the
// text perpendicular to the placed word. Crosswords are immutable, so a
// rejected child leaves its parent untouched.
//
// Two strategies share that candidate rule:
//
//   - [Engine.Fill] is find-first. A child is explored only if the whole
//     crossword is still valid, and the first complete crossword wins.
//   - [Engine.Enumerate] (and the iterator [Engine.All]) produce every
//     complete crossword. Partial crosswords are not checked; only the
//     placement of the final word is. Every result is valid, and shapes such
//     as the 2x2 pinwheel that Fill cannot build are reachable here.
//     This is intended: skipping the partial check is what admits them, so
//     do not "fix" Enumerate to exclude pinwheels.
//
// # Bounds
//
// The recursion checks its context at every node, so a deadline or
// cancellation stops the search promptly and returns the context error:
//
//	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
//	defer cancel()
//	err := engine.Enumerate(ctx, nil, words, func(cw *grid.Crossword) bool {
//	    seen[cw.Key()] = cw
//	    return len(seen) < 10000
//	})
//
// # Seeds
//
// Without a seed crossword every distinct input word is tried as an across
// word at (0, 0). Setting [Engine.FirstSeedOnly] limits this to the first
// word, which is cheaper but can miss arrangements.
package search
