package search

import (
	"context"
	"errors"
	"iter"
	"slices"
	"time"

	"github.com/matzehuels/crossgrid/pkg/grid"
)

// ErrNoValidFill is returned by [Engine.Fill] when no branch of the search
// tree places every word.
var ErrNoValidFill = errors.New("no valid fill")

// DefaultProgressInterval is the number of nodes between progress reports.
const DefaultProgressInterval = 4096

// Stats describes how much of the search tree has been visited.
type Stats struct {
	Nodes   int           // search nodes entered
	Yielded int           // complete crosswords produced
	Elapsed time.Duration // time since the search started
}

// Engine runs backtracking searches over word placements.
//
// The zero value is ready to use. An Engine holds only configuration, so one
// value can serve concurrent searches.
type Engine struct {
	// FirstSeedOnly restricts a search without a seed crossword to the first
	// input word as the seed. By default every distinct word is tried.
	FirstSeedOnly bool

	// Progress, if set, is called every ProgressInterval nodes and once when
	// the search ends. It runs on the search goroutine.
	Progress func(Stats)

	// ProgressInterval overrides DefaultProgressInterval.
	ProgressInterval int
}

// Fill returns the first complete, valid crossword that extends cw with all
// of words. Every intermediate crossword on the returned path is valid.
// If cw is nil each distinct word is tried as an across seed at the origin.
//
// Fill returns [ErrNoValidFill] when the tree is exhausted, or the context
// error if ctx ends first.
func (e *Engine) Fill(ctx context.Context, cw *grid.Crossword, words []string) (*grid.Crossword, error) {
	r := e.newRun(ctx)
	defer r.report()

	var found *grid.Crossword
	r.seeds(cw, normalize(words), func(seed *grid.Crossword, rest []string) bool {
		found = r.fill(seed, rest)
		return found == nil && r.err == nil
	})
	if r.err != nil {
		return nil, r.err
	}
	if found == nil {
		return nil, ErrNoValidFill
	}
	return found.Align(0, 0), nil
}

// Enumerate calls yield with every complete crossword reachable from seed by
// placing all of words, in canonical form. Yielding stops when yield returns
// false. A nil seed tries each distinct word as an across seed at the origin.
//
// Validity is only enforced when the last word is placed, so every yielded
// crossword is valid while partial crosswords along the way need not be. This
// is what lets Enumerate reach a 2x2 pinwheel of four mutually crossing
// words, which [Engine.Fill] can never build because every build order passes
// through an invalid partial crossword.
//
// Enumerate returns the context error if ctx ends first, and nil otherwise.
func (e *Engine) Enumerate(ctx context.Context, seed *grid.Crossword, words []string, yield func(*grid.Crossword) bool) error {
	r := e.newRun(ctx)
	defer r.report()

	r.seeds(seed, normalize(words), func(cw *grid.Crossword, rest []string) bool {
		return r.enumerate(cw, rest, yield)
	})
	return r.err
}

// All is [Engine.Enumerate] as an iterator. The iterator stops silently when
// ctx ends; check ctx.Err after the loop.
func (e *Engine) All(ctx context.Context, seed *grid.Crossword, words []string) iter.Seq[*grid.Crossword] {
	return func(yield func(*grid.Crossword) bool) {
		_ = e.Enumerate(ctx, seed, words, yield)
	}
}

// run is the mutable state of one search.
type run struct {
	ctx      context.Context
	engine   *Engine
	interval int
	start    time.Time
	stats    Stats
	err      error
}

func (e *Engine) newRun(ctx context.Context) *run {
	interval := e.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	return &run{ctx: ctx, engine: e, interval: interval, start: time.Now()}
}

// step records a node visit and reports whether the search may continue.
func (r *run) step() bool {
	r.stats.Nodes++
	if err := r.ctx.Err(); err != nil {
		r.err = err
		return false
	}
	if r.engine.Progress != nil && r.stats.Nodes%r.interval == 0 {
		r.report()
	}
	return true
}

func (r *run) report() {
	if r.engine.Progress == nil {
		return
	}
	r.stats.Elapsed = time.Since(r.start)
	r.engine.Progress(r.stats)
}

// seeds calls visit with the starting crossword(s) and the words left to
// place. It stops early when visit returns false.
func (r *run) seeds(seed *grid.Crossword, words []string, visit func(*grid.Crossword, []string) bool) {
	if seed != nil {
		visit(seed, words)
		return
	}
	for i, text := range words {
		if slices.Index(words, text) < i {
			continue
		}
		if !visit(grid.New(grid.NewAcross(text, 0, 0)), without(words, i)) {
			return
		}
		if r.engine.FirstSeedOnly {
			return
		}
	}
}

// expand calls visit with every one-word extension of cw: each remaining
// text placed perpendicular to each placed word so that they share a letter.
// Repeated texts are expanded once. It stops when visit returns false and
// reports whether it ran to completion.
func expand(cw *grid.Crossword, remaining []string, visit func(*grid.Crossword, []string) bool) bool {
	for _, placed := range cw.Words() {
		orient := placed.Orient.Perpendicular()
		for i, text := range remaining {
			if slices.Index(remaining, text) < i {
				continue
			}
			var rest []string
			for _, p := range placed.FindIntersections(text) {
				w := grid.NewAcross(text, p.X, p.Y)
				if orient == grid.Down {
					w = grid.NewDown(text, p.X, p.Y)
				}
				if rest == nil {
					rest = without(remaining, i)
				}
				if !visit(cw.Add(w), rest) {
					return false
				}
			}
		}
	}
	return true
}

func (r *run) fill(cw *grid.Crossword, remaining []string) *grid.Crossword {
	if !r.step() {
		return nil
	}
	if len(remaining) == 0 {
		r.stats.Yielded++
		return cw
	}
	var found *grid.Crossword
	expand(cw, remaining, func(next *grid.Crossword, rest []string) bool {
		if !next.IsValid() {
			return true
		}
		found = r.fill(next, rest)
		return found == nil && r.err == nil
	})
	return found
}

// enumerate reports whether the search should continue.
func (r *run) enumerate(cw *grid.Crossword, remaining []string, yield func(*grid.Crossword) bool) bool {
	if !r.step() {
		return false
	}
	if len(remaining) == 0 {
		r.stats.Yielded++
		return yield(cw.Canonical())
	}
	return expand(cw, remaining, func(next *grid.Crossword, rest []string) bool {
		if len(remaining) == 1 && !next.IsValid() {
			return true
		}
		return r.enumerate(next, rest, yield)
	})
}

func normalize(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = grid.Normalize(w)
	}
	return out
}

// without returns a copy of s with element i removed.
func without(s []string, i int) []string {
	out := make([]string, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}
