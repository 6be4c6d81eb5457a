package generate

import (
	"cmp"
	"context"
	stderrors "errors"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/crossgrid/pkg/errors"
	"github.com/matzehuels/crossgrid/pkg/grid"
	"github.com/matzehuels/crossgrid/pkg/observability"
	"github.com/matzehuels/crossgrid/pkg/search"
)

// Process validates words, enumerates their crosswords under the iteration
// and time limits, and returns the best ones ranked.
//
// Errors:
//   - BAD_REQUEST if the word list is out of bounds (no search is run)
//   - INVALID_OPTIONS or INVALID_FORMAT for bad opts
//   - TIMEOUT if TimeLimit expires
//   - the context error if ctx is canceled
//
// Finding no grids is not an error; the report says so.
func Process(ctx context.Context, words []string, opts Options) (*Report, error) {
	if err := errors.ValidateWordList(words); err != nil {
		return nil, err
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Generate()
	hooks.OnGenerateStart(ctx, len(words))
	start := time.Now()

	rep, err := run(ctx, normalize(words), opts)

	elapsed := time.Since(start)
	candidates, grids := 0, 0
	if rep != nil {
		rep.Elapsed = elapsed
		candidates, grids = rep.Candidates, rep.NumGrids
	}
	hooks.OnGenerateComplete(ctx, len(words), candidates, grids, elapsed, err)
	if err != nil {
		opts.Logger.Debug("generation failed", "words", len(words), "elapsed", elapsed, "error", err)
		return nil, err
	}
	opts.Logger.Debug("generation finished",
		"words", len(words),
		"candidates", rep.Candidates,
		"unique", rep.NumGrids,
		"returned", len(rep.Crosswords),
		"elapsed", elapsed)
	return rep, nil
}

func run(ctx context.Context, words []string, opts Options) (*Report, error) {
	searchCtx, cancel := context.WithTimeout(ctx, opts.TimeLimit)
	defer cancel()

	rep := &Report{Words: words, Warnings: []string{}}
	var unique gridSet
	engine := search.Engine{FirstSeedOnly: opts.FirstSeedOnly, Progress: opts.Progress}

	err := engine.Enumerate(searchCtx, nil, words, func(cw *grid.Crossword) bool {
		if rep.Candidates >= opts.IterationLimit {
			rep.Warnings = append(rep.Warnings, WarningIterationLimit)
			return false
		}
		rep.Candidates++
		unique.add(cw)
		return true
	})
	if err != nil {
		if ctx.Err() == nil && stderrors.Is(err, context.DeadlineExceeded) {
			return rep, errors.Wrap(errors.ErrCodeTimeout, err,
				"Grid generation timed out after %s; try fewer or shorter words", opts.TimeLimit)
		}
		return rep, err
	}

	rep.NumGrids = len(unique.grids)
	rep.Crosswords = Rank(unique.grids)
	if len(rep.Crosswords) > opts.ResultLimit {
		rep.Crosswords = rep.Crosswords[:opts.ResultLimit]
	}
	return rep, nil
}

// gridSet keeps unique crosswords in first-seen order.
type gridSet struct {
	seen  map[string]bool
	grids []*grid.Crossword
}

func (s *gridSet) add(cw *grid.Crossword) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	k := cw.Key()
	if s.seen[k] {
		return
	}
	s.seen[k] = true
	s.grids = append(s.grids, cw)
}

type scored struct {
	cw        *grid.Crossword
	crossings int
	area      int
	aspect    float64
	key       string
}

// Rank orders crosswords best first: most crossings, then smallest area,
// then squarest, then by key so equal scores have a fixed order.
func Rank(crosswords []*grid.Crossword) []*grid.Crossword {
	s := make([]scored, len(crosswords))
	for i, cw := range crosswords {
		s[i] = scored{cw: cw, crossings: cw.Crossings(), area: cw.Area(), aspect: cw.AspectRatio(), key: cw.Key()}
	}
	slices.SortFunc(s, func(a, b scored) int {
		return cmp.Or(
			cmp.Compare(b.crossings, a.crossings),
			cmp.Compare(a.area, b.area),
			cmp.Compare(a.aspect, b.aspect),
			strings.Compare(a.key, b.key),
		)
	})
	out := make([]*grid.Crossword, len(s))
	for i := range s {
		out[i] = s[i].cw
	}
	return out
}

func normalize(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = grid.Normalize(w)
	}
	return out
}
