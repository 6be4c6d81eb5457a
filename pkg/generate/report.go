package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/crossgrid/pkg/errors"
	"github.com/matzehuels/crossgrid/pkg/grid"
	"github.com/matzehuels/crossgrid/pkg/render/gridviz"
)

// Report is the result of one generation request.
type Report struct {
	// Words is the normalized input.
	Words []string `json:"words"`
	// Candidates counts complete crosswords produced by the search,
	// duplicates included.
	Candidates int `json:"candidates"`
	// NumGrids counts unique crosswords before truncation.
	NumGrids int `json:"num_grids"`
	// Warnings holds WarningIterationLimit when the search was cut short.
	Warnings []string `json:"warnings"`
	// Crosswords are the ranked grids, at most ResultLimit of them.
	Crosswords []*grid.Crossword `json:"crosswords"`

	Elapsed time.Duration `json:"-"`
	// Key is the cache key the report is stored under, if any.
	Key string `json:"-"`
	// Cached is set when the report came from the cache.
	Cached bool `json:"-"`
}

// IterationLimitReached reports whether the search was cut short.
func (r *Report) IterationLimitReached() bool {
	return slices.Contains(r.Warnings, WarningIterationLimit)
}

// Output is the structured form of a report.
type Output struct {
	NumGrids int          `json:"numGrids"`
	Warnings []string     `json:"warnings"`
	Errors   []string     `json:"errors"`
	Grids    []GridOutput `json:"grids"`
}

// GridOutput is one grid of the structured form. Clue coordinates are
// relative to the grid centred in a GridSize x GridSize square.
type GridOutput struct {
	Clues    []grid.Clue `json:"clues"`
	GridSize int         `json:"gridSize"`
}

// Structured returns the machine-readable form of the report.
func (r *Report) Structured() Output {
	out := Output{
		NumGrids: r.NumGrids,
		Warnings: slices.Clone(r.Warnings),
		Errors:   []string{},
		Grids:    make([]GridOutput, 0, len(r.Crosswords)),
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	if len(r.Crosswords) == 0 {
		out.Errors = append(out.Errors, ErrorNoGrids)
	}
	for _, cw := range r.Crosswords {
		c := cw.Centered()
		out.Grids = append(out.Grids, GridOutput{Clues: c.Clues(), GridSize: c.GridSize()})
	}
	return out
}

// Text returns the human-readable form of the report.
func (r *Report) Text() string {
	var lines []string
	if r.IterationLimitReached() {
		lines = append(lines, "Warning! Iteration limit reached!")
	}
	lines = append(lines, fmt.Sprintf("%d unique grids found...\n", r.NumGrids))
	if len(r.Crosswords) == 0 {
		lines = append(lines, fmt.Sprintf("There are no connected crosswords using the words %v.", r.Words))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, "Best grid(s):")
	for _, cw := range r.Crosswords {
		lines = append(lines, cw.Display(), cw.ClueList(), "")
	}
	return strings.Join(lines, "\n")
}

// Render encodes the report in format (see ParseFormat).
func (r *Report) Render(ctx context.Context, format string) ([]byte, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatStructured:
		return json.MarshalIndent(r.Structured(), "", "  ")
	case FormatSVG:
		if len(r.Crosswords) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "no grids to draw")
		}
		dot := gridviz.ToDOT(gridviz.Options{Numbers: true, Captions: true}, r.Crosswords...)
		return gridviz.RenderSVG(ctx, dot)
	default:
		return []byte(r.Text()), nil
	}
}
