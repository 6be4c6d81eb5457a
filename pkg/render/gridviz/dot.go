package gridviz

import (
	"bytes"
	"context"
	"fmt"
	"html"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/crossgrid/pkg/grid"
)

// DefaultCellSize is the side of one grid cell in points.
const DefaultCellSize = 28

// Options configures the DOT output.
type Options struct {
	CellSize int  // zero means DefaultCellSize
	Numbers  bool // print clue numbers in start cells
	Captions bool // print "(W x H) (N crossings)" under each grid
}

// ToDOT returns a Graphviz graph with one node per crossword.
func ToDOT(opts Options, crosswords ...*grid.Crossword) string {
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultCellSize
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  nodesep=0.6;\n")
	buf.WriteString("  node [shape=plaintext, fontname=\"Helvetica\"];\n")
	for i, cw := range crosswords {
		if cw == nil {
			continue
		}
		fmt.Fprintf(&buf, "  g%d [label=<%s>];\n", i, table(cw, opts))
	}
	buf.WriteString("}\n")
	return buf.String()
}

func table(cw *grid.Crossword, opts Options) string {
	cells := cw.Cells()
	numbers := startNumbers(cw.Align(0, 0))

	var b bytes.Buffer
	b.WriteString(`<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0" CELLPADDING="2">`)
	for y, row := range cells {
		b.WriteString("<TR>")
		for x, r := range row {
			if r == grid.Blank {
				fmt.Fprintf(&b, `<TD WIDTH="%d" HEIGHT="%d" BORDER="0"> </TD>`, opts.CellSize, opts.CellSize)
				continue
			}
			letter := html.EscapeString(string(r))
			if n, ok := numbers[grid.Point{X: x, Y: y}]; ok && opts.Numbers {
				letter = fmt.Sprintf(`<FONT POINT-SIZE="7">%d</FONT><BR/>%s`, n, letter)
			}
			fmt.Fprintf(&b, `<TD WIDTH="%d" HEIGHT="%d" BGCOLOR="white">%s</TD>`, opts.CellSize, opts.CellSize, letter)
		}
		b.WriteString("</TR>")
	}
	if opts.Captions && len(cells) > 0 {
		w, h := cw.BoundingBox()
		fmt.Fprintf(&b, `<TR><TD COLSPAN="%d" BORDER="0"><FONT POINT-SIZE="9">(%d x %d) (%d crossings)</FONT></TD></TR>`,
			len(cells[0]), w, h, cw.Crossings())
	}
	b.WriteString("</TABLE>")
	return b.String()
}

// startNumbers numbers the distinct start cells in clue order, so a cell
// that starts both an across and a down word gets a single number.
func startNumbers(cw *grid.Crossword) map[grid.Point]int {
	numbers := make(map[grid.Point]int)
	for _, c := range cw.Clues() {
		p := grid.Point{X: c.Col, Y: c.Row}
		if _, ok := numbers[p]; !ok {
			numbers[p] = len(numbers) + 1
		}
	}
	return numbers
}

// RenderSVG lays out a DOT graph and returns the SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
