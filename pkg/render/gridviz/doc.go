// Package gridviz draws crosswords as SVG through Graphviz.
//
// Each crossword becomes one plaintext node whose label is an HTML table:
// letter cells are white with the clue number in the corner, blank cells
// are left empty. Several crosswords in one call are laid out side by side.
//
//	dot := gridviz.ToDOT(gridviz.Options{Numbers: true}, grids...)
//	svg, err := gridviz.RenderSVG(ctx, dot)
//
// Rendering runs Graphviz in-process via [github.com/goccy/go-graphviz], so
// no external binary is needed.
package gridviz
