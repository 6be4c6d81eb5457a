// Package pkg holds the crossgrid libraries.
//
// # Overview
//
// Crossgrid takes up to five words and finds every way they can interlock on
// a grid, then ranks the distinct layouts by crossings and compactness. The
// pkg directory is organized as:
//
//  1. [grid] - Words, crosswords, validity rules and text rendering
//  2. [search] - Backtracking enumeration of crossword placements
//  3. [generate] - Request processing, ranking, reports and caching runner
//  4. [cache] - File, Redis and null result caches with key derivation
//  5. [render/gridviz] - Graphviz DOT and SVG drawings of grids
//  6. [errors], [observability], [buildinfo] - Shared plumbing
//
// # Data Flow
//
//	words
//	  ↓
//	[errors] validation
//	  ↓
//	[search] enumeration of complete crosswords
//	  ↓
//	[generate] dedup, rank, truncate → Report
//	  ↓
//	text, structured JSON or SVG
//
// # Quick Start
//
//	rep, err := generate.Process(ctx, []string{"cat", "art", "tar"}, generate.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(rep.Text())
package pkg
