// Package generate turns a word list into ranked crossword grids.
//
// [Process] is the whole request: it checks the word list bounds (at most
// five words of at most twenty letters), enumerates every connected
// crossword with [search.Engine], drops structural duplicates, ranks the
// rest and keeps the best [Options.ResultLimit]. Two bounds keep a request
// cheap: [Options.IterationLimit] stops the enumeration after that many
// candidates and records [WarningIterationLimit], and [Options.TimeLimit]
// aborts the search with a TIMEOUT error.
//
//	rep, err := generate.Process(ctx, []string{"cat", "art", "tar"}, generate.Options{})
//	if errors.Is(err, errors.ErrCodeBadRequest) {
//	    // show errors.UserMessage(err) to the caller
//	}
//	fmt.Println(rep.Text())
//
// # Ranking
//
// Grids are ordered by most crossings, then smallest bounding-box area, then
// aspect ratio closest to square. The canonical key breaks remaining ties.
//
// # Output
//
// [Report.Text] is the console form. [Report.Structured] is the JSON form:
//
//	{"numGrids": 4, "warnings": [], "errors": [],
//	 "grids": [{"clues": [{"word": "CAT", "row": 0, "col": 0, "direction": "A"}, ...], "gridSize": 3}]}
//
// Each grid is centred in a gridSize x gridSize square before its clues are
// listed. An empty result carries the error "no_grids_found".
//
// # Caching
//
// [Runner] stores successful reports in a [cache.Cache] keyed by the
// normalized words and the options that change the result.
package generate
