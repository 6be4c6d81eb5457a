package generate

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/crossgrid/pkg/cache"
	"github.com/matzehuels/crossgrid/pkg/errors"
	"github.com/matzehuels/crossgrid/pkg/search"
)

// Defaults shared by the CLI, the config file and the server.
const (
	DefaultResultLimit    = 20
	DefaultIterationLimit = 10000
	DefaultTimeLimit      = 10 * time.Second
)

// Output formats.
const (
	FormatText       = "text"
	FormatStructured = "structured"
	FormatSVG        = "svg"
)

// Report annotations.
const (
	WarningIterationLimit = "iteration_limit_reached"
	ErrorNoGrids          = "no_grids_found"
)

// ParseFormat normalizes a format name. "json" is accepted for structured.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatStructured, "json":
		return FormatStructured, nil
	case FormatSVG:
		return FormatSVG, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: text, json, svg)", s)
	}
}

// Options configures one generation request.
type Options struct {
	// ResultLimit caps the number of ranked grids returned.
	ResultLimit int `json:"result_limit,omitempty"`
	// IterationLimit caps the number of complete candidates examined.
	IterationLimit int `json:"iteration_limit,omitempty"`
	// TimeLimit bounds the wall-clock time of the search.
	TimeLimit time.Duration `json:"time_limit,omitempty"`
	// Format is the default output format for Report.Render.
	Format string `json:"format,omitempty"`
	// FirstSeedOnly seeds the search with the first word only.
	FirstSeedOnly bool `json:"first_seed_only,omitempty"`
	// Refresh bypasses cached results (the fresh result is still stored).
	Refresh bool `json:"refresh,omitempty"`

	Logger   *log.Logger        `json:"-"`
	Progress func(search.Stats) `json:"-"`
}

// SetDefaults fills zero fields. It is idempotent.
func (o *Options) SetDefaults() {
	if o.ResultLimit == 0 {
		o.ResultLimit = DefaultResultLimit
	}
	if o.IterationLimit == 0 {
		o.IterationLimit = DefaultIterationLimit
	}
	if o.TimeLimit == 0 {
		o.TimeLimit = DefaultTimeLimit
	}
	if o.Format == "" {
		o.Format = FormatText
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate rejects negative limits and unknown formats, and normalizes
// Format.
func (o *Options) Validate() error {
	switch {
	case o.ResultLimit < 0:
		return errors.New(errors.ErrCodeInvalidOptions, "result limit must not be negative")
	case o.IterationLimit < 0:
		return errors.New(errors.ErrCodeInvalidOptions, "iteration limit must not be negative")
	case o.TimeLimit < 0:
		return errors.New(errors.ErrCodeInvalidOptions, "time limit must not be negative")
	}
	f, err := ParseFormat(o.Format)
	if err != nil {
		return err
	}
	o.Format = f
	return nil
}

// KeyOpts returns the options that affect a cached result.
func (o *Options) KeyOpts() cache.GridsKeyOpts {
	return cache.GridsKeyOpts{
		ResultLimit:    o.ResultLimit,
		IterationLimit: o.IterationLimit,
		FirstSeedOnly:  o.FirstSeedOnly,
	}
}
