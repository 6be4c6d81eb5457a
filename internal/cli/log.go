package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/crossgrid/pkg/search"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs e.g. "Found 12 grids (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// searchLogger turns search.Stats callbacks into periodic debug lines. It
// is called on the search goroutine only, so it needs no locking.
type searchLogger struct {
	logger  *log.Logger
	every   time.Duration
	lastLog time.Duration
	last    search.Stats
}

func newSearchLogger(l *log.Logger, every time.Duration) *searchLogger {
	return &searchLogger{logger: l, every: every}
}

func (s *searchLogger) onProgress(st search.Stats) {
	s.last = st
	if st.Elapsed-s.lastLog < s.every {
		return
	}
	s.logger.Debugf("Searching... %d nodes, %d candidates (%s)",
		st.Nodes, st.Yielded, st.Elapsed.Truncate(time.Millisecond))
	s.lastLog = st.Elapsed
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the attached logger, or log.Default.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
