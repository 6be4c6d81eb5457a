package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/crossgrid/pkg/search"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Found 4 grids")

	out := buf.String()
	if !strings.Contains(out, "Found 4 grids (") || !strings.Contains(out, "ms)") {
		t.Errorf("progress.done() output = %q", out)
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestSearchLogger(t *testing.T) {
	var buf bytes.Buffer
	sl := newSearchLogger(newLogger(&buf, log.DebugLevel), time.Second)

	sl.onProgress(search.Stats{Nodes: 4096, Elapsed: 200 * time.Millisecond})
	if buf.Len() != 0 {
		t.Fatalf("logged before the interval elapsed: %q", buf.String())
	}
	sl.onProgress(search.Stats{Nodes: 8192, Yielded: 7, Elapsed: 1500 * time.Millisecond})
	if !strings.Contains(buf.String(), "8192 nodes, 7 candidates") {
		t.Errorf("output = %q", buf.String())
	}
	if sl.last.Nodes != 8192 {
		t.Errorf("last.Nodes = %d, want 8192", sl.last.Nodes)
	}

	buf.Reset()
	sl.onProgress(search.Stats{Nodes: 9000, Elapsed: 1800 * time.Millisecond})
	if buf.Len() != 0 {
		t.Errorf("logged twice within one interval: %q", buf.String())
	}
}
