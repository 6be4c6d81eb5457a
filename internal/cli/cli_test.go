package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/crossgrid/pkg/buildinfo"
	"github.com/matzehuels/crossgrid/pkg/errors"
	"github.com/matzehuels/crossgrid/pkg/generate"
)

// execute runs the root command and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// captureStatus redirects status lines for the duration of the test.
func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := statusOut
	statusOut = &buf
	t.Cleanup(func() { statusOut = old })
	return &buf
}

// writeConfig writes content to a temporary config file. Empty content
// returns a path that does not exist.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, appName+" "+buildinfo.Version) {
		t.Errorf("--version = %q", out)
	}

	out, err = execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "commit: "+buildinfo.Commit) {
		t.Errorf("version = %q", out)
	}
}

func TestGenerateText(t *testing.T) {
	captureStatus(t)
	out, err := execute(t, "--config", writeConfig(t, ""), "generate", "--no-cache", "cat", "art")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "4 unique grids found...\n\nBest grid(s):\n") {
		t.Errorf("output = %q", out)
	}
}

func TestGenerateJSON(t *testing.T) {
	captureStatus(t)
	out, err := execute(t, "--config", writeConfig(t, ""), "generate", "--no-cache", "-f", "json", "-n", "2", "cat", "art")
	if err != nil {
		t.Fatal(err)
	}
	var got generate.Output
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.NumGrids != 4 || len(got.Grids) != 2 {
		t.Errorf("numGrids=%d grids=%d, want 4/2", got.NumGrids, len(got.Grids))
	}
}

func TestGenerateConfigDefaults(t *testing.T) {
	captureStatus(t)
	cfg := writeConfig(t, "[generate]\nresult_limit = 1\nformat = \"json\"\n")

	out, err := execute(t, "--config", cfg, "generate", "--no-cache", "cat", "art")
	if err != nil {
		t.Fatal(err)
	}
	var got generate.Output
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("config format ignored: %v", err)
	}
	if len(got.Grids) != 1 {
		t.Errorf("grids = %d, want the configured limit of 1", len(got.Grids))
	}

	// Flags win over the file.
	out, err = execute(t, "--config", cfg, "generate", "--no-cache", "-f", "text", "cat", "art")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "4 unique grids found") {
		t.Errorf("output = %q", out)
	}
}

func TestGenerateOutputFile(t *testing.T) {
	status := captureStatus(t)
	path := filepath.Join(t.TempDir(), "grids.txt")

	out, err := execute(t, "--config", writeConfig(t, ""), "generate", "--no-cache", "-o", path, "cat", "art")
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want nothing when -o is set", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Best grid(s):") {
		t.Errorf("file = %q", data)
	}
	if s := status.String(); !strings.Contains(s, "Generated 4 grids") || !strings.Contains(s, path) {
		t.Errorf("status = %q", s)
	}
}

func TestGenerateCached(t *testing.T) {
	captureStatus(t)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cfg := writeConfig(t, "")

	first, err := execute(t, "--config", cfg, "generate", "cat", "art")
	if err != nil {
		t.Fatal(err)
	}
	second, err := execute(t, "--config", cfg, "generate", "CAT", "Art")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("cached output differs:\n%s\n---\n%s", first, second)
	}

	// Another order is its own request and echoes its own words.
	if _, err := execute(t, "--config", cfg, "generate", "dog", "cat"); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "--config", cfg, "generate", "cat", "dog")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "using the words [CAT DOG]") {
		t.Errorf("output = %q", out)
	}
}

func TestGenerateErrors(t *testing.T) {
	captureStatus(t)
	cfg := writeConfig(t, "")
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"no words", []string{"generate", "--no-cache"}, errors.ErrCodeBadRequest},
		{"too many words", []string{"generate", "--no-cache", "a", "b", "c", "d", "e", "f"}, errors.ErrCodeBadRequest},
		{"bad format", []string{"generate", "--no-cache", "-f", "pdf", "cat"}, errors.ErrCodeInvalidFormat},
		{"word with a space", []string{"generate", "--no-cache", "c t"}, errors.ErrCodeBadRequest},
		{"negative limit", []string{"generate", "--no-cache", "--limit=-1", "cat"}, errors.ErrCodeInvalidOptions},
		{"zero limit", []string{"generate", "--no-cache", "--limit=0", "cat"}, errors.ErrCodeInvalidOptions},
		{"zero iterations", []string{"generate", "--no-cache", "--iterations=0", "cat"}, errors.ErrCodeInvalidOptions},
		{"zero timeout", []string{"generate", "--no-cache", "--timeout=0s", "cat"}, errors.ErrCodeInvalidOptions},
		{"browse zero limit", []string{"browse", "--no-cache", "-n", "0", "cat"}, errors.ErrCodeInvalidOptions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"--config", cfg}, tt.args...)...)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q (err %v), want %q", got, err, tt.code)
			}
		})
	}
}

func TestReadWords(t *testing.T) {
	got, err := readWords(strings.NewReader("cat, art\ntar\tcar\n\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"cat", "art", "tar", "car"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("readWords = %q, want %q", got, want)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "--config", writeConfig(t, ""), "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("%s completion does not mention %s", shell, appName)
			}
		})
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell accepted")
	}
}
