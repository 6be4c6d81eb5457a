package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = (%q, %v, %v), want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "grids:x"); hit {
		t.Fatal("empty cache should miss")
	}
	if err := c.Set(ctx, "grids:x", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "grids:x")
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get = (%q, %v, %v)", data, hit, err)
	}

	if err := c.Delete(ctx, "grids:x"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "grids:x"); hit {
		t.Error("deleted entry should miss")
	}
	if err := c.Delete(ctx, "grids:x"); err != nil {
		t.Errorf("second Delete error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "short", []byte("a"), time.Minute)
	_ = c.Set(ctx, "forever", []byte("b"), 0)

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), time.Hour)
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("cleared entry should miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	opts := GridsKeyOpts{ResultLimit: 20, IterationLimit: 10000}

	tests := []struct {
		name  string
		a, b  []string
		aOpts GridsKeyOpts
		bOpts GridsKeyOpts
		same  bool
	}{
		{"word order kept", []string{"CAT", "ART"}, []string{"ART", "CAT"}, opts, opts, false},
		{"same order", []string{"CAT", "ART"}, []string{"CAT", "ART"}, opts, opts, true},
		{"different words", []string{"CAT", "ART"}, []string{"CAT", "TAR"}, opts, opts, false},
		{"different limit", []string{"CAT"}, []string{"CAT"}, opts, GridsKeyOpts{ResultLimit: 5, IterationLimit: 10000}, false},
		{
			"first seed keeps order",
			[]string{"CAT", "ART"}, []string{"ART", "CAT"},
			GridsKeyOpts{FirstSeedOnly: true}, GridsKeyOpts{FirstSeedOnly: true},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, kb := k.GridsKey(tt.a, tt.aOpts), k.GridsKey(tt.b, tt.bOpts)
			if (ka == kb) != tt.same {
				t.Errorf("keys %s and %s: same = %v, want %v", ka, kb, ka == kb, tt.same)
			}
		})
	}

	in := []string{"CAT", "ART"}
	gk := k.GridsKey(in, opts)
	if !strings.HasPrefix(gk, "grids:") {
		t.Errorf("GridsKey = %s, want grids: prefix", gk)
	}
	if rk := k.RenderKey(gk, "svg"); rk != "render:svg:"+gk {
		t.Errorf("RenderKey = %s", rk)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "staging:")
	gk := scoped.GridsKey([]string{"CAT"}, GridsKeyOpts{})
	if !strings.HasPrefix(gk, "staging:grids:") {
		t.Errorf("GridsKey = %s, want staging prefix", gk)
	}
	if rk := scoped.RenderKey(gk, "json"); rk != "render:json:"+gk {
		t.Errorf("RenderKey = %s", rk)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrBackend)
	if !IsRetryable(err) || !errors.Is(err, ErrBackend) {
		t.Errorf("Retryable(ErrBackend) = %v", err)
	}
	if err.Error() != ErrBackend.Error() {
		t.Errorf("message not preserved: %s", err)
	}
	if IsRetryable(ErrBackend) {
		t.Error("unwrapped error should not be retryable")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	b := Backoff{Attempts: 3, Delay: time.Millisecond}
	errStop := errors.New("stop")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent error", 5, errStop, 1, errStop},
		{"recovers", 1, Retryable(ErrBackend), 2, nil},
		{"exhausted", 5, Retryable(ErrBackend), 3, ErrBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := retryWithBackoff(ctx, b, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retryWithBackoff(ctx, Backoff{Attempts: 3, Delay: time.Hour}, func() error {
		return Retryable(ErrBackend)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
