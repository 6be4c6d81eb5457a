package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	g := NoopGenerateHooks{}
	g.OnGenerateStart(ctx, 3)
	g.OnGenerateComplete(ctx, 3, 12, 4, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "grids")
	c.OnCacheMiss(ctx, "grids")
	c.OnCacheSet(ctx, "render", 1024)

	r := NoopRequestHooks{}
	r.OnRequest(ctx, "/generate")
	r.OnResponse(ctx, "/generate", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Generate().(NoopGenerateHooks); !ok {
		t.Error("Generate() should return NoopGenerateHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Request().(NoopRequestHooks); !ok {
		t.Error("Request() should return NoopRequestHooks by default")
	}

	gen := &testGenerateHooks{}
	SetGenerateHooks(gen)
	if Generate() != gen {
		t.Error("SetGenerateHooks should install custom hooks")
	}
	ch := &testCacheHooks{}
	SetCacheHooks(ch)
	if Cache() != ch {
		t.Error("SetCacheHooks should install custom hooks")
	}
	rh := &testRequestHooks{}
	SetRequestHooks(rh)
	if Request() != rh {
		t.Error("SetRequestHooks should install custom hooks")
	}

	Reset()
	if _, ok := Generate().(NoopGenerateHooks); !ok {
		t.Error("Reset() should restore NoopGenerateHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testGenerateHooks{}
	SetGenerateHooks(custom)
	SetGenerateHooks(nil)
	if Generate() != custom {
		t.Error("SetGenerateHooks(nil) should be ignored")
	}
}

type testGenerateHooks struct{ NoopGenerateHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testRequestHooks struct{ NoopRequestHooks }
