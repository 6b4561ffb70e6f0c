package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	builds  int
	renders int
}

func (h *recordingPipelineHooks) OnBuildComplete(context.Context, int, int, time.Duration, error) {
	h.builds++
}

func (h *recordingPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.renders++
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits   int
	misses int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Must not panic
	ctx := context.Background()
	Pipeline().OnBuildStart(ctx, 100)
	Pipeline().OnBuildComplete(ctx, 5, 4, time.Second, nil)
	Cache().OnCacheHit(ctx, "graph")
	Remote().OnRequest(ctx, "https://builder.example.com")
}

func TestSetPipelineHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &recordingPipelineHooks{}
	SetPipelineHooks(h)

	ctx := context.Background()
	Pipeline().OnBuildComplete(ctx, 5, 4, time.Second, nil)
	Pipeline().OnRenderComplete(ctx, []string{"dot"}, time.Second, nil)

	if h.builds != 1 {
		t.Errorf("builds = %d, want 1", h.builds)
	}
	if h.renders != 1 {
		t.Errorf("renders = %d, want 1", h.renders)
	}
}

func TestSetCacheHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &recordingCacheHooks{}
	SetCacheHooks(h)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "graph")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")

	if h.hits != 1 {
		t.Errorf("hits = %d, want 1", h.hits)
	}
	if h.misses != 2 {
		t.Errorf("misses = %d, want 2", h.misses)
	}
}

func TestSetHooksNilIgnored(t *testing.T) {
	t.Cleanup(Reset)

	SetPipelineHooks(nil)
	if Pipeline() == nil {
		t.Error("Pipeline() should never return nil")
	}
}

func TestReset(t *testing.T) {
	h := &recordingPipelineHooks{}
	SetPipelineHooks(h)
	Reset()

	Pipeline().OnBuildComplete(context.Background(), 1, 1, 0, nil)
	if h.builds != 0 {
		t.Errorf("hooks still registered after Reset, builds = %d", h.builds)
	}
}
