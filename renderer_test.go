package glint

import (
	"strings"
	"testing"

	"github.com/gogpu/glint/backend"
)

func TestNewValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QueueDepth = 0
	_, err := New(newTestBackend(), &testWindow{w: 100, h: 100}, cfg)
	if err == nil {
		t.Fatal("New() = nil error, want config validation error")
	}
}

func TestPresentReplayOrder(t *testing.T) {
	r, h := newTestRenderer(t, nil)
	h.ResetCalls()

	r.BeginFrame()
	r.DrawRect(0, 0, 10, 10, White)
	r.DrawCircle(20, 20, 5, Black)
	if err := r.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	// Uploads run ahead of the render pass; inside the pass the batch
	// emits its fixed bind-then-draw sequence.
	want := []string{
		"PushBuffer",
		"BeginFrame",
		"BindPipeline",
		"BindVertexBuffer slot=0",
		"BindVertexBuffer slot=1",
		"BindIndexBuffer",
		"BindArgumentTable",
		"DrawInstanced indices=6 instances=2",
		"EndFrame",
		"Present",
	}
	calls := h.Calls()
	if len(calls) != len(want) {
		t.Fatalf("recorded %d calls, want %d:\n%s", len(calls), len(want), strings.Join(calls, "\n"))
	}
	for i, prefix := range want {
		if !strings.HasPrefix(calls[i], prefix) {
			t.Errorf("call %d = %q, want prefix %q", i, calls[i], prefix)
		}
	}
}

func TestReplayUploadTransferPass(t *testing.T) {
	r, h := newTestRenderer(t, nil)
	bufA, err := r.CreateBufferZeroed(8, backend.BufferUsageVertex)
	if err != nil {
		t.Fatalf("CreateBufferZeroed() error = %v", err)
	}
	bufB, err := r.CreateBufferZeroed(8, backend.BufferUsageVertex)
	if err != nil {
		t.Fatalf("CreateBufferZeroed() error = %v", err)
	}
	h.ResetCalls()

	r.BeginFrame()
	r.Insert(PushBufferCommand{Buffer: bufA, Offset: 0, Data: []byte{1, 2}})
	r.Insert(DrawCommand{VertexCount: 3})
	r.Insert(PushBufferCommand{Buffer: bufB, Offset: 4, Data: []byte{3, 4}})
	r.Insert(DrawCommand{VertexCount: 6})
	if err := r.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	// All uploads run in the transfer pass ahead of the frame, keeping
	// their mutual insertion order; everything else replays in order
	// after them.
	want := []string{
		"PushBuffer offset=0 len=2",
		"PushBuffer offset=4 len=2",
		"BeginFrame",
		"Draw vertices=3",
		"Draw vertices=6",
		"EndFrame",
		"Present",
	}
	calls := h.Calls()
	if len(calls) != len(want) {
		t.Fatalf("recorded %d calls, want %d:\n%s", len(calls), len(want), strings.Join(calls, "\n"))
	}
	for i, prefix := range want {
		if !strings.HasPrefix(calls[i], prefix) {
			t.Errorf("call %d = %q, want prefix %q", i, calls[i], prefix)
		}
	}
}

func TestPresentClearsQueue(t *testing.T) {
	r, _ := newTestRenderer(t, nil)
	r.BeginFrame()
	r.DrawRect(0, 0, 1, 1, White)
	if err := r.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if got := r.queue.Len(); got != 0 {
		t.Errorf("queue Len() after Present = %d, want 0", got)
	}
}

func TestPresentSkipsMinimizedWindow(t *testing.T) {
	win := &testWindow{w: 100, h: 100}
	h := newTestBackend()
	cfg := DefaultConfig()
	r, err := New(h, win, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })

	win.minimized = true
	h.ResetCalls()

	r.BeginFrame()
	r.DrawRect(0, 0, 10, 10, White)
	if err := r.Present(); err != nil {
		t.Fatalf("Present() while minimized error = %v", err)
	}
	if got := len(h.Calls()); got != 0 {
		t.Errorf("minimized Present made %d backend calls, want 0:\n%s",
			got, strings.Join(h.Calls(), "\n"))
	}

	// Drawing resumes normally once restored.
	win.minimized = false
	r.BeginFrame()
	r.DrawRect(0, 0, 10, 10, White)
	if err := r.Present(); err != nil {
		t.Fatalf("Present() after restore error = %v", err)
	}
	if got := len(h.Calls()); got == 0 {
		t.Error("restored Present made no backend calls")
	}
}

func TestFrameLifecycleMisuse(t *testing.T) {
	r, _ := newTestRenderer(t, nil)

	mustPanic(t, "Present without BeginFrame", func() {
		_ = r.Present()
	})
	mustPanic(t, "Insert outside BeginFrame", func() {
		r.Insert(DrawCommand{})
	})

	r.BeginFrame()
	mustPanic(t, "frame already open", func() {
		r.BeginFrame()
	})
	if err := r.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
}

func TestResourceLifecycle(t *testing.T) {
	r, _ := newTestRenderer(t, nil)

	buf, err := r.CreateBuffer([]byte{1, 2, 3, 4}, backend.BufferUsageVertex)
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	if err := r.PushBuffer(buf, 0, []byte{9, 9}); err != nil {
		t.Fatalf("PushBuffer() error = %v", err)
	}
	if err := r.DestroyBuffer(buf); err != nil {
		t.Fatalf("DestroyBuffer() error = %v", err)
	}

	// The handle is dead after destroy.
	mustPanic(t, "stale buffer handle", func() {
		_ = r.PushBuffer(buf, 0, nil)
	})
	mustPanic(t, "stale buffer handle", func() {
		_ = r.DestroyBuffer(buf)
	})
}

func TestBufferPoolExhaustion(t *testing.T) {
	r, _ := newTestRenderer(t, func(c *Config) { c.MaxBuffers = 4 })
	// New consumes three buffer slots (quad vertices, quad indices,
	// instance buffer), leaving one.
	if _, err := r.CreateBuffer([]byte{0}, backend.BufferUsageVertex); err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	mustPanic(t, "buffer pool exhausted", func() {
		_, _ = r.CreateBuffer([]byte{0}, backend.BufferUsageVertex)
	})
}

func TestCloseReleasesBatchResources(t *testing.T) {
	h := newTestBackend()
	r, err := New(h, &testWindow{w: 100, h: 100}, DefaultConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got := r.buffers.liveCount(); got != 0 {
		t.Errorf("live buffers after Close = %d, want 0", got)
	}
	if got := r.textures.liveCount(); got != 0 {
		t.Errorf("live textures after Close = %d, want 0", got)
	}
	if got := r.pipelines.liveCount(); got != 0 {
		t.Errorf("live pipelines after Close = %d, want 0", got)
	}
}

func TestPushBufferWritesThrough(t *testing.T) {
	r, h := newTestRenderer(t, nil)
	buf, err := r.CreateBufferZeroed(8, backend.BufferUsageVertex)
	if err != nil {
		t.Fatalf("CreateBufferZeroed() error = %v", err)
	}
	if err := r.PushBuffer(buf, 2, []byte{7, 8, 9}); err != nil {
		t.Fatalf("PushBuffer() error = %v", err)
	}

	got := h.BufferBytes(*r.buffers.resolve(uint64(buf)))
	want := []byte{0, 0, 7, 8, 9, 0, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("buffer bytes = %v, want %v", got, want)
		}
	}
}
