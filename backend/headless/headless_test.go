package headless

import (
	"strings"
	"testing"

	"github.com/gogpu/glint/backend"
)

func newInitialized(t *testing.T) *Headless {
	t.Helper()
	h := New()
	if err := h.Init(nil); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendHeadless) {
		t.Fatal("headless backend not registered on import")
	}
	b := backend.Get(backend.BackendHeadless)
	if b == nil {
		t.Fatal("Get(headless) = nil")
	}
	if got := b.Name(); got != backend.BackendHeadless {
		t.Errorf("Name() = %q, want %q", got, backend.BackendHeadless)
	}
}

func TestFrameStateGuards(t *testing.T) {
	h := New()
	if err := h.BeginFrame(); err == nil {
		t.Error("BeginFrame() before Init = nil error")
	}

	if err := h.Init(nil); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := h.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := h.BeginFrame(); err == nil {
		t.Error("nested BeginFrame() = nil error")
	}
	if err := h.EndFrame(); err != nil {
		t.Fatalf("EndFrame() error = %v", err)
	}
	if err := h.EndFrame(); err == nil {
		t.Error("EndFrame() without open frame = nil error")
	}
}

func TestCallRecording(t *testing.T) {
	h := newInitialized(t)

	if err := h.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	h.Draw(3, 0)
	h.DrawIndexed(6, 0)
	if err := h.EndFrame(); err != nil {
		t.Fatalf("EndFrame() error = %v", err)
	}

	want := []string{"BeginFrame", "Draw vertices=3 first=0", "DrawIndexed indices=6 first=0", "EndFrame"}
	calls := h.Calls()
	if len(calls) != len(want) {
		t.Fatalf("Calls() = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}

	h.ResetCalls()
	if len(h.Calls()) != 0 {
		t.Errorf("Calls() after ResetCalls = %v, want empty", h.Calls())
	}
}

func TestPushBufferBounds(t *testing.T) {
	h := newInitialized(t)

	buf, err := h.CreateBufferZeroed(8, backend.BufferUsageVertex)
	if err != nil {
		t.Fatalf("CreateBufferZeroed() error = %v", err)
	}
	if err := h.PushBuffer(buf, 4, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("PushBuffer() error = %v", err)
	}
	got := h.BufferBytes(buf)
	want := []byte{0, 0, 0, 0, 1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("buffer bytes = %v, want %v", got, want)
		}
	}

	if err := h.PushBuffer(buf, 6, []byte{1, 2, 3}); err == nil {
		t.Error("PushBuffer() past the end = nil error")
	}
	if err := h.PushBuffer(buf, -1, []byte{1}); err == nil {
		t.Error("PushBuffer() at negative offset = nil error")
	}
}

func TestCreateBufferCopiesData(t *testing.T) {
	h := newInitialized(t)

	src := []byte{1, 2, 3}
	buf, err := h.CreateBuffer(src, backend.BufferUsageVertex)
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	src[0] = 99
	if got := h.BufferBytes(buf)[0]; got != 1 {
		t.Errorf("buffer aliases caller data: byte 0 = %d, want 1", got)
	}
}

func TestCreateTextureValidatesPixels(t *testing.T) {
	h := newInitialized(t)

	_, err := h.CreateTexture(backend.TextureDesc{
		Label: "short", Width: 2, Height: 2,
		Format: backend.PixelRGBA8Unorm,
		Pixels: make([]byte, 3),
	})
	if err == nil {
		t.Fatal("CreateTexture() with short pixel data = nil error")
	}
	if !strings.Contains(err.Error(), "want 16") {
		t.Errorf("error = %v, want mention of expected byte count", err)
	}

	// Nil pixels are allowed (uninitialized texture).
	if _, err := h.CreateTexture(backend.TextureDesc{
		Label: "empty", Width: 2, Height: 2,
		Format: backend.PixelRGBA8Unorm,
	}); err != nil {
		t.Errorf("CreateTexture() without pixels error = %v", err)
	}
}

func TestArgumentTableEncode(t *testing.T) {
	h := newInitialized(t)

	tex := func() backend.Texture {
		tx, err := h.CreateTexture(backend.TextureDesc{
			Label: "t", Width: 1, Height: 1,
			Format: backend.PixelRGBA8Unorm,
			Pixels: []byte{0, 0, 0, 255},
		})
		if err != nil {
			t.Fatalf("CreateTexture() error = %v", err)
		}
		return tx
	}
	samp, err := h.CreateSampler(backend.SamplerDesc{})
	if err != nil {
		t.Fatalf("CreateSampler() error = %v", err)
	}

	at, err := h.CreateArgumentTable(2)
	if err != nil {
		t.Fatalf("CreateArgumentTable() error = %v", err)
	}
	if _, err := h.CreateArgumentTable(0); err == nil {
		t.Error("CreateArgumentTable(0) = nil error")
	}

	a, b := tex(), tex()
	if err := h.EncodeArgumentTableTextures(at, []backend.Texture{a, b}, samp); err != nil {
		t.Fatalf("EncodeArgumentTableTextures() error = %v", err)
	}
	if got := h.TableEncodeCount(at); got != 1 {
		t.Errorf("TableEncodeCount() = %d, want 1", got)
	}
	if got := h.TableTextures(at); len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("TableTextures() = %v, want [a b]", got)
	}

	// Over-full encodes are rejected without touching the table.
	if err := h.EncodeArgumentTableTextures(at, []backend.Texture{a, b, tex()}, samp); err == nil {
		t.Error("encode of 3 textures into 2-slot table = nil error")
	}
	if got := h.TableEncodeCount(at); got != 1 {
		t.Errorf("TableEncodeCount() after rejected encode = %d, want 1", got)
	}
}

func TestCloseResetsPools(t *testing.T) {
	h := newInitialized(t)
	if _, err := h.CreateBufferZeroed(4, backend.BufferUsageVertex); err != nil {
		t.Fatalf("CreateBufferZeroed() error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := h.Present(); err == nil {
		t.Error("Present() after Close = nil error")
	}
}
