// Package headless provides a backend that records operations without a
// GPU. Resource contents are kept in host memory, so buffer writes are
// observable, and every state and draw call is appended to an ordered
// log. It backs tests and server-side tools; importing the package
// registers it under the name "headless".
package headless

import (
	"fmt"

	"github.com/gogpu/glint/arena"
	"github.com/gogpu/glint/backend"
)

func init() {
	backend.Register(backend.BackendHeadless, func() backend.Backend {
		return New()
	})
}

// Object population ceilings. Far above what any renderer configuration
// reaches; hitting one means a resource leak.
const maxObjects = 4096

type bufferObj struct {
	data  []byte
	usage backend.BufferUsage
}

type textureObj struct {
	width  int
	height int
	format backend.PixelFormat
	pixels []byte
}

type samplerObj struct {
	desc backend.SamplerDesc
}

type pipelineObj struct {
	desc backend.PipelineDesc
}

type tableObj struct {
	slots    int
	textures []*textureObj
	encodes  int
}

// Headless is the recording backend. Not safe for concurrent use, same
// as the renderer that drives it.
type Headless struct {
	initialized bool
	frameOpen   bool

	buffers   *arena.Pool[bufferObj]
	textures  *arena.Pool[textureObj]
	samplers  *arena.Pool[samplerObj]
	pipelines *arena.Pool[pipelineObj]
	tables    *arena.Pool[tableObj]

	calls []string
}

// New creates an unregistered headless backend instance.
func New() *Headless {
	return &Headless{
		buffers:   arena.New[bufferObj](maxObjects),
		textures:  arena.New[textureObj](maxObjects),
		samplers:  arena.New[samplerObj](maxObjects),
		pipelines: arena.New[pipelineObj](maxObjects),
		tables:    arena.New[tableObj](maxObjects),
	}
}

// Calls returns the ordered log of state and draw operations recorded
// since the last ResetCalls.
func (h *Headless) Calls() []string { return h.calls }

// ResetCalls clears the recorded call log.
func (h *Headless) ResetCalls() { h.calls = h.calls[:0] }

// BufferBytes returns the current contents of a buffer created by this
// backend. Test helper.
func (h *Headless) BufferBytes(b backend.Buffer) []byte {
	return b.(*bufferObj).data
}

// TableEncodeCount returns how many times a table has been re-encoded.
// Test helper.
func (h *Headless) TableEncodeCount(at backend.ArgumentTable) int {
	return at.(*tableObj).encodes
}

// TableTextures returns the textures currently encoded in a table, in
// slot order. Test helper.
func (h *Headless) TableTextures(at backend.ArgumentTable) []backend.Texture {
	t := at.(*tableObj)
	out := make([]backend.Texture, len(t.textures))
	for i, tex := range t.textures {
		out[i] = tex
	}
	return out
}

func (h *Headless) record(format string, args ...any) {
	h.calls = append(h.calls, fmt.Sprintf(format, args...))
}

// Name implements backend.Backend.
func (h *Headless) Name() string { return backend.BackendHeadless }

// Init implements backend.Backend.
func (h *Headless) Init(_ backend.WindowProvider) error {
	h.initialized = true
	return nil
}

// Close implements backend.Backend.
func (h *Headless) Close() error {
	h.initialized = false
	h.buffers.Reset()
	h.textures.Reset()
	h.samplers.Reset()
	h.pipelines.Reset()
	h.tables.Reset()
	return nil
}

// BeginFrame implements backend.Backend.
func (h *Headless) BeginFrame() error {
	if !h.initialized {
		return backend.ErrNotInitialized
	}
	if h.frameOpen {
		return fmt.Errorf("headless: BeginFrame with frame already open")
	}
	h.frameOpen = true
	h.record("BeginFrame")
	return nil
}

// EndFrame implements backend.Backend.
func (h *Headless) EndFrame() error {
	if !h.frameOpen {
		return fmt.Errorf("headless: EndFrame without open frame")
	}
	h.frameOpen = false
	h.record("EndFrame")
	return nil
}

// Present implements backend.Backend.
func (h *Headless) Present() error {
	if !h.initialized {
		return backend.ErrNotInitialized
	}
	h.record("Present")
	return nil
}

// CreatePipeline implements backend.Backend.
func (h *Headless) CreatePipeline(desc backend.PipelineDesc) (backend.Pipeline, error) {
	p := h.pipelines.Alloc()
	p.desc = desc
	return p, nil
}

// DestroyPipeline implements backend.Backend.
func (h *Headless) DestroyPipeline(p backend.Pipeline) error {
	h.pipelines.Free(p.(*pipelineObj))
	return nil
}

// BindPipeline implements backend.Backend.
func (h *Headless) BindPipeline(p backend.Pipeline) {
	h.record("BindPipeline %q", p.(*pipelineObj).desc.Label)
}

// CreateBuffer implements backend.Backend.
func (h *Headless) CreateBuffer(data []byte, usage backend.BufferUsage) (backend.Buffer, error) {
	b := h.buffers.Alloc()
	b.data = append([]byte(nil), data...)
	b.usage = usage
	return b, nil
}

// CreateBufferZeroed implements backend.Backend.
func (h *Headless) CreateBufferZeroed(size int, usage backend.BufferUsage) (backend.Buffer, error) {
	b := h.buffers.Alloc()
	b.data = make([]byte, size)
	b.usage = usage
	return b, nil
}

// PushBuffer implements backend.Backend.
func (h *Headless) PushBuffer(buf backend.Buffer, offset int, data []byte) error {
	b := buf.(*bufferObj)
	if offset < 0 || offset+len(data) > len(b.data) {
		return fmt.Errorf("headless: push of %d bytes at %d overruns buffer of %d bytes",
			len(data), offset, len(b.data))
	}
	copy(b.data[offset:], data)
	h.record("PushBuffer offset=%d len=%d", offset, len(data))
	return nil
}

// DestroyBuffer implements backend.Backend.
func (h *Headless) DestroyBuffer(b backend.Buffer) error {
	h.buffers.Free(b.(*bufferObj))
	return nil
}

// BindVertexBuffer implements backend.Backend.
func (h *Headless) BindVertexBuffer(_ backend.Buffer, offset int, slot uint32) {
	h.record("BindVertexBuffer slot=%d offset=%d", slot, offset)
}

// BindIndexBuffer implements backend.Backend.
func (h *Headless) BindIndexBuffer(_ backend.Buffer, offset int) {
	h.record("BindIndexBuffer offset=%d", offset)
}

// BindFragmentBuffer implements backend.Backend.
func (h *Headless) BindFragmentBuffer(_ backend.Buffer, offset int, slot uint32) {
	h.record("BindFragmentBuffer slot=%d offset=%d", slot, offset)
}

// CreateTexture implements backend.Backend.
func (h *Headless) CreateTexture(desc backend.TextureDesc) (backend.Texture, error) {
	if desc.Pixels != nil {
		want := desc.Width * desc.Height * desc.Format.BytesPerPixel()
		if len(desc.Pixels) != want {
			return nil, fmt.Errorf("headless: texture %q pixel data is %d bytes, want %d",
				desc.Label, len(desc.Pixels), want)
		}
	}
	t := h.textures.Alloc()
	t.width = desc.Width
	t.height = desc.Height
	t.format = desc.Format
	t.pixels = append([]byte(nil), desc.Pixels...)
	return t, nil
}

// DestroyTexture implements backend.Backend.
func (h *Headless) DestroyTexture(t backend.Texture) error {
	h.textures.Free(t.(*textureObj))
	return nil
}

// BindTexture implements backend.Backend.
func (h *Headless) BindTexture(_ backend.Texture, slot uint32) {
	h.record("BindTexture slot=%d", slot)
}

// CreateSampler implements backend.Backend.
func (h *Headless) CreateSampler(desc backend.SamplerDesc) (backend.Sampler, error) {
	s := h.samplers.Alloc()
	s.desc = desc
	return s, nil
}

// DestroySampler implements backend.Backend.
func (h *Headless) DestroySampler(s backend.Sampler) error {
	h.samplers.Free(s.(*samplerObj))
	return nil
}

// BindSampler implements backend.Backend.
func (h *Headless) BindSampler(_ backend.Sampler, slot uint32) {
	h.record("BindSampler slot=%d", slot)
}

// CreateArgumentTable implements backend.Backend.
func (h *Headless) CreateArgumentTable(slots int) (backend.ArgumentTable, error) {
	if slots <= 0 {
		return nil, fmt.Errorf("headless: argument table slot count must be positive, got %d", slots)
	}
	t := h.tables.Alloc()
	t.slots = slots
	return t, nil
}

// EncodeArgumentTableTextures implements backend.Backend.
func (h *Headless) EncodeArgumentTableTextures(at backend.ArgumentTable, textures []backend.Texture, _ backend.Sampler) error {
	t := at.(*tableObj)
	if len(textures) > t.slots {
		return fmt.Errorf("headless: encoding %d textures into table of %d slots", len(textures), t.slots)
	}
	t.textures = t.textures[:0]
	for _, tex := range textures {
		t.textures = append(t.textures, tex.(*textureObj))
	}
	t.encodes++
	return nil
}

// DestroyArgumentTable implements backend.Backend.
func (h *Headless) DestroyArgumentTable(at backend.ArgumentTable) error {
	h.tables.Free(at.(*tableObj))
	return nil
}

// BindArgumentTable implements backend.Backend.
func (h *Headless) BindArgumentTable(at backend.ArgumentTable, slot uint32) {
	h.record("BindArgumentTable slot=%d textures=%d", slot, len(at.(*tableObj).textures))
}

// Draw implements backend.Backend.
func (h *Headless) Draw(vertexCount, firstVertex uint32) {
	h.record("Draw vertices=%d first=%d", vertexCount, firstVertex)
}

// DrawIndexed implements backend.Backend.
func (h *Headless) DrawIndexed(indexCount, firstIndex uint32) {
	h.record("DrawIndexed indices=%d first=%d", indexCount, firstIndex)
}

// DrawInstanced implements backend.Backend.
func (h *Headless) DrawInstanced(indexCount, instanceCount, firstIndex, firstInstance uint32) {
	h.record("DrawInstanced indices=%d instances=%d firstIndex=%d firstInstance=%d",
		indexCount, instanceCount, firstIndex, firstInstance)
}
