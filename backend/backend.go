package backend

import "errors"

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when no backend is registered.
	ErrBackendNotAvailable = errors.New("backend: no backend available")

	// ErrNotInitialized is returned when a backend method is called
	// before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Opaque resource types. A Backend returns its own concrete objects
// behind these; callers never inspect them, only hand them back to the
// same backend.
type (
	// Pipeline is a backend render pipeline object.
	Pipeline any
	// Buffer is a backend GPU buffer object.
	Buffer any
	// Texture is a backend texture object.
	Texture any
	// Sampler is a backend sampler object.
	Sampler any
	// ArgumentTable is a backend bindless texture table object.
	ArgumentTable any
)

// PixelFormat identifies a texture pixel layout.
type PixelFormat uint8

const (
	// PixelRGBA8Unorm is 8-bit RGBA, normalized.
	PixelRGBA8Unorm PixelFormat = iota
	// PixelBGRA8Unorm is 8-bit BGRA, normalized (common surface format).
	PixelBGRA8Unorm
	// PixelR8Unorm is single-channel 8-bit, normalized.
	PixelR8Unorm
)

// BytesPerPixel returns the storage size of one pixel in this format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelRGBA8Unorm, PixelBGRA8Unorm:
		return 4
	case PixelR8Unorm:
		return 1
	default:
		return 0
	}
}

// BufferUsage describes how a buffer will be used. Usages combine with
// bitwise OR.
type BufferUsage uint8

const (
	// BufferUsageVertex marks the buffer as a vertex stream source.
	BufferUsageVertex BufferUsage = 1 << iota
	// BufferUsageIndex marks the buffer as an index source.
	BufferUsageIndex
	// BufferUsageUniform marks the buffer for uniform binding.
	BufferUsageUniform
	// BufferUsageCopyDst marks the buffer as a transfer destination.
	BufferUsageCopyDst
)

// FilterMode selects texture sampling interpolation.
type FilterMode uint8

const (
	// FilterNearest samples the nearest texel.
	FilterNearest FilterMode = iota
	// FilterLinear interpolates between texels.
	FilterLinear
)

// AddressMode selects texture coordinate wrapping.
type AddressMode uint8

const (
	// AddressClampToEdge clamps coordinates to the texture edge.
	AddressClampToEdge AddressMode = iota
	// AddressRepeat tiles the texture.
	AddressRepeat
)

// VertexFormat identifies the type of one vertex attribute.
type VertexFormat uint8

const (
	// VertexFloat32 is a single 32-bit float.
	VertexFloat32 VertexFormat = iota
	// VertexFloat32x2 is two 32-bit floats.
	VertexFloat32x2
	// VertexFloat32x4 is four 32-bit floats.
	VertexFloat32x4
	// VertexUint32 is a single 32-bit unsigned integer.
	VertexUint32
)

// VertexAttribute describes one attribute within a vertex stream.
type VertexAttribute struct {
	Format   VertexFormat
	Offset   int
	Location uint32
}

// VertexLayout describes one vertex stream: its stride and attributes.
type VertexLayout struct {
	Stride     int
	Attributes []VertexAttribute
}

// PipelineDesc describes a render pipeline to create. Shader is WGSL
// source; backends that need another format compile it themselves.
type PipelineDesc struct {
	Label string
	// Shader is the WGSL source containing vs_main and fs_main.
	Shader string
	// VertexLayout is the per-vertex stream (slot 0).
	VertexLayout VertexLayout
	// InstanceLayout is the per-instance stream (slot 1). Empty stride
	// means the pipeline takes no instance stream.
	InstanceLayout VertexLayout
	// TextureSlots is the argument table size the pipeline binds, 0 for
	// pipelines that bind no table.
	TextureSlots int
}

// TextureDesc describes a texture to create. Pixels holds the full
// initial contents, tightly packed; nil creates an uninitialized texture.
type TextureDesc struct {
	Label  string
	Width  int
	Height int
	Format PixelFormat
	Pixels []byte
}

// SamplerDesc describes a sampler to create.
type SamplerDesc struct {
	Label     string
	MinFilter FilterMode
	MagFilter FilterMode
	AddressU  AddressMode
	AddressV  AddressMode
}

// WindowProvider is the surface a backend presents to. Implementations
// wrap a windowing library; headless backends ignore everything but Size.
type WindowProvider interface {
	// Size returns the drawable surface size in pixels.
	Size() (width, height int)
	// Visible reports whether the window is currently visible.
	Visible() bool
	// Minimized reports whether the window is minimized. Frames are
	// skipped while minimized.
	Minimized() bool
	// NativeHandle returns the platform window handle for surface
	// creation, or nil for offscreen targets.
	NativeHandle() any
}

// Backend is the rendering capability table. Exactly one Backend is
// active per renderer; all methods are called from the renderer's
// goroutine.
//
// Resource methods (Create*, Destroy*, PushBuffer, EncodeArgumentTable-
// Textures) execute immediately. State and draw methods (Bind*, Draw*)
// are only called between BeginFrame and EndFrame, in replay order.
type Backend interface {
	// Name returns the backend identifier used in the registry.
	Name() string

	// Init prepares the backend for rendering to the given window.
	Init(win WindowProvider) error
	// Close releases all backend resources.
	Close() error

	// BeginFrame opens a frame: acquires the render target and starts
	// the render pass.
	BeginFrame() error
	// EndFrame closes the render pass and submits the frame's work.
	EndFrame() error
	// Present makes the finished frame visible.
	Present() error

	// CreatePipeline compiles a render pipeline.
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	// DestroyPipeline releases a pipeline.
	DestroyPipeline(p Pipeline) error
	// BindPipeline makes a pipeline current for subsequent draws.
	BindPipeline(p Pipeline)

	// CreateBuffer creates a buffer with the given initial contents.
	CreateBuffer(data []byte, usage BufferUsage) (Buffer, error)
	// CreateBufferZeroed creates a zero-filled buffer of size bytes.
	CreateBufferZeroed(size int, usage BufferUsage) (Buffer, error)
	// PushBuffer writes data into a buffer at a byte offset.
	PushBuffer(b Buffer, offset int, data []byte) error
	// DestroyBuffer releases a buffer.
	DestroyBuffer(b Buffer) error
	// BindVertexBuffer binds a buffer range to a vertex input slot.
	BindVertexBuffer(b Buffer, offset int, slot uint32)
	// BindIndexBuffer binds the index buffer (uint16 indices).
	BindIndexBuffer(b Buffer, offset int)
	// BindFragmentBuffer binds a buffer range to a fragment stage slot.
	BindFragmentBuffer(b Buffer, offset int, slot uint32)

	// CreateTexture creates and optionally initializes a texture.
	CreateTexture(desc TextureDesc) (Texture, error)
	// DestroyTexture releases a texture.
	DestroyTexture(t Texture) error
	// BindTexture binds a single texture to a fragment slot.
	BindTexture(t Texture, slot uint32)

	// CreateSampler creates a sampler.
	CreateSampler(desc SamplerDesc) (Sampler, error)
	// DestroySampler releases a sampler.
	DestroySampler(s Sampler) error
	// BindSampler binds a sampler to a fragment slot.
	BindSampler(s Sampler, slot uint32)

	// CreateArgumentTable creates a bindless texture table with the
	// given number of slots.
	CreateArgumentTable(slots int) (ArgumentTable, error)
	// EncodeArgumentTableTextures rewrites the table contents. Slots
	// beyond len(textures) keep pointing at the last encoded texture or
	// the table's fallback.
	EncodeArgumentTableTextures(at ArgumentTable, textures []Texture, sampler Sampler) error
	// DestroyArgumentTable releases a table.
	DestroyArgumentTable(at ArgumentTable) error
	// BindArgumentTable binds a table to a fragment slot.
	BindArgumentTable(at ArgumentTable, slot uint32)

	// Draw issues a non-indexed draw.
	Draw(vertexCount, firstVertex uint32)
	// DrawIndexed issues an indexed draw.
	DrawIndexed(indexCount, firstIndex uint32)
	// DrawInstanced issues an indexed, instanced draw.
	DrawInstanced(indexCount, instanceCount, firstIndex, firstInstance uint32)
}
