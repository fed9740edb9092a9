package glint

import (
	"fmt"
	"log/slog"
	"unsafe"
)

// ShapeKind selects the distance function evaluated per fragment for a
// batched instance. The shader switches on this value.
type ShapeKind uint32

const (
	// ShapeRect is an axis-aligned or rotated rectangle.
	ShapeRect ShapeKind = iota
	// ShapeRoundedRect is a rectangle with rounded corners
	// (Params[0] = corner radius).
	ShapeRoundedRect
	// ShapeCircle is a filled circle (Scale gives the bounding quad).
	ShapeCircle
	// ShapeRing is a circle outline (Params[0] = stroke width).
	ShapeRing
)

// Instance is one batched shape record, laid out exactly as the instance
// vertex buffer expects it. Field order and padding are load-bearing:
// the struct is copied to the GPU byte-for-byte.
type Instance struct {
	Pos      [2]float32 // center position in pixels
	Scale    [2]float32 // half-extents in pixels
	Rot      float32    // rotation in radians
	Kind     ShapeKind
	TexIndex uint32 // argument table slot, 0 = opaque white
	_        uint32 // pad Color to a 16-byte boundary
	Color    [4]float32
	Params   [4]float32 // shape-specific (corner radius, ring width)
	UVMin    [2]float32
	UVMax    [2]float32
}

// InstanceSize is the wire size of one Instance in bytes.
const InstanceSize = int(unsafe.Sizeof(Instance{}))

// FrameStats counts batching activity for the current frame. Reset at
// BeginFrame, stable after Present.
type FrameStats struct {
	// Instances is the number of instances submitted this frame.
	Instances int
	// Flushes is the number of batch flushes this frame.
	Flushes int
	// DrawCalls is the number of draw commands the batcher emitted.
	DrawCalls int
	// BytesUploaded is the instance data volume pushed this frame.
	BytesUploaded int
}

// Batcher accumulates shape instances and converts them into the minimum
// number of instanced draw commands. All instances in a batch share one
// pipeline and one argument table of textures; a flush happens when the
// instance array fills, or unconditionally at Present.
//
// Slot 0 of the texture registry is permanently the renderer's 1x1 opaque
// white texture, so untextured shapes need no special casing in the
// shader: they sample white and the instance color does the rest.
type Batcher struct {
	r *Renderer

	instances  []Instance
	count      int
	byteOffset int // write cursor into the upload buffer, reset each frame

	texRegistry []TextureID
	texCount    int
	argDirty    bool

	pipeline       PipelineID
	argTable       ArgumentTableID
	quadVertices   BufferID
	quadIndices    BufferID
	instanceBuffer BufferID
	whiteTexture   TextureID
	sampler        SamplerID

	stats FrameStats
}

func newBatcher(r *Renderer) *Batcher {
	b := &Batcher{
		r:           r,
		instances:   make([]Instance, r.cfg.MaxBatchInstances),
		texRegistry: make([]TextureID, r.cfg.MaxBatchTextures),
	}
	return b
}

// bindResources wires the GPU objects the batcher draws with. Called once
// from New after the renderer created them; slot 0 of the registry is
// claimed by the white fallback texture here.
func (b *Batcher) bindResources(pipeline PipelineID, argTable ArgumentTableID,
	quadVertices, quadIndices, instanceBuffer BufferID,
	whiteTexture TextureID, sampler SamplerID) {
	b.pipeline = pipeline
	b.argTable = argTable
	b.quadVertices = quadVertices
	b.quadIndices = quadIndices
	b.instanceBuffer = instanceBuffer
	b.whiteTexture = whiteTexture
	b.sampler = sampler
	b.texRegistry[0] = whiteTexture
	b.texCount = 1
	b.argDirty = true
}

// Submit queues one instance for the current batch. If the batch is at
// capacity it is flushed first, so Submit never fails for batch size
// reasons; it can still panic downstream if the flush overruns the
// command queue or the upload budget.
func (b *Batcher) Submit(inst Instance) {
	if b.count == len(b.instances) {
		b.Flush()
	}
	b.instances[b.count] = inst
	b.count++
	b.stats.Instances++
}

// RegisterTexture places a texture in the batch argument table and
// returns its slot index for use in Instance.TexIndex. Registering the
// same texture twice returns the same slot. Panics when the table is
// full; the table size is a configuration decision and the caller is
// expected to partition scenes that need more textures.
func (b *Batcher) RegisterTexture(tex TextureID) uint32 {
	b.r.textures.resolve(uint64(tex)) // validate before caching the handle
	for i := 0; i < b.texCount; i++ {
		if b.texRegistry[i] == tex {
			return uint32(i) //nolint:gosec // bounded by table size
		}
	}
	if b.texCount == len(b.texRegistry) {
		panic(fmt.Sprintf("glint: batch texture table full (capacity %d)", len(b.texRegistry)))
	}
	slot := b.texCount
	b.texRegistry[slot] = tex
	b.texCount++
	b.argDirty = true
	return uint32(slot) //nolint:gosec // bounded by table size
}

// Flush converts the pending instances into queue commands. A flush with
// nothing pending is a no-op. The emitted sequence is always the same
// five steps: upload instance bytes, bind pipeline, bind the quad and
// instance vertex streams plus the index buffer, bind the argument
// table, draw. Argument table re-encoding happens here too, as a direct
// backend call, so the table is current before the queued draw replays.
func (b *Batcher) Flush() {
	if b.count == 0 {
		return
	}

	if b.argDirty {
		if err := b.r.encodeArgumentTable(b.argTable, b.texRegistry[:b.texCount], b.sampler); err != nil {
			Logger().Warn("argument table encode failed", slog.String("error", err.Error()))
		}
		b.argDirty = false
	}

	data := b.instanceBytes()
	if b.byteOffset+len(data) > b.r.cfg.UploadBudget {
		panic(fmt.Sprintf("glint: instance upload budget exceeded (offset %d + %d bytes > budget %d)",
			b.byteOffset, len(data), b.r.cfg.UploadBudget))
	}

	q := b.r.queue
	q.Insert(PushBufferCommand{Buffer: b.instanceBuffer, Offset: b.byteOffset, Data: data})
	q.Insert(BindPipelineCommand{Pipeline: b.pipeline})
	q.Insert(BindVertexBufferCommand{Buffer: b.quadVertices, Offset: 0, Slot: 0})
	q.Insert(BindVertexBufferCommand{Buffer: b.instanceBuffer, Offset: b.byteOffset, Slot: 1})
	q.Insert(BindIndexBufferCommand{Buffer: b.quadIndices, Offset: 0})
	q.Insert(BindArgumentTableCommand{Table: b.argTable, Slot: 0})
	q.Insert(DrawIndexedInstancedCommand{
		IndexCount:    quadIndexCount,
		InstanceCount: uint32(b.count), //nolint:gosec // bounded by batch capacity
	})

	Logger().Debug("batch flush",
		slog.Int("instances", b.count),
		slog.Int("offset", b.byteOffset),
		slog.Int("bytes", len(data)))

	b.byteOffset += len(data)
	b.stats.Flushes++
	b.stats.DrawCalls++
	b.stats.BytesUploaded += len(data)
	b.count = 0
}

// beginFrame resets the per-frame accumulation state. The texture
// registry and argument table survive across frames; only the instance
// cursor, upload cursor, and stats reset.
func (b *Batcher) beginFrame() {
	b.count = 0
	b.byteOffset = 0
	b.stats = FrameStats{}
}

// Stats returns the batching counters accumulated since BeginFrame.
func (b *Batcher) Stats() FrameStats { return b.stats }

// Pending returns the number of instances accumulated since the last flush.
func (b *Batcher) Pending() int { return b.count }

// instanceBytes copies the pending instance records into a fresh byte
// slice. A copy, not an alias: the accumulation array is reused for the
// next batch within the same frame, while the PushBufferCommand holds
// its data until replay.
func (b *Batcher) instanceBytes() []byte {
	n := b.count * InstanceSize
	out := make([]byte, n)
	src := unsafe.Slice((*byte)(unsafe.Pointer(&b.instances[0])), n) //nolint:gosec // fixed-layout POD struct
	copy(out, src)
	return out
}
