package glint

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/glint/backend"
)

// quad geometry shared by every batched instance: a unit quad in
// [-1,1] expanded per instance in the vertex stage.
var (
	quadVertexData = [8]float32{
		-1, -1,
		1, -1,
		1, 1,
		-1, 1,
	}
	quadIndexData = [6]uint16{0, 1, 2, 0, 2, 3}
)

const quadIndexCount = 6

// Renderer owns one backend, the resource pools, the per-frame command
// queue, and the batcher. Create one per window with New; all methods
// must be called from a single goroutine.
//
// The frame loop is:
//
//	r.BeginFrame()
//	r.DrawRect(...)        // batched drawing, any amount
//	r.Present()            // flush, replay, present
type Renderer struct {
	cfg Config
	b   backend.Backend
	win backend.WindowProvider

	pipelines *slotPool[backend.Pipeline]
	buffers   *slotPool[backend.Buffer]
	textures  *slotPool[backend.Texture]
	samplers  *slotPool[backend.Sampler]
	argTables *slotPool[backend.ArgumentTable]

	queue *CommandQueue
	batch *Batcher

	frameOpen bool
}

// New creates a renderer on the given backend and window. The backend is
// initialized and the batching resources (white fallback texture, quad
// geometry, instance buffer, sampler, argument table, batch pipeline)
// are created eagerly, so a successful New means the renderer can draw.
func New(b backend.Backend, win backend.WindowProvider, cfg Config) (*Renderer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := b.Init(win); err != nil {
		return nil, fmt.Errorf("glint: init backend %q: %w", b.Name(), err)
	}

	r := &Renderer{
		cfg:       cfg,
		b:         b,
		win:       win,
		pipelines: newSlotPool[backend.Pipeline]("pipeline", cfg.MaxPipelines),
		buffers:   newSlotPool[backend.Buffer]("buffer", cfg.MaxBuffers),
		textures:  newSlotPool[backend.Texture]("texture", cfg.MaxTextures),
		samplers:  newSlotPool[backend.Sampler]("sampler", cfg.MaxSamplers),
		argTables: newSlotPool[backend.ArgumentTable]("argument table", cfg.MaxArgumentTables),
		queue:     newCommandQueue(cfg.QueueDepth),
	}
	r.batch = newBatcher(r)

	if err := r.createBatchResources(); err != nil {
		_ = b.Close()
		return nil, err
	}

	Logger().Info("renderer created",
		slog.String("backend", b.Name()),
		slog.Int("queue_depth", cfg.QueueDepth),
		slog.Int("max_batch_instances", cfg.MaxBatchInstances))
	return r, nil
}

// createBatchResources builds everything the batcher needs to draw.
func (r *Renderer) createBatchResources() error {
	white, err := r.CreateTexture(whiteTextureDesc())
	if err != nil {
		return fmt.Errorf("glint: create fallback texture: %w", err)
	}

	quadVB, err := r.CreateBuffer(floatBytes(quadVertexData[:]), backend.BufferUsageVertex)
	if err != nil {
		return fmt.Errorf("glint: create quad vertex buffer: %w", err)
	}
	quadIB, err := r.CreateBuffer(uint16Bytes(quadIndexData[:]), backend.BufferUsageIndex)
	if err != nil {
		return fmt.Errorf("glint: create quad index buffer: %w", err)
	}
	instVB, err := r.CreateBufferZeroed(r.cfg.UploadBudget,
		backend.BufferUsageVertex|backend.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("glint: create instance buffer: %w", err)
	}

	samp, err := r.CreateSampler(backend.SamplerDesc{
		Label:     "batch sampler",
		MinFilter: backend.FilterLinear,
		MagFilter: backend.FilterLinear,
		AddressU:  backend.AddressClampToEdge,
		AddressV:  backend.AddressClampToEdge,
	})
	if err != nil {
		return fmt.Errorf("glint: create batch sampler: %w", err)
	}

	table, err := r.CreateArgumentTable(r.cfg.MaxBatchTextures)
	if err != nil {
		return fmt.Errorf("glint: create argument table: %w", err)
	}

	pipeline, err := r.CreatePipeline(backend.PipelineDesc{
		Label:          "batch pipeline",
		Shader:         BatchShaderWGSL(r.cfg.MaxBatchTextures),
		VertexLayout:   quadVertexLayout(),
		InstanceLayout: instanceVertexLayout(),
		TextureSlots:   r.cfg.MaxBatchTextures,
	})
	if err != nil {
		return fmt.Errorf("glint: create batch pipeline: %w", err)
	}

	r.batch.bindResources(pipeline, table, quadVB, quadIB, instVB, white, samp)
	return nil
}

// quadVertexLayout describes the per-vertex stream (slot 0).
func quadVertexLayout() backend.VertexLayout {
	return backend.VertexLayout{
		Stride: 8,
		Attributes: []backend.VertexAttribute{
			{Format: backend.VertexFloat32x2, Offset: 0, Location: 0},
		},
	}
}

// instanceVertexLayout describes the per-instance stream (slot 1),
// matching the Instance struct field for field.
func instanceVertexLayout() backend.VertexLayout {
	return backend.VertexLayout{
		Stride: InstanceSize,
		Attributes: []backend.VertexAttribute{
			{Format: backend.VertexFloat32x2, Offset: 0, Location: 1},  // Pos
			{Format: backend.VertexFloat32x2, Offset: 8, Location: 2},  // Scale
			{Format: backend.VertexFloat32, Offset: 16, Location: 3},   // Rot
			{Format: backend.VertexUint32, Offset: 20, Location: 4},    // Kind
			{Format: backend.VertexUint32, Offset: 24, Location: 5},    // TexIndex
			{Format: backend.VertexFloat32x4, Offset: 32, Location: 6}, // Color
			{Format: backend.VertexFloat32x4, Offset: 48, Location: 7}, // Params
			{Format: backend.VertexFloat32x2, Offset: 64, Location: 8}, // UVMin
			{Format: backend.VertexFloat32x2, Offset: 72, Location: 9}, // UVMax
		},
	}
}

// Backend returns the active backend.
func (r *Renderer) Backend() backend.Backend { return r.b }

// Batch returns the renderer's batcher for direct instance submission
// and texture registration.
func (r *Renderer) Batch() *Batcher { return r.batch }

// Stats returns the batching counters for the frame in progress, or for
// the last presented frame when called between frames.
func (r *Renderer) Stats() FrameStats { return r.batch.Stats() }

// Config returns the capacities the renderer was created with.
func (r *Renderer) Config() Config { return r.cfg }

// ---------------------------------------------------------------------------
// Resource management
// ---------------------------------------------------------------------------

// CreatePipeline compiles a render pipeline and returns its handle.
func (r *Renderer) CreatePipeline(desc backend.PipelineDesc) (PipelineID, error) {
	p, err := r.b.CreatePipeline(desc)
	if err != nil {
		return 0, fmt.Errorf("glint: create pipeline %q: %w", desc.Label, err)
	}
	h := r.pipelines.acquire()
	*r.pipelines.resolve(h) = p
	return PipelineID(h), nil
}

// DestroyPipeline releases a pipeline. The handle is invalid afterwards.
func (r *Renderer) DestroyPipeline(id PipelineID) error {
	err := r.b.DestroyPipeline(*r.pipelines.resolve(uint64(id)))
	r.pipelines.release(uint64(id))
	return err
}

// CreateBuffer creates a buffer holding data and returns its handle.
func (r *Renderer) CreateBuffer(data []byte, usage backend.BufferUsage) (BufferID, error) {
	b, err := r.b.CreateBuffer(data, usage)
	if err != nil {
		return 0, fmt.Errorf("glint: create buffer: %w", err)
	}
	h := r.buffers.acquire()
	*r.buffers.resolve(h) = b
	return BufferID(h), nil
}

// CreateBufferZeroed creates a zero-filled buffer of size bytes.
func (r *Renderer) CreateBufferZeroed(size int, usage backend.BufferUsage) (BufferID, error) {
	b, err := r.b.CreateBufferZeroed(size, usage)
	if err != nil {
		return 0, fmt.Errorf("glint: create buffer (%d bytes): %w", size, err)
	}
	h := r.buffers.acquire()
	*r.buffers.resolve(h) = b
	return BufferID(h), nil
}

// PushBuffer writes data into a buffer immediately, outside the command
// queue. Inside a frame, insert a PushBufferCommand instead; queued
// uploads all run in a transfer pass ahead of the frame's draws, so each
// buffer range may be written at most once per frame.
func (r *Renderer) PushBuffer(id BufferID, offset int, data []byte) error {
	return r.b.PushBuffer(*r.buffers.resolve(uint64(id)), offset, data)
}

// DestroyBuffer releases a buffer. The handle is invalid afterwards.
func (r *Renderer) DestroyBuffer(id BufferID) error {
	err := r.b.DestroyBuffer(*r.buffers.resolve(uint64(id)))
	r.buffers.release(uint64(id))
	return err
}

// CreateTexture creates a texture and returns its handle.
func (r *Renderer) CreateTexture(desc backend.TextureDesc) (TextureID, error) {
	t, err := r.b.CreateTexture(desc)
	if err != nil {
		return 0, fmt.Errorf("glint: create texture %q: %w", desc.Label, err)
	}
	h := r.textures.acquire()
	*r.textures.resolve(h) = t
	return TextureID(h), nil
}

// DestroyTexture releases a texture. The handle is invalid afterwards.
// Destroying a texture still registered with the batcher is a caller
// error; the next argument table encode would resolve a stale handle and
// panic.
func (r *Renderer) DestroyTexture(id TextureID) error {
	err := r.b.DestroyTexture(*r.textures.resolve(uint64(id)))
	r.textures.release(uint64(id))
	return err
}

// CreateSampler creates a sampler and returns its handle.
func (r *Renderer) CreateSampler(desc backend.SamplerDesc) (SamplerID, error) {
	s, err := r.b.CreateSampler(desc)
	if err != nil {
		return 0, fmt.Errorf("glint: create sampler %q: %w", desc.Label, err)
	}
	h := r.samplers.acquire()
	*r.samplers.resolve(h) = s
	return SamplerID(h), nil
}

// DestroySampler releases a sampler. The handle is invalid afterwards.
func (r *Renderer) DestroySampler(id SamplerID) error {
	err := r.b.DestroySampler(*r.samplers.resolve(uint64(id)))
	r.samplers.release(uint64(id))
	return err
}

// CreateArgumentTable creates a bindless texture table with the given
// number of slots.
func (r *Renderer) CreateArgumentTable(slots int) (ArgumentTableID, error) {
	at, err := r.b.CreateArgumentTable(slots)
	if err != nil {
		return 0, fmt.Errorf("glint: create argument table (%d slots): %w", slots, err)
	}
	h := r.argTables.acquire()
	*r.argTables.resolve(h) = at
	return ArgumentTableID(h), nil
}

// DestroyArgumentTable releases a table. The handle is invalid afterwards.
func (r *Renderer) DestroyArgumentTable(id ArgumentTableID) error {
	err := r.b.DestroyArgumentTable(*r.argTables.resolve(uint64(id)))
	r.argTables.release(uint64(id))
	return err
}

// encodeArgumentTable rewrites a table's texture slots. A direct backend
// call, not a queued command: encoding must complete before the queued
// draw that reads the table replays.
func (r *Renderer) encodeArgumentTable(id ArgumentTableID, texs []TextureID, sampler SamplerID) error {
	resolved := make([]backend.Texture, len(texs))
	for i, t := range texs {
		resolved[i] = *r.textures.resolve(uint64(t))
	}
	at := *r.argTables.resolve(uint64(id))
	s := *r.samplers.resolve(uint64(sampler))
	return r.b.EncodeArgumentTableTextures(at, resolved, s)
}

// ---------------------------------------------------------------------------
// Frame lifecycle
// ---------------------------------------------------------------------------

// Insert records a command for replay at Present. Most callers never
// touch this; the batcher inserts everything a batched frame needs.
// Panics when the queue is full or no frame is open.
func (r *Renderer) Insert(cmd Command) {
	if !r.frameOpen {
		panic("glint: Insert outside BeginFrame/Present")
	}
	r.queue.Insert(cmd)
}

// BeginFrame opens a frame: the command queue starts recording and the
// batcher resets its per-frame cursors. Panics if a frame is already
// open.
func (r *Renderer) BeginFrame() {
	if r.frameOpen {
		panic("glint: BeginFrame with frame already open")
	}
	r.frameOpen = true
	r.queue.Insert(BeginFrameCommand{})
	r.batch.beginFrame()
}

// Present finishes the frame: flushes the batcher, replays the command
// queue against the backend, and presents. While the window is
// minimized the backend work is skipped entirely and the queue is
// discarded; drawing code runs unchanged and simply has no effect.
func (r *Renderer) Present() error {
	if !r.frameOpen {
		panic("glint: Present without BeginFrame")
	}
	r.batch.Flush()
	r.queue.Insert(EndFrameCommand{})
	r.frameOpen = false

	if r.win != nil && r.win.Minimized() {
		Logger().Debug("frame skipped, window minimized")
		r.queue.Clear()
		return nil
	}

	if err := r.replay(); err != nil {
		r.queue.Clear()
		return err
	}
	r.queue.Clear()

	if err := r.b.Present(); err != nil {
		return fmt.Errorf("glint: present: %w", err)
	}
	return nil
}

// replay walks the queue in insertion order and executes each command on
// the backend. Buffer uploads are hoisted into a first pass ahead of the
// render pass: every flush writes a disjoint range of the instance
// buffer, so moving the writes earlier cannot change what any draw
// reads, and it lets backends keep uploads out of an open render pass.
func (r *Renderer) replay() error {
	cmds := r.queue.Commands()

	for _, cmd := range cmds {
		if c, ok := cmd.(PushBufferCommand); ok {
			if err := r.b.PushBuffer(*r.buffers.resolve(uint64(c.Buffer)), c.Offset, c.Data); err != nil {
				return fmt.Errorf("glint: replay %s: %w", c.Type(), err)
			}
		}
	}

	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case PushBufferCommand:
			// handled in the upload pass
		case BeginFrameCommand:
			if err := r.b.BeginFrame(); err != nil {
				return fmt.Errorf("glint: replay %s: %w", c.Type(), err)
			}
		case EndFrameCommand:
			if err := r.b.EndFrame(); err != nil {
				return fmt.Errorf("glint: replay %s: %w", c.Type(), err)
			}
		case BindPipelineCommand:
			r.b.BindPipeline(*r.pipelines.resolve(uint64(c.Pipeline)))
		case BindVertexBufferCommand:
			r.b.BindVertexBuffer(*r.buffers.resolve(uint64(c.Buffer)), c.Offset, c.Slot)
		case BindIndexBufferCommand:
			r.b.BindIndexBuffer(*r.buffers.resolve(uint64(c.Buffer)), c.Offset)
		case BindFragmentBufferCommand:
			r.b.BindFragmentBuffer(*r.buffers.resolve(uint64(c.Buffer)), c.Offset, c.Slot)
		case BindTextureCommand:
			r.b.BindTexture(*r.textures.resolve(uint64(c.Texture)), c.Slot)
		case BindSamplerCommand:
			r.b.BindSampler(*r.samplers.resolve(uint64(c.Sampler)), c.Slot)
		case BindArgumentTableCommand:
			r.b.BindArgumentTable(*r.argTables.resolve(uint64(c.Table)), c.Slot)
		case DrawCommand:
			r.b.Draw(c.VertexCount, c.FirstVertex)
		case DrawIndexedCommand:
			r.b.DrawIndexed(c.IndexCount, c.FirstIndex)
		case DrawIndexedInstancedCommand:
			r.b.DrawInstanced(c.IndexCount, c.InstanceCount, c.FirstIndex, c.FirstInstance)
		default:
			panic(fmt.Sprintf("glint: unknown command type %T", cmd))
		}
	}
	return nil
}

// Close releases the batch resources and shuts the backend down. The
// renderer must not be used afterwards.
func (r *Renderer) Close() error {
	b := r.batch
	for _, f := range []func() error{
		func() error { return r.DestroyPipeline(b.pipeline) },
		func() error { return r.DestroyArgumentTable(b.argTable) },
		func() error { return r.DestroyBuffer(b.quadVertices) },
		func() error { return r.DestroyBuffer(b.quadIndices) },
		func() error { return r.DestroyBuffer(b.instanceBuffer) },
		func() error { return r.DestroyTexture(b.whiteTexture) },
		func() error { return r.DestroySampler(b.sampler) },
	} {
		if err := f(); err != nil {
			Logger().Warn("resource release failed", slog.String("error", err.Error()))
		}
	}
	if err := r.b.Close(); err != nil {
		return fmt.Errorf("glint: close backend: %w", err)
	}
	return nil
}
