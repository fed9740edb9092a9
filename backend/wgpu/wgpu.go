package wgpu

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gogpu/glint"
	"github.com/gogpu/glint/backend"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

func init() {
	backend.Register(backend.BackendWGPU, func() backend.Backend {
		return New()
	})
}

// targetFormat is the color target pixel format. BGRA8 matches what
// swapchains hand out on the platforms the Vulkan HAL supports.
const targetFormat = gputypes.TextureFormatBGRA8Unorm

// uniformSize is the viewport uniform: vec2<f32> padded to 16 bytes.
const uniformSize = 16

// gpuTimeout bounds every fence wait. A frame that takes longer than
// this has hung the device.
const gpuTimeout = 5 * time.Second

type pipelineObj struct {
	pipeline hal.RenderPipeline
	layout   hal.PipelineLayout
	shader   hal.ShaderModule
}

type bufferObj struct {
	buf  hal.Buffer
	size int
}

type textureObj struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

type samplerObj struct {
	s hal.Sampler
}

type tableObj struct {
	slots int
	group hal.BindGroup
}

// Backend renders through the gogpu/wgpu HAL into an offscreen color
// target sized to the window. Not safe for concurrent use.
type Backend struct {
	instance       hal.Instance
	device         hal.Device
	queue          hal.Queue
	externalDevice bool

	win    backend.WindowProvider
	width  uint32
	height uint32

	targetTex  hal.Texture
	targetView hal.TextureView

	uniformBuf   hal.Buffer
	uniformBGL   hal.BindGroupLayout
	uniformGroup hal.BindGroup

	// Argument table layouts by slot count. Tables and pipelines built
	// for the same slot count share one layout, which keeps their bind
	// groups compatible.
	tableBGLs map[int]hal.BindGroupLayout

	encoder hal.CommandEncoder
	rp      hal.RenderPassEncoder
	cmdBuf  hal.CommandBuffer
}

// New creates an uninitialized wgpu backend.
func New() *Backend {
	return &Backend{tableBGLs: make(map[int]hal.BindGroupLayout)}
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return backend.BackendWGPU }

// Init implements backend.Backend.
func (b *Backend) Init(win backend.WindowProvider) error {
	if err := b.openDevice(); err != nil {
		return err
	}
	b.win = win

	if err := b.createUniform(); err != nil {
		b.closeDevice()
		return err
	}

	w, h := win.Size()
	if err := b.ensureTarget(uint32(w), uint32(h)); err != nil { //nolint:gosec // window dimensions fit uint32
		b.Close()
		return err
	}
	return nil
}

// createUniform builds the viewport uniform buffer and its bind group
// (group 1 in every pipeline this backend creates).
func (b *Backend) createUniform() error {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glint_viewport", Size: uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create viewport buffer: %w", err)
	}
	b.uniformBuf = buf

	bgl, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "glint_viewport_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create viewport layout: %w", err)
	}
	b.uniformBGL = bgl

	group, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "glint_viewport_bind",
		Layout: bgl,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create viewport bind group: %w", err)
	}
	b.uniformGroup = group
	return nil
}

// ensureTarget creates or recreates the offscreen color target when the
// window size changes.
func (b *Backend) ensureTarget(w, h uint32) error {
	if w == 0 || h == 0 {
		return fmt.Errorf("wgpu: zero-sized render target (%dx%d)", w, h)
	}
	if b.width == w && b.height == h && b.targetTex != nil {
		return nil
	}
	b.destroyTarget()

	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "glint_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        targetFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create render target: %w", err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "glint_target_view",
		Format:        targetFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return fmt.Errorf("wgpu: create render target view: %w", err)
	}
	b.targetTex = tex
	b.targetView = view
	b.width = w
	b.height = h

	glint.Logger().Debug("render target created", slog.Int("width", int(w)), slog.Int("height", int(h)))
	return nil
}

func (b *Backend) destroyTarget() {
	if b.targetView != nil {
		b.device.DestroyTextureView(b.targetView)
		b.targetView = nil
	}
	if b.targetTex != nil {
		b.device.DestroyTexture(b.targetTex)
		b.targetTex = nil
	}
	b.width, b.height = 0, 0
}

// Close implements backend.Backend.
func (b *Backend) Close() error {
	if b.device == nil {
		return nil
	}
	b.destroyTarget()
	for _, bgl := range b.tableBGLs {
		b.device.DestroyBindGroupLayout(bgl)
	}
	b.tableBGLs = make(map[int]hal.BindGroupLayout)
	if b.uniformGroup != nil {
		b.device.DestroyBindGroup(b.uniformGroup)
		b.uniformGroup = nil
	}
	if b.uniformBGL != nil {
		b.device.DestroyBindGroupLayout(b.uniformBGL)
		b.uniformBGL = nil
	}
	if b.uniformBuf != nil {
		b.device.DestroyBuffer(b.uniformBuf)
		b.uniformBuf = nil
	}
	b.closeDevice()
	return nil
}

// ---------------------------------------------------------------------------
// Frame lifecycle
// ---------------------------------------------------------------------------

// BeginFrame implements backend.Backend.
func (b *Backend) BeginFrame() error {
	if b.device == nil {
		return backend.ErrNotInitialized
	}
	w, h := b.win.Size()
	if err := b.ensureTarget(uint32(w), uint32(h)); err != nil { //nolint:gosec // window dimensions fit uint32
		return err
	}
	b.queue.WriteBuffer(b.uniformBuf, 0, viewportBytes(float32(w), float32(h)))

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "glint_frame"})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("glint_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	b.encoder = encoder

	b.rp = encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "glint_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       b.targetView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	})
	return nil
}

// EndFrame implements backend.Backend.
func (b *Backend) EndFrame() error {
	if b.rp == nil {
		return fmt.Errorf("wgpu: EndFrame without open frame")
	}
	b.rp.End()
	b.rp = nil

	cmdBuf, err := b.encoder.EndEncoding()
	if err != nil {
		b.encoder = nil
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	b.encoder = nil
	b.cmdBuf = cmdBuf
	return nil
}

// Present implements backend.Backend. Submits the frame's command
// buffer and blocks until the GPU finishes it. The finished frame stays
// in the offscreen target; hosts embedding this backend read or blit it
// from there.
func (b *Backend) Present() error {
	if b.cmdBuf == nil {
		return fmt.Errorf("wgpu: Present without encoded frame")
	}
	defer func() {
		b.device.FreeCommandBuffer(b.cmdBuf)
		b.cmdBuf = nil
	}()

	fence, err := b.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)

	if err := b.queue.Submit([]hal.CommandBuffer{b.cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := b.device.Wait(fence, 1, gpuTimeout)
	if err != nil {
		return fmt.Errorf("wgpu: wait for GPU: %w", err)
	}
	if !fenceOK {
		return fmt.Errorf("wgpu: wait for GPU: timeout after %s", gpuTimeout)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Pipelines
// ---------------------------------------------------------------------------

// CreatePipeline implements backend.Backend.
func (b *Backend) CreatePipeline(desc backend.PipelineDesc) (backend.Pipeline, error) {
	spirv, err := compileWGSL(desc.Shader)
	if err != nil {
		return nil, err
	}
	shader, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create shader module: %w", err)
	}

	slots := desc.TextureSlots
	if slots < 1 {
		slots = 1
	}
	tableLayout, err := b.tableLayout(slots)
	if err != nil {
		b.device.DestroyShaderModule(shader)
		return nil, err
	}

	layout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + "_layout",
		BindGroupLayouts: []hal.BindGroupLayout{tableLayout, b.uniformBGL},
	})
	if err != nil {
		b.device.DestroyShaderModule(shader)
		return nil, fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}

	buffers := []gputypes.VertexBufferLayout{
		vertexLayoutOf(desc.VertexLayout, gputypes.VertexStepModeVertex),
	}
	if desc.InstanceLayout.Stride > 0 {
		buffers = append(buffers,
			vertexLayoutOf(desc.InstanceLayout, gputypes.VertexStepModeInstance))
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    targetFormat,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		b.device.DestroyPipelineLayout(layout)
		b.device.DestroyShaderModule(shader)
		return nil, fmt.Errorf("wgpu: create render pipeline: %w", err)
	}

	return &pipelineObj{pipeline: pipeline, layout: layout, shader: shader}, nil
}

// DestroyPipeline implements backend.Backend.
func (b *Backend) DestroyPipeline(p backend.Pipeline) error {
	obj := p.(*pipelineObj)
	b.device.DestroyRenderPipeline(obj.pipeline)
	b.device.DestroyPipelineLayout(obj.layout)
	b.device.DestroyShaderModule(obj.shader)
	return nil
}

// BindPipeline implements backend.Backend. Also binds the viewport
// uniform group, which every pipeline from this backend expects at
// group 1.
func (b *Backend) BindPipeline(p backend.Pipeline) {
	b.rp.SetPipeline(p.(*pipelineObj).pipeline)
	b.rp.SetBindGroup(1, b.uniformGroup, nil)
}

// tableLayout returns the bind group layout for an argument table with
// the given slot count, creating and caching it on first use. Binding 0
// is the sampler; bindings 1..slots are the texture slots.
func (b *Backend) tableLayout(slots int) (hal.BindGroupLayout, error) {
	if bgl, ok := b.tableBGLs[slots]; ok {
		return bgl, nil
	}
	entries := make([]gputypes.BindGroupLayoutEntry, 0, slots+1)
	entries = append(entries, gputypes.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: gputypes.ShaderStageFragment,
		Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
	})
	for i := 0; i < slots; i++ {
		entries = append(entries, gputypes.BindGroupLayoutEntry{
			Binding:    uint32(i + 1), //nolint:gosec // bounded by slot count
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		})
	}
	bgl, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   fmt.Sprintf("glint_table_layout_%d", slots),
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create table layout (%d slots): %w", slots, err)
	}
	b.tableBGLs[slots] = bgl
	return bgl, nil
}

// ---------------------------------------------------------------------------
// Buffers
// ---------------------------------------------------------------------------

// CreateBuffer implements backend.Backend.
func (b *Backend) CreateBuffer(data []byte, usage backend.BufferUsage) (backend.Buffer, error) {
	obj, err := b.createBuffer(len(data), usage)
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(obj.buf, 0, data)
	return obj, nil
}

// CreateBufferZeroed implements backend.Backend.
func (b *Backend) CreateBufferZeroed(size int, usage backend.BufferUsage) (backend.Buffer, error) {
	obj, err := b.createBuffer(size, usage)
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(obj.buf, 0, make([]byte, size))
	return obj, nil
}

func (b *Backend) createBuffer(size int, usage backend.BufferUsage) (*bufferObj, error) {
	if size <= 0 {
		return nil, fmt.Errorf("wgpu: buffer size must be positive, got %d", size)
	}
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glint_buffer",
		Size:  uint64(size),
		Usage: bufferUsageOf(usage),
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create buffer (%d bytes): %w", size, err)
	}
	return &bufferObj{buf: buf, size: size}, nil
}

// PushBuffer implements backend.Backend.
func (b *Backend) PushBuffer(buf backend.Buffer, offset int, data []byte) error {
	obj := buf.(*bufferObj)
	if offset < 0 || offset+len(data) > obj.size {
		return fmt.Errorf("wgpu: push of %d bytes at %d overruns buffer of %d bytes",
			len(data), offset, obj.size)
	}
	b.queue.WriteBuffer(obj.buf, uint64(offset), data)
	return nil
}

// DestroyBuffer implements backend.Backend.
func (b *Backend) DestroyBuffer(buf backend.Buffer) error {
	b.device.DestroyBuffer(buf.(*bufferObj).buf)
	return nil
}

// BindVertexBuffer implements backend.Backend.
func (b *Backend) BindVertexBuffer(buf backend.Buffer, offset int, slot uint32) {
	b.rp.SetVertexBuffer(slot, buf.(*bufferObj).buf, uint64(offset)) //nolint:gosec // validated non-negative
}

// BindIndexBuffer implements backend.Backend.
func (b *Backend) BindIndexBuffer(buf backend.Buffer, offset int) {
	b.rp.SetIndexBuffer(buf.(*bufferObj).buf, gputypes.IndexFormatUint16, uint64(offset)) //nolint:gosec // validated non-negative
}

// BindFragmentBuffer implements backend.Backend. Fragment-stage buffer
// ranges are not part of the batch pipeline's layout; custom pipelines
// that need one carry it in their own bind groups, which this HAL wires
// at pipeline creation. Unsupported for now.
func (b *Backend) BindFragmentBuffer(_ backend.Buffer, _ int, slot uint32) {
	glint.Logger().Warn("BindFragmentBuffer not supported by wgpu backend", slog.Int("slot", int(slot)))
}

// ---------------------------------------------------------------------------
// Textures and samplers
// ---------------------------------------------------------------------------

// CreateTexture implements backend.Backend.
func (b *Backend) CreateTexture(desc backend.TextureDesc) (backend.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("wgpu: texture %q has invalid size %dx%d", desc.Label, desc.Width, desc.Height)
	}
	w, h := uint32(desc.Width), uint32(desc.Height) //nolint:gosec // validated positive
	format := textureFormatOf(desc.Format)

	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %q: %w", desc.Label, err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         desc.Label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create texture view %q: %w", desc.Label, err)
	}

	if desc.Pixels != nil {
		bpp := desc.Format.BytesPerPixel()
		b.queue.WriteTexture(
			&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
			desc.Pixels,
			&hal.ImageDataLayout{
				Offset:       0,
				BytesPerRow:  w * uint32(bpp), //nolint:gosec // bpp is 1 or 4
				RowsPerImage: h,
			},
			&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		)
	}

	return &textureObj{tex: tex, view: view, width: w, height: h}, nil
}

// DestroyTexture implements backend.Backend.
func (b *Backend) DestroyTexture(t backend.Texture) error {
	obj := t.(*textureObj)
	b.device.DestroyTextureView(obj.view)
	b.device.DestroyTexture(obj.tex)
	return nil
}

// BindTexture implements backend.Backend. Single-texture binds go
// through one-slot argument tables in this backend; a discrete texture
// bind has no layout to attach to.
func (b *Backend) BindTexture(_ backend.Texture, slot uint32) {
	glint.Logger().Warn("BindTexture not supported by wgpu backend, use an argument table", slog.Int("slot", int(slot)))
}

// CreateSampler implements backend.Backend.
func (b *Backend) CreateSampler(desc backend.SamplerDesc) (backend.Sampler, error) {
	s, err := b.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        desc.Label,
		AddressModeU: addressModeOf(desc.AddressU),
		AddressModeV: addressModeOf(desc.AddressV),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filterModeOf(desc.MagFilter),
		MinFilter:    filterModeOf(desc.MinFilter),
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create sampler %q: %w", desc.Label, err)
	}
	return &samplerObj{s: s}, nil
}

// DestroySampler implements backend.Backend.
func (b *Backend) DestroySampler(s backend.Sampler) error {
	b.device.DestroySampler(s.(*samplerObj).s)
	return nil
}

// BindSampler implements backend.Backend. Samplers bind through
// argument tables in this backend.
func (b *Backend) BindSampler(_ backend.Sampler, slot uint32) {
	glint.Logger().Warn("BindSampler not supported by wgpu backend, use an argument table", slog.Int("slot", int(slot)))
}

// ---------------------------------------------------------------------------
// Argument tables
// ---------------------------------------------------------------------------

// CreateArgumentTable implements backend.Backend.
func (b *Backend) CreateArgumentTable(slots int) (backend.ArgumentTable, error) {
	if slots <= 0 {
		return nil, fmt.Errorf("wgpu: argument table slot count must be positive, got %d", slots)
	}
	if _, err := b.tableLayout(slots); err != nil {
		return nil, err
	}
	return &tableObj{slots: slots}, nil
}

// EncodeArgumentTableTextures implements backend.Backend. Rebuilds the
// table's bind group. Slots past len(textures) replicate the last
// texture; WebGPU bind groups have no unbound entries.
func (b *Backend) EncodeArgumentTableTextures(at backend.ArgumentTable, textures []backend.Texture, sampler backend.Sampler) error {
	obj := at.(*tableObj)
	if len(textures) == 0 {
		return fmt.Errorf("wgpu: encoding empty argument table")
	}
	if len(textures) > obj.slots {
		return fmt.Errorf("wgpu: encoding %d textures into table of %d slots", len(textures), obj.slots)
	}

	bgl, err := b.tableLayout(obj.slots)
	if err != nil {
		return err
	}

	entries := make([]gputypes.BindGroupEntry, 0, obj.slots+1)
	entries = append(entries, gputypes.BindGroupEntry{
		Binding:  0,
		Resource: gputypes.SamplerBinding{Sampler: sampler.(*samplerObj).s.NativeHandle()},
	})
	for i := 0; i < obj.slots; i++ {
		tex := textures[min(i, len(textures)-1)].(*textureObj)
		entries = append(entries, gputypes.BindGroupEntry{
			Binding:  uint32(i + 1), //nolint:gosec // bounded by slot count
			Resource: gputypes.TextureViewBinding{TextureView: tex.view.NativeHandle()},
		})
	}

	group, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "glint_table_bind",
		Layout:  bgl,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create table bind group: %w", err)
	}

	if obj.group != nil {
		b.device.DestroyBindGroup(obj.group)
	}
	obj.group = group
	return nil
}

// DestroyArgumentTable implements backend.Backend.
func (b *Backend) DestroyArgumentTable(at backend.ArgumentTable) error {
	obj := at.(*tableObj)
	if obj.group != nil {
		b.device.DestroyBindGroup(obj.group)
		obj.group = nil
	}
	return nil
}

// BindArgumentTable implements backend.Backend.
func (b *Backend) BindArgumentTable(at backend.ArgumentTable, slot uint32) {
	obj := at.(*tableObj)
	if obj.group == nil {
		glint.Logger().Warn("binding argument table before first encode")
		return
	}
	b.rp.SetBindGroup(slot, obj.group, nil)
}

// ---------------------------------------------------------------------------
// Draws
// ---------------------------------------------------------------------------

// Draw implements backend.Backend.
func (b *Backend) Draw(vertexCount, firstVertex uint32) {
	b.rp.Draw(vertexCount, 1, firstVertex, 0)
}

// DrawIndexed implements backend.Backend.
func (b *Backend) DrawIndexed(indexCount, firstIndex uint32) {
	b.rp.DrawIndexed(indexCount, 1, firstIndex, 0, 0)
}

// DrawInstanced implements backend.Backend.
func (b *Backend) DrawInstanced(indexCount, instanceCount, firstIndex, firstInstance uint32) {
	b.rp.DrawIndexed(indexCount, instanceCount, firstIndex, 0, firstInstance)
}

// ---------------------------------------------------------------------------
// Enum conversions
// ---------------------------------------------------------------------------

func bufferUsageOf(u backend.BufferUsage) gputypes.BufferUsage {
	// Every buffer is CopyDst: initial contents and PushBuffer both go
	// through queue.WriteBuffer.
	out := gputypes.BufferUsageCopyDst
	if u&backend.BufferUsageVertex != 0 {
		out |= gputypes.BufferUsageVertex
	}
	if u&backend.BufferUsageIndex != 0 {
		out |= gputypes.BufferUsageIndex
	}
	if u&backend.BufferUsageUniform != 0 {
		out |= gputypes.BufferUsageUniform
	}
	return out
}

func textureFormatOf(f backend.PixelFormat) gputypes.TextureFormat {
	switch f {
	case backend.PixelBGRA8Unorm:
		return gputypes.TextureFormatBGRA8Unorm
	case backend.PixelR8Unorm:
		return gputypes.TextureFormatR8Unorm
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

func filterModeOf(f backend.FilterMode) gputypes.FilterMode {
	if f == backend.FilterNearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

func addressModeOf(a backend.AddressMode) gputypes.AddressMode {
	if a == backend.AddressRepeat {
		return gputypes.AddressModeRepeat
	}
	return gputypes.AddressModeClampToEdge
}

func vertexFormatOf(f backend.VertexFormat) gputypes.VertexFormat {
	switch f {
	case backend.VertexFloat32:
		return gputypes.VertexFormatFloat32
	case backend.VertexFloat32x4:
		return gputypes.VertexFormatFloat32x4
	case backend.VertexUint32:
		return gputypes.VertexFormatUint32
	default:
		return gputypes.VertexFormatFloat32x2
	}
}

func vertexLayoutOf(l backend.VertexLayout, step gputypes.VertexStepMode) gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(l.Attributes))
	for i, a := range l.Attributes {
		attrs[i] = gputypes.VertexAttribute{
			Format:         vertexFormatOf(a.Format),
			Offset:         uint64(a.Offset), //nolint:gosec // offsets are small positive constants
			ShaderLocation: a.Location,
		}
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(l.Stride), //nolint:gosec // strides are small positive constants
		StepMode:    step,
		Attributes:  attrs,
	}
}

// viewportBytes packs the viewport size as two little-endian float32s
// padded to uniformSize.
func viewportBytes(w, h float32) []byte {
	out := make([]byte, uniformSize)
	binary.LittleEndian.PutUint32(out[0:], math.Float32bits(w))
	binary.LittleEndian.PutUint32(out[4:], math.Float32bits(h))
	return out
}
