package glint

// Resource handles.
//
// Every GPU-visible resource managed by a Renderer is addressed by an
// opaque handle: a slot index in the low 32 bits and a slot generation in
// the high 32 bits. Handles are values, not pointers; they stay valid
// across internal storage reuse because pool storage is sized once at
// initialization.
//
// Generations start at 1, so the zero value of every handle type is never
// a live handle. Releasing a slot bumps its generation, which makes any
// retained handle to the old occupant detectably stale: resolving it
// panics instead of silently aliasing the new occupant.

// PipelineID is an opaque handle to a render pipeline.
type PipelineID uint64

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// SamplerID is an opaque handle to a texture sampler.
type SamplerID uint64

// ArgumentTableID is an opaque handle to a bindless texture table.
type ArgumentTableID uint64

// packHandle combines a slot index and generation into a handle value.
func packHandle(index int, gen uint32) uint64 {
	return uint64(gen)<<32 | uint64(uint32(index)) //nolint:gosec // index bounded by pool capacity
}

// handleIndex extracts the slot index from a handle value.
func handleIndex(h uint64) int {
	return int(uint32(h)) //nolint:gosec // low 32 bits by construction
}

// handleGen extracts the slot generation from a handle value.
func handleGen(h uint64) uint32 {
	return uint32(h >> 32) //nolint:gosec // high 32 bits by construction
}
