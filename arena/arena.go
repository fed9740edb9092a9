package arena

import (
	"fmt"
	"unsafe"
)

// Pool is a fixed-capacity allocator handing out equally sized chunks of
// type T from one contiguous backing array. Free chunks form a LIFO list
// threaded through an index array, so Alloc and Free are O(1); the most
// recently freed chunk is reused first while its memory is still warm.
//
// The pool never grows and never touches the garbage collector after
// construction: all storage is allocated once in New. Exhaustion is a
// sizing error and panics. Freed pointers are validated against the
// backing array, so freeing a foreign pointer, a misaligned pointer, or
// the same chunk twice panics instead of corrupting the free list.
//
// Pool is not safe for concurrent use.
type Pool[T any] struct {
	backing   []T
	next      []int32 // free list links, indexed by chunk
	allocated []bool
	head      int32 // first free chunk, -1 when exhausted
	inUse     int
}

const nilChunk = int32(-1)

// New creates a pool of the given chunk count. Panics when chunks is not
// positive.
func New[T any](chunks int) *Pool[T] {
	if chunks <= 0 {
		panic(fmt.Sprintf("arena: chunk count must be positive, got %d", chunks))
	}
	p := &Pool[T]{
		backing:   make([]T, chunks),
		next:      make([]int32, chunks),
		allocated: make([]bool, chunks),
		head:      0,
	}
	for i := range p.next {
		p.next[i] = int32(i) + 1 //nolint:gosec // bounded by chunk count
	}
	p.next[chunks-1] = nilChunk
	return p
}

// Alloc returns a pointer to a zero-valued chunk. The chunk stays valid
// until Free or Reset. Panics when the pool is exhausted.
func (p *Pool[T]) Alloc() *T {
	if p.head == nilChunk {
		panic(fmt.Sprintf("arena: pool exhausted (capacity %d)", len(p.backing)))
	}
	i := p.head
	p.head = p.next[i]
	p.allocated[i] = true
	p.inUse++

	var zero T
	p.backing[i] = zero
	return &p.backing[i]
}

// Free returns a chunk to the pool. ptr must have come from Alloc on
// this pool and must not have been freed since; anything else panics.
func (p *Pool[T]) Free(ptr *T) {
	i := p.indexOf(ptr)
	if !p.allocated[i] {
		panic(fmt.Sprintf("arena: double free of chunk %d", i))
	}
	p.allocated[i] = false
	p.next[i] = p.head
	p.head = i
	p.inUse--
}

// indexOf maps a chunk pointer back to its index, panicking on pointers
// the pool does not own.
func (p *Pool[T]) indexOf(ptr *T) int32 {
	if ptr == nil {
		panic("arena: free of nil pointer")
	}
	size := unsafe.Sizeof(*ptr)
	base := uintptr(unsafe.Pointer(&p.backing[0]))
	addr := uintptr(unsafe.Pointer(ptr))
	if addr < base || addr >= base+size*uintptr(len(p.backing)) {
		panic("arena: free of pointer outside pool")
	}
	off := addr - base
	if off%size != 0 {
		panic("arena: free of misaligned pointer")
	}
	return int32(off / size) //nolint:gosec // bounded by chunk count
}

// Reset frees every chunk at once. Pointers returned by Alloc before the
// reset must not be used afterwards; the pool cannot detect that.
func (p *Pool[T]) Reset() {
	for i := range p.next {
		p.next[i] = int32(i) + 1 //nolint:gosec // bounded by chunk count
		p.allocated[i] = false
	}
	p.next[len(p.next)-1] = nilChunk
	p.head = 0
	p.inUse = 0
}

// Cap returns the fixed chunk count.
func (p *Pool[T]) Cap() int { return len(p.backing) }

// InUse returns the number of currently allocated chunks.
func (p *Pool[T]) InUse() int { return p.inUse }
