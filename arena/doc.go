// Package arena provides a fixed-capacity chunk allocator for hot-path
// object reuse.
//
// A Pool hands out equally sized chunks from one contiguous array and
// recycles them through a LIFO free list, so allocation cost is constant
// and independent of the garbage collector. It suits objects with high
// churn and a known population ceiling: per-resource bookkeeping records,
// pooled command payloads, transient per-frame state.
//
//	pool := arena.New[node](1024)
//	n := pool.Alloc() // zero-valued *node
//	...
//	pool.Free(n)
//
// Misuse is loud: exhaustion, double frees, and foreign pointers all
// panic rather than corrupting the free list.
package arena
