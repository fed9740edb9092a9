// Package glint is a backend-agnostic real-time rendering abstraction.
//
// glint sits between an application's frame loop and a native GPU API.
// It provides three things on top of a pluggable backend contract:
//
//   - Fixed-capacity slot pools for GPU resources (pipelines, buffers,
//     textures, samplers, argument tables), addressed by opaque
//     generation-tagged handles.
//   - A per-frame, insertion-ordered command queue. Drawing work is
//     recorded as typed commands and replayed against the backend at
//     present time in the order it was inserted, except that buffer
//     uploads run in a dedicated pass before the frame begins (see
//     [PushBufferCommand]).
//   - An instanced draw batcher that coalesces many logical shape and
//     sprite draws into large instance buffers, with bindless-style
//     texture indirection through an argument table.
//
// Resource creation and destruction are synchronous calls against the
// backend; only drawing traffic is deferred through the queue.
//
// All capacities (pool sizes, queue depth, instances per frame) are fixed
// at initialization via [Config] and never grow. Exhausting a pool or the
// queue panics: capacities are configuration, and overflowing them is a
// configuration error, not a runtime condition to recover from. The one
// exception is the batcher, which transparently flushes and continues when
// its per-frame instance capacity fills.
//
// A minimal frame loop:
//
//	win, _ := window.Open("demo", 800, 600)
//	r, err := glint.New(backend.MustDefault(), win, glint.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	for !win.ShouldClose() {
//	    r.BeginFrame()
//	    r.DrawRect(10, 10, 120, 80, glint.Color{R: 1, A: 1})
//	    if err := r.Present(); err != nil {
//	        log.Fatal(err)
//	    }
//	    win.Poll()
//	}
//
// glint is strictly single-threaded: one goroutine owns a Renderer and
// drives it through the frame cycle. No internal locking is performed.
package glint
