package glint

import "fmt"

// slot holds one pooled payload and its liveness state.
type slot[T any] struct {
	live    bool
	gen     uint32
	payload T
}

// slotPool is a fixed-capacity typed object registry. Allocation is a
// linear scan for the first free slot; capacities are small (tens, not
// thousands) and acquire/release happen far less often than per-frame
// command submission, so the scan never shows up in profiles.
//
// The pool never grows. Running out of slots is a configuration error,
// not a runtime condition, so acquire panics on exhaustion.
type slotPool[T any] struct {
	name  string
	slots []slot[T]
}

// newSlotPool creates a pool with the given fixed capacity.
func newSlotPool[T any](name string, capacity int) *slotPool[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("glint: %s pool capacity must be positive, got %d", name, capacity))
	}
	p := &slotPool[T]{name: name, slots: make([]slot[T], capacity)}
	// Generations start at 1 so the zero handle is never live.
	for i := range p.slots {
		p.slots[i].gen = 1
	}
	return p
}

// acquire marks the first free slot live and returns its handle.
// Panics when every slot is live.
func (p *slotPool[T]) acquire() uint64 {
	for i := range p.slots {
		s := &p.slots[i]
		if !s.live {
			s.live = true
			return packHandle(i, s.gen)
		}
	}
	panic(fmt.Sprintf("glint: %s pool exhausted (capacity %d)", p.name, len(p.slots)))
}

// resolve returns the payload for a handle. Panics on an out-of-range
// index or a stale generation (the slot was released, and possibly
// reacquired, since the handle was issued).
func (p *slotPool[T]) resolve(h uint64) *T {
	i := handleIndex(h)
	if i < 0 || i >= len(p.slots) {
		panic(fmt.Sprintf("glint: %s handle index %d out of range (capacity %d)", p.name, i, len(p.slots)))
	}
	s := &p.slots[i]
	if handleGen(h) != s.gen {
		panic(fmt.Sprintf("glint: stale %s handle (slot %d generation %d, handle generation %d)",
			p.name, i, s.gen, handleGen(h)))
	}
	return &s.payload
}

// release frees the slot addressed by h. The payload is not zeroed;
// callers must release any backend resources it holds first. Bumping the
// generation invalidates every outstanding handle to this slot, so a
// double release panics in resolve.
func (p *slotPool[T]) release(h uint64) {
	p.resolve(h) // bounds and generation checks
	s := &p.slots[handleIndex(h)]
	s.live = false
	s.gen++
}

// liveCount returns the number of currently live slots.
func (p *slotPool[T]) liveCount() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].live {
			n++
		}
	}
	return n
}

// capacity returns the fixed slot count.
func (p *slotPool[T]) capacity() int { return len(p.slots) }
