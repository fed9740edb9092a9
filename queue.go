package glint

import "fmt"

// CommandQueue is a fixed-capacity, insertion-ordered log of render
// commands for one frame. It is the single serialization point for all
// deferred drawing work: commands go in via Insert during the frame and
// are replayed against the backend, strictly in order, at present time.
//
// The queue has exactly three states: idle (count zero), recording
// (inserts happened), and mid-replay. Replay is a straight linear walk;
// there is no reordering, coalescing, or dependency analysis. The batcher
// relies on this: it interleaves bind and draw commands that must execute
// as adjacent ordered pairs. The one carve-out is buffer uploads, which
// replay in a transfer pass ahead of everything else (see
// [PushBufferCommand]).
//
// Overflow is fatal rather than dropped or backpressured. The queue depth
// is a configuration decision, and silently dropping commands would
// corrupt rendering with no indication of why.
type CommandQueue struct {
	commands []Command
	count    int
}

// newCommandQueue creates a queue with the given fixed depth.
func newCommandQueue(depth int) *CommandQueue {
	if depth <= 0 {
		panic(fmt.Sprintf("glint: command queue depth must be positive, got %d", depth))
	}
	return &CommandQueue{commands: make([]Command, depth)}
}

// Insert appends a command at the tail. Panics when the queue is full.
func (q *CommandQueue) Insert(cmd Command) {
	if q.count == len(q.commands) {
		panic(fmt.Sprintf("glint: command queue full (depth %d)", len(q.commands)))
	}
	q.commands[q.count] = cmd
	q.count++
}

// Len returns the number of commands recorded this frame.
func (q *CommandQueue) Len() int { return q.count }

// Depth returns the fixed queue capacity.
func (q *CommandQueue) Depth() int { return len(q.commands) }

// Commands returns the commands recorded so far, in insertion order.
// The returned slice aliases the queue's backing array and is valid only
// until the next Clear.
func (q *CommandQueue) Commands() []Command { return q.commands[:q.count] }

// Clear resets the command count to zero. The backing array is kept;
// next frame's inserts overwrite old entries.
func (q *CommandQueue) Clear() { q.count = 0 }
