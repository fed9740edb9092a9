package glint

// CommandType identifies the type of a deferred render command.
// Each command type corresponds to one backend operation performed at
// replay time.
type CommandType uint8

const (
	// Frame boundary commands
	CmdBeginFrame CommandType = iota // Open the backend frame
	CmdEndFrame                      // Close the backend frame

	// State commands
	CmdBindPipeline       // Bind a render pipeline
	CmdBindVertexBuffer   // Bind a buffer to a vertex input slot
	CmdBindIndexBuffer    // Bind the index buffer
	CmdBindFragmentBuffer // Bind a buffer to a fragment stage slot
	CmdBindTexture        // Bind a single texture
	CmdBindSampler        // Bind a sampler
	CmdBindArgumentTable  // Bind a bindless texture table

	// Transfer commands
	CmdPushBuffer // Upload bytes into a buffer at an offset

	// Draw commands
	CmdDraw                 // Non-indexed draw
	CmdDrawIndexed          // Indexed draw
	CmdDrawIndexedInstanced // Indexed instanced draw
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdBeginFrame:           "BeginFrame",
	CmdEndFrame:             "EndFrame",
	CmdBindPipeline:         "BindPipeline",
	CmdBindVertexBuffer:     "BindVertexBuffer",
	CmdBindIndexBuffer:      "BindIndexBuffer",
	CmdBindFragmentBuffer:   "BindFragmentBuffer",
	CmdBindTexture:          "BindTexture",
	CmdBindSampler:          "BindSampler",
	CmdBindArgumentTable:    "BindArgumentTable",
	CmdPushBuffer:           "PushBuffer",
	CmdDraw:                 "Draw",
	CmdDrawIndexed:          "DrawIndexed",
	CmdDrawIndexedInstanced: "DrawIndexedInstanced",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all render command types.
// Commands are immutable once inserted into the queue and are consumed
// exactly once, in insertion order, when the frame is presented.
//
// The command set is closed: replay performs an exhaustive type switch
// and panics on anything it does not recognize.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// BeginFrameCommand opens the backend frame.
type BeginFrameCommand struct{}

// Type implements Command.
func (BeginFrameCommand) Type() CommandType { return CmdBeginFrame }

// EndFrameCommand closes the backend frame.
type EndFrameCommand struct{}

// Type implements Command.
func (EndFrameCommand) Type() CommandType { return CmdEndFrame }

// BindPipelineCommand binds a render pipeline for subsequent draws.
type BindPipelineCommand struct {
	// Pipeline references the pipeline in the renderer's pipeline pool.
	Pipeline PipelineID
}

// Type implements Command.
func (BindPipelineCommand) Type() CommandType { return CmdBindPipeline }

// BindVertexBufferCommand binds a buffer range to a vertex input slot.
type BindVertexBufferCommand struct {
	// Buffer references the buffer in the renderer's buffer pool.
	Buffer BufferID
	// Offset is the byte offset at which vertex data starts.
	Offset int
	// Slot is the vertex input slot index.
	Slot uint32
}

// Type implements Command.
func (BindVertexBufferCommand) Type() CommandType { return CmdBindVertexBuffer }

// BindIndexBufferCommand binds the index buffer for indexed draws.
type BindIndexBufferCommand struct {
	// Buffer references the buffer in the renderer's buffer pool.
	Buffer BufferID
	// Offset is the byte offset at which index data starts.
	Offset int
}

// Type implements Command.
func (BindIndexBufferCommand) Type() CommandType { return CmdBindIndexBuffer }

// BindFragmentBufferCommand binds a buffer range to a fragment stage slot.
type BindFragmentBufferCommand struct {
	// Buffer references the buffer in the renderer's buffer pool.
	Buffer BufferID
	// Offset is the byte offset at which the bound range starts.
	Offset int
	// Slot is the fragment stage buffer slot index.
	Slot uint32
}

// Type implements Command.
func (BindFragmentBufferCommand) Type() CommandType { return CmdBindFragmentBuffer }

// BindTextureCommand binds a single texture to a fragment slot.
// Batched drawing goes through the argument table instead; this command
// exists for callers issuing their own draws outside the batcher.
type BindTextureCommand struct {
	// Texture references the texture in the renderer's texture pool.
	Texture TextureID
	// Slot is the texture binding slot index.
	Slot uint32
}

// Type implements Command.
func (BindTextureCommand) Type() CommandType { return CmdBindTexture }

// BindSamplerCommand binds a sampler to a fragment slot.
type BindSamplerCommand struct {
	// Sampler references the sampler in the renderer's sampler pool.
	Sampler SamplerID
	// Slot is the sampler binding slot index.
	Slot uint32
}

// Type implements Command.
func (BindSamplerCommand) Type() CommandType { return CmdBindSampler }

// BindArgumentTableCommand binds a bindless texture table. One table bind
// replaces N discrete texture binds for everything drawn afterward.
type BindArgumentTableCommand struct {
	// Table references the table in the renderer's argument table pool.
	Table ArgumentTableID
	// Slot is the table binding slot index.
	Slot uint32
}

// Type implements Command.
func (BindArgumentTableCommand) Type() CommandType { return CmdBindArgumentTable }

// PushBufferCommand uploads bytes into a buffer at a byte offset.
// Data is owned by the command from insertion until replay; the batcher
// copies instance records before inserting so the live accumulation array
// can be reused within the same frame.
//
// Uploads do not replay interleaved with other commands: at present time
// every PushBufferCommand in the queue executes in a transfer pass ahead
// of the frame, keeping writes out of the open render pass. Uploads keep
// their insertion order relative to each other, but a draw never
// observes a buffer range "before" a push inserted later in the same
// frame. Write each buffer range at most once per frame; for
// read-modify-write streaming, advance the offset instead, the way the
// batcher does.
type PushBufferCommand struct {
	// Buffer references the destination buffer.
	Buffer BufferID
	// Offset is the destination byte offset.
	Offset int
	// Data is the payload to upload.
	Data []byte
}

// Type implements Command.
func (PushBufferCommand) Type() CommandType { return CmdPushBuffer }

// DrawCommand issues a non-indexed draw.
type DrawCommand struct {
	// VertexCount is the number of vertices to draw.
	VertexCount uint32
	// FirstVertex is the index of the first vertex.
	FirstVertex uint32
}

// Type implements Command.
func (DrawCommand) Type() CommandType { return CmdDraw }

// DrawIndexedCommand issues an indexed draw using the bound index buffer.
type DrawIndexedCommand struct {
	// IndexCount is the number of indices to draw.
	IndexCount uint32
	// FirstIndex is the index of the first index.
	FirstIndex uint32
}

// Type implements Command.
func (DrawIndexedCommand) Type() CommandType { return CmdDrawIndexed }

// DrawIndexedInstancedCommand issues an indexed draw repeated for a range
// of instances. The batcher emits exactly one of these per flush.
type DrawIndexedInstancedCommand struct {
	// IndexCount is the number of indices per instance.
	IndexCount uint32
	// InstanceCount is the number of instances to draw.
	InstanceCount uint32
	// FirstIndex is the index of the first index.
	FirstIndex uint32
	// FirstInstance is the index of the first instance.
	FirstInstance uint32
}

// Type implements Command.
func (DrawIndexedInstancedCommand) Type() CommandType { return CmdDrawIndexedInstanced }
