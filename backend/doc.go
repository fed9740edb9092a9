// Package backend defines the rendering capability table and the backend
// registry.
//
// A Backend is the full set of operations a renderer needs from a GPU
// API: resource creation, state binding, draws, and frame lifecycle. The
// renderer records state and draw operations into a command queue during
// the frame and replays them against the active backend at present time;
// resource operations are called directly and take effect immediately.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime:
//
//	import (
//	    _ "github.com/gogpu/glint/backend/headless"
//	    _ "github.com/gogpu/glint/backend/wgpu"
//	)
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get("headless")
//
// # Available Backends
//
//   - "wgpu": GPU rendering via gogpu/wgpu (Vulkan)
//   - "headless": records operations without a GPU, for tests and tools
package backend
