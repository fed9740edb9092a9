// Package window wraps GLFW to provide render surfaces. A Window
// satisfies the renderer's window provider interface; the package holds
// no rendering state of its own.
//
// GLFW requires that Init, window creation, and event polling all happen
// on the main OS thread. Callers should lock the main goroutine:
//
//	func init() { runtime.LockOSThread() }
package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/glint/backend"
)

// Window is a GLFW window usable as a render surface.
type Window struct {
	w *glfw.Window
}

var _ backend.WindowProvider = (*Window)(nil)

// Open initializes GLFW if needed and creates a window. The window is
// created without an OpenGL context; the rendering backend brings its
// own GPU API.
func Open(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("window: init glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("window: create window: %w", err)
	}
	return &Window{w: w}, nil
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (width, height int) {
	return w.w.GetFramebufferSize()
}

// Visible reports whether the window is currently visible.
func (w *Window) Visible() bool {
	return w.w.GetAttrib(glfw.Visible) == glfw.True
}

// Minimized reports whether the window is iconified.
func (w *Window) Minimized() bool {
	return w.w.GetAttrib(glfw.Iconified) == glfw.True
}

// NativeHandle returns the underlying *glfw.Window for backends that
// create a presentation surface.
func (w *Window) NativeHandle() any { return w.w }

// ShouldClose reports whether the user has requested the window close.
func (w *Window) ShouldClose() bool { return w.w.ShouldClose() }

// Poll processes pending window events. Call once per frame from the
// main thread.
func (w *Window) Poll() { glfw.PollEvents() }

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	w.w.Destroy()
	glfw.Terminate()
}
