// Package glfwctx wraps GLFW windows as shareable resources. Windows must be
// acquired and released on the application main thread.
package glfwctx

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/rhfw/rhfw"
	"github.com/rhfw/rhfw/resource"
)

const (
	libraryKind = "glfw.library"
	windowKind  = "glfw.window"
)

// library is held by every loaded window; GLFW is initialised with the first
// and terminated with the last.
var library = resource.New(libraryKind, resource.Funcs{
	LoadFunc: glfw.Init,
	FreeFunc: glfw.Terminate,
})

// Window is a GLFW window without a client API, meant to carry a WebGPU
// surface.
type Window struct {
	*resource.Shareable

	cfg rhfw.WindowConfig
	win *glfw.Window
}

func NewWindow(cfg rhfw.WindowConfig) *Window {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "rhfw"
	}
	w := &Window{cfg: cfg}
	w.Shareable = resource.New(windowKind, resource.Funcs{
		LoadFunc: w.create,
		FreeFunc: w.destroy,
	})
	return w
}

func (w *Window) Config() rhfw.WindowConfig { return w.cfg }

// Handle returns the GLFW window, or nil while unloaded.
func (w *Window) Handle() *glfw.Window { return w.win }

func (w *Window) ShouldClose() bool {
	return w.win == nil || w.win.ShouldClose()
}

// FramebufferSize is the drawable size in pixels.
func (w *Window) FramebufferSize() (width, height int) {
	if w.win == nil {
		return 0, 0
	}
	return w.win.GetFramebufferSize()
}

// SurfaceDescriptor describes the window to wgpu.Instance.CreateSurface.
func (w *Window) SurfaceDescriptor() (*wgpu.SurfaceDescriptor, error) {
	if w.win == nil {
		return nil, errors.Errorf("glfwctx: window %q not created", w.cfg.Title)
	}
	return wgpuglfw.GetSurfaceDescriptor(w.win), nil
}

// PollEvents processes pending window events.
func PollEvents() {
	glfw.PollEvents()
}

func (w *Window) create() error {
	if err := rhfw.RequireMainThread("create window"); err != nil {
		return err
	}
	if err := library.Acquire(); err != nil {
		return errors.Wrap(err, "glfwctx: initialising glfw")
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(w.cfg.Width, w.cfg.Height, w.cfg.Title, nil, nil)
	if err != nil {
		library.Release()
		return errors.Wrapf(err, "glfwctx: creating window %q", w.cfg.Title)
	}
	w.win = win
	return nil
}

func (w *Window) destroy() {
	w.win.Destroy()
	w.win = nil
	library.Release()
}
