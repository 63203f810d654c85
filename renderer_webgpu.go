package rhfw

import (
	"github.com/rhfw/rhfw/gpu"
	"github.com/rhfw/rhfw/resource"
)

// webgpuRenderer renders through WebGPU. Buffers and textures created with
// GPU() are tracked by its context.
type webgpuRenderer struct {
	ctx *gpu.Context
}

func newWebGPURenderer() (Renderer, error) {
	return &webgpuRenderer{
		ctx: gpu.NewContext("webgpu", func() (*gpu.Device, error) {
			return gpu.OpenDevice("rhfw")
		}),
	}, nil
}

// WebGPU is implemented by renderers exposing a WebGPU context.
type WebGPU interface {
	GPU() *gpu.Context
}

func (r *webgpuRenderer) Backend() RenderBackend { return RenderBackendWebGPU }

func (r *webgpuRenderer) GPU() *gpu.Context { return r.ctx }

func (r *webgpuRenderer) Init(app *App) error {
	if err := requireMainThread("webgpu init"); err != nil {
		return err
	}
	app.Logger().Infof("Opening WebGPU device")
	return r.ctx.Open()
}

func (r *webgpuRenderer) ContextTracker() *resource.Tracker { return r.ctx.Tracker() }

func (r *webgpuRenderer) LoseContext() error {
	if err := requireMainThread("lose webgpu context"); err != nil {
		return err
	}
	r.ctx.Lose()
	return nil
}

func (r *webgpuRenderer) RecreateContext() error {
	if err := requireMainThread("recreate webgpu context"); err != nil {
		return err
	}
	return r.ctx.Open()
}

func (r *webgpuRenderer) Close() error {
	r.ctx.Lose()
	return nil
}
