package rhfw

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"

	"github.com/rhfw/rhfw/resource"
)

// Renderer owns the render context. Every resource created on the context is
// registered with ContextTracker so it can be dropped when the context is lost
// and rebuilt when it is recreated.
//
// Init, LoseContext and RecreateContext must run on the application main
// thread once one is recorded.
type Renderer interface {
	Backend() RenderBackend
	Init(app *App) error
	ContextTracker() *resource.Tracker
	// LoseContext frees every tracked handle. Reference counts are kept.
	LoseContext() error
	// RecreateContext reloads every tracked resource that is still held.
	RecreateContext() error
	Close() error
}

// RendererFactory creates an uninitialized renderer.
type RendererFactory func() (Renderer, error)

// NewRenderer creates a renderer for backend b through the backend table.
func NewRenderer(b RenderBackend) (Renderer, error) {
	if b.Valid() && !b.AvailableOn(runtime.GOOS) {
		return nil, errors.Wrapf(ErrBackendNotAvailable, "%s on %s", b, runtime.GOOS)
	}
	return newRenderBackend(b)
}

// UseRenderer installs r as the App's only renderer.
func (app *App) UseRenderer(r Renderer) *App {
	name := r.Backend().String()
	ensureSingleRenderer(app, name)
	app.renderer = r
	app.Logger().Infof("Renderer selected: %s", name)
	return app
}

// RendererModule selects the renderer by backend.
type RendererModule struct {
	Backend RenderBackend
}

func (mod RendererModule) Install(app *App) {
	r, err := NewRenderer(mod.Backend)
	if err != nil {
		app.installFailed(err)
		return
	}
	app.UseRenderer(r)
}

// nullRenderer draws nothing. Its context can still be lost and recreated,
// which drives the tracked resources exactly like a real device would.
type nullRenderer struct {
	mu      sync.Mutex
	tracker *resource.Tracker
	lost    bool
	logger  Logger
}

func newNullRenderer() (Renderer, error) {
	return &nullRenderer{
		tracker: resource.NewTracker("null"),
		logger:  NewNopLogger(),
	}, nil
}

func (r *nullRenderer) Backend() RenderBackend { return RenderBackendNull }

func (r *nullRenderer) Init(app *App) error {
	if err := requireMainThread("null renderer init"); err != nil {
		return err
	}
	r.mu.Lock()
	r.logger = app.Logger()
	r.lost = false
	r.mu.Unlock()
	return nil
}

func (r *nullRenderer) ContextTracker() *resource.Tracker { return r.tracker }

// ContextLost reports whether LoseContext ran without a later recreation.
func (r *nullRenderer) ContextLost() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lost
}

func (r *nullRenderer) LoseContext() error {
	if err := requireMainThread("lose render context"); err != nil {
		return err
	}
	freed := r.tracker.InvalidateAll()
	r.mu.Lock()
	r.lost = true
	r.mu.Unlock()
	r.logger.Warnf("Render context lost, %d resources freed", freed)
	return nil
}

func (r *nullRenderer) RecreateContext() error {
	if err := requireMainThread("recreate render context"); err != nil {
		return err
	}
	r.mu.Lock()
	r.lost = false
	r.mu.Unlock()
	r.logger.Infof("Render context recreated, restoring %d resources", r.tracker.Len())
	return r.tracker.RestoreAll()
}

func (r *nullRenderer) Close() error {
	r.tracker.InvalidateAll()
	return nil
}
