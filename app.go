package rhfw

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Module installs a piece of the engine into an App.
type Module interface {
	Install(app *App)
}

// App binds exactly one platform, at most one renderer and at most one audio
// manager, plus any resources modules install.
type App struct {
	mu         sync.Mutex
	config     *Config
	resources  map[reflect.Type]any
	platform   Platform
	renderer   Renderer
	audio      AudioManager
	installErr *multierror.Error
	onShutdown []func() error
	started    bool
}

func newApp(cfg *Config) *App {
	return &App{
		config:    cfg,
		resources: make(map[reflect.Type]any),
	}
}

func (app *App) Config() *Config { return app.config }

func (app *App) Platform() Platform { return app.platform }

// Renderer returns the installed renderer, or nil.
func (app *App) Renderer() Renderer { return app.renderer }

// Audio returns the installed audio manager, or nil.
func (app *App) Audio() AudioManager { return app.audio }

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// AddResource installs a module-defined resource. Resources are keyed by
// type; installing a second value of the same type panics.
func (app *App) AddResource(resource any) *App {
	return app.addResources(resource)
}

// Resource looks up the resource of type T an earlier module installed.
func Resource[T any](app *App) (*T, bool) {
	res, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	typed, ok := res.(*T)
	return typed, ok
}

// installFailed records an error a module hit during Install. Build reports
// all of them.
func (app *App) installFailed(err error) {
	app.installErr = multierror.Append(app.installErr, err)
}

// OnShutdown registers fn to run during Shutdown, after the audio manager,
// renderer and platform went down. Hooks run in reverse registration order.
func (app *App) OnShutdown(fn func() error) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.onShutdown = append(app.onShutdown, fn)
}

// Start initializes the platform, then the renderer, then the audio manager.
// If a step fails everything already started is torn down again.
func (app *App) Start(ctx context.Context) error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.started {
		return nil
	}
	if app.platform == nil {
		return errors.Wrap(ErrUnknownPlatform, "no platform installed")
	}
	log := app.Logger()

	if err := app.platform.Initialize(app); err != nil {
		return errors.Wrapf(err, "initializing platform %s", app.platform.Name())
	}
	if app.renderer != nil {
		if err := app.renderer.Init(app); err != nil {
			app.platform.Destroy()
			return errors.Wrapf(err, "initializing %s renderer", app.renderer.Backend())
		}
	}
	if app.audio != nil {
		if err := app.audio.Start(ctx, app); err != nil {
			if app.renderer != nil {
				_ = app.renderer.Close()
			}
			app.platform.Destroy()
			return errors.Wrapf(err, "starting %s audio", app.audio.Backend())
		}
	}
	app.started = true
	log.Infof("App %s started on %s", app.config.AppName, app.platform.Name())
	return nil
}

func (app *App) Started() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.started
}

// Shutdown stops everything Start brought up, in reverse order, and runs the
// shutdown hooks. Every failure is reported.
func (app *App) Shutdown() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if !app.started {
		return nil
	}
	var result *multierror.Error
	if app.audio != nil {
		if err := app.audio.Close(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "closing audio"))
		}
	}
	if app.renderer != nil {
		if err := app.renderer.Close(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "closing renderer"))
		}
	}
	app.platform.Destroy()
	for i := len(app.onShutdown) - 1; i >= 0; i-- {
		if err := app.onShutdown[i](); err != nil {
			result = multierror.Append(result, err)
		}
	}
	app.started = false
	app.Logger().Infof("App %s shut down", app.config.AppName)
	return result.ErrorOrNil()
}

// StorageDirectory resolves dir through the platform. The App must be started.
func (app *App) StorageDirectory(dir StorageDirectory) (*StorageDirectoryDescriptor, error) {
	if !app.Started() {
		return nil, ErrNotStarted
	}
	return app.platform.StorageDirectory(dir)
}
