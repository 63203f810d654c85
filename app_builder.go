package rhfw

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{app: newApp(DefaultConfig())}
}

// WithConfig replaces the default configuration.
func (b *AppBuilder) WithConfig(cfg *Config) *AppBuilder {
	b.app.config = cfg

	return b
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

// Build installs the modules in order. Logging, platform, renderer and
// audio modules are added from the configuration for whatever the given
// modules left out.
func (b *AppBuilder) Build() (*App, error) {
	app := b.app
	cfg := app.config
	if cfg == nil {
		cfg = DefaultConfig()
		app.config = cfg
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !b.uses(isLoggingModule) {
		LoggingModule{Prefix: cfg.Log.Prefix, Debug: cfg.Debug, Format: cfg.Log.Format}.Install(app)
	}
	for _, module := range b.modules {
		module.Install(app)
	}
	if err := app.installErr.ErrorOrNil(); err != nil {
		return nil, err
	}
	if app.platform == nil {
		PlatformModule{Name: cfg.Platform}.Install(app)
	}
	if app.renderer == nil {
		RendererModule{Backend: cfg.RenderBackend}.Install(app)
	}
	if app.audio == nil {
		AudioModule{Backend: cfg.AudioBackend}.Install(app)
	}

	if err := app.installErr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return app, nil
}

func (b *AppBuilder) uses(match func(Module) bool) bool {
	for _, m := range b.modules {
		if match(m) {
			return true
		}
	}
	return false
}

func isLoggingModule(m Module) bool {
	switch m.(type) {
	case LoggingModule, *LoggingModule:
		return true
	}
	return false
}
