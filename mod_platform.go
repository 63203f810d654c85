package rhfw

// PlatformModule binds the platform registered under Name. An empty name
// selects the native platform of the build.
type PlatformModule struct {
	Name string
	// Platform, when set, is bound instead of creating one from the registry.
	Platform Platform
}

func (mod PlatformModule) Install(app *App) {
	p := mod.Platform
	if p == nil {
		name := mod.Name
		if name == "" {
			name = NativePlatformName()
		}
		var err error
		p, err = NewPlatform(name)
		if err != nil {
			app.installFailed(err)
			return
		}
	}
	ensureSinglePlatform(app, p.Name())
	app.platform = p
	app.Logger().Infof("Platform selected: %s", p.Name())
}
