package main

import (
	"context"
	"time"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rhfw/rhfw"
	"github.com/rhfw/rhfw/glfwctx"
	"github.com/rhfw/rhfw/resource"
)

// DemoOptions defines the options of the demo command.
type DemoOptions struct {
	// ConfigPath is the path to the engine config yaml.
	// +optional
	ConfigPath string
	// Window opens a window and runs until it is closed.
	Window bool
	// Metrics registers the resource metrics with the default prometheus registry.
	Metrics bool

	config *rhfw.Config
}

func NewDemoCommand(ctx context.Context) *cobra.Command {
	opts := &DemoOptions{}
	cmd := &cobra.Command{
		Use:          "rhfwdemo",
		Short:        "starts an rhfw app and exercises its resources",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(); err != nil {
				return err
			}
			return opts.Run(ctx)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

// AddFlags adds flags for the options to a flagset
func (o *DemoOptions) AddFlags(fs *pflag.FlagSet) {
	if fs == nil {
		fs = pflag.CommandLine
	}
	fs.StringVarP(&o.ConfigPath, "config", "c", "", "path to the engine config")
	fs.BoolVar(&o.Window, "window", false, "open a window and run until it is closed")
	fs.BoolVar(&o.Metrics, "metrics", false, "export resource metrics")
}

func (o *DemoOptions) Complete() error {
	if len(o.ConfigPath) == 0 {
		o.config = rhfw.DefaultConfig()
		return nil
	}
	cfg, err := rhfw.LoadConfig(osfs.New(), o.ConfigPath)
	if err != nil {
		return errors.Wrapf(err, "unable to load config from %s", o.ConfigPath)
	}
	o.config = cfg
	return nil
}

func (o *DemoOptions) Run(ctx context.Context) error {
	builder := rhfw.NewAppBuilder().WithConfig(o.config)
	if o.Metrics {
		builder.UseModule(rhfw.MetricsModule{Namespace: "rhfw"})
	}
	app, err := builder.Build()
	if err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := app.Shutdown(); err != nil {
			app.Logger().Errorf("Shutdown: %v", err)
		}
	}()
	log := app.Logger()

	if err := o.touchStorage(app); err != nil {
		return err
	}

	random := rhfw.NewRandomContext()
	rnd, err := resource.NewAuto(random)
	if err != nil {
		return err
	}
	defer rnd.Release()
	seed, err := rnd.Get().Uint32()
	if err != nil {
		return err
	}
	log.Infof("Session seed %08x", seed)

	if !o.Window {
		return nil
	}
	return o.runWindow(ctx, app)
}

// touchStorage records the launch time in the application data directory.
func (o *DemoOptions) touchStorage(app *rhfw.App) error {
	dir, err := app.StorageDirectory(rhfw.StorageDirectoryApplicationData)
	if err != nil {
		return err
	}
	stamp := []byte(time.Now().UTC().Format(time.RFC3339))
	if err := dir.WriteFile("last-launch", stamp); err != nil {
		return err
	}

	asset, err := resource.NewAuto(dir.Asset("last-launch"))
	if err != nil {
		return err
	}
	defer asset.Release()
	data, err := asset.Get().Bytes()
	if err != nil {
		return err
	}
	app.Logger().Infof("Storage at %s, last launch %s", dir.Path, data)
	return nil
}

func (o *DemoOptions) runWindow(ctx context.Context, app *rhfw.App) error {
	win, err := resource.NewAuto(glfwctx.NewWindow(o.config.Window))
	if err != nil {
		return err
	}
	defer win.Release()

	r := app.Renderer()
	if r == nil {
		return errors.New("no renderer installed")
	}
	lost := false
	for !win.Get().ShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		glfwctx.PollEvents()
		w, h := win.Get().FramebufferSize()
		minimised := w == 0 || h == 0
		switch {
		case minimised && !lost:
			// drop the context until the window comes back
			if err := r.LoseContext(); err != nil {
				return err
			}
			lost = true
		case !minimised && lost:
			if err := r.RecreateContext(); err != nil {
				return err
			}
			lost = false
		}
	}
	return nil
}
