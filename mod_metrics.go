package rhfw

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rhfw/rhfw/resource"
)

// MetricsModule reports resource transitions to prometheus. The metrics
// become the default resource observer until the App shuts down.
type MetricsModule struct {
	Namespace string
	// Registerer defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

func (mod MetricsModule) Install(app *App) {
	reg := mod.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := resource.NewMetrics(mod.Namespace)
	m.Register(reg)
	previous := resource.DefaultObserver()
	resource.SetDefaultObserver(m)
	app.addResources(m)
	app.OnShutdown(func() error {
		resource.SetDefaultObserver(previous)
		return nil
	})
}
