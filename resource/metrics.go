package resource

import "github.com/prometheus/client_golang/prometheus"

const resourceSubsystemName = "resource"

// Metrics is an Observer exporting resource transitions to prometheus.
type Metrics struct {
	// LoadedResources discloses the number of loaded handles per kind
	LoadedResources *prometheus.GaugeVec
	// Loads discloses the number of successful loads per kind
	Loads *prometheus.CounterVec
	// Frees discloses the number of freed handles per kind
	Frees *prometheus.CounterVec
	// LoadFailures discloses the number of failed loads per kind
	LoadFailures *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		LoadedResources: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: resourceSubsystemName,
				Name:      "loaded",
				Help:      "Number of resource handles currently loaded.",
			},
			[]string{"kind"},
		),
		Loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: resourceSubsystemName,
				Name:      "loads_total",
				Help:      "Total number of successful resource loads.",
			},
			[]string{"kind"},
		),
		Frees: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: resourceSubsystemName,
				Name:      "frees_total",
				Help:      "Total number of freed resource handles.",
			},
			[]string{"kind"},
		),
		LoadFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: resourceSubsystemName,
				Name:      "load_failures_total",
				Help:      "Total number of failed resource loads.",
			},
			[]string{"kind"},
		),
	}
}

// Register registers the resource metrics with a given prometheus registerer.
func (m *Metrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(m.LoadedResources)
	reg.MustRegister(m.Loads)
	reg.MustRegister(m.Frees)
	reg.MustRegister(m.LoadFailures)
}

func (m *Metrics) Loaded(kind string) {
	m.LoadedResources.WithLabelValues(kind).Inc()
	m.Loads.WithLabelValues(kind).Inc()
}

func (m *Metrics) Freed(kind string) {
	m.LoadedResources.WithLabelValues(kind).Dec()
	m.Frees.WithLabelValues(kind).Inc()
}

func (m *Metrics) LoadFailed(kind string) {
	m.LoadFailures.WithLabelValues(kind).Inc()
}
