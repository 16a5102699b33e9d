// Package telemetry exports component lifecycle metrics to Prometheus.
package telemetry

import (
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/go-drift/vapor/pkg/component"
)

// MetricsConfig configures the metrics collector.
type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

// Metrics implements component.Observer on top of a private Prometheus
// registry.
type Metrics struct {
	config MetricsConfig

	instancesCreated   prometheus.Counter
	instancesMounted   prometheus.Gauge
	instancesUnmounted prometheus.Counter
	hookInvocations    *prometheus.CounterVec
	attrsRejections    prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates a metrics collector. A disabled collector accepts every
// notification and records nothing.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		return &Metrics{config: cfg}, nil
	}

	namespace := cfg.Namespace
	registry := prometheus.NewRegistry()

	m := &Metrics{
		config:   cfg,
		registry: registry,

		instancesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instances_created_total",
			Help:      "Total number of component instances created",
		}),
		instancesMounted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "instances_mounted",
			Help:      "Current number of mounted component instances",
		}),
		instancesUnmounted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instances_unmounted_total",
			Help:      "Total number of component instances unmounted",
		}),
		hookInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hook_invocations_total",
			Help:      "Total number of lifecycle hook invocations",
		}, []string{"phase"}),
		attrsRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attrs_write_rejections_total",
			Help:      "Total number of rejected writes through the attrs view",
		}),
	}

	collectors := []prometheus.Collector{
		m.instancesCreated,
		m.instancesMounted,
		m.instancesUnmounted,
		m.hookInvocations,
		m.attrsRejections,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Enabled reports whether the collector records anything.
func (m *Metrics) Enabled() bool {
	return m.config.Enabled
}

// Registry returns the underlying registry, or nil when disabled.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving the metrics.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteText writes the metrics in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	if m.registry == nil {
		return nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// InstanceCreated implements component.Observer.
func (m *Metrics) InstanceCreated(*component.Instance) {
	if m.registry != nil {
		m.instancesCreated.Inc()
	}
}

// InstanceMounted implements component.Observer.
func (m *Metrics) InstanceMounted(*component.Instance) {
	if m.registry != nil {
		m.instancesMounted.Inc()
	}
}

// InstanceUnmounted implements component.Observer.
func (m *Metrics) InstanceUnmounted(*component.Instance) {
	if m.registry != nil {
		m.instancesMounted.Dec()
		m.instancesUnmounted.Inc()
	}
}

// HookInvoked implements component.Observer.
func (m *Metrics) HookInvoked(_ *component.Instance, phase component.Phase) {
	if m.registry != nil {
		m.hookInvocations.WithLabelValues(phase.String()).Inc()
	}
}

// AttrsWriteRejected implements component.Observer.
func (m *Metrics) AttrsWriteRejected(*component.Instance) {
	if m.registry != nil {
		m.attrsRejections.Inc()
	}
}

var _ component.Observer = (*Metrics)(nil)
