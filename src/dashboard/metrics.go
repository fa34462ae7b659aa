package dashboard

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Computation outcomes recorded in ams_dashboard_computations_total.
const (
	OutcomeOK          = "ok"
	OutcomeInputError  = "input_error"
	OutcomeDomainError = "domain_error"
)

// Metrics holds the dashboard's Prometheus instruments on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	computations  *prometheus.CounterVec
	renderSeconds prometheus.Histogram
	requests      *prometheus.CounterVec
}

// NewMetrics registers the dashboard metrics. A nil registry gets a fresh one.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		computations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ams",
			Subsystem: "dashboard",
			Name:      "computations_total",
			Help:      "Selectivity computations by outcome.",
		}, []string{"outcome"}),
		renderSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ams",
			Subsystem: "dashboard",
			Name:      "render_seconds",
			Help:      "Time spent rendering chart PNGs.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ams",
			Subsystem: "dashboard",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}
}

func (m *Metrics) observeComputation(outcome string) {
	m.computations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeRender(d time.Duration) {
	m.renderSeconds.Observe(d.Seconds())
}

func (m *Metrics) observeRequest(route, code string) {
	m.requests.WithLabelValues(route, code).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
