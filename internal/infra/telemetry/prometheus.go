package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"apidir/internal/domain"
)

type PrometheusMetrics struct {
	fetchDuration  *prometheus.HistogramVec
	fetchTotal     *prometheus.CounterVec
	staleResponses *prometheus.CounterVec
	navigations    *prometheus.CounterVec
	transitions    *prometheus.CounterVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "apidir_fetch_duration_seconds",
				Help:    "Duration of directory service fetches in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"kind", "status"},
		),
		fetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apidir_fetch_total",
				Help: "Total number of directory service fetches",
			},
			[]string{"kind", "status"},
		),
		staleResponses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apidir_stale_responses_total",
				Help: "Fetch responses dropped because a newer request superseded them",
			},
			[]string{"slot"},
		),
		navigations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apidir_navigations_total",
				Help: "Total number of route changes",
			},
			[]string{"route"},
		),
		transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apidir_selection_transitions_total",
				Help: "Selection state transitions",
			},
			[]string{"from", "to"},
		),
	}
}

func (p *PrometheusMetrics) ObserveFetch(metric domain.FetchMetric) {
	kind := string(metric.Kind)
	status := string(metric.Status)
	p.fetchDuration.WithLabelValues(kind, status).Observe(metric.Duration.Seconds())
	p.fetchTotal.WithLabelValues(kind, status).Inc()
}

func (p *PrometheusMetrics) ObserveStaleResponse(slot string) {
	p.staleResponses.WithLabelValues(slot).Inc()
}

func (p *PrometheusMetrics) ObserveNavigation(route string) {
	p.navigations.WithLabelValues(route).Inc()
}

func (p *PrometheusMetrics) ObserveTransition(from, to string) {
	p.transitions.WithLabelValues(from, to).Inc()
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
