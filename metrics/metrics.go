// Package metrics exports osu! API request counters and latencies to
// Prometheus.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/s0up4200/osu-stats/osu"
)

// Observer records every API call as Prometheus metrics. It implements
// osu.Observer.
type Observer struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight *prometheus.GaugeVec
}

var _ osu.Observer = (*Observer)(nil)

// NewObserver creates an Observer whose collectors live on their own registry.
func NewObserver() *Observer {
	o := &Observer{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "osu_api_requests_total",
			Help: "Total number of osu! API requests by endpoint and result",
		}, []string{"endpoint", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "osu_api_request_duration_seconds",
			Help:    "osu! API request duration in seconds, including decoding",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "osu_api_requests_in_flight",
			Help: "Number of osu! API requests currently in flight",
		}, []string{"endpoint"}),
	}
	o.registry.MustRegister(o.requests, o.duration, o.inFlight)
	return o
}

// Registry returns the registry holding the observer's collectors.
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

// OnRequestStart implements osu.Observer.
func (o *Observer) OnRequestStart(endpoint string) {
	o.inFlight.WithLabelValues(endpoint).Inc()
}

// OnRequestEnd implements osu.Observer.
func (o *Observer) OnRequestEnd(endpoint string, duration time.Duration, err error) {
	o.inFlight.WithLabelValues(endpoint).Dec()
	o.duration.WithLabelValues(endpoint).Observe(duration.Seconds())
	o.requests.WithLabelValues(endpoint, Result(err)).Inc()
}

// WriteTextfile writes the current metrics in the text exposition format,
// for node_exporter's textfile collector. The file is replaced atomically.
func (o *Observer) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, o.registry)
}

// Result maps an error to the result label: "success", "canceled", or the
// osu.Kind of the failure.
func Result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, osu.ErrMissingAPIKey):
		return "missing_key"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	switch osu.KindOf(err) {
	case osu.KindTransport:
		return "transport"
	case osu.KindAPI:
		return "api"
	case osu.KindDecode:
		return "decode"
	case osu.KindInvalidEnumCode:
		return "invalid_enum_code"
	case osu.KindInvalidURI:
		return "invalid_uri"
	case osu.KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
