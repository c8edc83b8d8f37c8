package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	forecastsTotal *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	lastForecast   prometheus.Gauge
	latency        *prometheus.HistogramVec
	telemetryDrops *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		forecastsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricecast_forecasts_total",
				Help: "Total number of forecasts produced",
			},
			[]string{"horizon"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricecast_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastForecast: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pricecast_last_forecast_price",
				Help: "Final predicted price of the most recent forecast",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pricecast_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		telemetryDrops: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricecast_telemetry_dropped_total",
				Help: "Telemetry records dropped before reaching the export backend",
			},
			[]string{"kind"},
		),
	}
}

// RecordForecast records a completed forecast tagged by horizon.
func (r *Recorder) RecordForecast(horizon int) {
	r.forecastsTotal.WithLabelValues(strconv.Itoa(horizon)).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastForecast records the final predicted price of the latest forecast.
func (r *Recorder) RecordLastForecast(price float64) {
	r.lastForecast.Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordTelemetryDrop records a dropped telemetry record.
func (r *Recorder) RecordTelemetryDrop(kind string) {
	r.telemetryDrops.WithLabelValues(kind).Inc()
}
