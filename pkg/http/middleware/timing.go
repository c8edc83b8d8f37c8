package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// HeaderProcessTime carries the wall-clock processing time in seconds.
const HeaderProcessTime = "X-Process-Time"

// HorizonContextKey is set by forecast handlers so the timing middleware can
// tag the latency sample with the requested horizon.
const HorizonContextKey = "forecast_horizon"

// RecordFunc receives one completed request's timing sample.
type RecordFunc func(path string, seconds float64, horizon int)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"route", "method", "status"},
	)

	httpInFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "Current number of in-flight HTTP requests",
		},
		[]string{"route", "method"},
	)

	regOnce sync.Once
)

// Timing measures every request, sets the X-Process-Time header, records
// Prometheus metrics with the templated route as label, and hands a latency
// sample to record for the tracked paths. record may be nil.
func Timing(record RecordFunc, trackedPaths ...string) echo.MiddlewareFunc {
	regOnce.Do(func() {
		prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpInFlight)
	})

	tracked := make(map[string]bool, len(trackedPaths))
	for _, p := range trackedPaths {
		tracked[p] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// header must be in place before the first body write
			c.Response().Before(func() {
				elapsed := time.Since(start).Seconds()
				c.Response().Header().Set(HeaderProcessTime, strconv.FormatFloat(elapsed, 'f', -1, 64))
			})

			route := c.Path()
			method := c.Request().Method
			httpInFlight.WithLabelValues(route, method).Inc()

			err := next(c)

			elapsed := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			httpRequestsTotal.WithLabelValues(route, method, status).Inc()
			httpRequestDuration.WithLabelValues(route, method, status).Observe(elapsed)
			httpInFlight.WithLabelValues(route, method).Dec()

			if record != nil && tracked[route] {
				horizon := 0
				if v, ok := c.Get(HorizonContextKey).(int); ok {
					horizon = v
				}
				record(route, elapsed, horizon)
			}

			return err
		}
	}
}
