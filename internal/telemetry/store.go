package telemetry

import (
	"sync"

	"PriceCast/internal/domain/models"
)

// Sink observes records as they are appended. Implementations must not
// block; the store calls them synchronously under no lock but treats any
// slowness or failure inside a sink as the sink's problem.
type Sink interface {
	OnPerformance(rec models.PerformanceRecord)
	OnAccuracy(rec models.AccuracyRecord)
}

// Store holds the process-lifetime telemetry logs: per-request latency
// samples and archived accuracy comparisons. Both logs are append-only with
// no eviction; memory grows for the life of the process and nothing persists
// across restarts.
type Store struct {
	mu    sync.Mutex
	perf  []models.PerformanceRecord
	acc   []models.AccuracyRecord
	sinks []Sink
}

// NewStore creates an empty telemetry store.
func NewStore(sinks ...Sink) *Store {
	return &Store{sinks: sinks}
}

// RecordLatency appends one latency sample. Horizon 0 means untagged.
func (s *Store) RecordLatency(path string, seconds float64, horizon int) {
	rec := models.PerformanceRecord{Path: path, ProcessTime: seconds, Horizon: horizon}
	s.mu.Lock()
	s.perf = append(s.perf, rec)
	s.mu.Unlock()

	for _, sink := range s.sinks {
		sink.OnPerformance(rec)
	}
}

// RecordAccuracy archives one forecast-vs-actual comparison. Both slices are
// copied; the caller keeps ownership of its arguments.
func (s *Store) RecordAccuracy(real, predicted []float64, accuracyPercent float64) {
	rec := models.AccuracyRecord{
		RealValues:      append([]float64(nil), real...),
		PredictedValues: append([]float64(nil), predicted...),
		AccuracyPercent: accuracyPercent,
	}
	s.mu.Lock()
	s.acc = append(s.acc, rec)
	s.mu.Unlock()

	for _, sink := range s.sinks {
		sink.OnAccuracy(rec)
	}
}

// ListPerformance returns a point-in-time copy of the latency log. Later
// appends are not visible through a returned snapshot.
func (s *Store) ListPerformance() []models.PerformanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PerformanceRecord(nil), s.perf...)
}

// ListAccuracy returns a point-in-time copy of the accuracy archive.
func (s *Store) ListAccuracy() []models.AccuracyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AccuracyRecord(nil), s.acc...)
}
