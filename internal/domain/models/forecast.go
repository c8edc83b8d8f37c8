package models

import "time"

// ForecastRequest is the engine-facing request: a chronological price history,
// the number of future steps to produce, and optional ground truth to score
// the forecast against.
type ForecastRequest struct {
	History     []float64
	Horizon     int
	GroundTruth []float64
}

// ForecastResult holds the de-normalized forecast sequence. Accuracy is set
// only when ground truth was supplied and scoring was defined.
type ForecastResult struct {
	FuturePrices []float64
	Accuracy     *float64
	Timestamp    time.Time
}

// PerformanceRecord is one request latency sample. Horizon is 0 when the
// sample was not tagged with a requested horizon. Immutable once appended.
type PerformanceRecord struct {
	Path        string  `json:"path"`
	ProcessTime float64 `json:"process_time"`
	Horizon     int     `json:"horizon,omitempty"`
}

// AccuracyRecord archives one forecast-vs-actual comparison. Real and
// Predicted are truncated to the shorter of the two inputs before archiving.
// Immutable once appended.
type AccuracyRecord struct {
	RealValues      []float64 `json:"real_values"`
	PredictedValues []float64 `json:"predicted_values"`
	AccuracyPercent float64   `json:"accuracy_percent"`
}
