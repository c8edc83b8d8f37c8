package models

import "errors"

// Forecast failure taxonomy. All are synchronous and local; the HTTP layer
// translates them to wire responses, nothing in the core retries.
var (
	// ErrInsufficientHistory: history shorter than the model's window size.
	ErrInsufficientHistory = errors.New("history shorter than model window")

	// ErrInvalidHorizon: requested horizon below 1.
	ErrInvalidHorizon = errors.New("horizon must be at least 1")

	// ErrModelUnavailable: no model was successfully loaded at startup.
	ErrModelUnavailable = errors.New("prediction model not available")

	// ErrDegenerateGroundTruth: a zero-valued actual during accuracy scoring.
	ErrDegenerateGroundTruth = errors.New("ground truth contains zero value")

	// ErrNumericOverflow: non-finite value in a window or prediction.
	ErrNumericOverflow = errors.New("non-finite value in numeric input")
)
