package usecase

import (
	"context"
	"math"
	"time"

	"PriceCast/internal/domain/models"
	drepo "PriceCast/internal/domain/repository"
	"PriceCast/internal/domain/service"
	"PriceCast/internal/services/scaling"
)

// Forecaster is the recursive multi-step forecast engine. It normalizes the
// request's history, drives the predictor one step at a time rolling the
// window forward on its own outputs, de-normalizes the result, and scores it
// against ground truth when supplied.
type Forecaster struct {
	predictor  service.Predictor
	scorer     *Scorer
	metrics    drepo.Metrics
	windowSize int
}

// NewForecaster creates the engine. predictor may be nil when no model was
// loaded at startup; every forecast then fails with ErrModelUnavailable.
// windowSize is the model's required input length W.
func NewForecaster(
	predictor service.Predictor,
	scorer *Scorer,
	metrics drepo.Metrics,
	windowSize int,
) *Forecaster {
	return &Forecaster{
		predictor:  predictor,
		scorer:     scorer,
		metrics:    metrics,
		windowSize: windowSize,
	}
}

// WindowSize returns the engine's configured window length W.
func (f *Forecaster) WindowSize() int { return f.windowSize }

// Available reports whether a model is loaded.
func (f *Forecaster) Available() bool { return f.predictor != nil }

// Forecast runs one forecast request to completion. Preconditions are
// checked in order: history length, horizon, model availability. The scaling
// context is fit once on the incoming history and reused for the whole
// horizon, never re-fit on a window holding prior predictions.
func (f *Forecaster) Forecast(ctx context.Context, req models.ForecastRequest) (models.ForecastResult, error) {
	var result models.ForecastResult

	if len(req.History) < f.windowSize {
		f.metrics.RecordError("insufficient_history")
		return result, models.ErrInsufficientHistory
	}
	if req.Horizon < 1 {
		f.metrics.RecordError("invalid_horizon")
		return result, models.ErrInvalidHorizon
	}
	if f.predictor == nil {
		f.metrics.RecordError("model_unavailable")
		return result, models.ErrModelUnavailable
	}

	start := time.Now()

	sctx, err := scaling.Fit(req.History)
	if err != nil {
		f.metrics.RecordError("numeric_overflow")
		return result, err
	}

	// initial window: trailing W observations, normalized
	window := scaling.TransformSeries(req.History[len(req.History)-f.windowSize:], sctx)

	normalized := make([]float64, 0, req.Horizon)
	for i := 0; i < req.Horizon; i++ {
		p, err := f.predictor.Predict(window)
		if err != nil {
			f.metrics.RecordError("predict")
			return result, err
		}
		if math.IsNaN(p) || math.IsInf(p, 0) {
			f.metrics.RecordError("numeric_overflow")
			return result, models.ErrNumericOverflow
		}
		normalized = append(normalized, p)

		// roll forward: drop the oldest, append the prediction
		window = append(window[1:], p)
	}

	result.FuturePrices = scaling.InverseSeries(normalized, sctx)
	result.Timestamp = time.Now()

	if len(req.GroundTruth) > 0 {
		acc, err := f.scorer.Score(result.FuturePrices, req.GroundTruth)
		if err != nil {
			f.metrics.RecordError("degenerate_ground_truth")
			return models.ForecastResult{}, err
		}
		result.Accuracy = &acc
	}

	f.metrics.RecordForecast(req.Horizon)
	f.metrics.RecordLastForecast(result.FuturePrices[len(result.FuturePrices)-1])
	f.metrics.RecordLatency("forecast", time.Since(start).Seconds())

	return result, nil
}
