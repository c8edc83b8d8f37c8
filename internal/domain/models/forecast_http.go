package models

// Requests for forecast HTTP endpoints. Defined in domain for consistency and reuse.

// PredictRequest mirrors the public /api/predict body. Prices must cover at
// least the model window; deeper shape checks (window length, finiteness)
// belong to the engine, not the binding layer.
type PredictRequest struct {
	Prices       []float64 `json:"prices" validate:"required,min=1"`
	DaysAhead    int       `json:"days_ahead" validate:"gte=1,lte=365"`
	ActualPrices []float64 `json:"actual_prices,omitempty"`
}

// PredictResponse is the wire shape of a forecast result.
type PredictResponse struct {
	FuturePrices []float64 `json:"future_prices"`
	Accuracy     *float64  `json:"accuracy,omitempty"`
}

// PerformanceResponse wraps the latency log for /api/performance.
type PerformanceResponse struct {
	Performance []PerformanceRecord `json:"performance"`
}

// AccuracyResponse wraps the accuracy archive for /api/accuracy.
type AccuracyResponse struct {
	Comparisons []AccuracyRecord `json:"comparisons"`
}
