package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"PriceCast/internal/domain/models"
)

// LinearModel is a point-prediction model over a fixed-length normalized
// window: dot(weights, window) + bias. The engine treats it as opaque; only
// the window size contract matters.
type LinearModel struct {
	weights []float64
	bias    float64
}

type weightsFile struct {
	WindowSize int       `json:"window_size"`
	Weights    []float64 `json:"weights"`
	Bias       float64   `json:"bias"`
}

// Load reads model weights from a JSON file. The weights length must match
// the declared window size.
func Load(path string) (*LinearModel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	var wf weightsFile
	if err := json.Unmarshal(b, &wf); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if wf.WindowSize < 1 {
		return nil, fmt.Errorf("model window_size must be positive, got %d", wf.WindowSize)
	}
	if len(wf.Weights) != wf.WindowSize {
		return nil, fmt.Errorf("model has %d weights, window_size is %d", len(wf.Weights), wf.WindowSize)
	}
	for _, w := range wf.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("model weights contain non-finite value")
		}
	}

	return &LinearModel{weights: wf.Weights, bias: wf.Bias}, nil
}

// WindowSize returns the model's required input length.
func (m *LinearModel) WindowSize() int { return len(m.weights) }

// Predict returns the linear point prediction for a normalized window.
func (m *LinearModel) Predict(window []float64) (float64, error) {
	if len(window) != len(m.weights) {
		return 0, fmt.Errorf("window length %d, model expects %d", len(window), len(m.weights))
	}
	sum := m.bias
	for i, v := range window {
		sum += m.weights[i] * v
	}
	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 0, models.ErrNumericOverflow
	}
	return sum, nil
}
