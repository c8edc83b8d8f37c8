package model

import (
	"sync"

	"PriceCast/internal/domain/service"
)

// Serialized wraps a Predictor with a mutex so at most one inference runs at
// a time. Inference engines often carry internal mutable state; the adapter
// makes the model the single serialization point instead of requiring every
// implementation to be reentrant.
type Serialized struct {
	mu    sync.Mutex
	inner service.Predictor
}

// Serialize wraps p. A nil p yields a nil adapter, which callers treat as
// model-unavailable.
func Serialize(p service.Predictor) *Serialized {
	if p == nil {
		return nil
	}
	return &Serialized{inner: p}
}

func (s *Serialized) WindowSize() int { return s.inner.WindowSize() }

func (s *Serialized) Predict(window []float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Predict(window)
}

var _ service.Predictor = (*Serialized)(nil)
