package service

// Predictor is the opaque single-step model boundary. The window is in
// normalized space and always has exactly WindowSize elements; the returned
// scalar is the model's point prediction, nominally in [0,1].
//
// Implementations are not assumed to be safe for concurrent calls; callers
// hold the serialized adapter from internal/services/model instead of a raw
// model.
type Predictor interface {
	WindowSize() int
	Predict(window []float64) (float64, error)
}
