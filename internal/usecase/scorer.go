package usecase

import (
	"math"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/telemetry"
)

// Scorer compares a forecast sequence against ground truth and archives each
// defined comparison in the telemetry store.
type Scorer struct {
	store *telemetry.Store
}

// NewScorer creates an accuracy scorer. store may be nil in tests that only
// care about the computed value.
func NewScorer(store *telemetry.Store) *Scorer {
	return &Scorer{store: store}
}

// Score truncates both sequences to the shorter length and returns the mean
// of per-element accuracy 1 - |actual-predicted|/actual as a percentage,
// clamped to [0,100].
//
// A zero-valued actual is a defined failure (ErrDegenerateGroundTruth), not
// a silent Inf. Zero overlap is also an error; the caller omits accuracy in
// that case rather than reporting a made-up number.
func (s *Scorer) Score(predicted, actual []float64) (float64, error) {
	n := len(predicted)
	if len(actual) < n {
		n = len(actual)
	}
	if n == 0 {
		return 0, models.ErrDegenerateGroundTruth
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		a := actual[i]
		if a == 0 {
			return 0, models.ErrDegenerateGroundTruth
		}
		p := predicted[i]
		if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(p) || math.IsInf(p, 0) {
			return 0, models.ErrNumericOverflow
		}
		sum += 1 - math.Abs(a-p)/math.Abs(a)
	}

	pct := sum / float64(n) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	if s.store != nil {
		s.store.RecordAccuracy(actual[:n], predicted[:n], pct)
	}
	return pct, nil
}
