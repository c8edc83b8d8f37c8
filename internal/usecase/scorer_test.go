package usecase

import (
	"errors"
	"math"
	"testing"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/telemetry"
)

func TestScorePerfectMatch(t *testing.T) {
	s := NewScorer(nil)
	got, err := s.Score([]float64{10, 20, 30}, []float64{10, 20, 30})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got != 100 {
		t.Fatalf("score = %v, want 100", got)
	}
}

func TestScoreZeroActualIsDegenerate(t *testing.T) {
	s := NewScorer(nil)
	if _, err := s.Score([]float64{1, 2}, []float64{0, 10}); !errors.Is(err, models.ErrDegenerateGroundTruth) {
		t.Fatalf("expected degenerate ground truth, got %v", err)
	}
}

func TestScoreEmptyOverlapIsDegenerate(t *testing.T) {
	s := NewScorer(nil)
	if _, err := s.Score(nil, []float64{1, 2}); !errors.Is(err, models.ErrDegenerateGroundTruth) {
		t.Fatalf("expected degenerate ground truth, got %v", err)
	}
	if _, err := s.Score([]float64{1, 2}, nil); !errors.Is(err, models.ErrDegenerateGroundTruth) {
		t.Fatalf("expected degenerate ground truth, got %v", err)
	}
}

func TestScoreTruncatesToShorter(t *testing.T) {
	s := NewScorer(nil)
	// extra predicted values past the ground truth are ignored
	got, err := s.Score([]float64{10, 20, 999, 999}, []float64{10, 20})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got != 100 {
		t.Fatalf("score = %v, want 100", got)
	}
}

func TestScoreClampsToRange(t *testing.T) {
	s := NewScorer(nil)
	// wildly off forecast drives raw accuracy negative; report floors at 0
	got, err := s.Score([]float64{1000}, []float64{1})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got != 0 {
		t.Fatalf("score = %v, want 0", got)
	}
}

func TestScoreKnownValue(t *testing.T) {
	s := NewScorer(nil)
	// |100-90|/100 = 10% off -> 90% accurate
	got, err := s.Score([]float64{90}, []float64{100})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if math.Abs(got-90) > 1e-9 {
		t.Fatalf("score = %v, want 90", got)
	}
}

func TestScoreNonFinite(t *testing.T) {
	s := NewScorer(nil)
	if _, err := s.Score([]float64{math.NaN()}, []float64{1}); !errors.Is(err, models.ErrNumericOverflow) {
		t.Fatalf("expected numeric overflow, got %v", err)
	}
	if _, err := s.Score([]float64{1}, []float64{math.Inf(1)}); !errors.Is(err, models.ErrNumericOverflow) {
		t.Fatalf("expected numeric overflow, got %v", err)
	}
}

func TestScoreArchivesRecord(t *testing.T) {
	store := telemetry.NewStore()
	s := NewScorer(store)

	if _, err := s.Score([]float64{90, 110, 5}, []float64{100, 100}); err != nil {
		t.Fatalf("score: %v", err)
	}

	recs := store.ListAccuracy()
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if len(rec.RealValues) != 2 || len(rec.PredictedValues) != 2 {
		t.Fatalf("expected truncated slices, got %d/%d", len(rec.RealValues), len(rec.PredictedValues))
	}
	if math.Abs(rec.AccuracyPercent-90) > 1e-9 {
		t.Fatalf("archived accuracy = %v, want 90", rec.AccuracyPercent)
	}

	// a failed comparison archives nothing
	if _, err := s.Score([]float64{1}, []float64{0}); err == nil {
		t.Fatalf("expected error")
	}
	if got := len(store.ListAccuracy()); got != 1 {
		t.Fatalf("expected 1 record after failure, got %d", got)
	}
}
