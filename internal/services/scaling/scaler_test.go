package scaling

import (
	"errors"
	"math"
	"testing"

	"PriceCast/internal/domain/models"
)

func TestFitAndRoundTrip(t *testing.T) {
	window := []float64{100, 150, 125, 110, 140}
	ctx, err := Fit(window)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if ctx.Min != 100 || ctx.Max != 150 {
		t.Fatalf("unexpected bounds: %+v", ctx)
	}
	for _, v := range window {
		n := Transform(v, ctx)
		if n < 0 || n > 1 {
			t.Fatalf("normalized value out of range: %v", n)
		}
		back := Inverse(n, ctx)
		if math.Abs(back-v) > 1e-9 {
			t.Fatalf("round trip %v -> %v", v, back)
		}
	}
}

func TestFitEmptyWindow(t *testing.T) {
	if _, err := Fit(nil); !errors.Is(err, models.ErrInsufficientHistory) {
		t.Fatalf("expected insufficient history, got %v", err)
	}
}

func TestFitNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Fit([]float64{1, bad, 3}); !errors.Is(err, models.ErrNumericOverflow) {
			t.Fatalf("expected overflow for %v, got %v", bad, err)
		}
	}
}

func TestDegenerateWindow(t *testing.T) {
	ctx, err := Fit([]float64{42, 42, 42})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if !ctx.Degenerate() {
		t.Fatalf("expected degenerate context")
	}
	if got := Transform(42, ctx); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := Inverse(0, ctx); got != 42 {
		t.Fatalf("expected 42, got %v", got)
	}
	// every normalized value maps back to the constant
	if got := Inverse(0.7, ctx); got != 42 {
		t.Fatalf("expected 42, got %v", got)
	}
}

func TestSeriesHelpers(t *testing.T) {
	xs := []float64{10, 20, 30}
	ctx, err := Fit(xs)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	norm := TransformSeries(xs, ctx)
	if len(norm) != len(xs) {
		t.Fatalf("length mismatch")
	}
	if norm[0] != 0 || norm[2] != 1 {
		t.Fatalf("unexpected endpoints: %v", norm)
	}
	back := InverseSeries(norm, ctx)
	for i := range xs {
		if math.Abs(back[i]-xs[i]) > 1e-9 {
			t.Fatalf("round trip at %d: %v", i, back[i])
		}
	}
	// fresh slices, input untouched
	norm[0] = 99
	if xs[0] != 10 {
		t.Fatalf("input mutated")
	}
}
