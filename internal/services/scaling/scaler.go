package scaling

import (
	"math"

	"PriceCast/internal/domain/models"
)

// Context carries the min-max bounds fit on one request's history. It is
// request-scoped: fit once per forecast and reused to de-normalize every
// predicted step, never shared across requests.
type Context struct {
	Min float64
	Max float64
}

// Degenerate reports whether the window had no spread. Transform maps every
// value to 0 in that case and Inverse recovers the constant exactly.
func (c Context) Degenerate() bool { return c.Max == c.Min }

// Fit computes min/max over the window. Rejects empty windows and any
// non-finite observation.
func Fit(window []float64) (Context, error) {
	if len(window) == 0 {
		return Context{}, models.ErrInsufficientHistory
	}
	lo, hi := window[0], window[0]
	for _, v := range window {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Context{}, models.ErrNumericOverflow
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return Context{Min: lo, Max: hi}, nil
}

// Transform maps v linearly into [0,1] relative to the fitted bounds.
func Transform(v float64, ctx Context) float64 {
	if ctx.Degenerate() {
		return 0
	}
	return (v - ctx.Min) / (ctx.Max - ctx.Min)
}

// Inverse is the exact algebraic inverse of Transform.
func Inverse(v float64, ctx Context) float64 {
	if ctx.Degenerate() {
		return ctx.Min
	}
	return v*(ctx.Max-ctx.Min) + ctx.Min
}

// TransformSeries normalizes a slice into a fresh slice.
func TransformSeries(xs []float64, ctx Context) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = Transform(v, ctx)
	}
	return out
}

// InverseSeries de-normalizes a slice into a fresh slice.
func InverseSeries(xs []float64, ctx Context) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = Inverse(v, ctx)
	}
	return out
}
