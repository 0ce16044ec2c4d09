package grapher

import (
	"math"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
)

// Regression is a line y = Intercept + Slope*x with the sum of squared
// residuals it leaves on the dataset it was fitted on.
type Regression struct {
	Intercept float64
	Slope     float64
	SSE       float64
}

func (r Regression) At(x float64) float64 {
	return r.Intercept + r.Slope*x
}

// Span is an inclusive interval sampled every Step.
type Span struct {
	Min  float64
	Max  float64
	Step float64
}

const (
	maxSpanValues = 100_000
	maxGridSize   = 10_000_000
)

func (s Span) values() ([]float64, error) {
	if s.Step <= 0 || math.IsNaN(s.Step) || math.IsInf(s.Step, 0) {
		return nil, inputError("step should be strictly positive (got %f)", s.Step)
	}
	if math.IsNaN(s.Min) || math.IsNaN(s.Max) || math.IsInf(s.Min, 0) || math.IsInf(s.Max, 0) {
		return nil, inputError("bounds should be finite (got %f, %f)", s.Min, s.Max)
	}
	if s.Min > s.Max {
		return nil, inputError("lower bound greater than upper bound (%f > %f)", s.Min, s.Max)
	}
	count := tickCount(s.Max-s.Min, s.Step)
	if count > maxSpanValues {
		return nil, inputError("too many values in span (%.0f > %d)", count, maxSpanValues)
	}
	list := make([]float64, int(count))
	for i := range list {
		list[i] = s.Min + float64(i)*s.Step
	}
	return list, nil
}

// FitParams describes the candidate grid searched by Fit and which
// sequences of the dataset are used as the independent and dependent
// variables.
type FitParams struct {
	Intercept Span
	Slope     Span
	X         Axis
	Y         Axis
}

// GridFor derives a search grid from the ranges of a chart: intercepts
// around the y range and slopes up to twice the slope of the range diagonal,
// in both directions.
func GridFor(xr, yr Range) FitParams {
	var (
		height = math.Max(yr.Extent(), math.Abs(yr.Upper))
		width  = xr.Extent()
	)
	if height == 0 {
		height = 1
	}
	if width == 0 {
		width = 1
	}
	slope := 2 * height / width
	return FitParams{
		Intercept: Span{
			Min:  -height,
			Max:  height,
			Step: height / 100,
		},
		Slope: Span{
			Min:  -slope,
			Max:  slope,
			Step: slope / 100,
		},
		X: AxisX,
		Y: AxisY,
	}
}

// Fit searches every (intercept, slope) pair of the grid and returns the
// one with the smallest sum of squared residuals. Intercepts are walked in
// ascending order, then slopes; on ties the first candidate is kept.
func Fit(d Dataset, params FitParams) (Regression, error) {
	xs, ys, err := fitValues(d, params.X, params.Y)
	if err != nil {
		return Regression{}, err
	}
	intercepts, err := params.Intercept.values()
	if err != nil {
		return Regression{}, err
	}
	slopes, err := params.Slope.values()
	if err != nil {
		return Regression{}, err
	}
	if size := len(intercepts) * len(slopes); size > maxGridSize {
		return Regression{}, inputError("search grid too large (%d > %d)", size, maxGridSize)
	}
	best := Regression{SSE: math.Inf(1)}
	for _, b := range intercepts {
		for _, m := range slopes {
			sse := squaredError(xs, ys, b, m)
			if sse < best.SSE {
				best = Regression{
					Intercept: b,
					Slope:     m,
					SSE:       sse,
				}
			}
		}
	}
	return best, nil
}

// FitLeastSquares computes the ordinary least squares line in closed form.
func FitLeastSquares(d Dataset, x, y Axis) (Regression, error) {
	xs, ys, err := fitValues(d, x, y)
	if err != nil {
		return Regression{}, err
	}
	if len(xs) < 2 {
		return Regression{}, inputError("%s: at least two points needed", d.Name)
	}
	if lo, hi := stats.Bounds(xs); lo == hi {
		return Regression{}, inputError("%s: all points share the same %s value", d.Name, x)
	}
	res := fit.PolynomialRegression(xs, ys, nil, 1)
	reg := Regression{
		Intercept: res.Coefficients[0],
		Slope:     res.Coefficients[1],
	}
	reg.SSE = squaredError(xs, ys, reg.Intercept, reg.Slope)
	return reg, nil
}

// SquaredError returns the sum of squared residuals of the line on the
// dataset.
func SquaredError(d Dataset, x, y Axis, intercept, slope float64) float64 {
	xs, ys := pairValues(d, x, y)
	return squaredError(xs, ys, intercept, slope)
}

func squaredError(xs, ys []float64, intercept, slope float64) float64 {
	var sum float64
	for i := range xs {
		r := ys[i] - intercept - slope*xs[i]
		sum += r * r
	}
	return sum
}

func fitValues(d Dataset, x, y Axis) ([]float64, []float64, error) {
	xs, ys := pairValues(d, x, y)
	if len(xs) == 0 {
		return nil, nil, inputError("%s: no point to fit", d.Name)
	}
	return xs, ys, nil
}

func pairValues(d Dataset, x, y Axis) ([]float64, []float64) {
	var (
		xs = d.Values(x)
		ys = d.Values(y)
		n  = min(len(xs), len(ys))
	)
	return xs[:n], ys[:n]
}
