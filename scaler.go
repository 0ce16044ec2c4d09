package grapher

import (
	"math"
	"sort"
	"strconv"

	"github.com/aclements/go-moremath/stats"
	"github.com/midbel/slices"
)

const tickEpsilon = 1e-9

// IncrementPolicy estimates the step between two ticks from the values of a
// single axis of a representative dataset.
type IncrementPolicy func([]float64) float64

// PairwiseMean returns the mean of successive differences of the sorted
// values. The result is rounded to an integer unless one of the values has a
// fractional part, in which case it is rounded to two decimals.
func PairwiseMean(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var (
		sorted = make([]float64, len(values))
		diffs  = make([]float64, 0, len(values)-1)
	)
	copy(sorted, values)
	sort.Float64s(sorted)
	for i, v := range slices.Rest(sorted) {
		diffs = append(diffs, v-sorted[i])
	}
	mean := stats.Mean(diffs)
	if hasFraction(values) {
		return round2(mean)
	}
	return math.Round(mean)
}

// AbsoluteMean returns the mean of |v[i]-v[i-1]| in the original order of
// the values, or 1 when that mean is 0.
func AbsoluteMean(values []float64) float64 {
	if len(values) < 2 {
		return 1
	}
	diffs := make([]float64, 0, len(values)-1)
	for i, v := range slices.Rest(values) {
		diffs = append(diffs, math.Abs(v-values[i]))
	}
	mean := stats.Mean(diffs)
	if mean == 0 {
		return 1
	}
	return mean
}

func ParsePolicy(str string) (IncrementPolicy, error) {
	switch str {
	case "", "absolute":
		return AbsoluteMean, nil
	case "pairwise":
		return PairwiseMean, nil
	default:
		return nil, inputError("%s: unknown tick policy", str)
	}
}

// Range is the tick sequence of one axis. Lower and Upper are the bounds of
// the data; Values holds the evenly spaced ticks starting at Lower.
type Range struct {
	Values    []float64
	Lower     float64
	Upper     float64
	Increment float64
}

// MaxTicks bounds the number of ticks of a range. When the increment would
// give more, it is multiplied by the smallest whole factor that fits.
const MaxTicks = 1000

// NewRange generates the ticks from lower to upper. An increment that is
// not strictly positive is replaced by 1.
func NewRange(lower, upper, increment float64) Range {
	if increment <= 0 || math.IsNaN(increment) || math.IsInf(increment, 0) {
		increment = 1
	}
	rg := Range{
		Lower:     lower,
		Upper:     upper,
		Increment: increment,
	}
	extent := upper - lower
	if upper < lower || math.IsNaN(extent) || math.IsInf(extent, 0) {
		return rg
	}
	count := tickCount(extent, increment)
	for count > MaxTicks {
		factor := math.Ceil(count / MaxTicks)
		if math.IsInf(factor, 0) {
			increment = extent / (MaxTicks - 1)
		} else {
			increment *= factor
		}
		count = tickCount(extent, increment)
	}
	rg.Increment = increment
	rg.Values = make([]float64, int(count))
	for i := range rg.Values {
		rg.Values[i] = lower + float64(i)*increment
	}
	return rg
}

func tickCount(extent, increment float64) float64 {
	return math.Floor(extent/increment+tickEpsilon) + 1
}

func (r Range) Len() int {
	return len(r.Values)
}

func (r Range) Extent() float64 {
	return r.Upper - r.Lower
}

// Labels formats the ticks rounded to 2 decimals, or to the first decimal
// that keeps a smaller increment visible.
func (r Range) Labels() []string {
	prec := 2
	for prec < maxLabelPrecision && r.Increment*math.Pow10(prec) < 1 {
		prec++
	}
	list := make([]string, 0, len(r.Values))
	for _, v := range r.Values {
		list = append(list, strconv.FormatFloat(roundTo(v, prec), 'f', -1, 64))
	}
	return list
}

// ComputeRange computes the range of the given axis with the AbsoluteMean
// policy.
func ComputeRange(set []Dataset, axis Axis) (Range, error) {
	return ComputeRangeWith(set, axis, AbsoluteMean)
}

// ComputeRangeWith computes the bounds of all points of all datasets on the
// given axis. The increment is estimated from the first dataset only.
func ComputeRangeWith(set []Dataset, axis Axis, policy IncrementPolicy) (Range, error) {
	if len(set) == 0 {
		return Range{}, inputError("no dataset given")
	}
	first := slices.Fst(set).Values(axis)
	if len(first) == 0 {
		return Range{}, inputError("%s: %s axis is empty", slices.Fst(set).Name, axis)
	}
	if policy == nil {
		policy = AbsoluteMean
	}
	lower, upper := stats.Bounds(first)
	for _, d := range set {
		if err := d.validate(axis); err != nil {
			return Range{}, err
		}
		values := d.Values(axis)
		if len(values) == 0 {
			continue
		}
		lo, hi := stats.Bounds(values)
		lower = math.Min(lower, lo)
		upper = math.Max(upper, hi)
	}
	if math.IsInf(upper-lower, 0) {
		return Range{}, inputError("%s axis: extent of values too large", axis)
	}
	return NewRange(lower, upper, policy(first)), nil
}

const maxLabelPrecision = 12

func round2(v float64) float64 {
	return roundTo(v, 2)
}

func roundTo(v float64, prec int) float64 {
	pow := math.Pow10(prec)
	return math.Round(v*pow) / pow
}

func hasFraction(values []float64) bool {
	for _, v := range values {
		if v != math.Trunc(v) {
			return true
		}
	}
	return false
}
