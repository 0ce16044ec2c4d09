package grapher

import (
	"strings"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func ParseAxis(str string) (Axis, error) {
	switch strings.ToLower(str) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	default:
		return 0, inputError("%s: unknown axis", str)
	}
}

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

type Orientation int

const (
	OrientHorizontal Orientation = 1 << iota
	OrientVertical
)

func (o Orientation) Vertical() bool {
	return o == OrientVertical
}

// tickOffsets spreads count ticks evenly over length. A single tick sits in
// the middle of the span.
func tickOffsets(count int, length float64) []float64 {
	switch count {
	case 0:
		return nil
	case 1:
		return []float64{length / 2}
	}
	var (
		list   = make([]float64, count)
		stride = length / float64(count-1)
	)
	for i := range list {
		list[i] = float64(i) * stride
	}
	return list
}
