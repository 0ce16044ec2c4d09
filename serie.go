package grapher

import (
	"math"
)

const (
	DefaultPointSize      = 4.0
	DefaultPointLineWidth = 1.0
)

// Dataset is a named pair of numeric sequences. Only indices valid in both
// sequences are drawn by a scatter chart; bar charts only read Y.
type Dataset struct {
	Name string
	X    []float64
	Y    []float64

	Fill           string
	Stroke         string
	PointSize      float64
	PointLineWidth float64
	Lines          bool
	Shape          Shape
	Trend          bool
}

func NumberDataset(name string, x, y []float64) Dataset {
	return Dataset{
		Name: name,
		X:    x,
		Y:    y,
	}
}

func (d Dataset) Len() int {
	return min(len(d.X), len(d.Y))
}

func (d Dataset) Points() []Point {
	list := make([]Point, 0, d.Len())
	for i := 0; i < d.Len(); i++ {
		list = append(list, NewPoint(d.X[i], d.Y[i]))
	}
	return list
}

func (d Dataset) Values(axis Axis) []float64 {
	if axis == AxisX {
		return d.X
	}
	return d.Y
}

func (d Dataset) withDefaults(i int) Dataset {
	if d.Fill == "" {
		d.Fill = Category10.At(i)
	}
	if d.Stroke == "" {
		d.Stroke = d.Fill
	}
	if d.PointSize <= 0 {
		d.PointSize = DefaultPointSize
	}
	if d.PointLineWidth <= 0 {
		d.PointLineWidth = DefaultPointLineWidth
	}
	return d
}

func (d Dataset) validate(axis Axis) error {
	for _, v := range d.Values(axis) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return inputError("%s: %s axis contains non finite value", d.Name, axis)
		}
	}
	return nil
}
