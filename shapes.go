package grapher

import (
	"math"
)

type Shape int

const (
	ShapeCircle Shape = iota
	ShapeSquare
	ShapeDiamond
)

func ParseShape(str string) (Shape, error) {
	switch str {
	case "", "circle":
		return ShapeCircle, nil
	case "square":
		return ShapeSquare, nil
	case "diamond":
		return ShapeDiamond, nil
	default:
		return 0, inputError("%s: unknown point shape", str)
	}
}

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeDiamond:
		return "diamond"
	default:
		return "circle"
	}
}

// trace builds the path of the mark centered on pos. size is the radius of
// a circle or the half side of the other shapes.
func (s Shape) trace(surface Surface, pos Point, size float64) {
	surface.BeginPath()
	switch s {
	case ShapeSquare:
		surface.Rect(pos.X-size, pos.Y-size, size*2, size*2)
	case ShapeDiamond:
		surface.MoveTo(pos.X, pos.Y-size)
		surface.LineTo(pos.X+size, pos.Y)
		surface.LineTo(pos.X, pos.Y+size)
		surface.LineTo(pos.X-size, pos.Y)
	default:
		surface.Arc(pos.X, pos.Y, size, 0, 2*math.Pi)
	}
	surface.ClosePath()
}
