package grapher

type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func (p Point) Shift(dx, dy float64) Point {
	return Point{
		X: p.X + dx,
		Y: p.Y + dy,
	}
}
