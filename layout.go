package grapher

import (
	"fmt"
	"math"
)

// LabelAllowance is the room kept for an axis label. It is given back to the
// frame when the label is absent.
const LabelAllowance = 20.0

var DefaultPadding = Padding{
	Top:    40,
	Right:  40,
	Bottom: 60,
	Left:   60,
}

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func PaddingFromList(list []float64) (Padding, error) {
	var p Padding
	switch len(list) {
	case 1:
		p.Top, p.Right, p.Bottom, p.Left = list[0], list[0], list[0], list[0]
	case 2:
		p.Top, p.Bottom = list[0], list[0]
		p.Right, p.Left = list[1], list[1]
	case 3:
		p.Top = list[0]
		p.Right, p.Left = list[1], list[1]
		p.Bottom = list[2]
	case 4:
		p.Top, p.Right, p.Bottom, p.Left = list[0], list[1], list[2], list[3]
	default:
		return p, fmt.Errorf("%w: invalid number of values given for padding", ErrInvalidInput)
	}
	return p, nil
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

// Frame is the data area of a chart. Pos is its bottom left corner, the
// origin of the axes.
type Frame struct {
	Pos    Point
	Width  float64
	Height float64
}

// ComputeFrame computes the frame of a chart drawn on a canvas of the given
// dimension with the default padding.
func ComputeFrame(width, height float64, xlabel, ylabel bool) Frame {
	return ComputeFrameWith(DefaultPadding, width, height, xlabel, ylabel)
}

func ComputeFrameWith(pad Padding, width, height float64, xlabel, ylabel bool) Frame {
	f := Frame{
		Pos:    NewPoint(pad.Left, height-pad.Bottom),
		Width:  width - pad.Horizontal(),
		Height: height - pad.Vertical(),
	}
	if !xlabel {
		f.Pos.Y += LabelAllowance
		f.Height += LabelAllowance
	}
	if !ylabel {
		f.Pos.X -= LabelAllowance
		f.Width += LabelAllowance
	}
	return f
}

func (f Frame) Top() float64 {
	return f.Pos.Y - f.Height
}

func (f Frame) Right() float64 {
	return f.Pos.X + f.Width
}

func (f Frame) Center() Point {
	return NewPoint(f.Pos.X+f.Width/2, f.Pos.Y-f.Height/2)
}

// Sharpen moves the frame by the given offset: right on x and up on y.
func (f Frame) Sharpen(offset float64) Frame {
	f.Pos = f.Pos.Shift(offset, -offset)
	return f
}

// SharpOffset returns the half pixel offset needed by a stroke of the given
// width to stay crisp on the pixel grid. It is 0 when disabled or when the
// width is even. Charts never apply it on a PixelSnapper surface.
func SharpOffset(lineWidth float64, enabled bool) float64 {
	if !enabled || math.Mod(lineWidth, 2) == 0 {
		return 0
	}
	return 0.5
}
