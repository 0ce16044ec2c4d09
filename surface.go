package grapher

const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Surface is the immediate mode drawing context a chart renders on.
//
// Paths are built with BeginPath, MoveTo, LineTo, Arc, Rect and ClosePath and
// painted with Stroke and Fill using the current style. Rotate applies to
// text drawn afterwards, around the anchor of that text, until
// ResetTransform is called.
type Surface interface {
	Width() float64
	Height() float64
	Clear()

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, start, end float64)
	Rect(x, y, w, h float64)
	ClosePath()
	Stroke()
	Fill()

	SetFillStyle(string)
	SetStrokeStyle(string)
	SetLineWidth(float64)
	SetFont(string)
	SetTextAlign(string)

	FillText(text string, x, y float64)
	MeasureText(text string) float64

	Rotate(radians float64)
	ResetTransform()
}

func validSurface(s Surface) bool {
	return s != nil && s.Width() > 0 && s.Height() > 0
}

// PixelSnapper is implemented by surfaces that round every coordinate to a
// whole pixel. A half pixel offset only shifts strokes on them, so sharp
// lines are not applied.
type PixelSnapper interface {
	SnapsToPixel() bool
}

func snapsToPixel(s Surface) bool {
	ps, ok := s.(PixelSnapper)
	return ok && ps.SnapsToPixel()
}
