package grapher

import (
	"math"
)

const (
	titleOffset      = 30.0
	titleMargin      = 50.0
	tickLabelOffset  = 20.0
	axisLabelOffset  = 45.0
	yTickLabelOffset = 8.0
	trendLineWidth   = 2.0
)

// renderer draws one kind of chart. It is resolved once when the chart is
// created.
type renderer interface {
	render(*Chart) error
}

func rendererFor(kind ChartType) (renderer, error) {
	switch kind {
	case Scatter:
		return scatterRenderer{}, nil
	case Bar:
		return barRenderer{}, nil
	default:
		return nil, ErrUnsupportedChartType
	}
}

type scatterRenderer struct{}

func (scatterRenderer) render(c *Chart) error {
	var (
		p     = c.painter()
		frame = c.Frame
	)
	p.drawBackground(c.Options.BgColor)
	if c.Options.GridLines {
		st := strokeStyle(c.Options.GridLineColor, 1)
		p.drawGridlines(frame.Pos, frame.Width, frame.Height, OrientHorizontal, c.XRange, st)
		p.drawGridlines(frame.Pos, frame.Width, frame.Height, OrientVertical, c.YRange, st)
	}
	p.drawAxes(frame.Pos, frame.Width, frame.Height, strokeStyle(c.Options.AxesColor, c.Options.AxesWidth))
	c.drawDecorations(p, frame)

	st := textStyle(c.Options.LabelColor, c.Options.AxesFont, AlignCenter)
	p.drawXLabels(c.XRange.Labels(), frame.Pos.Shift(0, tickLabelOffset), frame.Width, st)
	p.drawYLabels(c.YRange.Labels(), frame.Pos.Shift(-yTickLabelOffset, 0), frame.Height, st.WithAlign(AlignRight))

	for _, d := range c.Data.Datasets {
		p.drawDataset(d, frame, c.XRange, c.YRange)
		if !d.Trend {
			continue
		}
		model, err := Fit(d, GridFor(c.XRange, c.YRange))
		if err != nil {
			return err
		}
		p.drawTrend(model, frame, c.XRange, c.YRange, strokeStyle(d.Stroke, trendLineWidth))
	}
	return nil
}

type barRenderer struct{}

func (barRenderer) render(c *Chart) error {
	var (
		p     = c.painter()
		frame = c.Frame
	)
	p.drawBackground(c.Options.BgColor)
	if c.Options.GridLines {
		st := strokeStyle(c.Options.GridLineColor, 1)
		p.drawGridlines(frame.Pos, frame.Width, frame.Height, OrientVertical, c.YRange, st)
	}
	var (
		count = len(c.Data.Datasets)
		slot  = frame.Width/float64(len(c.Data.Labels)) - c.Options.BarPadding
	)
	for i, d := range c.Data.Datasets {
		var (
			width  = slot / float64(count)
			offset = float64(i) * width
		)
		p.drawBars(d, len(c.Data.Labels), offset, width, frame, c.YRange, c.Options.BarPadding)
	}
	p.drawAxes(frame.Pos, frame.Width, frame.Height, strokeStyle(c.Options.AxesColor, c.Options.AxesWidth))
	c.drawDecorations(p, frame)

	st := textStyle(c.Options.LabelColor, c.Options.AxesFont, AlignCenter)
	p.drawCategoryLabels(c.Data.Labels, frame.Pos.Shift(0, tickLabelOffset), frame.Width, st)
	p.drawYLabels(c.YRange.Labels(), frame.Pos.Shift(-yTickLabelOffset, 0), frame.Height, st.WithAlign(AlignRight))
	return nil
}

type painter struct {
	surface Surface
	sharp   bool
}

func (p painter) offset(width float64) float64 {
	return SharpOffset(width, p.sharp)
}

func (p painter) drawBackground(color string) {
	Style{Fill: color}.apply(p.surface)
	p.surface.BeginPath()
	p.surface.Rect(0, 0, p.surface.Width(), p.surface.Height())
	p.surface.Fill()
}

// drawAxes draws the y axis from the top of the frame down to the origin
// then the x axis to the right end of the frame.
func (p painter) drawAxes(pos Point, width, height float64, st Style) {
	st.apply(p.surface)
	off := p.offset(st.LineWidth)
	pos = pos.Shift(off, -off)
	p.surface.BeginPath()
	p.surface.MoveTo(pos.X, pos.Y-height)
	p.surface.LineTo(pos.X, pos.Y)
	p.surface.LineTo(pos.X+width, pos.Y)
	p.surface.Stroke()
	p.surface.ClosePath()
}

// drawGridlines draws one line per tick of rg across the frame.
// OrientHorizontal steps along the width and draws vertical lines;
// OrientVertical steps up the height and draws horizontal lines.
func (p painter) drawGridlines(pos Point, width, height float64, orient Orientation, rg Range, st Style) {
	st.apply(p.surface)
	var (
		off    = p.offset(st.LineWidth)
		length = width
	)
	if orient.Vertical() {
		length = height
	}
	p.surface.BeginPath()
	for _, o := range tickOffsets(rg.Len(), length) {
		if orient.Vertical() {
			y := pos.Y - o - off
			p.surface.MoveTo(pos.X, y)
			p.surface.LineTo(pos.X+width, y)
		} else {
			x := pos.X + o + off
			p.surface.MoveTo(x, pos.Y)
			p.surface.LineTo(x, pos.Y-height)
		}
	}
	p.surface.Stroke()
}

func (p painter) drawTitle(text string, pos Point, budget float64, st Style) {
	st.WithAlign(AlignCenter).apply(p.surface)
	text = FitText(text, budget, p.surface.MeasureText)
	p.surface.FillText(text, pos.X, pos.Y)
}

func (p painter) drawXAxisLabel(text string, pos Point, budget float64, st Style) {
	st.WithAlign(AlignCenter).apply(p.surface)
	text = FitText(text, budget, p.surface.MeasureText)
	p.surface.FillText(text, pos.X, pos.Y)
}

// drawYAxisLabel draws text rotated a quarter turn counter clockwise. The
// rotation is always reset, even when drawing fails.
func (p painter) drawYAxisLabel(text string, pos Point, budget float64, st Style) {
	st.WithAlign(AlignCenter).apply(p.surface)
	text = FitText(text, budget, p.surface.MeasureText)

	p.surface.Rotate(-math.Pi / 2)
	defer p.surface.ResetTransform()
	p.surface.FillText(text, pos.X, pos.Y)
}

func (p painter) drawXLabels(values []string, pos Point, width float64, st Style) {
	st.apply(p.surface)
	for i, o := range tickOffsets(len(values), width) {
		p.surface.FillText(values[i], pos.X+o, pos.Y)
	}
}

func (p painter) drawYLabels(values []string, pos Point, height float64, st Style) {
	st.apply(p.surface)
	for i, o := range tickOffsets(len(values), height) {
		p.surface.FillText(values[i], pos.X, pos.Y-o)
	}
}

// drawCategoryLabels centers each label under its slot.
func (p painter) drawCategoryLabels(values []string, pos Point, width float64, st Style) {
	if len(values) == 0 {
		return
	}
	st.apply(p.surface)
	slot := width / float64(len(values))
	for i, v := range values {
		x := pos.X + (float64(i)+0.5)*slot
		v = FitText(v, slot, p.surface.MeasureText)
		p.surface.FillText(v, x, pos.Y)
	}
}

// project maps a data point in the frame. Values are scaled by the upper
// bound of each axis only: the data is expected to start near zero.
func project(pt Point, frame Frame, xr, yr Range) Point {
	return NewPoint(
		frame.Pos.X+scaleBy(pt.X, xr.Upper)*frame.Width,
		frame.Pos.Y-scaleBy(pt.Y, yr.Upper)*frame.Height,
	)
}

func scaleBy(value, upper float64) float64 {
	if upper == 0 {
		return 0
	}
	return value / upper
}

func (p painter) drawDataset(d Dataset, frame Frame, xr, yr Range) {
	var (
		points = d.Points()
		st     = Style{
			Fill:      d.Fill,
			Stroke:    d.Stroke,
			LineWidth: d.PointLineWidth,
		}
	)
	if d.Lines && len(points) > 1 {
		st.WithLineWidth(d.PointLineWidth + 1).apply(p.surface)
		p.surface.BeginPath()
		for i, pt := range points {
			pos := project(pt, frame, xr, yr)
			if i == 0 {
				p.surface.MoveTo(pos.X, pos.Y)
			} else {
				p.surface.LineTo(pos.X, pos.Y)
			}
		}
		p.surface.Stroke()
	}
	st.apply(p.surface)
	for _, pt := range points {
		pos := project(pt, frame, xr, yr)
		d.Shape.trace(p.surface, pos, d.PointSize)
		p.surface.Fill()
		p.surface.Stroke()
	}
}

func (p painter) drawTrend(model Regression, frame Frame, xr, yr Range, st Style) {
	var (
		fst = project(NewPoint(xr.Lower, model.At(xr.Lower)), frame, xr, yr)
		lst = project(NewPoint(xr.Upper, model.At(xr.Upper)), frame, xr, yr)
	)
	st.apply(p.surface)
	p.surface.BeginPath()
	p.surface.MoveTo(fst.X, fst.Y)
	p.surface.LineTo(lst.X, lst.Y)
	p.surface.Stroke()
}

// drawBars draws one bar per label slot growing upward from the baseline.
// offset and width place the bar inside its slot when several datasets
// share the chart.
func (p painter) drawBars(d Dataset, count int, offset, width float64, frame Frame, yr Range, padding float64) {
	if count == 0 {
		return
	}
	Style{
		Fill:      d.Fill,
		Stroke:    d.Stroke,
		LineWidth: d.PointLineWidth,
	}.apply(p.surface)
	off := p.offset(d.PointLineWidth)
	for i := 0; i < count && i < len(d.Y); i++ {
		var (
			x = frame.Pos.X + float64(i)/float64(count)*frame.Width + padding/2 + offset
			h = scaleBy(d.Y[i], yr.Upper) * frame.Height
		)
		p.surface.BeginPath()
		p.surface.Rect(x+off, frame.Pos.Y-h-off, width, h)
		p.surface.Fill()
		p.surface.Stroke()
	}
}
