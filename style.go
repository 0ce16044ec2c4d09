package grapher

// Style is the drawing state used by a primitive. Each primitive applies
// its style to the surface before drawing.
type Style struct {
	Fill      string
	Stroke    string
	LineWidth float64
	Font      string
	Align     string
}

func (s Style) apply(surface Surface) {
	if s.Fill != "" {
		surface.SetFillStyle(s.Fill)
	}
	if s.Stroke != "" {
		surface.SetStrokeStyle(s.Stroke)
	}
	if s.LineWidth > 0 {
		surface.SetLineWidth(s.LineWidth)
	}
	if s.Font != "" {
		surface.SetFont(s.Font)
	}
	align := s.Align
	if align == "" {
		align = AlignLeft
	}
	surface.SetTextAlign(align)
}

func (s Style) WithLineWidth(width float64) Style {
	s.LineWidth = width
	return s
}

func (s Style) WithAlign(align string) Style {
	s.Align = align
	return s
}

func textStyle(color, font, align string) Style {
	return Style{
		Fill:  color,
		Font:  font,
		Align: align,
	}
}

func strokeStyle(color string, width float64) Style {
	return Style{
		Stroke:    color,
		LineWidth: width,
	}
}
