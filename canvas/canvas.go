package canvas

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

var ErrFormat = errors.New("unsupported image format")

type maker func(int, int) (chart.Renderer, error)

type segment struct {
	kind   rune
	coords []float64
}

const (
	segMove  = 'M'
	segLine  = 'L'
	segArc   = 'A'
	segClose = 'Z'
)

// Canvas is a drawing surface backed by a go-chart renderer. Paths are
// buffered and replayed on every Stroke or Fill so that a path can be both
// filled and stroked.
type Canvas struct {
	newRenderer maker
	rdr         chart.Renderer
	width       int
	height      int

	path []segment

	fill      drawing.Color
	stroke    drawing.Color
	lineWidth float64
	font      Font
	align     string
	rotation  float64
}

func PNG(width, height int) (*Canvas, error) {
	return create(chart.PNG, width, height)
}

func SVG(width, height int) (*Canvas, error) {
	return create(chart.SVG, width, height)
}

// New creates a canvas producing an image in the given format.
func New(format string, width, height int) (*Canvas, error) {
	switch strings.ToLower(format) {
	case FormatPNG:
		return PNG(width, height)
	case FormatSVG:
		return SVG(width, height)
	default:
		return nil, fmt.Errorf("%s: %w", format, ErrFormat)
	}
}

func create(mk maker, width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas dimension %dx%d", width, height)
	}
	c := Canvas{
		newRenderer: mk,
		width:       width,
		height:      height,
		fill:        drawing.ColorBlack,
		stroke:      drawing.ColorBlack,
		lineWidth:   1,
		font:        ParseFont(""),
		align:       "left",
	}
	if err := c.reset(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Canvas) reset() error {
	rdr, err := c.newRenderer(c.width, c.height)
	if err != nil {
		return err
	}
	c.rdr = rdr
	c.path = c.path[:0]
	return c.applyFont()
}

func (c *Canvas) applyFont() error {
	face, err := c.font.Face()
	if err != nil {
		return err
	}
	c.rdr.SetFont(face)
	c.rdr.SetFontSize(c.font.Size)
	return nil
}

func (c *Canvas) Width() float64 {
	return float64(c.width)
}

func (c *Canvas) Height() float64 {
	return float64(c.height)
}

// Clear discards everything drawn so far.
func (c *Canvas) Clear() {
	if err := c.reset(); err != nil {
		panic(err)
	}
}

func (c *Canvas) Save(w io.Writer) error {
	return c.rdr.Save(w)
}

func (c *Canvas) BeginPath() {
	c.path = c.path[:0]
}

func (c *Canvas) MoveTo(x, y float64) {
	c.path = append(c.path, segment{kind: segMove, coords: []float64{x, y}})
}

func (c *Canvas) LineTo(x, y float64) {
	c.path = append(c.path, segment{kind: segLine, coords: []float64{x, y}})
}

func (c *Canvas) Arc(x, y, radius, start, end float64) {
	c.path = append(c.path, segment{kind: segArc, coords: []float64{x, y, radius, start, end}})
}

func (c *Canvas) Rect(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

func (c *Canvas) ClosePath() {
	c.path = append(c.path, segment{kind: segClose})
}

func (c *Canvas) Stroke() {
	c.rdr.SetStrokeColor(c.stroke)
	c.rdr.SetStrokeWidth(c.lineWidth)
	c.replay()
	c.rdr.Stroke()
}

func (c *Canvas) Fill() {
	c.rdr.SetFillColor(c.fill)
	c.replay()
	c.rdr.Fill()
}

func (c *Canvas) replay() {
	for _, s := range c.path {
		switch s.kind {
		case segMove:
			c.rdr.MoveTo(pixel(s.coords[0]), pixel(s.coords[1]))
		case segLine:
			c.rdr.LineTo(pixel(s.coords[0]), pixel(s.coords[1]))
		case segArc:
			radius := s.coords[2]
			c.rdr.ArcTo(pixel(s.coords[0]), pixel(s.coords[1]), radius, radius, s.coords[3], s.coords[4]-s.coords[3])
		case segClose:
			c.rdr.Close()
		}
	}
}

func (c *Canvas) SetFillStyle(color string) {
	c.fill = drawing.ParseColor(color)
}

func (c *Canvas) SetStrokeStyle(color string) {
	c.stroke = drawing.ParseColor(color)
}

func (c *Canvas) SetLineWidth(width float64) {
	c.lineWidth = width
}

func (c *Canvas) SetFont(font string) {
	c.font = ParseFont(font)
	if err := c.applyFont(); err != nil {
		panic(err)
	}
}

func (c *Canvas) SetTextAlign(align string) {
	c.align = align
}

// FillText draws text with its anchor at x, y on the baseline. The anchor
// is the start, the middle or the end of the text depending on the current
// alignment.
func (c *Canvas) FillText(text string, x, y float64) {
	c.rdr.SetFontColor(c.fill)
	var shift float64
	switch c.align {
	case "center":
		shift = c.MeasureText(text) / 2
	case "right", "end":
		shift = c.MeasureText(text)
	}
	x -= shift * math.Cos(c.rotation)
	y -= shift * math.Sin(c.rotation)
	c.rdr.Text(text, pixel(x), pixel(y))
}

func (c *Canvas) MeasureText(text string) float64 {
	box := c.rdr.MeasureText(text)
	if c.rotation == 0 {
		return float64(box.Width())
	}
	return float64(max(box.Width(), box.Height()))
}

func (c *Canvas) Rotate(radians float64) {
	c.rotation = radians
	c.rdr.SetTextRotation(radians)
}

func (c *Canvas) ResetTransform() {
	c.rotation = 0
	c.rdr.ClearTextRotation()
}

// SnapsToPixel reports that coordinates are rounded to whole pixels: the
// go-chart renderers only accept integer positions.
func (c *Canvas) SnapsToPixel() bool {
	return true
}

func pixel(v float64) int {
	return int(math.Round(v))
}
