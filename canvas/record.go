package canvas

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Op is one call recorded by a Recorder with the style in effect when it
// was made.
type Op struct {
	Name string
	Args []float64
	Text string

	Fill      string
	Stroke    string
	LineWidth float64
	Font      string
	Align     string
	Rotation  float64
}

func (o Op) String() string {
	var str strings.Builder
	str.WriteString(o.Name)
	str.WriteString("(")
	for i, a := range o.Args {
		if i > 0 {
			str.WriteString(", ")
		}
		fmt.Fprintf(&str, "%g", a)
	}
	if o.Text != "" {
		if len(o.Args) > 0 {
			str.WriteString(", ")
		}
		fmt.Fprintf(&str, "%q", o.Text)
	}
	str.WriteString(")")
	return str.String()
}

// Recorder is an in memory surface logging every drawing operation. Text is
// measured with a fixed width face whatever the font set.
type Recorder struct {
	Ops []Op

	width  float64
	height float64
	face   font.Face

	fill      string
	stroke    string
	lineWidth float64
	font      string
	align     string
	rotation  float64
}

func NewRecorder(width, height float64) *Recorder {
	return &Recorder{
		width:     width,
		height:    height,
		face:      basicfont.Face7x13,
		fill:      "black",
		stroke:    "black",
		lineWidth: 1,
		align:     "left",
	}
}

func (r *Recorder) Width() float64 {
	return r.width
}

func (r *Recorder) Height() float64 {
	return r.height
}

func (r *Recorder) Clear() {
	r.record("Clear", "")
}

func (r *Recorder) BeginPath() {
	r.record("BeginPath", "")
}

func (r *Recorder) MoveTo(x, y float64) {
	r.record("MoveTo", "", x, y)
}

func (r *Recorder) LineTo(x, y float64) {
	r.record("LineTo", "", x, y)
}

func (r *Recorder) Arc(x, y, radius, start, end float64) {
	r.record("Arc", "", x, y, radius, start, end)
}

func (r *Recorder) Rect(x, y, w, h float64) {
	r.record("Rect", "", x, y, w, h)
}

func (r *Recorder) ClosePath() {
	r.record("ClosePath", "")
}

func (r *Recorder) Stroke() {
	r.record("Stroke", "")
}

func (r *Recorder) Fill() {
	r.record("Fill", "")
}

func (r *Recorder) SetFillStyle(color string) {
	r.fill = color
}

func (r *Recorder) SetStrokeStyle(color string) {
	r.stroke = color
}

func (r *Recorder) SetLineWidth(width float64) {
	r.lineWidth = width
}

func (r *Recorder) SetFont(font string) {
	r.font = font
}

func (r *Recorder) SetTextAlign(align string) {
	r.align = align
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.record("FillText", text, x, y)
}

func (r *Recorder) MeasureText(text string) float64 {
	adv := font.MeasureString(r.face, text)
	return float64(adv) / 64
}

func (r *Recorder) Rotate(radians float64) {
	r.rotation = radians
	r.record("Rotate", "", radians)
}

func (r *Recorder) ResetTransform() {
	r.rotation = 0
	r.record("ResetTransform", "")
}

// Rotation returns the rotation currently applied to text.
func (r *Recorder) Rotation() float64 {
	return r.rotation
}

// Filter returns the recorded operations with the given name.
func (r *Recorder) Filter(name string) []Op {
	var list []Op
	for _, o := range r.Ops {
		if o.Name == name {
			list = append(list, o)
		}
	}
	return list
}

func (r *Recorder) Count(name string) int {
	return len(r.Filter(name))
}

// Texts returns the text of every FillText call.
func (r *Recorder) Texts() []string {
	var list []string
	for _, o := range r.Filter("FillText") {
		list = append(list, o.Text)
	}
	return list
}

func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

func (r *Recorder) record(name, text string, args ...float64) {
	r.Ops = append(r.Ops, Op{
		Name:      name,
		Args:      args,
		Text:      text,
		Fill:      r.fill,
		Stroke:    r.stroke,
		LineWidth: r.lineWidth,
		Font:      r.font,
		Align:     r.align,
		Rotation:  r.rotation,
	})
}
