package canvas

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseFont(t *testing.T) {
	data := []struct {
		Input    string
		Size     float64
		Families []string
	}{
		{
			Input: "",
			Size:  DefaultFontSize,
		},
		{
			Input:    "18px Trebuchet MS, Helvetica, sans-serif",
			Size:     18,
			Families: []string{"Trebuchet MS", "Helvetica", "sans-serif"},
		},
		{
			Input:    "12pt 'DejaVu Sans'",
			Size:     16,
			Families: []string{"DejaVu Sans"},
		},
		{
			Input:    "Helvetica",
			Size:     DefaultFontSize,
			Families: []string{"Helvetica"},
		},
		{
			Input: "-4px",
			Size:  DefaultFontSize,
		},
	}
	for _, d := range data {
		f := ParseFont(d.Input)
		if f.Size != d.Size {
			t.Errorf("%q: size mismatched! want %f, got %f", d.Input, d.Size, f.Size)
		}
		if strings.Join(f.Families, "|") != strings.Join(d.Families, "|") {
			t.Errorf("%q: families mismatched! want %q, got %q", d.Input, d.Families, f.Families)
		}
	}
}

func TestFontFaceFallback(t *testing.T) {
	f := ParseFont("10px testdata/missing.ttf, sans-serif")
	face, err := f.Face()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if face == nil {
		t.Fatalf("default font expected")
	}
}

func TestNew(t *testing.T) {
	if _, err := New("gif", 100, 100); !errors.Is(err, ErrFormat) {
		t.Errorf("expected format error, got %v", err)
	}
	if _, err := New(FormatPNG, 0, 100); err == nil {
		t.Errorf("expected error for empty canvas")
	}
	c, err := New("PNG", 120, 80)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if c.Width() != 120 || c.Height() != 80 {
		t.Errorf("dimension mismatched: %fx%f", c.Width(), c.Height())
	}
	if !c.SnapsToPixel() {
		t.Errorf("go-chart canvas should report pixel snapping")
	}
}

func TestCanvasSave(t *testing.T) {
	data := []struct {
		Format string
		Prefix []byte
	}{
		{Format: FormatPNG, Prefix: []byte("\x89PNG\r\n\x1a\n")},
		{Format: FormatSVG, Prefix: []byte("<svg")},
	}
	for _, d := range data {
		t.Run(d.Format, func(t *testing.T) {
			c, err := New(d.Format, 200, 100)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			draw(c)

			var buf bytes.Buffer
			if err := c.Save(&buf); err != nil {
				t.Fatalf("fail to save %s image: %s", d.Format, err)
			}
			if !bytes.HasPrefix(bytes.TrimSpace(buf.Bytes()), d.Prefix) {
				t.Errorf("unexpected %s output: %q", d.Format, buf.Bytes()[:min(16, buf.Len())])
			}
		})
	}
}

func TestCanvasMeasureText(t *testing.T) {
	c, err := PNG(200, 100)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	c.SetFont("12px sans-serif")
	var (
		short = c.MeasureText("abc")
		long  = c.MeasureText("abcabcabc")
	)
	if short <= 0 || long <= short {
		t.Errorf("text measure not increasing: %f, %f", short, long)
	}
	c.Rotate(-math.Pi / 2)
	c.FillText("abc", 20, 50)
	c.ResetTransform()
	if c.rotation != 0 {
		t.Errorf("rotation not reset")
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(300, 200)
	draw(r)

	if r.Width() != 300 || r.Height() != 200 {
		t.Errorf("dimension mismatched: %fx%f", r.Width(), r.Height())
	}
	if got := r.Count("LineTo"); got != 2 {
		t.Errorf("expected 2 LineTo, got %d", got)
	}
	if got := strings.Join(r.Texts(), ","); got != "title,label" {
		t.Errorf("texts mismatched: %s", got)
	}
	strokes := r.Filter("Stroke")
	if len(strokes) != 1 || strokes[0].Stroke != "red" || strokes[0].LineWidth != 2 {
		t.Errorf("stroke recorded with wrong style: %+v", strokes)
	}
	texts := r.Filter("FillText")
	if texts[0].Align != "center" || texts[1].Rotation == 0 {
		t.Errorf("text recorded with wrong style: %+v", texts)
	}
	if r.Rotation() != 0 {
		t.Errorf("rotation not reset")
	}
	if w := r.MeasureText("abcd"); w != 28 {
		t.Errorf("measure mismatched! want 28, got %f", w)
	}
	if s := r.Filter("MoveTo")[0].String(); s != "MoveTo(10, 10)" {
		t.Errorf("unexpected operation string: %s", s)
	}
	r.Reset()
	if len(r.Ops) != 0 {
		t.Errorf("operations not discarded")
	}
}

type surface interface {
	Clear()
	BeginPath()
	MoveTo(float64, float64)
	LineTo(float64, float64)
	Arc(float64, float64, float64, float64, float64)
	Rect(float64, float64, float64, float64)
	ClosePath()
	Stroke()
	Fill()
	SetFillStyle(string)
	SetStrokeStyle(string)
	SetLineWidth(float64)
	SetFont(string)
	SetTextAlign(string)
	FillText(string, float64, float64)
	Rotate(float64)
	ResetTransform()
}

func draw(s surface) {
	s.Clear()
	s.SetFillStyle("white")
	s.BeginPath()
	s.Rect(0, 0, 100, 100)
	s.Fill()

	s.SetStrokeStyle("red")
	s.SetLineWidth(2)
	s.BeginPath()
	s.MoveTo(10, 10)
	s.LineTo(10, 90)
	s.LineTo(90, 90)
	s.Stroke()

	s.SetFillStyle("blue")
	s.BeginPath()
	s.Arc(50, 50, 4, 0, 2*math.Pi)
	s.ClosePath()
	s.Fill()

	s.SetFont("12px sans-serif")
	s.SetTextAlign("center")
	s.FillText("title", 50, 20)
	s.Rotate(-math.Pi / 2)
	s.FillText("label", 20, 50)
	s.ResetTransform()
}
