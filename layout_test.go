package grapher

import (
	"errors"
	"testing"
)

func TestComputeFrame(t *testing.T) {
	data := []struct {
		XLabel bool
		YLabel bool
		Want   Frame
	}{
		{
			XLabel: true,
			YLabel: true,
			Want:   Frame{Pos: NewPoint(60, 240), Width: 200, Height: 200},
		},
		{
			XLabel: false,
			YLabel: true,
			Want:   Frame{Pos: NewPoint(60, 260), Width: 200, Height: 220},
		},
		{
			XLabel: true,
			YLabel: false,
			Want:   Frame{Pos: NewPoint(40, 240), Width: 220, Height: 200},
		},
		{
			XLabel: false,
			YLabel: false,
			Want:   Frame{Pos: NewPoint(40, 260), Width: 220, Height: 220},
		},
	}
	for _, d := range data {
		got := ComputeFrame(300, 300, d.XLabel, d.YLabel)
		if got != d.Want {
			t.Errorf("frame mismatched (x: %t, y: %t)! want %+v, got %+v", d.XLabel, d.YLabel, d.Want, got)
		}
	}
}

func TestComputeFrameGrows(t *testing.T) {
	sizes := [][2]float64{{300, 300}, {800, 600}, {150, 400}}
	for _, s := range sizes {
		var (
			with    = ComputeFrame(s[0], s[1], true, true)
			without = ComputeFrame(s[0], s[1], false, false)
		)
		if without.Width <= with.Width {
			t.Errorf("%v: width should grow without y label (%f <= %f)", s, without.Width, with.Width)
		}
		if without.Height <= with.Height {
			t.Errorf("%v: height should grow without x label (%f <= %f)", s, without.Height, with.Height)
		}
		if with.Top() != DefaultPadding.Top || without.Top() != DefaultPadding.Top {
			t.Errorf("%v: top of frame moved (%f, %f)", s, with.Top(), without.Top())
		}
	}
}

func TestSharpOffset(t *testing.T) {
	data := []struct {
		Width   float64
		Enabled bool
		Want    float64
	}{
		{Width: 1, Enabled: true, Want: 0.5},
		{Width: 3, Enabled: true, Want: 0.5},
		{Width: 2, Enabled: true, Want: 0},
		{Width: 4, Enabled: true, Want: 0},
		{Width: 1, Enabled: false, Want: 0},
	}
	for _, d := range data {
		if got := SharpOffset(d.Width, d.Enabled); got != d.Want {
			t.Errorf("offset mismatched for %f (%t)! want %f, got %f", d.Width, d.Enabled, d.Want, got)
		}
	}
	f := ComputeFrame(300, 300, true, true).Sharpen(0.5)
	if f.Pos != NewPoint(60.5, 239.5) {
		t.Errorf("sharpened frame mismatched: %+v", f.Pos)
	}
}

func TestPaddingFromList(t *testing.T) {
	data := []struct {
		List []float64
		Want Padding
	}{
		{List: []float64{5}, Want: Padding{Top: 5, Right: 5, Bottom: 5, Left: 5}},
		{List: []float64{5, 10}, Want: Padding{Top: 5, Right: 10, Bottom: 5, Left: 10}},
		{List: []float64{5, 10, 15}, Want: Padding{Top: 5, Right: 10, Bottom: 15, Left: 10}},
		{List: []float64{1, 2, 3, 4}, Want: Padding{Top: 1, Right: 2, Bottom: 3, Left: 4}},
	}
	for _, d := range data {
		got, err := PaddingFromList(d.List)
		if err != nil {
			t.Fatalf("%v: unexpected error: %s", d.List, err)
		}
		if got != d.Want {
			t.Errorf("%v: padding mismatched! want %+v, got %+v", d.List, d.Want, got)
		}
	}
	if _, err := PaddingFromList(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected invalid input error, got %v", err)
	}
}
