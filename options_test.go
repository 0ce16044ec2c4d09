package grapher

import (
	"errors"
	"sort"
	"testing"
)

func TestOptionsFromMap(t *testing.T) {
	var called bool
	opts, err := OptionsFromMap(map[string]any{
		"bgColor":    "white",
		"axesWidth":  "3",
		"gridLines":  true,
		"sharpLines": "false",
		"barPadding": 4,
		"tickPolicy": "pairwise",
		"padding":    "10, 20",
		"onRendered": func() { called = true },
		"unknown":    42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if opts.BgColor != "white" {
		t.Errorf("bgColor mismatched: %s", opts.BgColor)
	}
	if opts.AxesWidth != 3 {
		t.Errorf("axesWidth mismatched: %f", opts.AxesWidth)
	}
	if !opts.GridLines || opts.SharpLines {
		t.Errorf("flags mismatched: gridLines=%t, sharpLines=%t", opts.GridLines, opts.SharpLines)
	}
	if opts.BarPadding != 4 {
		t.Errorf("barPadding mismatched: %f", opts.BarPadding)
	}
	if got := opts.TickPolicy([]float64{3, 1, 2}); got != 1 {
		t.Errorf("pairwise policy expected, got increment %f", got)
	}
	if want := (Padding{Top: 10, Right: 20, Bottom: 10, Left: 20}); opts.Padding != want {
		t.Errorf("padding mismatched: %+v", opts.Padding)
	}
	if opts.TitleColor != DefaultTitleColor || opts.AxesFont != DefaultAxesFont {
		t.Errorf("missing keys should keep their defaults")
	}
	opts.OnRendered()
	if !called {
		t.Errorf("onRendered callback not set")
	}
}

func TestOptionsFromMapInvalid(t *testing.T) {
	data := []map[string]any{
		{"axesWidth": "wide"},
		{"gridLines": 12},
		{"tickPolicy": "median"},
		{"onError": "ignore"},
		{"padding": "1,2,3,4,5"},
	}
	for _, m := range data {
		if _, err := OptionsFromMap(m); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%v: expected invalid input error, got %v", m, err)
		}
	}
}

func TestRecognizedOptions(t *testing.T) {
	keys := RecognizedOptions()
	if !sort.StringsAreSorted(keys) {
		t.Errorf("keys should be sorted: %v", keys)
	}
	for _, k := range []string{
		"bgColor",
		"axesColor",
		"axesWidth",
		"titleColor",
		"titleFont",
		"labelColor",
		"labelFont",
		"axesFont",
		"gridLines",
		"gridLineColor",
		"sharpLines",
		"onRendered",
		"onError",
	} {
		i := sort.SearchStrings(keys, k)
		if i >= len(keys) || keys[i] != k {
			t.Errorf("%s not recognized", k)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}.withDefaults()
	if opts.AxesColor != DefaultAxesColor || opts.AxesWidth != DefaultAxesWidth {
		t.Errorf("defaults not applied: %+v", opts)
	}
	if opts.Padding != DefaultPadding {
		t.Errorf("default padding not applied: %+v", opts.Padding)
	}
	if opts.TickPolicy == nil || opts.Logger == nil {
		t.Errorf("policy and logger should be set")
	}
}
