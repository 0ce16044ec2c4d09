package grapher

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

const (
	DefaultBgColor       = "rgba(0,0,0,0)"
	DefaultAxesColor     = "rgba(124,124,124,0.95)"
	DefaultAxesWidth     = 2.0
	DefaultTitleColor    = "rgba(34,34,34,0.9)"
	DefaultTitleFont     = "18px Trebuchet MS, Helvetica, sans-serif"
	DefaultLabelColor    = "rgba(64,64,64,0.9)"
	DefaultLabelFont     = "12px Trebuchet MS, Helvetica, sans-serif"
	DefaultAxesFont      = "10px Trebuchet MS, Helvetica, sans-serif"
	DefaultGridLineColor = "rgba(200,200,200,0.6)"
	DefaultBarPadding    = 10.0
	DefaultTitle         = "Title"
)

type Options struct {
	BgColor       string
	AxesColor     string
	AxesWidth     float64
	TitleColor    string
	TitleFont     string
	LabelColor    string
	LabelFont     string
	AxesFont      string
	GridLines     bool
	GridLineColor string
	SharpLines    bool
	BarPadding    float64
	Padding       Padding
	TickPolicy    IncrementPolicy

	OnRendered func()
	OnError    func(error)

	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		BgColor:       DefaultBgColor,
		AxesColor:     DefaultAxesColor,
		AxesWidth:     DefaultAxesWidth,
		TitleColor:    DefaultTitleColor,
		TitleFont:     DefaultTitleFont,
		LabelColor:    DefaultLabelColor,
		LabelFont:     DefaultLabelFont,
		AxesFont:      DefaultAxesFont,
		GridLineColor: DefaultGridLineColor,
		SharpLines:    true,
		BarPadding:    DefaultBarPadding,
		Padding:       DefaultPadding,
		TickPolicy:    AbsoluteMean,
	}
}

// OptionsFromMap applies the recognized keys of m on top of the default
// options. Unrecognized keys are ignored.
func OptionsFromMap(m map[string]any) (Options, error) {
	opts := DefaultOptions()
	keys := maps.Keys(m)
	sort.Strings(keys)
	for _, k := range keys {
		if err := opts.Set(k, m[k]); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// RecognizedOptions lists the keys accepted by Options.Set.
func RecognizedOptions() []string {
	keys := maps.Keys(setters)
	sort.Strings(keys)
	return keys
}

// Set sets the option named key. Unknown keys are silently ignored.
func (o *Options) Set(key string, value any) error {
	set, ok := setters[key]
	if !ok {
		return nil
	}
	if err := set(o, value); err != nil {
		return fmt.Errorf("%w: option %s: %s", ErrInvalidInput, key, err)
	}
	return nil
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.BgColor == "" {
		o.BgColor = def.BgColor
	}
	if o.AxesColor == "" {
		o.AxesColor = def.AxesColor
	}
	if o.AxesWidth <= 0 {
		o.AxesWidth = def.AxesWidth
	}
	if o.TitleColor == "" {
		o.TitleColor = def.TitleColor
	}
	if o.TitleFont == "" {
		o.TitleFont = def.TitleFont
	}
	if o.LabelColor == "" {
		o.LabelColor = def.LabelColor
	}
	if o.LabelFont == "" {
		o.LabelFont = def.LabelFont
	}
	if o.AxesFont == "" {
		o.AxesFont = def.AxesFont
	}
	if o.GridLineColor == "" {
		o.GridLineColor = def.GridLineColor
	}
	if o.BarPadding < 0 {
		o.BarPadding = def.BarPadding
	}
	if o.Padding == (Padding{}) {
		o.Padding = def.Padding
	}
	if o.TickPolicy == nil {
		o.TickPolicy = def.TickPolicy
	}
	if o.Logger == nil {
		o.Logger = slog.Default().With(slog.String("module", "chart"))
	}
	return o
}

type setter func(*Options, any) error

var setters = map[string]setter{
	"bgColor":       stringOption(func(o *Options, s string) { o.BgColor = s }),
	"axesColor":     stringOption(func(o *Options, s string) { o.AxesColor = s }),
	"axesWidth":     floatOption(func(o *Options, f float64) { o.AxesWidth = f }),
	"titleColor":    stringOption(func(o *Options, s string) { o.TitleColor = s }),
	"titleFont":     stringOption(func(o *Options, s string) { o.TitleFont = s }),
	"labelColor":    stringOption(func(o *Options, s string) { o.LabelColor = s }),
	"labelFont":     stringOption(func(o *Options, s string) { o.LabelFont = s }),
	"axesFont":      stringOption(func(o *Options, s string) { o.AxesFont = s }),
	"gridLines":     boolOption(func(o *Options, b bool) { o.GridLines = b }),
	"gridLineColor": stringOption(func(o *Options, s string) { o.GridLineColor = s }),
	"sharpLines":    boolOption(func(o *Options, b bool) { o.SharpLines = b }),
	"barPadding":    floatOption(func(o *Options, f float64) { o.BarPadding = f }),
	"padding": func(o *Options, v any) error {
		var list []float64
		switch v := v.(type) {
		case Padding:
			o.Padding = v
			return nil
		case []float64:
			list = v
		case string:
			for _, str := range strings.Split(v, ",") {
				f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
				if err != nil {
					return err
				}
				list = append(list, f)
			}
		default:
			return fmt.Errorf("unexpected %T value", v)
		}
		pad, err := PaddingFromList(list)
		if err == nil {
			o.Padding = pad
		}
		return err
	},
	"tickPolicy": func(o *Options, v any) error {
		switch v := v.(type) {
		case string:
			p, err := ParsePolicy(v)
			if err == nil {
				o.TickPolicy = p
			}
			return err
		case IncrementPolicy:
			o.TickPolicy = v
		case func([]float64) float64:
			o.TickPolicy = v
		default:
			return fmt.Errorf("unexpected %T value", v)
		}
		return nil
	},
	"onRendered": func(o *Options, v any) error {
		fn, ok := v.(func())
		if !ok {
			return fmt.Errorf("unexpected %T value", v)
		}
		o.OnRendered = fn
		return nil
	},
	"onError": func(o *Options, v any) error {
		switch fn := v.(type) {
		case func(error):
			o.OnError = fn
		case func():
			o.OnError = func(error) { fn() }
		default:
			return fmt.Errorf("unexpected %T value", v)
		}
		return nil
	},
}

func stringOption(set func(*Options, string)) setter {
	return func(o *Options, v any) error {
		switch v := v.(type) {
		case string:
			set(o, v)
		case fmt.Stringer:
			set(o, v.String())
		default:
			return fmt.Errorf("unexpected %T value", v)
		}
		return nil
	}
}

func floatOption(set func(*Options, float64)) setter {
	return func(o *Options, v any) error {
		switch v := v.(type) {
		case float64:
			set(o, v)
		case int:
			set(o, float64(v))
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			set(o, f)
		default:
			return fmt.Errorf("unexpected %T value", v)
		}
		return nil
	}
}

func boolOption(set func(*Options, bool)) setter {
	return func(o *Options, v any) error {
		switch v := v.(type) {
		case bool:
			set(o, v)
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			set(o, b)
		default:
			return fmt.Errorf("unexpected %T value", v)
		}
		return nil
	}
}
