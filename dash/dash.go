package dash

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/midbel/grapher"
	"github.com/midbel/grapher/canvas"
	"github.com/midbel/slices"
	"golang.org/x/sync/errgroup"
)

var (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultPath   = "out.png"
)

// Element is a data source drawn on the chart with its own style.
type Element struct {
	Ident string
	Data  DataSource
	Style Style
}

// Config is a decoded chart description.
type Config struct {
	Type   grapher.ChartType
	Title  string
	XLabel string
	YLabel string
	Labels []string

	Path    string
	Width   float64
	Height  float64
	Padding grapher.Padding
	Options map[string]any

	Elements []Element
}

func Default() Config {
	return Config{
		Type:    grapher.Scatter,
		Path:    DefaultPath,
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Padding: grapher.DefaultPadding,
		Options: make(map[string]any),
	}
}

// Format gives the image format of the output from the extension of its
// path.
func (c Config) Format() string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Path)), ".")
	if ext == "" {
		return canvas.FormatPNG
	}
	return ext
}

// Load loads every element concurrently and builds the data of the chart.
// Elements with several y columns give one dataset per column. When no
// labels are set for a bar chart, the x column of the first element is
// used.
func (c Config) Load(ctx context.Context) (grapher.Data, error) {
	data := grapher.Data{
		Title:  c.Title,
		XLabel: c.XLabel,
		YLabel: c.YLabel,
		Labels: c.Labels,
	}
	var (
		tables   = make([]Table, len(c.Elements))
		grp, sub = errgroup.WithContext(ctx)
	)
	for i, el := range c.Elements {
		i, el := i, el
		grp.Go(func() error {
			tb, err := el.Data.Load(sub)
			if err != nil {
				return fmt.Errorf("%s: %w", el.Ident, err)
			}
			logger().Debug("data loaded", slog.String("source", el.Ident), slog.Int("rows", tb.Len()))
			tables[i] = tb
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return data, err
	}
	for i, el := range c.Elements {
		tb := tables[i]
		for j, ys := range tb.Y {
			name := el.Ident
			if len(tb.Y) > 1 {
				name = tb.Names[j]
			}
			d, err := el.Style.dataset(name, tb.X, ys)
			if err != nil {
				return data, err
			}
			data.Datasets = append(data.Datasets, d)
		}
	}
	if c.Type == grapher.Bar && len(data.Labels) == 0 && len(tables) > 0 {
		data.Labels = slices.Fst(tables).Categories
	}
	return data, nil
}

// Chart loads the data and prepares a chart drawn on the given surface.
func (c Config) Chart(ctx context.Context, surface grapher.Surface) (*grapher.Chart, error) {
	data, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := grapher.OptionsFromMap(c.Options)
	if err != nil {
		return nil, err
	}
	if _, ok := c.Options["padding"]; !ok {
		opts.Padding = c.Padding
	}
	return grapher.New(surface, c.Type, data, opts)
}

// Render draws the chart and writes the image to Path, or to stdout when
// Path is empty.
func (c Config) Render(ctx context.Context) error {
	surface, err := canvas.New(c.Format(), int(c.Width), int(c.Height))
	if err != nil {
		return err
	}
	ch, err := c.Chart(ctx, surface)
	if err != nil {
		return err
	}
	ch.Render()
	if err := ch.Err(); err != nil {
		return err
	}
	var w io.Writer = os.Stdout
	if c.Path != "" {
		f, err := os.Create(c.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return surface.Save(w)
}

func logger() *slog.Logger {
	return slog.Default().With(slog.String("module", "dash"))
}
