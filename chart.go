package grapher

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

type ChartType int

const (
	Scatter ChartType = iota + 1
	Bar
)

func ParseChartType(str string) (ChartType, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "scatter":
		return Scatter, nil
	case "bar":
		return Bar, nil
	default:
		return 0, fmt.Errorf("%s: %w", str, ErrUnsupportedChartType)
	}
}

func (c ChartType) String() string {
	switch c {
	case Scatter:
		return "scatter"
	case Bar:
		return "bar"
	default:
		return fmt.Sprintf("chart(%d)", int(c))
	}
}

type State int

const (
	StateConstructed State = iota
	StateRendered
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRendered:
		return "rendered"
	case StateFailed:
		return "failed"
	default:
		return "constructed"
	}
}

// Data is what a chart draws. Labels name the slots of a bar chart.
type Data struct {
	Title    string
	XLabel   string
	YLabel   string
	Labels   []string
	Datasets []Dataset
}

// Chart renders a dataset on a surface. Its frame and ranges are computed
// once when the chart is created.
//
// A chart is not safe for concurrent use and renders of charts sharing a
// surface must be serialized by the caller.
type Chart struct {
	Type    ChartType
	Data    Data
	Options Options

	Frame  Frame
	XRange Range
	YRange Range

	surface Surface
	rdr     renderer
	logger  *slog.Logger

	state State
	err   error
}

// New validates its inputs and prepares a chart of the given type. The
// surface is left untouched until Render is called.
func New(surface Surface, kind ChartType, data Data, opts Options) (*Chart, error) {
	if !validSurface(surface) {
		return nil, ErrInvalidSurface
	}
	rdr, err := rendererFor(kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	opts = opts.withDefaults()
	c := Chart{
		Type:    kind,
		Options: opts,
		surface: surface,
		rdr:     rdr,
		logger:  opts.Logger.With(slog.String("type", kind.String())),
	}
	if c.Data, err = prepareData(kind, data); err != nil {
		return nil, err
	}
	c.Frame = ComputeFrameWith(opts.Padding, surface.Width(), surface.Height(), data.XLabel != "", data.YLabel != "")

	if kind == Scatter {
		c.XRange, err = ComputeRangeWith(c.Data.Datasets, AxisX, opts.TickPolicy)
		if err != nil {
			return nil, err
		}
	}
	if c.YRange, err = ComputeRangeWith(c.Data.Datasets, AxisY, opts.TickPolicy); err != nil {
		return nil, err
	}
	return &c, nil
}

func prepareData(kind ChartType, data Data) (Data, error) {
	if len(data.Datasets) == 0 {
		return data, inputError("no dataset given")
	}
	if kind == Bar && len(data.Labels) == 0 {
		return data, inputError("bar chart without labels")
	}
	if data.Title == "" {
		data.Title = DefaultTitle
	}
	list := make([]Dataset, 0, len(data.Datasets))
	for i, d := range data.Datasets {
		list = append(list, d.withDefaults(i))
	}
	data.Datasets = list
	return data, nil
}

func (c *Chart) State() State {
	return c.state
}

// Err returns the error of the last failed render.
func (c *Chart) Err() error {
	return c.err
}

// Render draws the chart. Failures never reach the caller: they are logged
// and given to the OnError callback. Whatever was drawn before the failure
// stays on the surface.
func (c *Chart) Render() {
	c.err = c.render()
	if c.err == nil {
		c.state = StateRendered
		c.logger.Debug("chart rendered", slog.Int("datasets", len(c.Data.Datasets)))
		return
	}
	c.state = StateFailed
	c.logger.Error("render failed", slog.String("err", c.err.Error()))
	c.notifyError(c.err)
}

func (c *Chart) render() (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		cause, ok := r.(error)
		if !ok {
			cause = fmt.Errorf("%v", r)
		}
		err = RenderError{Type: c.Type, Cause: cause}
	}()
	c.surface.Clear()
	if err := c.rdr.render(c); err != nil {
		var rerr RenderError
		if errors.As(err, &rerr) {
			return err
		}
		return RenderError{Type: c.Type, Cause: err}
	}
	if c.Options.OnRendered != nil {
		c.Options.OnRendered()
	}
	return nil
}

func (c *Chart) notifyError(err error) {
	if c.Options.OnError == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("error callback failed", slog.Any("panic", r))
		}
	}()
	c.Options.OnError(err)
}

func (c *Chart) painter() painter {
	return painter{
		surface: c.surface,
		sharp:   c.Options.SharpLines && !snapsToPixel(c.surface),
	}
}

// drawDecorations draws the title and the axis labels around the frame.
func (c *Chart) drawDecorations(p painter, frame Frame) {
	var (
		width = c.surface.Width()
		st    = textStyle(c.Options.TitleColor, c.Options.TitleFont, AlignCenter)
	)
	p.drawTitle(c.Data.Title, NewPoint(width/2, titleOffset), width-titleMargin, st)

	st = textStyle(c.Options.LabelColor, c.Options.LabelFont, AlignCenter)
	if c.Data.XLabel != "" {
		pos := NewPoint(frame.Pos.X+frame.Width/2, frame.Pos.Y+axisLabelOffset)
		p.drawXAxisLabel(c.Data.XLabel, pos, frame.Width, st)
	}
	if c.Data.YLabel != "" {
		pos := NewPoint(frame.Pos.X-axisLabelOffset, frame.Pos.Y-frame.Height/2)
		p.drawYAxisLabel(c.Data.YLabel, pos, frame.Height, st)
	}
}
