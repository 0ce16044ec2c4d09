package dash

import (
	"github.com/midbel/grapher"
)

// Style is the look of the series produced by an element. Empty fields keep
// the defaults of the chart.
type Style struct {
	Fill      string
	Stroke    string
	PointSize float64
	LineWidth float64
	Lines     bool
	Trend     bool
	Shape     string
}

func (s Style) dataset(name string, x, y []float64) (grapher.Dataset, error) {
	d := grapher.NumberDataset(name, x, y)
	d.Fill = s.Fill
	d.Stroke = s.Stroke
	d.PointSize = s.PointSize
	d.PointLineWidth = s.LineWidth
	d.Lines = s.Lines
	d.Trend = s.Trend

	shape, err := grapher.ParseShape(s.Shape)
	if err != nil {
		return d, err
	}
	d.Shape = shape
	return d, nil
}
