package main

import (
	"github.com/midbel/grapher"
	"github.com/midbel/grapher/dash"
	"github.com/spf13/cobra"
)

var plotArgs struct {
	Title  string
	Type   string
	XLabel string
	YLabel string
	XCol   int
	YCol   []int
	Width  float64
	Height float64
	File   string
	Trend  bool
	Lines  bool
	Shape  string
	Grid   bool
}

func plotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [data.csv]",
		Short: "Draw a chart from a csv file without description file",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	fs := cmd.Flags()
	fs.StringVar(&plotArgs.Title, "title", "", "chart title")
	fs.StringVar(&plotArgs.Type, "type", "scatter", "chart type: scatter or bar")
	fs.StringVar(&plotArgs.XLabel, "xlabel", "", "label of the x axis")
	fs.StringVar(&plotArgs.YLabel, "ylabel", "", "label of the y axis")
	fs.IntVar(&plotArgs.XCol, "xcol", 0, "index of x column")
	fs.IntSliceVar(&plotArgs.YCol, "ycol", []int{1}, "indices of y columns")
	fs.Float64Var(&plotArgs.Width, "width", dash.DefaultWidth, "chart width")
	fs.Float64Var(&plotArgs.Height, "height", dash.DefaultHeight, "chart height")
	fs.StringVarP(&plotArgs.File, "file", "o", dash.DefaultPath, "output file")
	fs.BoolVar(&plotArgs.Trend, "trend", false, "draw the regression line of each series")
	fs.BoolVar(&plotArgs.Lines, "lines", false, "join the points of each series")
	fs.StringVar(&plotArgs.Shape, "shape", "circle", "point shape: circle, square or diamond")
	fs.BoolVar(&plotArgs.Grid, "grid", false, "draw grid lines")
	return cmd
}

func runPlot(cmd *cobra.Command, args []string) error {
	kind, err := grapher.ParseChartType(plotArgs.Type)
	if err != nil {
		return err
	}
	cfg := dash.Default()
	cfg.Type = kind
	cfg.Title = plotArgs.Title
	cfg.XLabel = plotArgs.XLabel
	cfg.YLabel = plotArgs.YLabel
	cfg.Width = plotArgs.Width
	cfg.Height = plotArgs.Height
	cfg.Path = plotArgs.File
	cfg.Options["gridLines"] = plotArgs.Grid

	src := dash.File{
		Path: args[0],
		Using: dash.Using{
			X: plotArgs.XCol,
			Y: dash.SelectMulti(plotArgs.YCol),
		},
	}
	cfg.Elements = append(cfg.Elements, dash.Element{
		Ident: src.Name(),
		Data:  src,
		Style: dash.Style{
			Trend: plotArgs.Trend,
			Lines: plotArgs.Lines,
			Shape: plotArgs.Shape,
		},
	})
	return cfg.Render(cmd.Context())
}
