package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/midbel/grapher"
	"github.com/midbel/grapher/dash"
	"github.com/spf13/cobra"
)

var fitArgs struct {
	XCol      int
	YCol      int
	Intercept string
	Slope     string
	Exact     bool
}

func fitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit [data.csv]",
		Short: "Find the line that best fits the values of a csv file",
		Args:  cobra.ExactArgs(1),
		RunE:  runFit,
	}
	fs := cmd.Flags()
	fs.IntVar(&fitArgs.XCol, "xcol", 0, "index of x column")
	fs.IntVar(&fitArgs.YCol, "ycol", 1, "index of y column")
	fs.StringVar(&fitArgs.Intercept, "intercept", "", "intercepts searched, as min:max:step")
	fs.StringVar(&fitArgs.Slope, "slope", "", "slopes searched, as min:max:step")
	fs.BoolVar(&fitArgs.Exact, "exact", false, "use least squares instead of a grid search")
	return cmd
}

func runFit(cmd *cobra.Command, args []string) error {
	src := dash.File{
		Path: args[0],
		Using: dash.Using{
			X: fitArgs.XCol,
			Y: dash.SelectSingle(fitArgs.YCol),
		},
	}
	tb, err := src.Load(cmd.Context())
	if err != nil {
		return err
	}
	if len(tb.Y) == 0 {
		return fmt.Errorf("%s: %w", args[0], dash.ErrEmpty)
	}
	var (
		data = grapher.NumberDataset(src.Name(), tb.X, tb.Y[0])
		res  grapher.Regression
	)
	if fitArgs.Exact {
		res, err = grapher.FitLeastSquares(data, grapher.AxisX, grapher.AxisY)
	} else {
		var params grapher.FitParams
		if params, err = fitParams([]grapher.Dataset{data}); err != nil {
			return err
		}
		res, err = grapher.Fit(data, params)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "intercept: %.4f\nslope: %.4f\nsse: %.4f\n", res.Intercept, res.Slope, res.SSE)
	return nil
}

func fitParams(set []grapher.Dataset) (grapher.FitParams, error) {
	xr, err := grapher.ComputeRange(set, grapher.AxisX)
	if err != nil {
		return grapher.FitParams{}, err
	}
	yr, err := grapher.ComputeRange(set, grapher.AxisY)
	if err != nil {
		return grapher.FitParams{}, err
	}
	params := grapher.GridFor(xr, yr)
	if fitArgs.Intercept != "" {
		if params.Intercept, err = parseSpan(fitArgs.Intercept); err != nil {
			return params, err
		}
	}
	if fitArgs.Slope != "" {
		if params.Slope, err = parseSpan(fitArgs.Slope); err != nil {
			return params, err
		}
	}
	return params, nil
}

func parseSpan(str string) (grapher.Span, error) {
	var (
		span  grapher.Span
		parts = strings.Split(str, ":")
	)
	if len(parts) != 3 {
		return span, fmt.Errorf("%s: span should be given as min:max:step", str)
	}
	values := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return span, fmt.Errorf("%s: %w", str, err)
		}
		values[i] = f
	}
	span.Min, span.Max, span.Step = values[0], values[1], values[2]
	return span, nil
}
