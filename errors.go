package grapher

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSurface       = errors.New("invalid drawing surface")
	ErrUnsupportedChartType = errors.New("chart type not supported")
	ErrInvalidInput         = errors.New("invalid input")
	ErrRenderFailure        = errors.New("render failure")
)

// RenderError reports a failure raised while a chart was drawing on its
// surface. It matches both ErrRenderFailure and its cause.
type RenderError struct {
	Type  ChartType
	Cause error
}

func (e RenderError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Type, ErrRenderFailure, e.Cause)
}

func (e RenderError) Unwrap() []error {
	return []error{ErrRenderFailure, e.Cause}
}

func inputError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
