package decode

import (
	"fmt"
)

type OptionError struct {
	Option  string
	Section string
	File    string
	Position
}

func (e OptionError) Error() string {
	return fmt.Sprintf("%s: option %s not recognized in section %s", location(e.File, e.Position), e.Option, e.Section)
}

type DecodeError struct {
	Message string
	File    string
	Cause   error
	Position
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("%s: %s", location(e.File, e.Position), e.Message)
}

func (e DecodeError) Unwrap() error {
	return e.Cause
}

func location(file string, pos Position) string {
	if file == "" {
		return pos.String()
	}
	return fmt.Sprintf("%s:%s", file, pos)
}
