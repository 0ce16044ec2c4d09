package dash

import (
	"errors"
	"strconv"
	"strings"
)

var ErrIndex = errors.New("invalid index")

type Indexer interface {
	columns() []int
}

// Selector extracts numeric values from a row. Names gives the name of each
// value produced from the header of the source.
type Selector interface {
	Select([]string) ([]float64, error)
	Names([]string) []string
	Indexer
}

type combined struct {
	selectors []Selector
}

func Combined(xs ...Selector) Selector {
	return combined{
		selectors: xs,
	}
}

func (c combined) columns() []int {
	var list []int
	for _, s := range c.selectors {
		list = append(list, s.columns()...)
	}
	return list
}

func (c combined) Select(row []string) ([]float64, error) {
	var list []float64
	for _, s := range c.selectors {
		fs, err := s.Select(row)
		if err != nil {
			return nil, err
		}
		list = append(list, fs...)
	}
	return list, nil
}

func (c combined) Names(header []string) []string {
	var list []string
	for _, s := range c.selectors {
		list = append(list, s.Names(header)...)
	}
	return list
}

type summer struct {
	index []int
}

func SelectSum(list []int) Selector {
	return summer{
		index: list,
	}
}

func (s summer) columns() []int {
	return s.index
}

func (s summer) Select(row []string) ([]float64, error) {
	var sum float64
	for _, i := range s.index {
		f, err := parseCell(row, i)
		if err != nil {
			return nil, err
		}
		sum += f
	}
	return []float64{sum}, nil
}

func (s summer) Names(header []string) []string {
	var list []string
	for _, i := range s.index {
		list = append(list, columnName(header, i))
	}
	return []string{strings.Join(list, "+")}
}

type multi struct {
	index []int
}

func SelectSingle(i int) Selector {
	return SelectMulti([]int{i})
}

func SelectMulti(list []int) Selector {
	return multi{
		index: list,
	}
}

func (m multi) columns() []int {
	return m.index
}

func (m multi) Select(row []string) ([]float64, error) {
	list := make([]float64, 0, len(m.index))
	for _, i := range m.index {
		f, err := parseCell(row, i)
		if err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, nil
}

func (m multi) Names(header []string) []string {
	list := make([]string, 0, len(m.index))
	for _, i := range m.index {
		list = append(list, columnName(header, i))
	}
	return list
}

func ExpandRange(fst, lst int) []int {
	var list []int
	for i := fst; i <= lst; i++ {
		list = append(list, i)
	}
	return list
}

func parseCell(row []string, i int) (float64, error) {
	if i < 0 || i >= len(row) {
		return 0, ErrIndex
	}
	return strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
}

func columnName(header []string, i int) string {
	if i >= 0 && i < len(header) && header[i] != "" {
		return strings.TrimSpace(header[i])
	}
	return strconv.Itoa(i)
}
