package dash

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/midbel/slices"
)

// Using selects the column holding x values and the columns holding y
// values. Each value produced by Y becomes its own series.
type Using struct {
	X int
	Y Selector
}

func DefaultUsing() Using {
	return Using{
		X: 0,
		Y: SelectSingle(1),
	}
}

// Limit restricts the rows of a source. A negative Offset counts from the
// end of the rows; a Count of 0 keeps every remaining row.
type Limit struct {
	Offset int
	Count  int
}

func (lim Limit) apply(rows [][]string) [][]string {
	z := len(rows)
	if lim.Offset < 0 {
		lim.Offset = max(z+lim.Offset, 0)
	}
	if lim.Offset > 0 {
		if lim.Offset >= z {
			return nil
		}
		rows = rows[lim.Offset:]
	}
	if lim.Count > 0 && lim.Count < len(rows) {
		rows = rows[:lim.Count]
	}
	return rows
}

// Table is the numeric content of a data source: several y series sharing
// the same x values. Categories keeps the raw text of the x column.
type Table struct {
	Names      []string
	Categories []string
	X          []float64
	Y          [][]float64
}

func (t Table) Len() int {
	return len(t.X)
}

// makeTable converts the rows of a source, its header being the first row.
// Values of the x column that are not numbers are replaced by their
// position so that category columns can still be used.
func makeTable(rows [][]string, use Using, lim Limit) (Table, error) {
	var tb Table
	if use.Y == nil {
		use = DefaultUsing()
	}
	if len(rows) == 0 {
		return tb, fmt.Errorf("%w: no header found", ErrEmpty)
	}
	header := slices.Fst(rows)
	tb.Names = use.Y.Names(header)
	tb.Y = make([][]float64, len(tb.Names))

	for i, row := range lim.apply(slices.Rest(rows)) {
		if isBlankRow(row) {
			continue
		}
		if use.X < 0 || use.X >= len(row) {
			return tb, fmt.Errorf("row %d: x column %d: %w", i+1, use.X, ErrIndex)
		}
		values, err := use.Y.Select(row)
		if err != nil {
			return tb, fmt.Errorf("row %d: %w", i+1, err)
		}
		var (
			cat = strings.TrimSpace(row[use.X])
			x   float64
		)
		if x, err = strconv.ParseFloat(cat, 64); err != nil {
			x = float64(tb.Len())
		}
		tb.Categories = append(tb.Categories, cat)
		tb.X = append(tb.X, x)
		for j := range tb.Y {
			if j < len(values) {
				tb.Y[j] = append(tb.Y[j], values[j])
			}
		}
	}
	return tb, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
