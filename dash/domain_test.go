package dash

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestLimit(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}}
	data := []struct {
		Limit
		Want string
	}{
		{Limit: Limit{}, Want: "abcde"},
		{Limit: Limit{Offset: 1, Count: 2}, Want: "bc"},
		{Limit: Limit{Count: 10}, Want: "abcde"},
		{Limit: Limit{Offset: -2}, Want: "de"},
		{Limit: Limit{Offset: -10, Count: 1}, Want: "a"},
		{Limit: Limit{Offset: 5}, Want: ""},
	}
	for _, d := range data {
		var str strings.Builder
		for _, r := range d.apply(rows) {
			str.WriteString(r[0])
		}
		if got := str.String(); got != d.Want {
			t.Errorf("limit %+v: want %q, got %q", d.Limit, d.Want, got)
		}
	}
}

func TestSelectors(t *testing.T) {
	var (
		header = []string{"x", "a", "b", "c"}
		row    = []string{"0", "1", "2", " 3 "}
	)
	data := []struct {
		Name   string
		Select Selector
		Values []float64
		Names  []string
	}{
		{
			Name:   "single",
			Select: SelectSingle(2),
			Values: []float64{2},
			Names:  []string{"b"},
		},
		{
			Name:   "multi",
			Select: SelectMulti(ExpandRange(1, 3)),
			Values: []float64{1, 2, 3},
			Names:  []string{"a", "b", "c"},
		},
		{
			Name:   "sum",
			Select: SelectSum([]int{1, 3}),
			Values: []float64{4},
			Names:  []string{"a+c"},
		},
		{
			Name:   "combined",
			Select: Combined(SelectSingle(1), SelectSum(ExpandRange(2, 3))),
			Values: []float64{1, 5},
			Names:  []string{"a", "b+c"},
		},
	}
	for _, d := range data {
		t.Run(d.Name, func(t *testing.T) {
			values, err := d.Select.Select(row)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if !slices.Equal(values, d.Values) {
				t.Errorf("values mismatched! want %v, got %v", d.Values, values)
			}
			if names := d.Select.Names(header); !slices.Equal(names, d.Names) {
				t.Errorf("names mismatched! want %v, got %v", d.Names, names)
			}
		})
	}
}

func TestSelectorInvalidIndex(t *testing.T) {
	row := []string{"0", "1"}
	for _, s := range []Selector{SelectSingle(5), SelectSum([]int{1, -1})} {
		if _, err := s.Select(row); !errors.Is(err, ErrIndex) {
			t.Errorf("expected index error, got %v", err)
		}
	}
	if names := SelectSingle(5).Names(nil); !slices.Equal(names, []string{"5"}) {
		t.Errorf("column without header should be named by its index: %v", names)
	}
}

func TestMakeTable(t *testing.T) {
	rows := [][]string{
		{"month", "north", "south"},
		{"jan", "10", "4"},
		{"", "", ""},
		{"feb", "12", "5"},
		{"mar", "8", "6"},
	}
	use := Using{
		X: 0,
		Y: SelectMulti([]int{1, 2}),
	}
	tb, err := makeTable(rows, use, Limit{})
	if err != nil {
		t.Fatal(err)
	}
	if tb.Len() != 3 {
		t.Fatalf("blank row should be skipped: got %d rows", tb.Len())
	}
	if !slices.Equal(tb.Names, []string{"north", "south"}) {
		t.Errorf("names mismatched: %v", tb.Names)
	}
	if !slices.Equal(tb.Categories, []string{"jan", "feb", "mar"}) {
		t.Errorf("categories mismatched: %v", tb.Categories)
	}
	if !slices.Equal(tb.X, []float64{0, 1, 2}) {
		t.Errorf("category x values should be replaced by their position: %v", tb.X)
	}
	if !slices.Equal(tb.Y[0], []float64{10, 12, 8}) || !slices.Equal(tb.Y[1], []float64{4, 5, 6}) {
		t.Errorf("y values mismatched: %v", tb.Y)
	}
}

func TestMakeTableInvalid(t *testing.T) {
	data := []struct {
		Name string
		Rows [][]string
		Use  Using
		Err  error
	}{
		{
			Name: "empty",
			Err:  ErrEmpty,
		},
		{
			Name: "x-out-of-range",
			Rows: [][]string{{"x", "y"}, {"1", "2"}},
			Use:  Using{X: 4, Y: SelectSingle(1)},
			Err:  ErrIndex,
		},
		{
			Name: "y-out-of-range",
			Rows: [][]string{{"x", "y"}, {"1", "2"}},
			Use:  Using{X: 0, Y: SelectSingle(3)},
			Err:  ErrIndex,
		},
	}
	for _, d := range data {
		t.Run(d.Name, func(t *testing.T) {
			_, err := makeTable(d.Rows, d.Use, Limit{})
			if !errors.Is(err, d.Err) {
				t.Errorf("expected %s, got %v", d.Err, err)
			}
		})
	}
	rows := [][]string{{"x", "y"}, {"1", "abc"}}
	if _, err := makeTable(rows, DefaultUsing(), Limit{}); err == nil {
		t.Errorf("non numeric value should be rejected")
	}
}

func TestEnviron(t *testing.T) {
	env := EmptyEnv[[]string]()
	env.Define("names", []string{"a", "b"})

	sub := env.Wrap()
	sub.Define("names", []string{"c"})
	sub.Define("other", []string{"d"})

	if vs, _ := sub.Resolve("names"); !slices.Equal(vs, []string{"c"}) {
		t.Errorf("inner scope should shadow outer one: %v", vs)
	}
	if vs, _ := sub.Unwrap().Resolve("names"); !slices.Equal(vs, []string{"a", "b"}) {
		t.Errorf("outer scope mismatched: %v", vs)
	}
	if _, err := env.Resolve("other"); !errors.Is(err, ErrUndefined) {
		t.Errorf("expected undefined error, got %v", err)
	}
	if env.Unwrap() != env {
		t.Errorf("root scope should unwrap to itself")
	}
}
