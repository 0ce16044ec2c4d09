package dash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestFileLoad(t *testing.T) {
	f := File{
		Path: "testdata/regions.csv",
		Using: Using{
			X: 0,
			Y: SelectSum([]int{1, 2, 3}),
		},
		Limit: Limit{Offset: 1, Count: 2},
	}
	if name := f.Name(); name != "regions" {
		t.Errorf("name mismatched! want regions, got %s", name)
	}
	tb, err := f.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(tb.Names, []string{"north+south+west"}) {
		t.Errorf("names mismatched: %v", tb.Names)
	}
	if !slices.Equal(tb.Categories, []string{"feb", "mar"}) {
		t.Errorf("categories mismatched: %v", tb.Categories)
	}
	if len(tb.Y) != 1 || !slices.Equal(tb.Y[0], []float64{19, 17}) {
		t.Errorf("values mismatched: %v", tb.Y)
	}
}

func TestFileLoadDelimiter(t *testing.T) {
	file := filepath.Join(t.TempDir(), "values.txt")
	if err := os.WriteFile(file, []byte("x;y\n1;2\n2;4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := File{
		Path:      file,
		Ident:     "semi",
		Delimiter: ';',
		Using:     DefaultUsing(),
	}
	tb, err := f.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if f.Name() != "semi" {
		t.Errorf("ident should be used as name: %s", f.Name())
	}
	if !slices.Equal(tb.X, []float64{1, 2}) || !slices.Equal(tb.Y[0], []float64{2, 4}) {
		t.Errorf("values mismatched: %v, %v", tb.X, tb.Y)
	}
}

func TestFileLoadRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("x,y\n1,10\n2,20\n"))
	}))
	defer srv.Close()

	f := File{
		Path:  srv.URL + "/data.csv",
		Using: DefaultUsing(),
	}
	if f.Name() != "data" {
		t.Errorf("name mismatched! want data, got %s", f.Name())
	}
	tb, err := f.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(tb.Y[0], []float64{10, 20}) {
		t.Errorf("values mismatched: %v", tb.Y)
	}

	f.Path = srv.URL + "/missing.csv"
	if _, err := f.Load(context.Background()); err == nil {
		t.Errorf("expected error for missing remote file")
	}
}

func TestSheetLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "book.xlsx")

	book := excelize.NewFile()
	rows := [][]any{
		{"x", "first", "second"},
		{1, 2, 3},
		{2, 4, 6},
		{3, 8, 9},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := book.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := book.NewSheet("Other"); err != nil {
		t.Fatal(err)
	}
	if err := book.SetSheetRow("Other", "A1", &[]any{"x", "y"}); err != nil {
		t.Fatal(err)
	}
	if err := book.SetSheetRow("Other", "A2", &[]any{5, 50}); err != nil {
		t.Fatal(err)
	}
	if err := book.SaveAs(file); err != nil {
		t.Fatal(err)
	}
	book.Close()

	s := Sheet{
		Path: file,
		Using: Using{
			X: 0,
			Y: SelectMulti([]int{1, 2}),
		},
	}
	tb, err := s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(tb.Names, []string{"first", "second"}) {
		t.Errorf("names mismatched: %v", tb.Names)
	}
	if !slices.Equal(tb.X, []float64{1, 2, 3}) || !slices.Equal(tb.Y[1], []float64{3, 6, 9}) {
		t.Errorf("values mismatched: %v, %v", tb.X, tb.Y)
	}

	s.Sheet = "Other"
	s.Using = DefaultUsing()
	if tb, err = s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(tb.Y[0], []float64{50}) {
		t.Errorf("values of named sheet mismatched: %v", tb.Y)
	}

	s.Sheet = "Missing"
	if _, err := s.Load(context.Background()); err == nil {
		t.Errorf("expected error for missing sheet")
	}
}

func TestExecLoad(t *testing.T) {
	if _, err := exec.LookPath("printf"); err != nil {
		t.Skip("printf not available")
	}
	e := Exec{
		Command: `printf 'x,y\n1,3\n2,5\n'`,
		Ident:   "gen",
		Using:   DefaultUsing(),
	}
	tb, err := e.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if e.Name() != "gen" {
		t.Errorf("name mismatched: %s", e.Name())
	}
	if !slices.Equal(tb.X, []float64{1, 2}) || !slices.Equal(tb.Y[0], []float64{3, 5}) {
		t.Errorf("values mismatched: %v, %v", tb.X, tb.Y)
	}
}

func TestRunInvalid(t *testing.T) {
	for _, cmd := range []string{"", "echo 'unterminated", "grapher-command-not-found"} {
		if _, err := Run(context.Background(), cmd); err == nil {
			t.Errorf("%q: expected error", cmd)
		}
	}
}

func TestReadFromScheme(t *testing.T) {
	if _, err := readFrom(context.Background(), "ftp://localhost/data.csv"); err == nil {
		t.Errorf("expected error for unsupported scheme")
	}
}
