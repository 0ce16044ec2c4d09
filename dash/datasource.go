package dash

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/midbel/slices"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUndefined = errors.New("undefined")
	ErrEmpty     = errors.New("empty data source")
	ErrScheme    = errors.New("unsupported scheme")
)

// DataSource loads the values drawn by an element.
type DataSource interface {
	Name() string
	Load(context.Context) (Table, error)
}

// File is a csv file read from disk or fetched over http.
type File struct {
	Path      string
	Ident     string
	Delimiter rune
	Using
	Limit
}

func (f File) Name() string {
	if f.Ident != "" {
		return f.Ident
	}
	return baseName(f.Path)
}

func (f File) Load(ctx context.Context) (Table, error) {
	r, err := readFrom(ctx, f.Path)
	if err != nil {
		return Table{}, err
	}
	defer r.Close()

	rows, err := readRows(r, f.Delimiter)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", f.Path, err)
	}
	return makeTable(rows, f.Using, f.Limit)
}

// Sheet is a sheet of an xlsx workbook. The first sheet of the workbook is
// used when Sheet is empty.
type Sheet struct {
	Path  string
	Ident string
	Sheet string
	Using
	Limit
}

func (s Sheet) Name() string {
	if s.Ident != "" {
		return s.Ident
	}
	return baseName(s.Path)
}

func (s Sheet) Load(_ context.Context) (Table, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	name := s.Sheet
	if name == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return Table{}, fmt.Errorf("%s: %w", s.Path, ErrEmpty)
		}
		name = slices.Fst(list)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return Table{}, fmt.Errorf("%s(%s): %w", s.Path, name, err)
	}
	return makeTable(rows, s.Using, s.Limit)
}

// Exec runs a command and reads its standard output as csv.
type Exec struct {
	Command string
	Ident   string
	Using
	Limit
}

func (e Exec) Name() string {
	return e.Ident
}

func (e Exec) Load(ctx context.Context) (Table, error) {
	out, err := Run(ctx, e.Command)
	if err != nil {
		return Table{}, err
	}
	rows, err := readRows(bytes.NewReader(out), 0)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", e.Command, err)
	}
	return makeTable(rows, e.Using, e.Limit)
}

// Run splits cmd the way a shell would and returns what the command writes
// on its standard output.
func Run(ctx context.Context, cmd string) ([]byte, error) {
	args, err := shellquote.Split(cmd)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	var (
		stdout bytes.Buffer
		stderr bytes.Buffer
		c      = exec.CommandContext(ctx, slices.Fst(args), slices.Rest(args)...)
	)
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", cmd, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func readFrom(ctx context.Context, location string) (io.ReadCloser, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, fmt.Errorf("%s: request does not end with success result code (%d)", location, res.StatusCode)
		}
		return res.Body, nil
	case "", "file":
		return os.Open(u.Path)
	default:
		return nil, fmt.Errorf("%s: %w", u.Scheme, ErrScheme)
	}
}

func readRows(r io.Reader, delim rune) ([][]string, error) {
	rs := csv.NewReader(r)
	rs.FieldsPerRecord = -1
	rs.TrimLeadingSpace = true
	if delim != 0 {
		rs.Comma = delim
	}
	return rs.ReadAll()
}

func baseName(file string) string {
	if u, err := url.Parse(file); err == nil && u.Path != "" {
		file = u.Path
	}
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}
