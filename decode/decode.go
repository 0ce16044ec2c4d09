package decode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/midbel/grapher"
	"github.com/midbel/grapher/dash"
	"github.com/midbel/slices"
)

const (
	schemeHttp  = "http"
	schemeHttps = "https"
	schemeFile  = "file"
)

const extSheet = ".xlsx"

// Decoder reads a chart description.
type Decoder struct {
	file string
	path string
	cwd  string

	delimiter rune

	env   *dash.Environ[[]string]
	files *dash.Environ[dash.DataSource]

	scan *Scanner
	curr Token
	peek Token
}

func NewDecoder(r io.Reader) *Decoder {
	d := Decoder{
		cwd:   ".",
		env:   dash.EmptyEnv[[]string](),
		files: dash.EmptyEnv[dash.DataSource](),
		scan:  Scan(r),
	}
	if r, ok := r.(interface{ Name() string }); ok {
		d.file = r.Name()
		d.path = filepath.Dir(d.file)
	}
	if cwd, err := os.Getwd(); err == nil {
		d.cwd = cwd
	}
	d.next()
	d.next()
	return &d
}

// Decode reads the whole description. It must end with a render statement.
func (d *Decoder) Decode() (*dash.Config, error) {
	cfg := dash.Default()
	return &cfg, d.decode(&cfg)
}

func (d *Decoder) decode(cfg *dash.Config) error {
	accept := func(tok Token) bool {
		return tok.Statement() && !tok.Is(kwRender)
	}
	if err := d.decodeBody(cfg, accept); err != nil {
		return err
	}
	if err := d.expectKw(kwRender); err != nil {
		return err
	}
	if err := d.decodeRender(cfg); err != nil {
		return err
	}
	d.skipEOL()
	if !d.done() {
		return d.decodeError("unexpected content after render")
	}
	return nil
}

func (d *Decoder) decodeBody(cfg *dash.Config, accept func(Token) bool) error {
	d.skipEOL()
	for accept(d.curr) && !d.done() {
		if !d.curr.Statement() {
			return d.decodeError(fmt.Sprintf("%s: statement expected", d.curr))
		}
		var err error
		switch d.curr.Literal {
		case kwSet:
			err = d.decodeSet(cfg)
		case kwLoad:
			err = d.decodeLoad()
		case kwInclude:
			err = d.decodeInclude(cfg)
		case kwDeclare:
			err = d.decodeDeclare()
		default:
			err = d.decodeError(fmt.Sprintf("unexpected %q keyword", d.curr.Literal))
		}
		if err != nil {
			return err
		}
		d.skipEOL()
	}
	if accept(d.curr) {
		return d.decodeError("file can not be decoded")
	}
	return nil
}

func (d *Decoder) decodeRender(cfg *dash.Config) error {
	d.next()
	if d.isKw(kwTo) {
		d.next()
		var err error
		if cfg.Path, err = d.getString(); err != nil {
			return err
		}
	}
	for !d.isEOL() && !d.done() {
		el, err := d.decodeElement()
		if err != nil {
			return err
		}
		cfg.Elements = append(cfg.Elements, el)
		switch d.curr.Type {
		case EOL, EOF, Comment:
		case Comma:
			d.next()
			d.skipEOL()
		default:
			return d.decodeError("expected ',' or end of line")
		}
	}
	if len(cfg.Elements) == 0 {
		return d.decodeError("nothing to render")
	}
	return d.eol()
}

func (d *Decoder) decodeElement() (dash.Element, error) {
	var (
		el  dash.Element
		err error
	)
	if el.Ident, err = d.getString(); err != nil {
		return el, err
	}
	if el.Data, err = d.files.Resolve(el.Ident); err != nil {
		return el, d.wrapError(err)
	}
	if d.isKw(kwWith) {
		d.next()
		err = d.decodeWith(func() error {
			return d.decodeStyle(&el.Style)
		})
	}
	return el, err
}

func (d *Decoder) decodeStyle(style *dash.Style) error {
	var (
		tok = d.curr
		err error
	)
	d.next()
	switch tok.Literal {
	case "fill":
		style.Fill, err = d.getString()
	case "stroke":
		style.Stroke, err = d.getString()
	case "point-size":
		style.PointSize, err = d.getFloat()
	case "line-width":
		style.LineWidth, err = d.getFloat()
	case "lines":
		style.Lines, err = d.getBool()
	case "trend":
		style.Trend, err = d.getBool()
	case "shape":
		if style.Shape, err = d.getString(); err == nil {
			_, err = grapher.ParseShape(style.Shape)
		}
	default:
		return d.optionError(tok, "style")
	}
	return err
}

func (d *Decoder) decodeSet(cfg *dash.Config) error {
	d.next()
	var (
		err error
		tok = d.curr
	)
	d.next()
	switch tok.Literal {
	case "type":
		var str string
		if str, err = d.getString(); err == nil {
			cfg.Type, err = grapher.ParseChartType(str)
		}
	case "title":
		cfg.Title, err = d.getString()
	case "xlabel":
		cfg.XLabel, err = d.getString()
	case "ylabel":
		cfg.YLabel, err = d.getString()
	case "labels":
		cfg.Labels, err = d.getStringList()
	case "size":
		var list []float64
		if list, err = d.getFloatList(); err != nil {
			break
		}
		switch len(list) {
		case 1:
			cfg.Width, cfg.Height = list[0], list[0]
		case 2:
			cfg.Width, cfg.Height = list[0], list[1]
		default:
			err = fmt.Errorf("invalid number of values given for chart size")
		}
	case "padding":
		var list []float64
		if list, err = d.getFloatList(); err == nil {
			cfg.Padding, err = grapher.PaddingFromList(list)
		}
	case "delimiter":
		var str string
		if str, err = d.getString(); err == nil {
			d.delimiter, err = getDelimiter(str)
		}
	case "option":
		var key, value string
		if key, err = d.getString(); err != nil {
			break
		}
		if value, err = d.getString(); err == nil {
			cfg.Options[key] = value
		}
	default:
		return d.optionError(tok, "set")
	}
	if err != nil {
		return d.wrapError(err)
	}
	return d.eol()
}

func (d *Decoder) decodeDeclare() error {
	d.next()
	if err := d.expect(Literal, "literal expected"); err != nil {
		return err
	}
	ident := d.curr.Literal
	d.next()
	values, err := d.getStringList()
	if err != nil {
		return err
	}
	d.env.Define(ident, values)
	return d.eol()
}

func (d *Decoder) decodeInclude(cfg *dash.Config) error {
	accept := func(tok Token) bool {
		return tok.Type != EOF
	}
	decodeFile := func(file string) error {
		r, err := os.Open(file)
		if err != nil {
			return err
		}
		defer r.Close()

		sub := NewDecoder(r)
		sub.env = d.env
		sub.files = d.files
		sub.delimiter = d.delimiter
		if err := sub.decodeBody(cfg, accept); err != nil {
			return err
		}
		d.delimiter = sub.delimiter
		return nil
	}
	d.next()
	file, err := d.getString()
	if err != nil {
		return err
	}
	list := []string{
		filepath.Join(d.path, file),
		filepath.Join(d.cwd, file),
	}
	if filepath.IsAbs(file) {
		list = []string{file}
	}
	var derr DecodeError
	for _, f := range list {
		err = decodeFile(f)
		if err == nil || errors.As(err, &derr) {
			break
		}
	}
	if err != nil {
		return err
	}
	return d.eol()
}

// source gathers the clauses shared by every kind of data source.
type source struct {
	dash.Using
	dash.Limit
	Ident     string
	Sheet     string
	Delimiter rune
}

func (d *Decoder) decodeLoad() error {
	d.next()
	if d.is(Command) {
		return d.decodeLoadExec()
	}
	if !d.curr.Value() {
		return d.decodeError("expected path or command")
	}
	path, err := d.getString()
	if err != nil {
		return err
	}
	u, err := url.Parse(path)
	if err != nil {
		return d.wrapError(err)
	}
	src := source{
		Using:     dash.DefaultUsing(),
		Delimiter: d.delimiter,
	}
	if err := d.decodeSource(&src); err != nil {
		return err
	}
	var ds dash.DataSource
	switch u.Scheme {
	case schemeHttp, schemeHttps:
		ds = dash.File{
			Path:      path,
			Ident:     src.Ident,
			Delimiter: src.Delimiter,
			Using:     src.Using,
			Limit:     src.Limit,
		}
	case schemeFile, "":
		file := d.resolvePath(u.Path)
		if strings.EqualFold(filepath.Ext(file), extSheet) {
			ds = dash.Sheet{
				Path:  file,
				Ident: src.Ident,
				Sheet: src.Sheet,
				Using: src.Using,
				Limit: src.Limit,
			}
		} else {
			ds = dash.File{
				Path:      file,
				Ident:     src.Ident,
				Delimiter: src.Delimiter,
				Using:     src.Using,
				Limit:     src.Limit,
			}
		}
	default:
		return d.decodeError(fmt.Sprintf("%s: unsupported scheme", u.Scheme))
	}
	d.files.Define(ds.Name(), ds)
	return nil
}

func (d *Decoder) decodeLoadExec() error {
	exec := dash.Exec{
		Command: d.curr.Literal,
	}
	d.next()
	src := source{
		Using: dash.DefaultUsing(),
	}
	if err := d.decodeSource(&src); err != nil {
		return err
	}
	if src.Ident == "" {
		return d.decodeError("command output should be named with 'as'")
	}
	exec.Ident = src.Ident
	exec.Using = src.Using
	exec.Limit = src.Limit
	d.files.Define(exec.Ident, exec)
	return nil
}

func (d *Decoder) decodeSource(src *source) error {
	if err := d.decodeLimit(&src.Limit); err != nil {
		return err
	}
	if err := d.decodeUsing(&src.Using); err != nil {
		return err
	}
	if d.isKw(kwWith) {
		d.next()
		err := d.decodeWith(func() error {
			return d.decodeSourceOption(src)
		})
		if err != nil {
			return err
		}
	}
	if d.isKw(kwAs) {
		d.next()
		var err error
		if src.Ident, err = d.getString(); err != nil {
			return err
		}
	}
	return d.eol()
}

func (d *Decoder) decodeSourceOption(src *source) error {
	var (
		tok = d.curr
		err error
	)
	d.next()
	switch tok.Literal {
	case "offset":
		src.Offset, err = d.getInt()
	case "count":
		src.Count, err = d.getInt()
	case "xcol":
		src.X, err = d.getInt()
	case "ycol":
		src.Y, err = d.decodeSelect()
	case "sheet":
		src.Sheet, err = d.getString()
	case "delimiter":
		var str string
		if str, err = d.getString(); err == nil {
			src.Delimiter, err = getDelimiter(str)
		}
	default:
		return d.optionError(tok, "load")
	}
	return err
}

func (d *Decoder) decodeUsing(use *dash.Using) error {
	if !d.isKw(kwUsing) {
		return nil
	}
	d.next()
	var err error
	if d.peekIs(Comma) {
		if use.X, err = d.getInt(); err != nil {
			return err
		}
		d.next()
	}
	use.Y, err = d.decodeSelect()
	return err
}

func (d *Decoder) decodeLimit(lim *dash.Limit) error {
	if !d.isKw(kwLimit) {
		return nil
	}
	d.next()
	var err error
	if d.peekIs(Comma) {
		if lim.Offset, err = d.getInt(); err != nil {
			return err
		}
		d.next()
	}
	lim.Count, err = d.getInt()
	return err
}

// decodeSelect reads a list of column selectors: a single index (1), a
// range of indices (1:3) or the sum of several columns (1+2 or 1:+3).
func (d *Decoder) decodeSelect() (dash.Selector, error) {
	getRange := func() ([]int, error) {
		fst, err := d.getInt()
		if err != nil {
			return nil, err
		}
		d.next()
		lst, err := d.getInt()
		if err != nil {
			return nil, err
		}
		return dash.ExpandRange(fst, lst), nil
	}
	getList := func(want rune) ([]int, error) {
		var list []int
		i, err := d.getInt()
		if err != nil {
			return nil, err
		}
		list = append(list, i)
		for d.curr.Type == want {
			d.next()
			i, err := d.getInt()
			if err != nil {
				return nil, err
			}
			list = append(list, i)
		}
		return list, nil
	}
	var xs []dash.Selector
	for !d.isEOL() && !d.done() && !d.is(Keyword) && !d.is(Rparen) {
		switch d.peek.Type {
		case Comma, Keyword, EOL, EOF, Comment, Rparen:
			i, err := d.getInt()
			if err != nil {
				return nil, err
			}
			xs = append(xs, dash.SelectSingle(i))
		case Sum:
			rg, err := getList(Sum)
			if err != nil {
				return nil, err
			}
			xs = append(xs, dash.SelectSum(rg))
		case Range:
			rg, err := getRange()
			if err != nil {
				return nil, err
			}
			xs = append(xs, dash.SelectMulti(rg))
		case RangeSum:
			rg, err := getRange()
			if err != nil {
				return nil, err
			}
			xs = append(xs, dash.SelectSum(rg))
		default:
			return nil, d.decodeError("expected ',', ':', ':+', keyword or end of line")
		}
		switch d.curr.Type {
		case Comma:
			d.next()
		case EOL, EOF, Comment, Keyword, Rparen:
		default:
			return nil, d.decodeError("expected ',', keyword or end of line")
		}
	}
	switch len(xs) {
	case 0:
		return nil, d.decodeError("no column selected")
	case 1:
		return slices.Fst(xs), nil
	default:
		return dash.Combined(xs...), nil
	}
}

// decodeWith reads a list of options between parenthesis. Options are
// separated by a comma or a new line.
func (d *Decoder) decodeWith(decode func() error) error {
	if err := d.expect(Lparen, "expected '('"); err != nil {
		return err
	}
	d.next()
	d.skipEOL()
	for !d.is(Rparen) && !d.done() {
		if d.isKw(kwWith) {
			return d.decodeError("nested 'with' is not allowed")
		}
		if err := decode(); err != nil {
			return d.wrapError(err)
		}
		switch d.curr.Type {
		case Comma, EOL, Comment:
			d.next()
			d.skipEOL()
		case Rparen:
		default:
			return d.decodeError("expected ',', ')' or end of line")
		}
	}
	if err := d.expect(Rparen, "expected ')'"); err != nil {
		return err
	}
	d.next()
	return nil
}

func (d *Decoder) resolvePath(file string) string {
	if filepath.IsAbs(file) || d.path == "" {
		return file
	}
	alt := filepath.Join(d.path, file)
	if _, err := os.Stat(alt); err == nil {
		return alt
	}
	return file
}

func (d *Decoder) is(kind rune) bool {
	return d.curr.Type == kind
}

func (d *Decoder) isEOL() bool {
	return d.curr.EndOfLine()
}

func (d *Decoder) peekIs(kind rune) bool {
	return d.peek.Type == kind
}

func (d *Decoder) isKw(kw string) bool {
	return d.curr.Is(kw)
}

func (d *Decoder) expectKw(kw string) error {
	if err := d.expect(Keyword, fmt.Sprintf("expected %q keyword", kw)); err != nil {
		return err
	}
	if d.curr.Literal != kw {
		return d.decodeError(fmt.Sprintf("%q expected, got %s", kw, d.curr.Literal))
	}
	return nil
}

func (d *Decoder) expect(kind rune, msg string) error {
	if d.is(kind) {
		return nil
	}
	return d.decodeError(msg)
}

func (d *Decoder) next() {
	d.curr = d.peek
	d.peek = d.scan.Scan()
}

func (d *Decoder) done() bool {
	return d.curr.Type == EOF
}

func (d *Decoder) eol() error {
	if !d.isEOL() && !d.done() {
		return d.decodeError("expected end of line or end of file")
	}
	d.next()
	return nil
}

func (d *Decoder) optionError(tok Token, section string) error {
	return OptionError{
		Position: tok.Position,
		File:     d.file,
		Option:   tok.Literal,
		Section:  section,
	}
}

func (d *Decoder) decodeError(msg string) error {
	return DecodeError{
		Position: d.curr.Position,
		File:     d.file,
		Message:  msg,
	}
}

func (d *Decoder) wrapError(err error) error {
	var (
		derr DecodeError
		oerr OptionError
	)
	if errors.As(err, &derr) || errors.As(err, &oerr) {
		return err
	}
	return DecodeError{
		Position: d.curr.Position,
		File:     d.file,
		Message:  err.Error(),
		Cause:    err,
	}
}

func (d *Decoder) skipEOL() {
	for d.isEOL() {
		d.next()
	}
}

func (d *Decoder) getString() (string, error) {
	list, err := d.getValues()
	if err != nil {
		return "", err
	}
	return strings.Join(list, " "), nil
}

// getValues returns the values of the current token. A variable gives
// every value it was declared with.
func (d *Decoder) getValues() ([]string, error) {
	var list []string
	switch d.curr.Type {
	case Literal:
		list = append(list, d.curr.Literal)
	case Variable:
		vs, err := d.env.Resolve(d.curr.Literal)
		if err != nil {
			return nil, d.wrapError(err)
		}
		list = append(list, vs...)
	case Command:
		out, err := dash.Run(context.Background(), d.curr.Literal)
		if err != nil {
			return nil, d.wrapError(err)
		}
		list = append(list, strings.TrimSpace(string(out)))
	default:
		return nil, d.decodeError("expected literal, variable or command")
	}
	d.next()
	return list, nil
}

func (d *Decoder) getBool() (bool, error) {
	str, err := d.getString()
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(str)
}

func (d *Decoder) getInt() (int, error) {
	str, err := d.getString()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (d *Decoder) getFloat() (float64, error) {
	str, err := d.getString()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(str, 64)
}

func (d *Decoder) getStringList() ([]string, error) {
	var list []string
	for !d.isEOL() && !d.done() {
		vs, err := d.getValues()
		if err != nil {
			return nil, err
		}
		list = append(list, vs...)
		if err := d.nextListItem(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (d *Decoder) getFloatList() ([]float64, error) {
	values, err := d.getStringList()
	if err != nil {
		return nil, err
	}
	list := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, nil
}

func (d *Decoder) nextListItem() error {
	switch d.curr.Type {
	case Comma:
		if d.peekIs(EOL) || d.peekIs(EOF) {
			return d.decodeError("end of line not expected after ','")
		}
		d.next()
	case EOF, EOL, Comment:
	default:
		return d.decodeError("expected ',' or end of line")
	}
	return nil
}

func getDelimiter(str string) (rune, error) {
	if str == `\t` || str == "tab" {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(str)
	if r == utf8.RuneError || size != len(str) {
		return 0, fmt.Errorf("%q: delimiter should be a single character", str)
	}
	return r, nil
}
