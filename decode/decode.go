package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/midbel/slices"
	"github.com/midbel/timeline"
	"github.com/midbel/timeline/dash"
)

const (
	schemeHttp  = "http"
	schemeHttps = "https"
	schemeFile  = "file"
)

var (
	DefaultShell     = "sh"
	DefaultShellArgs = "-c"
)

type Decoder struct {
	file  string
	path  string
	cwd   string
	shell string

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
		shell: DefaultShell,
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

// Define sets a variable that can be used in the decoded file.
func (d *Decoder) Define(ident string, values ...string) {
	d.env.Define(ident, values)
}

func (d *Decoder) Decode() (*dash.Config, error) {
	cfg := dash.Default()
	return &cfg, d.decode(&cfg)
}

func (d *Decoder) decode(cfg *dash.Config) error {
	accept := func(tok Token) bool {
		return tok.Type == Keyword && tok.Literal != kwRender
	}
	err := d.decodeBody(cfg, accept)
	if err != nil {
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
		return d.decodeError("render should be the last command")
	}
	return nil
}

func (d *Decoder) decodeRender(cfg *dash.Config) error {
	d.next()
	if err := d.expectKw(kwTo); err == nil {
		d.next()
		cfg.Path, err = d.getString()
		if err != nil {
			return err
		}
	}
	for !d.is(EOL) && !d.done() {
		src, err := d.decodeElement()
		if err != nil {
			return err
		}
		cfg.Files = append(cfg.Files, src)
		switch d.curr.Type {
		case EOL, EOF:
		case Comma:
			d.next()
			d.skipEOL()
		default:
			return d.decodeError("expected ',' or end of line")
		}
	}
	return d.eol()
}

func (d *Decoder) decodeElement() (dash.DataSource, error) {
	ident, err := d.getString()
	if err != nil {
		return nil, err
	}
	src, err := d.files.Resolve(ident)
	if err != nil {
		return nil, err
	}
	if err := d.expectKw(kwWith); err != nil {
		return src, nil
	}
	d.next()
	err = d.decodeWith(func() error {
		return updateSource(&src, func(s *dash.Source) error {
			cmd := d.curr.Literal
			d.next()
			ok, err := d.decodeStyle(cmd, &s.Style)
			if err == nil && !ok {
				err = d.optionError("render")
			}
			if err == nil {
				err = d.eoo()
			}
			return err
		})
	})
	return src, err
}

func (d *Decoder) decodeBody(cfg *dash.Config, accept func(Token) bool) error {
	d.skipEOL()
	for accept(d.curr) && !d.done() {
		if err := d.expect(Keyword, "keyword expected"); err != nil {
			return err
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
		sub.shell = d.shell
		return sub.decodeBody(cfg, accept)
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
	var (
		derr DecodeError
		oerr OptionError
	)
	for _, f := range list {
		err = decodeFile(f)
		if errors.As(err, &derr) || errors.As(err, &oerr) {
			return err
		}
		if err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return d.eol()
}

func (d *Decoder) decodeSet(cfg *dash.Config) error {
	d.next()
	var (
		err error
		cmd = d.curr.Literal
	)
	d.next()
	switch cmd {
	case "title":
		cfg.Title, err = d.getString()
	case "type":
		cfg.Type, err = d.getString()
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
		if list, err = d.getFloatList(); err != nil {
			break
		}
		cfg.Pad, err = paddingFromList(list)
	case "timefmt":
		cfg.TimeFormat, err = d.getString()
	case "timezone":
		cfg.Location, err = d.getString()
	case "delimiter":
		cfg.Delimiter, err = d.getString()
	case "tooltip":
		cfg.Tooltip, err = d.getString()
	case "xdomain":
		var list []string
		if list, err = d.getStringList(); err != nil {
			break
		}
		if len(list) != 2 {
			err = fmt.Errorf("invalid number of values given for time domain")
			break
		}
		cfg.X.Min, cfg.X.Max = slices.Fst(list), slices.Lst(list)
	case "unit":
		cfg.X.Unit, err = d.getString()
	case "round":
		cfg.X.Round, err = d.getString()
	case "xticks":
		return d.decodeTicks(&cfg.X)
	case "yticks":
		return d.decodeTicks(&cfg.Y)
	case "style":
		return d.decodeGlobalStyle(&cfg.Style)
	default:
		err = d.optionError("set")
	}
	if err != nil {
		return err
	}
	return d.eol()
}

func (d *Decoder) decodeGlobalStyle(style *dash.Style) error {
	decode := func() error {
		cmd := d.curr.Literal
		d.next()
		ok, err := d.decodeStyle(cmd, style)
		if err == nil && !ok {
			err = d.optionError("style")
		}
		if err == nil {
			err = d.eoo()
		}
		return err
	}
	if d.isKw(kwWith) {
		d.next()
		if err := d.decodeWith(decode); err != nil {
			return err
		}
		return d.eol()
	}
	return decode()
}

func (d *Decoder) decodeTicks(dom *dash.Domain) error {
	if d.peekIs(EOL) || d.peekIs(EOF) {
		count, err := d.getInt()
		if err != nil {
			return err
		}
		dom.Ticks = count
		return d.eol()
	}
	decode := func() error {
		var (
			cmd = d.curr.Literal
			err error
		)
		d.next()
		switch cmd {
		case "count":
			dom.Ticks, err = d.getInt()
		case "position":
			dom.Position, err = d.getString()
		case "format":
			dom.Format, err = d.getString()
		case "outer-ticks":
			dom.OuterTicks, err = d.getBool()
		case "band-ticks":
			dom.BandTicks, err = d.getBool()
		case "timestamps":
			dom.Timestamps, err = d.getBool()
		case "unit":
			dom.Unit, err = d.getString()
		case "round":
			dom.Round, err = d.getString()
		case "min":
			dom.Min, err = d.getString()
		case "max":
			dom.Max, err = d.getString()
		default:
			err = d.optionError("ticks")
		}
		if err == nil {
			err = d.eoo()
		}
		return err
	}
	if d.isKw(kwWith) {
		d.next()
		if err := d.decodeWith(decode); err != nil {
			return err
		}
		return d.eol()
	}
	return decode()
}

func (d *Decoder) decodeStyle(cmd string, style *dash.Style) (bool, error) {
	var err error
	switch cmd {
	default:
		return false, nil
	case "fill":
		style.Fill, err = d.getString()
	case "border-color":
		style.Stroke, err = d.getString()
	case "border-width":
		style.BorderWidth, err = d.getFloat()
	case "border-skipped":
		style.BorderSkipped, err = d.getString()
	case "text-color":
		style.TextColor, err = d.getString()
	case "text-padding":
		style.TextPadding, err = d.getFloat()
	case "hide-text":
		style.HideText, err = d.getBool()
	case "font-size":
		style.FontSize, err = d.getFloat()
	case "font-family":
		style.FontFamily, err = d.getString()
	case "bar-percentage":
		style.BarPercentage, err = d.getFloat()
	case "category-percentage":
		style.CategoryPercentage, err = d.getFloat()
	case "bar-thickness":
		style.BarThickness, err = d.getString()
	case "max-bar-thickness":
		style.MaxBarThickness, err = d.getFloat()
	case "min-bar-length":
		style.MinBarLength, err = d.getFloat()
	case "palette":
		style.Palette, err = d.getString()
	case "hidden":
		style.Hidden, err = d.getBool()
	}
	return true, err
}

func (d *Decoder) decodeLoad() error {
	d.next()
	switch d.curr.Type {
	case Data:
		return d.decodeLoadData()
	case Literal, Variable, Command:
	default:
		return d.decodeError("expected data or path")
	}
	path, err := d.getString()
	if err != nil {
		return err
	}
	u, err := url.Parse(path)
	if err != nil {
		return err
	}
	switch u.Scheme {
	case schemeHttp, schemeHttps:
		return d.decodeLoadHttp(path)
	case schemeFile, "":
		return d.decodeLoadFile(d.resolvePath(u.Path))
	default:
		return d.decodeError(fmt.Sprintf("%s: unsupported scheme", u.Scheme))
	}
}

func (d *Decoder) resolvePath(file string) string {
	if filepath.IsAbs(file) || d.path == "" {
		return file
	}
	return filepath.Join(d.path, file)
}

func (d *Decoder) decodeLoadData() error {
	var dat dash.LocalData
	dat.Content = d.curr.Literal
	d.next()
	err := d.decodeSource(&dat.Source, "data", nil)
	if err != nil {
		return err
	}
	if dat.Ident == "" {
		return d.decodeError("inline data should be named with 'as'")
	}
	d.files.Define(dat.Ident, dat)
	return nil
}

func (d *Decoder) decodeLoadHttp(path string) error {
	var fi dash.HttpFile
	fi.Url = path
	fi.Headers = make(http.Header)
	err := d.decodeSource(&fi.Source, "http", func(cmd string) (bool, error) {
		var err error
		switch cmd {
		case "sheet":
			fi.Sheet, err = d.getString()
		case "username":
			fi.Username, err = d.getString()
		case "password":
			fi.Password, err = d.getString()
		case "token":
			fi.Token, err = d.getString()
		case "method":
			fi.Method, err = d.getString()
		case "body":
			fi.Body, err = d.getString()
		default:
			var value string
			if value, err = d.getString(); err == nil {
				fi.Headers.Add(cmd, value)
			}
		}
		return true, err
	})
	if err == nil {
		d.files.Define(fi.Name(), fi)
	}
	return err
}

func (d *Decoder) decodeLoadFile(path string) error {
	var fi dash.LocalFile
	fi.Path = path
	err := d.decodeSource(&fi.Source, "file", func(cmd string) (bool, error) {
		if cmd != "sheet" {
			return false, nil
		}
		var err error
		fi.Sheet, err = d.getString()
		return true, err
	})
	if err == nil {
		d.files.Define(fi.Name(), fi)
	}
	return err
}

// decodeSource decodes the clauses shared by every kind of data:
//
//	[limit [offset,] count] [using start, end[, label]] [with (...)] [as ident]
func (d *Decoder) decodeSource(src *dash.Source, section string, option func(string) (bool, error)) error {
	src.Columns = dash.DefaultColumns()
	if err := d.decodeLimit(&src.Limit); err != nil {
		return err
	}
	if err := d.decodeUsing(&src.Columns); err != nil {
		return err
	}
	if d.isKw(kwWith) {
		d.next()
		err := d.decodeWith(func() error {
			var (
				cmd = d.curr.Literal
				ok  bool
				err error
			)
			d.next()
			switch cmd {
			case "offset":
				src.Offset, err = d.getInt()
			case "count":
				src.Count, err = d.getInt()
			case "timefmt":
				src.TimeFormat, err = d.getString()
			case "start":
				src.Columns.Start, err = d.getColumn()
			case "end":
				src.Columns.End, err = d.getColumn()
			case "label":
				src.Columns.Label, err = d.getColumn()
			default:
				if ok, err = d.decodeStyle(cmd, &src.Style); ok || err != nil {
					break
				}
				if option != nil {
					ok, err = option(cmd)
				}
				if err == nil && !ok {
					err = d.optionError(section)
				}
			}
			if err == nil {
				err = d.eoo()
			}
			return err
		})
		if err != nil {
			return err
		}
	}
	if d.isKw(kwAs) {
		d.next()
		ident, err := d.getString()
		if err != nil {
			return err
		}
		src.Ident = ident
	}
	return d.eol()
}

func (d *Decoder) decodeUsing(cols *dash.Columns) error {
	if !d.isKw(kwUsing) {
		return nil
	}
	d.next()
	list, err := d.getColumnList()
	if err != nil {
		return err
	}
	switch len(list) {
	case 2:
		cols.Start, cols.End, cols.Label = list[0], list[1], dash.NoColumn()
	case 3:
		cols.Start, cols.End, cols.Label = list[0], list[1], list[2]
	default:
		return d.decodeError("using expects start, end and an optional label column")
	}
	return nil
}

func (d *Decoder) decodeLimit(lim *dash.Limit) error {
	if !d.isKw(kwLimit) {
		return nil
	}
	d.next()
	var err error
	if d.peekIs(Comma) {
		lim.Offset, err = d.getInt()
		if err != nil {
			return err
		}
		d.next()
	}
	lim.Count, err = d.getInt()
	return err
}

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
			return err
		}
		d.skipEOL()
	}
	if err := d.expect(Rparen, "expected ')'"); err != nil {
		return err
	}
	d.next()
	return nil
}

func updateSource(src *dash.DataSource, update func(*dash.Source) error) error {
	var err error
	switch s := (*src).(type) {
	case dash.LocalFile:
		err = update(&s.Source)
		*src = s
	case dash.HttpFile:
		err = update(&s.Source)
		*src = s
	case dash.LocalData:
		err = update(&s.Source)
		*src = s
	default:
		err = fmt.Errorf("%s: style can not be set", s.Name())
	}
	return err
}

func paddingFromList(list []float64) (timeline.Padding, error) {
	var pad timeline.Padding
	switch len(list) {
	case 1:
		pad.Top, pad.Right, pad.Bottom, pad.Left = list[0], list[0], list[0], list[0]
	case 2:
		pad.Top, pad.Bottom = list[0], list[0]
		pad.Right, pad.Left = list[1], list[1]
	case 3:
		pad.Top = list[0]
		pad.Right, pad.Left = list[1], list[1]
		pad.Bottom = list[2]
	case 4:
		pad.Top, pad.Right, pad.Bottom, pad.Left = list[0], list[1], list[2], list[3]
	default:
		return pad, fmt.Errorf("invalid number of values given for padding")
	}
	return pad, nil
}

func (d *Decoder) is(kind rune) bool {
	return d.curr.Type == kind
}

func (d *Decoder) peekIs(kind rune) bool {
	return d.peek.Type == kind
}

func (d *Decoder) isKw(kw string) bool {
	return d.is(Keyword) && d.curr.Literal == kw
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
	if !d.is(EOL) && !d.is(EOF) {
		return d.decodeError("expected end of line or end of file")
	}
	d.next()
	return nil
}

// eoo ends an option in a with block: the closing parenthesis is left for
// the caller.
func (d *Decoder) eoo() error {
	if d.is(Rparen) {
		return nil
	}
	return d.eol()
}

func (d *Decoder) optionError(item string) error {
	return OptionError{
		Position: d.curr.Position,
		File:     d.file,
		Option:   d.curr.Literal,
		Section:  item,
	}
}

func (d *Decoder) decodeError(msg string) error {
	return DecodeError{
		Position: d.curr.Position,
		File:     d.file,
		Message:  msg,
	}
}

func (d *Decoder) skipEOL() {
	for d.is(EOL) {
		d.next()
	}
}

func (d *Decoder) getString() (string, error) {
	var str string
	switch d.curr.Type {
	case Literal:
		str = d.curr.Literal
	case Variable:
		vs, err := d.env.Resolve(d.curr.Literal)
		if err != nil {
			return "", err
		}
		str = slices.Fst(vs)
	case Command:
		var (
			out bytes.Buffer
			err bytes.Buffer
		)
		cmd := exec.Command(d.shell, DefaultShellArgs, d.curr.Literal)
		cmd.Stdout = &out
		cmd.Stderr = &err
		if errc := cmd.Run(); errc != nil {
			return "", fmt.Errorf("%w: %s", errc, err.String())
		}
		str = strings.TrimSpace(out.String())
	default:
		return "", d.decodeError("expected literal, variable or command")
	}
	defer d.next()
	return str, nil
}

func (d *Decoder) getColumn() (dash.Column, error) {
	str, err := d.getString()
	if err != nil {
		return dash.Column{}, err
	}
	return dash.ParseColumn(str), nil
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
	for !d.is(EOL) && !d.is(EOF) {
		str, err := d.getString()
		if err != nil {
			return nil, err
		}
		list = append(list, str)
		if err := d.nextListItem(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (d *Decoder) getColumnList() ([]dash.Column, error) {
	var list []dash.Column
	for {
		col, err := d.getColumn()
		if err != nil {
			return nil, err
		}
		list = append(list, col)
		if !d.is(Comma) {
			break
		}
		d.next()
	}
	return list, nil
}

func (d *Decoder) getFloatList() ([]float64, error) {
	var list []float64
	for !d.is(EOL) && !d.is(EOF) {
		f, err := d.getFloat()
		if err != nil {
			return nil, err
		}
		list = append(list, f)
		if err := d.nextListItem(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (d *Decoder) nextListItem() error {
	switch d.curr.Type {
	case Comma:
		if d.peekIs(EOL) || d.peekIs(EOF) {
			return d.decodeError("end of line not expected after ',")
		}
		d.next()
	case EOF, EOL:
	default:
		return d.decodeError("expected ',' or end of line")
	}
	return nil
}
