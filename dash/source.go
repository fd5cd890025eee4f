package dash

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/midbel/slices"
	"github.com/midbel/timeline"
	"github.com/xuri/excelize/v2"
)

// DataSource gives one serie of the chart.
type DataSource interface {
	Name() string
	Load(context.Context, Config) (timeline.Serie, error)
}

type Limit struct {
	Offset int
	Count  int
}

// apply keeps count records starting at offset. A negative offset is counted
// from the end.
func (i Limit) apply(list [][]string) [][]string {
	z := len(list)
	if i.Offset < 0 {
		i.Offset = z + i.Offset
	}
	if i.Offset > 0 && i.Offset < z {
		list = list[i.Offset:]
	} else if i.Offset >= z && z > 0 {
		return nil
	}
	if i.Count > 0 && i.Count < len(list) {
		list = list[:i.Count]
	}
	return list
}

type Source struct {
	Ident      string
	Columns    Columns
	TimeFormat string
	Limit
	Style
}

func (s Source) makeSerie(cfg Config, records [][]string) (timeline.Serie, error) {
	ser := timeline.Serie{
		Title:  s.Ident,
		Hidden: s.Hidden,
	}
	if len(records) == 0 {
		return ser, nil
	}
	sel, err := s.Columns.selector(slices.Fst(records))
	if err != nil {
		return ser, err
	}
	format := s.TimeFormat
	if format == "" {
		format = cfg.TimeFormat
	}
	parse, err := makeParseValue(format, cfg.location())
	if err != nil {
		return ser, err
	}
	for _, rec := range s.Limit.apply(slices.Rest(records)) {
		if isBlankRecord(rec) {
			continue
		}
		row, err := sel.Select(rec, parse)
		if err != nil {
			return ser, err
		}
		ser.Data = append(ser.Data, row)
	}
	ser.Style, err = s.Style.Style()
	return ser, err
}

// makeParseValue gives the raw value of an endpoint: a time when the field
// matches the format, milliseconds since epoch for integers or the string
// itself for the other layouts known by the date adapter.
func makeParseValue(format string, loc *time.Location) (func(string) any, error) {
	parseTime, err := makeParseTime(format, loc)
	if err != nil {
		return nil, err
	}
	return func(str string) any {
		str = strings.TrimSpace(str)
		if str == "" {
			return nil
		}
		if t, err := parseTime(str); err == nil {
			return t
		}
		if n, err := strconv.ParseInt(str, 10, 64); err == nil {
			return n
		}
		return str
	}, nil
}

func isBlankRecord(rec []string) bool {
	for i := range rec {
		if strings.TrimSpace(rec[i]) != "" {
			return false
		}
	}
	return true
}

type LocalFile struct {
	Path  string
	Sheet string
	Source
}

func (f LocalFile) Name() string {
	if f.Ident != "" {
		return f.Ident
	}
	return strings.TrimSuffix(filepath.Base(f.Path), filepath.Ext(f.Path))
}

func (f LocalFile) Load(ctx context.Context, cfg Config) (timeline.Serie, error) {
	var (
		records [][]string
		err     error
	)
	if isSpreadsheet(f.Path) {
		records, err = readSheetFile(f.Path, f.Sheet)
	} else {
		records, err = readCSVFile(f.Path, cfg.Delimiter)
	}
	if err != nil {
		return timeline.Serie{}, fmt.Errorf("%s: %w", f.Name(), err)
	}
	f.Ident = f.Name()
	ser, err := f.makeSerie(cfg, records)
	if err != nil {
		err = fmt.Errorf("%s: %w", f.Name(), err)
	}
	return ser, err
}

type HttpFile struct {
	Url   string
	Sheet string

	Method   string
	Body     string
	Username string
	Password string
	Token    string
	Headers  http.Header

	Source
}

func (f HttpFile) Name() string {
	if f.Ident != "" {
		return f.Ident
	}
	name := f.Url
	if x := strings.Index(name, "?"); x >= 0 {
		name = name[:x]
	}
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}

func (f HttpFile) Load(ctx context.Context, cfg Config) (timeline.Serie, error) {
	records, err := f.fetch(ctx, cfg)
	if err != nil {
		return timeline.Serie{}, fmt.Errorf("%s: %w", f.Name(), err)
	}
	f.Ident = f.Name()
	ser, err := f.makeSerie(cfg, records)
	if err != nil {
		err = fmt.Errorf("%s: %w", f.Name(), err)
	}
	return ser, err
}

func (f HttpFile) fetch(ctx context.Context, cfg Config) ([][]string, error) {
	method := f.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if f.Body != "" {
		body = strings.NewReader(f.Body)
	}
	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), f.Url, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range f.Headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	switch {
	case f.Token != "":
		req.Header.Set("Authorization", "Bearer "+f.Token)
	case f.Username != "":
		req.SetBasicAuth(f.Username, f.Password)
	}
	res, err := cfg.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request does not end with success result code (%d)", res.StatusCode)
	}
	ct := res.Header.Get("Content-Type")
	if isSpreadsheet(f.Url) || strings.Contains(ct, "spreadsheetml") {
		return readSheet(res.Body, f.Sheet)
	}
	return readCSV(res.Body, cfg.Delimiter)
}

// LocalData is a serie written directly in the configuration.
type LocalData struct {
	Content string
	Source
}

func (d LocalData) Name() string {
	return d.Ident
}

func (d LocalData) Load(ctx context.Context, cfg Config) (timeline.Serie, error) {
	records, err := readCSV(strings.NewReader(strings.TrimSpace(d.Content)), cfg.Delimiter)
	if err != nil {
		return timeline.Serie{}, fmt.Errorf("%s: %w", d.Name(), err)
	}
	ser, err := d.makeSerie(cfg, records)
	if err != nil {
		err = fmt.Errorf("%s: %w", d.Name(), err)
	}
	return ser, err
}

func isSpreadsheet(file string) bool {
	if x := strings.Index(file, "?"); x >= 0 {
		file = file[:x]
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return true
	default:
		return false
	}
}

func readCSVFile(file, delim string) ([][]string, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return readCSV(r, delim)
}

func readCSV(r io.Reader, delim string) ([][]string, error) {
	rs := csv.NewReader(r)
	rs.FieldsPerRecord = -1
	rs.TrimLeadingSpace = true
	rs.Comment = '#'
	if delim != "" {
		rs.Comma = []rune(delim)[0]
	}
	var list [][]string
	for {
		row, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		list = append(list, row)
	}
	return list, nil
}

func readSheetFile(file, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readRows(f, sheet)
}

func readSheet(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readRows(f, sheet)
}

func readRows(f *excelize.File, sheet string) ([][]string, error) {
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("workbook has no sheet")
		}
		sheet = slices.Fst(list)
	}
	return f.GetRows(sheet)
}
