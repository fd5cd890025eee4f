package dash

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/midbel/timeline"
	"github.com/xuri/excelize/v2"
)

const sample = `
start,end,task
2024-01-01,2024-01-05,design
2024-01-03,2024-01-10,build
2024-01-08,,review
`

func TestParseFormat(t *testing.T) {
	data := []struct {
		Input string
		Want  string
		Fail  bool
	}{
		{Input: "%Y-%m-%d", Want: "2006-01-02"},
		{Input: "%d/%m/%y %H:%M", Want: "02/01/06 15:04"},
		{Input: "%H:%M:%S.%L", Want: "15:04:05.000"},
		{Input: "%T%L", Want: "15:04:05.000"},
		{Input: "%b %e", Want: "Jan _2"},
		{Input: "%Q", Fail: true},
		{Input: "%Y%", Fail: true},
	}
	for _, d := range data {
		got, err := parseFormat(d.Input)
		if d.Fail {
			if err == nil {
				t.Errorf("%s: expected error", d.Input)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %s", d.Input, err)
			continue
		}
		if got != d.Want {
			t.Errorf("%s: mismatched! want %s, got %s", d.Input, d.Want, got)
		}
	}
}

func TestLimit(t *testing.T) {
	list := [][]string{{"0"}, {"1"}, {"2"}, {"3"}, {"4"}}
	data := []struct {
		Limit
		Want []string
	}{
		{Limit: Limit{}, Want: []string{"0", "1", "2", "3", "4"}},
		{Limit: Limit{Offset: 2}, Want: []string{"2", "3", "4"}},
		{Limit: Limit{Count: 2}, Want: []string{"0", "1"}},
		{Limit: Limit{Offset: 1, Count: 2}, Want: []string{"1", "2"}},
		{Limit: Limit{Offset: -2}, Want: []string{"3", "4"}},
		{Limit: Limit{Offset: 10}, Want: nil},
	}
	for _, d := range data {
		var got []string
		for _, r := range d.Limit.apply(list) {
			got = append(got, r[0])
		}
		if strings.Join(got, ",") != strings.Join(d.Want, ",") {
			t.Errorf("%+v: mismatched! want %v, got %v", d.Limit, d.Want, got)
		}
	}
}

func TestLocalData(t *testing.T) {
	src := LocalData{
		Content: sample,
		Source:  Source{Ident: "inline"},
	}
	ser, err := src.Load(context.TODO(), Default())
	if err != nil {
		t.Fatal(err)
	}
	if ser.Title != "inline" {
		t.Errorf("title mismatched: %s", ser.Title)
	}
	if len(ser.Data) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(ser.Data))
	}
	row := ser.Data[0]
	when, ok := row.Field(timeline.DefaultKeys().Start).(time.Time)
	if !ok || !when.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start mismatched: %v", row)
	}
	if end := ser.Data[2].Field(timeline.DefaultKeys().End); end != nil {
		t.Errorf("empty end should be missing, got %v", end)
	}
}

func TestLocalFileColumns(t *testing.T) {
	var (
		dir  = t.TempDir()
		file = filepath.Join(dir, "plan.csv")
		body = "task;from;to\ndesign;1704067200000;1704412800000\n"
	)
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	src := LocalFile{
		Path: file,
		Source: Source{
			Columns: Columns{
				Start: SelectName("from"),
				End:   SelectName("to"),
				Label: SelectName("task"),
			},
		},
	}
	cfg := Default()
	cfg.Delimiter = ";"
	ser, err := src.Load(context.TODO(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if ser.Title != "plan" {
		t.Errorf("title should default to file name, got %s", ser.Title)
	}
	if len(ser.Data) != 1 {
		t.Fatalf("expected 1 row, got %d", len(ser.Data))
	}
	keys := timeline.DefaultKeys()
	if v, ok := ser.Data[0].Field(keys.Start).(int64); !ok || v != 1704067200000 {
		t.Errorf("start should be given in milliseconds: %v", ser.Data[0])
	}
	if v := ser.Data[0].Field(keys.Label); v != "design" {
		t.Errorf("label mismatched: %v", v)
	}

	src.Columns.Start = SelectName("since")
	if _, err := src.Load(context.TODO(), cfg); err == nil {
		t.Errorf("unknown column should fail")
	}
}

func TestLocalFileSheet(t *testing.T) {
	var (
		file = filepath.Join(t.TempDir(), "plan.xlsx")
		wb   = excelize.NewFile()
		rows = [][]string{
			{"start", "end", "task"},
			{"2024-02-01", "2024-02-10", "design"},
			{"2024-02-05", "2024-02-20", "build"},
		}
	)
	for i, r := range rows {
		for j, v := range r {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := wb.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := wb.SaveAs(file); err != nil {
		t.Fatal(err)
	}
	wb.Close()

	src := LocalFile{Path: file}
	ser, err := src.Load(context.TODO(), Default())
	if err != nil {
		t.Fatal(err)
	}
	if len(ser.Data) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ser.Data))
	}
	if v := ser.Data[1].Field(timeline.DefaultKeys().Label); v != "build" {
		t.Errorf("label mismatched: %v", v)
	}
	src.Sheet = "Missing"
	if _, err := src.Load(context.TODO(), Default()); err == nil {
		t.Errorf("unknown sheet should fail")
	}
}

func TestHttpFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("X-Project") != "timeline" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sample))
	}))
	defer srv.Close()

	src := HttpFile{
		Url:      srv.URL + "/plan.csv",
		Username: "user",
		Password: "secret",
		Headers:  http.Header{"X-Project": []string{"timeline"}},
	}
	ser, err := src.Load(context.TODO(), Default())
	if err != nil {
		t.Fatal(err)
	}
	if ser.Title != "plan" || len(ser.Data) != 3 {
		t.Errorf("unexpected serie: %s (%d rows)", ser.Title, len(ser.Data))
	}
	src.Password = "wrong"
	if _, err := src.Load(context.TODO(), Default()); err == nil {
		t.Errorf("unauthorized request should fail")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Width = 0
	cfg.X.Unit = "fortnight"
	cfg.Y.Position = PosTop
	cfg.Style.BorderSkipped = "middle"

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("invalid config should fail")
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected multiple errors, got %T", err)
	}
	if len(merr.Errors) < 5 {
		t.Errorf("expected at least 5 errors, got %d: %s", len(merr.Errors), err)
	}

	cfg = Default()
	cfg.Files = []DataSource{LocalData{Content: sample, Source: Source{Ident: "a"}}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config should pass: %s", err)
	}
	cfg.Files = append(cfg.Files, LocalData{Content: sample, Source: Source{Ident: "a"}})
	if err := cfg.Validate(); err == nil {
		t.Errorf("duplicate source should fail")
	}
}

func TestConfigChart(t *testing.T) {
	cfg := Default()
	cfg.Title = "release"
	cfg.X.Format = "%d %b"
	cfg.Files = []DataSource{
		LocalData{Content: sample, Source: Source{Ident: "team-a"}},
		LocalData{Content: sample, Source: Source{Ident: "team-b", Style: Style{Fill: "firebrick", Hidden: true}}},
	}
	ch, err := cfg.Chart(context.TODO())
	if err != nil {
		t.Fatal(err)
	}
	if len(ch.Series) != 2 || ch.Series[0].Title != "team-a" || ch.Series[1].Title != "team-b" {
		t.Fatalf("series not loaded in order: %v", ch.Series)
	}
	if !ch.Series[1].Hidden {
		t.Errorf("second serie should be hidden")
	}
	if ch.Axis.Format != "02 Jan" {
		t.Errorf("axis format mismatched: %s", ch.Axis.Format)
	}
	lay, err := ch.Layout()
	if err != nil {
		t.Fatal(err)
	}
	if !lay.Limits.Min.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("min mismatched: %s", lay.Limits.Min)
	}
	if !lay.Limits.Max.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("max mismatched: %s", lay.Limits.Max)
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.svg", "out.png"} {
		cfg := Default()
		cfg.Path = filepath.Join(dir, name)
		cfg.Files = []DataSource{LocalData{Content: sample, Source: Source{Ident: "plan"}}}
		if err := cfg.Render(context.TODO()); err != nil {
			t.Fatalf("%s: %s", name, err)
		}
		buf, err := os.ReadFile(cfg.Path)
		if err != nil {
			t.Fatal(err)
		}
		switch filepath.Ext(name) {
		case ".png":
			if !bytes.HasPrefix(buf, []byte("\x89PNG")) {
				t.Errorf("output is not a png image")
			}
		case ".svg":
			if !bytes.Contains(buf, []byte("<svg")) {
				t.Errorf("output is not a svg document")
			}
		}
	}
}
