package decode

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/midbel/timeline/dash"
)

func TestDecoder_Decode(t *testing.T) {
	r, err := os.Open("testdata/sample.chart")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	cfg, err := NewDecoder(r).Decode()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "platform team" {
		t.Errorf("title mismatched: %s", cfg.Title)
	}
	if cfg.Width != 1024 || cfg.Height != 360 {
		t.Errorf("size mismatched: %.0fx%.0f", cfg.Width, cfg.Height)
	}
	if cfg.Pad.Left != 120 || cfg.Pad.Top != 40 {
		t.Errorf("padding mismatched: %+v", cfg.Pad)
	}
	if cfg.Path != "release.svg" {
		t.Errorf("path mismatched: %s", cfg.Path)
	}
	if cfg.X.Ticks != 8 || cfg.X.Format != "%d %b" || !cfg.X.BandTicks || !cfg.X.OuterTicks {
		t.Errorf("time axis mismatched: %+v", cfg.X)
	}
	if cfg.X.Min != "2023-12-30" || cfg.X.Max != "2024-01-20" || cfg.X.Unit != "day" {
		t.Errorf("time domain mismatched: %+v", cfg.X)
	}
	if cfg.Style.BorderWidth != 1 || cfg.Style.Stroke != "#333333" {
		t.Errorf("included style mismatched: %+v", cfg.Style)
	}
	if len(cfg.Files) != 3 {
		t.Fatalf("expected 3 data sources, got %d", len(cfg.Files))
	}
	names := []string{"plan", "late", "inline"}
	for i, f := range cfg.Files {
		if f.Name() != names[i] {
			t.Errorf("source %d: name mismatched! want %s, got %s", i, names[i], f.Name())
		}
	}
	late, ok := cfg.Files[1].(dash.LocalFile)
	if !ok {
		t.Fatalf("expected local file, got %T", cfg.Files[1])
	}
	if !late.Hidden || late.Fill != "#e15759" || late.BarThickness != "flex" {
		t.Errorf("style of source mismatched: %+v", late.Style)
	}
	if late.Offset != 1 || late.Count != 2 {
		t.Errorf("limit mismatched: %+v", late.Limit)
	}
	if late.Columns.Label.Name != "task" || late.Columns.Start.Index != 1 {
		t.Errorf("columns mismatched: %+v", late.Columns)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("decoded config should be valid: %s", err)
	}
	ch, err := cfg.Chart(context.TODO())
	if err != nil {
		t.Fatal(err)
	}
	if n := len(ch.Series[0].Data); n != 3 {
		t.Errorf("plan: expected 3 rows, got %d", n)
	}
	if n := len(ch.Series[1].Data); n != 2 {
		t.Errorf("late: expected 2 rows, got %d", n)
	}
	if n := len(ch.Series[2].Data); n != 2 {
		t.Errorf("inline: expected 2 rows, got %d", n)
	}
}

func TestDecoderErrors(t *testing.T) {
	data := []struct {
		Input  string
		Option bool
	}{
		{Input: "set title \"missing render\"\n"},
		{Input: "set colour red\nrender a\n", Option: true},
		{Input: "load \"a.csv\" with (weight 2) as a\nrender a\n", Option: true},
		{Input: "load `\na,b\n`\nrender a\n"},
		{Input: "render unknown\n"},
		{Input: "set size 1, 2, 3\nrender a\n"},
		{Input: "load \"a.csv\" as a\nrender a\nset title \"late\"\n"},
	}
	for _, d := range data {
		_, err := NewDecoder(strings.NewReader(d.Input)).Decode()
		if err == nil {
			t.Errorf("%q: expected error", d.Input)
			continue
		}
		var oerr OptionError
		if d.Option && !errors.As(err, &oerr) {
			t.Errorf("%q: expected option error, got %s", d.Input, err)
		}
	}
}

func TestScanComment(t *testing.T) {
	input := "# comment\nset fill #fff # trailing\n"
	var (
		scan = Scan(strings.NewReader(input))
		list []string
	)
	for {
		tok := scan.Scan()
		if tok.Type == EOF || tok.Type == Invalid {
			break
		}
		list = append(list, tok.String())
	}
	want := "<eol>|keyword(set)|literal(fill)|literal(#fff)|<eol>"
	if got := strings.Join(list, "|"); got != want {
		t.Errorf("tokens mismatched! want %s, got %s", want, got)
	}
}
