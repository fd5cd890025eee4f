package timeline

import (
	"fmt"
	"testing"
	"time"
)

// linearTime maps a time to its unix milliseconds.
type linearTime struct{}

func (linearTime) Scale(t time.Time) float64 { return float64(t.UnixMilli()) }
func (linearTime) Space() float64            { return 1 }
func (linearTime) Values(int) []time.Time    { return nil }
func (linearTime) Max() float64              { return 1000 }
func (linearTime) Min() float64              { return 0 }

// hundredRows puts row i at i*100.
type hundredRows struct {
	rows int
}

func (r hundredRows) Scale(string) float64 { return 0 }
func (r hundredRows) Space() float64       { return 100 }
func (r hundredRows) Values(int) []string  { return nil }
func (r hundredRows) Max() float64         { return float64(r.rows) * 100 }
func (r hundredRows) Min() float64         { return 0 }
func (r hundredRows) Center(i int) float64 { return float64(i) * 100 }

func (r hundredRows) Ruler() Ruler {
	ruler := Ruler{
		Start: -50,
		End:   float64(r.rows)*100 - 50,
	}
	for i := 0; i < r.rows; i++ {
		ruler.Pixels = append(ruler.Pixels, r.Center(i))
		ruler.Ticks = append(ruler.Ticks, r.Center(i))
	}
	return ruler
}

func testController() Controller {
	return Controller{
		X: linearTime{},
		Y: hundredRows{rows: 3},
	}
}

func updateSerie(c Controller, s Serie, index int) []Bar {
	lim := DetermineLimits([]Serie{s}, DefaultKeys(), TimeOptions{})
	return c.Update(s, index, lim.Intervals[0])
}

func TestControllerUpdate(t *testing.T) {
	var (
		ctrl  = testController()
		serie = Serie{
			Title: "stub",
			Data: []Datum{
				MakeRow(int64(10), int64(50), "A"),
				MakeRow(int64(20), int64(20), "B"),
				MakeRow(int64(80), int64(60), "C"),
				MakeRow(nil, int64(30), "D"),
			},
		}
		bars = updateSerie(ctrl, serie, 0)
	)
	if len(bars) != len(serie.Data) {
		t.Fatalf("bars length mismatched! want %d, got %d", len(serie.Data), len(bars))
	}
	data := []struct {
		X     float64
		Width float64
		Text  string
	}{
		{X: 10, Width: 40, Text: "A"},
		{X: 20, Width: 5, Text: "B"},
		{X: 60, Width: 20, Text: "C"},
		{X: 30, Width: 0, Text: "D"},
	}
	for i, d := range data {
		b := bars[i]
		if !almostEqual(b.X, d.X) {
			t.Errorf("%d: x mismatched! want %.2f, got %.2f", i, d.X, b.X)
		}
		if !almostEqual(b.Width, d.Width) {
			t.Errorf("%d: width mismatched! want %.2f, got %.2f", i, d.Width, b.Width)
		}
		if b.Text != d.Text {
			t.Errorf("%d: text mismatched! want %s, got %s", i, d.Text, b.Text)
		}
		if !almostEqual(b.Height, 72) {
			t.Errorf("%d: height mismatched! want 72, got %.2f", i, b.Height)
		}
		if !almostEqual(b.Y+b.Height/2, 0) {
			t.Errorf("%d: bar not centered on its row: %.2f", i, b.Y)
		}
		if b.Serie != 0 || b.Index != i {
			t.Errorf("%d: bar indexes mismatched: %d/%d", i, b.Serie, b.Index)
		}
	}
}

func TestControllerRow(t *testing.T) {
	var (
		ctrl  = testController()
		serie = Serie{Data: []Datum{MakeRow(int64(10), int64(50), "A")}}
		bars  = updateSerie(ctrl, serie, 2)
	)
	if got := bars[0].Y + bars[0].Height/2; !almostEqual(got, 200) {
		t.Errorf("bar should be centered on row 2: %.2f", got)
	}
}

func TestControllerMinBarLength(t *testing.T) {
	ctrl := testController()
	ctrl.Defaults.MinBarLength = Fixed(12.0)

	serie := Serie{
		Data: []Datum{
			MakeRow(int64(10), int64(10), "A"),
			MakeRow(int64(10), int64(10), "B"),
		},
		Custom: []Style{
			{},
			{MinBarLength: Fixed(0.0)},
		},
	}
	bars := updateSerie(ctrl, serie, 0)
	if bars[0].Width != 12 {
		t.Errorf("width should be clamped to 12, got %.2f", bars[0].Width)
	}
	if bars[1].Width != 0 {
		t.Errorf("width should not be clamped, got %.2f", bars[1].Width)
	}
}

func TestControllerBorderSkipped(t *testing.T) {
	data := []struct {
		Edge  Edge
		Inner Rect
	}{
		{Edge: EdgeLeft, Inner: Rect{X: 10, W: 38}},
		{Edge: EdgeRight, Inner: Rect{X: 12, W: 38}},
		{Edge: EdgeNone, Inner: Rect{X: 12, W: 36}},
	}
	for _, d := range data {
		serie := Serie{
			Data: []Datum{MakeRow(int64(10), int64(50), "A")},
			Style: Style{
				BorderWidth:   Fixed(UniformBorder(2)),
				BorderSkipped: Fixed(d.Edge),
			},
		}
		bars := updateSerie(testController(), serie, 0)
		_, inner := bars[0].Rects()
		if !almostEqual(inner.X, d.Inner.X) || !almostEqual(inner.W, d.Inner.W) {
			t.Errorf("%d: inner mismatched! want x=%.0f,w=%.0f, got x=%.2f,w=%.2f", d.Edge, d.Inner.X, d.Inner.W, inner.X, inner.W)
		}
	}
}

func TestControllerOptions(t *testing.T) {
	ctrl := testController()
	ctrl.Defaults.BackgroundColor = Fixed("green")

	data := []struct {
		Serie Serie
		Index int
		Want  []string
	}{
		{
			Serie: Serie{
				Style: Style{BackgroundColor: Fixed("blue")},
				Custom: []Style{
					{BackgroundColor: Fixed("red")},
				},
				Data: []Datum{MakeRow(nil, nil, ""), MakeRow(nil, nil, "")},
			},
			Want: []string{"red", "blue"},
		},
		{
			Serie: Serie{
				Data: []Datum{MakeRow(nil, nil, "")},
			},
			Want: []string{"green"},
		},
		{
			Serie: Serie{
				Style: Style{
					BackgroundColor: Scripted(func(ctx Context) string {
						return fmt.Sprintf("#%02x0000", ctx.Index)
					}),
				},
				Data: []Datum{MakeRow(nil, nil, ""), MakeRow(nil, nil, "")},
			},
			Want: []string{"#000000", "#010000"},
		},
	}
	for _, d := range data {
		for i, want := range d.Want {
			opts := ctrl.Options(d.Serie, d.Index, i)
			if opts.BackgroundColor != want {
				t.Errorf("%d: background mismatched! want %s, got %s", i, want, opts.BackgroundColor)
			}
			if opts.BorderColor != want {
				t.Errorf("%d: border should default to background! want %s, got %s", i, want, opts.BorderColor)
			}
		}
	}
}

func TestControllerDefaults(t *testing.T) {
	var (
		ctrl  Controller
		serie = Serie{Data: []Datum{MakeRow(nil, nil, "")}}
		opts  = ctrl.Options(serie, 3, 0)
	)
	if opts.BackgroundColor != Tableau10.Color(3) {
		t.Errorf("background should come from palette, got %s", opts.BackgroundColor)
	}
	if opts.TextColor != TextColorFor(opts.BackgroundColor) {
		t.Errorf("text color should come from luminance, got %s", opts.TextColor)
	}
	if opts.Font.Size != DefaultFontSize || !opts.Font.Bold {
		t.Errorf("font mismatched: %+v", opts.Font)
	}
	if opts.MinBarLength != 5 || opts.TextPadding != 4 || !opts.ShowText {
		t.Errorf("defaults mismatched: %+v", opts)
	}
}

func TestControllerHideText(t *testing.T) {
	ctrl := testController()
	ctrl.Defaults.ShowText = Fixed(false)

	serie := Serie{Data: []Datum{MakeRow(int64(10), int64(50), "A")}}
	bars := updateSerie(ctrl, serie, 0)
	if bars[0].Text != "" {
		t.Errorf("text should be hidden, got %s", bars[0].Text)
	}
}

type recorder struct {
	rects  []Rect
	frames int
	texts  []string
	pos    [][2]float64
}

func (r *recorder) FillRect(rec Rect, _ string) {
	r.rects = append(r.rects, rec)
}

func (r *recorder) FillFrame(_, _ Rect, _ string) {
	r.frames++
}

func (r *recorder) FillText(str string, x, y float64, _ Font, _ string) {
	r.texts = append(r.texts, str)
	r.pos = append(r.pos, [2]float64{x, y})
}

func (r *recorder) MeasureText(str string, _ Font) float64 {
	return float64(len(str)) * 6
}

func TestDrawBar(t *testing.T) {
	data := []struct {
		Name   string
		Bar    Bar
		Rects  int
		Frames int
		Text   bool
	}{
		{
			Name:  "text",
			Bar:   Bar{X: 0, Y: 0, Width: 100, Height: 20, Text: "label", TextPadding: 4},
			Rects: 1,
			Text:  true,
		},
		{
			Name:  "narrow",
			Bar:   Bar{X: 0, Y: 0, Width: 20, Height: 20, Text: "label", TextPadding: 4},
			Rects: 1,
		},
		{
			Name:  "flat",
			Bar:   Bar{X: 0, Y: 0, Width: 100, Height: 8, Text: "label", TextPadding: 4},
			Rects: 1,
		},
		{
			Name:   "border",
			Bar:    Bar{X: 0, Y: 0, Width: 100, Height: 20, BorderWidth: UniformBorder(2)},
			Rects:  1,
			Frames: 1,
		},
		{
			Name: "empty",
			Bar:  Bar{X: 0, Y: 0, Width: 0, Height: 20, Text: "label"},
		},
	}
	for _, d := range data {
		var rec recorder
		DrawBar(&rec, d.Bar)
		if len(rec.rects) != d.Rects {
			t.Errorf("%s: rects mismatched! want %d, got %d", d.Name, d.Rects, len(rec.rects))
		}
		if rec.frames != d.Frames {
			t.Errorf("%s: frames mismatched! want %d, got %d", d.Name, d.Frames, rec.frames)
		}
		if got := len(rec.texts) > 0; got != d.Text {
			t.Errorf("%s: text drawn mismatched! want %t, got %t", d.Name, d.Text, got)
		}
	}
}

func TestDrawBarTextPosition(t *testing.T) {
	var (
		rec recorder
		bar = Bar{X: 10, Y: 100, Width: 100, Height: 20, Text: "label", TextPadding: 4}
	)
	DrawBar(&rec, bar)
	if len(rec.pos) != 1 {
		t.Fatalf("text not drawn")
	}
	if rec.pos[0] != [2]float64{14, 110} {
		t.Errorf("text position mismatched: %v", rec.pos[0])
	}
}
