package raster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/midbel/timeline"
	"gonum.org/v1/plot/vg/draw"
)

func testChart() timeline.Chart {
	return timeline.Chart{
		Title:   "release",
		Width:   400,
		Height:  200,
		Padding: timeline.Padding{Top: 10, Right: 10, Bottom: 10, Left: 10},
		Defaults: timeline.Style{
			BackgroundColor: timeline.Fixed("#ff0000"),
			ShowText:        timeline.Fixed(false),
		},
		Series: []timeline.Serie{
			{
				Title: "plan",
				Data:  []timeline.Datum{timeline.MakeRow("2024-01-01", "2024-01-11", "")},
			},
		},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG.Render(&buf, testChart()); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a png image: %s", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 400 || bounds.Dy() != 200 {
		t.Errorf("size mismatched: %dx%d", bounds.Dx(), bounds.Dy())
	}
	r, g, b, _ := img.At(200, 100).RGBA()
	if r>>8 < 0xf0 || g>>8 > 0x10 || b>>8 > 0x10 {
		t.Errorf("bar not drawn at the center of the chart: %d,%d,%d", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = img.At(398, 2).RGBA()
	if r>>8 != 0xff || g>>8 != 0xff || b>>8 != 0xff {
		t.Errorf("background should be white: %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestRenderUnknownType(t *testing.T) {
	c := testChart()
	c.Type = "radar"
	var buf bytes.Buffer
	if err := PNG.Render(&buf, c); err == nil {
		t.Errorf("unknown chart type should fail")
	}
}

func TestCanvasPoint(t *testing.T) {
	cv := NewCanvas(draw.Canvas{}, 100).Translate(10, 20)
	pt := cv.point(5, 5)
	if pt.X.Points() != 15 || pt.Y.Points() != 75 {
		t.Errorf("point mismatched: %.2f,%.2f", pt.X.Points(), pt.Y.Points())
	}
}

func TestRenderRowAxisRight(t *testing.T) {
	c := testChart()
	c.Rows.Position = timeline.OrientRight

	var buf bytes.Buffer
	if err := PNG.Render(&buf, c); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a png image: %s", err)
	}
	red := func(x, y int) uint32 {
		r, _, _, _ := img.At(x, y).RGBA()
		return r >> 8
	}
	if d := min(red(389, 25), red(390, 25)); d > 0xc0 {
		t.Errorf("row axis should be drawn on the right: %d", d)
	}
	if d := min(red(9, 25), red(10, 25)); d != 0xff {
		t.Errorf("nothing should be drawn on the left: %d", d)
	}
}
