// Package raster draws timeline charts as PNG images with gonum/plot.
package raster

import (
	"image/color"
	"image/png"
	"io"

	"github.com/midbel/timeline"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DPI makes one point of the canvas one pixel of the image.
const DPI = 72

var PNG timeline.Renderer = timeline.RenderFunc(Render)

func Render(w io.Writer, c timeline.Chart) error {
	lay, err := c.Layout()
	if err != nil {
		return err
	}
	img := vgimg.NewWith(vgimg.UseWH(vg.Points(c.Width), vg.Points(c.Height)), vgimg.UseDPI(DPI))
	cv := NewCanvas(draw.New(img), c.Height)
	cv.FillRect(timeline.Rect{W: c.Width, H: c.Height}, "white")

	if c.Title != "" {
		sty := cv.style(timeline.Font{Size: timeline.FontSize * 1.4}, "black")
		sty.XAlign = text.XCenter
		cv.canvas.FillText(sty, cv.point(c.Width/2, c.Padding.Top/2), c.Title)
	}
	drawAxis(cv, c, lay)

	area := cv.Translate(c.Padding.Left, c.Padding.Top)
	lay.Draw(area)

	return png.Encode(w, img.Image())
}

// Canvas implements timeline.Canvas on top of a gonum canvas. It flips the y
// axis so that the origin is at the top left corner.
type Canvas struct {
	canvas draw.Canvas
	height float64
	left   float64
	top    float64
}

func NewCanvas(c draw.Canvas, height float64) *Canvas {
	return &Canvas{
		canvas: c,
		height: height,
	}
}

// Translate gives a canvas drawing on the same surface with its origin moved.
func (c *Canvas) Translate(x, y float64) *Canvas {
	cv := *c
	cv.left += x
	cv.top += y
	return &cv
}

func (c *Canvas) FillRect(r timeline.Rect, col string) {
	if r.Empty() {
		return
	}
	pts := []vg.Point{
		c.point(r.X, r.Y),
		c.point(r.X+r.W, r.Y),
		c.point(r.X+r.W, r.Y+r.H),
		c.point(r.X, r.Y+r.H),
	}
	c.canvas.FillPolygon(parseColor(col), pts)
}

func (c *Canvas) FillFrame(outer, inner timeline.Rect, col string) {
	if inner.Empty() {
		c.FillRect(outer, col)
		return
	}
	var (
		top    = timeline.Rect{X: outer.X, Y: outer.Y, W: outer.W, H: inner.Y - outer.Y}
		bottom = timeline.Rect{X: outer.X, Y: inner.Y + inner.H, W: outer.W, H: outer.Y + outer.H - inner.Y - inner.H}
		left   = timeline.Rect{X: outer.X, Y: inner.Y, W: inner.X - outer.X, H: inner.H}
		right  = timeline.Rect{X: inner.X + inner.W, Y: inner.Y, W: outer.X + outer.W - inner.X - inner.W, H: inner.H}
	)
	for _, r := range []timeline.Rect{top, bottom, left, right} {
		c.FillRect(r, col)
	}
}

func (c *Canvas) FillText(str string, x, y float64, f timeline.Font, col string) {
	c.canvas.FillText(c.style(f, col), c.point(x, y), str)
}

func (c *Canvas) MeasureText(str string, f timeline.Font) float64 {
	return timeline.MeasureText(str, f)
}

func (c *Canvas) strokeLine(x0, y0, x1, y1 float64, col string, dashes ...vg.Length) {
	sty := draw.LineStyle{
		Color:  parseColor(col),
		Width:  vg.Points(1),
		Dashes: dashes,
	}
	var (
		p0 = c.point(x0, y0)
		p1 = c.point(x1, y1)
	)
	c.canvas.StrokeLine2(sty, p0.X, p0.Y, p1.X, p1.Y)
}

func (c *Canvas) style(f timeline.Font, col string) text.Style {
	sty := timeline.TextStyle(f)
	sty.Color = parseColor(col)
	return sty
}

func (c *Canvas) point(x, y float64) vg.Point {
	return vg.Point{
		X: vg.Points(c.left + x),
		Y: vg.Points(c.height - c.top - y),
	}
}

func parseColor(str string) color.Color {
	r, g, b, ok := timeline.ParseColor(str)
	if !ok {
		return color.Black
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
