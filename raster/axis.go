package raster

import (
	"time"

	"github.com/midbel/timeline"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

const (
	tickSize  = timeline.FontSize * 0.8
	bandColor = "#f2f2f2"
	gridColor = "#e6e6e6"
)

// drawAxis draws the bands and grid lines first so that the domain lines, the
// ticks and their labels stay on top.
func drawAxis(cv *Canvas, c timeline.Chart, lay timeline.Layout) {
	var (
		area  = cv.Translate(c.Padding.Left, c.Padding.Top)
		ticks = c.Ticks(lay)
	)
	if c.Rows.Bands {
		drawRowBands(area, c, lay)
	}
	if c.Axis.Bands {
		drawTimeBands(area, c, lay, ticks)
	}
	if c.Rows.Grid {
		for i := range lay.Y.Values(0) {
			y := lay.Y.Center(i)
			area.strokeLine(0, y, c.DrawingWidth(), y, gridColor, vg.Points(5))
		}
	}
	if c.Axis.Grid {
		for i, t := range ticks {
			if i == 0 || i == len(ticks)-1 {
				continue
			}
			x := lay.X.Scale(t) - lay.X.Min()
			area.strokeLine(x, 0, x, c.DrawingHeight(), gridColor)
		}
	}
	drawTimeAxis(area, c, lay, ticks)
	drawRowAxis(area, c, lay)
}

func drawRowBands(area *Canvas, c timeline.Chart, lay timeline.Layout) {
	space := lay.Y.Space()
	for i := range lay.Y.Values(0) {
		if i%2 == 0 {
			continue
		}
		r := timeline.Rect{
			Y: lay.Y.Center(i) - space/2,
			W: c.DrawingWidth(),
			H: space,
		}
		area.FillRect(r, bandColor)
	}
}

func drawTimeBands(area *Canvas, c timeline.Chart, lay timeline.Layout, ticks []time.Time) {
	for i := 0; i < len(ticks)-1; i += 2 {
		var (
			x0 = lay.X.Scale(ticks[i]) - lay.X.Min()
			x1 = lay.X.Scale(ticks[i+1]) - lay.X.Min()
		)
		area.FillRect(timeline.Rect{X: x0, W: x1 - x0, H: c.DrawingHeight()}, bandColor)
	}
}

func drawTimeAxis(area *Canvas, c timeline.Chart, lay timeline.Layout, ticks []time.Time) {
	var (
		font     = timeline.Font{Size: timeline.FontSize}
		width    = c.DrawingWidth()
		baseline = c.DrawingHeight()
		dir      = 1.0
	)
	if c.TimePosition() == timeline.OrientTop {
		baseline, dir = 0, -1
	}
	area.strokeLine(0, baseline, width, baseline, "black")
	for _, t := range ticks {
		x := lay.X.Scale(t) - lay.X.Min()
		area.strokeLine(x, baseline, x, baseline+dir*tickSize, "black")

		sty := area.style(font, "black")
		sty.XAlign = text.XCenter
		sty.YAlign = text.YTop
		if dir < 0 {
			sty.YAlign = text.YBottom
		}
		area.canvas.FillText(sty, area.point(x, baseline+dir*tickSize*1.2), c.FormatTick(t))
	}
}

func drawRowAxis(area *Canvas, c timeline.Chart, lay timeline.Layout) {
	var (
		font = timeline.Font{Size: timeline.FontSize}
		base = 0.0
		dir  = -1.0
	)
	if c.RowPosition() == timeline.OrientRight {
		base, dir = c.DrawingWidth(), 1
	}
	area.strokeLine(base, 0, base, c.DrawingHeight(), "black")
	for i, s := range lay.Y.Values(0) {
		y := lay.Y.Center(i)
		area.strokeLine(base, y, base+dir*tickSize, y, "black")

		sty := area.style(font, "black")
		sty.XAlign = text.XRight
		if dir > 0 {
			sty.XAlign = text.XLeft
		}
		area.canvas.FillText(sty, area.point(base+dir*tickSize*1.2, y), s)
	}
}
