package timeline

import (
	"bufio"
	"io"
	"math"
	"time"

	"github.com/midbel/svg"
)

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

// AxisStyle configures the rendering of an axis.
type AxisStyle struct {
	Position Orientation
	Ticks    int
	// Format is a time layout used for tick labels. The display format of the
	// time unit is used when empty.
	Format string
	// Timestamps puts one tick on every distinct start and end of the data.
	Timestamps bool
	Bands      bool
	Grid       bool
}

type Chart struct {
	Title  string
	Width  float64
	Height float64
	Type   string

	Padding

	Keys     Keys
	Time     TimeOptions
	Axis     AxisStyle
	Defaults Style
	Tooltip  Tooltip
	Rows     AxisStyle

	Series []Serie
}

func (c Chart) DrawingWidth() float64 {
	return c.Width - c.Padding.Horizontal()
}

func (c Chart) DrawingHeight() float64 {
	return c.Height - c.Padding.Vertical()
}

func (c Chart) kind() string {
	if c.Type == "" {
		return TypeTimeline
	}
	return c.Type
}

// Layout runs one update pass: limits of the time axis, scalers and the bars of
// every visible serie.
func (c Chart) Layout() (Layout, error) {
	scale, err := LookupScale(c.kind())
	if err != nil {
		return Layout{}, err
	}
	ctrl, err := LookupController(c.kind())
	if err != nil {
		return Layout{}, err
	}
	var (
		xrange = NewRange(0, c.DrawingWidth())
		yrange = NewRange(0, c.DrawingHeight())
	)
	lay := Layout{
		Padding: c.Padding,
		Series:  c.Series,
		Tooltip: c.Tooltip,
		Bars:    make([][]Bar, len(c.Series)),
	}
	lay.Limits, lay.X = scale(c.Series, c.Keys, c.Time, xrange)
	lay.Y = CategoryScaler(titles(c.Series), yrange)
	lay.Controller = ctrl(lay.X, lay.Y, c.Defaults)

	for i, s := range c.Series {
		if !s.Visible() {
			continue
		}
		lay.Bars[i] = lay.Controller.Update(s, i, lay.Limits.Intervals[i])
	}
	return lay, nil
}

func (c Chart) Render(w io.Writer) error {
	lay, err := c.Layout()
	if err != nil {
		return err
	}
	el := svg.NewSVG()
	el.Dim = svg.NewDim(c.Width, c.Height)
	el.OmitProlog = true

	if c.Title != "" {
		el.Append(c.drawTitle())
	}
	el.Append(c.drawAxis(lay))

	area := getBaseGroup("", "area")
	area.Transform = svg.Translate(c.Padding.Left, c.Padding.Top)
	for _, bars := range lay.Bars {
		if len(bars) == 0 {
			continue
		}
		grp := getBaseGroup("", "serie")
		for _, b := range bars {
			cv := svgCanvas{group: &grp}
			DrawBar(cv.withTitle(lay.TooltipText(b)), b)
		}
		area.Append(grp.AsElement())
	}
	el.Append(area.AsElement())

	bw := bufio.NewWriter(w)
	el.Render(bw)
	return bw.Flush()
}

func (c Chart) drawTitle() svg.Element {
	txt := svg.NewText(c.Title)
	txt.Pos = svg.NewPos(c.Width/2, c.Padding.Top/2)
	txt.Font = svg.NewFont(FontSize * 1.4)
	txt.Anchor = "middle"
	txt.Baseline = "middle"
	return txt.AsElement()
}

func (c Chart) timeAxis(lay Layout) TimeAxis {
	axis := TimeAxis{
		Orientation:    c.TimePosition(),
		Ticks:          c.Axis.Ticks,
		Unit:           c.Time.unit(),
		Scaler:         lay.X,
		WithInnerTicks: true,
		WithLabelTicks: true,
		WithOuterTicks: c.Axis.Grid,
		WithBands:      c.Axis.Bands,
	}
	axis.Domain = c.Ticks(lay)
	axis.Format = c.FormatTick
	return axis
}

// Ticks gives the times where the time axis has a tick.
func (c Chart) Ticks(lay Layout) []time.Time {
	if c.Axis.Timestamps && len(lay.Limits.Timestamps) > 0 {
		return lay.Limits.Timestamps
	}
	return lay.X.Values(c.Axis.Ticks)
}

func (c Chart) FormatTick(t time.Time) string {
	if c.Axis.Format != "" {
		return t.Format(c.Axis.Format)
	}
	return FormatTime(t, c.Time.unit())
}

func (c Chart) rowAxis(lay Layout) CategoryAxis {
	axis := CategoryAxis{
		Orientation:    c.RowPosition(),
		Scaler:         lay.Y,
		WithInnerTicks: true,
		WithOuterTicks: c.Rows.Grid,
		WithBands:      c.Rows.Bands,
	}
	return axis
}

// TimePosition gives the side of the time axis: top or bottom.
func (c Chart) TimePosition() Orientation {
	if c.Axis.Position == OrientTop {
		return OrientTop
	}
	return OrientBottom
}

// RowPosition gives the side of the row axis: left or right.
func (c Chart) RowPosition() Orientation {
	if c.Rows.Position == OrientRight {
		return OrientRight
	}
	return OrientLeft
}

func (c Chart) drawAxis(lay Layout) svg.Element {
	var (
		g     = getBaseGroup("", "axis")
		xaxis = c.timeAxis(lay)
		rows  = c.rowAxis(lay)
	)
	if xaxis.Orientation == OrientTop {
		el := xaxis.Render(c.DrawingWidth(), c.DrawingHeight(), c.Padding.Left, c.Padding.Top)
		g.Append(el)
	} else {
		el := xaxis.Render(c.DrawingWidth(), c.DrawingHeight(), c.Padding.Left, c.Height-c.Padding.Bottom)
		g.Append(el)
	}
	if rows.Orientation == OrientRight {
		el := rows.Render(c.DrawingHeight(), c.DrawingWidth(), c.Width-c.Padding.Right, c.Padding.Top)
		g.Append(el)
	} else {
		el := rows.Render(c.DrawingHeight(), c.DrawingWidth(), c.Padding.Left, c.Padding.Top)
		g.Append(el)
	}
	return g.AsElement()
}

// Layout is the result of one update pass. Hit-testing coordinates are given
// relatively to the chart, padding included.
type Layout struct {
	Padding
	Limits     Limits
	X          Scaler[time.Time]
	Y          IndexScaler
	Controller Controller
	Tooltip    Tooltip
	Series     []Serie
	Bars       [][]Bar
}

func (y Layout) Draw(cv Canvas) {
	for _, bars := range y.Bars {
		y.Controller.Draw(cv, bars)
	}
}

func (y Layout) local(mx, my float64) (float64, float64) {
	return mx - y.Padding.Left, my - y.Padding.Top
}

// At gives the bars containing the given point.
func (y Layout) At(mx, my float64) []Bar {
	mx, my = y.local(mx, my)
	var list []Bar
	for _, bars := range y.Bars {
		for _, b := range bars {
			if b.Width > 0 && b.InRange(mx, my) {
				list = append(list, b)
			}
		}
	}
	return list
}

// AtX gives the bars whose horizontal extent contains mx.
func (y Layout) AtX(mx float64) []Bar {
	mx, _ = y.local(mx, 0)
	var list []Bar
	for _, bars := range y.Bars {
		for _, b := range bars {
			if b.Width > 0 && b.InXRange(mx) {
				list = append(list, b)
			}
		}
	}
	return list
}

// Nearest gives the bar whose center is the closest to the given point.
func (y Layout) Nearest(mx, my float64) (Bar, bool) {
	mx, my = y.local(mx, my)
	var (
		found bool
		near  Bar
		dist  = math.Inf(1)
	)
	for _, bars := range y.Bars {
		for _, b := range bars {
			if b.Width <= 0 {
				continue
			}
			cx, cy := b.CenterPoint()
			if d := math.Hypot(cx-mx, cy-my); d < dist {
				dist, near, found = d, b, true
			}
		}
	}
	return near, found
}

func (y Layout) Item(b Bar) TooltipItem {
	item := TooltipItem{
		SerieIndex: b.Serie,
		Index:      b.Index,
		Interval:   b.Interval,
	}
	if b.Serie >= 0 && b.Serie < len(y.Series) {
		item.Serie = y.Series[b.Serie]
	}
	return item
}

func (y Layout) TooltipText(b Bar) string {
	return y.Tooltip.Text(y.Item(b))
}
