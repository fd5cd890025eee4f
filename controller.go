package timeline

import (
	"math"
	"time"
)

// Controller turns the intervals of a serie into bars and draws them.
type Controller struct {
	X Scaler[time.Time]
	Y IndexScaler
	// Defaults holds the options shared by every timeline serie of a chart.
	Defaults Style
}

func (c Controller) Update(s Serie, index int, intervals []Interval) []Bar {
	bars := make([]Bar, 0, len(intervals))
	for i := range intervals {
		bars = append(bars, c.UpdateElement(s, index, i, intervals[i]))
	}
	return bars
}

// Options resolves the style of the i-th element of the given serie.
func (c Controller) Options(s Serie, index, i int) Options {
	ctx := Context{
		Serie:      s,
		SerieIndex: index,
		Index:      i,
	}
	if i >= 0 && i < len(s.Data) {
		ctx.Datum = s.Data[i]
	}
	return resolveOptions(ctx, s.custom(i), s.Style, c.Defaults.Merge(DefaultStyle()))
}

func (c Controller) UpdateElement(s Serie, index, i int, iv Interval) Bar {
	var (
		opts   = c.Options(s, index, i)
		pixels = BarIndexPixels(index, c.Y.Ruler(), opts)
		bar    = Bar{
			Serie:           index,
			Index:           i,
			Interval:        iv,
			BackgroundColor: opts.BackgroundColor,
			BorderColor:     opts.BorderColor,
			BorderWidth:     opts.BorderWidth,
			BorderSkipped:   opts.BorderSkipped,
			TextColor:       opts.TextColor,
			TextPadding:     opts.TextPadding,
			Font:            opts.Font,
		}
	)
	if opts.ShowText {
		bar.Text = iv.Label
	}
	bar.Y = c.Y.Center(index) - pixels.Size/2
	bar.Height = pixels.Size
	if !iv.Valid() {
		// nothing to show but the bar keeps its row
		if iv.HasStart {
			bar.X = c.X.Scale(iv.Start)
		} else if iv.HasEnd {
			bar.X = c.X.Scale(iv.End)
		} else {
			bar.X = c.X.Min()
		}
		return bar
	}
	var (
		start = c.X.Scale(iv.Start)
		stop  = c.X.Scale(iv.End)
	)
	bar.X = start
	bar.Width = math.Max(stop-start, opts.MinBarLength)
	return bar
}

func (c Controller) Draw(cv Canvas, bars []Bar) {
	for _, b := range bars {
		DrawBar(cv, b)
	}
}

// DrawBar fills the bar, its border and its label when the label fits in the
// area left inside the border.
func DrawBar(cv Canvas, b Bar) {
	outer, inner := b.Rects()
	if outer.Empty() {
		return
	}
	cv.FillRect(outer, b.BackgroundColor)
	if outer.W != inner.W || outer.H != inner.H {
		cv.FillFrame(outer, inner, b.BorderColor)
	}
	if b.Text == "" || inner.Empty() {
		return
	}
	var (
		font  = b.Font.orDefault()
		width = cv.MeasureText(b.Text, font)
		left  = b.X + b.TextPadding
	)
	if width <= 0 || left < inner.X || left+width > inner.X+inner.W || font.Size > inner.H {
		return
	}
	cv.FillText(b.Text, left, b.Y+b.Height/2, font, b.TextColor)
}
