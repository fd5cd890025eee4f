package timeline

import (
	"math"
)

type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Bar is the visual model of one interval for one render pass.
type Bar struct {
	X      float64
	Y      float64
	Width  float64
	Height float64

	BackgroundColor string
	BorderColor     string
	BorderWidth     Border
	BorderSkipped   Edge

	Text        string
	TextColor   string
	TextPadding float64
	Font        Font

	Serie    int
	Index    int
	Interval Interval
}

type Bounds struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (b Bar) Bounds() Bounds {
	return Bounds{
		Left:   b.X,
		Top:    b.Y,
		Right:  b.X + b.Width,
		Bottom: b.Y + b.Height,
	}
}

// InXRange reports whether mx lies in the horizontal extent of the bar.
func (b Bar) InXRange(mx float64) bool {
	bs := b.Bounds()
	return mx >= bs.Left && mx <= bs.Right
}

// InRange reports whether the point (mx, my) lies in the bar, boundaries
// included.
func (b Bar) InRange(mx, my float64) bool {
	bs := b.Bounds()
	return mx >= bs.Left && mx <= bs.Right && my >= bs.Top && my <= bs.Bottom
}

func (b Bar) CenterPoint() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

func (b Bar) TooltipPosition() (float64, float64) {
	return b.CenterPoint()
}

func (b Bar) Area() float64 {
	return b.Height * b.Width
}

// Rects gives the outer rectangle of the bar and the inner one left once the
// border is removed.
func (b Bar) Rects() (Rect, Rect) {
	var (
		bs     = b.Bounds()
		width  = bs.Right - bs.Left
		height = bs.Bottom - bs.Top
		border = b.clampBorder(width/2, height/2)
	)
	outer := Rect{
		X: bs.Left,
		Y: bs.Top,
		W: width,
		H: height,
	}
	inner := Rect{
		X: bs.Left + border.Left,
		Y: bs.Top + border.Top,
		W: width - border.Left - border.Right,
		H: height - border.Top - border.Bottom,
	}
	return outer, inner
}

func (b Bar) clampBorder(maxW, maxH float64) Border {
	var (
		skip  = b.BorderSkipped
		width = b.BorderWidth
	)
	clamp := func(v, max float64, skipped bool) float64 {
		if skipped || v < 0 {
			return 0
		}
		if v > max {
			return max
		}
		return v
	}
	return Border{
		Top:    clamp(width.Top, maxH, skip == EdgeTop),
		Right:  clamp(width.Right, maxW, skip == EdgeRight),
		Bottom: clamp(width.Bottom, maxH, skip == EdgeBottom),
		Left:   clamp(width.Left, maxW, skip == EdgeLeft),
	}
}

// BarPixels is the position of a bar along the index axis.
type BarPixels struct {
	Base   float64
	Head   float64
	Center float64
	Size   float64
}

type categoryTraits struct {
	chunk float64
	ratio float64
	start float64
}

func minSampleSize(r Ruler) float64 {
	min := r.Len()
	for i := 1; i < len(r.Pixels); i++ {
		min = math.Min(min, math.Abs(r.Pixels[i]-r.Pixels[i-1]))
	}
	for i := 1; i < len(r.Ticks); i++ {
		min = math.Min(min, math.Abs(r.Ticks[i]-r.Ticks[i-1]))
	}
	return min
}

// fitTraits sizes every bar equally. Timeline rows are never stacked so the
// stack count is always one.
func fitTraits(index int, r Ruler, opts Options) categoryTraits {
	var (
		curr = pixelAt(r, index)
		size float64
		rate float64
	)
	if opts.BarThickness.Mode == ThicknessFixed {
		size = opts.BarThickness.Size
		rate = 1
	} else {
		size = minSampleSize(r) * opts.CategoryPercentage
		rate = opts.BarPercentage
	}
	return categoryTraits{
		chunk: size,
		ratio: rate,
		start: curr - size/2,
	}
}

// flexTraits sizes a bar from the distance to its neighbours.
func flexTraits(index int, r Ruler, opts Options) categoryTraits {
	var (
		curr    = pixelAt(r, index)
		prev    float64
		next    float64
		hasPrev = index > 0 && index-1 < len(r.Pixels)
		hasNext = index < len(r.Pixels)-1
		percent = opts.CategoryPercentage
	)
	if hasPrev {
		prev = r.Pixels[index-1]
	}
	if hasNext {
		next = r.Pixels[index+1]
	}
	if !hasPrev {
		if hasNext {
			prev = curr - (next - curr)
		} else {
			prev = curr - r.Len()
		}
	}
	if !hasNext {
		next = curr + curr - prev
	}
	return categoryTraits{
		chunk: math.Abs(next-prev) / 2 * percent,
		ratio: opts.BarPercentage,
		start: curr - (curr-math.Min(prev, next))/2*percent,
	}
}

func pixelAt(r Ruler, index int) float64 {
	if index < 0 || index >= len(r.Pixels) {
		return r.Start
	}
	return r.Pixels[index]
}

// BarIndexPixels computes where the bar of the given row lies on the index
// axis.
func BarIndexPixels(index int, r Ruler, opts Options) BarPixels {
	var traits categoryTraits
	if opts.BarThickness.Mode == ThicknessFlex {
		traits = flexTraits(index, r, opts)
	} else {
		traits = fitTraits(index, r, opts)
	}
	var (
		center = traits.start + traits.chunk/2
		size   = traits.chunk * traits.ratio
	)
	if opts.MaxBarThickness > 0 {
		size = math.Min(size, opts.MaxBarThickness)
	}
	return BarPixels{
		Base:   center - size/2,
		Head:   center + size/2,
		Center: center,
		Size:   size,
	}
}
