package timeline

// Context is given to scripted options.
type Context struct {
	Serie      Serie
	SerieIndex int
	Index      int
	Datum      Datum
}

// Option is either unset, a fixed value or a function of the element being
// updated.
type Option[T any] struct {
	set   bool
	value T
	fn    func(Context) T
}

func Fixed[T any](v T) Option[T] {
	return Option[T]{
		set:   true,
		value: v,
	}
}

func Scripted[T any](fn func(Context) T) Option[T] {
	return Option[T]{
		set: fn != nil,
		fn:  fn,
	}
}

func (o Option[T]) IsSet() bool {
	return o.set
}

func (o Option[T]) Get(ctx Context) T {
	if o.fn != nil {
		return o.fn(ctx)
	}
	return o.value
}

func (o Option[T]) Or(other Option[T]) Option[T] {
	if o.set {
		return o
	}
	return other
}

// Resolve returns the value of the first layer that is set. Layers are given
// from the most specific to the most general.
func Resolve[T any](ctx Context, layers ...Option[T]) T {
	for _, o := range layers {
		if o.set {
			return o.Get(ctx)
		}
	}
	var zero T
	return zero
}

type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
)

type Border struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func UniformBorder(w float64) Border {
	return Border{
		Top:    w,
		Right:  w,
		Bottom: w,
		Left:   w,
	}
}

func (b Border) IsZero() bool {
	return b == Border{}
}

type ThicknessMode int

const (
	ThicknessFit ThicknessMode = iota
	ThicknessFixed
	ThicknessFlex
)

type Thickness struct {
	Mode ThicknessMode
	Size float64
}

func FixedThickness(size float64) Thickness {
	return Thickness{
		Mode: ThicknessFixed,
		Size: size,
	}
}

func FlexThickness() Thickness {
	return Thickness{Mode: ThicknessFlex}
}

type Font struct {
	Size     float64
	Families []string
	Bold     bool
	Italic   bool
}

const (
	DefaultFontSize   = 12.0
	DefaultFontFamily = "Arial"
)

func DefaultFont() Font {
	return Font{
		Size:     DefaultFontSize,
		Families: []string{DefaultFontFamily},
		Bold:     true,
	}
}

func (f Font) orDefault() Font {
	def := DefaultFont()
	if f.Size <= 0 {
		f.Size = def.Size
	}
	if len(f.Families) == 0 {
		f.Families = def.Families
	}
	return f
}

type Style struct {
	BackgroundColor Option[string]
	BorderColor     Option[string]
	BorderWidth     Option[Border]
	BorderSkipped   Option[Edge]

	TextColor   Option[string]
	TextPadding Option[float64]
	ShowText    Option[bool]
	Font        Option[Font]

	BarPercentage      Option[float64]
	CategoryPercentage Option[float64]
	BarThickness       Option[Thickness]
	MaxBarThickness    Option[float64]
	MinBarLength       Option[float64]
}

// Merge fills the options unset in s with the ones of other.
func (s Style) Merge(other Style) Style {
	s.BackgroundColor = s.BackgroundColor.Or(other.BackgroundColor)
	s.BorderColor = s.BorderColor.Or(other.BorderColor)
	s.BorderWidth = s.BorderWidth.Or(other.BorderWidth)
	s.BorderSkipped = s.BorderSkipped.Or(other.BorderSkipped)
	s.TextColor = s.TextColor.Or(other.TextColor)
	s.TextPadding = s.TextPadding.Or(other.TextPadding)
	s.ShowText = s.ShowText.Or(other.ShowText)
	s.Font = s.Font.Or(other.Font)
	s.BarPercentage = s.BarPercentage.Or(other.BarPercentage)
	s.CategoryPercentage = s.CategoryPercentage.Or(other.CategoryPercentage)
	s.BarThickness = s.BarThickness.Or(other.BarThickness)
	s.MaxBarThickness = s.MaxBarThickness.Or(other.MaxBarThickness)
	s.MinBarLength = s.MinBarLength.Or(other.MinBarLength)
	return s
}

// DefaultStyle gives the element defaults used when neither the point, the
// serie nor the chart set an option.
func DefaultStyle() Style {
	return Style{
		BackgroundColor: Scripted(func(ctx Context) string {
			return Tableau10.Color(ctx.SerieIndex)
		}),
		BorderWidth:        Fixed(Border{}),
		BorderSkipped:      Fixed(EdgeNone),
		TextPadding:        Fixed(4.0),
		ShowText:           Fixed(true),
		Font:               Fixed(DefaultFont()),
		BarPercentage:      Fixed(0.9),
		CategoryPercentage: Fixed(0.8),
		BarThickness:       Fixed(Thickness{}),
		MinBarLength:       Fixed(5.0),
	}
}

// Options is the resolved style of one bar.
type Options struct {
	BackgroundColor string
	BorderColor     string
	BorderWidth     Border
	BorderSkipped   Edge

	TextColor   string
	TextPadding float64
	ShowText    bool
	Font        Font

	BarPercentage      float64
	CategoryPercentage float64
	BarThickness       Thickness
	MaxBarThickness    float64
	MinBarLength       float64
}

func resolveOptions(ctx Context, layers ...Style) Options {
	var opts Options
	opts.BackgroundColor = resolveWith(ctx, layers, func(s Style) Option[string] { return s.BackgroundColor })
	opts.BorderColor = resolveWith(ctx, layers, func(s Style) Option[string] { return s.BorderColor })
	opts.TextColor = resolveWith(ctx, layers, func(s Style) Option[string] { return s.TextColor })
	opts.BorderWidth = resolveWith(ctx, layers, func(s Style) Option[Border] { return s.BorderWidth })
	opts.BorderSkipped = resolveWith(ctx, layers, func(s Style) Option[Edge] { return s.BorderSkipped })
	opts.TextPadding = resolveWith(ctx, layers, func(s Style) Option[float64] { return s.TextPadding })
	opts.ShowText = resolveWith(ctx, layers, func(s Style) Option[bool] { return s.ShowText })
	opts.Font = resolveWith(ctx, layers, func(s Style) Option[Font] { return s.Font }).orDefault()
	opts.BarPercentage = resolveWith(ctx, layers, func(s Style) Option[float64] { return s.BarPercentage })
	opts.CategoryPercentage = resolveWith(ctx, layers, func(s Style) Option[float64] { return s.CategoryPercentage })
	opts.BarThickness = resolveWith(ctx, layers, func(s Style) Option[Thickness] { return s.BarThickness })
	opts.MaxBarThickness = resolveWith(ctx, layers, func(s Style) Option[float64] { return s.MaxBarThickness })
	opts.MinBarLength = resolveWith(ctx, layers, func(s Style) Option[float64] { return s.MinBarLength })

	if opts.BorderColor == "" {
		opts.BorderColor = opts.BackgroundColor
	}
	if opts.TextColor == "" {
		opts.TextColor = TextColorFor(opts.BackgroundColor)
	}
	return opts
}

func resolveWith[T any](ctx Context, layers []Style, pick func(Style) Option[T]) T {
	list := make([]Option[T], len(layers))
	for i := range layers {
		list[i] = pick(layers[i])
	}
	return Resolve(ctx, list...)
}
