package timeline

import (
	"strings"

	"github.com/midbel/svg"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// Canvas is the drawing surface used by the controller. Coordinates have their
// origin at the top left corner.
type Canvas interface {
	FillRect(Rect, string)
	// FillFrame fills the area of outer that is not covered by inner.
	FillFrame(Rect, Rect, string)
	// FillText draws str starting at x and vertically centered on y.
	FillText(string, float64, float64, Font, string)
	MeasureText(string, Font) float64
}

// TextStyle gives the gonum text style matching the given font. It is used to
// measure labels whatever the output format is.
func TextStyle(f Font) text.Style {
	f = f.orDefault()
	return text.Style{
		Font:    font.From(f.face(), vg.Points(f.Size)),
		XAlign:  text.XLeft,
		YAlign:  text.YCenter,
		Handler: plot.DefaultTextHandler,
	}
}

// face picks the bundled font closest to the families of f. Arial and
// Helvetica are metric compatible with the sans variant.
func (f Font) face() font.Font {
	fnt := plotter.DefaultFont
	fnt.Variant = "Sans"
	for _, fam := range f.Families {
		if v, ok := variants[strings.ToLower(strings.TrimSpace(fam))]; ok {
			fnt.Variant = v
			break
		}
	}
	if f.Bold {
		fnt.Weight = xfont.WeightBold
	}
	if f.Italic {
		fnt.Style = xfont.StyleItalic
	}
	return fnt
}

var variants = map[string]font.Variant{
	"arial":            "Sans",
	"helvetica":        "Sans",
	"sans-serif":       "Sans",
	"liberation sans":  "Sans",
	"times":            "Serif",
	"times new roman":  "Serif",
	"serif":            "Serif",
	"liberation serif": "Serif",
	"courier":          "Mono",
	"courier new":      "Mono",
	"monospace":        "Mono",
	"liberation mono":  "Mono",
}

func svgFont(f Font) svg.Font {
	f = f.orDefault()
	fnt := svg.NewFont(f.Size, f.Families...)
	if f.Bold {
		fnt.Weight = "bold"
	}
	if f.Italic {
		fnt.Style = "italic"
	}
	return fnt
}

func MeasureText(str string, f Font) float64 {
	if str == "" {
		return 0
	}
	return TextStyle(f).Width(str).Points()
}

// svgCanvas appends the elements it draws to a group. Every element carries
// the title given to the canvas.
type svgCanvas struct {
	group *svg.Group
	title string
}

func (c *svgCanvas) withTitle(title string) *svgCanvas {
	c.title = title
	return c
}

func (c *svgCanvas) FillRect(r Rect, color string) {
	if r.Empty() {
		return
	}
	var el svg.Rect
	el.Pos = svg.NewPos(r.X, r.Y)
	el.Dim = svg.NewDim(r.W, r.H)
	el.Fill = svg.NewFill(color)
	el.Title = c.title
	c.group.Append(el.AsElement())
}

func (c *svgCanvas) FillFrame(outer, inner Rect, color string) {
	if outer.Empty() || outer == inner {
		return
	}
	var pat svg.Path
	pat.Rendering = "crispEdges"
	pat.Fill = svg.NewFill(color)
	pat.Stroke = svg.NewStroke("none", 0)

	pat.AbsMoveTo(svg.NewPos(outer.X, outer.Y))
	pat.AbsLineTo(svg.NewPos(outer.X+outer.W, outer.Y))
	pat.AbsLineTo(svg.NewPos(outer.X+outer.W, outer.Y+outer.H))
	pat.AbsLineTo(svg.NewPos(outer.X, outer.Y+outer.H))
	pat.ClosePath()
	if !inner.Empty() {
		// reverse winding so the inner rect is a hole with the nonzero rule
		pat.AbsMoveTo(svg.NewPos(inner.X, inner.Y))
		pat.AbsLineTo(svg.NewPos(inner.X, inner.Y+inner.H))
		pat.AbsLineTo(svg.NewPos(inner.X+inner.W, inner.Y+inner.H))
		pat.AbsLineTo(svg.NewPos(inner.X+inner.W, inner.Y))
		pat.ClosePath()
	}
	c.group.Append(pat.AsElement())
}

func (c *svgCanvas) FillText(str string, x, y float64, f Font, color string) {
	txt := svg.NewText(str)
	txt.Pos = svg.NewPos(x, y)
	txt.Font = svgFont(f)
	txt.Anchor = "start"
	txt.Baseline = "middle"

	grp := getBaseGroup("", "label")
	grp.Fill = svg.NewFill(color)
	grp.Append(txt.AsElement())
	c.group.Append(grp.AsElement())
}

func (c *svgCanvas) MeasureText(str string, f Font) float64 {
	return MeasureText(str, f)
}
