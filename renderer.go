package timeline

import (
	"io"

	"github.com/midbel/svg"
)

// Renderer writes a chart in a given output format.
type Renderer interface {
	Render(io.Writer, Chart) error
}

type RenderFunc func(io.Writer, Chart) error

func (fn RenderFunc) Render(w io.Writer, c Chart) error {
	return fn(w, c)
}

// SVG renders charts as SVG documents.
var SVG Renderer = RenderFunc(func(w io.Writer, c Chart) error {
	return c.Render(w)
})

func getBaseGroup(color string, class ...string) svg.Group {
	var g svg.Group
	if color != "" {
		g.Fill = svg.NewFill(color)
		g.Stroke = svg.NewStroke(color, 1)
	}
	g.Class = class
	return g
}

func getTranslatedGroup(left, top float64) svg.Group {
	var g svg.Group
	g.Transform = svg.Translate(left, top)
	return g
}
