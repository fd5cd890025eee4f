package dash

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/midbel/timeline"
)

const (
	SkipNone   = "none"
	SkipLeft   = "left"
	SkipRight  = "right"
	SkipTop    = "top"
	SkipBottom = "bottom"
)

const (
	PaletteTableau   = "tableau10"
	PaletteCategory  = "category10"
	ThicknessFlex    = "flex"
	ThicknessDefault = "fit"
)

// Style holds the options of the bars as written in a configuration. Zero
// values are unset and inherited from the global style.
type Style struct {
	Fill               string
	Stroke             string
	BorderWidth        float64
	BorderSkipped      string
	TextColor          string
	TextPadding        float64
	HideText           bool
	FontSize           float64
	FontFamily         string
	BarPercentage      float64
	CategoryPercentage float64
	BarThickness       string
	MaxBarThickness    float64
	MinBarLength       float64
	Palette            string

	Hidden bool
}

func GlobalStyle() Style {
	return Style{
		Palette: PaletteTableau,
	}
}

func (s Style) Validate() error {
	if _, err := parseEdge(s.BorderSkipped); err != nil {
		return err
	}
	if _, err := parseThickness(s.BarThickness); err != nil {
		return err
	}
	if _, err := getPalette(s.Palette); err != nil {
		return err
	}
	for _, c := range []string{s.Fill, s.Stroke, s.TextColor} {
		if c == "" {
			continue
		}
		if _, _, _, ok := timeline.ParseColor(c); !ok {
			return fmt.Errorf("%s: invalid color", c)
		}
	}
	if s.BarPercentage < 0 || s.BarPercentage > 1 {
		return fmt.Errorf("bar percentage should be in range [0, 1]")
	}
	if s.CategoryPercentage < 0 || s.CategoryPercentage > 1 {
		return fmt.Errorf("category percentage should be in range [0, 1]")
	}
	if s.BorderWidth < 0 || s.TextPadding < 0 || s.FontSize < 0 {
		return fmt.Errorf("border, padding and font size can not be negative")
	}
	return nil
}

// Style converts s into the options of the bars. Only the options set in s are
// set in the result.
func (s Style) Style() (timeline.Style, error) {
	var st timeline.Style
	if s.Fill != "" {
		st.BackgroundColor = timeline.Fixed(s.Fill)
	} else if s.Palette != "" {
		pal, err := getPalette(s.Palette)
		if err != nil {
			return st, err
		}
		st.BackgroundColor = timeline.Scripted(func(ctx timeline.Context) string {
			return pal.Color(ctx.SerieIndex)
		})
	}
	if s.Stroke != "" {
		st.BorderColor = timeline.Fixed(s.Stroke)
	}
	if s.BorderWidth > 0 {
		st.BorderWidth = timeline.Fixed(timeline.UniformBorder(s.BorderWidth))
	}
	if s.BorderSkipped != "" {
		edge, err := parseEdge(s.BorderSkipped)
		if err != nil {
			return st, err
		}
		st.BorderSkipped = timeline.Fixed(edge)
	}
	if s.TextColor != "" {
		st.TextColor = timeline.Fixed(s.TextColor)
	}
	if s.TextPadding > 0 {
		st.TextPadding = timeline.Fixed(s.TextPadding)
	}
	if s.HideText {
		st.ShowText = timeline.Fixed(false)
	}
	if s.FontSize > 0 || s.FontFamily != "" {
		font := timeline.DefaultFont()
		if s.FontSize > 0 {
			font.Size = s.FontSize
		}
		if s.FontFamily != "" {
			font.Families = []string{s.FontFamily}
		}
		st.Font = timeline.Fixed(font)
	}
	if s.BarPercentage > 0 {
		st.BarPercentage = timeline.Fixed(s.BarPercentage)
	}
	if s.CategoryPercentage > 0 {
		st.CategoryPercentage = timeline.Fixed(s.CategoryPercentage)
	}
	if s.BarThickness != "" {
		th, err := parseThickness(s.BarThickness)
		if err != nil {
			return st, err
		}
		st.BarThickness = timeline.Fixed(th)
	}
	if s.MaxBarThickness > 0 {
		st.MaxBarThickness = timeline.Fixed(s.MaxBarThickness)
	}
	if s.MinBarLength > 0 {
		st.MinBarLength = timeline.Fixed(s.MinBarLength)
	}
	return st, nil
}

func parseEdge(str string) (timeline.Edge, error) {
	switch strings.ToLower(str) {
	case "", SkipNone:
		return timeline.EdgeNone, nil
	case SkipLeft, "start":
		return timeline.EdgeLeft, nil
	case SkipRight, "end":
		return timeline.EdgeRight, nil
	case SkipTop:
		return timeline.EdgeTop, nil
	case SkipBottom:
		return timeline.EdgeBottom, nil
	default:
		return 0, fmt.Errorf("%s: unknown border edge", str)
	}
}

func parseThickness(str string) (timeline.Thickness, error) {
	switch strings.ToLower(str) {
	case "", ThicknessDefault:
		return timeline.Thickness{}, nil
	case ThicknessFlex:
		return timeline.FlexThickness(), nil
	default:
		f, err := strconv.ParseFloat(str, 64)
		if err != nil || f <= 0 {
			return timeline.Thickness{}, fmt.Errorf("%s: invalid bar thickness", str)
		}
		return timeline.FixedThickness(f), nil
	}
}

func getPalette(name string) (timeline.Palette, error) {
	switch strings.ToLower(name) {
	case "", PaletteTableau:
		return timeline.Tableau10, nil
	case PaletteCategory:
		return timeline.Category10, nil
	default:
		return nil, fmt.Errorf("%s: unknown palette", name)
	}
}
