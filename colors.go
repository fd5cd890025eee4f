package timeline

import (
	"math"
	"strconv"
	"strings"
)

type Palette []string

var (
	Category10 Palette
	Tableau10  Palette
)

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
}

func (p Palette) Color(i int) string {
	if len(p) == 0 {
		return "black"
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

func splitColorString(str string) []string {
	var arr []string
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

const (
	darkText  = "#000000"
	lightText = "#ffffff"
)

// TextColorFor picks black or white text depending on the luminance of the
// given background.
func TextColorFor(background string) string {
	if Luminance(background) > 0.5 {
		return darkText
	}
	return lightText
}

// Luminance gives the relative luminance of a color given as #rgb, #rrggbb,
// #rrggbbaa, rgb(r, g, b) or rgba(r, g, b, a). Unknown colors are reported as
// black.
func Luminance(color string) float64 {
	r, g, b, ok := ParseColor(color)
	if !ok {
		return 0
	}
	return 0.2126*channel(r) + 0.7152*channel(g) + 0.0722*channel(b)
}

func channel(c uint8) float64 {
	v := float64(c) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func ParseColor(color string) (uint8, uint8, uint8, bool) {
	color = strings.TrimSpace(strings.ToLower(color))
	switch {
	case strings.HasPrefix(color, "#"):
		return parseHex(color[1:])
	case strings.HasPrefix(color, "rgba(") || strings.HasPrefix(color, "rgb("):
		return parseFunc(color)
	default:
		c, ok := namedColors[color]
		if !ok {
			return 0, 0, 0, false
		}
		return parseHex(c[1:])
	}
}

func parseHex(str string) (uint8, uint8, uint8, bool) {
	switch len(str) {
	case 3:
		str = string([]byte{str[0], str[0], str[1], str[1], str[2], str[2]})
	case 6:
	case 8:
		str = str[:6]
	default:
		return 0, 0, 0, false
	}
	n, err := strconv.ParseUint(str, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(n >> 16), uint8(n >> 8), uint8(n), true
}

func parseFunc(str string) (uint8, uint8, uint8, bool) {
	beg, end := strings.IndexByte(str, '('), strings.IndexByte(str, ')')
	if beg < 0 || end < beg {
		return 0, 0, 0, false
	}
	parts := strings.Split(str[beg+1:end], ",")
	if len(parts) < 3 {
		return 0, 0, 0, false
	}
	var rgb [3]uint8
	for i := range rgb {
		n, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 8)
		if err != nil {
			return 0, 0, 0, false
		}
		rgb[i] = uint8(n)
	}
	return rgb[0], rgb[1], rgb[2], true
}

var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#008000",
	"blue":      "#0000ff",
	"yellow":    "#ffff00",
	"orange":    "#ffa500",
	"gray":      "#808080",
	"grey":      "#808080",
	"lightgray": "#d3d3d3",
	"steelblue": "#4682b4",
	"firebrick": "#b22222",
}
