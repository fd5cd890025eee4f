package timeline

import (
	"testing"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot/font"
)

func TestFontFace(t *testing.T) {
	data := []struct {
		Font    Font
		Variant font.Variant
		Weight  xfont.Weight
		Style   xfont.Style
	}{
		{Font: DefaultFont(), Variant: "Sans", Weight: xfont.WeightBold},
		{Font: Font{Families: []string{"Unknown", "Courier New"}}, Variant: "Mono"},
		{Font: Font{Families: []string{"serif"}, Italic: true}, Variant: "Serif", Style: xfont.StyleItalic},
		{Font: Font{}, Variant: "Sans"},
	}
	for _, d := range data {
		got := d.Font.face()
		if got.Variant != d.Variant || got.Weight != d.Weight || got.Style != d.Style {
			t.Errorf("%v: face mismatched! got %+v", d.Font.Families, got)
		}
	}
}

func TestMeasureTextBold(t *testing.T) {
	var (
		regular = MeasureText("timeline", Font{Size: 12})
		bold    = MeasureText("timeline", Font{Size: 12, Bold: true})
	)
	if regular <= 0 || bold <= regular {
		t.Errorf("bold text should be wider: regular=%.2f, bold=%.2f", regular, bold)
	}
}

func TestSvgFont(t *testing.T) {
	f := svgFont(Font{Size: 10, Families: []string{"Helvetica"}, Italic: true})
	if f.Size != 10 || f.Weight != "" || f.Style != "italic" {
		t.Errorf("svg font mismatched: %+v", f)
	}
	if len(f.Family) != 1 || f.Family[0] != "Helvetica" {
		t.Errorf("svg font family mismatched: %v", f.Family)
	}
}
