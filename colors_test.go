package timeline

import (
	"testing"
)

func TestParseColor(t *testing.T) {
	data := []struct {
		Input   string
		R, G, B uint8
		Ok      bool
	}{
		{Input: "#fff", R: 255, G: 255, B: 255, Ok: true},
		{Input: "#4e79a7", R: 0x4e, G: 0x79, B: 0xa7, Ok: true},
		{Input: "#4E79A7FF", R: 0x4e, G: 0x79, B: 0xa7, Ok: true},
		{Input: "rgb(10, 20, 30)", R: 10, G: 20, B: 30, Ok: true},
		{Input: "rgba(10,20,30,0.5)", R: 10, G: 20, B: 30, Ok: true},
		{Input: "steelblue", R: 0x46, G: 0x82, B: 0xb4, Ok: true},
		{Input: "#12"},
		{Input: "rgb(300, 0, 0)"},
		{Input: "unknown"},
	}
	for _, d := range data {
		r, g, b, ok := ParseColor(d.Input)
		if ok != d.Ok {
			t.Errorf("%s: parse result mismatched! want %t, got %t", d.Input, d.Ok, ok)
			continue
		}
		if ok && (r != d.R || g != d.G || b != d.B) {
			t.Errorf("%s: color mismatched! got %d,%d,%d", d.Input, r, g, b)
		}
	}
}

func TestTextColorFor(t *testing.T) {
	data := []struct {
		Background string
		Want       string
	}{
		{Background: "white", Want: "#000000"},
		{Background: "yellow", Want: "#000000"},
		{Background: "#000", Want: "#ffffff"},
		{Background: "#4e79a7", Want: "#ffffff"},
		{Background: "rgb(255, 255, 255)", Want: "#000000"},
		{Background: "garbage", Want: "#ffffff"},
	}
	for _, d := range data {
		if got := TextColorFor(d.Background); got != d.Want {
			t.Errorf("%s: text color mismatched! want %s, got %s", d.Background, d.Want, got)
		}
	}
}

func TestPalette(t *testing.T) {
	if len(Tableau10) != 10 || len(Category10) != 10 {
		t.Fatalf("palettes should have 10 colors")
	}
	if Tableau10.Color(0) != "#4e79a7" {
		t.Errorf("first color mismatched: %s", Tableau10.Color(0))
	}
	if Tableau10.Color(11) != Tableau10.Color(1) {
		t.Errorf("palette should wrap")
	}
	var empty Palette
	if empty.Color(3) != "black" {
		t.Errorf("empty palette should give black")
	}
}
