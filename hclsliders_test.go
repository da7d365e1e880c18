package hclsliders

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestConvertThroughFacade(t *testing.T) {
	c, err := ParseCSS("#ff0000")
	if err != nil {
		t.Fatal(err)
	}

	hsv := Convert(c, HSV)
	if hsv.Model != HSV {
		t.Fatalf("model = %v, want hsv", hsv.Model)
	}
	if math.Abs(hsv.V[1]-1) > 1e-9 || math.Abs(hsv.V[2]-1) > 1e-9 {
		t.Errorf("hsv = %v, want s=1 v=1", hsv.V)
	}

	gray, err := ParseCSS("#808080")
	if err != nil {
		t.Fatal(err)
	}
	if h := ConvertHue(gray, HSV, 120).V[0]; h != 120 {
		t.Errorf("ConvertHue hue = %g, want 120", h)
	}

	if got := SerializeCSS(c, Oklch); got != "oklch(62.8% 0.2577 29.234)" {
		t.Errorf("SerializeCSS = %q", got)
	}
}

func TestParseAs(t *testing.T) {
	a, err := ParseAsOklch("70% 0.1 30")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseCSS("oklch(70% 0.1 30)")
	if err != nil {
		t.Fatal(err)
	}
	if SerializeCSS(a, SRGB) != SerializeCSS(b, SRGB) {
		t.Errorf("ParseAsOklch = %s, want %s", SerializeCSS(a, SRGB), SerializeCSS(b, SRGB))
	}

	if _, err := ParseAsOklab("0.5 0.1"); err == nil {
		t.Error("expected an error for two components")
	}

	_, err = ParseCSS("oklch(70% x 30)")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want a *ParseError", err)
	}
}

func TestToGamutIsDisplayable(t *testing.T) {
	c, err := ParseCSS("oklch(70% 0.4 150)")
	if err != nil {
		t.Fatal(err)
	}
	rgb := Convert(ToGamut(c), SRGB)
	for i, v := range rgb.V {
		if v < -1e-6 || v > 1+1e-6 {
			t.Errorf("channel %d = %g, outside [0, 1]", i, v)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hclsliders.hcl")
	if err := os.WriteFile(path, []byte("notation = \"oklab\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Notation.String() != "oklab" {
		t.Errorf("notation = %s, want oklab", s.Notation)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.hcl")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}
