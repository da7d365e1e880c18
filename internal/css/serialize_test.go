package css

import (
	"math"
	"testing"

	"github.com/jsvensson/hclsliders/internal/color"
)

func TestSerialize(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		model color.Model
		want  string
	}{
		{"hex", color.RGB8(0xeb, 0x6f, 0x92), color.SRGB, "#eb6f92"},
		{"hex zero padding", color.RGB8(1, 2, 3), color.SRGB, "#010203"},
		{"hsv writes hex", color.New(color.HSV, 0, 1, 1), color.HSV, "#ff0000"},
		{"okhsl writes hex", color.RGB(1, 1, 1), color.OKHSL, "#ffffff"},
		{"hex drops alpha", color.RGB8(0, 0, 0).WithAlpha(0.5), color.SRGB, "#000000"},
		{"oklab red", color.RGB(1, 0, 0), color.Oklab, "oklab(62.8% 0.2249 0.1258)"},
		{"oklch red", color.RGB(1, 0, 0), color.Oklch, "oklch(62.8% 0.2577 29.234)"},
		{"oklch pink", color.RGB8(0xeb, 0x6f, 0x92), color.Oklch, "oklch(69.77% 0.1565 4.224)"},
		{"oklch white", color.RGB(1, 1, 1), color.Oklch, "oklch(100% 0 0)"},
		{"oklab black", color.RGB(0, 0, 0), color.Oklab, "oklab(0% 0 0)"},
		{"oklch alpha", color.New(color.Oklch, 0.62, 0.1, 270).WithAlpha(0.5), color.Oklch, "oklch(62% 0.1 270 / 0.5)"},
		{"oklab alpha", color.New(color.Oklab, 0.5, -0.1, 0).WithAlpha(0.125), color.Oklab, "oklab(50% -0.1 0 / 0.125)"},
		{"no negative zero", color.New(color.Oklab, 0.5, -0.00001, 0), color.Oklab, "oklab(50% 0 0)"},
		{"hue rounds to zero", color.New(color.Oklch, 0.5, 0.1, 359.9996), color.Oklch, "oklch(50% 0.1 0)"},
		{"hue keeps 3 decimals", color.RGB8(0x31, 0x74, 0x8f), color.Oklch, "oklch(52.77% 0.0793 227.716)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Serialize(tt.color, tt.model); got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerialize_ParseInverse(t *testing.T) {
	colors := []color.Color{
		color.RGB8(0xeb, 0x6f, 0x92),
		color.RGB8(0x31, 0x74, 0x8f),
		color.RGB(0.5, 0.5, 0.5),
		color.RGB(1, 0, 0),
		color.RGB(0, 0, 1),
		color.New(color.HSV, 120, 0.8, 0.6),
		color.New(color.Oklch, 0.62, 0.1, 270).WithAlpha(0.5),
		color.New(color.Oklab, 0.6, 0.05, -0.08),
		color.New(color.OKHSL, 40, 0.9, 0.7),
		color.New(color.Oklch, 0.7, 0.4, 150), // out of gamut
	}

	for _, c := range colors {
		for _, n := range Notations {
			t.Run(c.String()+" as "+n.String(), func(t *testing.T) {
				checkParseInverse(t, c, n)
			})
		}
	}
}

func TestSerialize_ParseInverseGamutEdges(t *testing.T) {
	// Colors on the edges of the sRGB cube that run from black, where
	// rounding a component easily leaves the gamut.
	var colors []color.Color
	for v := 1; v < 256; v += 6 {
		x := uint8(v)
		colors = append(colors,
			color.RGB8(0, 0, x),
			color.RGB8(x, 0, 0),
			color.RGB8(0, x, 0),
			color.RGB8(x/2, 0, x),
			color.RGB8(0, x/3, x),
		)
	}

	for _, c := range colors {
		for _, n := range []Notation{NotationOklab, NotationOklch} {
			checkParseInverse(t, c, n)
		}
	}
}

func TestSerialize_NearBlackBlue(t *testing.T) {
	c := color.RGB8(0, 0, 20)
	text := Serialize(c, color.Oklab)
	got, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	want := color.Convert(c, color.Oklab)
	got = color.Convert(got, color.Oklab)
	if d := math.Hypot(got.V[1]-want.V[1], got.V[2]-want.V[2]); d > 2e-4 {
		t.Errorf("%q parses %g away from %v", text, d, want)
	}
}

func checkParseInverse(t *testing.T, c color.Color, n Notation) {
	t.Helper()
	text := Format(c, n)
	got, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}

	want := color.Convert(color.ToGamut(c), n.Model())
	got = color.Convert(got, n.Model())
	tol := 1e-3
	if n == NotationHex {
		tol = 1.0 / 255
		want.Alpha = 1
	}
	for i := range want.V {
		d := math.Abs(got.V[i] - want.V[i])
		if n == NotationOklch && i == 2 {
			d = math.Min(d, 360-d)
			if want.V[1] < 1e-3 {
				continue
			}
		}
		if d > tol {
			t.Errorf("%q: channel %d = %f, want %f", text, i, got.V[i], want.V[i])
		}
	}
	if math.Abs(got.Alpha-want.Alpha) > 1e-3 {
		t.Errorf("%q: alpha = %f, want %f", text, got.Alpha, want.Alpha)
	}
}

func TestParseNotation(t *testing.T) {
	tests := []struct {
		input   string
		want    Notation
		wantErr bool
	}{
		{"hex", NotationHex, false},
		{"HEX", NotationHex, false},
		{"OKLAB", NotationOklab, false},
		{" oklch ", NotationOklch, false},
		{"rgb", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNotation(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		v    float64
		d    int
		want string
	}{
		{62.796, 2, "62.8"},
		{0.25768, 4, "0.2577"},
		{-0.00001, 4, "0"},
		{100, 2, "100"},
		{0.1, 4, "0.1"},
		{-0.12345, 4, "-0.1235"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.v, tt.d); got != tt.want {
			t.Errorf("formatFloat(%v, %d) = %q, want %q", tt.v, tt.d, got, tt.want)
		}
	}
}
