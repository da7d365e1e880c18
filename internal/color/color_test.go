package color

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseModel(t *testing.T) {
	tests := []struct {
		input   string
		want    Model
		wantErr bool
	}{
		{"srgb", SRGB, false},
		{"RGB", SRGB, false},
		{"linear", LinearSRGB, false},
		{"linear-srgb", LinearSRGB, false},
		{"HSV", HSV, false},
		{"hsl", HSL, false},
		{"hcy", HCY, false},
		{"OkLab", Oklab, false},
		{"oklch", Oklch, false},
		{"okhsv", OKHSV, false},
		{"okhsl", OKHSL, false},
		{" okhcl ", OKHCL, false},
		{"cmyk", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseModel(tt.input)
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

func TestModelStringRoundTrip(t *testing.T) {
	for _, m := range Models {
		got, err := ParseModel(m.String())
		if err != nil {
			t.Fatalf("ParseModel(%q): %v", m, err)
		}
		if got != m {
			t.Errorf("ParseModel(%q) = %v", m, got)
		}
	}
}

func TestModelHueIndex(t *testing.T) {
	want := map[Model]int{
		SRGB: -1, LinearSRGB: -1, Oklab: -1,
		HSV: 0, HSL: 0, HCY: 0, OKHSV: 0, OKHSL: 0, OKHCL: 0,
		Oklch: 2,
	}
	for m, idx := range want {
		if got := m.HueIndex(); got != idx {
			t.Errorf("%v.HueIndex() = %d, want %d", m, got, idx)
		}
	}
}

func TestClamped(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)
	tests := []struct {
		name string
		in   Color
		want Color
	}{
		{
			name: "srgb out of range",
			in:   Color{Model: SRGB, V: [3]float64{-0.5, 1.5, 0.25}, Alpha: 2},
			want: Color{Model: SRGB, V: [3]float64{0, 1, 0.25}, Alpha: 1},
		},
		{
			name: "negative hue wraps",
			in:   New(HSV, -90, 0.5, 0.5),
			want: New(HSV, 270, 0.5, 0.5),
		},
		{
			name: "hue of 720 wraps to 0",
			in:   New(HSL, 720, 0.5, 0.5),
			want: New(HSL, 0, 0.5, 0.5),
		},
		{
			name: "NaN channels become zero",
			in:   Color{Model: Oklab, V: [3]float64{math.NaN(), math.Inf(1), 0.1}, Alpha: math.NaN()},
			want: Color{Model: Oklab, V: [3]float64{0, 0, 0.1}, Alpha: 1},
		},
		{
			name: "oklab a and b unbounded",
			in:   New(Oklab, 0.5, 0.9, -0.9),
			want: New(Oklab, 0.5, 0.9, -0.9),
		},
		{
			name: "negative chroma",
			in:   New(Oklch, 0.5, -0.1, 400),
			want: New(Oklch, 0.5, 0, 40),
		},
		{
			name: "hcy chroma clipped to limit",
			in:   New(HCY, 0, 1, 0.5),
			want: New(HCY, 0, (1-0.5)/(1-lumaR), 0.5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.in.Clamped(), approx); diff != "" {
				t.Errorf("Clamped() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHue(t *testing.T) {
	tests := []struct {
		c    Color
		want float64
	}{
		{New(HSV, 120, 1, 1), 120},
		{New(Oklch, 0.5, 0.1, 270), 270},
		{New(OKHCL, -30, 0.5, 0.5), 330},
		{RGB(1, 0, 0), 0},
		{New(Oklab, 0.5, 0.1, 0.1), 0},
	}
	for _, tt := range tests {
		if got := tt.c.Hue(); got != tt.want {
			t.Errorf("%v.Hue() = %f, want %f", tt.c, got, tt.want)
		}
	}
}

func TestBytes(t *testing.T) {
	r, g, b := RGB8(235, 111, 146).Bytes()
	if r != 235 || g != 111 || b != 146 {
		t.Errorf("Bytes() = %d,%d,%d, want 235,111,146", r, g, b)
	}
	r, g, b = New(HSV, 0, 1, 1).Bytes()
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("HSV red Bytes() = %d,%d,%d", r, g, b)
	}
}

func TestWrapHue(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{-90, 270},
		{-450, 270},
		{725, 5},
		{-1e-18, 0},
	}
	for _, tt := range tests {
		if got := wrapHue(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("wrapHue(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}
