package color

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestToGamut(t *testing.T) {
	tests := []struct {
		name  string
		in    Color
		want  Color
		exact bool
	}{
		{
			name:  "in gamut is unchanged",
			in:    New(Oklch, 0.5, 0.1, 270),
			want:  New(Oklch, 0.5, 0.1, 270),
			exact: true,
		},
		{
			name: "black collapses",
			in:   New(Oklch, 0, 0.3, 120),
			want: New(Oklch, 0, 0, 120),
		},
		{
			name: "white collapses",
			in:   New(Oklch, 1.2, 0.3, 120),
			want: New(Oklch, 1, 0, 120),
		},
		{
			name: "green reduced to boundary",
			in:   New(Oklch, 0.7, 0.4, 150),
			want: New(Oklch, 0.7, 0.19278, 150),
		},
		{
			name: "light red reduced to boundary",
			in:   New(Oklch, 0.9, 0.3, 20),
			want: New(Oklch, 0.9, 0.05196, 20),
		},
		{
			name: "alpha kept",
			in:   New(Oklch, 0.9, 0.3, 20).WithAlpha(0.25),
			want: New(Oklch, 0.9, 0.05196, 20).WithAlpha(0.25),
		},
		{
			name: "oklab input",
			in:   New(Oklab, 0.5, 0, -0.1),
			want: New(Oklch, 0.5, 0.1, 270),
		},
		{
			name: "srgb input",
			in:   RGB(1, 0, 0),
			want: New(Oklch, 0.62796, 0.25768, 29.2339),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToGamut(tt.in)
			if tt.exact {
				if got != tt.want {
					t.Errorf("ToGamut() = %v, want %v", got, tt.want)
				}
				return
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
				t.Errorf("ToGamut() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToGamut_Properties(t *testing.T) {
	for l := 0.0; l <= 1.0; l += 0.05 {
		for h := 0.0; h < 360; h += 15 {
			for _, c := range []float64{0, 0.05, 0.15, 0.3, 1, 40} {
				in := New(Oklch, l, c, h)
				got := ToGamut(in)

				if !InGamut(got) {
					t.Fatalf("ToGamut(%v) = %v is not in gamut", in, got)
				}
				if got.V[1] > c {
					t.Errorf("ToGamut(%v) increased chroma to %f", in, got.V[1])
				}
				if got.V[0] != in.V[0] || got.V[2] != in.V[2] {
					t.Errorf("ToGamut(%v) = %v changed lightness or hue", in, got)
				}
				if again := ToGamut(got); again != got {
					t.Errorf("ToGamut not idempotent: %v then %v", got, again)
				}
				if InGamut(in) && got != in.Clamped() {
					t.Errorf("ToGamut(%v) = %v, want unchanged", in, got)
				}
			}
		}
	}
}

func TestInGamut(t *testing.T) {
	tests := []struct {
		c    Color
		want bool
	}{
		{RGB(1, 0, 0), true},
		{New(HSV, 10, 1, 1), true},
		{New(Oklch, 0.5, 0.1, 270), true},
		{New(Oklch, 0.7, 0.4, 150), false},
		{New(Oklab, 0.5, 0.4, 0.4), false},
		{New(Oklab, 1, 0, 0), true},
		{New(OKHSL, 120, 0.5, 0.5), true},
	}
	for _, tt := range tests {
		if got := InGamut(tt.c); got != tt.want {
			t.Errorf("InGamut(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestMaxChroma(t *testing.T) {
	for _, l := range []float64{0.05, 0.2, 0.287, 0.4, 0.6, 0.8, 0.95} {
		for _, h := range []float64{0, 30, 60, 110, 150, 200, 264.087, 280, 300, 330} {
			want := ToGamut(New(Oklch, l, 0.5, h)).V[1]
			if got := MaxChroma(l, h); math.Abs(got-want) > 1e-6 {
				t.Errorf("MaxChroma(%g, %g) = %f, bisection %f", l, h, got, want)
			}
		}
	}

	if got := MaxChroma(0, 100); got != 0 {
		t.Errorf("MaxChroma at black = %f, want 0", got)
	}
	if got := MaxChroma(1, 100); got != 0 {
		t.Errorf("MaxChroma at white = %f, want 0", got)
	}
}

func TestMaxChroma_OnBoundary(t *testing.T) {
	for h := 0.0; h < 360; h += 7.5 {
		for _, l := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
			c := MaxChroma(l, h)
			if !lchInGamut(l, c, h) {
				t.Errorf("MaxChroma(%g, %g) = %f is outside the gamut", l, h, c)
			}
			if lchInGamut(l, c+1e-6, h) {
				t.Errorf("MaxChroma(%g, %g) = %f is below the boundary", l, h, c)
			}
		}
	}
}

func TestFindCusp(t *testing.T) {
	// The cusp of the red hue is sRGB red itself.
	L, a, b := srgbToOklab(1, 0, 0)
	c := math.Hypot(a, b)
	cs := findCusp(a/c, b/c)
	if math.Abs(cs.L-L) > 1e-3 || math.Abs(cs.C-c) > 1e-3 {
		t.Errorf("cusp = %+v, want L=%f C=%f", cs, L, c)
	}
}

func TestFindCusp_Blue(t *testing.T) {
	// sRGB blue lies on the lower gamut edge, so the cusp saturation of its
	// hue is at least its own C/L.
	L, a, b := srgbToOklab(0, 0, 1)
	c := math.Hypot(a, b)
	cs := findCusp(a/c, b/c)
	if math.Abs(cs.L-L) > 1e-6 || math.Abs(cs.C-c) > 1e-6 {
		t.Errorf("cusp = %+v, want L=%f C=%f", cs, L, c)
	}
}

func TestToe(t *testing.T) {
	for _, x := range []float64{0, 0.1, 0.5, 0.9, 1} {
		if got := toeInv(toe(x)); math.Abs(got-x) > 1e-12 {
			t.Errorf("toeInv(toe(%f)) = %f", x, got)
		}
	}
	if got := toe(1); math.Abs(got-1) > 1e-12 {
		t.Errorf("toe(1) = %f, want 1", got)
	}
}
