package color

import (
	"fmt"
	"math"
	"strings"
)

// Model identifies the color model a Color's channels are expressed in.
type Model int

const (
	SRGB Model = iota
	LinearSRGB
	HSV
	HSL
	HCY
	Oklab
	Oklch
	OKHSV
	OKHSL
	OKHCL
)

// Models lists every supported model in display order.
var Models = []Model{SRGB, LinearSRGB, HSV, HSL, HCY, Oklab, Oklch, OKHSV, OKHSL, OKHCL}

var modelNames = [...]string{
	SRGB:       "srgb",
	LinearSRGB: "linear-srgb",
	HSV:        "hsv",
	HSL:        "hsl",
	HCY:        "hcy",
	Oklab:      "oklab",
	Oklch:      "oklch",
	OKHSV:      "okhsv",
	OKHSL:      "okhsl",
	OKHCL:      "okhcl",
}

var modelChannels = [...][3]string{
	SRGB:       {"r", "g", "b"},
	LinearSRGB: {"r", "g", "b"},
	HSV:        {"h", "s", "v"},
	HSL:        {"h", "s", "l"},
	HCY:        {"h", "c", "y"},
	Oklab:      {"l", "a", "b"},
	Oklch:      {"l", "c", "h"},
	OKHSV:      {"h", "s", "v"},
	OKHSL:      {"h", "s", "l"},
	OKHCL:      {"h", "c", "l"},
}

func (m Model) String() string {
	if m < 0 || int(m) >= len(modelNames) {
		return fmt.Sprintf("Model(%d)", int(m))
	}
	return modelNames[m]
}

// Channels returns the short channel names of the model, e.g. "h", "s", "v".
func (m Model) Channels() [3]string {
	return modelChannels[m]
}

// HueIndex returns the index of the hue channel, or -1 if the model has none.
func (m Model) HueIndex() int {
	switch m {
	case HSV, HSL, HCY, OKHSV, OKHSL, OKHCL:
		return 0
	case Oklch:
		return 2
	}
	return -1
}

// IsOk reports whether the model belongs to the Oklab-referenced family.
func (m Model) IsOk() bool {
	return m >= Oklab && m <= OKHCL
}

// ParseModel parses a model name such as "oklch" or "HSV".
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "srgb", "rgb":
		return SRGB, nil
	case "linear-srgb", "linearsrgb", "linear":
		return LinearSRGB, nil
	case "hsv":
		return HSV, nil
	case "hsl":
		return HSL, nil
	case "hcy":
		return HCY, nil
	case "oklab":
		return Oklab, nil
	case "oklch":
		return Oklch, nil
	case "okhsv":
		return OKHSV, nil
	case "okhsl":
		return OKHSL, nil
	case "okhcl":
		return OKHCL, nil
	}
	return 0, fmt.Errorf("unknown color model %q", s)
}

// Color is a color in one model: three channels plus an alpha that never
// takes part in conversion math.
//
// Hue channels are in degrees [0, 360). All other channels are in [0, 1],
// except Oklab a/b (unbounded) and chroma (non-negative).
type Color struct {
	Model Model
	V     [3]float64
	Alpha float64
}

// New returns an opaque color in model m.
func New(m Model, c0, c1, c2 float64) Color {
	return Color{Model: m, V: [3]float64{c0, c1, c2}, Alpha: 1}
}

// RGB returns an opaque sRGB color with channels in [0, 1].
func RGB(r, g, b float64) Color {
	return New(SRGB, r, g, b)
}

// RGB8 returns an opaque sRGB color from 8-bit channels.
func RGB8(r, g, b uint8) Color {
	return RGB(float64(r)/255.0, float64(g)/255.0, float64(b)/255.0)
}

// WithAlpha returns a copy of c with the given alpha.
func (c Color) WithAlpha(a float64) Color {
	c.Alpha = a
	return c
}

// Hue returns the hue channel of c, or 0 if its model has no hue.
func (c Color) Hue() float64 {
	if i := c.Model.HueIndex(); i >= 0 {
		return wrapHue(finite(c.V[i]))
	}
	return 0
}

// Bytes returns the 8-bit sRGB channels of c, rounded to nearest.
func (c Color) Bytes() (r, g, b uint8) {
	s := Convert(c, SRGB)
	return toByte(s.V[0]), toByte(s.V[1]), toByte(s.V[2])
}

func (c Color) String() string {
	ch := c.Model.Channels()
	return fmt.Sprintf("%s(%s=%g %s=%g %s=%g a=%g)", c.Model, ch[0], c.V[0], ch[1], c.V[1], ch[2], c.V[2], c.Alpha)
}

// Clamped returns c with every channel brought into its model's range:
// non-finite values become 0, hues wrap into [0, 360), bounded channels
// are clamped and alpha is clamped to [0, 1]. HCY chroma is clipped to the
// limit for its hue and luma.
func (c Color) Clamped() Color {
	v := [3]float64{finite(c.V[0]), finite(c.V[1]), finite(c.V[2])}
	switch c.Model {
	case SRGB, LinearSRGB:
		v = [3]float64{clamp01(v[0]), clamp01(v[1]), clamp01(v[2])}
	case HSV, HSL, OKHSV, OKHSL:
		v = [3]float64{wrapHue(v[0]), clamp01(v[1]), clamp01(v[2])}
	case HCY:
		h, y := wrapHue(v[0]), clamp01(v[2])
		v = [3]float64{h, clamp(v[1], 0, hcyChromaLimit(h, y)), y}
	case Oklab:
		v[0] = clamp01(v[0])
	case Oklch:
		v = [3]float64{clamp01(v[0]), math.Max(v[1], 0), wrapHue(v[2])}
	case OKHCL:
		v = [3]float64{wrapHue(v[0]), math.Max(v[1], 0), clamp01(v[2])}
	}
	a := c.Alpha
	if math.IsNaN(a) {
		a = 1
	}
	return Color{Model: c.Model, V: v, Alpha: clamp01(a)}
}

func toByte(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255.0))
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// wrapHue normalizes degrees into [0, 360), accepting negative angles.
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}
