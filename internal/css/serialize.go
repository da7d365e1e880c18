package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsvensson/hclsliders/internal/color"
)

// Notation is a text form for colors.
type Notation int

const (
	NotationHex Notation = iota
	NotationOklab
	NotationOklch
)

// Notations lists every notation in display order.
var Notations = []Notation{NotationHex, NotationOklab, NotationOklch}

func (n Notation) String() string {
	switch n {
	case NotationOklab:
		return "oklab"
	case NotationOklch:
		return "oklch"
	}
	return "hex"
}

// Model returns the color model the notation writes.
func (n Notation) Model() color.Model {
	switch n {
	case NotationOklab:
		return color.Oklab
	case NotationOklch:
		return color.Oklch
	}
	return color.SRGB
}

// ParseNotation parses "hex", "oklab" or "oklch", in any case.
func ParseNotation(s string) (Notation, error) {
	for _, n := range Notations {
		if strings.EqualFold(strings.TrimSpace(s), n.String()) {
			return n, nil
		}
	}
	return 0, fmt.Errorf("unknown notation %q: must be hex, oklab or oklch", s)
}

// Format renders c in notation n.
func Format(c color.Color, n Notation) string {
	return Serialize(c, n.Model())
}

// Serialize renders c as canonical lowercase CSS text for model m: oklab()
// for Oklab, oklch() for Oklch and #rrggbb for every other model. Lightness
// is a percentage with 2 decimals, a, b and chroma have 4 decimals and hue
// has 3. Alpha below 1 is appended to oklab() and oklch(); hex is opaque.
//
// An in-gamut color whose rounded text would parse back further than
// parseBackTolerance away, which happens on the gamut edges near black and
// blue, is written with as many extra decimals as it takes.
func Serialize(c color.Color, m color.Model) string {
	switch m {
	case color.Oklab, color.Oklch:
		return serializeOk(c, m)
	}
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

const (
	parseBackTolerance = 2e-4
	maxExtraDecimals   = 8
)

func serializeOk(c color.Color, m color.Model) string {
	v := color.Convert(c, m)
	text := okText(v, 0)
	src := color.Convert(c, color.Oklab)
	if !color.InGamut(src) {
		return text
	}
	for extra := 1; extra <= maxExtraDecimals && !parsesBack(text, src); extra++ {
		text = okText(v, extra)
	}
	return text
}

// okText writes an Oklab or Oklch color with extra decimals on every
// component.
func okText(v color.Color, extra int) string {
	if v.Model == color.Oklab {
		return "oklab(" + components(v, 2+extra, 4+extra, 4+extra) + ")"
	}
	hd := 3 + extra
	p := math.Pow(10, float64(hd))
	v.V[2] = math.Round(v.V[2]*p) / p
	if v.V[2] >= 360 {
		v.V[2] = 0
	}
	return "oklch(" + components(v, 2+extra, 4+extra, hd) + ")"
}

// parsesBack reports whether text parses to within parseBackTolerance of
// the Oklab color want.
func parsesBack(text string, want color.Color) bool {
	got, err := Parse(text)
	if err != nil {
		return false
	}
	lab := color.Convert(got, color.Oklab)
	d := math.Hypot(math.Hypot(lab.V[0]-want.V[0], lab.V[1]-want.V[1]), lab.V[2]-want.V[2])
	return d <= parseBackTolerance
}

func components(c color.Color, dl, d1, d2 int) string {
	s := formatFloat(c.V[0]*100, dl) + "% " + formatFloat(c.V[1], d1) + " " + formatFloat(c.V[2], d2)
	if c.Alpha < 1 {
		s += " / " + formatFloat(c.Alpha, 4)
	}
	return s
}

// formatFloat rounds v to d decimals and drops trailing zeros, never
// printing -0.
func formatFloat(v float64, d int) string {
	p := math.Pow(10, float64(d))
	v = math.Round(v*p) / p
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
