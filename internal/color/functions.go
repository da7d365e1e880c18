package color

import "math"

// BT.709 luma coefficients used by HCY.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// achromaticRGB is the chroma below which an sRGB color has no usable hue.
const achromaticRGB = 1e-9

// rgbHue returns the hue in degrees and the chroma (max - min) of an sRGB
// triple, along with its max and min components. Hue is 0 when chroma is 0.
func rgbHue(r, g, b float64) (h, c, v, m float64) {
	v = math.Max(math.Max(r, g), b)
	m = math.Min(math.Min(r, g), b)
	c = v - m
	if c < achromaticRGB {
		return 0, c, v, m
	}
	switch v {
	case r:
		h = math.Mod((g-b)/c, 6)
		if h < 0 {
			h += 6
		}
	case g:
		h = (b-r)/c + 2
	default:
		h = (r-g)/c + 4
	}
	return wrapHue(h * 60), c, v, m
}

// hueSector splits a hue into its 60° sector and the distance d of the
// middle component from the sector's minimum, in [0, 1].
func hueSector(h float64) (sector int, d float64) {
	h6 := wrapHue(h) / 60
	sector = int(h6)
	if sector > 5 {
		sector = 5
	}
	f := h6 - float64(sector)
	if sector%2 == 0 {
		return sector, f
	}
	return sector, 1 - f
}

// sectorToRGB assigns the max (v), min (m) and middle components to r, g, b
// according to the hue sector. The middle component is m + c*d.
func sectorToRGB(h, v, m, c float64) (r, g, b float64) {
	sector, d := hueSector(h)
	x := m + c*d
	switch sector {
	case 1: // yellow to green
		return x, v, m
	case 2: // green to cyan
		return m, v, x
	case 3: // cyan to blue
		return m, x, v
	case 4: // blue to magenta
		return x, m, v
	case 5: // magenta to red
		return v, m, x
	}
	return v, x, m // red to yellow
}

func rgbToHSV(r, g, b, hint float64) (h, s, v float64) {
	h, c, v, _ := rgbHue(r, g, b)
	if c < achromaticRGB {
		return hint, 0, v
	}
	return h, c / v, v
}

func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	c := v * s
	return sectorToRGB(h, v, v-c, c)
}

func rgbToHSL(r, g, b, hint float64) (h, s, l float64) {
	h, c, v, m := rgbHue(r, g, b)
	l = (v + m) / 2
	if c < achromaticRGB {
		return hint, 0, l
	}
	return h, c / (1 - math.Abs(2*l-1)), l
}

func hslToRGB(h, s, l float64) (float64, float64, float64) {
	var v float64
	if l < 0.5 {
		v = l * (1 + s)
	} else {
		v = l + s*(1-l)
	}
	m := 2*l - v
	return sectorToRGB(h, v, m, v-m)
}

// hueLuma returns the luma of the fully saturated color at hue h, i.e. the
// luma at which the hue reaches its widest chroma.
func hueLuma(h float64) float64 {
	sector, d := hueSector(h)
	switch sector {
	case 1:
		return lumaG + lumaR*d
	case 2:
		return lumaG + lumaB*d
	case 3:
		return lumaB + lumaG*d
	case 4:
		return lumaB + lumaR*d
	case 5:
		return lumaR + lumaB*d
	}
	return lumaR + lumaG*d
}

// hcyChromaLimit returns the largest chroma reachable at hue h and luma y.
func hcyChromaLimit(h, y float64) float64 {
	yHue := hueLuma(h)
	if y <= yHue {
		return y / yHue
	}
	return (1 - y) / (1 - yHue)
}

func rgbToHCY(r, g, b, hint float64) (h, c, y float64) {
	y = lumaR*r + lumaG*g + lumaB*b
	h, c, _, _ = rgbHue(r, g, b)
	if c < achromaticRGB {
		return hint, 0, y
	}
	return h, c, y
}

// hcyToRGB decodes HCY, clipping chroma to the limit for (h, y).
func hcyToRGB(h, c, y float64) (float64, float64, float64) {
	if c <= 0 || y <= 0 || y >= 1 {
		return y, y, y
	}
	yHue := hueLuma(h)
	c = math.Min(c, hcyChromaLimit(h, y))
	m := y - c*yHue
	v := y + c*(1-yHue)
	return sectorToRGB(h, v, m, c)
}
