package color

import "math"

// Convert returns c expressed in the target model. Input channels are
// clamped first. When the result is achromatic, its hue is carried over from
// c if c's model has one.
//
// Colors in the Ok family are mapped into the sRGB gamut before they are
// converted to an sRGB-family model or to OKHSV, OKHSL or OKHCL.
func Convert(c Color, target Model) Color {
	return ConvertHue(c, target, c.Hue())
}

// ConvertHue is Convert with an explicit hue for achromatic results, such as
// the last hue a slider showed.
func ConvertHue(c Color, target Model, hue float64) Color {
	c = c.Clamped()
	if c.Model == target {
		return c
	}
	hue = wrapHue(finite(hue))
	out := Color{Model: target, Alpha: c.Alpha}

	if !target.IsOk() {
		r, g, b := toSRGB(c)
		out.V = fromSRGB(target, r, g, b, hue)
		return out
	}

	L, a, b := toOklab(c)
	switch target {
	case Oklab, Oklch:
	default:
		if !labInGamut(L, a, b) {
			L, a, b = mapLab(L, a, b)
		}
	}
	out.V = fromOklab(target, L, a, b, hue)
	return out
}

// ChromaLimit returns the chroma ceiling of a chroma channel at hue h and
// lightness (or luma) l: HCY chroma, OKHCL relative chroma and Oklch chroma.
// Other models report 1.
func ChromaLimit(m Model, h, l float64) float64 {
	h, l = wrapHue(finite(h)), clamp01(finite(l))
	switch m {
	case HCY:
		if l <= 0 || l >= 1 {
			return 0
		}
		return hcyChromaLimit(h, l)
	case OKHCL:
		return okhclChromaLimit(h, l)
	case Oklch:
		return MaxChroma(l, h)
	}
	return 1
}

// mapLab reduces the chroma of an Oklab point until it is in gamut.
func mapLab(L, a, b float64) (float64, float64, float64) {
	c, h := labToLCH(a, b)
	m := ToGamut(Color{Model: Oklch, V: [3]float64{L, c, h}, Alpha: 1})
	a, b = lchToLab(m.V[1], m.V[2])
	return m.V[0], a, b
}

// toSRGB converts a clamped color to sRGB components in [0, 1].
func toSRGB(c Color) (r, g, b float64) {
	v := c.V
	switch c.Model {
	case SRGB:
		return v[0], v[1], v[2]
	case LinearSRGB:
		return linearToSRGB(v[0]), linearToSRGB(v[1]), linearToSRGB(v[2])
	case HSV:
		r, g, b = hsvToRGB(v[0], v[1], v[2])
	case HSL:
		r, g, b = hslToRGB(v[0], v[1], v[2])
	case HCY:
		r, g, b = hcyToRGB(v[0], v[1], v[2])
	default:
		L, a, bb := toOklab(c)
		if !labInGamut(L, a, bb) {
			L, a, bb = mapLab(L, a, bb)
		}
		r, g, b = oklabToSRGB(L, a, bb)
	}
	return clamp01(r), clamp01(g), clamp01(b)
}

// toOklab converts a clamped color to Oklab without gamut mapping.
func toOklab(c Color) (L, a, b float64) {
	v := c.V
	switch c.Model {
	case Oklab:
		return v[0], v[1], v[2]
	case Oklch:
		a, b = lchToLab(v[1], v[2])
		return v[0], a, b
	case OKHSV:
		return okhsvToOklab(v[0], v[1], v[2])
	case OKHSL:
		return okhslToOklab(v[0], v[1], v[2])
	case OKHCL:
		return okhclToOklab(v[0], v[1], v[2])
	case LinearSRGB:
		return linearRGBToOklab(v[0], v[1], v[2])
	}
	r, g, bb := toSRGB(c)
	return srgbToOklab(r, g, bb)
}

func fromSRGB(target Model, r, g, b, hue float64) [3]float64 {
	switch target {
	case LinearSRGB:
		return [3]float64{srgbToLinear(r), srgbToLinear(g), srgbToLinear(b)}
	case HSV:
		h, s, v := rgbToHSV(r, g, b, hue)
		return [3]float64{h, s, v}
	case HSL:
		h, s, l := rgbToHSL(r, g, b, hue)
		return [3]float64{h, s, l}
	case HCY:
		h, c, y := rgbToHCY(r, g, b, hue)
		return [3]float64{h, c, y}
	}
	return [3]float64{r, g, b}
}

func fromOklab(target Model, L, a, b, hue float64) [3]float64 {
	switch target {
	case Oklch:
		c, h := labToLCH(a, b)
		if c < achromaticOk {
			h = hue
		}
		return [3]float64{L, c, h}
	case OKHSV:
		h, s, v := oklabToOKHSV(L, a, b, hue)
		return [3]float64{h, clamp01(s), clamp01(v)}
	case OKHSL:
		h, s, l := oklabToOKHSL(L, a, b, hue)
		return [3]float64{h, s, clamp01(l)}
	case OKHCL:
		h, c, l := oklabToOKHCL(L, a, b, hue)
		return [3]float64{h, math.Max(c, 0), clamp01(l)}
	}
	return [3]float64{L, a, b}
}
