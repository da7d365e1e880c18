package color

import "math"

// Toe constants for the lightness estimate L_r.
const (
	toeK1 = 0.206
	toeK2 = 0.03
	toeK3 = (1 + toeK1) / (1 + toeK2)
)

// achromaticOk is the Oklab chroma below which a color has no usable hue.
const achromaticOk = 1e-6

func toe(x float64) float64 {
	return 0.5 * (toeK3*x - toeK1 + math.Sqrt((toeK3*x-toeK1)*(toeK3*x-toeK1)+4*toeK2*toeK3*x))
}

func toeInv(x float64) float64 {
	return (x*x + toeK1*x) / (toeK3 * (x + toeK2))
}

// cuspScale returns the factor that compensates for the curved top of the
// gamut at the point (lvt, cvt) on the hue direction a, b.
func cuspScale(lvt, cvt, a, b float64) float64 {
	r, g, bl := oklabToLinearRGB(lvt, a*cvt, b*cvt)
	return math.Cbrt(1 / math.Max(math.Max(r, g), math.Max(bl, 0)))
}

func oklabToOKHSV(L, a, b, hint float64) (h, s, v float64) {
	c, hue := labToLCH(a, b)
	if c < achromaticOk || L <= 0 {
		return hint, 0, toe(L)
	}
	an, bn := a/c, b/c
	sMax, tMax := findCusp(an, bn).st()
	const s0 = 0.5
	k := 1 - s0/sMax

	t := tMax / (c + L*tMax)
	lv := t * L
	cv := t * c

	lvt := toeInv(lv)
	cvt := cv * lvt / lv
	scale := cuspScale(lvt, cvt, an, bn)

	L /= scale
	L = toe(L)

	v = L / lv
	s = (s0 + tMax) * cv / (tMax*s0 + tMax*k*cv)
	return hue, math.Min(s, 1), v
}

func okhsvToOklab(h, s, v float64) (L, a, b float64) {
	if v <= 0 {
		return 0, 0, 0
	}
	if s <= 0 {
		return toeInv(v), 0, 0
	}
	an, bn := lchToLab(1, h)
	sMax, tMax := findCusp(an, bn).st()
	const s0 = 0.5
	k := 1 - s0/sMax

	// L and C as if the gamut were a perfect triangle, at v = 1.
	lv := 1 - s*s0/(s0+tMax-tMax*k*s)
	cv := s * tMax * s0 / (s0 + tMax - tMax*k*s)
	L = v * lv
	c := v * cv

	// Compensate for the toe and the curved top of the triangle.
	lvt := toeInv(lv)
	cvt := cv * lvt / lv
	lNew := toeInv(L)
	c *= lNew / L
	L = lNew

	scale := cuspScale(lvt, cvt, an, bn)
	L *= scale
	c *= scale
	return L, an * c, bn * c
}

func oklabToOKHSL(L, a, b, hint float64) (h, s, l float64) {
	c, hue := labToLCH(a, b)
	l = toe(L)
	if c < achromaticOk || L <= 0 || L >= 1 {
		return hint, 0, l
	}
	c0, cMid, cMax := chromaStops(L, a/c, b/c)

	const mid, midInv = 0.8, 1.25
	if c < cMid {
		k1 := mid * c0
		k2 := 1 - k1/cMid
		t := c / (k1 + k2*c)
		s = t * mid
	} else {
		k1 := (1 - mid) * cMid * cMid * midInv * midInv / c0
		k2 := 1 - k1/(cMax-cMid)
		t := (c - cMid) / (k1 + k2*(c-cMid))
		s = mid + (1-mid)*t
	}
	return hue, clamp01(s), l
}

func okhslToOklab(h, s, l float64) (L, a, b float64) {
	if l <= 0 || l >= 1 {
		return l, 0, 0
	}
	L = toeInv(l)
	if s <= 0 {
		return L, 0, 0
	}
	an, bn := lchToLab(1, h)
	c0, cMid, cMax := chromaStops(L, an, bn)

	// C(0) = 0 with slope C0, C(0.8) = Cmid, C(1) = Cmax.
	const mid, midInv = 0.8, 1.25
	var c float64
	if s < mid {
		t := midInv * s
		k1 := mid * c0
		k2 := 1 - k1/cMid
		c = t * k1 / (1 - k2*t)
	} else {
		t := (s - mid) / (1 - mid)
		k1 := (1 - mid) * cMid * cMid * midInv * midInv / c0
		k2 := 1 - k1/(cMax-cMid)
		c = cMid + t*k1/(1-k2*t)
	}
	return L, an * c, bn * c
}

// okhclLimit returns the gamut chroma limit at (L, hue direction) and the
// cusp chroma OKHCL chroma is relative to.
func okhclLimit(L, a, b float64) (cMax, cuspC float64) {
	cs := findCusp(a, b)
	if L <= 0 || L >= 1 {
		return 0, cs.C
	}
	return gamutChroma(L, a, b, cs), cs.C
}

func oklabToOKHCL(L, a, b, hint float64) (h, c, l float64) {
	chroma, hue := labToLCH(a, b)
	l = toe(L)
	if chroma < achromaticOk {
		return hint, 0, l
	}
	cMax, cuspC := okhclLimit(L, a/chroma, b/chroma)
	return hue, math.Min(chroma, cMax) / cuspC, l
}

// okhclToOklab decodes OKHCL, clipping chroma to the gamut limit.
func okhclToOklab(h, c, l float64) (L, a, b float64) {
	L = toeInv(l)
	if c <= 0 {
		return L, 0, 0
	}
	an, bn := lchToLab(1, h)
	cMax, cuspC := okhclLimit(L, an, bn)
	chroma := math.Min(c*cuspC, cMax)
	return L, an * chroma, bn * chroma
}

// okhclChromaLimit returns the OKHCL chroma ceiling at hue h and
// toe-corrected lightness l.
func okhclChromaLimit(h, l float64) float64 {
	a, b := lchToLab(1, h)
	cMax, cuspC := okhclLimit(toeInv(l), a, b)
	return cMax / cuspC
}
