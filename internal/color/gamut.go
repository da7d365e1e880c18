package color

import "math"

// gamutTolerance is how far outside [0,1] a linear sRGB component may fall
// and still count as in gamut.
const gamutTolerance = 1e-9

// gamutIterations bounds the chroma bisection in ToGamut. With the search
// interval capped at maxSearchChroma this resolves chroma below 1e-7.
const (
	gamutIterations = 24
	maxSearchChroma = 0.5
)

// ToGamut maps c into the sRGB gamut by reducing Oklch chroma at fixed
// lightness and hue. The result is always an Oklch color. Colors already in
// gamut are returned unchanged; lightness at or beyond 0 and 1 collapses to
// black and white.
func ToGamut(c Color) Color {
	lch := c
	if c.Model != Oklch {
		lch = Convert(c, Oklch)
	}
	lch = lch.Clamped()
	l, ch, h := lch.V[0], lch.V[1], lch.V[2]
	switch {
	case l <= 0:
		return Color{Model: Oklch, V: [3]float64{0, 0, h}, Alpha: lch.Alpha}
	case l >= 1:
		return Color{Model: Oklch, V: [3]float64{1, 0, h}, Alpha: lch.Alpha}
	}
	if lchInGamut(l, ch, h) {
		return lch
	}
	lo, hi := 0.0, math.Min(ch, maxSearchChroma)
	for range gamutIterations {
		mid := (lo + hi) / 2
		if lchInGamut(l, mid, h) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return Color{Model: Oklch, V: [3]float64{l, lo, h}, Alpha: lch.Alpha}
}

// InGamut reports whether c lies inside the sRGB gamut. Colors in the sRGB
// family always do once clamped.
func InGamut(c Color) bool {
	if !c.Model.IsOk() {
		return true
	}
	L, a, b := toOklab(c.Clamped())
	return labInGamut(L, a, b)
}

// MaxChroma returns the largest Oklch chroma inside the sRGB gamut at
// lightness l and hue h. It agrees with ToGamut at every hue.
func MaxChroma(l, h float64) float64 {
	l = clamp01(finite(l))
	if l <= 0 || l >= 1 {
		return 0
	}
	a, b := lchToLab(1, wrapHue(finite(h)))
	return gamutChroma(l, a, b, findCusp(a, b))
}

// boundaryIterations is the bisection depth of refineBoundary, enough to
// resolve a bracket of order 1 to float64 precision.
const boundaryIterations = 52

// refineBoundary returns the largest x >= 0 for which inside(x) holds,
// starting from the estimate est. inside(0) must hold and inside must be
// false beyond the boundary.
func refineBoundary(inside func(float64) bool, est float64) float64 {
	if !(est > 0) || math.IsInf(est, 0) {
		est = 0.1
	}
	lo, hi := est, est
	if inside(est) {
		for i := 0; inside(hi); i++ {
			if i == 64 {
				return hi
			}
			lo = hi
			hi *= 1.1
		}
	} else {
		for i := 0; !inside(lo); i++ {
			if i == 64 {
				lo = 0
				break
			}
			hi = lo
			lo *= 0.5
		}
	}
	for range boundaryIterations {
		mid := (lo + hi) / 2
		if mid == lo || mid == hi {
			break
		}
		if inside(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// gamutChroma returns the largest chroma inside the sRGB gamut at lightness
// L on the hue direction a, b (a² + b² = 1). The analytic intersection
// seeds a bisection against the exact gamut test.
func gamutChroma(L, a, b float64, cs cusp) float64 {
	if L <= 0 || L >= 1 {
		return 0
	}
	est := findGamutIntersection(a, b, L, 1, L, cs)
	return refineBoundary(func(c float64) bool {
		return labInGamut(L, c*a, c*b)
	}, est)
}

func lchInGamut(l, c, h float64) bool {
	a, b := lchToLab(c, h)
	return labInGamut(l, a, b)
}

func labInGamut(L, a, b float64) bool {
	r, g, bl := oklabToLinearRGB(L, a, b)
	return inUnit(r) && inUnit(g) && inUnit(bl)
}

func inUnit(v float64) bool {
	return v >= -gamutTolerance && v <= 1+gamutTolerance
}

// cusp is the point of maximum chroma for a hue on the sRGB gamut boundary.
type cusp struct {
	L, C float64
}

// computeMaxSaturation finds the largest saturation S = C/L that fits in
// sRGB for the hue given by a, b, where a² + b² = 1.
func computeMaxSaturation(a, b float64) float64 {
	// Blue component goes below zero first by default.
	k0, k1, k2, k3, k4 := 1.35733652, -0.00915799, -1.15130210, -0.50559606, 0.00692167
	wl, wm, ws := -0.0041960863, -0.7034186147, 1.7076147010
	switch {
	case -1.88170328*a-0.80936493*b > 1: // red
		k0, k1, k2, k3, k4 = 1.19086277, 1.76576728, 0.59662641, 0.75515197, 0.56771245
		wl, wm, ws = 4.0767416621, -3.3077115913, 0.2309699292
	case 1.81444104*a-1.19445276*b > 1: // green
		k0, k1, k2, k3, k4 = 0.73956515, -0.45954404, 0.08285427, 0.12541070, 0.14503204
		wl, wm, ws = -1.2684380046, 2.6097574011, -0.3413193965
	}

	// Polynomial estimate, refined with one Halley step.
	maxS := k0 + k1*a + k2*b + k3*a*a + k4*a*b

	kl := 0.3963377774*a + 0.2158037573*b
	km := -0.1055613458*a - 0.0638541728*b
	ks := -0.0894841775*a - 1.2914855480*b

	lp := 1 + maxS*kl
	mp := 1 + maxS*km
	sp := 1 + maxS*ks

	l := lp * lp * lp
	m := mp * mp * mp
	s := sp * sp * sp

	ldS := 3 * kl * lp * lp
	mdS := 3 * km * mp * mp
	sdS := 3 * ks * sp * sp

	ldS2 := 6 * kl * kl * lp
	mdS2 := 6 * km * km * mp
	sdS2 := 6 * ks * ks * sp

	f := wl*l + wm*m + ws*s
	f1 := wl*ldS + wm*mdS + ws*sdS
	f2 := wl*ldS2 + wm*mdS2 + ws*sdS2

	return maxS - f*f1/(f1*f1-0.5*f*f2)
}

// maxSaturation returns the largest S = C/L inside the gamut for the hue
// direction a, b. The lower gamut edge is a ray from black, so S is found at
// L = 1 where only the sign of each channel matters.
func maxSaturation(a, b float64) float64 {
	return refineBoundary(func(s float64) bool {
		r, g, bl := oklabToLinearRGB(1, s*a, s*b)
		return r >= -gamutTolerance && g >= -gamutTolerance && bl >= -gamutTolerance
	}, computeMaxSaturation(a, b))
}

// findCusp returns the cusp for the normalized hue direction a, b.
func findCusp(a, b float64) cusp {
	sCusp := maxSaturation(a, b)
	r, g, bl := oklabToLinearRGB(1, sCusp*a, sCusp*b)
	lCusp := math.Cbrt(1 / math.Max(math.Max(r, g), bl))
	return cusp{L: lCusp, C: lCusp * sCusp}
}

// findGamutIntersection finds t such that the point L = l0*(1-t) + t*l1,
// C = t*c1 lies on the gamut boundary for the hue a, b (a² + b² = 1).
func findGamutIntersection(a, b, l1, c1, l0 float64, cs cusp) float64 {
	if (l1-l0)*cs.C-(cs.L-l1)*c1 <= 0 {
		// Lower half of the gamut triangle.
		return cs.C * l0 / (c1*cs.L + cs.C*(l0-l1))
	}

	// Upper half: intersect the triangle, then one Halley step.
	t := cs.C * (l0 - 1) / (c1*(cs.L-1) + cs.C*(l0-l1))

	dL := l1 - l0
	dC := c1

	kl := 0.3963377774*a + 0.2158037573*b
	km := -0.1055613458*a - 0.0638541728*b
	ks := -0.0894841775*a - 1.2914855480*b

	ldt := dL + dC*kl
	mdt := dL + dC*km
	sdt := dL + dC*ks

	L := l0*(1-t) + t*l1
	C := t * c1

	lp := L + C*kl
	mp := L + C*km
	sp := L + C*ks

	l := lp * lp * lp
	m := mp * mp * mp
	s := sp * sp * sp

	l1d := 3 * ldt * lp * lp
	m1d := 3 * mdt * mp * mp
	s1d := 3 * sdt * sp * sp

	l2d := 6 * ldt * ldt * lp
	m2d := 6 * mdt * mdt * mp
	s2d := 6 * sdt * sdt * sp

	step := func(wl, wm, ws float64) float64 {
		f := wl*l + wm*m + ws*s - 1
		f1 := wl*l1d + wm*m1d + ws*s1d
		f2 := wl*l2d + wm*m2d + ws*s2d
		u := f1 / (f1*f1 - 0.5*f*f2)
		if u < 0 {
			return math.MaxFloat64
		}
		return -f * u
	}
	tr := step(4.0767416621, -3.3077115913, 0.2309699292)
	tg := step(-1.2684380046, 2.6097574011, -0.3413193965)
	tb := step(-0.0041960863, -0.7034186147, 1.7076147010)

	return t + math.Min(tr, math.Min(tg, tb))
}

// st returns the cusp expressed as S = C/L and T = C/(1-L).
func (cs cusp) st() (s, t float64) {
	return cs.C / cs.L, cs.C / (1 - cs.L)
}

// midST is a smooth approximation of the cusp location with S_mid < S_max
// and T_mid < T_max.
func midST(a, b float64) (s, t float64) {
	s = 0.11516993 + 1/(7.44778970+4.15901240*b+
		a*(-2.19557347+1.75198401*b+
			a*(-2.13704948-10.02301043*b+
				a*(-4.24894561+5.38770819*b+4.69891013*a))))
	t = 0.11239642 + 1/(1.61320320-0.68124379*b+
		a*(0.40370612+0.90148123*b+
			a*(-0.27087943+0.61223990*b+
				a*(0.00299215-0.45399568*b-0.14661872*a))))
	return s, t
}

// chromaStops returns the three chroma anchors OKHSL interpolates between
// at lightness l: C0 near the neutral axis, Cmid and the gamut limit Cmax.
func chromaStops(l, a, b float64) (c0, cMid, cMax float64) {
	cs := findCusp(a, b)
	cMax = gamutChroma(l, a, b, cs)
	sMax, tMax := cs.st()

	// Compensates for the curved part of the gamut shape.
	k := cMax / math.Min(l*sMax, (1-l)*tMax)

	sMid, tMid := midST(a, b)
	ca := l * sMid
	cb := (1 - l) * tMid
	cMid = 0.9 * k * math.Sqrt(math.Sqrt(1/(1/(ca*ca*ca*ca)+1/(cb*cb*cb*cb))))

	// Hue independent; ST roughly averaged over all hues.
	ca = l * 0.4
	cb = (1 - l) * 0.8
	c0 = math.Sqrt(1 / (1/(ca*ca) + 1/(cb*cb)))

	return c0, cMid, cMax
}
