package color

import "math"

// sRGB transfer curve constants.
const (
	transferAlpha = 0.055
	transferGamma = 2.4
	transferPhi   = 12.92
)

// srgbToLinear converts a single sRGB component [0,1] to linear RGB.
func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / transferPhi
	}
	return math.Pow((v+transferAlpha)/(1+transferAlpha), transferGamma)
}

// linearToSRGB converts a single linear RGB component [0,1] to sRGB.
func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * transferPhi
	}
	return (1+transferAlpha)*math.Pow(v, 1.0/transferGamma) - transferAlpha
}

// linearRGBToOklab converts linear RGB to Oklab (L, a, b).
// The matrices are the double precision pair, exact inverses of each other.
func linearRGBToOklab(r, g, b float64) (float64, float64, float64) {
	// M1: linear RGB → LMS
	l := 0.412221469470763*r + 0.5363325372617348*g + 0.0514459932675022*b
	m := 0.2119034958178252*r + 0.6806995506452344*g + 0.1073969535369406*b
	s := 0.0883024591900564*r + 0.2817188391361215*g + 0.6299787016738222*b

	// Cube root (preserving sign)
	lp := math.Cbrt(l)
	mp := math.Cbrt(m)
	sp := math.Cbrt(s)

	// M2: LMS' → Lab
	L := 0.210454268309314*lp + 0.7936177747023054*mp - 0.0040720430116193*sp
	A := 1.9779985324311684*lp - 2.4285922420485799*mp + 0.450593709617411*sp
	B := 0.0259040424655478*lp + 0.7827717124575296*mp - 0.8086757549230774*sp

	return L, A, B
}

// oklabToLinearRGB converts Oklab (L, a, b) to linear RGB. The result is not
// clamped and lies outside [0,1] for out-of-gamut input.
func oklabToLinearRGB(L, a, b float64) (float64, float64, float64) {
	// Inverse M2: Lab → LMS'
	lp := L + 0.3963377773761749*a + 0.2158037573099136*b
	mp := L - 0.1055613458156586*a - 0.0638541728258133*b
	sp := L - 0.0894841775298119*a - 1.2914855480194092*b

	// Cube: LMS' → LMS
	l := lp * lp * lp
	m := mp * mp * mp
	s := sp * sp * sp

	// Inverse M1: LMS → linear RGB
	r := +4.0767416360759574*l - 3.3077115392580616*m + 0.2309699031821044*s
	g := -1.2684379732850317*l + 2.6097573492876887*m - 0.3413193760026573*s
	bl := -0.0041960761386756*l - 0.7034186179359362*m + 1.7076146940746117*s

	return r, g, bl
}

// labToLCH converts Oklab a/b to chroma and hue in degrees [0, 360).
func labToLCH(a, b float64) (chroma, hue float64) {
	chroma = math.Hypot(a, b)
	hue = math.Atan2(b, a) * (180.0 / math.Pi)
	if hue < 0 {
		hue += 360.0
	}
	return chroma, wrapHue(hue)
}

// lchToLab converts chroma and hue in degrees to Oklab a/b.
func lchToLab(chroma, hue float64) (a, b float64) {
	hRad := hue * (math.Pi / 180.0)
	return chroma * math.Cos(hRad), chroma * math.Sin(hRad)
}

func srgbToOklab(r, g, b float64) (float64, float64, float64) {
	return linearRGBToOklab(srgbToLinear(r), srgbToLinear(g), srgbToLinear(b))
}

// oklabToSRGB converts Oklab to sRGB, clamping the linear components first.
func oklabToSRGB(L, a, b float64) (float64, float64, float64) {
	lr, lg, lb := oklabToLinearRGB(L, a, b)
	return linearToSRGB(clamp01(lr)), linearToSRGB(clamp01(lg)), linearToSRGB(clamp01(lb))
}
