package css

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jsvensson/hclsliders/internal/color"
)

// percentChroma is the Oklab a, b or Oklch C value that 100% stands for.
const percentChroma = 0.4

// numberRe splits a component into its numeric part and unit suffix.
var numberRe = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)([a-zA-Z%]*)$`)

// Token is a parsed color text before it becomes a Color.
type Token interface {
	// Color returns the token as a color, mapped into the sRGB gamut.
	Color() color.Color
	// Notation returns the notation the token was written in.
	Notation() Notation
}

// Hex is a hex color such as #aabbcc.
type Hex struct {
	R, G, B uint8
}

// OklabFn is an oklab() color. Alpha is 1 when not given.
type OklabFn struct {
	L, A, B float64
	Alpha   float64
}

// OklchFn is an oklch() color with H in degrees [0, 360). Alpha is 1 when
// not given.
type OklchFn struct {
	L, C, H float64
	Alpha   float64
}

func (h Hex) Color() color.Color     { return color.RGB8(h.R, h.G, h.B) }
func (h Hex) Notation() Notation     { return NotationHex }
func (f OklabFn) Notation() Notation { return NotationOklab }
func (f OklchFn) Notation() Notation { return NotationOklch }

func (f OklabFn) Color() color.Color {
	c := color.New(color.Oklab, f.L, f.A, f.B).WithAlpha(f.Alpha)
	if color.InGamut(c) {
		return c
	}
	return color.Convert(color.ToGamut(c), color.Oklab)
}

func (f OklchFn) Color() color.Color {
	c := color.New(color.Oklch, f.L, f.C, f.H).WithAlpha(f.Alpha)
	if color.InGamut(c) {
		return c
	}
	return color.ToGamut(c)
}

// Parse parses hex, oklab() or oklch() color text. A bare component triple
// such as "50% 0.1 -0.05" reads as Oklab unless its third component carries
// an angle unit.
func Parse(text string) (color.Color, error) {
	return ParseAs(text, NotationHex)
}

// ParseAs parses text like Parse, reading a bare component triple in the
// given notation when it is Oklab or Oklch.
func ParseAs(text string, hint Notation) (color.Color, error) {
	tok, err := Tokenize(text, hint)
	if err != nil {
		return color.Color{}, err
	}
	return tok.Color(), nil
}

// ParseAsOklab parses Oklab components with or without the oklab() wrapper.
func ParseAsOklab(text string) (color.Color, error) {
	return parseForced(text, NotationOklab)
}

// ParseAsOklch parses Oklch components with or without the oklch() wrapper.
func ParseAsOklch(text string) (color.Color, error) {
	return parseForced(text, NotationOklch)
}

func parseForced(text string, n Notation) (color.Color, error) {
	sc := newScanner(text)
	tok, err := sc.forced(n)
	if err != nil {
		return color.Color{}, err
	}
	return tok.Color(), nil
}

// Tokenize parses text into a Token without gamut mapping. The hint decides
// how a bare component triple is read.
func Tokenize(text string, hint Notation) (Token, error) {
	return newScanner(text).any(hint)
}

// scanner holds the trimmed input and its offset in the original text, so
// errors report positions in the caller's string.
type scanner struct {
	s   string
	off int
}

func newScanner(text string) *scanner {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	return &scanner{
		s:   strings.TrimRight(trimmed, " \t\r\n"),
		off: len(text) - len(trimmed),
	}
}

func (sc *scanner) any(hint Notation) (Token, error) {
	if sc.s == "" {
		return nil, errorf(OutOfStructure, sc.off, "", "empty color")
	}
	if sc.s[0] == '#' {
		return sc.hex(sc.s[1:], sc.off+1)
	}

	name := leadingWord(sc.s)
	switch strings.ToLower(name) {
	case "oklab":
		return sc.function(NotationOklab, len(name))
	case "oklch":
		return sc.function(NotationOklch, len(name))
	}

	if isHexDigits(sc.s) {
		return sc.hex(sc.s, sc.off)
	}
	if name != "" && !strings.EqualFold(name, "none") && endsWord(sc.s, len(name)) {
		return nil, errorf(UnknownFunction, sc.off, name, "expected oklab or oklch")
	}

	comps, err := sc.components(sc.s, sc.off)
	if err != nil {
		return nil, err
	}
	return build(bareNotation(comps, hint), comps)
}

func (sc *scanner) forced(n Notation) (Token, error) {
	if sc.s == "" {
		return nil, errorf(OutOfStructure, sc.off, "", "empty color")
	}
	name := leadingWord(sc.s)
	switch {
	case strings.EqualFold(name, n.String()):
		return sc.function(n, len(name))
	case name != "" && !strings.EqualFold(name, "none") && endsWord(sc.s, len(name)):
		return nil, errorf(UnknownFunction, sc.off, name, "expected %s", n)
	}
	comps, err := sc.components(sc.s, sc.off)
	if err != nil {
		return nil, err
	}
	return build(n, comps)
}

func (sc *scanner) hex(digits string, pos int) (Token, error) {
	if len(digits) != 3 && len(digits) != 6 {
		return nil, errorf(BadHexLength, pos, digits, "hex color must have 3 or 6 digits, got %d", len(digits))
	}
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return nil, errorf(BadNumber, pos+i, digits[i:i+1], "invalid hex digit")
		}
	}
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	v, _ := strconv.ParseUint(digits, 16, 32)
	return Hex{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// function parses the part after a function name of length n: either a
// parenthesized or a bare component list.
func (sc *scanner) function(notation Notation, n int) (Token, error) {
	rest := sc.s[n:]
	restOff := sc.off + n
	trimmed := strings.TrimLeft(rest, " \t\r\n")
	restOff += len(rest) - len(trimmed)

	if strings.HasPrefix(trimmed, "(") {
		if !strings.HasSuffix(trimmed, ")") {
			return nil, errorf(OutOfStructure, restOff, "(", "missing closing parenthesis")
		}
		inner := trimmed[1 : len(trimmed)-1]
		comps, err := sc.components(inner, restOff+1)
		if err != nil {
			return nil, err
		}
		return build(notation, comps)
	}
	if trimmed != "" && len(trimmed) == len(rest) && trimmed[0] != ',' {
		return nil, errorf(OutOfStructure, restOff, trimmed[:1], "expected ( or a space after %s", notation)
	}
	comps, err := sc.components(trimmed, restOff)
	if err != nil {
		return nil, err
	}
	return build(notation, comps)
}

// component is one field of a component list with its byte offset.
type component struct {
	text string
	pos  int
}

// components splits a list on whitespace and commas, keeping "/" as its own
// field, and checks the "a b c [/ alpha]" shape.
func (sc *scanner) components(list string, off int) ([]component, error) {
	var fields []component
	start := -1
	flush := func(end int) {
		if start >= 0 {
			fields = append(fields, component{text: list[start:end], pos: off + start})
			start = -1
		}
	}
	for i := 0; i < len(list); i++ {
		switch ch := list[i]; ch {
		case ' ', '\t', '\r', '\n', ',':
			flush(i)
		case '/':
			flush(i)
			fields = append(fields, component{text: "/", pos: off + i})
		case '(', ')':
			return nil, errorf(OutOfStructure, off+i, string(ch), "unexpected parenthesis")
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(list))

	end := off + len(list)
	switch {
	case len(fields) < 3:
		return nil, errorf(OutOfStructure, end, "", "expected 3 components, got %d", len(fields))
	case fields[0].text == "/" || fields[1].text == "/" || fields[2].text == "/":
		f := firstSlash(fields)
		return nil, errorf(OutOfStructure, f.pos, f.text, "alpha separator before 3 components")
	case len(fields) == 3:
		return fields, nil
	case fields[3].text != "/":
		return nil, errorf(OutOfStructure, fields[3].pos, fields[3].text, "expected 3 components, got %d", countValues(fields))
	case len(fields) == 4:
		return nil, errorf(OutOfStructure, end, "", "missing alpha after /")
	case len(fields) > 5:
		return nil, errorf(OutOfStructure, fields[5].pos, fields[5].text, "unexpected component after alpha")
	case fields[4].text == "/":
		return nil, errorf(OutOfStructure, fields[4].pos, "/", "unexpected /")
	}
	return []component{fields[0], fields[1], fields[2], fields[4]}, nil
}

func firstSlash(fields []component) component {
	for _, f := range fields {
		if f.text == "/" {
			return f
		}
	}
	return fields[0]
}

func countValues(fields []component) int {
	n := 0
	for _, f := range fields {
		if f.text == "/" {
			break
		}
		n++
	}
	return n
}

// bareNotation picks Oklab or Oklch for a component list without a function
// name.
func bareNotation(comps []component, hint Notation) Notation {
	_, unit, err := splitNumber(comps[2])
	if err == nil && isAngleUnit(unit) {
		return NotationOklch
	}
	if hint == NotationOklch && !strings.HasPrefix(comps[1].text, "-") {
		return NotationOklch
	}
	return NotationOklab
}

func build(n Notation, comps []component) (Token, error) {
	l, err := lightness(comps[0])
	if err != nil {
		return nil, err
	}
	alpha := 1.0
	if len(comps) == 4 {
		if alpha, err = alphaValue(comps[3]); err != nil {
			return nil, err
		}
	}

	if n == NotationOklch {
		c, err := chroma(comps[1])
		if err != nil {
			return nil, err
		}
		h, err := angle(comps[2])
		if err != nil {
			return nil, err
		}
		return OklchFn{L: l, C: math.Max(c, 0), H: h, Alpha: alpha}, nil
	}

	a, err := chroma(comps[1])
	if err != nil {
		return nil, err
	}
	b, err := chroma(comps[2])
	if err != nil {
		return nil, err
	}
	return OklabFn{L: l, A: a, B: b, Alpha: alpha}, nil
}

// splitNumber parses a component into its value and lowercased unit. The
// keyword none reads as 0.
func splitNumber(c component) (float64, string, error) {
	if strings.EqualFold(c.text, "none") {
		return 0, "", nil
	}
	m := numberRe.FindStringSubmatch(c.text)
	if m == nil {
		return 0, "", errorf(BadNumber, c.pos, c.text, "not a number")
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, "", errorf(BadNumber, c.pos, c.text, "number out of range")
	}
	return v, strings.ToLower(m[2]), nil
}

func lightness(c component) (float64, error) {
	v, unit, err := splitNumber(c)
	if err != nil {
		return 0, err
	}
	switch unit {
	case "%":
		v /= 100
	case "":
	default:
		return 0, errorf(BadUnit, c.pos, c.text, "lightness takes a percentage or a number")
	}
	return clamp01(v), nil
}

func chroma(c component) (float64, error) {
	v, unit, err := splitNumber(c)
	if err != nil {
		return 0, err
	}
	switch unit {
	case "%":
		return v / 100 * percentChroma, nil
	case "":
		return v, nil
	}
	return 0, errorf(BadUnit, c.pos, c.text, "expected a percentage or a number")
}

func angle(c component) (float64, error) {
	v, unit, err := splitNumber(c)
	if err != nil {
		return 0, err
	}
	switch unit {
	case "", "deg":
	case "grad":
		v *= 0.9
	case "rad":
		v *= 180 / math.Pi
	case "turn":
		v *= 360
	default:
		return 0, errorf(BadUnit, c.pos, c.text, "hue takes deg, grad, rad or turn")
	}
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	if v >= 360 {
		v = 0
	}
	return v, nil
}

func alphaValue(c component) (float64, error) {
	v, unit, err := splitNumber(c)
	if err != nil {
		return 0, err
	}
	switch unit {
	case "%":
		v /= 100
	case "":
	default:
		return 0, errorf(BadUnit, c.pos, c.text, "alpha takes a percentage or a number")
	}
	return clamp01(v), nil
}

func isAngleUnit(unit string) bool {
	switch unit {
	case "deg", "grad", "rad", "turn":
		return true
	}
	return false
}

func leadingWord(s string) string {
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	return s[:i]
}

// endsWord reports whether the word of length n in s is followed by the end
// of input, a separator or "(".
func endsWord(s string, n int) bool {
	if n >= len(s) {
		return true
	}
	switch s[n] {
	case ' ', '\t', '\r', '\n', ',', '(':
		return true
	}
	return false
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isHexDigit(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return s != ""
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
