// Package channel implements slider policy for single color channels:
// pointer-to-value mapping, grid snapping, fine drags and gradients.
//
// Channel values are in display units: hue in degrees [0, 360], every other
// channel in percent [0, 100]. Chroma channels have a dynamic limit that
// depends on the other two channels of the color.
package channel

import (
	"fmt"
	"math"
	"strings"

	"github.com/jsvensson/hclsliders/internal/color"
)

const (
	hueRange     = 360.0
	percentRange = 100.0

	minInterval = 0.1
)

// Kind is the role a channel plays in its model.
type Kind int

const (
	Hue Kind = iota
	Chroma
	Plain
)

// Channel is one slider bound to a channel index of a color model.
type Channel struct {
	Name  string
	Model color.Model
	Index int
	Kind  Kind

	// Interval and Displacement define the snapping grid, in display units.
	Interval     float64
	Displacement float64
	// Scale keeps chroma relative to its limit when a hue or luma channel of
	// HCY or OKHCL moves. When false the absolute chroma is kept and clipped.
	Scale bool
	// Colorful draws hue gradients at full saturation and value.
	Colorful bool
}

type def struct {
	name  string
	model color.Model
	index int
	kind  Kind
}

var defs = []def{
	{"hsvHue", color.HSV, 0, Hue},
	{"hsvSaturation", color.HSV, 1, Plain},
	{"hsvValue", color.HSV, 2, Plain},
	{"hslHue", color.HSL, 0, Hue},
	{"hslSaturation", color.HSL, 1, Plain},
	{"hslLightness", color.HSL, 2, Plain},
	{"hcyHue", color.HCY, 0, Hue},
	{"hcyChroma", color.HCY, 1, Chroma},
	{"hcyLuma", color.HCY, 2, Plain},
	{"okhclHue", color.OKHCL, 0, Hue},
	{"okhclChroma", color.OKHCL, 1, Chroma},
	{"okhclLightness", color.OKHCL, 2, Plain},
	{"okhsvHue", color.OKHSV, 0, Hue},
	{"okhsvSaturation", color.OKHSV, 1, Plain},
	{"okhsvValue", color.OKHSV, 2, Plain},
	{"okhslHue", color.OKHSL, 0, Hue},
	{"okhslSaturation", color.OKHSL, 1, Plain},
	{"okhslLightness", color.OKHSL, 2, Plain},
}

// Names lists every channel name in default display order.
func Names() []string {
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.name
	}
	return names
}

// All returns every channel with default settings, in display order.
func All() []*Channel {
	chs := make([]*Channel, len(defs))
	for i, d := range defs {
		chs[i] = newChannel(d)
	}
	return chs
}

// Lookup returns a channel with default settings by name.
func Lookup(name string) (*Channel, error) {
	for _, d := range defs {
		if strings.EqualFold(d.name, name) {
			return newChannel(d), nil
		}
	}
	return nil, fmt.Errorf("unknown channel %q", name)
}

func newChannel(d def) *Channel {
	ch := &Channel{
		Name:     d.name,
		Model:    d.model,
		Index:    d.index,
		Kind:     d.kind,
		Interval: 10,
		Scale:    d.model != color.HCY && d.model != color.OKHCL,
	}
	if d.kind == Hue {
		ch.Interval = 30
		if d.model.IsOk() {
			ch.Interval = 40
			ch.Displacement = 25
		}
	}
	return ch
}

// Range is the fixed span of the channel: 360 for hues, 100 otherwise.
func (ch *Channel) Range() float64 {
	if ch.Kind == Hue {
		return hueRange
	}
	return percentRange
}

// SetInterval sets the snapping interval, clamped to [0.1, Range].
func (ch *Channel) SetInterval(v float64) {
	ch.Interval = clamp(v, minInterval, ch.Range())
}

// SetDisplacement sets the grid offset, clamped to [0, Range-0.1].
func (ch *Channel) SetDisplacement(v float64) {
	ch.Displacement = clamp(v, 0, ch.Range()-minInterval)
}

// Limit returns the largest value the channel can take for c. For chroma
// channels it depends on the hue and lightness of c.
func (ch *Channel) Limit(c color.Color) float64 {
	if ch.Kind != Chroma {
		return ch.Range()
	}
	m := color.Convert(c, ch.Model)
	return round(color.ChromaLimit(ch.Model, m.V[0], m.V[2])*percentRange, 3)
}

// Read returns the channel value of c in display units.
func (ch *Channel) Read(c color.Color) float64 {
	m := color.Convert(c, ch.Model)
	return ch.display(m.V[ch.Index])
}

// Apply returns c expressed in the channel's model with the channel set to
// value. Other channels keep their values; for the HCL models a scaling
// hue or luma channel keeps chroma proportional to its limit.
func (ch *Channel) Apply(c color.Color, value float64) color.Color {
	m := color.Convert(c, ch.Model)
	before := 0.0
	scaled := ch.Scale && ch.Kind != Chroma && (ch.Model == color.HCY || ch.Model == color.OKHCL)
	if scaled {
		before = color.ChromaLimit(ch.Model, m.V[0], m.V[2])
	}
	m.V[ch.Index] = ch.engine(value)
	if scaled && before > 0 {
		after := color.ChromaLimit(ch.Model, m.V[0], m.V[2])
		m.V[1] = m.V[1] / before * after
	}
	return m.Clamped()
}

// Press maps a pointer position x on a slider of the given width to a
// channel value in [0, limit], rounded to 3 decimals.
func Press(x, width, limit float64) float64 {
	if width <= 0 {
		return 0
	}
	x = clamp(x, 0, width)
	return round(x/width*limit, 3)
}

// Snap maps a pointer position like Press, then moves the value to the
// nearest point of the channel's interval grid. The ends of the slider are
// never moved. Below a limit of 100 the interval is a percentage of limit.
func (ch *Channel) Snap(x, width, limit float64) float64 {
	v := Press(x, width, limit)
	if v == 0 || v == limit {
		return v
	}
	interval := ch.Interval
	if interval == 0 {
		interval = limit
	}
	if limit < percentRange {
		interval = ch.Interval / percentRange * limit
	}
	if interval <= 0 {
		return v
	}
	d := math.Mod(v-ch.Displacement, interval)
	if d < 0 {
		d += interval
	}
	if d < interval/2 {
		v -= d
	} else {
		v += interval - d
	}
	return round(clamp(v, 0, limit), 3)
}

// Modifier selects the per-pixel step of a relative drag.
type Modifier int

const (
	// Fine moves 0.1 units per pixel.
	Fine Modifier = iota
	// Finer moves 0.01 units per pixel.
	Finer
)

// Step returns the value change per pixel.
func (m Modifier) Step() float64 {
	if m == Finer {
		return 0.01
	}
	return 0.1
}

// Drag is a relative drag started at pointer position X with value Start.
type Drag struct {
	Start float64
	X     float64
}

// Shift returns the value for a drag that has reached pointer position x.
// Hues wrap around; every other channel clamps to [0, limit].
func (ch *Channel) Shift(d Drag, x, limit float64, m Modifier) float64 {
	v := d.Start + (x-d.X)*m.Step()
	if ch.Kind == Hue {
		return wrap(v, limit)
	}
	return clamp(v, 0, limit)
}

func (ch *Channel) display(v float64) float64 {
	if ch.Kind == Hue {
		return v
	}
	return v * percentRange
}

func (ch *Channel) engine(v float64) float64 {
	if ch.Kind == Hue {
		return v
	}
	return v / percentRange
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func wrap(v, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	v = math.Mod(v, limit)
	if v < 0 {
		v += limit
	}
	return v
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
