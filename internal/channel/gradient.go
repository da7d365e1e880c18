package channel

import (
	"github.com/jsvensson/hclsliders/internal/color"
)

// DefaultPoints returns the number of gradient stops drawn for the channel:
// every 30° for hues, every 15° for Ok hues and every 10% otherwise.
func (ch *Channel) DefaultPoints() int {
	switch {
	case ch.Kind == Hue && ch.Model.IsOk():
		return 25
	case ch.Kind == Hue:
		return 13
	}
	return 11
}

// Gradient returns evenly spaced sRGB stops across the channel's range with
// the other two channels of c held constant. Chroma gradients span the
// current chroma limit. A colorful hue gradient ignores c and runs at full
// saturation and value. A points value below 2 selects DefaultPoints.
func (ch *Channel) Gradient(c color.Color, points int) []color.Color {
	if points < 2 {
		points = ch.DefaultPoints()
	}
	limit := ch.Limit(c)
	base := color.Convert(c, ch.Model)
	if ch.Kind == Hue && ch.Colorful {
		base = color.New(color.HSV, 0, 1, 1)
		if ch.Model.IsOk() {
			base = color.New(color.OKHSV, 0, 1, 1)
		}
	}
	step := limit / float64(points-1)

	stops := make([]color.Color, points)
	for i := range stops {
		v := float64(i) * step
		var s color.Color
		if base.Model == ch.Model {
			s = ch.set(base, v)
		} else {
			s = base
			s.V[0] = v
		}
		stops[i] = color.Convert(s, color.SRGB)
	}
	return stops
}

// set writes v without the chroma rescaling Apply performs.
func (ch *Channel) set(c color.Color, v float64) color.Color {
	c.V[ch.Index] = ch.engine(v)
	return c.Clamped()
}
