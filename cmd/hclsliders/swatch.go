package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/jsvensson/hclsliders/internal/color"
	"github.com/jsvensson/hclsliders/internal/css"
)

// printer writes colors with a swatch in front when the output supports
// color.
type printer struct {
	out *termenv.Output
}

func newPrinter(w io.Writer) *printer {
	return &printer{out: termenv.NewOutput(w)}
}

func (p *printer) swatch(c color.Color) string {
	if p.out.Profile == termenv.Ascii {
		return ""
	}
	bg := p.out.Color(css.Format(c, css.NotationHex))
	return p.out.String("    ").Background(bg).String() + " "
}

// line prints a swatch of c followed by text.
func (p *printer) line(c color.Color, format string, args ...any) {
	fmt.Fprintf(p.out, "%s%s\n", p.swatch(c), fmt.Sprintf(format, args...))
}
