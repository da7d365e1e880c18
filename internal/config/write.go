package config

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/jsvensson/hclsliders/internal/channel"
	"github.com/jsvensson/hclsliders/internal/css"
)

// Marshal renders s as a formatted settings file. Channel blocks are
// written for every channel, in default order; history colors are written
// in the settings notation.
func Marshal(s *Settings) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("notation", cty.StringVal(s.Notation.String()))
	body.SetAttributeValue("displayed", stringList(s.Displayed))

	for _, name := range channel.Names() {
		ch, ok := s.Channels[name]
		if !ok {
			continue
		}
		body.AppendNewline()
		cb := body.AppendNewBlock("channel", []string{name}).Body()
		cb.SetAttributeValue("interval", cty.NumberFloatVal(ch.Interval))
		cb.SetAttributeValue("displacement", cty.NumberFloatVal(ch.Displacement))
		if scalable(ch) {
			cb.SetAttributeValue("scale", cty.BoolVal(ch.Scale))
		}
		if ch.Kind == channel.Hue {
			cb.SetAttributeValue("colorful", cty.BoolVal(ch.Colorful))
		}
	}

	body.AppendNewline()
	hb := body.AppendNewBlock("history", nil).Body()
	hb.SetAttributeValue("enabled", cty.BoolVal(s.History.Enabled))
	hb.SetAttributeValue("memory", cty.NumberIntVal(int64(s.History.Memory)))
	colors := make([]string, len(s.History.Colors))
	for i, c := range s.History.Colors {
		colors[i] = css.Format(c, s.Notation)
	}
	hb.SetAttributeValue("colors", stringList(colors))

	out, _ := Format(string(f.Bytes()))
	return []byte(out)
}

// Write writes s as a settings file to w.
func Write(w io.Writer, s *Settings) error {
	if _, err := w.Write(Marshal(s)); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}
