// Package config loads, writes and formats hclsliders settings files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/tliron/commonlog"

	"github.com/jsvensson/hclsliders/internal/channel"
	"github.com/jsvensson/hclsliders/internal/color"
	"github.com/jsvensson/hclsliders/internal/css"
	"github.com/jsvensson/hclsliders/internal/history"
)

// FileName is the conventional name of a settings file.
const FileName = "hclsliders.hcl"

// DefaultMemory is the number of history colors kept by default.
const DefaultMemory = 30

var log = commonlog.GetLogger("hclsliders.config")

// Settings is the resolved content of a settings file.
type Settings struct {
	Notation  css.Notation
	Displayed []string
	Channels  map[string]*channel.Channel
	History   History
}

// History holds the history block of a settings file. Colors are newest
// first.
type History struct {
	Enabled bool
	Memory  int
	Colors  []color.Color
}

// fileSchema is the gohcl shape of a settings file.
type fileSchema struct {
	Notation  *string         `hcl:"notation,optional"`
	Displayed []string        `hcl:"displayed,optional"`
	Channels  []channelSchema `hcl:"channel,block"`
	History   *historySchema  `hcl:"history,block"`
}

type channelSchema struct {
	Name         string    `hcl:"name,label"`
	Interval     *float64  `hcl:"interval,optional"`
	Displacement *float64  `hcl:"displacement,optional"`
	Scale        *bool     `hcl:"scale,optional"`
	Colorful     *bool     `hcl:"colorful,optional"`
	DefRange     hcl.Range `hcl:",def_range"`
}

type historySchema struct {
	Enabled  *bool     `hcl:"enabled,optional"`
	Memory   *int      `hcl:"memory,optional"`
	Colors   []string  `hcl:"colors,optional"`
	DefRange hcl.Range `hcl:",def_range"`
}

// Default returns the settings used when no file is present.
func Default() *Settings {
	s := &Settings{
		Notation:  css.NotationHex,
		Displayed: channel.Names(),
		Channels:  make(map[string]*channel.Channel),
		History:   History{Enabled: true, Memory: DefaultMemory},
	}
	for _, ch := range channel.All() {
		s.Channels[ch.Name] = ch
	}
	return s
}

// Load reads and resolves the settings file at path. Warnings are logged.
func Load(path string) (*Settings, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	s, diags := Parse(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing settings: %s", diags.Error())
	}
	for _, d := range diags {
		log.Warningf("%s", d.Error())
	}
	log.Debugf("loaded %s: %d channels displayed, %d history colors", path, len(s.Displayed), len(s.History.Colors))
	return s, nil
}

// Parse resolves settings source. Values that fail validation are reported
// as error diagnostics; values that are clamped or ignored as warnings. The
// returned settings are usable whenever diags has no errors.
func Parse(src []byte, filename string) (*Settings, hcl.Diagnostics) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, diags
	}

	var raw fileSchema
	if d := gohcl.DecodeBody(file.Body, EvalContext(), &raw); d.HasErrors() {
		return nil, append(diags, d...)
	}

	body := file.Body.(*hclsyntax.Body)
	s := Default()
	diags = append(diags, s.applyTop(&raw, body)...)
	for i := range raw.Channels {
		diags = append(diags, s.applyChannel(&raw.Channels[i])...)
	}
	if raw.History != nil {
		diags = append(diags, s.applyHistory(raw.History, blockBody(body, "history"))...)
	}
	return s, diags
}

func (s *Settings) applyTop(raw *fileSchema, body *hclsyntax.Body) hcl.Diagnostics {
	var diags hcl.Diagnostics
	if raw.Notation != nil {
		n, err := css.ParseNotation(*raw.Notation)
		if err != nil {
			diags = append(diags, errorDiag("Invalid notation", err.Error(), attrRange(body, "notation")))
		} else {
			s.Notation = n
		}
	}

	if len(raw.Displayed) > 0 {
		s.Displayed = s.Displayed[:0]
		seen := make(map[string]bool)
		for _, name := range raw.Displayed {
			ch, err := channel.Lookup(name)
			if err != nil {
				diags = append(diags, errorDiag("Unknown channel", err.Error(), attrRange(body, "displayed")))
				continue
			}
			if seen[ch.Name] {
				diags = append(diags, warningDiag("Duplicate channel", fmt.Sprintf("channel %q is displayed twice", ch.Name), attrRange(body, "displayed")))
				continue
			}
			seen[ch.Name] = true
			s.Displayed = append(s.Displayed, ch.Name)
		}
		if len(s.Displayed) == 0 {
			s.Displayed = channel.Names()
		}
	}
	return diags
}

func (s *Settings) applyChannel(raw *channelSchema) hcl.Diagnostics {
	var diags hcl.Diagnostics
	subject := raw.DefRange.Ptr()

	ch, err := channel.Lookup(raw.Name)
	if err != nil {
		return hcl.Diagnostics{errorDiag("Unknown channel", err.Error(), subject)}
	}
	ch = s.Channels[ch.Name]

	if raw.Interval != nil {
		ch.SetInterval(*raw.Interval)
		if ch.Interval != *raw.Interval {
			diags = append(diags, warningDiag("Interval out of range",
				fmt.Sprintf("%s interval %g clamped to %g", ch.Name, *raw.Interval, ch.Interval), subject))
		}
	}
	if raw.Displacement != nil {
		ch.SetDisplacement(*raw.Displacement)
		if ch.Displacement != *raw.Displacement {
			diags = append(diags, warningDiag("Displacement out of range",
				fmt.Sprintf("%s displacement %g clamped to %g", ch.Name, *raw.Displacement, ch.Displacement), subject))
		}
	}
	if raw.Scale != nil {
		if !scalable(ch) {
			diags = append(diags, warningDiag("Ignored attribute",
				fmt.Sprintf("scale only applies to hue, luma and lightness channels of hcy and okhcl, not %s", ch.Name), subject))
		}
		ch.Scale = *raw.Scale
	}
	if raw.Colorful != nil {
		if ch.Kind != channel.Hue {
			diags = append(diags, warningDiag("Ignored attribute",
				fmt.Sprintf("colorful only applies to hue channels, not %s", ch.Name), subject))
		}
		ch.Colorful = *raw.Colorful
	}
	return diags
}

func (s *Settings) applyHistory(raw *historySchema, body *hclsyntax.Body) hcl.Diagnostics {
	var diags hcl.Diagnostics
	subject := func(name string) *hcl.Range {
		if r := attrRange(body, name); r != nil {
			return r
		}
		return raw.DefRange.Ptr()
	}
	if raw.Enabled != nil {
		s.History.Enabled = *raw.Enabled
	}
	if raw.Memory != nil {
		if *raw.Memory < 0 || *raw.Memory > history.MaxMemory {
			diags = append(diags, warningDiag("Memory out of range",
				fmt.Sprintf("history memory %d must be between 0 and %d; keeping %d", *raw.Memory, history.MaxMemory, s.History.Memory),
				subject("memory")))
		} else {
			s.History.Memory = *raw.Memory
		}
	}
	for i, text := range raw.Colors {
		c, err := css.Parse(text)
		if err != nil {
			diags = append(diags, errorDiag("Invalid color",
				fmt.Sprintf("history color %d: %s", i, err), subject("colors")))
			continue
		}
		s.History.Colors = append(s.History.Colors, c)
	}
	return diags
}

// Channel returns the configured channel with the given name.
func (s *Settings) Channel(name string) (*channel.Channel, error) {
	ch, err := channel.Lookup(name)
	if err != nil {
		return nil, err
	}
	return s.Channels[ch.Name], nil
}

// DisplayedChannels returns the displayed channels in order.
func (s *Settings) DisplayedChannels() []*channel.Channel {
	chs := make([]*channel.Channel, 0, len(s.Displayed))
	for _, name := range s.Displayed {
		if ch, ok := s.Channels[name]; ok {
			chs = append(chs, ch)
		}
	}
	return chs
}

// NewHistory returns a history holding the configured colors.
func (s *Settings) NewHistory() (*history.History, error) {
	h, err := history.New(s.History.Memory)
	if err != nil {
		return nil, err
	}
	for i := len(s.History.Colors) - 1; i >= 0; i-- {
		h.Add(s.History.Colors[i])
	}
	return h, nil
}

func scalable(ch *channel.Channel) bool {
	return (ch.Model == color.HCY || ch.Model == color.OKHCL) && ch.Kind != channel.Chroma
}

func blockBody(body *hclsyntax.Body, typ string) *hclsyntax.Body {
	for _, b := range body.Blocks {
		if b.Type == typ {
			return b.Body
		}
	}
	return nil
}

func attrRange(body *hclsyntax.Body, name string) *hcl.Range {
	if body == nil {
		return nil
	}
	if attr, ok := body.Attributes[name]; ok {
		return attr.SrcRange.Ptr()
	}
	return nil
}

func errorDiag(summary, detail string, subject *hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{Severity: hcl.DiagError, Summary: summary, Detail: detail, Subject: subject}
}

func warningDiag(summary, detail string, subject *hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{Severity: hcl.DiagWarning, Summary: summary, Detail: detail, Subject: subject}
}

// IsSettingsFile reports whether path names an HCL settings file.
func IsSettingsFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".hcl")
}
