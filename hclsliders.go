// Package hclsliders converts colors between sRGB, HSV, HSL, HCY, OkLab,
// OkLCH, OkHSV, OkHSL and OkHCL, and reads and writes CSS color text.
package hclsliders

import (
	"fmt"

	"github.com/jsvensson/hclsliders/internal/color"
	"github.com/jsvensson/hclsliders/internal/config"
	"github.com/jsvensson/hclsliders/internal/css"
	"github.com/jsvensson/hclsliders/internal/export"
)

type (
	// Color is a color in one model, with straight alpha.
	Color = color.Color
	// Model identifies a color model.
	Model = color.Model
	// Settings is the resolved settings file.
	Settings = config.Settings
	// ParseError reports malformed color text.
	ParseError = css.ParseError
	// Exporter renders templates against the color history.
	Exporter = export.Engine
)

const (
	SRGB       = color.SRGB
	LinearSRGB = color.LinearSRGB
	HSV        = color.HSV
	HSL        = color.HSL
	HCY        = color.HCY
	Oklab      = color.Oklab
	Oklch      = color.Oklch
	OKHSV      = color.OKHSV
	OKHSL      = color.OKHSL
	OKHCL      = color.OKHCL
)

// Convert converts c to the target model.
func Convert(c Color, target Model) Color {
	return color.Convert(c, target)
}

// ConvertHue converts c to the target model, using hue when the result is
// achromatic.
func ConvertHue(c Color, target Model, hue float64) Color {
	return color.ConvertHue(c, target, hue)
}

// ToGamut maps c into the sRGB gamut, keeping its OkLCH lightness and hue.
func ToGamut(c Color) Color {
	return color.ToGamut(c)
}

// ParseCSS parses hex, oklab() or oklch() color text.
func ParseCSS(text string) (Color, error) {
	return css.Parse(text)
}

// ParseAsOklab parses text, reading bare components as oklab().
func ParseAsOklab(text string) (Color, error) {
	return css.ParseAsOklab(text)
}

// ParseAsOklch parses text, reading bare components as oklch().
func ParseAsOklch(text string) (Color, error) {
	return css.ParseAsOklch(text)
}

// SerializeCSS renders c as CSS text for model m.
func SerializeCSS(c Color, m Model) string {
	return css.Serialize(c, m)
}

// Load parses a settings file.
func Load(path string) (*Settings, error) {
	s, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return s, nil
}
