// Package export renders Go templates against the color history and channel
// settings, one output file per template.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/jsvensson/hclsliders/internal/channel"
	"github.com/jsvensson/hclsliders/internal/color"
	"github.com/jsvensson/hclsliders/internal/config"
	"github.com/jsvensson/hclsliders/internal/css"
)

// Engine loads and executes Go templates against resolved settings.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Apps         []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the given settings, and writes output files.
func (e *Engine) Run(s *config.Settings) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(s)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	// If no apps are specified, render all.
	if len(e.Apps) == 0 {
		return true
	}

	return slices.Contains(e.Apps, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return nil
}

// templateData is the data passed to templates.
type templateData struct {
	Notation string
	History  []color.Color // newest first
	Channels []*channel.Channel
	FuncMap  template.FuncMap
}

// resolveColor turns a template argument into a color. Strings are either a
// history reference such as "history.0" or color text.
func resolveColor(v any, data *templateData) (color.Color, error) {
	switch v := v.(type) {
	case color.Color:
		return v, nil
	case string:
		if rest, ok := strings.CutPrefix(v, "history."); ok {
			i, err := strconv.Atoi(rest)
			if err != nil {
				return color.Color{}, fmt.Errorf("invalid history path %q: index must be a number", v)
			}
			if i < 0 || i >= len(data.History) {
				return color.Color{}, fmt.Errorf("history path %q out of range: %d colors", v, len(data.History))
			}
			return data.History[i], nil
		}
		return css.Parse(v)
	}
	return color.Color{}, fmt.Errorf("cannot use %T as a color", v)
}

func buildTemplateData(s *config.Settings) templateData {
	data := templateData{
		Notation: s.Notation.String(),
		History:  s.History.Colors,
		Channels: s.DisplayedChannels(),
	}

	notation := func(n css.Notation) func(any) (string, error) {
		return func(v any) (string, error) {
			c, err := resolveColor(v, &data)
			if err != nil {
				return "", err
			}
			return css.Format(c, n), nil
		}
	}

	data.FuncMap = template.FuncMap{
		"hex":   notation(css.NotationHex),
		"oklab": notation(css.NotationOklab),
		"oklch": notation(css.NotationOklch),
		"css":   notation(s.Notation),
		"hexBare": func(v any) (string, error) {
			c, err := resolveColor(v, &data)
			if err != nil {
				return "", err
			}
			return strings.TrimPrefix(css.Format(c, css.NotationHex), "#"), nil
		},
		"rgb": func(v any) (string, error) {
			c, err := resolveColor(v, &data)
			if err != nil {
				return "", err
			}
			r, g, b := c.Bytes()
			return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b), nil
		},
		"color": func(v any) (color.Color, error) {
			return resolveColor(v, &data)
		},
		"convert": func(model string, v any) (string, error) {
			m, err := color.ParseModel(model)
			if err != nil {
				return "", err
			}
			c, err := resolveColor(v, &data)
			if err != nil {
				return "", err
			}
			return config.CallText(c, m), nil
		},
		"channel": func(name string, v any) (float64, error) {
			ch, err := s.Channel(name)
			if err != nil {
				return 0, err
			}
			c, err := resolveColor(v, &data)
			if err != nil {
				return 0, err
			}
			return ch.Read(c), nil
		},
		"gradient": func(name string, v any, points int) ([]color.Color, error) {
			ch, err := s.Channel(name)
			if err != nil {
				return nil, err
			}
			c, err := resolveColor(v, &data)
			if err != nil {
				return nil, err
			}
			return ch.Gradient(c, points), nil
		},
	}
	return data
}
