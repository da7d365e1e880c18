package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/hclsliders/internal/color"
	"github.com/jsvensson/hclsliders/internal/config"
	"github.com/jsvensson/hclsliders/internal/css"
)

// colorToLSP converts a color to a protocol.Color with sRGB channels in 0.0-1.0.
func colorToLSP(c color.Color) protocol.Color {
	s := color.Convert(c, color.SRGB).Clamped()
	return protocol.Color{
		Red:   float32(s.V[0]),
		Green: float32(s.V[1]),
		Blue:  float32(s.V[2]),
		Alpha: float32(s.Alpha),
	}
}

// lspToColor converts a protocol.Color picked in the editor to an sRGB color.
func lspToColor(pc protocol.Color) color.Color {
	return color.RGB(float64(pc.Red), float64(pc.Green), float64(pc.Blue)).
		WithAlpha(float64(pc.Alpha)).
		Clamped()
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// colorPresentation offers the picked color in every notation. In settings
// files the replacement is always a quoted string, and a color built with a
// model function is first offered as a call to the same function.
func colorPresentation(uri, content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	c := lspToColor(params.Color)
	text := extractText(content, params.Range)
	hcl := config.IsSettingsFile(uri)

	var out []protocol.ColorPresentation
	add := func(label, newText string) {
		out = append(out, protocol.ColorPresentation{
			Label: label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: newText,
			},
		})
	}

	if hcl {
		if m, ok := config.ModelOf(callName(text)); ok {
			call := config.CallText(c, m)
			add(call, call)
		}
	}

	for _, n := range css.Notations {
		label := css.Format(c, n)
		if hcl || strings.HasPrefix(text, "\"") {
			add(label, `"`+label+`"`)
		} else {
			add(label, label)
		}
	}
	return out
}

// callName returns the identifier before the opening parenthesis of text.
func callName(text string) string {
	name, _, ok := strings.Cut(text, "(")
	if !ok {
		return ""
	}
	return strings.TrimSpace(name)
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	return documentColors(result), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(uri, content, params), nil
}
