package lsp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/hclsliders/internal/color"
	"github.com/jsvensson/hclsliders/internal/css"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// extractText extracts the source text at a given LSP range from document content.
func extractText(content string, r protocol.Range) string {
	lines := splitLines(content)

	startLine := int(r.Start.Line)
	endLine := int(r.End.Line)

	if startLine >= len(lines) || endLine < startLine {
		return ""
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	clip := func(line string, ch uint32) int {
		return min(int(ch), len(line))
	}

	if startLine == endLine {
		line := lines[startLine]
		start := clip(line, r.Start.Character)
		return line[start:max(start, clip(line, r.End.Character))]
	}

	parts := []string{lines[startLine][clip(lines[startLine], r.Start.Character):]}
	parts = append(parts, lines[startLine+1:endLine]...)
	parts = append(parts, lines[endLine][:clip(lines[endLine], r.End.Character)])
	return strings.Join(parts, "\n")
}

// hoverMarkdown renders a color as its CSS forms followed by a table of its
// channels in every model.
func hoverMarkdown(c color.Color) string {
	var b strings.Builder
	fmt.Fprintf(&b, "`%s` · `%s` · `%s`\n\n",
		css.Format(c, css.NotationHex),
		css.Format(c, css.NotationOklab),
		css.Format(c, css.NotationOklch))

	b.WriteString("| model | channels |\n|---|---|\n")
	for _, m := range color.Models {
		fmt.Fprintf(&b, "| %s | %s |\n", m, channelText(color.Convert(c, m)))
	}
	if c.Alpha < 1 {
		fmt.Fprintf(&b, "\nalpha %s\n", hoverNumber(c.Alpha))
	}
	return b.String()
}

// channelText renders the channels of c as "name value" pairs.
func channelText(c color.Color) string {
	names := c.Model.Channels()
	parts := make([]string, 3)
	for i, v := range c.V {
		parts[i] = names[i] + " " + hoverNumber(v)
	}
	return strings.Join(parts, " · ")
}

func hoverNumber(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// hover produces a Hover response for the given cursor position.
// Returns nil if no color is found at the position.
func hover(result *AnalysisResult, content string, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	for _, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}

		md := hoverMarkdown(cl.Color)
		if cl.Call != "" {
			md = fmt.Sprintf("**%s**\n\n%s", extractText(content, cl.Range), md)
		}

		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: md,
			},
			Range: &cl.Range,
		}
	}

	return nil
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return hover(result, content, params.Position), nil
}
