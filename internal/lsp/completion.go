package lsp

import (
	"fmt"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/hclsliders/internal/channel"
	"github.com/jsvensson/hclsliders/internal/color"
	"github.com/jsvensson/hclsliders/internal/config"
	"github.com/jsvensson/hclsliders/internal/css"
)

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot    blockContext = iota
	contextChannel              // inside channel "name" {}
	contextHistory              // inside history {}
	contextUnknown
)

var (
	rootAttributes    = []string{"notation", "displayed"}
	channelAttributes = []string{"interval", "displacement", "scale", "colorful"}
	historyAttributes = []string{"enabled", "memory", "colors"}
	boolAttributes    = map[string]bool{"enabled": true, "scale": true, "colorful": true}
)

// complete produces completion items for a settings file given the document
// content and cursor position.
func complete(content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	if inOpenString(textBeforeCursor) {
		return stringCompletions(lines, int(pos.Line), textBeforeCursor)
	}

	if isValuePosition(textBeforeCursor) {
		return valueCompletions(currentAttribute(lines, int(pos.Line)))
	}

	switch determineBlockContext(lines, int(pos.Line)) {
	case contextRoot:
		return topLevelCompletions(findDefinedAttributes(lines, int(pos.Line)))
	case contextChannel:
		return keywordCompletions(channelAttributes, findDefinedAttributes(lines, int(pos.Line)))
	case contextHistory:
		return keywordCompletions(historyAttributes, findDefinedAttributes(lines, int(pos.Line)))
	}

	return nil
}

// inOpenString reports whether the cursor sits inside a string literal.
func inOpenString(textBeforeCursor string) bool {
	return strings.Count(textBeforeCursor, `"`)%2 == 1
}

// stringCompletions completes channel names in a channel block label or the
// displayed list, and notation names for the notation attribute.
func stringCompletions(lines []string, cursorLine int, textBeforeCursor string) []protocol.CompletionItem {
	if strings.HasPrefix(strings.TrimSpace(textBeforeCursor), "channel") {
		return channelCompletions()
	}
	switch currentAttribute(lines, cursorLine) {
	case "displayed":
		return channelCompletions()
	case "notation":
		kind := protocol.CompletionItemKindEnumMember
		items := make([]protocol.CompletionItem, 0, len(css.Notations))
		for _, n := range css.Notations {
			items = append(items, protocol.CompletionItem{Label: n.String(), Kind: &kind})
		}
		return items
	}
	return nil
}

func channelCompletions() []protocol.CompletionItem {
	kind := protocol.CompletionItemKindEnumMember
	var items []protocol.CompletionItem
	for _, ch := range channel.All() {
		detail := fmt.Sprintf("%s %s", ch.Model, ch.Model.Channels()[ch.Index])
		items = append(items, protocol.CompletionItem{
			Label:  ch.Name,
			Kind:   &kind,
			Detail: &detail,
		})
	}
	return items
}

// currentAttribute returns the name of the nearest attribute assignment at or
// above cursorLine, so a value spanning lines still knows its attribute.
func currentAttribute(lines []string, cursorLine int) string {
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasSuffix(line, "{") || strings.HasSuffix(line, "}") {
			return ""
		}
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			return strings.TrimSpace(line[:eqIdx])
		}
	}
	return ""
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position: right after "=", an opening bracket or a comma.
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	if strings.HasSuffix(trimmed, "[") || strings.HasSuffix(trimmed, ",") {
		return true
	}
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	afterEq := strings.TrimSpace(trimmed[eqIdx+1:])
	return afterEq == ""
}

// valueCompletions returns completion items for the value of attr.
func valueCompletions(attr string) []protocol.CompletionItem {
	if boolAttributes[attr] {
		kind := protocol.CompletionItemKindValue
		return []protocol.CompletionItem{
			{Label: "true", Kind: &kind},
			{Label: "false", Kind: &kind},
		}
	}
	if attr == "notation" {
		kind := protocol.CompletionItemKindEnumMember
		var items []protocol.CompletionItem
		for _, n := range css.Notations {
			text := `"` + n.String() + `"`
			items = append(items, protocol.CompletionItem{Label: n.String(), Kind: &kind, InsertText: &text})
		}
		return items
	}
	return functionCompletions()
}

// functionCompletions returns snippets for the color functions.
func functionCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	var items []protocol.CompletionItem
	for _, m := range color.Models {
		name := config.FuncName(m)
		ch := m.Channels()
		snippet := fmt.Sprintf("%s(${1:%s}, ${2:%s}, ${3:%s})", name, ch[0], ch[1], ch[2])
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(fmt.Sprintf("%s(%s, %s, %s[, alpha])", name, ch[0], ch[1], ch[2])),
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	cssSnippet := `css(${1:color}, "${2:oklch}")`
	convertSnippet := `convert(${1:color}, "${2:okhsl}")`
	items = append(items,
		protocol.CompletionItem{
			Label:            "css",
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr("css(color, notation)"),
			InsertText:       &cssSnippet,
			InsertTextFormat: &snippetFormat,
		},
		protocol.CompletionItem{
			Label:            "convert",
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr("convert(color, model)"),
			InsertText:       &convertSnippet,
			InsertTextFormat: &snippetFormat,
		},
	)
	return items
}

// determineBlockContext scans from the top of the file down to the cursor line
// to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		// Process opening braces: extract the block name (first word on the line)
		if opens > 0 {
			parts := strings.Fields(line)
			if len(parts) >= 1 {
				for range opens {
					stack = append(stack, parts[0])
				}
			}
		}

		for range closes {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	switch {
	case len(stack) == 0:
		return contextRoot
	case len(stack) > 1:
		return contextUnknown
	case stack[0] == "channel":
		return contextChannel
	case stack[0] == "history":
		return contextHistory
	}
	return contextUnknown
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute and block names
// already defined.
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	// Scan backwards to find the opening brace of the current block
	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		depth += strings.Count(line, "}") - strings.Count(line, "{")
		if depth < 0 {
			startLine = i + 1
			break
		}
	}

	depth = 0
	for i := startLine; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if depth == 0 {
			if eqIdx := strings.Index(line, "="); eqIdx > 0 {
				name := strings.TrimSpace(line[:eqIdx])
				if !strings.Contains(name, " ") && !strings.Contains(name, "{") {
					defined[name] = true
				}
			} else if strings.HasPrefix(line, "history") {
				defined["history"] = true
			}
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			break
		}
	}

	return defined
}

// topLevelCompletions returns completion items for top-level attributes and
// blocks. channel blocks may repeat; the others appear once.
func topLevelCompletions(defined map[string]bool) []protocol.CompletionItem {
	items := keywordCompletions(rootAttributes, defined)

	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet

	blocks := []struct{ label, snippet string }{
		{"channel", "channel \"$1\" {\n  $0\n}"},
		{"history", "history {\n  $0\n}"},
	}
	for _, b := range blocks {
		if defined[b.label] {
			continue
		}
		snippet := b.snippet
		items = append(items, protocol.CompletionItem{
			Label:            b.label,
			Kind:             &kind,
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// keywordCompletions returns the attribute names not yet defined.
func keywordCompletions(names []string, defined map[string]bool) []protocol.CompletionItem {
	kind := protocol.CompletionItemKindProperty

	var items []protocol.CompletionItem
	for _, name := range names {
		if !defined[name] {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  &kind,
			})
		}
	}

	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	if !config.IsSettingsFile(uri) {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return complete(content, params.Position), nil
}
