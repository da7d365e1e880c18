package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/hclsliders/internal/channel"
)

// wordAtCursor returns the identifier under the cursor, or "" when the
// cursor is not on one.
func wordAtCursor(line string, character uint32) string {
	col := int(character)
	if col >= len(line) || !isIdentChar(line[col]) {
		return ""
	}

	end := col
	for end < len(line) && isIdentChar(line[end]) {
		end++
	}
	start := col
	for start > 0 && isIdentChar(line[start-1]) {
		start--
	}
	return line[start:end]
}

// isIdentChar returns true if the byte is a valid identifier character.
func isIdentChar(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}

// definition returns the channel block for a channel name under the cursor,
// typically one listed in displayed. Returns nil if the word is not a channel
// or the document has no block for it.
func definition(result *AnalysisResult, content string, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	word := wordAtCursor(lines[pos.Line], pos.Character)
	if word == "" {
		return nil
	}
	ch, err := channel.Lookup(word)
	if err != nil {
		return nil
	}

	rng, ok := result.Channels[ch.Name]
	if !ok {
		return nil
	}

	return &protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: rng,
	}
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return definition(result, content, uri, params.Position), nil
}
