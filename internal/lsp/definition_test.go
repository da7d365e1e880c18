package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestWordAtCursor(t *testing.T) {
	line := `displayed = ["okhslHue", "hsvValue"]`
	tests := []struct {
		char uint32
		want string
	}{
		{14, "okhslHue"},
		{20, "okhslHue"},
		{13, ""},
		{0, "displayed"},
		{99, ""},
	}
	for _, tt := range tests {
		if got := wordAtCursor(line, tt.char); got != tt.want {
			t.Errorf("wordAtCursor(%d) = %q, want %q", tt.char, got, tt.want)
		}
	}
}

func TestDefinition(t *testing.T) {
	result := Analyze(settingsURI, validSettings)

	t.Run("displayed channel with a block", func(t *testing.T) {
		loc := definition(result, validSettings, settingsURI, protocol.Position{Line: 1, Character: 16})
		if loc == nil {
			t.Fatal("expected a location")
		}
		if string(loc.URI) != settingsURI {
			t.Errorf("URI = %q, want %q", loc.URI, settingsURI)
		}
		if loc.Range != result.Channels["okhslHue"] {
			t.Errorf("range = %v, want %v", loc.Range, result.Channels["okhslHue"])
		}
	})

	t.Run("displayed channel without a block", func(t *testing.T) {
		if loc := definition(result, validSettings, settingsURI, protocol.Position{Line: 1, Character: 28}); loc != nil {
			t.Errorf("expected nil, got %+v", loc)
		}
	})

	t.Run("not a channel", func(t *testing.T) {
		if loc := definition(result, validSettings, settingsURI, protocol.Position{Line: 0, Character: 2}); loc != nil {
			t.Errorf("expected nil, got %+v", loc)
		}
	})

	t.Run("nil result", func(t *testing.T) {
		if loc := definition(nil, validSettings, settingsURI, protocol.Position{}); loc != nil {
			t.Errorf("expected nil, got %+v", loc)
		}
	})
}
