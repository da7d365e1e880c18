package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestFormatEdits(t *testing.T) {
	content := "notation=\"hex\"\nhistory {\nmemory = 5\n}"
	edits, err := formatEdits(content)
	if err != nil {
		t.Fatalf("formatEdits() error = %v", err)
	}
	if len(edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(edits))
	}

	want := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 3, Character: 1},
	}
	if edits[0].Range != want {
		t.Errorf("edit range = %v, want %v", edits[0].Range, want)
	}
	if edits[0].NewText != "notation = \"hex\"\n\nhistory {\n  memory = 5\n}" {
		t.Errorf("NewText = %q", edits[0].NewText)
	}
}

func TestFormatEdits_AlreadyFormatted(t *testing.T) {
	edits, err := formatEdits("notation = \"hex\"\n")
	if err != nil {
		t.Fatalf("formatEdits() error = %v", err)
	}
	if len(edits) != 0 {
		t.Errorf("expected no edits, got %v", edits)
	}
}
