package lsp

import (
	"testing"
)

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()

	store.Open(settingsURI, `notation = "hex"`, 1)

	content, ok := store.Get(settingsURI)
	if !ok {
		t.Fatal("Document not found after opening")
	}
	if content != `notation = "hex"` {
		t.Errorf("Expected opened content, got '%s'", content)
	}

	result := store.Update(settingsURI, `notation = "rgb"`, 2)
	if result == nil || len(result.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic after update, got %+v", result)
	}

	content, _ = store.Get(settingsURI)
	if content != `notation = "rgb"` {
		t.Errorf("Expected updated content, got '%s'", content)
	}
	if store.Result(settingsURI) != result {
		t.Error("Result() does not return the latest analysis")
	}
}

func TestDocumentStore_StaleUpdate(t *testing.T) {
	store := NewDocumentStore()
	store.Open(settingsURI, "version 3", 3)

	if result := store.Update(settingsURI, "version 2", 2); result != nil {
		t.Error("stale update returned an analysis")
	}
	content, _ := store.Get(settingsURI)
	if content != "version 3" {
		t.Errorf("Expected 'version 3', got '%s'", content)
	}
}

func TestDocumentStore_Close(t *testing.T) {
	store := NewDocumentStore()
	store.Open("file:///style.css", "a { color: #fff; }", 1)
	if r := store.Result("file:///style.css"); r == nil || len(r.Colors) != 1 {
		t.Fatalf("expected one color in opened stylesheet, got %+v", r)
	}

	store.Close("file:///style.css")

	if _, ok := store.Get("file:///style.css"); ok {
		t.Error("Document still present after close")
	}
	if store.Result("file:///style.css") != nil {
		t.Error("Result still present after close")
	}
}
