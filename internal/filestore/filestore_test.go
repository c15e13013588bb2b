package filestore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreDirtyLifecycle(t *testing.T) {
	t.Parallel()

	s := NewStore("config.json", `{"a": 1}`, nil)
	if s.Dirty() {
		t.Fatal("new store must start clean")
	}

	s.MarkUnsaved(`{"a": 2}`)
	if !s.Dirty() {
		t.Fatal("MarkUnsaved must flag the store dirty")
	}
	if s.Contents() != `{"a": 2}` {
		t.Fatalf("contents = %q", s.Contents())
	}
}

func TestStoreSaveWritesFileAndClearsDirty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.json")
	s := NewStore(path, `{"a": 1}`, nil)
	s.MarkUnsaved(`{"a": 2}`)

	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.Dirty() {
		t.Fatal("Save must clear the dirty flag")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "{\"a\": 2}\n" {
		t.Fatalf("file contents = %q, want trailing newline", string(data))
	}
}

func TestStoreSaveWithoutBackingFile(t *testing.T) {
	t.Parallel()

	s := NewStore("", `{"a": 1}`, nil)
	s.MarkUnsaved(`{"a": 2}`)

	if err := s.Save(); err == nil {
		t.Fatal("Save with empty path must fail")
	}
	if !s.Dirty() {
		t.Fatal("failed Save must keep the store dirty")
	}
}
