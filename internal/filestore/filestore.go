// Package filestore tracks the contents of the backing file and whether they
// have diverged from what is on disk.
package filestore

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
)

// Store holds the file path, the contents to be persisted, and the
// unsaved-changes flag.
type Store struct {
	path     string
	contents string
	dirty    bool
	log      *logr.Logger
}

// NewStore returns a store for the given backing file. path may be empty for
// stdin input, in which case Save reports an error.
func NewStore(path, contents string, log *logr.Logger) *Store {
	if log == nil {
		discard := logr.Discard()
		log = &discard
	}
	return &Store{path: path, contents: contents, log: log}
}

// Path returns the backing file path, or "" when input came from stdin.
func (s *Store) Path() string {
	return s.path
}

// Contents returns the pending file contents.
func (s *Store) Contents() string {
	return s.contents
}

// Dirty reports whether the contents have changed since the last save.
func (s *Store) Dirty() bool {
	return s.dirty
}

// MarkUnsaved records new contents and flags them as not yet persisted.
func (s *Store) MarkUnsaved(contents string) {
	s.contents = contents
	s.dirty = true
}

// Save writes the pending contents to the backing file and clears the
// unsaved flag. A trailing newline is ensured so the file stays
// newline-terminated.
func (s *Store) Save() error {
	if s.path == "" {
		return fmt.Errorf("no backing file to save to (input came from stdin)")
	}
	data := s.contents
	if data == "" || data[len(data)-1] != '\n' {
		data += "\n"
	}
	if err := os.WriteFile(s.path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("cannot save %s: %w", s.path, err)
	}
	s.dirty = false
	s.log.V(1).Info("saved document", "path", s.path, "bytes", len(data))
	return nil
}
