// Package document owns the serialized JSON document the editor operates on:
// the full text, its parsed root, and path-based mutation with write-back.
// Updates always replace the whole serialization; there is no partial or
// streaming update path.
package document

import (
	"fmt"

	"github.com/go-logr/logr"
)

// Store holds the current document text and its parsed form. It is
// single-writer: all mutation happens on the UI event loop, so no locking is
// done here.
type Store struct {
	text string
	root interface{}
	log  *logr.Logger
}

// NewStore parses text and returns a store for it.
func NewStore(text string, log *logr.Logger) (*Store, error) {
	root, err := parseDocument(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}
	if log == nil {
		discard := logr.Discard()
		log = &discard
	}
	return &Store{text: text, root: root, log: log}, nil
}

// Text returns the full serialized document.
func (s *Store) Text() string {
	return s.text
}

// Root returns the parsed document tree. Callers must treat it as read-only;
// mutation goes through SetText or Update.
func (s *Store) Root() interface{} {
	return s.root
}

// SetText replaces the document with new text. The text must parse; the
// previous document is kept on failure.
func (s *Store) SetText(text string) error {
	root, err := parseDocument(text)
	if err != nil {
		s.log.V(1).Info("rejected document write", "reason", err.Error())
		return fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}
	s.text = text
	s.root = root
	return nil
}

// Update applies a path-based value replacement to the current document and
// commits the result. The returned text is the new serialization. On error
// the store is unchanged and the error distinguishes parse failures from
// path-walk failures.
func (s *Store) Update(path Path, rawValue string) (string, error) {
	updated, err := UpdateAtPath(s.text, path, rawValue)
	if err != nil {
		s.log.V(1).Info("document update failed",
			"path", PathString(path), "reason", err.Error())
		return s.text, err
	}
	if err := s.SetText(updated); err != nil {
		// UpdateAtPath output always re-marshals from a parsed tree, so this
		// indicates a serialization bug rather than bad user input.
		return s.text, err
	}
	return updated, nil
}
