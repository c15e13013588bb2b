package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the two ways a path update can fail. Callers surface
// different messages for each: a document that no longer parses is a
// different user problem than a path that indexes into a scalar.
var (
	// ErrDocumentParse means the document text itself is not valid JSON.
	ErrDocumentParse = errors.New("document is not valid JSON")

	// ErrPathWalk means a path segment could not be traversed, e.g. a key
	// lookup into an array or an index into a number.
	ErrPathWalk = errors.New("path cannot be resolved")
)

// UpdateAtPath replaces the value at path inside documentText with rawValue
// and returns the re-serialized document (2-space indentation).
//
// rawValue is parsed as JSON when possible; otherwise it is taken as a plain
// string. Missing intermediate containers along the path are created: an
// empty array when the next segment is a numeric index, an empty object
// otherwise. An empty path replaces the whole document.
//
// On failure the returned text is the original documentText and the error
// identifies the failure mode (ErrDocumentParse or ErrPathWalk).
func UpdateAtPath(documentText string, path Path, rawValue string) (string, error) {
	root, err := parseDocument(documentText)
	if err != nil {
		return documentText, fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}

	if len(path) == 0 {
		// Whole-document replacement: rawValue that doesn't parse as JSON
		// becomes a JSON string literal.
		out, err := marshalDocument(parseRawValue(rawValue))
		if err != nil {
			return documentText, err
		}
		return out, nil
	}

	newRoot, err := setAtPath(root, path, parseRawValue(rawValue))
	if err != nil {
		return documentText, err
	}

	out, err := marshalDocument(newRoot)
	if err != nil {
		return documentText, err
	}
	return out, nil
}

// Validate reports whether text is parseable JSON.
func Validate(text string) error {
	if !json.Valid([]byte(text)) {
		return ErrDocumentParse
	}
	return nil
}

// Pretty re-serializes JSON text with 2-space indentation, preserving number
// literals.
func Pretty(text string) (string, error) {
	root, err := parseDocument(text)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}
	return marshalDocument(root)
}

// parseDocument decodes JSON text preserving number literals via json.Number
// so re-serialization does not mangle large integers or float formatting.
func parseDocument(text string) (interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var root interface{}
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	// Trailing non-whitespace content makes the document invalid as a whole.
	if dec.More() {
		return nil, fmt.Errorf("trailing content after JSON document")
	}
	return root, nil
}

// parseRawValue interprets the user's edit buffer: JSON when it parses,
// otherwise the raw text as a string value.
func parseRawValue(raw string) interface{} {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil || dec.More() {
		return raw
	}
	return v
}

// marshalDocument renders a document tree with 2-space indentation and no
// HTML escaping.
func marshalDocument(root interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return "", fmt.Errorf("cannot serialize document: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// setAtPath returns cur with val assigned at path, creating missing
// intermediate containers. cur == nil stands for a missing node whose type is
// chosen from the first path segment.
func setAtPath(cur interface{}, path Path, val interface{}) (interface{}, error) {
	if len(path) == 0 {
		return val, nil
	}

	switch seg := path[0].(type) {
	case string:
		var m map[string]interface{}
		switch t := cur.(type) {
		case nil:
			m = map[string]interface{}{}
		case map[string]interface{}:
			m = t
		default:
			return nil, fmt.Errorf("%w: cannot set key %q on %T", ErrPathWalk, seg, cur)
		}
		child, err := setAtPath(m[seg], path[1:], val)
		if err != nil {
			return nil, err
		}
		m[seg] = child
		return m, nil

	case int:
		if seg < 0 {
			return nil, fmt.Errorf("%w: negative index %d", ErrPathWalk, seg)
		}
		var arr []interface{}
		switch t := cur.(type) {
		case nil:
			arr = []interface{}{}
		case []interface{}:
			arr = t
		default:
			return nil, fmt.Errorf("%w: cannot set position %d on %T", ErrPathWalk, seg, cur)
		}
		for len(arr) <= seg {
			arr = append(arr, nil)
		}
		child, err := setAtPath(arr[seg], path[1:], val)
		if err != nil {
			return nil, err
		}
		arr[seg] = child
		return arr, nil

	default:
		return nil, fmt.Errorf("%w: unsupported path segment %v (%T)", ErrPathWalk, path[0], path[0])
	}
}
