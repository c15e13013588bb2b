package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is the structural location of a value inside the document: a sequence
// of string map keys and int array indices from the root down.
type Path []any

// PathString renders a path as a bracketed JSONPath-style expression.
// An empty or nil path is the document root, "$". String segments are
// double-quoted, numeric segments are not: $["items"][0]["name"].
func PathString(path Path) string {
	if len(path) == 0 {
		return "$"
	}
	var b strings.Builder
	b.WriteString("$")
	for _, seg := range path {
		switch s := seg.(type) {
		case int:
			fmt.Fprintf(&b, "[%d]", s)
		case string:
			fmt.Fprintf(&b, "[%q]", s)
		default:
			// Tolerate alternate numeric types from callers.
			fmt.Fprintf(&b, "[%v]", s)
		}
	}
	return b.String()
}

// ParsePath parses a user-facing path expression into a Path.
// Accepted forms mirror dotted navigation with bracket notation:
// "items.0.name", "items[0].name", `tasks["build-windows"]`, "$" or "" for
// the root. Bracket segments holding a number index arrays; quoted bracket
// segments and dotted segments are map keys.
func ParsePath(expr string) (Path, error) {
	trimmed := strings.TrimSpace(expr)
	trimmed = strings.TrimPrefix(trimmed, "$")
	trimmed = strings.TrimPrefix(trimmed, ".")
	if trimmed == "" {
		return nil, nil
	}

	var path Path
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			path = append(path, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(trimmed); i++ {
		ch := trimmed[i]
		switch ch {
		case '.':
			flush()
		case '[':
			flush()
			j := i + 1
			for j < len(trimmed) && trimmed[j] != ']' {
				j++
			}
			if j >= len(trimmed) {
				return nil, fmt.Errorf("unterminated '[' in path %q", expr)
			}
			inside := trimmed[i+1 : j]
			if idx, err := strconv.Atoi(inside); err == nil {
				path = append(path, idx)
			} else if strings.HasPrefix(inside, `"`) && strings.HasSuffix(inside, `"`) && len(inside) >= 2 {
				path = append(path, inside[1:len(inside)-1])
			} else {
				return nil, fmt.Errorf("invalid bracket segment %q in path %q", inside, expr)
			}
			i = j
		default:
			current.WriteByte(ch)
		}
	}
	flush()

	// Dotted numeric segments ("items.0") index arrays.
	for i, seg := range path {
		if s, ok := seg.(string); ok {
			if idx, err := strconv.Atoi(s); err == nil {
				path[i] = idx
			}
		}
	}
	return path, nil
}

// NodeAt walks a parsed document and returns the value at the given path.
func NodeAt(root interface{}, path Path) (interface{}, error) {
	cur := root
	for _, seg := range path {
		switch s := seg.(type) {
		case string:
			m, ok := cur.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: cannot index %T with key %q", ErrPathWalk, cur, s)
			}
			v, ok := m[s]
			if !ok {
				return nil, fmt.Errorf("%w: key %q not found", ErrPathWalk, s)
			}
			cur = v
		case int:
			arr, ok := cur.([]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: cannot index %T with position %d", ErrPathWalk, cur, s)
			}
			if s < 0 || s >= len(arr) {
				return nil, fmt.Errorf("%w: index %d out of range", ErrPathWalk, s)
			}
			cur = arr[s]
		default:
			return nil, fmt.Errorf("%w: unsupported path segment %v (%T)", ErrPathWalk, seg, seg)
		}
	}
	return cur, nil
}
