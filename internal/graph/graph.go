// Package graph projects a parsed JSON document into the node graph shown by
// the editor: every composite value becomes a node whose rows list its direct
// entries, with composite entries deferred to child nodes.
package graph

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/oakwood-commons/jgx/internal/document"
)

// Row kinds. Scalar rows carry the concrete scalar kind; composite rows are
// tagged so display flattening can exclude them.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeNull    = "null"
)

// Row is one entry of a node: an optional key, the raw value, and its kind.
// Array elements have no key.
type Row struct {
	Key   string
	Value interface{}
	Type  string
}

// Node is a single box in the graph: a stable identifier (derived from the
// structural path, so it survives rebuilds), display rows, and the path back
// into the document.
type Node struct {
	ID       string
	Title    string
	Rows     []Row
	Path     document.Path
	Children []string
}

// TypeOf classifies a document value into a row type tag.
func TypeOf(v interface{}) string {
	switch v.(type) {
	case map[string]interface{}:
		return TypeObject
	case []interface{}:
		return TypeArray
	case string:
		return TypeString
	case json.Number, float64, int, int64:
		return TypeNumber
	case bool:
		return TypeBoolean
	case nil:
		return TypeNull
	default:
		return TypeString
	}
}

// Build walks the document tree breadth-first and returns the node list in
// traversal order. The root always yields a node, even when it is a bare
// scalar.
func Build(root interface{}) []*Node {
	type item struct {
		value interface{}
		path  document.Path
	}

	var nodes []*Node
	queue := []item{{value: root, path: nil}}

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		n := &Node{
			ID:    document.PathString(it.path),
			Title: titleFor(it.path),
			Path:  it.path,
		}

		switch v := it.value.(type) {
		case map[string]interface{}:
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				val := v[k]
				n.Rows = append(n.Rows, Row{Key: k, Value: val, Type: TypeOf(val)})
				if isComposite(val) {
					childPath := childOf(it.path, k)
					n.Children = append(n.Children, document.PathString(childPath))
					queue = append(queue, item{value: val, path: childPath})
				}
			}
		case []interface{}:
			for i, val := range v {
				n.Rows = append(n.Rows, Row{Value: val, Type: TypeOf(val)})
				if isComposite(val) {
					childPath := childOf(it.path, i)
					n.Children = append(n.Children, document.PathString(childPath))
					queue = append(queue, item{value: val, path: childPath})
				}
			}
		default:
			n.Rows = append(n.Rows, Row{Value: v, Type: TypeOf(v)})
		}

		nodes = append(nodes, n)
	}

	return nodes
}

func isComposite(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return true
	}
	return false
}

// childOf returns a copy of path extended by one segment. Copying matters:
// sibling paths must not share backing arrays.
func childOf(path document.Path, seg any) document.Path {
	child := make(document.Path, len(path), len(path)+1)
	copy(child, path)
	return append(child, seg)
}

// titleFor renders the node label shown in the list: the last path segment,
// or "$" for the root.
func titleFor(path document.Path) string {
	if len(path) == 0 {
		return "$"
	}
	switch s := path[len(path)-1].(type) {
	case int:
		return fmt.Sprintf("[%d]", s)
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}
