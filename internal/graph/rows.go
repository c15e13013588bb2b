package graph

import (
	"encoding/json"

	"github.com/oakwood-commons/jgx/internal/formatter"
)

// FlattenRows projects a node's rows into the display string shown in the
// inspector's Content panel and used to seed the edit buffer.
//
// A node with no rows flattens to "{}". A single keyless row is a bare
// scalar and renders as its raw value, not JSON-encoded. Otherwise only
// scalar keyed rows survive: composite rows belong to child nodes and
// keyless rows have no place in an object literal. The result is the
// remaining fields as indented JSON.
func FlattenRows(rows []Row) string {
	if len(rows) == 0 {
		return "{}"
	}
	if len(rows) == 1 && rows[0].Key == "" {
		return formatter.StringifyPreserveNewlines(rows[0].Value)
	}

	flat := make(map[string]interface{})
	for _, r := range rows {
		if r.Key == "" {
			continue
		}
		if r.Type == TypeArray || r.Type == TypeObject {
			continue
		}
		flat[r.Key] = r.Value
	}

	b, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
