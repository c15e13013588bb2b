package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/oakwood-commons/jgx/internal/document"
)

func newTestDoc(t *testing.T, text string) *document.Store {
	t.Helper()
	doc, err := document.NewStore(text, nil)
	if err != nil {
		t.Fatalf("document.NewStore: %v", err)
	}
	return doc
}

func withFlags(t *testing.T, path, format string) {
	t.Helper()
	origPath, origOutput := pathExpr, output
	pathExpr, output = path, format
	t.Cleanup(func() { pathExpr, output = origPath, origOutput })
}

func TestPrintNodeJSON(t *testing.T) {
	doc := newTestDoc(t, `{"server": {"host": "localhost", "port": 8080}}`)
	withFlags(t, "$.server.host", "json")

	var buf bytes.Buffer
	if err := printNode(&buf, doc); err != nil {
		t.Fatalf("printNode: %v", err)
	}
	if got := buf.String(); got != "\"localhost\"\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestPrintNodeRawString(t *testing.T) {
	doc := newTestDoc(t, `{"server": {"host": "localhost"}}`)
	withFlags(t, "server.host", "raw")

	var buf bytes.Buffer
	if err := printNode(&buf, doc); err != nil {
		t.Fatalf("printNode: %v", err)
	}
	if got := buf.String(); got != "localhost\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestPrintNodeYAML(t *testing.T) {
	doc := newTestDoc(t, `{"items": [1, 2]}`)
	withFlags(t, "$.items", "yaml")

	var buf bytes.Buffer
	if err := printNode(&buf, doc); err != nil {
		t.Fatalf("printNode: %v", err)
	}
	if got := buf.String(); got != "- 1\n- 2\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestPrintNodeWholeDocumentOnEmptyPath(t *testing.T) {
	doc := newTestDoc(t, `{"a": 1}`)
	withFlags(t, "", "json")

	var buf bytes.Buffer
	if err := printNode(&buf, doc); err != nil {
		t.Fatalf("printNode: %v", err)
	}
	if !strings.Contains(buf.String(), `"a": 1`) {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestPrintNodeBadPath(t *testing.T) {
	doc := newTestDoc(t, `{"a": 1}`)
	withFlags(t, "$.missing.key", "json")

	var buf bytes.Buffer
	if err := printNode(&buf, doc); err == nil {
		t.Fatal("expected an error for an unresolvable path")
	}
}

func TestPrintNodeInvalidFormat(t *testing.T) {
	doc := newTestDoc(t, `{"a": 1}`)
	withFlags(t, "$.a", "xml")

	var buf bytes.Buffer
	err := printNode(&buf, doc)
	if err == nil || !strings.Contains(err.Error(), "invalid output format") {
		t.Fatalf("err = %v", err)
	}
}
