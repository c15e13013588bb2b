package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jgx/internal/document"
	"github.com/oakwood-commons/jgx/internal/filestore"
	"github.com/oakwood-commons/jgx/internal/graph"
)

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "ctrl+s":
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	default:
		r := []rune(s)[0]
		return tea.KeyPressMsg{Code: r, Text: s}
	}
}

// newTestStores builds the three stores from a JSON document.
func newTestStores(t *testing.T, text string) (*document.Store, *graph.Store, *filestore.Store) {
	t.Helper()
	doc, err := document.NewStore(text, nil)
	if err != nil {
		t.Fatalf("document.NewStore: %v", err)
	}
	g := graph.NewStore(doc.Root(), nil)
	files := filestore.NewStore("", text, nil)
	return doc, g, files
}

func newTestInspector(t *testing.T, text, nodeID string) (*Inspector, *document.Store, *graph.Store, *filestore.Store) {
	t.Helper()
	doc, g, files := newTestStores(t, text)
	if _, ok := g.NodeByID(nodeID); !ok {
		t.Fatalf("fixture has no node %q", nodeID)
	}
	insp := NewInspector(doc, g, files, nodeID, false, true, nil)
	insp.SetSize(80, 24)
	return insp, doc, g, files
}

func TestInspectorEscCloses(t *testing.T) {
	insp, _, _, _ := newTestInspector(t, `{"user": {"name": "ada", "age": 36}}`, `$["user"]`)

	child, _ := insp.Update(keyPress("esc"))
	if !child.(*Inspector).Done() {
		t.Fatal("esc must close the inspector")
	}
}

func TestInspectorEnterEditingSeedsBuffer(t *testing.T) {
	insp, _, g, _ := newTestInspector(t, `{"user": {"name": "ada", "age": 36}}`, `$["user"]`)

	child, _ := insp.Update(keyPress("e"))
	insp = child.(*Inspector)
	if !insp.Editing() {
		t.Fatal("e must switch to editing")
	}

	node, _ := g.NodeByID(`$["user"]`)
	if got, want := insp.buffer.Value(), graph.FlattenRows(node.Rows); got != want {
		t.Fatalf("buffer = %q, want flattened rows %q", got, want)
	}
}

func TestInspectorReadOnlyBlocksEditing(t *testing.T) {
	doc, g, files := newTestStores(t, `{"a": 1}`)
	insp := NewInspector(doc, g, files, "$", true, true, nil)

	child, _ := insp.Update(keyPress("e"))
	insp = child.(*Inspector)
	if insp.Editing() {
		t.Fatal("read-only inspector must not enter editing")
	}
	if insp.status == "" || !insp.statusErr {
		t.Fatalf("expected an error status, got %q", insp.status)
	}
}

func TestInspectorCancelDiscardsEdit(t *testing.T) {
	insp, doc, _, files := newTestInspector(t, `{"user": {"name": "ada"}}`, `$["user"]`)
	before := doc.Text()

	child, _ := insp.Update(keyPress("e"))
	insp = child.(*Inspector)
	insp.buffer.SetValue(`{"name": "grace"}`)

	child, _ = insp.Update(keyPress("esc"))
	insp = child.(*Inspector)
	if insp.Editing() {
		t.Fatal("esc must leave editing")
	}
	if insp.Done() {
		t.Fatal("cancel must return to viewing, not close")
	}
	if doc.Text() != before {
		t.Fatalf("cancel must not mutate the document: %q", doc.Text())
	}
	if files.Dirty() {
		t.Fatal("cancel must not flag unsaved changes")
	}
}

func TestInspectorSaveCommitsAndRequestsRebuild(t *testing.T) {
	insp, doc, _, files := newTestInspector(t, `{"user": {"age": 36, "name": "ada"}}`, `$["user"]`)

	child, _ := insp.Update(keyPress("e"))
	insp = child.(*Inspector)
	insp.buffer.SetValue(`{"age": 37, "name": "ada"}`)

	child, cmd := insp.Update(keyPress("ctrl+s"))
	insp = child.(*Inspector)
	if insp.Editing() {
		t.Fatal("successful save must leave editing")
	}
	if cmd == nil {
		t.Fatal("save must emit a rebuild command")
	}
	msg, ok := cmd().(graphRebuiltMsg)
	if !ok {
		t.Fatalf("command produced %T, want graphRebuiltMsg", cmd())
	}
	if msg.nodeID != `$["user"]` {
		t.Fatalf("rebuild message targets %q", msg.nodeID)
	}

	if !strings.Contains(doc.Text(), `"age": 37`) {
		t.Fatalf("document not updated: %q", doc.Text())
	}
	if !files.Dirty() {
		t.Fatal("save must flag unsaved changes")
	}
}

func TestInspectorSaveRawStringValue(t *testing.T) {
	insp, doc, _, _ := newTestInspector(t, `{"note": {"body": {"text": "old"}}}`, `$["note"]["body"]`)

	child, _ := insp.Update(keyPress("e"))
	insp = child.(*Inspector)
	insp.buffer.SetValue("plain text, not json")

	child, cmd := insp.Update(keyPress("ctrl+s"))
	insp = child.(*Inspector)
	if insp.Editing() || cmd == nil {
		t.Fatalf("save should succeed, editing=%v cmd=%v", insp.Editing(), cmd)
	}
	if !strings.Contains(doc.Text(), `"body": "plain text, not json"`) {
		t.Fatalf("raw string fallback missing: %q", doc.Text())
	}
}

func TestInspectorSaveEmptyBufferRejected(t *testing.T) {
	insp, doc, _, files := newTestInspector(t, `{"user": {"name": "ada"}}`, `$["user"]`)
	before := doc.Text()

	child, _ := insp.Update(keyPress("e"))
	insp = child.(*Inspector)
	insp.buffer.SetValue("")

	child, cmd := insp.Update(keyPress("ctrl+s"))
	insp = child.(*Inspector)
	if cmd != nil {
		t.Fatal("empty-buffer save must not request a rebuild")
	}
	if !insp.Editing() {
		t.Fatal("empty-buffer save must stay in editing")
	}
	if insp.status != alertInvalidJSON {
		t.Fatalf("status = %q, want %q", insp.status, alertInvalidJSON)
	}
	if doc.Text() != before || files.Dirty() {
		t.Fatal("empty-buffer save must not mutate state")
	}
}

func TestInspectorSavePathWalkFailureKeepsEditing(t *testing.T) {
	insp, doc, _, files := newTestInspector(t, `{"a": {"b": {"c": 1}}}`, `$["a"]["b"]`)

	child, _ := insp.Update(keyPress("e"))
	insp = child.(*Inspector)
	insp.buffer.SetValue(`{"c": 2}`)

	// The document changes underneath: "a" is now a scalar, so the node's
	// path walks through a non-container.
	if err := doc.SetText(`{"a": 5}`); err != nil {
		t.Fatalf("SetText: %v", err)
	}

	child, cmd := insp.Update(keyPress("ctrl+s"))
	insp = child.(*Inspector)
	if cmd != nil {
		t.Fatal("failed save must not request a rebuild")
	}
	if !insp.Editing() {
		t.Fatal("failed save must keep the edit buffer open")
	}
	if insp.status != alertPathWalk {
		t.Fatalf("status = %q, want %q", insp.status, alertPathWalk)
	}
	if files.Dirty() {
		t.Fatal("failed save must not flag unsaved changes")
	}
}

func TestInspectorSetNodeIgnoredWhileEditing(t *testing.T) {
	insp, _, _, _ := newTestInspector(t, `{"a": {"x": 1}, "b": {"y": 2}}`, `$["a"]`)

	child, _ := insp.Update(keyPress("e"))
	insp = child.(*Inspector)

	insp.SetNode(`$["b"]`)
	if insp.NodeID() != `$["a"]` {
		t.Fatalf("node changed during editing: %q", insp.NodeID())
	}

	child, _ = insp.Update(keyPress("esc"))
	insp = child.(*Inspector)
	insp.SetNode(`$["b"]`)
	if insp.NodeID() != `$["b"]` {
		t.Fatalf("node not changed in viewing state: %q", insp.NodeID())
	}
}

func TestInspectorViewShowsContentAndPath(t *testing.T) {
	insp, _, _, _ := newTestInspector(t, `{"user": {"name": "ada"}}`, `$["user"]`)

	view := insp.View()
	if !strings.Contains(view, `"name": "ada"`) {
		t.Fatalf("view missing flattened content:\n%s", view)
	}
	if !strings.Contains(view, `$["user"]`) {
		t.Fatalf("view missing path panel:\n%s", view)
	}
	if !strings.Contains(view, "JSON Path") {
		t.Fatalf("view missing path panel title:\n%s", view)
	}
}

func TestInspectorViewVanishedNode(t *testing.T) {
	insp, _, g, _ := newTestInspector(t, `{"a": {"b": 1}}`, `$["a"]`)

	g.Rebuild(map[string]interface{}{"x": 1.0})
	view := insp.View()
	if !strings.Contains(view, "node no longer exists") {
		t.Fatalf("view should report the vanished node:\n%s", view)
	}
}
