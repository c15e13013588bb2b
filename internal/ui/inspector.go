package ui

import (
	"errors"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jgx/internal/document"
	"github.com/oakwood-commons/jgx/internal/filestore"
	"github.com/oakwood-commons/jgx/internal/graph"
)

// graphRebuiltMsg signals that a document write has been committed and the
// graph must be regenerated. The root model performs the rebuild and then
// reselects nodeID if it still exists; a vanished node is silently ignored.
// This replaces guessing with a fixed post-save delay: the rebuild completes
// before any reselection happens.
type graphRebuiltMsg struct {
	nodeID string
}

// Alert texts for the two save failure modes. A document that no longer
// parses reads differently to the user than a path that cannot be walked.
const (
	alertInvalidJSON = "Invalid JSON format"
	alertPathWalk    = "Cannot update value here: path walks through a non-container"
)

// Inspector is the node detail modal: it shows the selected node's flattened
// content and its structural path, and supports in-place editing of the
// node's value with write-back into the document.
//
// It has two states. In Viewing it always renders the currently selected
// node. In Editing it owns a transient edit buffer seeded from the node
// snapshot taken when editing started; the buffer is discarded on cancel and
// on successful save.
type Inspector struct {
	doc   *document.Store
	graph *graph.Store
	files *filestore.Store
	log   *logr.Logger

	nodeID  string
	editing bool
	buffer  textarea.Model

	status    string
	statusErr bool

	readOnly bool
	done     bool
	scroll   int
	noColor  bool

	width  int
	height int
}

var _ ChildModel = (*Inspector)(nil)

// NewInspector creates an inspector for the node with the given ID.
func NewInspector(doc *document.Store, g *graph.Store, files *filestore.Store, nodeID string, readOnly, noColor bool, log *logr.Logger) *Inspector {
	if log == nil {
		discard := logr.Discard()
		log = &discard
	}
	ta := textarea.New()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	return &Inspector{
		doc:      doc,
		graph:    g,
		files:    files,
		log:      log,
		nodeID:   nodeID,
		buffer:   ta,
		readOnly: readOnly,
		noColor:  noColor,
		width:    80,
		height:   24,
	}
}

// Init implements ChildModel.
func (m *Inspector) Init() tea.Cmd {
	return nil
}

// Done reports whether the modal asked to be closed.
func (m *Inspector) Done() bool {
	return m.done
}

// Editing reports whether the modal is in the Editing state.
func (m *Inspector) Editing() bool {
	return m.editing
}

// NodeID returns the identifier of the inspected node.
func (m *Inspector) NodeID() string {
	return m.nodeID
}

// SetNode points the inspector at a different node. Ignored while editing so
// the edit buffer keeps matching the snapshot it was seeded from.
func (m *Inspector) SetNode(nodeID string) {
	if m.editing {
		return
	}
	if m.nodeID != nodeID {
		m.nodeID = nodeID
		m.scroll = 0
		m.status = ""
	}
}

// SetSize implements ModelWithSize.
func (m *Inspector) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.buffer.SetWidth(m.contentWidth())
	m.buffer.SetHeight(m.contentHeight())
}

// Update implements ChildModel.
func (m *Inspector) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.buffer, cmd = m.buffer.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.editing {
		return m.updateEditing(keyMsg)
	}
	return m.updateViewing(keyMsg)
}

// updateViewing handles keys in the Viewing state.
func (m *Inspector) updateViewing(msg tea.KeyMsg) (ChildModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.done = true
		return m, nil

	case "e":
		if m.readOnly {
			m.setStatus("Document is read-only", true)
			return m, nil
		}
		return m, m.enterEditing()

	case "y":
		node, ok := m.graph.NodeByID(m.nodeID)
		if !ok {
			return m, nil
		}
		if err := copyToClipboard(document.PathString(node.Path)); err != nil {
			m.setStatus("Copy failed: "+err.Error(), true)
		} else {
			m.setStatus("Path copied to clipboard", false)
		}
		return m, nil

	case "j", "down":
		m.scroll++
		return m, nil

	case "k", "up":
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil

	case "g":
		m.scroll = 0
		return m, nil
	}
	return m, nil
}

// updateEditing handles keys in the Editing state.
func (m *Inspector) updateEditing(msg tea.KeyMsg) (ChildModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel: discard the buffer, no document mutation.
		m.editing = false
		m.buffer.SetValue("")
		m.buffer.Blur()
		m.setStatus("Edit cancelled", false)
		return m, nil

	case "ctrl+s":
		return m.save()
	}

	var cmd tea.Cmd
	m.buffer, cmd = m.buffer.Update(msg)
	return m, cmd
}

// enterEditing seeds the edit buffer from the current node snapshot and
// switches state.
func (m *Inspector) enterEditing() tea.Cmd {
	node, ok := m.graph.NodeByID(m.nodeID)
	if !ok {
		m.setStatus("Node no longer exists", true)
		return nil
	}
	m.editing = true
	m.status = ""
	m.buffer.SetValue(graph.FlattenRows(node.Rows))
	m.buffer.SetWidth(m.contentWidth())
	m.buffer.SetHeight(m.contentHeight())
	return m.buffer.Focus()
}

// save runs the validate-then-commit sequence: compute the updated document,
// re-validate it, commit to the document store, flag the file store, and
// request a graph rebuild. On any failure the Editing state and buffer are
// preserved so the user can correct the input.
func (m *Inspector) save() (ChildModel, tea.Cmd) {
	node, ok := m.graph.NodeByID(m.nodeID)
	if !ok {
		m.setStatus("Node no longer exists", true)
		return m, nil
	}

	// An emptied buffer is never a meaningful value for a node.
	if strings.TrimSpace(m.buffer.Value()) == "" {
		m.setStatus(alertInvalidJSON, true)
		return m, nil
	}

	updated, err := document.UpdateAtPath(m.doc.Text(), node.Path, m.buffer.Value())
	if err != nil {
		m.log.V(1).Info("node save rejected",
			"node", m.nodeID, "reason", err.Error())
		if errors.Is(err, document.ErrPathWalk) {
			m.setStatus(alertPathWalk, true)
		} else {
			m.setStatus(alertInvalidJSON, true)
		}
		return m, nil
	}

	if err := document.Validate(updated); err != nil {
		m.log.Error(err, "updated document failed re-validation", "node", m.nodeID)
		m.setStatus(alertInvalidJSON, true)
		return m, nil
	}

	if err := m.doc.SetText(updated); err != nil {
		m.setStatus(alertInvalidJSON, true)
		return m, nil
	}
	m.files.MarkUnsaved(updated)

	m.editing = false
	m.buffer.SetValue("")
	m.buffer.Blur()
	m.setStatus("Saved", false)

	nodeID := m.nodeID
	return m, func() tea.Msg {
		return graphRebuiltMsg{nodeID: nodeID}
	}
}

func (m *Inspector) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Inspector) contentWidth() int {
	return intMax(m.width-4, 10)
}

func (m *Inspector) contentHeight() int {
	// Content panel gets what the path panel (3), footer and status (2) leave.
	return intMax(m.height-7, 3)
}

// View implements ChildModel.
func (m *Inspector) View() string {
	node, ok := m.graph.NodeByID(m.nodeID)
	if !ok {
		return panelWithTitle("Node", "  (node no longer exists)", m.width, m.height, m.noColor)
	}

	contentHeight := m.contentHeight() + 2 // borders
	var content string
	if m.editing {
		content = m.buffer.View()
	} else {
		lines := strings.Split(highlightJSON(graph.FlattenRows(node.Rows), m.noColor), "\n")
		visible, scroll := windowLines(lines, m.scroll, m.contentHeight())
		m.scroll = scroll
		content = strings.Join(visible, "\n")
	}

	contentTitle := "Content"
	if m.editing {
		contentTitle = "Content (editing)"
	}
	contentPanel := panelWithTitle(contentTitle, content, m.width, contentHeight, m.noColor)
	pathPanel := panelWithTitle("JSON Path", document.PathString(node.Path), m.width, 3, m.noColor)

	return lipgloss.JoinVertical(lipgloss.Left,
		contentPanel,
		pathPanel,
		m.statusLine(),
		m.footerLine(),
	)
}

func (m *Inspector) statusLine() string {
	if m.status == "" {
		return ""
	}
	if m.noColor {
		return m.status
	}
	th := CurrentTheme()
	style := lipgloss.NewStyle().Foreground(th.StatusSuccess)
	if m.statusErr {
		style = lipgloss.NewStyle().Foreground(th.StatusError).Bold(true)
	}
	return style.Render(m.status)
}

func (m *Inspector) footerLine() string {
	var hints string
	switch {
	case m.editing:
		hints = "ctrl+s save · esc cancel"
	case m.readOnly:
		hints = "y copy path · j/k scroll · esc close"
	default:
		hints = "e edit · y copy path · j/k scroll · esc close"
	}
	if m.noColor {
		return hints
	}
	th := CurrentTheme()
	return lipgloss.NewStyle().Foreground(th.FooterFG).Render(hints)
}
