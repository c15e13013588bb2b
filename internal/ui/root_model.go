package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jgx/internal/document"
	"github.com/oakwood-commons/jgx/internal/filestore"
	"github.com/oakwood-commons/jgx/internal/formatter"
	"github.com/oakwood-commons/jgx/internal/graph"
)

// App is the root bubbletea model: the node list plus the inspector modal.
// It owns message routing; the stores are shared with the inspector and are
// only ever mutated on the event loop.
type App struct {
	Doc   *document.Store
	Graph *graph.Store
	Files *filestore.Store
	Log   *logr.Logger

	NoColor  bool
	ReadOnly bool

	cursor    int
	inspector *Inspector

	status    string
	statusErr bool
	quitArmed bool

	width  int
	height int
}

// NewApp wires the root model to its stores.
func NewApp(doc *document.Store, g *graph.Store, files *filestore.Store, noColor, readOnly bool, log *logr.Logger) *App {
	if log == nil {
		discard := logr.Discard()
		log = &discard
	}
	return &App{
		Doc:      doc,
		Graph:    g,
		Files:    files,
		Log:      log,
		NoColor:  noColor,
		ReadOnly: readOnly,
		width:    100,
		height:   30,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.inspector != nil {
			a.inspector.SetSize(a.modalWidth(), a.modalHeight())
		}
		return a, nil

	case graphRebuiltMsg:
		// The document changed; regenerate the graph and restore the
		// selection by identifier. Old node references are stale now.
		a.Graph.Rebuild(a.Doc.Root())
		if msg.nodeID != "" {
			a.Graph.Select(msg.nodeID)
		}
		a.syncCursorToSelection()
		if a.inspector != nil {
			a.inspector.SetNode(a.Graph.SelectedID())
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.inspector != nil {
			return a.routeToInspector(msg)
		}
		return a.updateList(msg)
	}

	if a.inspector != nil {
		return a.routeToInspector(msg)
	}
	return a, nil
}

// routeToInspector forwards a message to the open modal and handles its
// close request.
func (a *App) routeToInspector(msg tea.Msg) (tea.Model, tea.Cmd) {
	child, cmd := a.inspector.Update(msg)
	a.inspector = child.(*Inspector)
	if a.inspector.Done() {
		a.inspector = nil
	}
	return a, cmd
}

// updateList handles keys while the node list has focus.
func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" {
		a.quitArmed = false
	}

	switch key {
	case "q":
		if a.Files.Dirty() && !a.quitArmed {
			a.quitArmed = true
			a.setStatus("Unsaved changes: press q again to quit, ctrl+s to save", true)
			return a, nil
		}
		return a, tea.Quit

	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g":
		a.moveCursorTo(0)
	case "G":
		a.moveCursorTo(a.Graph.Len() - 1)

	case "enter", "l":
		if node := a.Graph.Selected(); node != nil {
			a.inspector = NewInspector(a.Doc, a.Graph, a.Files, node.ID, a.ReadOnly, a.NoColor, a.Log)
			a.inspector.SetSize(a.modalWidth(), a.modalHeight())
			return a, a.inspector.Init()
		}

	case "ctrl+s":
		if err := a.Files.Save(); err != nil {
			a.setStatus(err.Error(), true)
		} else {
			a.setStatus("Saved "+a.Files.Path(), false)
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	a.moveCursorTo(a.cursor + delta)
}

func (a *App) moveCursorTo(idx int) {
	nodes := a.Graph.Nodes()
	if len(nodes) == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(nodes) {
		idx = len(nodes) - 1
	}
	a.cursor = idx
	a.Graph.Select(nodes[idx].ID)
}

// syncCursorToSelection repositions the cursor after a rebuild changed the
// node list.
func (a *App) syncCursorToSelection() {
	for i, n := range a.Graph.Nodes() {
		if n.ID == a.Graph.SelectedID() {
			a.cursor = i
			return
		}
	}
	a.cursor = 0
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

func (a *App) modalWidth() int {
	w := a.width - 8
	if w > 100 {
		w = 100
	}
	return intMax(w, 40)
}

func (a *App) modalHeight() int {
	h := a.height - 4
	if h > 40 {
		h = 40
	}
	return intMax(h, 12)
}

// View implements tea.Model.
func (a *App) View() tea.View {
	var body string
	if a.inspector != nil {
		body = lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, a.inspector.View())
	} else {
		body = a.listView()
	}

	v := tea.NewView(lipgloss.JoinVertical(lipgloss.Left, body, a.footerView()))
	v.AltScreen = true
	return v
}

// listView renders the node list with the cursor row highlighted.
func (a *App) listView() string {
	th := CurrentTheme()
	nodes := a.Graph.Nodes()
	height := intMax(a.height-2, 1)

	titleWidth := 24
	previewWidth := intMax(a.width-titleWidth-4, 20)

	lines := make([]string, 0, len(nodes))
	for i, n := range nodes {
		indent := strings.Repeat("  ", len(n.Path))
		title := formatter.Truncate(indent+n.Title, titleWidth)
		line := formatter.PadRight(title, titleWidth) + "  " + formatter.Truncate(nodePreview(n), previewWidth)

		switch {
		case i == a.cursor && a.NoColor:
			line = lipgloss.NewStyle().Reverse(true).Render(padANSIToWidth(line, a.width))
		case i == a.cursor:
			line = lipgloss.NewStyle().Background(th.SelectedBG).Foreground(th.SelectedFG).Render(padANSIToWidth(line, a.width))
		case !a.NoColor:
			line = lipgloss.NewStyle().Foreground(th.ValueColor).Render(line)
		}
		lines = append(lines, line)
	}

	// Keep the cursor row visible.
	scroll := 0
	if a.cursor >= height {
		scroll = a.cursor - height + 1
	}
	visible, _ := windowLines(lines, scroll, height)

	header := "NODE" + strings.Repeat(" ", titleWidth-2) + "PREVIEW"
	if !a.NoColor {
		header = lipgloss.NewStyle().Bold(true).Foreground(th.HeaderFG).Background(th.HeaderBG).Render(padANSIToWidth(header, a.width))
	}
	return header + "\n" + strings.Join(visible, "\n")
}

// nodePreview summarizes a node for the list: composite sizes for container
// nodes, the flattened scalar fields otherwise.
func nodePreview(n *graph.Node) string {
	if len(n.Rows) == 1 && n.Rows[0].Key == "" {
		return formatter.Stringify(n.Rows[0].Value)
	}
	scalars := 0
	composites := 0
	for _, r := range n.Rows {
		if r.Type == graph.TypeArray || r.Type == graph.TypeObject {
			composites++
		} else {
			scalars++
		}
	}
	return fmt.Sprintf("%d fields, %d nested", scalars, composites)
}

// footerView renders the bottom bar: selection path, dirty marker, status.
func (a *App) footerView() string {
	path := "$"
	if node := a.Graph.Selected(); node != nil {
		path = document.PathString(node.Path)
	}

	left := path
	if a.Files.Dirty() {
		left += "  [+]"
	}

	right := "enter inspect · j/k move · ctrl+s save file · q quit"
	if a.inspector != nil {
		right = ""
	}
	if a.status != "" {
		right = a.status
	}

	gap := a.width - ansiVisibleWidth(left) - ansiVisibleWidth(right)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right

	if a.NoColor {
		return line
	}
	th := CurrentTheme()
	style := lipgloss.NewStyle().Foreground(th.FooterFG).Background(th.FooterBG)
	if a.status != "" && a.statusErr {
		style = style.Foreground(th.StatusError)
	}
	return style.Render(padANSIToWidth(line, a.width))
}

// Run starts the Bubble Tea program for the given stores. Extra
// ProgramOptions (e.g., custom IO for tests) can be provided.
func Run(doc *document.Store, g *graph.Store, files *filestore.Store, noColor, readOnly bool, log *logr.Logger, opts ...tea.ProgramOption) error {
	app := NewApp(doc, g, files, noColor, readOnly, log)
	prog := tea.NewProgram(app, opts...)
	_, err := prog.Run()
	return err
}
