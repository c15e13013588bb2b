package ui

import tea "charm.land/bubbletea/v2"

// ChildModel is the interface the root model uses to route messages to the
// focused child (currently only the node inspector). Keeping children behind
// this interface keeps them testable in isolation.
type ChildModel interface {
	// Init initializes the child model and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and updates the child model state.
	Update(msg tea.Msg) (ChildModel, tea.Cmd)

	// View renders the child model to a string.
	View() string
}

// ModelWithSize is an optional interface for children that respond to resize
// events.
type ModelWithSize interface {
	SetSize(width, height int)
}

// ModelWithDone is an optional interface for children that can request to be
// closed.
type ModelWithDone interface {
	Done() bool
}
