package graph

import (
	"github.com/go-logr/logr"
)

// Store holds the current node list and the selection. Like the document
// store it is single-writer by convention: rebuilds and selection changes
// happen on the UI event loop.
type Store struct {
	nodes      []*Node
	byID       map[string]*Node
	selectedID string
	log        *logr.Logger
}

// NewStore builds a store from a parsed document root. The root node starts
// selected.
func NewStore(root interface{}, log *logr.Logger) *Store {
	if log == nil {
		discard := logr.Discard()
		log = &discard
	}
	s := &Store{log: log}
	s.Rebuild(root)
	return s
}

// Rebuild regenerates the node list from a document root. The selection is
// kept when a node with the same ID still exists, otherwise it falls back to
// the root node. Node object references from before the rebuild are stale
// after this call.
func (s *Store) Rebuild(root interface{}) {
	s.nodes = Build(root)
	s.byID = make(map[string]*Node, len(s.nodes))
	for _, n := range s.nodes {
		s.byID[n.ID] = n
	}
	if _, ok := s.byID[s.selectedID]; !ok && len(s.nodes) > 0 {
		s.selectedID = s.nodes[0].ID
	}
	s.log.V(1).Info("graph rebuilt", "nodes", len(s.nodes), "selected", s.selectedID)
}

// Nodes returns the node list in traversal order.
func (s *Store) Nodes() []*Node {
	return s.nodes
}

// Len returns the number of nodes.
func (s *Store) Len() int {
	return len(s.nodes)
}

// NodeByID looks up a node by its identifier.
func (s *Store) NodeByID(id string) (*Node, bool) {
	n, ok := s.byID[id]
	return n, ok
}

// Selected returns the currently selected node, or nil for an empty graph.
func (s *Store) Selected() *Node {
	if n, ok := s.byID[s.selectedID]; ok {
		return n
	}
	return nil
}

// SelectedID returns the identifier of the current selection.
func (s *Store) SelectedID() string {
	return s.selectedID
}

// Select moves the selection to the node with the given ID. Selecting an
// unknown ID is a no-op and returns false; after a rebuild the old node may
// legitimately be gone.
func (s *Store) Select(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	s.selectedID = id
	return true
}
