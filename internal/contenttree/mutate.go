package contenttree

import (
	"sort"

	"coursetree/internal/domain/models/content"
)

// Insert appends node under the node with id parentID, or at the root when parentID is empty.
// The inserted node always starts with no children. A parentID that is not in the
// forest leaves the forest unchanged and returns false; it never falls back to the root.
func Insert(forest *[]content.ContentNode, node content.ContentNode, parentID string) bool {
	node.Children = []content.ContentNode{}

	if parentID == "" {
		*forest = append(*forest, node)
		return true
	}

	parent, ok := FindByID(*forest, parentID)
	if !ok {
		return false
	}
	parent.Children = append(parent.Children, node)
	return true
}

// Update replaces every field of the node with the given id except its children
func Update(forest []content.ContentNode, id string, fields content.NodeFields) bool {
	node, ok := FindByID(forest, id)
	if !ok {
		return false
	}
	children := node.Children
	*node = fields.Node()
	node.Children = children
	return true
}

// Remove deletes the node with the given id together with its subtree
func Remove(forest *[]content.ContentNode, id string) bool {
	nodes := *forest
	for i := range nodes {
		if nodes[i].ID == id {
			// Full slice expression forces a fresh backing array so slices the
			// caller still holds are left intact.
			*forest = append(nodes[:i:i], nodes[i+1:]...)
			return true
		}
		if Remove(&nodes[i].Children, id) {
			return true
		}
	}
	return false
}

// ToggleActive flips the active flag of the node with the given id
func ToggleActive(forest []content.ContentNode, id string) bool {
	node, ok := FindByID(forest, id)
	if !ok {
		return false
	}
	node.Active = !node.Active
	return true
}

// ToggleVisible flips the visible flag of the node with the given id
func ToggleVisible(forest []content.ContentNode, id string) bool {
	node, ok := FindByID(forest, id)
	if !ok {
		return false
	}
	node.Visible = !node.Visible
	return true
}

// MoveResult is the outcome of MoveUp or MoveDown
type MoveResult int

const (
	// NotFound means no node has the id
	NotFound MoveResult = iota
	// Moved means the order values were swapped and the siblings re-sorted
	Moved
	// AtBoundary means the node is already first (MoveUp) or last (MoveDown); nothing changed
	AtBoundary
)

// OK reports whether the move succeeded; a boundary move is a successful no-op
func (r MoveResult) OK() bool {
	return r != NotFound
}

func (r MoveResult) String() string {
	switch r {
	case Moved:
		return "moved"
	case AtBoundary:
		return "at_boundary"
	default:
		return "not_found"
	}
}

// MoveUp swaps the node's order with its previous sibling and re-sorts the siblings by order
func MoveUp(forest *[]content.ContentNode, id string) MoveResult {
	return move(forest, id, -1)
}

// MoveDown swaps the node's order with its next sibling and re-sorts the siblings by order
func MoveDown(forest *[]content.ContentNode, id string) MoveResult {
	return move(forest, id, +1)
}

func move(forest *[]content.ContentNode, id string, delta int) MoveResult {
	siblings, index, ok := locate(forest, id)
	if !ok {
		return NotFound
	}

	seq := *siblings
	other := index + delta
	if other < 0 || other >= len(seq) {
		return AtBoundary
	}

	seq[index].Order, seq[other].Order = seq[other].Order, seq[index].Order
	sort.SliceStable(seq, func(i, j int) bool { return seq[i].Order < seq[j].Order })
	return Moved
}

// locate returns the sibling sequence holding the first node with the given id and its index
func locate(forest *[]content.ContentNode, id string) (*[]content.ContentNode, int, bool) {
	nodes := *forest
	for i := range nodes {
		if nodes[i].ID == id {
			return forest, i, true
		}
		if siblings, index, ok := locate(&nodes[i].Children, id); ok {
			return siblings, index, true
		}
	}
	return nil, -1, false
}
