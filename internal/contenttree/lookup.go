package contenttree

import (
	"coursetree/internal/domain/models/content"
)

// FindByID returns the first node with the given id.
// The returned pointer aliases the forest, so edits through it are visible to the caller.
func FindByID(forest []content.ContentNode, id string) (*content.ContentNode, bool) {
	for i := range forest {
		if forest[i].ID == id {
			return &forest[i], true
		}
		if found, ok := FindByID(forest[i].Children, id); ok {
			return found, true
		}
	}
	return nil, false
}

// FindByURLParam returns the first node whose normalized url param equals the normalized param
func FindByURLParam(forest []content.ContentNode, param string) (*content.ContentNode, bool) {
	return findByNormalizedParam(forest, NormalizeParam(param))
}

func findByNormalizedParam(forest []content.ContentNode, normalized string) (*content.ContentNode, bool) {
	for i := range forest {
		if NormalizeParam(forest[i].URLParam) == normalized {
			return &forest[i], true
		}
		if found, ok := findByNormalizedParam(forest[i].Children, normalized); ok {
			return found, true
		}
	}
	return nil, false
}

// FindNode searches every course's forest in document order
func FindNode(doc *content.Document, id string) (*content.Course, *content.ContentNode, bool) {
	for i := range doc.Courses {
		if node, ok := FindByID(doc.Courses[i].Content, id); ok {
			return &doc.Courses[i], node, true
		}
	}
	return nil, nil, false
}

// FindNodeByURLParam searches every course's forest in document order
func FindNodeByURLParam(doc *content.Document, param string) (*content.Course, *content.ContentNode, bool) {
	normalized := NormalizeParam(param)
	for i := range doc.Courses {
		if node, ok := findByNormalizedParam(doc.Courses[i].Content, normalized); ok {
			return &doc.Courses[i], node, true
		}
	}
	return nil, nil, false
}

// Path returns the ids from a root node down to the node with the given id, or nil
func Path(forest []content.ContentNode, id string) []string {
	for i := range forest {
		if forest[i].ID == id {
			return []string{id}
		}
		if rest := Path(forest[i].Children, id); rest != nil {
			return append([]string{forest[i].ID}, rest...)
		}
	}
	return nil
}

// ChildrenByParentParam returns the active and visible children of the first node
// that matches param and has children. A match without children does not stop the walk.
func ChildrenByParentParam(forest []content.ContentNode, param string) []content.ContentNode {
	return childrenByNormalizedParam(forest, NormalizeParam(param))
}

func childrenByNormalizedParam(forest []content.ContentNode, normalized string) []content.ContentNode {
	for i := range forest {
		node := &forest[i]
		if NormalizeParam(node.URLParam) == normalized && node.HasChildren() {
			listed := make([]content.ContentNode, 0, len(node.Children))
			for _, child := range node.Children {
				if child.Listed() {
					listed = append(listed, CloneNode(child))
				}
			}
			return listed
		}
		if node.HasChildren() {
			if found := childrenByNormalizedParam(node.Children, normalized); len(found) > 0 {
				return found
			}
		}
	}
	return []content.ContentNode{}
}

// FirstCover returns the cover URL of the first active, visible node that has one
func FirstCover(forest []content.ContentNode) (string, bool) {
	for i := range forest {
		if forest[i].Listed() && forest[i].CoverURL != "" {
			return forest[i].CoverURL, true
		}
		if cover, ok := FirstCover(forest[i].Children); ok {
			return cover, true
		}
	}
	return "", false
}

// Count returns the total number of nodes in the forest
func Count(forest []content.ContentNode) int {
	total := 0
	for i := range forest {
		total += 1 + Count(forest[i].Children)
	}
	return total
}

// Siblings returns a copy of the sibling sequence that holds the node with the given id
func Siblings(forest []content.ContentNode, id string) ([]content.ContentNode, bool) {
	seq, _, ok := locate(&forest, id)
	if !ok {
		return nil, false
	}
	return Clone(*seq), true
}
