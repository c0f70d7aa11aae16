package contenttree

import (
	"sort"

	"coursetree/internal/domain/models/content"
)

// Flatten returns every node of the forest in pre-order, each with its children cleared
func Flatten(forest []content.ContentNode) []content.ContentNode {
	result := make([]content.ContentNode, 0, Count(forest))
	return flattenInto(result, forest)
}

func flattenInto(result, forest []content.ContentNode) []content.ContentNode {
	for i := range forest {
		result = append(result, leaf(forest[i]))
		result = flattenInto(result, forest[i].Children)
	}
	return result
}

// FilterActiveVisible flattens and filters in one pass. A node that is not both
// active and visible is skipped together with its whole subtree.
func FilterActiveVisible(forest []content.ContentNode) []content.ContentNode {
	return filterInto([]content.ContentNode{}, forest)
}

func filterInto(result, forest []content.ContentNode) []content.ContentNode {
	for i := range forest {
		if !forest[i].Listed() {
			continue
		}
		result = append(result, leaf(forest[i]))
		result = filterInto(result, forest[i].Children)
	}
	return result
}

// SortedByOrder returns a deep copy of the forest with every sibling sequence
// stably sorted by order. The input is not modified.
func SortedByOrder(forest []content.ContentNode) []content.ContentNode {
	sorted := Clone(forest)
	sortForest(sorted)
	return sorted
}

func sortForest(forest []content.ContentNode) {
	sort.SliceStable(forest, func(i, j int) bool { return forest[i].Order < forest[j].Order })
	for i := range forest {
		sortForest(forest[i].Children)
	}
}

func leaf(node content.ContentNode) content.ContentNode {
	node.Children = []content.ContentNode{}
	return node
}
