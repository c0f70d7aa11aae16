package contenttree

import (
	"sort"

	"coursetree/internal/domain/models/content"
)

// DuplicateReport lists values that appear more than once in a forest.
// URLParams holds normalized params.
type DuplicateReport struct {
	IDs       []string `json:"ids"`
	URLParams []string `json:"urlParams"`
}

// Empty reports whether no duplicates were found
func (r DuplicateReport) Empty() bool {
	return len(r.IDs) == 0 && len(r.URLParams) == 0
}

// Duplicates walks the forest and reports repeated ids and normalized url params.
// Empty url params are ignored.
func Duplicates(forest []content.ContentNode) DuplicateReport {
	ids := map[string]int{}
	params := map[string]int{}
	countForest(forest, ids, params)
	return DuplicateReport{
		IDs:       repeated(ids),
		URLParams: repeated(params),
	}
}

func countForest(forest []content.ContentNode, ids, params map[string]int) {
	for i := range forest {
		ids[forest[i].ID]++
		if p := NormalizeParam(forest[i].URLParam); p != "" {
			params[p]++
		}
		countForest(forest[i].Children, ids, params)
	}
}

func repeated(counts map[string]int) []string {
	out := []string{}
	for value, n := range counts {
		if n > 1 {
			out = append(out, value)
		}
	}
	sort.Strings(out)
	return out
}

// DuplicateCourseIDs returns course ids that appear more than once in the document
func DuplicateCourseIDs(doc *content.Document) []string {
	counts := map[string]int{}
	for i := range doc.Courses {
		counts[doc.Courses[i].ID]++
	}
	return repeated(counts)
}
