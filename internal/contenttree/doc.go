// Package contenttree implements lookups and edits over a course content forest.
//
// Every search is a pre-order, depth-first walk that stops at the first match.
// Duplicate ids or url params are not detected here; only the first occurrence
// found by the walk is acted upon. Callers that need uniqueness check it with
// Duplicates before mutating.
//
// Mutators edit the forest they are given in place. Callers that still hold a
// reference to the unedited forest should pass a Clone.
package contenttree
