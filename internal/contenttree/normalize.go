package contenttree

import "strings"

// NormalizeParam canonicalizes a url param for comparison: lowercase, with
// every '_' turned into '-'. "dia_01", "dia-01" and "DIA-01" all normalize
// to "dia-01". The result is stable under repeated normalization.
func NormalizeParam(param string) string {
	if param == "" {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(param, "_", "-"))
}

// SameParam reports whether two url params name the same node
func SameParam(a, b string) bool {
	return NormalizeParam(a) == NormalizeParam(b)
}
