package catalog

import (
	"slices"
	"strings"
)

func splitWords(s string) []string {
	return strings.Fields(s)
}

func joinTokensSorted(tokens []string) string {
	sorted := slices.Clone(tokens)
	slices.Sort(sorted)
	return strings.Join(sorted, " ")
}
