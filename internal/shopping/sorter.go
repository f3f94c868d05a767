package shopping

import (
	"slices"
	"strings"
)

// Sort orders entries in place by case-folded name, then unit, then the
// display name itself. Comparison is byte-wise, so the result does not
// depend on locale or on the order entries were produced in.
func Sort(entries []AggregatedEntry) {
	slices.SortStableFunc(entries, compareEntries)
}

func compareEntries(a, b AggregatedEntry) int {
	if c := strings.Compare(NormalizeName(a.Name), NormalizeName(b.Name)); c != 0 {
		return c
	}
	if c := strings.Compare(a.Unit, b.Unit); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}
