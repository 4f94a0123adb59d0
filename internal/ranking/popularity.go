// Package ranking computes game popularity orderings.
package ranking

import "sort"

// Top returns up to n ids ordered by descending count. Ties break by
// ascending firstSeen, so the ordering is stable across calls as long as
// firstSeen is stable (the memory store assigns it at first catalog
// insert). Ids missing from firstSeen sort after all the rest.
func Top(counts map[string]int, firstSeen map[string]int, n int) []string {
	if n <= 0 || len(counts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		sa, oka := firstSeen[a]
		sb, okb := firstSeen[b]
		if oka != okb {
			return oka
		}
		if sa != sb {
			return sa < sb
		}
		return a < b
	})

	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}
