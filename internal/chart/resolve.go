package chart

// ResolveDisplay picks the canonical display spelling for a set of strings
// that share a lowercase key: the most frequent exact-case variant wins,
// ties broken by first occurrence in source order. The result is always one
// of the inputs, never a synthesized casing.
//
// The same song is often encoded with inconsistent capitalization across
// weekly snapshots; without this reconciliation a single song would split
// into multiple display rows.
func ResolveDisplay(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	counts := make(map[string]int, len(candidates))
	firstSeen := make(map[string]int, len(candidates))
	for i, c := range candidates {
		counts[c]++
		if _, ok := firstSeen[c]; !ok {
			firstSeen[c] = i
		}
	}

	best := candidates[0]
	for variant, n := range counts {
		if n > counts[best] || (n == counts[best] && firstSeen[variant] < firstSeen[best]) {
			best = variant
		}
	}
	return best
}
