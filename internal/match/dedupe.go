// File path: internal/match/dedupe.go
package match

// Dedupe collapses candidates retrieved by multiple strategies into one
// entry per mentor, keeping the highest weighted score. On a tie the first
// strategy to surface the mentor wins; first-seen order is preserved so the
// output is deterministic for a given outcome order.
func Dedupe(outcomes []StrategyOutcome) []Candidate {
	best := make(map[string]int)
	merged := make([]Candidate, 0)
	for _, outcome := range outcomes {
		if outcome.Failed() {
			continue
		}
		for _, candidate := range outcome.Candidates {
			if candidate.Mentor.ID == "" {
				continue
			}
			idx, seen := best[candidate.Mentor.ID]
			if !seen {
				best[candidate.Mentor.ID] = len(merged)
				merged = append(merged, candidate)
				continue
			}
			if candidate.Score > merged[idx].Score {
				merged[idx] = candidate
			}
		}
	}
	return merged
}
