package batch

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MikeSquared-Agency/triage/internal/domain"
)

// FilterByLevel keeps results whose priority level equals level, ignoring
// case.
func FilterByLevel(results []PriorityResult, level string) []PriorityResult {
	out := []PriorityResult{}
	for _, r := range results {
		if strings.EqualFold(string(r.PriorityLevel), strings.TrimSpace(level)) {
			out = append(out, r)
		}
	}
	return out
}

// TopByUrgency returns up to n results ordered by urgency score, highest
// first. Ties keep their input order. n <= 0 returns all results.
func TopByUrgency(results []PriorityResult, n int) []PriorityResult {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b PriorityResult) int {
		return b.UrgencyScore - a.UrgencyScore
	})
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	if sorted == nil {
		sorted = []PriorityResult{}
	}
	return sorted
}

type Recommendation struct {
	HighPriorityEmails []PriorityResult `json:"high_priority_emails"`
	Count              int              `json:"count"`
	Recommendations    []string         `json:"recommendations"`
}

const defaultFocus = 3

// Recommend lists the high-priority results by urgency and suggests how many
// to handle first. A positive limit keeps only the top limit results and
// becomes the suggested count; otherwise every high-priority result is
// listed and the suggestion is capped at 3.
func Recommend(results []PriorityResult, limit int) Recommendation {
	focus := defaultFocus
	if limit > 0 {
		focus = limit
	}
	high := TopByUrgency(FilterByLevel(results, string(domain.PriorityHigh)), limit)

	advice := "No high-priority emails detected"
	if len(high) > 0 {
		advice = fmt.Sprintf("Address top %d urgent emails first", min(focus, len(high)))
	}
	return Recommendation{
		HighPriorityEmails: high,
		Count:              len(high),
		Recommendations:    []string{advice},
	}
}
