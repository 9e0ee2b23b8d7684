package heuristic

import (
	"strings"

	"hypoplan/domain/plan"
)

// Expected-outcome sentences.
const (
	OutcomeProfitability = "Expect to find statistically significant difference in profitability metrics."
	OutcomeCorrelation   = "Expect to find correlation coefficient with statistical significance."
	OutcomeDefault       = "Expect to find measurable difference in key metrics."
)

// NarrateOutcome picks the expected-outcome sentence. pattern is accepted for
// callers that will key on it later; the current cues only read the text.
func NarrateOutcome(text string, pattern plan.PatternType) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "more profitable"):
		return OutcomeProfitability
	case strings.Contains(lower, "correlat"):
		return OutcomeCorrelation
	default:
		return OutcomeDefault
	}
}
