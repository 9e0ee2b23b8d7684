package heuristic

import (
	"regexp"
	"strings"

	"hypoplan/domain/plan"
)

// PatternRule binds a pattern type to the expression that selects it.
type PatternRule struct {
	Pattern plan.PatternType
	Expr    *regexp.Regexp
}

// patternRules is evaluated top to bottom against lower-cased text; the first
// match wins. The order is part of the contract.
var patternRules = []PatternRule{
	{plan.PatternCorrelation, regexp.MustCompile(`correlat|relat|connect|associat`)},
	{plan.PatternTrend, regexp.MustCompile(`increas|decreas|grow|shrink|trend`)},
	{plan.PatternComparison, regexp.MustCompile(`(more|less|better|worse|higher|lower)\s+than`)},
	{plan.PatternSegment, regexp.MustCompile(`customers?\s+from\s+\w+`)},
	{plan.PatternPerformance, regexp.MustCompile(`perform|revenue|profit|sales`)},
}

// Rules returns a copy of the ordered rule table.
func Rules() []PatternRule {
	return append([]PatternRule(nil), patternRules...)
}

// Classifier assigns a pattern type to hypothesis text.
type Classifier struct{}

// NewClassifier creates a new pattern classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the first matching pattern, or general. Blank input is
// rejected by the caller, not here.
func (c *Classifier) Classify(text string) plan.PatternType {
	lower := strings.ToLower(text)
	for _, rule := range patternRules {
		if rule.Expr.MatchString(lower) {
			return rule.Pattern
		}
	}
	return plan.PatternGeneral
}
