package plan

import (
	"strings"

	"hypoplan/domain/core"
)

// StatisticalMethod names an analysis technique attached to a plan. Methods
// are never executed here.
type StatisticalMethod string

const (
	MethodTTest       StatisticalMethod = "t_test"
	MethodChiSquare   StatisticalMethod = "chi_square" // reserved, not selected by the rule mapping
	MethodANOVA       StatisticalMethod = "anova"      // reserved, not selected by the rule mapping
	MethodCorrelation StatisticalMethod = "correlation"
	MethodRegression  StatisticalMethod = "regression"
	MethodDescriptive StatisticalMethod = "descriptive"
)

// AllStatisticalMethods lists the declared methods in declaration order.
func AllStatisticalMethods() []StatisticalMethod {
	return []StatisticalMethod{
		MethodTTest,
		MethodChiSquare,
		MethodANOVA,
		MethodCorrelation,
		MethodRegression,
		MethodDescriptive,
	}
}

func (m StatisticalMethod) String() string { return string(m) }

// IsValid reports whether m is one of the declared methods.
func (m StatisticalMethod) IsValid() bool {
	for _, known := range AllStatisticalMethods() {
		if m == known {
			return true
		}
	}
	return false
}

// ParseStatisticalMethod parses a snake-case method tag. "t-test" and
// "T_TEST" are accepted as spellings of t_test.
func ParseStatisticalMethod(s string) (StatisticalMethod, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	m := StatisticalMethod(normalized)
	if !m.IsValid() {
		return "", core.NewUnknownMethodError(s)
	}
	return m, nil
}
