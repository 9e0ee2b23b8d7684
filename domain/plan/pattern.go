package plan

import (
	"strings"

	"hypoplan/domain/core"
)

// PatternType is the closed category assigned to a hypothesis.
type PatternType string

const (
	PatternCorrelation PatternType = "correlation"
	PatternTrend       PatternType = "trend"
	PatternComparison  PatternType = "comparison"
	PatternSegment     PatternType = "segment"
	PatternPerformance PatternType = "performance"
	PatternGeneral     PatternType = "general"
)

// AllPatternTypes lists every pattern in classifier priority order, with the
// fallback last.
func AllPatternTypes() []PatternType {
	return []PatternType{
		PatternCorrelation,
		PatternTrend,
		PatternComparison,
		PatternSegment,
		PatternPerformance,
		PatternGeneral,
	}
}

func (p PatternType) String() string { return string(p) }

// IsValid reports whether p is one of the declared pattern types.
func (p PatternType) IsValid() bool {
	for _, known := range AllPatternTypes() {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePatternType parses a pattern tag, case-insensitively.
func ParsePatternType(s string) (PatternType, error) {
	p := PatternType(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", core.NewUnknownPatternError(s)
	}
	return p, nil
}
