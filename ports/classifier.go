package ports

import "hypoplan/domain/plan"

// PatternClassifier assigns exactly one pattern type to hypothesis text.
type PatternClassifier interface {
	Classify(text string) plan.PatternType
}
