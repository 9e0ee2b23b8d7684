package heuristic

import "hypoplan/domain/plan"

var methodTable = map[plan.PatternType][]plan.StatisticalMethod{
	plan.PatternComparison:  {plan.MethodTTest, plan.MethodDescriptive},
	plan.PatternSegment:     {plan.MethodTTest, plan.MethodDescriptive},
	plan.PatternCorrelation: {plan.MethodCorrelation, plan.MethodRegression},
	plan.PatternTrend:       {plan.MethodRegression, plan.MethodDescriptive},
	plan.PatternPerformance: {plan.MethodDescriptive},
	plan.PatternGeneral:     {plan.MethodDescriptive},
}

// SelectMethods returns a fresh copy of the methods for pattern. Patterns
// outside the table fall back to descriptive, so the result is never empty.
func SelectMethods(pattern plan.PatternType) []plan.StatisticalMethod {
	methods, ok := methodTable[pattern]
	if !ok {
		methods = methodTable[plan.PatternGeneral]
	}
	return append([]plan.StatisticalMethod(nil), methods...)
}
