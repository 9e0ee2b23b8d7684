package heuristic

import "hypoplan/domain/plan"

const comparisonSQL = `SELECT
    state,
    COUNT(*) AS customer_count,
    AVG(revenue) AS avg_revenue,
    SUM(revenue) AS total_revenue
FROM customer_sales_data
WHERE state IN ('California', 'New York')
GROUP BY state
ORDER BY avg_revenue DESC`

const correlationSQL = `SELECT
    customer_id,
    customer_segment,
    revenue,
    order_frequency,
    customer_lifetime_value
FROM customer_metrics
WHERE revenue IS NOT NULL
ORDER BY revenue DESC`

// Query names.
const (
	QueryComparisonAnalysis  = "comparison_analysis"
	QueryCorrelationAnalysis = "correlation_analysis"
)

// ComposeQueries maps a pattern to its canned probe queries. Entities are not
// consulted yet. Templates are fixed text and never interpolate input.
//
// trend, performance and general have no template and yield an empty list.
func ComposeQueries(entities plan.EntityBag, pattern plan.PatternType) []plan.SQLQuery {
	switch pattern {
	case plan.PatternComparison, plan.PatternSegment:
		return []plan.SQLQuery{{Name: QueryComparisonAnalysis, SQL: comparisonSQL}}
	case plan.PatternCorrelation:
		return []plan.SQLQuery{{Name: QueryCorrelationAnalysis, SQL: correlationSQL}}
	default:
		return []plan.SQLQuery{}
	}
}
