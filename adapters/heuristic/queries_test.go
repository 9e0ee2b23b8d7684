package heuristic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypoplan/domain/plan"
)

func TestComposeQueriesComparison(t *testing.T) {
	entities := plan.EntityBag{
		Metrics:     []string{"revenue"},
		Dimensions:  []string{"customer", "state"},
		Comparisons: []string{"geographic"},
		DataSources: []string{"customer_data", "sales_data"},
	}

	for _, pattern := range []plan.PatternType{plan.PatternComparison, plan.PatternSegment} {
		queries := ComposeQueries(entities, pattern)
		require.Len(t, queries, 1)
		assert.Equal(t, "comparison_analysis", queries[0].Name)

		sql := strings.ToUpper(queries[0].SQL)
		assert.Contains(t, sql, "SELECT")
		assert.Contains(t, sql, "FROM CUSTOMER_SALES_DATA")
		assert.Contains(t, sql, "GROUP BY STATE")
		assert.Contains(t, sql, "ORDER BY AVG_REVENUE DESC")
		assert.Contains(t, queries[0].SQL, "'California', 'New York'")
	}
}

func TestComposeQueriesCorrelation(t *testing.T) {
	queries := ComposeQueries(plan.NewEntityBag(), plan.PatternCorrelation)
	require.Len(t, queries, 1)
	assert.Equal(t, "correlation_analysis", queries[0].Name)
	assert.Contains(t, queries[0].SQL, "FROM customer_metrics")
	assert.Contains(t, queries[0].SQL, "WHERE revenue IS NOT NULL")
}

// trend, performance and general have no query template. This is the current
// mapping, kept as-is until someone decides those patterns need probes.
func TestComposeQueriesNoTemplateGap(t *testing.T) {
	for _, pattern := range []plan.PatternType{plan.PatternTrend, plan.PatternPerformance, plan.PatternGeneral} {
		queries := ComposeQueries(plan.NewEntityBag(), pattern)
		assert.NotNil(t, queries, pattern)
		assert.Empty(t, queries, pattern)
	}
}

func TestComposeQueriesIgnoresEntities(t *testing.T) {
	withEntities := ComposeQueries(ExtractEntities("customers from California'; DROP TABLE x; --"), plan.PatternSegment)
	without := ComposeQueries(plan.NewEntityBag(), plan.PatternSegment)
	assert.Equal(t, without, withEntities)
	assert.NotContains(t, withEntities[0].SQL, "DROP")
}
