package profiling

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardInsights(t *testing.T) {
	var req struct {
		Widgets []Widget              `json:"widgets"`
		Sources map[string]DataSource `json:"sources"`
	}
	body := `{
		"widgets": [{"type": "bar", "dataSource": "ds1"}, {"type": "kpi", "dataSource": "ds1"}],
		"sources": {"ds1": {"cols": ["x", "y"], "rows": [["A", 1], ["B", 2]]}}
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	insights := DashboardInsights(req.Widgets, req.Sources)

	assert.True(t, strings.HasPrefix(insights, "Dashboard has 2 widgets across 1 data sources."))
	assert.Contains(t, strings.ToLower(insights), "widgets")
	assert.Contains(t, insights, "Widget types: bar=1, kpi=1.")
	assert.Contains(t, insights, "Source ds1: Rows=2; Columns=2; x: categorical n=2 unique=2 top=A; y: numeric n=2 mean=1.5")
	assert.NotContains(t, insights, "unknown sources")
}

func TestDashboardInsightsUnknownSources(t *testing.T) {
	widgets := []Widget{
		{Type: "bar", DataSource: "missing"},
		{Type: "line", DataSource: "missing"},
		{Type: "", DataSource: "other"},
		{Type: "kpi"},
	}

	insights := DashboardInsights(widgets, nil)

	assert.True(t, strings.HasPrefix(insights, "Dashboard has 4 widgets across 0 data sources."))
	assert.Contains(t, insights, "unknown=1")
	assert.Contains(t, insights, "Widgets reference unknown sources: missing, other.")
}

func TestDashboardInsightsEmpty(t *testing.T) {
	assert.Equal(t, "Dashboard has 0 widgets across 0 data sources.", DashboardInsights(nil, nil))
}
