package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypoplan/domain/plan"
	"hypoplan/internal/config"
	"hypoplan/internal/container"
)

func ruleContainer(t *testing.T) *container.Container {
	t.Helper()
	c, err := container.New(&config.Config{
		Planner:  config.PlannerConfig{Mode: config.PlannerModeRules},
		SQL:      config.SQLConfig{Mode: config.SQLModeHeuristic, CacheSize: 8},
		LogLevel: "ERROR",
	})
	require.NoError(t, err)
	return c
}

func TestRunDeconstruct(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runDeconstruct(context.Background(), &out, ruleContainer(t), "Revenue is increasing over time", ""))

	var resp plan.DeconstructionResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, plan.PatternTrend, resp.PatternType)
	assert.Empty(t, resp.TestPlan.SQLQueries)
}

func TestRunPlan(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runPlan(context.Background(), &out, ruleContainer(t), "Revenue is higher than expected"))
	assert.Contains(t, out.String(), `"comparison_analysis"`)

	err := runPlan(context.Background(), &out, ruleContainer(t), " ")
	assert.Error(t, err)
}

func TestRunGenerateSQL(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runGenerateSQL(context.Background(), &out, ruleContainer(t), "anything", plan.Schema{"customers": {"id"}}))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "SELECT * FROM customers;", resp["sql"])
}

func TestRunAnalyze(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ds.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n3,x\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, runAnalyze(&out, path, 0))
	assert.Contains(t, out.String(), "Rows=2")
	assert.Contains(t, out.String(), "a:")
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range newRootCmd().Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"plan", "deconstruct", "generate-sql", "analyze"} {
		assert.True(t, names[want], want)
	}
}
