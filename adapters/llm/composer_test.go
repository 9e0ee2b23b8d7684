package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypoplan/adapters/heuristic"
	"hypoplan/domain/core"
	"hypoplan/domain/plan"
	apperrors "hypoplan/internal/errors"
	"hypoplan/ports"
)

func testConfig() Config {
	return Config{Model: "test-model", MaxTokens: 400, MaxConcurrency: 2}
}

func TestComposerUsesModelAnswer(t *testing.T) {
	client := &MockLLMClient{}
	c := NewComposer(testConfig(), client, heuristic.NewComposer())

	p, err := c.Compose(context.Background(), ports.ComposeRequest{
		Hypothesis: "Test hypothesis",
		Pattern:    plan.PatternComparison,
	})
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, 1, client.Calls())
	assert.Equal(t, "Test hypothesis", p.Hypothesis)
	require.Len(t, p.SQLQueries, 1)
	assert.Equal(t, "ai_generated_query", p.SQLQueries[0].Name)
	assert.Equal(t, []plan.StatisticalMethod{plan.MethodTTest}, p.StatisticalMethods)
	assert.Equal(t, "AI-generated expected outcome", p.ExpectedOutcome)
	assert.Equal(t, plan.DefaultConfidenceThreshold, p.ConfidenceThreshold)
}

func TestComposerFallsBackOnClientError(t *testing.T) {
	client := &MockLLMClient{Error: fmt.Errorf("connection refused")}
	c := NewComposer(testConfig(), client, heuristic.NewComposer())

	p, err := c.Compose(context.Background(), ports.ComposeRequest{
		Hypothesis: "Customer satisfaction correlates with revenue",
		Pattern:    plan.PatternCorrelation,
	})
	require.NoError(t, err)
	assert.Equal(t, []plan.StatisticalMethod{plan.MethodCorrelation, plan.MethodRegression}, p.StatisticalMethods)
	assert.Equal(t, "correlation_analysis", p.SQLQueries[0].Name)
}

func TestComposerFallsBackOnUnusableAnswer(t *testing.T) {
	client := &MockLLMClient{Response: `{"statistical_methods": ["bayesian_magic"]}`}
	c := NewComposer(testConfig(), client, heuristic.NewComposer())

	p, err := c.Compose(context.Background(), ports.ComposeRequest{
		Hypothesis: "Revenue is increasing over time",
		Pattern:    plan.PatternTrend,
	})
	require.NoError(t, err)
	assert.Equal(t, []plan.StatisticalMethod{plan.MethodRegression, plan.MethodDescriptive}, p.StatisticalMethods)
}

func TestComposerWithoutFallbackReturnsError(t *testing.T) {
	c := NewComposer(testConfig(), &MockLLMClient{Response: "I cannot help with that"}, nil)

	p, err := c.Compose(context.Background(), ports.ComposeRequest{Hypothesis: "h", Pattern: plan.PatternGeneral})
	assert.Nil(t, p)
	assert.ErrorIs(t, err, core.ErrLLMOutput)
	assert.Equal(t, apperrors.CodeExternalService, apperrors.GetCode(err))
}

func TestComposerWithoutFallbackReportsBackendFailure(t *testing.T) {
	c := NewComposer(testConfig(), &MockLLMClient{Error: fmt.Errorf("connection reset")}, nil)

	_, err := c.Compose(context.Background(), ports.ComposeRequest{Hypothesis: "h", Pattern: plan.PatternGeneral})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrLLMUnavailable)
	assert.Equal(t, apperrors.CodeExternalService, apperrors.GetCode(err))
	assert.Contains(t, err.Error(), "llm service error")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestComposerInitialize(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, NewComposer(testConfig(), &MockLLMClient{}, heuristic.NewComposer()).Initialize(ctx))
	assert.ErrorIs(t, NewComposer(testConfig(), nil, nil).Initialize(ctx), core.ErrLLMUnavailable)
	assert.ErrorIs(t, NewComposer(Config{}, &MockLLMClient{}, nil).Initialize(ctx), core.ErrLLMUnavailable)
	assert.Equal(t, "llm", NewComposer(testConfig(), nil, nil).Name())
}

func TestComposerHonoursCancelledContext(t *testing.T) {
	cfg := testConfig()
	cfg.MaxConcurrency = 1
	client := &MockLLMClient{}
	c := NewComposer(cfg, client, nil)

	// Hold the only slot so the next acquire has to wait on ctx.
	require.NoError(t, c.sem.Acquire(context.Background(), 1))
	defer c.sem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Compose(ctx, ports.ComposeRequest{Hypothesis: "h", Pattern: plan.PatternGeneral})
	assert.ErrorIs(t, err, core.ErrLLMUnavailable)
	assert.Equal(t, 0, client.Calls())
}

func TestBuildPlanPrompt(t *testing.T) {
	schema := "Table: customers\n  - customer_id: INTEGER"
	prompt := BuildPlanPrompt("Test hypothesis", plan.PatternComparison, schema)

	assert.Contains(t, prompt, "Test hypothesis")
	assert.Contains(t, prompt, "comparison")
	assert.Contains(t, prompt, "JSON")
	assert.Contains(t, prompt, schema)
	assert.Contains(t, prompt, "chi_square")

	assert.NotContains(t, BuildPlanPrompt("h", plan.PatternGeneral, "  "), "Database Schema")
}
