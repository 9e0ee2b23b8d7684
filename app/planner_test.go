package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hypoplan/adapters/heuristic"
	"hypoplan/domain/core"
	"hypoplan/domain/plan"
	apperrors "hypoplan/internal/errors"
)

func TestPlannerRendersSteps(t *testing.T) {
	p := NewPlanner(newRuleEngine())

	result, err := p.Plan(context.Background(), "Revenue is higher than expected")
	require.NoError(t, err)

	assert.Equal(t, "Revenue is higher than expected", result.Prompt)
	assert.Equal(t, plan.PatternComparison, result.PatternType)
	require.Len(t, result.Steps, 3)
	assert.Equal(t, StepTypeSQL, result.Steps[0].Type)
	assert.Equal(t, "comparison_analysis", result.Steps[0].Name)
	assert.Contains(t, result.Steps[0].SQL, "FROM customer_sales_data")
	assert.Equal(t, PlanStep{Type: StepTypeStat, Method: plan.MethodTTest}, result.Steps[1])
	assert.Equal(t, PlanStep{Type: StepTypeStat, Method: plan.MethodDescriptive}, result.Steps[2])
	assert.Equal(t, result.TestPlan.StatisticalMethods, []plan.StatisticalMethod{plan.MethodTTest, plan.MethodDescriptive})
}

func TestPlannerStatOnlyPlan(t *testing.T) {
	result, err := NewPlanner(newRuleEngine()).Plan(context.Background(), "Some random business question")
	require.NoError(t, err)
	assert.Equal(t, []PlanStep{{Type: StepTypeStat, Method: plan.MethodDescriptive}}, result.Steps)
}

func TestPlannerErrors(t *testing.T) {
	_, err := NewPlanner(newRuleEngine()).Plan(context.Background(), "  ")
	assert.Equal(t, apperrors.CodeEmptyHypothesis, apperrors.GetCode(err))
	assert.ErrorIs(t, err, core.ErrEmptyHypothesis)

	nilComposer := &mockComposer{}
	nilComposer.On("Compose", mock.Anything, mock.Anything).Return(nil, nil)
	_, err = NewPlanner(NewDeconstructor(heuristic.NewClassifier(), nilComposer, nil)).Plan(context.Background(), "x")
	assert.Equal(t, apperrors.CodeGenerationFailed, apperrors.GetCode(err))
	assert.True(t, core.IsGenerationError(err))

	failing := &mockComposer{}
	failing.On("Compose", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("boom"))
	_, err = NewPlanner(NewDeconstructor(heuristic.NewClassifier(), failing, nil)).Plan(context.Background(), "x")
	assert.Equal(t, apperrors.CodeInternalError, apperrors.GetCode(err))
	assert.Contains(t, err.Error(), "boom")
}
