package app

import (
	"context"

	"hypoplan/domain/core"
	"hypoplan/domain/plan"
	apperrors "hypoplan/internal/errors"
)

// Step types of a rendered plan
const (
	StepTypeSQL  = "sql"
	StepTypeStat = "stat"
)

// PlanStep is one executable step of a rendered plan
type PlanStep struct {
	Type   string                 `json:"type"`
	Name   string                 `json:"name,omitempty"`
	SQL    string                 `json:"sql,omitempty"`
	Method plan.StatisticalMethod `json:"method,omitempty"`
}

// PlanResult is the step list handed to the transport layer
type PlanResult struct {
	Prompt      string           `json:"prompt"`
	PatternType plan.PatternType `json:"pattern_type"`
	Steps       []PlanStep       `json:"steps"`
	TestPlan    *plan.TestPlan   `json:"test_plan"`
}

// Planner renders deconstructions as ordered steps: queries first, then
// statistical methods.
type Planner struct {
	deconstructor *Deconstructor
}

// NewPlanner creates a planner over the engine
func NewPlanner(deconstructor *Deconstructor) *Planner {
	return &Planner{deconstructor: deconstructor}
}

// Plan deconstructs the prompt. Failure envelopes come back as an AppError
// whose code is the envelope's error.
func (p *Planner) Plan(ctx context.Context, prompt string) (*PlanResult, error) {
	resp := p.deconstructor.Deconstruct(ctx, prompt, "")
	if !resp.Success {
		switch resp.Error {
		case apperrors.CodeEmptyHypothesis:
			return nil, &apperrors.AppError{Code: resp.Error, Message: resp.Message, Cause: core.ErrEmptyHypothesis}
		case apperrors.CodeGenerationFailed:
			return nil, &apperrors.AppError{Code: resp.Error, Message: resp.Message, Cause: core.ErrGenerationFailed}
		default:
			return nil, apperrors.InternalError(resp.Message + ": " + resp.Error)
		}
	}

	tp := resp.TestPlan
	steps := make([]PlanStep, 0, len(tp.SQLQueries)+len(tp.StatisticalMethods))
	for _, q := range tp.SQLQueries {
		steps = append(steps, PlanStep{Type: StepTypeSQL, Name: q.Name, SQL: q.SQL})
	}
	for _, m := range tp.StatisticalMethods {
		steps = append(steps, PlanStep{Type: StepTypeStat, Method: m})
	}

	return &PlanResult{
		Prompt:      tp.Hypothesis,
		PatternType: resp.PatternType,
		Steps:       steps,
		TestPlan:    tp.Clone(),
	}, nil
}
