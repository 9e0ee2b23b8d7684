package heuristic

import (
	"context"
	"log"

	"hypoplan/domain/plan"
	"hypoplan/ports"
)

// ComposerName identifies the rule-based composer.
const ComposerName = "rules"

// Composer builds test plans from the static rule tables. It is always
// available and has no model to load.
type Composer struct{}

// NewComposer creates a new rule-based plan composer
func NewComposer() *Composer {
	return &Composer{}
}

var _ ports.PlanComposer = (*Composer)(nil)

// Name returns the composer identifier
func (c *Composer) Name() string { return ComposerName }

// Initialize has nothing to load.
func (c *Composer) Initialize(ctx context.Context) error {
	log.Printf("[RuleComposer] No model to load, using rule tables")
	return nil
}

// Compose runs entity extraction, query composition, method selection and
// outcome narration for an already classified hypothesis.
func (c *Composer) Compose(ctx context.Context, req ports.ComposeRequest) (*plan.TestPlan, error) {
	entities := ExtractEntities(req.Hypothesis)
	queries := ComposeQueries(entities, req.Pattern)
	methods := SelectMethods(req.Pattern)
	outcome := NarrateOutcome(req.Hypothesis, req.Pattern)

	requiredData := entities.DataSources
	if len(requiredData) == 0 {
		requiredData = plan.DefaultRequiredData()
	}

	return plan.NewTestPlan(req.Hypothesis, requiredData, queries, methods, outcome), nil
}
