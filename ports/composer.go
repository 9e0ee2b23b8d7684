package ports

import (
	"context"

	"hypoplan/domain/plan"
)

// ComposeRequest carries one classified hypothesis to a composer.
type ComposeRequest struct {
	Hypothesis    string           `json:"hypothesis"`
	Pattern       plan.PatternType `json:"pattern"`
	SchemaContext string           `json:"schema_context,omitempty"`
}

// PlanComposer turns a classified hypothesis into a test plan. A nil plan with
// a nil error means the composer produced nothing.
type PlanComposer interface {
	// Name identifies the composer in logs and health output ("rules" | "llm").
	Name() string

	// Initialize prepares any backing model. It must be safe to call more than once.
	Initialize(ctx context.Context) error

	Compose(ctx context.Context, req ComposeRequest) (*plan.TestPlan, error)
}
