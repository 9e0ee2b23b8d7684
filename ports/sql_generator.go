package ports

import (
	"context"

	"hypoplan/domain/plan"
)

// SQLGenerator produces a single SQL statement from a free-text request.
type SQLGenerator interface {
	Generate(ctx context.Context, prompt string, schema plan.Schema) (string, error)
}

// SchemaReader loads table/column names from a live database.
type SchemaReader interface {
	ReadSchema(ctx context.Context) (plan.Schema, error)
}
