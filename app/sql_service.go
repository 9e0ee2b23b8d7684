package app

import (
	"context"

	"hypoplan/domain/plan"
	"hypoplan/internal"
	"hypoplan/internal/metrics"
	"hypoplan/ports"
)

// SQLService answers free-text SQL requests, reading the schema from the
// database when the caller sends none.
type SQLService struct {
	generator     ports.SQLGenerator
	generatorName string
	schemaReader  ports.SchemaReader
	logger        *internal.Logger
}

// NewSQLService creates a SQL service. schemaReader may be nil.
func NewSQLService(generator ports.SQLGenerator, generatorName string, schemaReader ports.SchemaReader, logger *internal.Logger) *SQLService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SQLService{
		generator:     generator,
		generatorName: generatorName,
		schemaReader:  schemaReader,
		logger:        logger.WithComponent("SQLService"),
	}
}

// Generate returns one SQL statement for prompt
func (s *SQLService) Generate(ctx context.Context, prompt string, schema plan.Schema) (string, error) {
	if schema.IsEmpty() && s.schemaReader != nil {
		live, err := s.schemaReader.ReadSchema(ctx)
		if err != nil {
			s.logger.Warn("Schema introspection failed, continuing without schema: %v", err)
		} else {
			schema = live
		}
	}

	sql, err := s.generator.Generate(ctx, prompt, schema)
	if err != nil {
		return "", err
	}
	metrics.ObserveSQLGenerate(s.generatorName)
	return sql, nil
}
