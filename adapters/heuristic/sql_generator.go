package heuristic

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"hypoplan/domain/plan"
	"hypoplan/ports"
)

// PlaceholderTable stands in for a table name when nothing better is known.
const PlaceholderTable = "tbl_placeholder"

var identifierExpr = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SQLGenerator answers SQL requests with keyword rules. It is the fallback
// behind the model-backed generator and never fails.
type SQLGenerator struct{}

// NewSQLGenerator creates a new heuristic SQL generator
func NewSQLGenerator() *SQLGenerator {
	return &SQLGenerator{}
}

var _ ports.SQLGenerator = (*SQLGenerator)(nil)

// Generate returns a COUNT query when the prompt asks for a count, otherwise a
// full select over the first table of schema (sorted), otherwise the
// placeholder select. Table names that are not plain identifiers are ignored.
func (g *SQLGenerator) Generate(ctx context.Context, prompt string, schema plan.Schema) (string, error) {
	base := fmt.Sprintf("SELECT * FROM %s;", PlaceholderTable)
	if prompt == "" {
		return base, nil
	}
	if strings.Contains(strings.ToLower(prompt), "count") {
		return fmt.Sprintf("SELECT COUNT(*) AS count FROM %s;", PlaceholderTable), nil
	}
	if tables := schema.Tables(); len(tables) > 0 && identifierExpr.MatchString(tables[0]) {
		return fmt.Sprintf("SELECT * FROM %s;", tables[0]), nil
	}
	return base, nil
}
