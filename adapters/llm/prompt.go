package llm

import (
	"fmt"
	"strings"

	"hypoplan/domain/plan"
)

// BuildPlanPrompt asks the model for a JSON test plan.
func BuildPlanPrompt(hypothesis string, pattern plan.PatternType, schemaContext string) string {
	var b strings.Builder
	b.WriteString("Analyze this business hypothesis and create a test plan.\n\n")
	fmt.Fprintf(&b, "Hypothesis: %s\n", hypothesis)
	fmt.Fprintf(&b, "Pattern Type: %s\n\n", pattern)
	b.WriteString("Generate:\n")
	b.WriteString("1. Required data sources\n")
	b.WriteString("2. SQL queries needed\n")
	b.WriteString("3. Statistical methods\n")
	b.WriteString("4. Expected outcome\n\n")
	b.WriteString("Response format: JSON object with keys required_data (array of strings), ")
	b.WriteString("sql_queries (array of {name, sql}), statistical_methods (array drawn from ")
	b.WriteString(strings.Join(methodTags(), ", "))
	b.WriteString("), expected_outcome (string). Output only the JSON object.\n")

	if strings.TrimSpace(schemaContext) != "" {
		b.WriteString("\nDatabase Schema:\n")
		b.WriteString(schemaContext)
		b.WriteString("\n")
	}
	return b.String()
}

// BuildSQLPrompt asks the model for a single SQL statement.
func BuildSQLPrompt(prompt string, schema plan.Schema) string {
	var b strings.Builder
	b.WriteString("You are a SQL generator. Given user intent and schema, output only SQL.\n")
	if ctx := schema.Context(); ctx != "" {
		b.WriteString(ctx)
	}
	fmt.Fprintf(&b, "User: %s\nSQL:", prompt)
	return b.String()
}

func methodTags() []string {
	all := plan.AllStatisticalMethods()
	tags := make([]string, len(all))
	for i, m := range all {
		tags[i] = m.String()
	}
	return tags
}
