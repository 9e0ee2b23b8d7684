package plan

import (
	"fmt"
	"sort"
	"strings"
)

// Schema maps table names to their column names.
type Schema map[string][]string

// Tables returns the table names in sorted order.
func (s Schema) Tables() []string {
	tables := make([]string, 0, len(s))
	for name := range s {
		tables = append(tables, name)
	}
	sort.Strings(tables)
	return tables
}

// IsEmpty reports whether the schema names no tables.
func (s Schema) IsEmpty() bool {
	return len(s) == 0
}

// Context renders the schema as the plain-text block handed to model prompts.
func (s Schema) Context() string {
	if s.IsEmpty() {
		return ""
	}
	var b strings.Builder
	b.WriteString("Database Schema:\n")
	for _, table := range s.Tables() {
		fmt.Fprintf(&b, "Table: %s\n", table)
		for _, col := range s[table] {
			fmt.Fprintf(&b, "  - %s\n", col)
		}
	}
	return b.String()
}
