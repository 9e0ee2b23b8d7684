package postgres

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"hypoplan/domain/plan"
	apperrors "hypoplan/internal/errors"
	"hypoplan/ports"
)

const columnsQuery = `SELECT table_name, column_name
	FROM information_schema.columns
	WHERE table_schema = $1
	ORDER BY table_name, ordinal_position`

// DefaultSchemaName is the Postgres schema that is introspected.
const DefaultSchemaName = "public"

// columnRow is one row of information_schema.columns
type columnRow struct {
	TableName  string `db:"table_name"`
	ColumnName string `db:"column_name"`
}

// schemaReader implements the SchemaReader interface
type schemaReader struct {
	db         *sqlx.DB
	schemaName string
}

// Open connects to Postgres using a lib/pq connection string
func Open(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to connect to database", err)
	}
	return db, nil
}

// NewSchemaReader creates a new schema reader over the public schema
func NewSchemaReader(db *sqlx.DB) ports.SchemaReader {
	return &schemaReader{db: db, schemaName: DefaultSchemaName}
}

// ReadSchema lists every table and its columns
func (r *schemaReader) ReadSchema(ctx context.Context) (plan.Schema, error) {
	var rows []columnRow
	if err := r.db.SelectContext(ctx, &rows, columnsQuery, r.schemaName); err != nil {
		return nil, apperrors.DatabaseError("failed to read schema", err)
	}

	schema := groupColumns(rows)
	log.Printf("[SchemaReader] Read %d tables from schema %s", len(schema), r.schemaName)
	return schema, nil
}

// groupColumns folds column rows into a table -> columns map, keeping the
// order the rows arrived in for each table.
func groupColumns(rows []columnRow) plan.Schema {
	schema := make(plan.Schema)
	for _, row := range rows {
		if row.TableName == "" || row.ColumnName == "" {
			continue
		}
		schema[row.TableName] = append(schema[row.TableName], row.ColumnName)
	}
	for table, cols := range schema {
		schema[table] = dedupe(cols)
	}
	return schema
}

func dedupe(cols []string) []string {
	seen := make(map[string]bool, len(cols))
	out := cols[:0]
	for _, c := range cols {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
