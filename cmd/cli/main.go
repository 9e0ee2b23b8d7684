package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"hypoplan/adapters/excel"
	"hypoplan/domain/plan"
	"hypoplan/internal/config"
	"hypoplan/internal/container"
	"hypoplan/internal/profiling"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "hypoplan",
		Short:        "Turn business hypotheses into statistical test plans",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newPlanCmd(),
		newDeconstructCmd(),
		newGenerateSQLCmd(),
		newAnalyzeCmd(),
	)
	return rootCmd
}

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan [hypothesis]",
		Short: "Render a hypothesis as ordered SQL and statistics steps",
		Long: `Deconstruct a hypothesis and print the step list as JSON.

Composer selection is controlled by PLANNER_MODE=rules|llm (default: rules).

Example: hypoplan plan "Revenue is higher than expected"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer()
			if err != nil {
				return err
			}
			return runPlan(cmd.Context(), cmd.OutOrStdout(), c, args[0])
		},
	}
}

func newDeconstructCmd() *cobra.Command {
	var schemaFile string

	cmd := &cobra.Command{
		Use:   "deconstruct [hypothesis]",
		Short: "Print the full deconstruction envelope",
		Long: `Deconstruct a hypothesis and print the response envelope as JSON.

The optional schema file is passed to the composer as free text.

Example: hypoplan deconstruct "Customer satisfaction correlates with revenue" --schema-file schema.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaContext := ""
			if schemaFile != "" {
				raw, err := os.ReadFile(schemaFile)
				if err != nil {
					return fmt.Errorf("failed to read schema file: %w", err)
				}
				schemaContext = string(raw)
			}

			c, err := loadContainer()
			if err != nil {
				return err
			}
			return runDeconstruct(cmd.Context(), cmd.OutOrStdout(), c, args[0], schemaContext)
		},
	}

	cmd.Flags().StringVar(&schemaFile, "schema-file", "", "File with schema context for the composer")
	return cmd
}

func newGenerateSQLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-sql [prompt] [schema-json]",
		Short: "Generate a SQL statement from a free-text request",
		Long: `Generate one SQL statement. The optional schema is a JSON object mapping
table names to column lists.

Example: hypoplan generate-sql "list customers" '{"customers": ["id", "name"]}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var schema plan.Schema
			if len(args) == 2 {
				if err := json.Unmarshal([]byte(args[1]), &schema); err != nil {
					return fmt.Errorf("invalid schema JSON: %w", err)
				}
			}

			c, err := loadContainer()
			if err != nil {
				return err
			}
			return runGenerateSQL(cmd.Context(), cmd.OutOrStdout(), c, args[0], schema)
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	var maxRows int

	cmd := &cobra.Command{
		Use:   "analyze [file.xlsx|file.csv]",
		Short: "Summarize a spreadsheet or CSV sample",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.OutOrStdout(), args[0], maxRows)
		},
	}

	cmd.Flags().IntVar(&maxRows, "max-rows", 0, "Data rows to read (0 = all)")
	return cmd
}

func loadContainer() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return container.New(cfg)
}

func runPlan(ctx context.Context, w io.Writer, c *container.Container, hypothesis string) error {
	result, err := c.Planner.Plan(ctx, hypothesis)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{"plan": result})
}

func runDeconstruct(ctx context.Context, w io.Writer, c *container.Container, hypothesis, schemaContext string) error {
	c.Deconstructor.InitializeModel(ctx)
	return writeJSON(w, c.Deconstructor.Deconstruct(ctx, hypothesis, schemaContext))
}

func runGenerateSQL(ctx context.Context, w io.Writer, c *container.Container, prompt string, schema plan.Schema) error {
	sql, err := c.SQLService.Generate(ctx, prompt, schema)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"sql": sql})
}

func runAnalyze(w io.Writer, path string, maxRows int) error {
	data, err := excel.NewDataReader(path, excel.ReaderConfig{MaxRows: maxRows}).ReadData()
	if err != nil {
		return err
	}
	summary := profiling.Summarize(data.Name, data.Headers, data.Rows)
	return writeJSON(w, map[string]any{
		"insights": summary.Insights(),
		"summary":  summary,
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
