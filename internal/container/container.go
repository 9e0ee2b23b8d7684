package container

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"hypoplan/adapters/heuristic"
	"hypoplan/adapters/llm"
	"hypoplan/adapters/postgres"
	"hypoplan/app"
	"hypoplan/internal"
	"hypoplan/internal/config"
	"hypoplan/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB        *sqlx.DB
	LLMClient ports.LLMClient

	// Adapters
	Classifier   ports.PatternClassifier
	Composer     ports.PlanComposer
	SQLGenerator ports.SQLGenerator
	SQLGenName   string
	SchemaReader ports.SchemaReader

	// Services
	Deconstructor *app.Deconstructor
	Planner       *app.Planner
	SQLService    *app.SQLService
}

// New creates a new dependency injection container. An OpenAI-compatible
// client is created when any llm mode is configured.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	var client ports.LLMClient
	if cfg.NeedsLLM() {
		c, err := llm.NewClient(llmConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		client = c
	}
	return NewWithClient(cfg, client)
}

// NewWithClient builds the container around an existing LLM client, which
// may be nil when only rule-based modes are configured.
func NewWithClient(cfg *config.Config, client ports.LLMClient) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config:    cfg,
		Logger:    internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel)),
		LLMClient: client,
	}

	if err := c.initPlanner(); err != nil {
		return nil, fmt.Errorf("failed to initialize planner: %w", err)
	}
	if err := c.initSQL(); err != nil {
		return nil, fmt.Errorf("failed to initialize SQL generation: %w", err)
	}

	log.Printf("Container initialized (planner=%s, sql=%s)", c.Composer.Name(), c.SQLGenName)
	return c, nil
}

func llmConfig(cfg *config.Config) llm.Config {
	return llm.Config{
		Model:          cfg.LLM.Model,
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Temperature:    cfg.LLM.Temperature,
		MaxTokens:      cfg.LLM.MaxTokens,
		Timeout:        cfg.LLM.Timeout,
		MaxConcurrency: cfg.LLM.MaxConcurrency,
	}
}

// initPlanner selects the plan composer once
func (c *Container) initPlanner() error {
	c.Classifier = heuristic.NewClassifier()
	rules := heuristic.NewComposer()

	switch c.Config.Planner.Mode {
	case config.PlannerModeLLM:
		if c.LLMClient == nil {
			return fmt.Errorf("planner mode %q needs an LLM client", c.Config.Planner.Mode)
		}
		c.Composer = llm.NewComposer(llmConfig(c.Config), c.LLMClient, rules)
	default:
		c.Composer = rules
	}

	c.Deconstructor = app.NewDeconstructor(c.Classifier, c.Composer, c.Logger)
	c.Planner = app.NewPlanner(c.Deconstructor)
	return nil
}

// initSQL selects the SQL generator once
func (c *Container) initSQL() error {
	fallback := heuristic.NewSQLGenerator()

	switch c.Config.SQL.Mode {
	case config.SQLModeLLM:
		if c.LLMClient == nil {
			return fmt.Errorf("sql mode %q needs an LLM client", c.Config.SQL.Mode)
		}
		gen, err := llm.NewSQLGenerator(llmConfig(c.Config), c.LLMClient, fallback, c.Config.SQL.CacheSize)
		if err != nil {
			return err
		}
		c.SQLGenerator = gen
		c.SQLGenName = config.SQLModeLLM
	default:
		c.SQLGenerator = fallback
		c.SQLGenName = config.SQLModeHeuristic
	}

	c.SQLService = app.NewSQLService(c.SQLGenerator, c.SQLGenName, c.SchemaReader, c.Logger)
	return nil
}

// InitWithDatabase enables schema introspection for SQL generation
func (c *Container) InitWithDatabase(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.DB = db
	c.SchemaReader = postgres.NewSchemaReader(db)
	c.SQLService = app.NewSQLService(c.SQLGenerator, c.SQLGenName, c.SchemaReader, c.Logger)

	log.Printf("Container initialized with database connection")
	return nil
}

// Shutdown releases held resources
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
