package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/semaphore"

	"hypoplan/domain/core"
	"hypoplan/domain/plan"
	"hypoplan/ports"
)

// SQLGenerator asks a model for SQL on a best-effort basis. Answers are cached
// by prompt hash; failures and empty answers go to the fallback generator.
type SQLGenerator struct {
	config   Config
	client   ports.LLMClient
	fallback ports.SQLGenerator
	cache    *lru.Cache[core.Hash, string]
	sem      *semaphore.Weighted
}

var _ ports.SQLGenerator = (*SQLGenerator)(nil)

// NewSQLGenerator creates a model-backed SQL generator
func NewSQLGenerator(config Config, client ports.LLMClient, fallback ports.SQLGenerator, cacheSize int) (*SQLGenerator, error) {
	if fallback == nil {
		return nil, fmt.Errorf("fallback SQL generator is required")
	}
	if cacheSize <= 0 {
		cacheSize = 256
	}
	cache, err := lru.New[core.Hash, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQL cache: %w", err)
	}
	return &SQLGenerator{
		config:   config,
		client:   client,
		fallback: fallback,
		cache:    cache,
		sem:      semaphore.NewWeighted(config.concurrency()),
	}, nil
}

// Generate returns model SQL when available, else the fallback's answer.
func (g *SQLGenerator) Generate(ctx context.Context, prompt string, schema plan.Schema) (string, error) {
	if strings.TrimSpace(prompt) == "" || g.client == nil {
		return g.fallback.Generate(ctx, prompt, schema)
	}

	key := core.ComputePromptHash(prompt, schema)
	if sql, ok := g.cache.Get(key); ok {
		return sql, nil
	}

	sql, err := g.generateWithModel(ctx, prompt, schema)
	if err != nil || sql == "" {
		log.Printf("[LLMSQLGenerator] Using heuristic SQL for %s: %v", key.Short(), err)
		return g.fallback.Generate(ctx, prompt, schema)
	}

	g.cache.Add(key, sql)
	return sql, nil
}

// CacheLen reports how many answers are cached.
func (g *SQLGenerator) CacheLen() int {
	return g.cache.Len()
}

func (g *SQLGenerator) generateWithModel(ctx context.Context, prompt string, schema plan.Schema) (string, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer g.sem.Release(1)

	output, err := g.client.ChatCompletion(ctx, g.config.Model, BuildSQLPrompt(prompt, schema), 128)
	if err != nil {
		return "", err
	}
	return CleanSQLOutput(output), nil
}
