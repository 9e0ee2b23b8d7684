package llm

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/semaphore"

	"hypoplan/adapters/heuristic"
	"hypoplan/domain/core"
	"hypoplan/domain/plan"
	apperrors "hypoplan/internal/errors"
	"hypoplan/ports"
)

// ComposerName identifies the model-backed composer.
const ComposerName = "llm"

// Composer asks a language model for the plan and falls back to another
// composer whenever the model fails or answers with something unusable.
type Composer struct {
	config   Config
	client   ports.LLMClient
	fallback ports.PlanComposer
	sem      *semaphore.Weighted
}

var _ ports.PlanComposer = (*Composer)(nil)

// NewComposer creates a model-backed composer. fallback may be nil, in which
// case model failures surface as external service errors.
func NewComposer(config Config, client ports.LLMClient, fallback ports.PlanComposer) *Composer {
	return &Composer{
		config:   config,
		client:   client,
		fallback: fallback,
		sem:      semaphore.NewWeighted(config.concurrency()),
	}
}

// Name returns the composer identifier
func (c *Composer) Name() string { return ComposerName }

// Initialize checks the model backend is configured. Remote models need no
// local loading, so this does not call the model.
func (c *Composer) Initialize(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("%w: no client configured", core.ErrLLMUnavailable)
	}
	if c.config.Model == "" {
		return fmt.Errorf("%w: no model configured", core.ErrLLMUnavailable)
	}
	if c.fallback != nil {
		if err := c.fallback.Initialize(ctx); err != nil {
			return fmt.Errorf("fallback composer: %w", err)
		}
	}
	log.Printf("[LLMComposer] Using model %s", c.config.Model)
	return nil
}

// Compose builds the plan from the model answer.
func (c *Composer) Compose(ctx context.Context, req ports.ComposeRequest) (*plan.TestPlan, error) {
	p, err := c.composeWithModel(ctx, req)
	if err == nil {
		return p, nil
	}
	if c.fallback == nil {
		return nil, apperrors.ExternalServiceError("llm", err)
	}
	log.Printf("[LLMComposer] Falling back to %s composer: %v", c.fallback.Name(), err)
	return c.fallback.Compose(ctx, req)
}

func (c *Composer) composeWithModel(ctx context.Context, req ports.ComposeRequest) (*plan.TestPlan, error) {
	if c.client == nil {
		return nil, core.ErrLLMUnavailable
	}

	prompt := BuildPlanPrompt(req.Hypothesis, req.Pattern, req.SchemaContext)

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrLLMUnavailable, err)
	}
	resp, err := c.client.ChatCompletionWithUsage(ctx, c.config.Model, prompt, c.config.MaxTokens)
	c.sem.Release(1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrLLMUnavailable, err)
	}
	if u := resp.Usage; u != nil {
		log.Printf("[LLMComposer] %s/%s used %d tokens (prompt=%d, completion=%d)",
			u.Provider, u.Model, u.TotalTokens, u.PromptTokens, u.CompletionTokens)
	}

	return ParsePlanOutput(resp.Content, req.Hypothesis, heuristic.NarrateOutcome(req.Hypothesis, req.Pattern))
}
