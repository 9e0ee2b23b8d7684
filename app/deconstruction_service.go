package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"hypoplan/domain/plan"
	"hypoplan/internal"
	apperrors "hypoplan/internal/errors"
	"hypoplan/internal/metrics"
	"hypoplan/ports"
)

// LifecycleState is the readiness of the engine
type LifecycleState int32

const (
	StateUninitialized LifecycleState = iota
	StateReady
)

func (s LifecycleState) String() string {
	switch s {
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Deconstructor is the single deconstruction engine. It classifies the
// hypothesis, hands it to the configured composer and wraps the outcome in a
// DeconstructionResponse. It never returns an error or panics to the caller.
type Deconstructor struct {
	classifier ports.PatternClassifier
	composer   ports.PlanComposer
	logger     *internal.Logger

	state  atomic.Int32
	initMu sync.Mutex
}

// NewDeconstructor creates the engine in the uninitialized state
func NewDeconstructor(classifier ports.PatternClassifier, composer ports.PlanComposer, logger *internal.Logger) *Deconstructor {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Deconstructor{
		classifier: classifier,
		composer:   composer,
		logger:     logger.WithComponent("Deconstructor"),
	}
}

// ComposerName reports which composer backs the engine
func (d *Deconstructor) ComposerName() string {
	return d.composer.Name()
}

// State returns the current lifecycle state
func (d *Deconstructor) State() LifecycleState {
	return LifecycleState(d.state.Load())
}

// Ready reports whether InitializeModel has succeeded
func (d *Deconstructor) Ready() bool {
	return d.State() == StateReady
}

// InitializeModel moves the engine to Ready. The composer is initialized at
// most once successfully; later calls return true without touching it.
func (d *Deconstructor) InitializeModel(ctx context.Context) bool {
	if d.Ready() {
		return true
	}

	d.initMu.Lock()
	defer d.initMu.Unlock()
	if d.Ready() {
		return true
	}

	if err := d.composer.Initialize(ctx); err != nil {
		d.logger.Error("Failed to initialize %s composer: %v", d.composer.Name(), err)
		return false
	}
	d.state.Store(int32(StateReady))
	d.logger.Info("Engine ready (composer=%s)", d.composer.Name())
	return true
}

// Deconstruct turns hypothesis text into a test plan envelope.
func (d *Deconstructor) Deconstruct(ctx context.Context, hypothesis string, schemaContext string) (resp *plan.DeconstructionResponse) {
	start := time.Now()
	text := strings.TrimSpace(hypothesis)
	if text == "" {
		metrics.ObserveDeconstruct(d.composer.Name(), metrics.ResultEmpty, "", time.Since(start))
		return &plan.DeconstructionResponse{
			Success: false,
			Message: plan.MessageEmpty,
			Error:   apperrors.CodeEmptyHypothesis,
		}
	}

	var pattern plan.PatternType
	result := metrics.ResultError
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Recovered from panic during deconstruction: %v", r)
			resp = internalErrorResponse(fmt.Sprint(r))
			result = metrics.ResultError
		}
		metrics.ObserveDeconstruct(d.composer.Name(), result, string(pattern), time.Since(start))
	}()

	pattern = d.classifier.Classify(text)
	d.logger.Debug("Classified %q as %s", text, pattern)

	testPlan, err := d.composer.Compose(ctx, ports.ComposeRequest{
		Hypothesis:    text,
		Pattern:       pattern,
		SchemaContext: schemaContext,
	})
	if err != nil {
		d.logger.Error("Composer %s failed: %v", d.composer.Name(), err)
		return internalErrorResponse(err.Error())
	}
	if testPlan == nil {
		result = metrics.ResultFailed
		return &plan.DeconstructionResponse{
			Success: false,
			Message: plan.MessageGenerationErr,
			Error:   apperrors.CodeGenerationFailed,
		}
	}

	result = metrics.ResultSuccess
	d.logger.Debug("Plan %s for %s pattern, methods=%v", testPlan.Fingerprint().Short(), pattern, testPlan.MethodTags())
	d.logger.Trace("Plan %s requires %v with %d queries", testPlan.Fingerprint().Short(), testPlan.RequiredData, len(testPlan.SQLQueries))
	return &plan.DeconstructionResponse{
		Success:     true,
		TestPlan:    testPlan,
		Message:     plan.MessageSuccess,
		Confidence:  plan.DefaultConfidence,
		PatternType: pattern,
	}
}

func internalErrorResponse(description string) *plan.DeconstructionResponse {
	return &plan.DeconstructionResponse{
		Success: false,
		Message: plan.MessageInternalErr,
		Error:   description,
	}
}
