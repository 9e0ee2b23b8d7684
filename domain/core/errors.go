package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrEmptyHypothesis = errors.New("empty hypothesis")

	// Closed-set errors
	ErrUnknownPattern = errors.New("unknown pattern type")
	ErrUnknownMethod  = errors.New("unknown statistical method")

	// Generation errors
	ErrGenerationFailed = errors.New("test plan generation failed")
	ErrLLMUnavailable   = errors.New("llm backend unavailable")
	ErrLLMOutput        = errors.New("llm output could not be parsed")
)

// Error constructors with context
func NewUnknownPatternError(value string) error {
	return fmt.Errorf("%w: %q", ErrUnknownPattern, value)
}

func NewUnknownMethodError(value string) error {
	return fmt.Errorf("%w: %q", ErrUnknownMethod, value)
}

func NewLLMOutputError(reason string) error {
	return fmt.Errorf("%w: %s", ErrLLMOutput, reason)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyHypothesis)
}

func IsClosedSetError(err error) bool {
	return errors.Is(err, ErrUnknownPattern) ||
		errors.Is(err, ErrUnknownMethod)
}

func IsGenerationError(err error) bool {
	return errors.Is(err, ErrGenerationFailed) ||
		errors.Is(err, ErrLLMUnavailable) ||
		errors.Is(err, ErrLLMOutput)
}
