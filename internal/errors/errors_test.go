package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := EmptyHypothesis("Empty hypothesis provided")
	wrapped := Wrap(base, "plan request failed")

	assert.Equal(t, CodeEmptyHypothesis, GetCode(wrapped))
	assert.Equal(t, "plan request failed: Empty hypothesis provided", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrapPlainError(t *testing.T) {
	err := Wrapf(fmt.Errorf("boom"), "step %d", 3)
	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.Equal(t, "step 3: boom", err.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestGetCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", GenerationFailed("no plan"))
	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeGenerationFailed, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestWithCode(t *testing.T) {
	plain := fmt.Errorf("bad json")
	err := WithCode(CodeInvalidInput, plain)
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, "bad json", err.Error())
	assert.True(t, stderrors.Is(err, plain))
	assert.Nil(t, WithCode(CodeInvalidInput, nil))
}

func TestWithCodeKeepsOuterContext(t *testing.T) {
	inner := New(CodeInvalidInput, "inner")
	err := WithCode(CodeNotFound, fmt.Errorf("ctx: %w", inner))

	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.Equal(t, "ctx: inner", err.Error())
	assert.True(t, stderrors.Is(err, inner))
}

func TestConstructorsCarryCodes(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	dbErr := DatabaseError("failed to read schema", cause)
	assert.Equal(t, CodeDatabaseError, GetCode(dbErr))
	assert.Equal(t, "failed to read schema: connection refused", dbErr.Error())

	extErr := ExternalServiceError("llm", cause)
	assert.Equal(t, CodeExternalService, GetCode(extErr))
	assert.Equal(t, "llm service error: connection refused", extErr.Error())
	assert.True(t, stderrors.Is(extErr, cause))

	assert.Equal(t, "route /nope not found", NotFound("route /nope").Error())
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeEmptyHypothesis))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeInvalidInput))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(CodeExternalService))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CodeGenerationFailed))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus("whatever went wrong"))
}
