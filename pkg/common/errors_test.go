package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewValidationError("bad", nil).StatusCode())
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("missing").StatusCode())
	assert.Equal(t, http.StatusConflict, NewConflictError("taken").StatusCode())
	assert.Equal(t, http.StatusInternalServerError, NewUpstreamError("boom", nil).StatusCode())
}

func TestAsAppErrorThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("assign helmet: %w", NewConflictError("Helmet is already assigned"))

	appErr := AsAppError(wrapped)
	assert.Equal(t, ErrorKindConflict, appErr.Kind)
	assert.True(t, IsKind(wrapped, ErrorKindConflict))
	assert.False(t, IsKind(wrapped, ErrorKindNotFound))
}

func TestAsAppErrorUnknownIsUpstream(t *testing.T) {
	cause := errors.New("connection reset")

	appErr := AsAppError(cause)
	assert.Equal(t, ErrorKindUpstream, appErr.Kind)
	assert.Equal(t, "connection reset", appErr.Message)
	assert.ErrorIs(t, appErr, cause)
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 2.35, RoundTo(2.346, 2))
	assert.Equal(t, 67.0, RoundTo(66.5, 0))
	assert.Equal(t, 0.0, RoundTo(0.0004, 2))
}
