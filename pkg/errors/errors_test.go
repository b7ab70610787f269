package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrInvalidRequest.HTTPStatus)
	assert.Equal(t, http.StatusNotFound, ErrNotFound.HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, ErrCredentialMissing.HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, ErrUpstreamUnavailable.HTTPStatus)
	assert.Equal(t, http.StatusBadGateway, New(CodeUpstreamRejected, "x").HTTPStatus)
}

func TestDistinctServerFailures(t *testing.T) {
	assert.NotEqual(t, ErrCredentialMissing.Message, ErrUpstreamUnavailable.Message)
	assert.NotEqual(t, ErrCredentialMissing.Code, ErrUpstreamUnavailable.Code)
}

func TestWithErrorDoesNotMutateSentinel(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	wrapped := ErrUpstreamUnavailable.WithError(cause)

	assert.Nil(t, ErrUpstreamUnavailable.Err)
	assert.ErrorIs(t, wrapped, cause)
	assert.ErrorIs(t, wrapped, ErrUpstreamUnavailable)
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("relay: %w", ErrNotFound)
	assert.True(t, IsAppError(wrapped))
	assert.Equal(t, CodeNotFound, AsAppError(wrapped).Code)

	plain := AsAppError(stderrors.New("plain"))
	assert.Equal(t, CodeUnknown, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.HTTPStatus)
}
