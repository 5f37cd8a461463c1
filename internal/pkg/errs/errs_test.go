package errs

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorKnownCode(t *testing.T) {
	err := NewError(ErrTargetUnreachable)

	require.NotNil(t, err)
	assert.Equal(t, ErrTargetUnreachable, err.Code)
	assert.Equal(t, http.StatusOK, err.Status, "business errors default to HTTP 200")
	assert.Contains(t, err.Error(), "not connected")
}

func TestNewErrorFormatsDetails(t *testing.T) {
	err := NewError(ErrInvalidState, "cancel")

	require.NotNil(t, err)
	assert.Equal(t, "Can only cancel pending requests.", err.Message)
}

func TestNewErrorUnknownCodeDegrades(t *testing.T) {
	err := NewError(424242)

	require.NotNil(t, err)
	assert.Equal(t, ErrUnknown, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestErrorMapCoversAllCodes(t *testing.T) {
	codes := []int{
		ErrInvalidParams,
		ErrUnsupportedMediaType,
		ErrInvalidJSONFormat,
		ErrExtraContentInBody,
		ErrRateLimitExceeded,
		ErrTargetUnreachable,
		ErrRequestNotFound,
		ErrNotAuthorized,
		ErrInvalidState,
		ErrUnauthorized,
		ErrSessionKicked,
		ErrUnknown,
	}

	for _, code := range codes {
		err := NewError(code)
		assert.Equal(t, code, err.Code, "code %d must have an errorMap entry", code)
	}
}
