package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := NotFound("tenant not found")
	assert.Equal(t, "tenant not found", err.Error())

	wrapped := Wrap(stderrors.New("boom"), ErrCodeInternal, "fetch roles")
	assert.Equal(t, "fetch roles: boom", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, ErrCodeInternal, "fetch status")

	assert.ErrorIs(t, err, cause)
}

func TestWrap_NilCause(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "whatever"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "whatever %d", 1))
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		err   error
		check func(error) bool
		code  ErrorCode
	}{
		{NotFound("x"), IsNotFound, ErrCodeNotFound},
		{Conflict("x"), IsConflict, ErrCodeConflict},
		{Validation("x"), IsValidation, ErrCodeValidation},
		{Unauthorized("x"), IsUnauthorized, ErrCodeUnauthorized},
		{Configuration("x"), IsConfiguration, ErrCodeConfiguration},
		{Internal("x"), IsInternal, ErrCodeInternal},
	}
	for _, tc := range tests {
		assert.True(t, tc.check(tc.err), "code %s", tc.code)
		assert.Equal(t, tc.code, GetCode(tc.err))
	}
}

func TestCodePredicates_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", Configuration("no payment credentials"))

	require.True(t, IsConfiguration(err))
	assert.Equal(t, ErrCodeConfiguration, GetCode(err))
	assert.False(t, IsNotFound(err))
}

func TestGetField(t *testing.T) {
	err := ValidationField("email", "email is required")
	assert.Equal(t, "email", GetField(err))
	assert.Empty(t, GetField(stderrors.New("plain")))
}

func TestGetCode_NonAppError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetCode(stderrors.New("plain")))
}
