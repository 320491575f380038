package redisauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
)

func TestSessionStoreNotFoundErrorCode(t *testing.T) {
	assert.True(t, apperrors.IsNotFound(ErrNotFound),
		"callers classify missing sessions by error code, not sentinel identity")

	store := NewSessionStore(nil)
	_, err := store.Get(context.Background(), "")
	assert.True(t, apperrors.IsNotFound(err))
}
