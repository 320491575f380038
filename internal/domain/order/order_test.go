package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextSyncStatus_Chain(t *testing.T) {
	next, ok := NextSyncStatus(StatusConfirmed)
	assert.True(t, ok)
	assert.Equal(t, StatusShipped, next)

	next, ok = NextSyncStatus(StatusShipped)
	assert.True(t, ok)
	assert.Equal(t, StatusOutForDelivery, next)

	next, ok = NextSyncStatus(StatusOutForDelivery)
	assert.True(t, ok)
	assert.Equal(t, StatusDelivered, next)
}

func TestNextSyncStatus_TerminalAndPreConfirmation(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusDelivered, StatusCancelled} {
		_, ok := NextSyncStatus(s)
		assert.False(t, ok, "status %q", s)
		assert.False(t, Syncable(s), "status %q", s)
	}
}
