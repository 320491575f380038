package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
	"github.com/bkndhn/bazaar-api/internal/mocks"
	mocksauth "github.com/bkndhn/bazaar-api/internal/mocks/auth"
)

func TestAccountService_PauseRevokesAndPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	status := mocks.NewMockAccountStatusRepository(ctrl)
	feed := mocksauth.NewMemoryStatusFeed()
	sessions := mocksauth.NewMemorySessionStore()
	svc := NewAccountService(AccountServiceOptions{Status: status, Feed: feed, Sessions: sessions})
	ctx := context.Background()

	require.NoError(t, sessions.Save(ctx, domainauth.Session{ID: "s1", UserID: "admin-1"}))
	require.NoError(t, sessions.Save(ctx, domainauth.Session{ID: "s2", UserID: "other"}))

	watch, err := feed.Watch(ctx, "admin-1")
	require.NoError(t, err)
	defer watch.Close()

	status.EXPECT().SetStatus(gomock.Any(), "admin-1", domainauth.AccountPaused).Return(nil)

	require.NoError(t, svc.Pause(ctx, "admin-1"))

	// Paused admin's sessions are revoked, other users untouched.
	_, err = sessions.Get(ctx, "s1")
	assert.True(t, apperrors.IsNotFound(err))
	_, err = sessions.Get(ctx, "s2")
	assert.NoError(t, err)

	select {
	case got := <-watch.C():
		assert.Equal(t, domainauth.AccountPaused, got)
	default:
		t.Fatal("pause was not published on the status feed")
	}
}

func TestAccountService_Resume(t *testing.T) {
	ctrl := gomock.NewController(t)
	status := mocks.NewMockAccountStatusRepository(ctrl)
	sessions := mocksauth.NewMemorySessionStore()
	svc := NewAccountService(AccountServiceOptions{Status: status, Sessions: sessions})
	ctx := context.Background()

	require.NoError(t, sessions.Save(ctx, domainauth.Session{ID: "s1", UserID: "admin-1"}))
	status.EXPECT().SetStatus(gomock.Any(), "admin-1", domainauth.AccountActive).Return(nil)

	require.NoError(t, svc.Resume(ctx, "admin-1"))

	// Resuming does not touch sessions.
	_, err := sessions.Get(ctx, "s1")
	assert.NoError(t, err)
}

func TestAccountService_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewAccountService(AccountServiceOptions{Status: mocks.NewMockAccountStatusRepository(ctrl)})

	assert.True(t, apperrors.IsValidation(svc.Pause(context.Background(), "")))
	_, err := svc.Status(context.Background(), "")
	assert.True(t, apperrors.IsValidation(err))
}
