package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
)

func okHandler() (http.Handler, *bool) {
	called := new(bool)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}), called
}

func TestRequireAuth(t *testing.T) {
	svc, _ := newTestAuthService()
	sess, err := svc.SignIn(httptest.NewRequest(http.MethodGet, "/", nil).Context(),
		"shopper@example.com", "hunter22")
	require.NoError(t, err)

	next, called := okHandler()
	handler := RequireAuth(svc)(next)

	// No cookie: 401, handler never runs.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)

	// Valid cookie: handler runs with the session in context.
	var gotSession *domainauth.Session
	inspect := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = GetSessionFromContext(r.Context())
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	RequireAuth(svc)(inspect).ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, gotSession)
	assert.Equal(t, sess.UserID, gotSession.UserID)
}

func TestRequireRole(t *testing.T) {
	svc, _ := newTestAuthService() // sessions carry only the user role
	sess, err := svc.SignIn(httptest.NewRequest(http.MethodGet, "/", nil).Context(),
		"shopper@example.com", "hunter22")
	require.NoError(t, err)

	next, called := okHandler()

	// Held role passes.
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec := httptest.NewRecorder()
	RequireRole(svc, domainauth.RoleUser)(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)

	// Missing role: 403.
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec = httptest.NewRecorder()
	RequireRole(svc, domainauth.RoleAdmin)(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Any of several accepted roles suffices.
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec = httptest.NewRecorder()
	RequireRole(svc, domainauth.RoleAdmin, domainauth.RoleUser)(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// No session at all: 401.
	rec = httptest.NewRecorder()
	RequireRole(svc, domainauth.RoleUser)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecoverMiddleware(t *testing.T) {
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()
	Recover(testLogger())(panicky).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
