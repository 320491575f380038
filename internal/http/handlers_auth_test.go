package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	mocksauth "github.com/bkndhn/bazaar-api/internal/mocks/auth"
	"github.com/bkndhn/bazaar-api/internal/service"
)

func newTestAuthService() (*service.AuthService, *mocksauth.MemorySessionStore) {
	sessions := mocksauth.NewMemorySessionStore()
	svc := service.NewAuthService(service.AuthServiceOptions{
		Exchanger: mocksauth.NewMockExchanger(),
		Sessions:  sessions,
		Roles:     &mocksauth.StaticRoleRepository{Roles: domainauth.NewRoleSet(domainauth.RoleUser)},
		Events:    service.NewEventBus(),
	})
	return svc, sessions
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandlers_SignInSetsCookie(t *testing.T) {
	svc, _ := newTestAuthService()
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/auth/signin",
		strings.NewReader(`{"email":"shopper@example.com","password":"hunter22"}`))
	rec := httptest.NewRecorder()
	h.SignIn(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec.Result())
	require.NotNil(t, cookie, "sign-in must set the session cookie")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Contains(t, rec.Body.String(), `"shopper@example.com"`)
}

func TestAuthHandlers_SignInBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService()
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/auth/signin",
		strings.NewReader(`{"email":"shopper@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.SignIn(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(t, rec.Result()))
}

func TestAuthHandlers_SessionRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService()
	h := &AuthHandlers{Svc: svc}

	sess, err := svc.SignIn(httptest.NewRequest(http.MethodGet, "/", nil).Context(),
		"shopper@example.com", "hunter22")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec := httptest.NewRecorder()
	h.Session(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	assert.Contains(t, rec.Body.String(), `"user"`)
}

func TestAuthHandlers_SessionAnonymous(t *testing.T) {
	svc, _ := newTestAuthService()
	h := &AuthHandlers{Svc: svc}

	rec := httptest.NewRecorder()
	h.Session(rec, httptest.NewRequest(http.MethodGet, "/auth/session", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}

func TestAuthHandlers_SignOutClearsCookieAndSessions(t *testing.T) {
	svc, sessions := newTestAuthService()
	h := &AuthHandlers{Svc: svc}

	sess, err := svc.SignIn(httptest.NewRequest(http.MethodGet, "/", nil).Context(),
		"shopper@example.com", "hunter22")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/signout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.ID})
	rec := httptest.NewRecorder()
	h.SignOut(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec.Result())
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
	assert.Zero(t, sessions.Len())
}

func TestAuthHandlers_SignUp(t *testing.T) {
	svc, _ := newTestAuthService()
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"email":"new@example.com","password":"longenough","display_name":"New User"}`))
	rec := httptest.NewRecorder()
	h.SignUp(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "new@example.com")
}

func TestSafeRedirectPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/console", "/console"},
		{"/a/b?c=d", "/a/b?c=d"},
		{"https://evil.test/x", "/"},
		{"//evil.test", "/"},
		{"relative", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeRedirectPath(tt.in), "input %q", tt.in)
	}
}
