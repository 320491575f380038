package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

// AuthHandlers provides HTTP handlers for storefront authentication.
type AuthHandlers struct {
	Svc          ports.Authenticator
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type signUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// SignUp creates a new credential.
// POST /auth/signup.
func (h *AuthHandlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	identity, err := h.Svc.SignUp(r.Context(), ports.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{
		"user_id": identity.UserID,
		"email":   identity.Email,
	})
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn verifies credentials and sets the session cookie.
// POST /auth/signin.
func (h *AuthHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	session, err := h.Svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.setSessionCookie(w, r, session)
	WriteJSON(w, http.StatusOK, sessionPayload(&session))
}

// SignOut revokes the current session and clears the cookie. The optional
// "scope" form value selects local or global revocation; global is the
// default for a user-initiated sign-out.
// POST /auth/signout.
func (h *AuthHandlers) SignOut(w http.ResponseWriter, r *http.Request) {
	scope := domainauth.ScopeGlobal
	if r.URL.Query().Get("scope") == string(domainauth.ScopeLocal) {
		scope = domainauth.ScopeLocal
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.Svc.SignOut(r.Context(), cookie.Value, scope); err != nil {
			h.logger().WarnContext(r.Context(), "sign-out failed", "error", err)
		}
	}

	h.clearCookie(w, r, SessionCookieName)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// Session returns the current authentication status.
// GET /auth/session.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.CurrentSession(r.Context(), cookie.Value)
	if err != nil || session == nil {
		h.clearCookie(w, r, SessionCookieName)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	payload := sessionPayload(session)
	payload["authenticated"] = true
	WriteJSON(w, http.StatusOK, payload)
}

func sessionPayload(s *domainauth.Session) map[string]any {
	return map[string]any{
		"user": map[string]any{
			"id":           s.UserID,
			"email":        s.Email,
			"display_name": s.DisplayName,
			"roles":        s.Roles,
		},
		"expires_at": s.ExpiresAt,
	}
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, session domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		Expires:  session.ExpiresAt,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearCookie clears a cookie by setting it to expire immediately, mirroring
// the attributes used when setting it so browsers actually delete it.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// ConsoleAuthHandlers provides the operator console SSO endpoints.
type ConsoleAuthHandlers struct {
	Provider     ports.ConsoleAuthProvider
	CompleteFn   func(ctx context.Context, identity domainauth.Identity) (domainauth.Session, error)
	CookieDomain string
	Logger       *slog.Logger
}

// Login initiates the console SSO flow.
// GET /console/auth/login?redirect_uri=<optional>.
func (h *ConsoleAuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	authURL, state, nonce, err := h.Provider.Begin(r.Context(), ports.BeginInput{RedirectURL: redirectURI})
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: err})
		return
	}

	h.setFlowCookie(w, r, "oauth_state", state)
	h.setFlowCookie(w, r, "oauth_nonce", nonce)
	h.setFlowCookie(w, r, "oauth_redirect", redirectURI)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback completes the console SSO flow and issues a session cookie.
// GET /console/auth/callback?code=<code>&state=<state>.
func (h *ConsoleAuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_params",
			Err: errors.New("code and state are required")})
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value != state {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_state",
			Err: errors.New("invalid or missing state parameter")})
		return
	}
	nonce := ""
	if nonceCookie, err := r.Cookie("oauth_nonce"); err == nil {
		nonce = nonceCookie.Value
	}

	identity, err := h.Provider.Exchange(r.Context(), ports.ExchangeInput{Code: code, State: state, Nonce: nonce})
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_completion_failed", Err: err})
		return
	}

	session, err := h.CompleteFn(r.Context(), identity)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	(&AuthHandlers{CookieDomain: h.CookieDomain}).setSessionCookie(w, r, session)
	h.clearFlowCookie(w, r, "oauth_state")
	h.clearFlowCookie(w, r, "oauth_nonce")

	redirectURI := "/"
	if c, err := r.Cookie("oauth_redirect"); err == nil {
		redirectURI = safeRedirectPath(c.Value)
	}
	h.clearFlowCookie(w, r, "oauth_redirect")
	http.Redirect(w, r, redirectURI, http.StatusFound)
}

func (h *ConsoleAuthHandlers) setFlowCookie(w http.ResponseWriter, r *http.Request, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   600,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *ConsoleAuthHandlers) clearFlowCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeRedirectPath allows only relative paths so callbacks cannot bounce the
// browser to another origin.
func safeRedirectPath(p string) string {
	if p == "" {
		return "/"
	}
	u, err := url.Parse(p)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return p
}
