package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	Refresh(ctx context.Context, input service.RefreshInput) (*service.RefreshResult, error)
}

// SessionDecoder verifies a raw session token. Any failure is an error with
// no partial claims.
type SessionDecoder interface {
	Decode(raw string) (domainauth.Claims, error)
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc        AuthServiceInterface
	Sessions   SessionDecoder
	SessionTTL time.Duration
	Cookies    cookieWriter
	Logger     *slog.Logger
}

// AuthHandlersOptions groups construction parameters for AuthHandlers.
type AuthHandlersOptions struct {
	Svc          AuthServiceInterface
	Sessions     SessionDecoder
	SessionTTL   time.Duration
	CookieDomain string
	Logger       *slog.Logger
}

// NewAuthHandlers constructs AuthHandlers with defaults applied.
func NewAuthHandlers(opts AuthHandlersOptions) *AuthHandlers {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthHandlers{
		Svc:        opts.Svc,
		Sessions:   opts.Sessions,
		SessionTTL: ttl,
		Cookies:    cookieWriter{Domain: opts.CookieDomain},
		Logger:     opts.Logger,
	}
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login handles the login initiation endpoint.
// GET /auth/login?college=<slug>&redirect_uri=<optional_redirect>.
// The college parameter identifies the branded login surface the user came
// from; it rides along in a cookie so the callback knows which domain gate
// to apply.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	result, err := h.Svc.BeginLogin(r.Context(), redirectURI)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_failed",
			Err:     err,
		})
		return
	}

	h.Cookies.set(w, r, oauthStateCookieName, result.State, oauthCookieTTL)
	h.Cookies.set(w, r, oauthNonceCookieName, result.Nonce, oauthCookieTTL)
	h.Cookies.set(w, r, postLoginRedirectName, redirectURI, oauthCookieTTL)

	collegeSlug := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("college")))
	if collegeSlug != "" {
		h.Cookies.set(w, r, loginCollegeCookie, collegeSlug, oauthCookieTTL)
	} else {
		h.Cookies.clear(w, r, loginCollegeCookie)
	}

	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// Callback handles the OAuth callback endpoint.
// GET /auth/callback?code=<code>&state=<state>.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_code",
			Err:     errors.New("authorization code is required"),
		})
		return
	}
	if state == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_state",
			Err:     errors.New("state parameter is required"),
		})
		return
	}

	// Verify state and read nonce before touching the service.
	stateCookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || stateCookie.Value != state {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_state",
			Err:     errors.New("invalid or missing state parameter"),
		})
		return
	}
	nonceCookie, err := r.Cookie(oauthNonceCookieName)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_nonce",
			Err:     errors.New("missing nonce parameter"),
		})
		return
	}

	collegeSlug := ""
	if c, cookieErr := r.Cookie(loginCollegeCookie); cookieErr == nil {
		collegeSlug = c.Value
	}

	result, err := h.Svc.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:        code,
		State:       state,
		Nonce:       nonceCookie.Value,
		CollegeSlug: collegeSlug,
	})
	if err != nil {
		h.rejectLogin(w, r, collegeSlug, err)
		return
	}

	h.Cookies.set(w, r, sessionCookieName, result.Token, int(h.SessionTTL.Seconds()))
	h.Cookies.clear(w, r, oauthStateCookieName)
	h.Cookies.clear(w, r, oauthNonceCookieName)
	h.Cookies.clear(w, r, loginCollegeCookie)

	redirectURI := h.getPostLoginRedirect(w, r)
	if result.BindingChanged {
		// The durable record changed under the token just minted; force a
		// refresh round trip so the client credential catches up.
		http.Redirect(w, r, refreshSessionURL(redirectURI, result.Claims), http.StatusFound)
		return
	}
	http.Redirect(w, r, redirectURI, http.StatusFound)
}

// rejectLogin translates login failures into redirects. Gate and binding
// rejections carry user-facing messages back to the college login page; any
// other failure lands on the generic login page. Session cookies are cleared
// either way so a refused login leaves no credential behind.
func (h *AuthHandlers) rejectLogin(w http.ResponseWriter, r *http.Request, collegeSlug string, err error) {
	h.Cookies.clearSession(w, r)

	var mismatch *service.DomainMismatchError
	var conflict *service.CollegeConflictError
	switch {
	case errors.As(err, &mismatch):
		http.Redirect(w, r, loginErrorURL(mismatch.CollegeSlug, mismatch.Error()), http.StatusFound)
	case errors.As(err, &conflict):
		http.Redirect(w, r, loginErrorURL(conflict.RequestedSlug, conflict.Error()), http.StatusFound)
	default:
		h.logger().ErrorContext(r.Context(), "login completion failed",
			"college_slug", collegeSlug, "error", err)
		http.Redirect(w, r, "/login", http.StatusFound)
	}
}

// loginErrorURL builds a college login page URL carrying a user-facing error.
func loginErrorURL(slug, message string) string {
	u := url.URL{Path: "/login/" + slug}
	q := url.Values{}
	q.Set("error", message)
	u.RawQuery = q.Encode()
	return u.String()
}

// refreshSessionURL builds the forced re-mint redirect, carrying the college
// context so the refresh can adopt it if needed.
func refreshSessionURL(redirectURI string, claims domainauth.Claims) string {
	u := url.URL{Path: "/auth/refresh-session"}
	q := url.Values{}
	q.Set("redirect", redirectURI)
	if claims.CollegeID != "" {
		q.Set("collegeId", claims.CollegeID)
	}
	if claims.CollegeSlug != "" {
		q.Set("collegeSlug", claims.CollegeSlug)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// RefreshSession handles the session re-mint round trip.
// GET /auth/refresh-session?redirect=<path>&collegeId=<id>&collegeSlug=<slug>
// reconciles the durable user record into a fresh token and redirects.
// A token in flight is never patched; this round trip is the only way a
// client credential picks up durable-state changes.
func (h *AuthHandlers) RefreshSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.sessionClaims(r)
	if !ok {
		h.Cookies.clearSession(w, r)
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	result, err := h.Svc.Refresh(r.Context(), h.refreshInput(r, claims))
	if err != nil {
		h.logger().ErrorContext(r.Context(), "session refresh failed", "email", claims.Email, "error", err)
		h.Cookies.clearSession(w, r)
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	h.Cookies.set(w, r, sessionCookieName, result.Token, int(h.SessionTTL.Seconds()))

	redirectURI := r.URL.Query().Get("redirect")
	if redirectURI == "" {
		redirectURI = "/candidate/profile"
	} else {
		redirectURI = safeRedirectPath(redirectURI)
	}
	http.Redirect(w, r, redirectURI, http.StatusFound)
}

// RefreshSessionJSON is the programmatic variant.
// POST /auth/refresh-session returns the reconciled session as JSON.
func (h *AuthHandlers) RefreshSessionJSON(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.sessionClaims(r)
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	result, err := h.Svc.Refresh(r.Context(), h.refreshInput(r, claims))
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "refresh_failed",
			Err:     err,
		})
		return
	}

	h.Cookies.set(w, r, sessionCookieName, result.Token, int(h.SessionTTL.Seconds()))
	WriteJSON(w, http.StatusOK, result.Claims)
}

func (h *AuthHandlers) refreshInput(r *http.Request, claims domainauth.Claims) service.RefreshInput {
	q := r.URL.Query()
	return service.RefreshInput{
		Current:     claims,
		CollegeID:   q.Get("collegeId"),
		CollegeSlug: q.Get("collegeSlug"),
	}
}

// sessionClaims reads and verifies the session cookie.
func (h *AuthHandlers) sessionClaims(r *http.Request) (domainauth.Claims, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return domainauth.Claims{}, false
	}
	claims, err := h.Sessions.Decode(cookie.Value)
	if err != nil {
		return domainauth.Claims{}, false
	}
	return claims, true
}

// Logout handles the logout endpoint.
// POST /auth/logout. Tokens are stateless, so logout is purely client-side:
// every session cookie is cleared and the user lands back on the login page.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Cookies.clearSession(w, r)

	// AJAX callers get a JSON payload; regular requests redirect.
	isAJAX := strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
	if isAJAX {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":      "success",
			"redirect_to": "/login",
		})
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

// getPostLoginRedirect returns the post-login redirect URL and clears the cookie.
func (h *AuthHandlers) getPostLoginRedirect(w http.ResponseWriter, r *http.Request) string {
	redirectURI := "/"
	if redirectCookie, err := r.Cookie(postLoginRedirectName); err == nil {
		redirectURI = safeRedirectPath(redirectCookie.Value)
		h.Cookies.clear(w, r, postLoginRedirectName)
	}
	return redirectURI
}
