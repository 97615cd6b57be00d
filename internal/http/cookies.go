package httpx

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Cookie names used by the auth flow. The session token is the only
// long-lived cookie; the rest are short-lived OAuth round-trip state.
const (
	sessionCookieName     = "session_token"
	oauthStateCookieName  = "oauth_state"
	oauthNonceCookieName  = "oauth_nonce"
	loginCollegeCookie    = "login_college"
	postLoginRedirectName = "post_login_redirect"
)

// oauthCookieTTL bounds how long an abandoned OAuth handshake stays resumable.
const oauthCookieTTL = 600 // seconds

// cookieWriter centralizes cookie attribute handling so set and clear
// always agree on Path/Domain/SameSite/Secure.
type cookieWriter struct {
	Domain string
}

func (c cookieWriter) isSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// set writes an HttpOnly, SameSite=Lax cookie scoped to the whole app.
func (c cookieWriter) set(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.isSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// clear expires a cookie immediately, mirroring the attributes used when
// setting it to maximize deletion compatibility across browsers.
func (c cookieWriter) clear(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.isSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSession removes the session token and every OAuth round-trip cookie.
// All session invalidation goes through this single helper so a rejected
// login can never leave a stale credential behind.
func (c cookieWriter) clearSession(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{
		sessionCookieName,
		oauthStateCookieName,
		oauthNonceCookieName,
		loginCollegeCookie,
		postLoginRedirectName,
	} {
		c.clear(w, r, name)
	}
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
