package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (http.Handler, func(target, token string) *http.Response) {
	t.Helper()
	codec := newTestCodec(t)
	router := NewRouter(RouterServices{
		Auth:       &mockAuthService{},
		Sessions:   codec,
		Colleges:   &mockCollegeService{},
		Onboarding: &mockOnboarding{},
	})
	do := func(target, token string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if token != "" {
			req.AddCookie(sessionCookie(token))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Result()
	}
	return router, do
}

func TestRouterHealthz(t *testing.T) {
	_, do := newTestRouter(t)

	resp := do("/healthz", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouterAnonymousRootRedirectsToLogin(t *testing.T) {
	_, do := newTestRouter(t)

	resp := do("/", "")

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRouterPublicCollegeLookupNeedsNoSession(t *testing.T) {
	_, do := newTestRouter(t)

	resp := do("/api/colleges/acme", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouterGuardedProfileRoundTrip(t *testing.T) {
	codec := newTestCodec(t)
	router := NewRouter(RouterServices{
		Auth:       &mockAuthService{},
		Sessions:   codec,
		Colleges:   &mockCollegeService{},
		Onboarding: &mockOnboarding{},
	})

	req := httptest.NewRequest(http.MethodGet, "/candidate/profile", nil)
	req.AddCookie(sessionCookie(mintToken(t, codec, boundCandidateClaims())))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jane@acme.edu")
}

func TestRouterCollegeLoginPageServesCollegeContext(t *testing.T) {
	_, do := newTestRouter(t)

	resp := do("/login/acme", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
