package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/service"
)

func newAuthHandlers(t *testing.T, svc AuthServiceInterface) *AuthHandlers {
	t.Helper()
	return NewAuthHandlers(AuthHandlersOptions{
		Svc:      svc,
		Sessions: newTestCodec(t),
	})
}

func TestAuthHandlersLoginSetsOAuthCookies(t *testing.T) {
	handlers := newAuthHandlers(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/login?college=acme&redirect_uri=/candidate/profile", nil)
	w := httptest.NewRecorder()

	handlers.Login(w, req)
	resp := w.Result()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "https://idp.example.com/auth")

	state := findCookie(resp, oauthStateCookieName)
	require.NotNil(t, state)
	assert.Equal(t, "test-state", state.Value)
	assert.True(t, state.HttpOnly)

	nonce := findCookie(resp, oauthNonceCookieName)
	require.NotNil(t, nonce)
	assert.Equal(t, "test-nonce", nonce.Value)

	college := findCookie(resp, loginCollegeCookie)
	require.NotNil(t, college)
	assert.Equal(t, "acme", college.Value)

	redirect := findCookie(resp, postLoginRedirectName)
	require.NotNil(t, redirect)
	assert.Equal(t, "/candidate/profile", redirect.Value)
}

func TestAuthHandlersLoginRejectsAbsoluteRedirect(t *testing.T) {
	handlers := newAuthHandlers(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=https://evil.example.com/", nil)
	w := httptest.NewRecorder()

	handlers.Login(w, req)
	resp := w.Result()

	redirect := findCookie(resp, postLoginRedirectName)
	require.NotNil(t, redirect)
	assert.Equal(t, "/", redirect.Value)
}

func TestAuthHandlersLoginWithoutCollegeClearsCookie(t *testing.T) {
	handlers := newAuthHandlers(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	w := httptest.NewRecorder()

	handlers.Login(w, req)

	college := findCookie(w.Result(), loginCollegeCookie)
	require.NotNil(t, college)
	assert.Less(t, college.MaxAge, 0)
}

func callbackRequest(collegeSlug string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=test-code&state=test-state", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookieName, Value: "test-state"})
	req.AddCookie(&http.Cookie{Name: oauthNonceCookieName, Value: "test-nonce"})
	if collegeSlug != "" {
		req.AddCookie(&http.Cookie{Name: loginCollegeCookie, Value: collegeSlug})
	}
	return req
}

func TestAuthHandlersCallbackSuccess(t *testing.T) {
	var gotInput service.CompleteLoginInput
	svc := &mockAuthService{
		completeLoginFunc: func(_ context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
			gotInput = input
			return &service.CompleteLoginResult{Token: "minted-token", Claims: boundCandidateClaims()}, nil
		},
	}
	handlers := newAuthHandlers(t, svc)

	req := callbackRequest("acme")
	req.AddCookie(&http.Cookie{Name: postLoginRedirectName, Value: "/somewhere"})
	w := httptest.NewRecorder()

	handlers.Callback(w, req)
	resp := w.Result()

	assert.Equal(t, "test-code", gotInput.Code)
	assert.Equal(t, "test-nonce", gotInput.Nonce)
	assert.Equal(t, "acme", gotInput.CollegeSlug)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/somewhere", resp.Header.Get("Location"))

	session := findCookie(resp, sessionCookieName)
	require.NotNil(t, session)
	assert.Equal(t, "minted-token", session.Value)
	assert.True(t, session.HttpOnly)

	state := findCookie(resp, oauthStateCookieName)
	require.NotNil(t, state)
	assert.Less(t, state.MaxAge, 0)
}

func TestAuthHandlersCallbackBindingChangedForcesRefresh(t *testing.T) {
	svc := &mockAuthService{
		completeLoginFunc: func(_ context.Context, _ service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
			return &service.CompleteLoginResult{
				Token:          "minted-token",
				Claims:         boundCandidateClaims(),
				BindingChanged: true,
			}, nil
		},
	}
	handlers := newAuthHandlers(t, svc)

	w := httptest.NewRecorder()
	handlers.Callback(w, callbackRequest("acme"))
	resp := w.Result()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth/refresh-session", loc.Path)
	assert.Equal(t, "college-1", loc.Query().Get("collegeId"))
	assert.Equal(t, "acme", loc.Query().Get("collegeSlug"))
}

func TestAuthHandlersCallbackDomainMismatchRedirectsToCollegePage(t *testing.T) {
	svc := &mockAuthService{
		completeLoginFunc: func(_ context.Context, _ service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
			return nil, &service.DomainMismatchError{
				CollegeSlug:    "acme",
				CollegeName:    "Acme College",
				RequiredDomain: "acme.edu",
			}
		},
	}
	handlers := newAuthHandlers(t, svc)

	w := httptest.NewRecorder()
	handlers.Callback(w, callbackRequest("acme"))
	resp := w.Result()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/login/acme", loc.Path)
	assert.Contains(t, loc.Query().Get("error"), "acme.edu")

	// A refused login must not leave a credential behind.
	session := findCookie(resp, sessionCookieName)
	require.NotNil(t, session)
	assert.Less(t, session.MaxAge, 0)
}

func TestAuthHandlersCallbackConflictRedirectsWithSignOutMessage(t *testing.T) {
	svc := &mockAuthService{
		completeLoginFunc: func(_ context.Context, _ service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
			return nil, &service.CollegeConflictError{RequestedSlug: "beta", ExistingSlug: "acme"}
		},
	}
	handlers := newAuthHandlers(t, svc)

	w := httptest.NewRecorder()
	handlers.Callback(w, callbackRequest("beta"))
	resp := w.Result()

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/login/beta", loc.Path)
	assert.Contains(t, loc.Query().Get("error"), "acme")
	assert.Contains(t, loc.Query().Get("error"), "sign out")
}

func TestAuthHandlersCallbackUnrecoverableFailure(t *testing.T) {
	svc := &mockAuthService{
		completeLoginFunc: func(_ context.Context, _ service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
			return nil, errors.New("provider exploded")
		},
	}
	handlers := newAuthHandlers(t, svc)

	w := httptest.NewRecorder()
	handlers.Callback(w, callbackRequest(""))
	resp := w.Result()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestAuthHandlersCallbackMissingCode(t *testing.T) {
	handlers := newAuthHandlers(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=test-state", nil)
	w := httptest.NewRecorder()

	handlers.Callback(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlersCallbackStateMismatch(t *testing.T) {
	handlers := newAuthHandlers(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=test-code&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookieName, Value: "test-state"})
	w := httptest.NewRecorder()

	handlers.Callback(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlersRefreshSessionReMints(t *testing.T) {
	codec := newTestCodec(t)
	var gotInput service.RefreshInput
	svc := &mockAuthService{
		refreshFunc: func(_ context.Context, input service.RefreshInput) (*service.RefreshResult, error) {
			gotInput = input
			return &service.RefreshResult{Token: "refreshed-token", Claims: boundCandidateClaims()}, nil
		},
	}
	handlers := NewAuthHandlers(AuthHandlersOptions{Svc: svc, Sessions: codec})

	claims := domainauth.Claims{Email: "jane@acme.edu", Role: domainauth.RoleCandidate}
	req := httptest.NewRequest(http.MethodGet,
		"/auth/refresh-session?redirect=/somewhere&collegeSlug=acme&collegeId=college-1", nil)
	req.AddCookie(sessionCookie(mintToken(t, codec, claims)))
	w := httptest.NewRecorder()

	handlers.RefreshSession(w, req)
	resp := w.Result()

	assert.Equal(t, "jane@acme.edu", gotInput.Current.Email)
	assert.Equal(t, "acme", gotInput.CollegeSlug)
	assert.Equal(t, "college-1", gotInput.CollegeID)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/somewhere", resp.Header.Get("Location"))

	session := findCookie(resp, sessionCookieName)
	require.NotNil(t, session)
	assert.Equal(t, "refreshed-token", session.Value)
}

func TestAuthHandlersRefreshSessionDefaultsToProfile(t *testing.T) {
	codec := newTestCodec(t)
	handlers := NewAuthHandlers(AuthHandlersOptions{Svc: &mockAuthService{}, Sessions: codec})

	req := httptest.NewRequest(http.MethodGet, "/auth/refresh-session", nil)
	req.AddCookie(sessionCookie(mintToken(t, codec, boundCandidateClaims())))
	w := httptest.NewRecorder()

	handlers.RefreshSession(w, req)

	assert.Equal(t, "/candidate/profile", w.Result().Header.Get("Location"))
}

func TestAuthHandlersRefreshSessionWithoutTokenRedirectsToLogin(t *testing.T) {
	handlers := newAuthHandlers(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/refresh-session", nil)
	w := httptest.NewRecorder()

	handlers.RefreshSession(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Result().Header.Get("Location"))
}

func TestAuthHandlersRefreshSessionJSON(t *testing.T) {
	codec := newTestCodec(t)
	handlers := NewAuthHandlers(AuthHandlersOptions{Svc: &mockAuthService{}, Sessions: codec})

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh-session", nil)
	req.AddCookie(sessionCookie(mintToken(t, codec, boundCandidateClaims())))
	w := httptest.NewRecorder()

	handlers.RefreshSessionJSON(w, req)
	resp := w.Result()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, w.Body.String(), "jane@acme.edu")

	session := findCookie(resp, sessionCookieName)
	require.NotNil(t, session)
	assert.Equal(t, "refreshed-token", session.Value)
}

func TestAuthHandlersRefreshSessionJSONUnauthenticated(t *testing.T) {
	handlers := newAuthHandlers(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh-session", nil)
	w := httptest.NewRecorder()

	handlers.RefreshSessionJSON(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlersLogoutClearsSession(t *testing.T) {
	handlers := newAuthHandlers(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(sessionCookie("some-token"))
	w := httptest.NewRecorder()

	handlers.Logout(w, req)
	resp := w.Result()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	session := findCookie(resp, sessionCookieName)
	require.NotNil(t, session)
	assert.Less(t, session.MaxAge, 0)
}

func TestAuthHandlersLogoutAJAX(t *testing.T) {
	handlers := newAuthHandlers(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()

	handlers.Logout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/login")
}
