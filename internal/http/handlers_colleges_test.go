package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
	apperrors "github.com/devxconsultancy/assess-ui-api/internal/errors"
)

func collegeGet(t *testing.T, handlers *CollegeHandlers, slug string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/colleges/"+slug, nil)
	req.SetPathValue("slug", slug)
	w := httptest.NewRecorder()
	handlers.Get(w, req)
	return w
}

func TestCollegeHandlersGetPublicProjection(t *testing.T) {
	handlers := &CollegeHandlers{Svc: &mockCollegeService{}}

	w := collegeGet(t, handlers, "acme")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Acme College", body["name"])
	assert.Equal(t, "acme.edu", body["email_domain"])
	assert.Equal(t, "active", body["status"])
	// Internal fields stay off the unauthenticated surface.
	assert.NotContains(t, body, "id")
	assert.NotContains(t, body, "created_at")
}

func TestCollegeHandlersGetNotFound(t *testing.T) {
	handlers := &CollegeHandlers{Svc: &mockCollegeService{
		getBySlugFunc: func(_ context.Context, _ string) (*model.College, error) {
			return nil, apperrors.NotFound("college not found")
		},
	}}

	w := collegeGet(t, handlers, "nope")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "college_not_found")
}

func TestCollegeHandlersListResources(t *testing.T) {
	handlers := &CollegeHandlers{Svc: &mockCollegeService{
		resourcesFunc: func(_ context.Context, _ string) ([]*model.CollegeResource, error) {
			return []*model.CollegeResource{
				{ID: "r1", CollegeID: "college-1", Name: "aptitude-track"},
				{ID: "r2", CollegeID: "college-1", Name: "coding-track"},
			}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/colleges/acme/resources", nil)
	req.SetPathValue("slug", "acme")
	w := httptest.NewRecorder()
	handlers.ListResources(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "aptitude-track")
	assert.Contains(t, w.Body.String(), "coding-track")
}

func TestCollegeHandlersListResourcesEmpty(t *testing.T) {
	handlers := &CollegeHandlers{Svc: &mockCollegeService{}}

	req := httptest.NewRequest(http.MethodGet, "/api/colleges/acme/resources", nil)
	req.SetPathValue("slug", "acme")
	w := httptest.NewRecorder()
	handlers.ListResources(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resources":[]`)
}

func TestLoginPageCollegeCarriesErrorAndContext(t *testing.T) {
	handlers := &LoginPageHandlers{Colleges: &mockCollegeService{}}

	req := httptest.NewRequest(http.MethodGet, "/login/acme?error=bad+domain", nil)
	req.SetPathValue("slug", "acme")
	w := httptest.NewRecorder()
	handlers.College(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "bad domain", body["error"])
	assert.Equal(t, "/auth/login?college=acme", body["login_url"])
	require.NotNil(t, body["college"])
}

func TestLoginPageCollegeUnknownSlugStillRenders(t *testing.T) {
	handlers := &LoginPageHandlers{Colleges: &mockCollegeService{
		getBySlugFunc: func(_ context.Context, _ string) (*model.College, error) {
			return nil, apperrors.NotFound("college not found")
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/login/nope", nil)
	req.SetPathValue("slug", "nope")
	w := httptest.NewRecorder()
	handlers.College(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body["college"])
}
