package httpx

import (
	"net/http"

	apperrors "github.com/devxconsultancy/assess-ui-api/internal/errors"
)

// LoginPageHandlers backs the login surfaces the guard redirects to. The
// actual pages are rendered client-side; these endpoints hand the page its
// college context and any error carried over from a rejected login.
type LoginPageHandlers struct {
	Colleges CollegeServiceInterface
}

// Generic handles GET /login.
func (h *LoginPageHandlers) Generic(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"login_url": "/auth/login",
		"error":     r.URL.Query().Get("error"),
	})
}

// College handles GET /login/{slug}: the branded login surface. An unknown
// slug still renders, flagged so the page can fall back to the generic flow.
func (h *LoginPageHandlers) College(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	body := map[string]any{
		"login_url": "/auth/login?college=" + slug,
		"error":     r.URL.Query().Get("error"),
	}

	college, err := h.Colleges.GetBySlug(r.Context(), slug)
	switch {
	case err == nil:
		body["college"] = collegeResponse{
			Name:        college.Name,
			Slug:        college.Slug,
			EmailDomain: college.EmailDomain,
			Status:      string(college.Status),
		}
	case apperrors.IsNotFound(err):
		body["college"] = nil
	default:
		writeCollegeError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, body)
}
