package httpx

import (
	"context"
	"net/http"

	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
	apperrors "github.com/devxconsultancy/assess-ui-api/internal/errors"
)

// CollegeServiceInterface defines the college read operations the public
// API exposes.
type CollegeServiceInterface interface {
	GetBySlug(ctx context.Context, slug string) (*model.College, error)
	Resources(ctx context.Context, slug string) ([]*model.CollegeResource, error)
}

// CollegeHandlers provides HTTP handlers for public college lookups. The
// branded login page fetches these before initiating the OAuth handshake.
type CollegeHandlers struct {
	Svc CollegeServiceInterface
}

// collegeResponse is the public projection of a college. Timestamps and
// internal ids stay out of the unauthenticated surface.
type collegeResponse struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	EmailDomain string `json:"email_domain"`
	Status      string `json:"status"`
}

// Get handles GET /api/colleges/{slug}.
func (h *CollegeHandlers) Get(w http.ResponseWriter, r *http.Request) {
	college, err := h.Svc.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeCollegeError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, collegeResponse{
		Name:        college.Name,
		Slug:        college.Slug,
		EmailDomain: college.EmailDomain,
		Status:      string(college.Status),
	})
}

// resourceResponse is one opaque resource reference assigned to a college.
type resourceResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListResources handles GET /api/colleges/{slug}/resources.
func (h *CollegeHandlers) ListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.Svc.Resources(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeCollegeError(w, err)
		return
	}

	out := make([]resourceResponse, 0, len(resources))
	for _, res := range resources {
		out = append(out, resourceResponse{ID: res.ID, Name: res.Name})
	}
	WriteJSON(w, http.StatusOK, map[string]any{"resources": out})
}

func writeCollegeError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsNotFound(err):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "college_not_found", Err: err})
	case apperrors.IsValidation(err):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
	default:
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal_error", Err: err})
	}
}
