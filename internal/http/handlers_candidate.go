package httpx

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
	apperrors "github.com/devxconsultancy/assess-ui-api/internal/errors"
)

// OnboardingService completes candidate creation for an authenticated
// session that has no durable user record yet.
type OnboardingService interface {
	CompleteOnboarding(ctx context.Context, email, username string) (*model.User, error)
}

// CandidateHandlers provides the candidate onboarding surface.
type CandidateHandlers struct {
	Onboarding OnboardingService
}

// Profile handles GET /candidate/profile: an echo of the current session
// claims, used by the onboarding page to decide what is still missing.
func (h *CandidateHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errUnauthenticated,
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"claims":     claims,
		"incomplete": claims.Incomplete(),
		"bound":      claims.Bound(),
	})
}

// onboardingRequest is the POST /candidate/onboarding body. Username is
// optional; the session display name is the default.
type onboardingRequest struct {
	Username string `json:"username"`
}

// CompleteOnboarding handles POST /candidate/onboarding. It creates the
// durable user record for the authenticated candidate and returns it so the
// client can follow up with a session refresh.
func (h *CandidateHandlers) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errUnauthenticated,
		})
		return
	}
	if claims.Role != domainauth.RoleCandidate {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "not_a_candidate",
			Err:     errors.New("onboarding is only for candidate accounts"),
		})
		return
	}

	var req onboardingRequest
	if r.ContentLength > 0 && !DecodeJSON(w, r, &req) {
		return
	}
	username := req.Username
	if username == "" {
		username = claims.DisplayName
	}

	user, err := h.Onboarding.CompleteOnboarding(r.Context(), claims.Email, username)
	if err != nil {
		if apperrors.IsValidation(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_request", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "onboarding_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}
