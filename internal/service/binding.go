package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/devxconsultancy/assess-ui-api/internal/core"
	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
)

// BindingEngine owns the UNBOUND → BOUND transition for candidate users.
// A binding, once written, is immutable: a later bind against the same
// college is an idempotent success, a bind against any other college is a
// conflict. The engine never switches a user's college.
type BindingEngine struct {
	users core.UserRepository
}

// NewBindingEngine constructs a new BindingEngine.
func NewBindingEngine(users core.UserRepository) *BindingEngine {
	return &BindingEngine{users: users}
}

// Bind attaches the candidate identified by email to the college, creating
// the user row when absent. The write is a single conditional upsert, so
// two concurrent first binds resolve to exactly one winner; the loser — and
// any later bind to a different college — observes *CollegeConflictError.
func (e *BindingEngine) Bind(ctx context.Context, email, username string, college *model.College) (*model.User, error) {
	if college == nil {
		return nil, errors.New("college is required")
	}
	// The gate is the authority on domain validation; this check only keeps
	// the engine sound when called directly.
	if domainauth.EmailDomain(email) != college.EmailDomain {
		return nil, &DomainMismatchError{
			CollegeSlug:    college.Slug,
			CollegeName:    college.Name,
			RequiredDomain: college.EmailDomain,
		}
	}

	bound, err := e.users.BindCollege(ctx, core.BindCollegeParams{
		Email:    email,
		Username: username,
		College:  college,
	})
	if err != nil {
		return nil, fmt.Errorf("bind college: %w", err)
	}

	if !bound.BoundTo(college.ID) {
		existing := ""
		if bound.College != nil {
			existing = bound.College.CollegeSlug
		}
		return nil, &CollegeConflictError{
			RequestedSlug: college.Slug,
			ExistingSlug:  existing,
		}
	}
	return bound, nil
}
