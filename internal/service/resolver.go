package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/devxconsultancy/assess-ui-api/internal/core"
	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
	apperrors "github.com/devxconsultancy/assess-ui-api/internal/errors"
	"github.com/devxconsultancy/assess-ui-api/internal/ports"
)

// IdentityResolverOptions groups dependencies for IdentityResolver.
type IdentityResolverOptions struct {
	Users      core.UserRepository
	Classifier ports.RoleClassifier
	Rules      domainauth.RoleClassification
}

// IdentityResolver classifies an authenticated profile into a role and
// locates or creates its durable user record. Organizational accounts
// (staff, admin) are created on first login; candidates are never created
// here — their record only comes into existence through a successful
// college bind or onboarding completion.
type IdentityResolver struct {
	users      core.UserRepository
	classifier ports.RoleClassifier
	rules      domainauth.RoleClassification
}

// NewIdentityResolver constructs a new IdentityResolver.
func NewIdentityResolver(opts IdentityResolverOptions) *IdentityResolver {
	return &IdentityResolver{
		users:      opts.Users,
		classifier: opts.Classifier,
		rules:      opts.Rules,
	}
}

// Resolution is the outcome of resolving a profile. User is nil for a
// candidate with no durable record yet (pending onboarding or bind).
type Resolution struct {
	Role domainauth.Role
	User *model.User
}

// Pending reports whether the identity has no durable record behind it.
func (r *Resolution) Pending() bool { return r.User == nil }

// Resolve classifies the profile and reconciles it against the user store.
// Existing users get their last login bumped on every resolution.
func (r *IdentityResolver) Resolve(ctx context.Context, profile domainauth.Profile) (*Resolution, error) {
	if profile.Email == "" {
		return nil, errors.New("profile email is required")
	}

	role := r.classifier.Classify(profile.Email, r.rules)

	user, err := r.users.GetByEmail(ctx, profile.Email)
	switch {
	case err == nil:
		if touchErr := r.users.TouchLogin(ctx, user.ID); touchErr != nil {
			return nil, fmt.Errorf("touch login: %w", touchErr)
		}
		return &Resolution{Role: role, User: user}, nil
	case apperrors.IsNotFound(err):
		// fall through to creation
	default:
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	if role == domainauth.RoleCandidate {
		return &Resolution{Role: role}, nil
	}

	created, err := r.users.CreateStaff(ctx, &model.User{
		Email:    profile.Email,
		Username: profile.DisplayName,
		Role:     role,
	})
	if err != nil {
		// A concurrent first login may have created the row already.
		if apperrors.IsConflict(err) {
			existing, getErr := r.users.GetByEmail(ctx, profile.Email)
			if getErr != nil {
				return nil, fmt.Errorf("resolve user after conflict: %w", getErr)
			}
			return &Resolution{Role: role, User: existing}, nil
		}
		return nil, fmt.Errorf("create organizational user: %w", err)
	}
	return &Resolution{Role: role, User: created}, nil
}

// CompleteOnboarding materializes the durable record for a candidate whose
// session has none yet. Idempotent: a record that already exists (including
// one created by a concurrent request) is returned as-is.
func (r *IdentityResolver) CompleteOnboarding(ctx context.Context, email, username string) (*model.User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}

	if role := r.classifier.Classify(email, r.rules); role != domainauth.RoleCandidate {
		return nil, apperrors.Validation("onboarding is only for candidate accounts")
	}

	if existing, err := r.users.GetByEmail(ctx, email); err == nil {
		return existing, nil
	} else if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("onboarding lookup: %w", err)
	}

	created, err := r.users.CreateCandidate(ctx, &model.User{
		Email:    email,
		Username: username,
		Role:     domainauth.RoleCandidate,
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			existing, getErr := r.users.GetByEmail(ctx, email)
			if getErr != nil {
				return nil, fmt.Errorf("onboarding after conflict: %w", getErr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("create candidate: %w", err)
	}
	return created, nil
}
