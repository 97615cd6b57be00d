package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/devxconsultancy/assess-ui-api/internal/core"
	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
	apperrors "github.com/devxconsultancy/assess-ui-api/internal/errors"
)

// DomainGateOptions groups dependencies for DomainGate.
type DomainGateOptions struct {
	Colleges core.CollegeRepository
	Users    core.UserRepository
	Logger   *slog.Logger
}

// DomainGate enforces that a candidate's email domain matches the claimed
// college's required domain. On mismatch it purges any speculatively
// created, still-unbound candidate record: an unvalidated email must never
// retain a durable row implying college access.
type DomainGate struct {
	colleges core.CollegeRepository
	users    core.UserRepository
	logger   *slog.Logger
}

// NewDomainGate constructs a new DomainGate.
func NewDomainGate(opts DomainGateOptions) *DomainGate {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DomainGate{
		colleges: opts.Colleges,
		users:    opts.Users,
		logger:   logger.With("component", "domain_gate"),
	}
}

// Validate resolves the claimed college slug and checks the email domain
// against it. Returns the college on success, a *DomainMismatchError when
// the domain does not match, or the registry lookup error.
func (g *DomainGate) Validate(ctx context.Context, email, collegeSlug string) (*model.College, error) {
	college, err := g.colleges.GetBySlug(ctx, collegeSlug)
	if err != nil {
		return nil, fmt.Errorf("gate college lookup: %w", err)
	}
	if !college.Active() {
		return nil, apperrors.Validationf("college %s is not accepting logins", college.Slug)
	}

	if domainauth.EmailDomain(email) == college.EmailDomain {
		return college, nil
	}

	g.purgeUnvalidated(ctx, email)
	return nil, &DomainMismatchError{
		CollegeSlug:    college.Slug,
		CollegeName:    college.Name,
		RequiredDomain: college.EmailDomain,
	}
}

// purgeUnvalidated deletes a speculatively created candidate record that
// never passed the gate. Bound users and organizational accounts are left
// untouched. Purge failures are logged, not surfaced: the rejection stands
// either way.
func (g *DomainGate) purgeUnvalidated(ctx context.Context, email string) {
	user, err := g.users.GetByEmail(ctx, email)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			g.logger.ErrorContext(ctx, "purge lookup failed", "err", err)
		}
		return
	}
	if user.Role != domainauth.RoleCandidate || user.Bound() {
		return
	}
	if delErr := g.users.Delete(ctx, user.ID); delErr != nil && !apperrors.IsNotFound(delErr) {
		g.logger.ErrorContext(ctx, "purge delete failed", "err", delErr, "user_id", user.ID)
		return
	}
	g.logger.InfoContext(ctx, "purged unvalidated candidate", "user_id", user.ID)
}
