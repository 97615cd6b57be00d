package core

import (
	"context"

	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// CollegeRepository defines read access to college records plus the write
// operations used by the admin CLI. The auth core only reads.
type CollegeRepository interface {
	GetBySlug(ctx context.Context, slug string) (*model.College, error)
	GetByID(ctx context.Context, id string) (*model.College, error)
	GetByEmailDomain(ctx context.Context, domain string) (*model.College, error)
	ListResources(ctx context.Context, collegeID string) ([]*model.CollegeResource, error)

	Create(ctx context.Context, req *model.CreateCollegeRequest) (*model.College, error)
	List(ctx context.Context, limit, offset int) ([]*model.College, error)
	AddResource(ctx context.Context, collegeID, name string) (*model.CollegeResource, error)
}

// BindCollegeParams groups parameters for UserRepository.BindCollege.
type BindCollegeParams struct {
	Email    string
	Username string
	College  *model.College
}

// UserRepository defines the interface for user data operations.
// BindCollege and Delete are the only entry points that touch binding state.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)

	// CreateStaff inserts a staff or admin user. Organizational accounts are
	// implicitly trusted and carry no college binding.
	CreateStaff(ctx context.Context, user *model.User) (*model.User, error)

	// CreateCandidate inserts an unbound candidate (onboarding completion).
	CreateCandidate(ctx context.Context, user *model.User) (*model.User, error)

	// BindCollege atomically creates-or-binds the candidate row for
	// params.Email to params.College. The write is a single conditional
	// upsert: binding fields are only set when currently absent, so two
	// concurrent first binds resolve to exactly one winner. The returned
	// user reflects the stored row, which may be bound to a different
	// college than requested; callers compare and surface conflicts.
	BindCollege(ctx context.Context, params BindCollegeParams) (*model.User, error)

	// TouchLogin updates last_login_at for an existing user.
	TouchLogin(ctx context.Context, id string) error

	// Delete removes a user row entirely. Used only by the domain
	// validation gate's purge path.
	Delete(ctx context.Context, id string) error
}
