package auth

// Package auth contains simple hand-written test doubles for auth ports and
// in-memory repository fakes. These are lightweight and suitable for unit
// tests without codegen or a database.

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devxconsultancy/assess-ui-api/internal/core"
	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
	apperrors "github.com/devxconsultancy/assess-ui-api/internal/errors"
	"github.com/devxconsultancy/assess-ui-api/internal/ports"
)

// Ensure compile-time conformance to ports and core interfaces.
var (
	_ ports.AuthProvider     = (*MockAuthProvider)(nil)
	_ core.UserRepository    = (*MemoryUserRepository)(nil)
	_ core.CollegeRepository = (*MemoryCollegeRepository)(nil)
)

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Profile, error)

	// Deterministic values for predictable testing
	AuthURL        string
	StatePrefix    string
	NoncePrefix    string
	DefaultProfile domainauth.Profile

	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		DefaultProfile: domainauth.Profile{
			Email:       "mock.user@example.com",
			DisplayName: "Mock User",
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}
	statePrefix := m.StatePrefix
	if statePrefix == "" {
		statePrefix = "state"
	}
	noncePrefix := m.NoncePrefix
	if noncePrefix == "" {
		noncePrefix = "nonce"
	}

	state := fmt.Sprintf("%s-%d", statePrefix, m.callCount)
	nonce := fmt.Sprintf("%s-%d", noncePrefix, m.callCount)
	return authURL, state, nonce, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Profile, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	profile := m.DefaultProfile
	if profile.Email == "" {
		profile.Email = "mock.user@example.com"
		profile.DisplayName = "Mock User"
	}
	profile.ExpiresAt = time.Now().Add(time.Hour)
	return profile, nil
}

// MemoryUserRepository is an in-memory user store keyed by lowercase email.
// BindCollege performs its conditional update under one lock, giving the
// same one-winner semantics as the database upsert, which makes this fake
// usable in concurrency tests.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*model.User
}

// NewMemoryUserRepository creates an empty in-memory user repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*model.User)}
}

func cloneUser(u *model.User) *model.User {
	clone := *u
	if u.College != nil {
		binding := *u.College
		clone.College = &binding
	}
	return &clone
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, apperrors.NotFound("user not found")
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (r *MemoryUserRepository) CreateStaff(ctx context.Context, user *model.User) (*model.User, error) {
	if user.Role != domainauth.RoleStaff && user.Role != domainauth.RoleAdmin {
		return nil, apperrors.Validationf("role %q is not an organizational role", user.Role)
	}
	return r.insert(ctx, user)
}

func (r *MemoryUserRepository) CreateCandidate(ctx context.Context, user *model.User) (*model.User, error) {
	if user.Role != domainauth.RoleCandidate {
		return nil, apperrors.Validationf("role %q is not candidate", user.Role)
	}
	return r.insert(ctx, user)
}

func (r *MemoryUserRepository) insert(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return nil, apperrors.Conflictf("user %s already exists", user.Email)
	}
	stored := cloneUser(user)
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()
	stored.LastLoginAt = stored.CreatedAt
	r.users[user.Email] = stored
	return cloneUser(stored), nil
}

func (r *MemoryUserRepository) BindCollege(_ context.Context, params core.BindCollegeParams) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[params.Email]
	if !ok {
		existing = &model.User{
			ID:        uuid.NewString(),
			Email:     params.Email,
			Username:  params.Username,
			Role:      domainauth.RoleCandidate,
			CreatedAt: time.Now().UTC(),
		}
		r.users[params.Email] = existing
	}
	if existing.College == nil {
		existing.College = &model.CollegeBinding{
			CollegeID:   params.College.ID,
			CollegeSlug: params.College.Slug,
			EmailDomain: params.College.EmailDomain,
		}
	}
	existing.LastLoginAt = time.Now().UTC()
	return cloneUser(existing), nil
}

func (r *MemoryUserRepository) TouchLogin(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.LastLoginAt = time.Now().UTC()
			return nil
		}
	}
	return apperrors.NotFound("user not found")
}

func (r *MemoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return apperrors.NotFound("user not found")
}

// MemoryCollegeRepository is an in-memory college store for unit tests.
type MemoryCollegeRepository struct {
	mu        sync.Mutex
	colleges  []*model.College
	resources map[string][]*model.CollegeResource
}

// NewMemoryCollegeRepository creates a college repository seeded with the given colleges.
func NewMemoryCollegeRepository(colleges ...*model.College) *MemoryCollegeRepository {
	repo := &MemoryCollegeRepository{resources: make(map[string][]*model.CollegeResource)}
	for _, c := range colleges {
		repo.colleges = append(repo.colleges, c)
	}
	return repo
}

// AddResource registers a resource for a college.
func (r *MemoryCollegeRepository) AddResource(_ context.Context, collegeID, name string) (*model.CollegeResource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := &model.CollegeResource{
		ID:        uuid.NewString(),
		CollegeID: collegeID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	r.resources[collegeID] = append(r.resources[collegeID], res)
	return res, nil
}

func (r *MemoryCollegeRepository) find(match func(*model.College) bool) (*model.College, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.colleges {
		if match(c) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, apperrors.NotFound("college not found")
}

func (r *MemoryCollegeRepository) GetBySlug(_ context.Context, slug string) (*model.College, error) {
	return r.find(func(c *model.College) bool { return c.Slug == slug })
}

func (r *MemoryCollegeRepository) GetByID(_ context.Context, id string) (*model.College, error) {
	return r.find(func(c *model.College) bool { return c.ID == id })
}

func (r *MemoryCollegeRepository) GetByEmailDomain(_ context.Context, domain string) (*model.College, error) {
	return r.find(func(c *model.College) bool { return c.EmailDomain == domain })
}

func (r *MemoryCollegeRepository) ListResources(_ context.Context, collegeID string) ([]*model.CollegeResource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.CollegeResource(nil), r.resources[collegeID]...), nil
}

func (r *MemoryCollegeRepository) Create(_ context.Context, req *model.CreateCollegeRequest) (*model.College, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.colleges {
		if c.Slug == req.Slug || c.EmailDomain == req.EmailDomain {
			return nil, apperrors.Conflict("college slug or email domain already registered")
		}
	}
	now := time.Now().UTC()
	college := &model.College{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        req.Slug,
		EmailDomain: req.EmailDomain,
		Status:      req.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.colleges = append(r.colleges, college)
	clone := *college
	return &clone, nil
}

func (r *MemoryCollegeRepository) List(_ context.Context, limit, offset int) ([]*model.College, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offset >= len(r.colleges) {
		return nil, nil
	}
	end := len(r.colleges)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]*model.College, 0, end-offset)
	for _, c := range r.colleges[offset:end] {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}
