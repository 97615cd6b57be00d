package service

// Package service contains the application core: college registry, identity
// resolution, the domain validation gate, the college binding engine, and
// session token handling. HTTP handlers and CLIs call into this package;
// nothing here knows about cookies or redirects.

import (
	"context"
	"errors"
	"fmt"

	"github.com/devxconsultancy/assess-ui-api/internal/core"
	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
)

// CollegeService exposes registry reads plus the admin-surface writes.
// The auth flow only ever reads.
type CollegeService struct {
	colleges core.CollegeRepository
}

// NewCollegeService constructs a new CollegeService.
func NewCollegeService(colleges core.CollegeRepository) *CollegeService {
	return &CollegeService{colleges: colleges}
}

// GetBySlug returns the college for a login-page slug.
func (s *CollegeService) GetBySlug(ctx context.Context, slug string) (*model.College, error) {
	if slug == "" {
		return nil, errors.New("slug is required")
	}
	college, err := s.colleges.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get college by slug: %w", err)
	}
	return college, nil
}

// GetByID returns the college for a stored binding id.
func (s *CollegeService) GetByID(ctx context.Context, id string) (*model.College, error) {
	if id == "" {
		return nil, errors.New("college id is required")
	}
	college, err := s.colleges.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get college by id: %w", err)
	}
	return college, nil
}

// GetByEmailDomain returns the college that owns an email domain.
func (s *CollegeService) GetByEmailDomain(ctx context.Context, domain string) (*model.College, error) {
	if domain == "" {
		return nil, errors.New("email domain is required")
	}
	college, err := s.colleges.GetByEmailDomain(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("get college by email domain: %w", err)
	}
	return college, nil
}

// Resources lists the opaque resource references available to a college.
func (s *CollegeService) Resources(ctx context.Context, slug string) ([]*model.CollegeResource, error) {
	college, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	resources, err := s.colleges.ListResources(ctx, college.ID)
	if err != nil {
		return nil, fmt.Errorf("list college resources: %w", err)
	}
	return resources, nil
}

// Create registers a new college. Admin CLI only.
func (s *CollegeService) Create(ctx context.Context, req *model.CreateCollegeRequest) (*model.College, error) {
	college, err := s.colleges.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create college: %w", err)
	}
	return college, nil
}

// AddResource assigns a named resource to the college identified by slug.
// Admin CLI only.
func (s *CollegeService) AddResource(ctx context.Context, slug, name string) (*model.CollegeResource, error) {
	college, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	resource, err := s.colleges.AddResource(ctx, college.ID, name)
	if err != nil {
		return nil, fmt.Errorf("add college resource: %w", err)
	}
	return resource, nil
}

// List returns colleges with pagination. Admin CLI only.
func (s *CollegeService) List(ctx context.Context, limit, offset int) ([]*model.College, error) {
	colleges, err := s.colleges.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return colleges, nil
}
