// Package mocks provides mock implementations for testing the auth core.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the repository interfaces in internal/core. Hand-written doubles for the
// auth ports live in the auth subpackage.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
package mocks

// Generate mock for CollegeRepository interface from internal/core package.
// This creates MockCollegeRepository with methods for all CollegeRepository interface methods:
// GetBySlug, GetByID, GetByEmailDomain, ListResources, Create, List, AddResource
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=college_repository_mock.go github.com/devxconsultancy/assess-ui-api/internal/core CollegeRepository

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods for all UserRepository interface methods:
// GetByEmail, GetByID, CreateStaff, CreateCandidate, BindCollege, TouchLogin, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/devxconsultancy/assess-ui-api/internal/core UserRepository
