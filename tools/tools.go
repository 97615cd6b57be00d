//go:build tools
// +build tools

// Package tools documents development tool dependencies. None of these are
// runtime dependencies; they are invoked via `go run` or installed globally.
package tools

// mockgen - generates the repository mocks in internal/mocks.
//   Invoked as `go run go.uber.org/mock/mockgen@v0.6.0` by the go:generate
//   directives in internal/mocks/generate.go; run `go generate ./internal/mocks`
//   after changing an interface in internal/core.
//
// Air - live reload during local development
//   Install: go install github.com/air-verse/air@v1.63.0
