package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated profile.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Profile, error)
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// TokenCodec mints and verifies signed session tokens. Tokens are immutable
// client-held credentials: the only way to change one is to mint a
// replacement. Decode must treat every failure (signature, expiry, shape)
// as invalid and never return partial claims.
type TokenCodec interface {
	Mint(claims domainauth.Claims) (string, error)
	Decode(raw string) (domainauth.Claims, error)
}

// RoleClassifier determines the application role for an email address.
type RoleClassifier interface {
	Classify(email string, rules domainauth.RoleClassification) domainauth.Role
}
