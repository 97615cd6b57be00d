package service

import (
	"fmt"

	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
	"github.com/devxconsultancy/assess-ui-api/internal/ports"
)

// SessionService mints and decodes session tokens. Tokens are immutable
// client-held credentials: every state change is a fresh mint, never a
// patch of the token in flight.
type SessionService struct {
	codec ports.TokenCodec
}

// NewSessionService constructs a new SessionService.
func NewSessionService(codec ports.TokenCodec) *SessionService {
	return &SessionService{codec: codec}
}

// ClaimsForUser is the single projection from a durable user record into
// token claims. Every mint for a known user goes through here so the token
// shape cannot drift between call sites.
func ClaimsForUser(user *model.User) domainauth.Claims {
	claims := domainauth.Claims{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.Username,
		Role:        user.Role,
	}
	if user.College != nil {
		claims.CollegeID = user.College.CollegeID
		claims.CollegeSlug = user.College.CollegeSlug
		claims.EmailDomain = user.College.EmailDomain
	}
	return claims
}

// ClaimsForPending projects a candidate profile with no durable record yet.
// The resulting token has no user id and routes only to onboarding surfaces.
func ClaimsForPending(profile domainauth.Profile) domainauth.Claims {
	return domainauth.Claims{
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		Role:        domainauth.RoleCandidate,
	}
}

// Mint signs claims into a token string.
func (s *SessionService) Mint(claims domainauth.Claims) (string, error) {
	token, err := s.codec.Mint(claims)
	if err != nil {
		return "", fmt.Errorf("mint session token: %w", err)
	}
	return token, nil
}

// Decode verifies a raw token and returns its claims. Any failure —
// signature, expiry, shape — comes back as the codec's invalid-token error
// with no partial claims.
func (s *SessionService) Decode(raw string) (domainauth.Claims, error) {
	return s.codec.Decode(raw)
}
