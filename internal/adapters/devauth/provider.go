package devauth

// Package devauth provides a config-driven AuthProvider for local
// development. It short-circuits the OAuth flow by redirecting straight back
// to our own callback with locally generated state and nonce.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/ports"
)

// Config controls the dev auth provider behavior.
type Config struct {
	Email           string
	DisplayName     string
	SessionDuration time.Duration // default 8h when zero
}

// Provider implements ports.AuthProvider for local development.
// Exchange ignores the code and returns the configured profile.
type Provider struct {
	profile         domainauth.Profile
	sessionDuration time.Duration
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	name := cfg.DisplayName
	if name == "" {
		name = "Dev User"
	}
	return &Provider{
		profile: domainauth.Profile{
			Email:       cfg.Email,
			DisplayName: name,
		},
		sessionDuration: dur,
	}, nil
}

// Begin returns a local callback URL and fresh state and nonce.
func (p *Provider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	state, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	// The standard handler expects GET /auth/callback?code=...&state=...
	authURL := "/auth/callback?code=dev&state=" + state
	return authURL, state, nonce, nil
}

// Exchange returns the configured dev profile with a fresh expiry.
func (p *Provider) Exchange(_ context.Context, _ ports.ExchangeInput) (domainauth.Profile, error) {
	profile := p.profile
	profile.ExpiresAt = time.Now().Add(p.sessionDuration)
	return profile, nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	b := make([]byte, (n*3+3)/4+1)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
