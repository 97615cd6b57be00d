package oidc

// Package oidc provides the OIDC/OAuth2 authentication adapter. Google is
// the expected provider, but any issuer with a standard discovery document
// works.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/ports"
)

const stateLen = 32

// Provider implements ports.AuthProvider using OIDC/OAuth2.
type Provider struct {
	config     *oauth2.Config
	httpClient *http.Client

	oidcProvider *gooidc.Provider
	verifier     *gooidc.IDTokenVerifier
}

// ProviderConfig holds configuration for the OIDC provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	IssuerURL    string
	HTTPClient   *http.Client // optional, defaults to a 30s-timeout client
}

// NewProvider creates a new OIDC provider from a discovery document.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}
	if cfg.IssuerURL == "" {
		return nil, errors.New("issuer URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(cfg.IssuerURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	scopes := strings.Fields(cfg.Scope)
	if len(scopes) == 0 {
		scopes = []string{gooidc.ScopeOpenID, "profile", "email"}
	}

	return &Provider{
		httpClient:   httpClient,
		oidcProvider: op,
		verifier:     op.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     op.Endpoint(),
		},
	}, nil
}

// Begin starts the flow and returns the provider auth URL plus fresh state and nonce.
func (p *Provider) Begin(_ context.Context, in ports.BeginInput) (string, string, string, error) {
	if in.RedirectURL == "" {
		return "", "", "", errors.New("redirect URL is required")
	}

	state, err := randomToken(stateLen)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomToken(stateLen)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}

	authURL := p.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
	return authURL, state, nonce, nil
}

// Exchange completes the flow: code → token → verified ID token → profile.
func (p *Provider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Profile, error) {
	if in.Code == "" {
		return domainauth.Profile{}, errors.New("authorization code is required")
	}
	if in.Nonce == "" {
		return domainauth.Profile{}, errors.New("nonce is required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	tok, err := p.config.Exchange(ctx, in.Code)
	if err != nil {
		return domainauth.Profile{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	rawID, ok := tok.Extra("id_token").(string)
	if !ok || rawID == "" {
		return domainauth.Profile{}, errors.New("missing id_token in token response")
	}
	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return domainauth.Profile{}, fmt.Errorf("verify id_token: %w", err)
	}

	var claims idTokenClaims
	if err := idTok.Claims(&claims); err != nil {
		return domainauth.Profile{}, fmt.Errorf("parse id_token claims: %w", err)
	}
	if idTok.Nonce != in.Nonce {
		return domainauth.Profile{}, errors.New("invalid nonce")
	}

	profile := profileFromClaims(claims)
	if profile.Email == "" {
		return domainauth.Profile{}, errors.New("id_token carries no email")
	}

	expiresAt := time.Now().Add(time.Hour)
	if !tok.Expiry.IsZero() {
		expiresAt = tok.Expiry
	}
	profile.ExpiresAt = expiresAt
	return profile, nil
}

// idTokenClaims is the subset of Google ID token claims we consume.
type idTokenClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// profileFromClaims maps raw ID token claims to a Profile. Unverified
// emails are dropped: the domain gate downstream must only ever see
// addresses the provider vouches for.
func profileFromClaims(c idTokenClaims) domainauth.Profile {
	if !c.EmailVerified {
		return domainauth.Profile{}
	}
	name := c.Name
	if name == "" {
		name = strings.TrimSpace(c.GivenName + " " + c.FamilyName)
	}
	return domainauth.Profile{
		Email:       strings.ToLower(c.Email),
		DisplayName: name,
	}
}

// randomToken generates a cryptographically secure URL-safe string of exactly n chars.
func randomToken(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	b := make([]byte, (n*3+3)/4+1)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
