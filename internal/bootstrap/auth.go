package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/devxconsultancy/assess-ui-api/config"
	"github.com/devxconsultancy/assess-ui-api/internal/adapters/devauth"
	"github.com/devxconsultancy/assess-ui-api/internal/adapters/oidc"
	"github.com/devxconsultancy/assess-ui-api/internal/adapters/token"
	"github.com/devxconsultancy/assess-ui-api/internal/ports"
)

// BuildAuthProvider creates the identity-provider adapter for the configured
// auth mode. Dev mode short-circuits the external round trip with a local
// provider returning a fixed profile.
//
//nolint:ireturn // the provider port is the whole point here.
func BuildAuthProvider(cfg config.AuthConfig, logger *slog.Logger) (ports.AuthProvider, error) {
	switch cfg.Mode {
	case config.AuthModeMock:
		prov, err := devauth.NewProvider(devauth.Config{
			Email:       cfg.DevAuth.Email,
			DisplayName: cfg.DevAuth.DisplayName,
		})
		if err != nil {
			return nil, fmt.Errorf("create dev auth provider: %w", err)
		}
		if logger != nil {
			logger.Warn("using mock auth provider; do not run this in production", "email", cfg.DevAuth.Email)
		}
		return prov, nil

	case config.AuthModeOAuth:
		prov, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			RedirectURL:  cfg.OAuth.RedirectURL,
			Scope:        cfg.OAuth.Scope,
			IssuerURL:    cfg.OAuth.IssuerURL,
		})
		if err != nil {
			return nil, fmt.Errorf("create OIDC provider: %w", err)
		}
		return prov, nil

	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}

// BuildTokenCodec creates the session token codec from signing configuration.
func BuildTokenCodec(cfg config.SessionConfig) (*token.JWTCodec, error) {
	codec, err := token.NewJWTCodec(token.Config{
		Secret: []byte(cfg.Secret),
		Issuer: cfg.Issuer,
		TTL:    cfg.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("create token codec: %w", err)
	}
	return codec, nil
}
