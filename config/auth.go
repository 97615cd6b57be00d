package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses OAuth/OIDC for authentication.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"        envDefault:"openid profile email"`
	IssuerURL    string `env:"ISSUER_URL"   envDefault:"https://accounts.google.com"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	Email       string `env:"EMAIL"        envDefault:"dev@example.com"`
	DisplayName string `env:"DISPLAY_NAME" envDefault:"Dev User"`
}

// SessionConfig controls session token signing.
type SessionConfig struct {
	// Secret signs session tokens (HS256); must be at least 32 bytes.
	Secret string `env:"SECRET,notEmpty"`
	// TTL is the fixed token lifetime.
	TTL time.Duration `env:"TTL" envDefault:"24h"`
	// Issuer is embedded in token claims.
	Issuer string `env:"ISSUER" envDefault:"assess-ui-api"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// Session token signing configuration.
	Session SessionConfig `envPrefix:"SESSION_"`

	// StaffDomainSuffix marks organizational accounts by email suffix.
	StaffDomainSuffix string `env:"STAFF_DOMAIN_SUFFIX" envDefault:"@devxconsultancy.com"`

	// AdminEmails is the exact-match admin allow-list.
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:";"`

	// StaffEmails is the exact-match staff/HR allow-list.
	StaffEmails []string `env:"HR_EMAILS" envSeparator:";"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.StaffDomainSuffix = strings.ToLower(strings.TrimSpace(a.StaffDomainSuffix))
	if a.StaffDomainSuffix != "" && !strings.HasPrefix(a.StaffDomainSuffix, "@") {
		a.StaffDomainSuffix = "@" + a.StaffDomainSuffix
	}
	a.AdminEmails = normalizeEmails(a.AdminEmails)
	a.StaffEmails = normalizeEmails(a.StaffEmails)
}

func normalizeEmails(emails []string) []string {
	out := emails[:0]
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}
