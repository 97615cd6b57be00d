package oidc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFromClaims(t *testing.T) {
	tests := []struct {
		name       string
		claims     idTokenClaims
		wantEmail  string
		wantName   string
	}{
		{
			name:      "full claims",
			claims:    idTokenClaims{Email: "Bob@Acme.EDU", EmailVerified: true, Name: "Bob Jones"},
			wantEmail: "bob@acme.edu",
			wantName:  "Bob Jones",
		},
		{
			name:      "name assembled from parts",
			claims:    idTokenClaims{Email: "bob@acme.edu", EmailVerified: true, GivenName: "Bob", FamilyName: "Jones"},
			wantEmail: "bob@acme.edu",
			wantName:  "Bob Jones",
		},
		{
			name:      "given name only",
			claims:    idTokenClaims{Email: "bob@acme.edu", EmailVerified: true, GivenName: "Bob"},
			wantEmail: "bob@acme.edu",
			wantName:  "Bob",
		},
		{
			name:      "unverified email rejected",
			claims:    idTokenClaims{Email: "bob@acme.edu", EmailVerified: false, Name: "Bob"},
			wantEmail: "",
			wantName:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := profileFromClaims(tt.claims)
			assert.Equal(t, tt.wantEmail, got.Email)
			assert.Equal(t, tt.wantName, got.DisplayName)
		})
	}
}

func TestRandomToken(t *testing.T) {
	a, err := randomToken(32)
	require.NoError(t, err)
	assert.Len(t, a, 32)

	b, err := randomToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	empty, err := randomToken(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNewProvider_RequiredConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProviderConfig
		want string
	}{
		{name: "missing client id", cfg: ProviderConfig{ClientSecret: "s", RedirectURL: "r", IssuerURL: "i"}, want: "client ID"},
		{name: "missing client secret", cfg: ProviderConfig{ClientID: "c", RedirectURL: "r", IssuerURL: "i"}, want: "client secret"},
		{name: "missing redirect", cfg: ProviderConfig{ClientID: "c", ClientSecret: "s", IssuerURL: "i"}, want: "redirect URL"},
		{name: "missing issuer", cfg: ProviderConfig{ClientID: "c", ClientSecret: "s", RedirectURL: "r"}, want: "issuer URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
