package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devxconsultancy/assess-ui-api/config"
)

func TestBuildAuthProviderMockMode(t *testing.T) {
	provider, err := BuildAuthProvider(config.AuthConfig{
		Mode:    config.AuthModeMock,
		DevAuth: config.DevAuthConfig{Email: "dev@example.com", DisplayName: "Dev User"},
	}, nil)

	require.NoError(t, err)
	assert.NotNil(t, provider)
}

func TestBuildAuthProviderOAuthRequiresCredentials(t *testing.T) {
	_, err := BuildAuthProvider(config.AuthConfig{Mode: config.AuthModeOAuth}, nil)
	require.Error(t, err)
}

func TestBuildAuthProviderUnknownMode(t *testing.T) {
	_, err := BuildAuthProvider(config.AuthConfig{Mode: "saml"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown auth mode")
}

func TestBuildTokenCodec(t *testing.T) {
	codec, err := BuildTokenCodec(config.SessionConfig{
		Secret: "0123456789abcdef0123456789abcdef",
		Issuer: "assess-ui-api",
		TTL:    time.Hour,
	})
	require.NoError(t, err)
	assert.NotNil(t, codec)
}

func TestBuildTokenCodecRejectsShortSecret(t *testing.T) {
	_, err := BuildTokenCodec(config.SessionConfig{Secret: "too-short"})
	require.Error(t, err)
}
