package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
)

func newTestCodec(t *testing.T) *JWTCodec {
	t.Helper()
	codec, err := NewJWTCodec(Config{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		Issuer: "assess-test",
		TTL:    time.Hour,
	})
	require.NoError(t, err)
	return codec
}

func boundClaims() domainauth.Claims {
	return domainauth.Claims{
		UserID:      "user-1",
		Email:       "bob@acme.edu",
		DisplayName: "Bob",
		Role:        domainauth.RoleCandidate,
		CollegeID:   "college-1",
		CollegeSlug: "acme",
		EmailDomain: "acme.edu",
	}
}

func TestNewJWTCodec_ShortSecret(t *testing.T) {
	_, err := NewJWTCodec(Config{Secret: []byte("too short")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 bytes")
}

func TestJWTCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	raw, err := codec.Mint(boundClaims())
	require.NoError(t, err)

	got, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, boundClaims(), got)
}

func TestJWTCodec_RoundTrip_IncompleteIdentity(t *testing.T) {
	codec := newTestCodec(t)

	pending := domainauth.Claims{
		Email: "new@acme.edu",
		Role:  domainauth.RoleCandidate,
	}
	raw, err := codec.Mint(pending)
	require.NoError(t, err)

	got, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.True(t, got.Incomplete())
	assert.False(t, got.Bound())
	assert.Equal(t, pending, got)
}

func TestJWTCodec_MintTwiceDecodesEqual(t *testing.T) {
	codec := newTestCodec(t)

	first, err := codec.Mint(boundClaims())
	require.NoError(t, err)
	second, err := codec.Mint(boundClaims())
	require.NoError(t, err)

	a, err := codec.Decode(first)
	require.NoError(t, err)
	b, err := codec.Decode(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestJWTCodec_Decode_TamperedSignature(t *testing.T) {
	codec := newTestCodec(t)

	raw, err := codec.Mint(boundClaims())
	require.NoError(t, err)

	// Flip one byte of the signature segment.
	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Decode(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTCodec_Decode_TamperedPayload(t *testing.T) {
	codec := newTestCodec(t)

	raw, err := codec.Mint(boundClaims())
	require.NoError(t, err)

	other, err := codec.Mint(domainauth.Claims{
		UserID: "user-2", Email: "eve@other.edu", Role: domainauth.RoleCandidate,
	})
	require.NoError(t, err)

	// Splice eve's payload onto bob's signature.
	bobParts := strings.Split(raw, ".")
	eveParts := strings.Split(other, ".")
	spliced := eveParts[0] + "." + eveParts[1] + "." + bobParts[2]

	_, err = codec.Decode(spliced)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTCodec_Decode_Expired(t *testing.T) {
	codec := newTestCodec(t)

	past := time.Now().Add(-2 * time.Hour)
	codec.now = func() time.Time { return past }
	raw, err := codec.Mint(boundClaims())
	require.NoError(t, err)

	codec.now = time.Now
	_, err = codec.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTCodec_Decode_WrongKey(t *testing.T) {
	codec := newTestCodec(t)
	other, err := NewJWTCodec(Config{
		Secret: []byte("ffffffffffffffffffffffffffffffff"),
		TTL:    time.Hour,
	})
	require.NoError(t, err)

	raw, err := codec.Mint(boundClaims())
	require.NoError(t, err)

	_, err = other.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTCodec_Decode_Garbage(t *testing.T) {
	codec := newTestCodec(t)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Decode(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}

func TestJWTCodec_Mint_Validation(t *testing.T) {
	codec := newTestCodec(t)

	_, err := codec.Mint(domainauth.Claims{Role: domainauth.RoleCandidate})
	require.Error(t, err)

	_, err = codec.Mint(domainauth.Claims{Email: "x@y.z", Role: "superuser"})
	require.Error(t, err)
}
