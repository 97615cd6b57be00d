package token

// Package token provides the signed session token codec. Tokens are
// HMAC-signed JWTs held by the client; the server keeps only the signing key.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
)

const minSecretLen = 32

// ErrInvalidToken is returned for every decode failure: bad signature,
// expired, malformed, or wrong signing method. Callers never learn which.
var ErrInvalidToken = errors.New("invalid session token")

// JWTCodec signs and verifies session tokens with HS256.
type JWTCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// Config groups parameters for NewJWTCodec.
type Config struct {
	// Secret must be at least 32 bytes for HS256.
	Secret []byte
	Issuer string
	// TTL is the fixed token lifetime; defaults to 24h when zero.
	TTL time.Duration
}

// NewJWTCodec constructs a JWTCodec.
func NewJWTCodec(cfg Config) (*JWTCodec, error) {
	if len(cfg.Secret) < minSecretLen {
		return nil, fmt.Errorf("session secret must be at least %d bytes", minSecretLen)
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &JWTCodec{
		secret: cfg.Secret,
		issuer: cfg.Issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// sessionClaims is the wire shape of a session token.
type sessionClaims struct {
	domainauth.Claims
	jwt.RegisteredClaims
}

// Mint produces a signed token for the given claims. Minting twice for the
// same state yields equivalent tokens; only the timestamps differ.
func (c *JWTCodec) Mint(claims domainauth.Claims) (string, error) {
	if claims.Email == "" {
		return "", errors.New("claims email is required")
	}
	if !claims.Role.Valid() {
		return "", fmt.Errorf("unknown role %q", claims.Role)
	}

	now := c.now()
	wire := sessionClaims{
		Claims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   claims.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wire).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and registered claims and returns the
// session claims. Any failure yields ErrInvalidToken with no partial data.
func (c *JWTCodec) Decode(raw string) (domainauth.Claims, error) {
	if raw == "" {
		return domainauth.Claims{}, ErrInvalidToken
	}

	var wire sessionClaims
	parsed, err := jwt.ParseWithClaims(raw, &wire, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return domainauth.Claims{}, ErrInvalidToken
	}
	if wire.Email == "" || !wire.Role.Valid() {
		return domainauth.Claims{}, ErrInvalidToken
	}
	return wire.Claims, nil
}
