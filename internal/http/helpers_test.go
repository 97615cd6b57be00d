package httpx

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devxconsultancy/assess-ui-api/internal/adapters/token"
	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
	"github.com/devxconsultancy/assess-ui-api/internal/service"
)

// mockAuthService is a test double for the auth service behind AuthHandlers.
type mockAuthService struct {
	beginLoginFunc    func(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	completeLoginFunc func(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	refreshFunc       func(ctx context.Context, input service.RefreshInput) (*service.RefreshResult, error)
}

func (m *mockAuthService) BeginLogin(
	ctx context.Context,
	redirectURL string,
) (*service.BeginLoginResult, error) {
	if m.beginLoginFunc != nil {
		return m.beginLoginFunc(ctx, redirectURL)
	}
	return &service.BeginLoginResult{
		AuthURL: "https://idp.example.com/auth?state=test-state&nonce=test-nonce",
		State:   "test-state",
		Nonce:   "test-nonce",
	}, nil
}

func (m *mockAuthService) CompleteLogin(
	ctx context.Context,
	input service.CompleteLoginInput,
) (*service.CompleteLoginResult, error) {
	if m.completeLoginFunc != nil {
		return m.completeLoginFunc(ctx, input)
	}
	claims := boundCandidateClaims()
	return &service.CompleteLoginResult{Token: "minted-token", Claims: claims}, nil
}

func (m *mockAuthService) Refresh(
	ctx context.Context,
	input service.RefreshInput,
) (*service.RefreshResult, error) {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx, input)
	}
	return &service.RefreshResult{Token: "refreshed-token", Claims: boundCandidateClaims()}, nil
}

// mockCollegeService is a test double for the public college lookups.
type mockCollegeService struct {
	getBySlugFunc func(ctx context.Context, slug string) (*model.College, error)
	resourcesFunc func(ctx context.Context, slug string) ([]*model.CollegeResource, error)
}

func (m *mockCollegeService) GetBySlug(ctx context.Context, slug string) (*model.College, error) {
	if m.getBySlugFunc != nil {
		return m.getBySlugFunc(ctx, slug)
	}
	return &model.College{
		ID:          "college-1",
		Name:        "Acme College",
		Slug:        slug,
		EmailDomain: "acme.edu",
		Status:      model.CollegeStatusActive,
	}, nil
}

func (m *mockCollegeService) Resources(
	ctx context.Context,
	slug string,
) ([]*model.CollegeResource, error) {
	if m.resourcesFunc != nil {
		return m.resourcesFunc(ctx, slug)
	}
	return nil, nil
}

// mockOnboarding is a test double for candidate onboarding completion.
type mockOnboarding struct {
	completeFunc func(ctx context.Context, email, username string) (*model.User, error)
}

func (m *mockOnboarding) CompleteOnboarding(
	ctx context.Context,
	email, username string,
) (*model.User, error) {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, email, username)
	}
	return &model.User{
		ID:       "user-1",
		Email:    email,
		Username: username,
		Role:     domainauth.RoleCandidate,
	}, nil
}

// newTestCodec returns a real token codec so guard tests exercise actual
// signing and verification.
func newTestCodec(t *testing.T) *token.JWTCodec {
	t.Helper()
	codec, err := token.NewJWTCodec(token.Config{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		Issuer: "assess-ui-api-test",
	})
	require.NoError(t, err)
	return codec
}

func mintToken(t *testing.T, codec *token.JWTCodec, claims domainauth.Claims) string {
	t.Helper()
	raw, err := codec.Mint(claims)
	require.NoError(t, err)
	return raw
}

func boundCandidateClaims() domainauth.Claims {
	return domainauth.Claims{
		UserID:      "user-1",
		Email:       "jane@acme.edu",
		DisplayName: "Jane Doe",
		Role:        domainauth.RoleCandidate,
		CollegeID:   "college-1",
		CollegeSlug: "acme",
		EmailDomain: "acme.edu",
	}
}

func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{Name: sessionCookieName, Value: value}
}

// findCookie returns the named Set-Cookie from a response, or nil.
func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
