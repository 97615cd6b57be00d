package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/devxconsultancy/assess-ui-api/internal/core"
	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
	apperrors "github.com/devxconsultancy/assess-ui-api/internal/errors"
	"github.com/devxconsultancy/assess-ui-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Resolver *IdentityResolver
	Gate     *DomainGate
	Binder   *BindingEngine
	Sessions *SessionService
	Users    core.UserRepository
	Colleges core.CollegeRepository
	Logger   *slog.Logger
}

// AuthService orchestrates the login flow: provider exchange, identity
// resolution, domain gating, college binding, and token minting. Rejections
// surface as typed errors for the HTTP boundary to translate into redirects.
type AuthService struct {
	provider ports.AuthProvider
	resolver *IdentityResolver
	gate     *DomainGate
	binder   *BindingEngine
	sessions *SessionService
	users    core.UserRepository
	colleges core.CollegeRepository
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		provider: opts.Provider,
		resolver: opts.Resolver,
		gate:     opts.Gate,
		binder:   opts.Binder,
		sessions: opts.Sessions,
		users:    opts.Users,
		colleges: opts.Colleges,
		logger:   logger.With("component", "auth_service"),
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth
// URL with state and nonce for the caller to stash in short-lived cookies.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}
	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
// CollegeSlug is the login surface the user came from; empty for the
// generic login page.
type CompleteLoginInput struct {
	Code        string
	State       string
	Nonce       string
	CollegeSlug string
}

// CompleteLoginResult contains the minted session after a completed login.
type CompleteLoginResult struct {
	Token  string
	Claims domainauth.Claims
	// BindingChanged reports that the durable record gained a binding during
	// this login, so the client should round-trip through session refresh.
	BindingChanged bool
}

// CompleteLogin exchanges the authorization code, resolves the identity,
// runs the gate and binding engine for candidates with a college claim, and
// mints the session token. Gate and binding rejections come back as
// *DomainMismatchError and *CollegeConflictError.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	profile, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	resolution, err := s.resolver.Resolve(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	if resolution.Role != domainauth.RoleCandidate {
		return s.mintResult(ClaimsForUser(resolution.User), false)
	}
	return s.completeCandidateLogin(ctx, profile, resolution, input.CollegeSlug)
}

func (s *AuthService) completeCandidateLogin(
	ctx context.Context,
	profile domainauth.Profile,
	resolution *Resolution,
	collegeSlug string,
) (*CompleteLoginResult, error) {
	if collegeSlug == "" {
		// Generic login page: no college claim to validate against.
		if resolution.Pending() {
			return s.mintResult(ClaimsForPending(profile), false)
		}
		return s.mintResult(ClaimsForUser(resolution.User), false)
	}

	// An existing binding to a different college wins over the domain gate:
	// the user gets told to sign out, not that their email is wrong.
	wasBound := resolution.User != nil && resolution.User.Bound()
	if wasBound && resolution.User.College.CollegeSlug != collegeSlug {
		return nil, &CollegeConflictError{
			RequestedSlug: collegeSlug,
			ExistingSlug:  resolution.User.College.CollegeSlug,
		}
	}

	college, err := s.gate.Validate(ctx, profile.Email, collegeSlug)
	if err != nil {
		return nil, err
	}
	bound, err := s.binder.Bind(ctx, profile.Email, profile.DisplayName, college)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "candidate login completed",
		"user_id", bound.ID, "college_slug", college.Slug, "first_bind", !wasBound)
	return s.mintResult(ClaimsForUser(bound), !wasBound)
}

// RefreshInput groups parameters for a session refresh. Current identifies
// the session being refreshed; CollegeID/CollegeSlug carry an optional
// college context to adopt when the user is still unbound.
type RefreshInput struct {
	Current     domainauth.Claims
	CollegeID   string
	CollegeSlug string
}

// RefreshResult contains the re-minted session.
type RefreshResult struct {
	Token  string
	Claims domainauth.Claims
}

// Refresh reconciles durable user state into a freshly minted token. The
// durable store wins over whatever the stale token carried. An unbound
// candidate adopts the supplied college context when its domain validates,
// or falls back to detecting a college by email domain; adoption failures
// degrade to an unbound token rather than failing the refresh.
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (*RefreshResult, error) {
	if input.Current.Email == "" {
		return nil, errors.New("session email is required")
	}

	user, err := s.users.GetByEmail(ctx, input.Current.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// Still no durable record: re-mint the pending shape.
			claims := ClaimsForPending(domainauth.Profile{
				Email:       input.Current.Email,
				DisplayName: input.Current.DisplayName,
			})
			result, mintErr := s.mintResult(claims, false)
			if mintErr != nil {
				return nil, mintErr
			}
			return &RefreshResult{Token: result.Token, Claims: result.Claims}, nil
		}
		return nil, fmt.Errorf("refresh lookup: %w", err)
	}

	if user.Role == domainauth.RoleCandidate && !user.Bound() {
		if adopted := s.adoptCollege(ctx, user.Email, user.Username, input); adopted != nil {
			user = adopted
		}
	}

	result, err := s.mintResult(ClaimsForUser(user), false)
	if err != nil {
		return nil, err
	}
	return &RefreshResult{Token: result.Token, Claims: result.Claims}, nil
}

// adoptCollege tries to bind an unbound candidate during refresh: first to
// the explicit college context from the request, then to the college owning
// the user's email domain. Returns nil when no bind happened.
func (s *AuthService) adoptCollege(
	ctx context.Context,
	email, username string,
	input RefreshInput,
) *model.User {
	college := s.lookupAdoptionTarget(ctx, email, input)
	if college == nil {
		return nil
	}

	bound, err := s.binder.Bind(ctx, email, username, college)
	if err != nil {
		s.logger.WarnContext(ctx, "refresh college adoption skipped",
			"college_slug", college.Slug, "err", err)
		return nil
	}
	return bound
}

func (s *AuthService) lookupAdoptionTarget(ctx context.Context, email string, input RefreshInput) *model.College {
	switch {
	case input.CollegeSlug != "":
		college, err := s.colleges.GetBySlug(ctx, input.CollegeSlug)
		if err != nil {
			s.logger.WarnContext(ctx, "refresh college lookup failed", "college_slug", input.CollegeSlug, "err", err)
			return nil
		}
		return college
	case input.CollegeID != "":
		college, err := s.colleges.GetByID(ctx, input.CollegeID)
		if err != nil {
			s.logger.WarnContext(ctx, "refresh college lookup failed", "college_id", input.CollegeID, "err", err)
			return nil
		}
		return college
	default:
		college, err := s.colleges.GetByEmailDomain(ctx, domainauth.EmailDomain(email))
		if err != nil {
			if !apperrors.IsNotFound(err) {
				s.logger.WarnContext(ctx, "refresh domain detection failed", "err", err)
			}
			return nil
		}
		if !college.Active() {
			return nil
		}
		return college
	}
}

func (s *AuthService) mintResult(claims domainauth.Claims, bindingChanged bool) (*CompleteLoginResult, error) {
	token, err := s.sessions.Mint(claims)
	if err != nil {
		return nil, err
	}
	return &CompleteLoginResult{Token: token, Claims: claims, BindingChanged: bindingChanged}, nil
}
