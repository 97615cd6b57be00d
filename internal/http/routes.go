package httpx

import (
	"log/slog"
	"net/http"
	"time"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth       AuthServiceInterface
	Sessions   SessionDecoder
	Colleges   CollegeServiceInterface
	Onboarding OnboardingService

	CookieDomain string
	SessionTTL   time.Duration
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router. The route guard wraps
// every path except static assets, the API namespace, and the auth
// endpoints themselves. Logging and panic recovery are applied by the
// caller so the whole chain shares one logger.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := NewAuthHandlers(AuthHandlersOptions{
		Svc:          services.Auth,
		Sessions:     services.Sessions,
		SessionTTL:   services.SessionTTL,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	})
	collegeHandlers := &CollegeHandlers{Svc: services.Colleges}
	candidateHandlers := &CandidateHandlers{Onboarding: services.Onboarding}
	loginPages := &LoginPageHandlers{Colleges: services.Colleges}

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	mux.HandleFunc("GET /auth/login", authHandlers.Login)
	mux.HandleFunc("GET /auth/callback", authHandlers.Callback)
	mux.HandleFunc("GET /auth/refresh-session", authHandlers.RefreshSession)
	mux.HandleFunc("POST /auth/refresh-session", authHandlers.RefreshSessionJSON)
	mux.HandleFunc("POST /auth/logout", authHandlers.Logout)

	mux.HandleFunc("GET /api/colleges/{slug}", collegeHandlers.Get)
	mux.HandleFunc("GET /api/colleges/{slug}/resources", collegeHandlers.ListResources)

	mux.HandleFunc("GET /login", loginPages.Generic)
	mux.HandleFunc("GET /login/{slug}", loginPages.College)

	mux.HandleFunc("GET /candidate/profile", candidateHandlers.Profile)
	mux.HandleFunc("POST /candidate/onboarding", candidateHandlers.CompleteOnboarding)

	mux.HandleFunc("GET /{$}", homeHandler)

	return Guard(services.Sessions)(mux)
}

// homeHandler is the authenticated landing surface: a claims echo the
// client app hydrates from. The guard has already bounced anonymous and
// inconsistent sessions before this runs.
func homeHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errUnauthenticated,
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"claims": claims})
}
