package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// routeClass partitions guarded paths: the generic login page, a college's
// branded login page, and everything else (the authenticated area).
type routeClass int

const (
	routePublicLogin routeClass = iota
	routeCollegeLogin
	routeAuthenticated
)

// onboardingPath is the one authenticated surface reachable by a candidate
// whose token has no durable user id yet.
const onboardingPath = "/candidate/profile"

var (
	errUnauthenticated = errors.New("authentication required")
	errForbidden       = errors.New("insufficient permissions")
)

// classifyRoute maps a request path to its guard class. The second return
// is the college slug for routeCollegeLogin.
func classifyRoute(path string) (routeClass, string) {
	if path == "/login" || path == "/login/" {
		return routePublicLogin, ""
	}
	if slug, ok := strings.CutPrefix(path, "/login/"); ok {
		return routeCollegeLogin, strings.TrimSuffix(slug, "/")
	}
	return routeAuthenticated, ""
}

// guardExempt reports whether the guard ignores a path entirely: static
// assets, the API namespace, health checks, and the auth endpoints that
// manage the session itself.
func guardExempt(path string) bool {
	return strings.HasPrefix(path, "/static/") ||
		strings.HasPrefix(path, "/api/") ||
		strings.HasPrefix(path, "/auth/") ||
		path == "/healthz"
}

// Guard returns the route-guard middleware. It decides allow versus redirect
// from the session token and the target route class alone; it never touches
// persisted state. A missing or unverifiable token counts as no token.
func Guard(sessions SessionDecoder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if guardExempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			class, slug := classifyRoute(r.URL.Path)
			claims, ok := decodeSession(r, sessions)
			if !ok {
				if class == routeAuthenticated {
					redirectToLogin(w, r)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			switch class {
			case routePublicLogin:
				http.Redirect(w, r, homePath(claims), http.StatusSeeOther)
			case routeCollegeLogin:
				guardCollegeLogin(w, r, next, claims, slug)
			default:
				guardAuthenticated(w, r, next, claims)
			}
		})
	}
}

// guardCollegeLogin handles an already-authenticated visit to a branded
// login page. A user bound elsewhere is bounced back to the same page with
// an explicit sign-out-first error instead of silently entering the app.
func guardCollegeLogin(
	w http.ResponseWriter,
	r *http.Request,
	next http.Handler,
	claims domainauth.Claims,
	slug string,
) {
	if claims.Bound() && claims.CollegeSlug != slug {
		// The error-carrying request itself must render, not re-redirect.
		if r.URL.Query().Get("error") != "" {
			next.ServeHTTP(w, r.WithContext(SetClaimsInContext(r.Context(), claims)))
			return
		}
		conflict := &service.CollegeConflictError{RequestedSlug: slug, ExistingSlug: claims.CollegeSlug}
		http.Redirect(w, r, loginErrorURL(slug, conflict.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, homePath(claims), http.StatusSeeOther)
}

// guardAuthenticated routes a token holder inside the authenticated area.
// Incomplete candidates are pinned to the onboarding surface; a candidate
// whose token carries a college id but no slug holds an inconsistent
// credential and is forced through a refresh round trip.
func guardAuthenticated(
	w http.ResponseWriter,
	r *http.Request,
	next http.Handler,
	claims domainauth.Claims,
) {
	if claims.Role == domainauth.RoleCandidate {
		if claims.Incomplete() && !strings.HasPrefix(r.URL.Path, "/candidate/") {
			http.Redirect(w, r, onboardingPath, http.StatusSeeOther)
			return
		}
		if claims.CollegeID != "" && claims.CollegeSlug == "" {
			http.Redirect(w, r, refreshSessionURL(safeRedirectPath(r.URL.RequestURI()), claims), http.StatusSeeOther)
			return
		}
	}
	next.ServeHTTP(w, r.WithContext(SetClaimsInContext(r.Context(), claims)))
}

// homePath is where an already-authenticated user lands when visiting a
// login page.
func homePath(claims domainauth.Claims) string {
	if claims.Role == domainauth.RoleCandidate {
		return onboardingPath
	}
	return "/"
}

// redirectToLogin sends an unauthenticated request to the generic login page
// with the original destination preserved.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login"
	if path := safeRedirectPath(r.URL.RequestURI()); path != "/" {
		target += "?redirect_uri=" + url.QueryEscape(path)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// decodeSession reads and verifies the session cookie for the guard.
func decodeSession(r *http.Request, sessions SessionDecoder) (domainauth.Claims, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return domainauth.Claims{}, false
	}
	claims, err := sessions.Decode(cookie.Value)
	if err != nil {
		return domainauth.Claims{}, false
	}
	return claims, true
}

// RequireAuth returns a middleware for API routes that requires a verified
// session token and puts its claims in the request context.
func RequireAuth(sessions SessionDecoder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := decodeSession(r, sessions)
			if !ok {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errUnauthenticated,
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(SetClaimsInContext(r.Context(), claims)))
		})
	}
}

// RequireRole returns a middleware that requires at least the given role.
// Role hierarchy: candidate < staff < admin.
func RequireRole(sessions SessionDecoder, required domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := decodeSession(r, sessions)
			if !ok {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errUnauthenticated,
				})
				return
			}
			if !hasRequiredRole(claims.Role, required) {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errForbidden,
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(SetClaimsInContext(r.Context(), claims)))
		})
	}
}

// hasRequiredRole checks if the user's role meets the required role.
func hasRequiredRole(userRole, requiredRole domainauth.Role) bool {
	roleHierarchy := map[domainauth.Role]int{
		domainauth.RoleCandidate: 0,
		domainauth.RoleStaff:     1,
		domainauth.RoleAdmin:     2,
	}

	userLevel, userExists := roleHierarchy[userRole]
	requiredLevel, requiredExists := roleHierarchy[requiredRole]

	if !userExists || !requiredExists {
		return false
	}

	return userLevel >= requiredLevel
}
