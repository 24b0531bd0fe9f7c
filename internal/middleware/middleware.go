package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"plaintext/internal/apperror"
	handlers "plaintext/internal/handler"
	"plaintext/internal/logger"
	"plaintext/internal/models"
	"plaintext/internal/service"
	"plaintext/internal/token"
)

type Middleware func(http.Handler) http.Handler

// Authenticator resolves a bearer token to the caller it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

// AuthMiddleware attaches the caller's identity when the request carries a
// valid bearer token. A missing or bad token leaves the request
// unauthenticated and AccessPolicy decides. Any other failure, such as the
// account lookup hitting a storage error, ends the request with a 500.
func AuthMiddleware(auth Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := auth.Authenticate(r.Context(), tokenString)
			if err != nil {
				if !isCredentialFailure(err) {
					logger.Errorf("failed to authenticate %s %s: %v", r.Method, r.URL.Path, err)
					handlers.WriteError(w, "internal server error", http.StatusInternalServerError)
					return
				}
				logger.Warningf("rejected bearer token on %s %s: %s (%v)", r.Method, r.URL.Path, token.Kind(err), err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(service.WithIdentity(r.Context(), identity)))
		})
	}
}

func isCredentialFailure(err error) bool {
	return errors.Is(err, token.ErrMalformed) ||
		errors.Is(err, token.ErrBadSignature) ||
		errors.Is(err, token.ErrExpired) ||
		errors.Is(err, apperror.ErrInvalidCredentials)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", false
	}
	tokenString = strings.TrimSpace(tokenString)
	return tokenString, tokenString != ""
}

// AccessPolicy enforces the access class of the matched mux route. It must
// be installed with Router.Use so the route is known when it runs.
func AccessPolicy(classOf func(routeName string) models.RouteClass) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class := models.RouteAuthenticated
			if route := mux.CurrentRoute(r); route != nil {
				class = classOf(route.GetName())
			}

			if class == models.RoutePublic {
				next.ServeHTTP(w, r)
				return
			}

			identity, ok := service.IdentityFromContext(r.Context())
			if !ok {
				handlers.WriteError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			if !identity.Role.Permits(class) {
				handlers.WriteError(w, "access denied", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware allows the configured origins; "*" allows any.
func CORSMiddleware(allowedOrigins []string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// TimeoutMiddleware bounds the request context, and so every storage call
// made on its behalf.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if timeout <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Infof("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// Chain wraps h so that the last middleware listed runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
