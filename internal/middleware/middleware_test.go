package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plaintext/internal/apperror"
	"plaintext/internal/models"
	"plaintext/internal/service"
	"plaintext/internal/token"
)

type fakeAuthenticator struct {
	identities map[string]*models.Identity
	failures   map[string]error
	calls      int
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, tok string) (*models.Identity, error) {
	f.calls++
	if identity, ok := f.identities[tok]; ok {
		return identity, nil
	}
	if err, ok := f.failures[tok]; ok {
		return nil, err
	}
	return nil, token.ErrBadSignature
}

var (
	aliceIdentity = &models.Identity{AccountID: "acc-alice", Username: "alice", Role: models.RoleUser}
	rootIdentity  = &models.Identity{AccountID: "acc-root", Username: "root", Role: models.RoleAdmin}
)

func identityEcho(t *testing.T, seen **models.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := service.IdentityFromContext(r.Context())
		*seen = identity
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	auth := &fakeAuthenticator{
		identities: map[string]*models.Identity{"good": aliceIdentity},
		failures: map[string]error{
			"stale":   fmt.Errorf("%w: token is expired", token.ErrExpired),
			"deleted": apperror.ErrInvalidCredentials,
			"outage":  errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
		},
	}

	tests := []struct {
		name      string
		header    string
		wantUser  string
		wantCalls int
		wantCode  int
	}{
		{name: "no header passes through", header: "", wantCalls: 0, wantCode: http.StatusNoContent},
		{name: "non bearer scheme passes through", header: "Basic abc", wantCalls: 0, wantCode: http.StatusNoContent},
		{name: "empty bearer passes through", header: "Bearer  ", wantCalls: 0, wantCode: http.StatusNoContent},
		{name: "valid token sets identity", header: "Bearer good", wantUser: "alice", wantCalls: 1, wantCode: http.StatusNoContent},
		{name: "bad token passes through unauthenticated", header: "Bearer forged", wantCalls: 1, wantCode: http.StatusNoContent},
		{name: "expired token passes through unauthenticated", header: "Bearer stale", wantCalls: 1, wantCode: http.StatusNoContent},
		{name: "deleted account passes through unauthenticated", header: "Bearer deleted", wantCalls: 1, wantCode: http.StatusNoContent},
		{name: "storage failure is a server error", header: "Bearer outage", wantCalls: 1, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth.calls = 0
			var seen *models.Identity

			req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			AuthMiddleware(auth)(identityEcho(t, &seen)).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantCalls, auth.calls)
			if tt.wantUser == "" {
				assert.Nil(t, seen)
			} else {
				require.NotNil(t, seen)
				assert.Equal(t, tt.wantUser, seen.Username)
			}
		})
	}
}

func newPolicyRouter() *mux.Router {
	classes := map[string]models.RouteClass{
		"public": models.RoutePublic,
		"feed":   models.RouteAuthenticated,
		"admin":  models.RouteAdmin,
	}

	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

	router := mux.NewRouter()
	router.HandleFunc("/public", ok).Name("public")
	router.HandleFunc("/feed", ok).Name("feed")
	router.HandleFunc("/admin", ok).Name("admin")
	router.HandleFunc("/unnamed", ok)
	router.Use(AccessPolicy(func(name string) models.RouteClass {
		if class, found := classes[name]; found {
			return class
		}
		return models.RouteAuthenticated
	}))

	return router
}

func TestAccessPolicy(t *testing.T) {
	router := newPolicyRouter()

	tests := []struct {
		name     string
		path     string
		identity *models.Identity
		want     int
	}{
		{"public without identity", "/public", nil, http.StatusOK},
		{"authenticated without identity", "/feed", nil, http.StatusUnauthorized},
		{"authenticated with identity", "/feed", aliceIdentity, http.StatusOK},
		{"admin route for user", "/admin", aliceIdentity, http.StatusForbidden},
		{"admin route for admin", "/admin", rootIdentity, http.StatusOK},
		{"unnamed route needs identity", "/unnamed", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.identity != nil {
				req = req.WithContext(service.WithIdentity(req.Context(), tt.identity))
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestAuthAndAccessPolicyTogether(t *testing.T) {
	auth := &fakeAuthenticator{identities: map[string]*models.Identity{"good": aliceIdentity}}
	handler := Chain(newPolicyRouter(), AuthMiddleware(auth))

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	handler := CORSMiddleware([]string{"https://app.example"})(next)

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
		req.Header.Set("Origin", "https://app.example")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.Equal(t, "https://app.example", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
		req.Header.Set("Origin", "https://evil.example")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/feed", nil)
		req.Header.Set("Origin", "https://app.example")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("wildcard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://any.example")
		rr := httptest.NewRecorder()

		CORSMiddleware([]string{"*"})(next).ServeHTTP(rr, req)

		assert.Equal(t, "https://any.example", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestTimeoutMiddleware(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, hasDeadline = r.Context().Deadline()
	})

	TimeoutMiddleware(time.Second)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)

	hasDeadline = false
	TimeoutMiddleware(0)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, hasDeadline)
}

func TestLoggingMiddleware_KeepsStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) })
	rr := httptest.NewRecorder()

	LoggingMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/posts", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { order = append(order, "handler") })

	Chain(final, mark("inner"), mark("outer")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
