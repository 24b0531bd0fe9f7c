package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"plaintext/internal/models"
)

type route struct {
	name    string
	method  string
	path    string
	class   models.RouteClass
	handler func(h *Handlers) http.HandlerFunc
}

var routes = []route{
	{"health", http.MethodGet, "/health", models.RoutePublic, func(h *Handlers) http.HandlerFunc { return h.HealthHandler }},

	{"auth.signup", http.MethodPost, "/api/auth/signup", models.RoutePublic, func(h *Handlers) http.HandlerFunc { return h.Signup }},
	{"auth.login", http.MethodPost, "/api/auth/login", models.RoutePublic, func(h *Handlers) http.HandlerFunc { return h.Login }},
	{"auth.tnc", http.MethodGet, "/api/auth/tnc", models.RoutePublic, func(h *Handlers) http.HandlerFunc { return h.Policy }},
	{"auth.tnc.accept", http.MethodPost, "/api/auth/tnc/accept", models.RouteAuthenticated, func(h *Handlers) http.HandlerFunc { return h.AcceptPolicy }},

	{"me", http.MethodGet, "/api/me", models.RouteAuthenticated, func(h *Handlers) http.HandlerFunc { return h.GetCurrentUser }},
	{"users.get", http.MethodGet, "/api/users/{username}", models.RouteAuthenticated, func(h *Handlers) http.HandlerFunc { return h.GetUser }},
	{"users.follow", http.MethodPost, "/api/users/{username}/follow", models.RouteAuthenticated, func(h *Handlers) http.HandlerFunc { return h.Follow }},
	{"users.unfollow", http.MethodDelete, "/api/users/{username}/follow", models.RouteAuthenticated, func(h *Handlers) http.HandlerFunc { return h.Unfollow }},

	{"posts.create", http.MethodPost, "/api/posts", models.RouteAuthenticated, func(h *Handlers) http.HandlerFunc { return h.CreatePost }},
	{"posts.feed", http.MethodGet, "/api/feed", models.RouteAuthenticated, func(h *Handlers) http.HandlerFunc { return h.GetFeed }},
	{"posts.byUser", http.MethodGet, "/api/posts/user/{username}", models.RouteAuthenticated, func(h *Handlers) http.HandlerFunc { return h.GetUserPosts }},
	{"posts.like", http.MethodPost, "/api/posts/{postId}/like", models.RouteAuthenticated, func(h *Handlers) http.HandlerFunc { return h.ToggleLike }},
	{"posts.comments.add", http.MethodPost, "/api/posts/{postId}/comments", models.RouteAuthenticated, func(h *Handlers) http.HandlerFunc { return h.AddComment }},
	{"posts.comments.list", http.MethodGet, "/api/posts/{postId}/comments", models.RouteAuthenticated, func(h *Handlers) http.HandlerFunc { return h.GetComments }},
}

var routeClasses = func() map[string]models.RouteClass {
	classes := make(map[string]models.RouteClass, len(routes))
	for _, rt := range routes {
		classes[rt.name] = rt.class
	}
	return classes
}()

// RouteClass returns the access class registered for a named route.
// Unknown names are treated as authenticated.
func RouteClass(name string) models.RouteClass {
	if class, ok := routeClasses[name]; ok {
		return class
	}
	return models.RouteAuthenticated
}

// NewRouter registers every route under its name so access checks can look
// the class up from the matched route.
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "not found", http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	for _, rt := range routes {
		router.HandleFunc(rt.path, rt.handler(h)).Methods(rt.method).Name(rt.name)
	}

	return router
}
