package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"plaintext/internal/service"
)

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req service.CreatePostRequest
	if err := h.decode(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, post, http.StatusCreated)
}

func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	posts, err := h.PostService.GetFeed(r.Context(), id, pageFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, posts, http.StatusOK)
}

func (h *Handlers) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	posts, err := h.PostService.GetUserPosts(r.Context(), id, mux.Vars(r)["username"], pageFromQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, posts, http.StatusOK)
}

func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	state, err := h.InteractionService.ToggleLike(r.Context(), id.Username, mux.Vars(r)["postId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, state, http.StatusOK)
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req service.CommentRequest
	if err := h.decode(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	comment, err := h.InteractionService.AddComment(r.Context(), id.Username, mux.Vars(r)["postId"], req.Text)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, comment, http.StatusCreated)
}

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.InteractionService.GetComments(r.Context(), mux.Vars(r)["postId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, comments, http.StatusOK)
}
