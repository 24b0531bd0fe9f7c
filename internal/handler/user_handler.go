package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	WriteJSON(w, id, http.StatusOK)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	profile, err := h.UserService.GetProfile(r.Context(), id, mux.Vars(r)["username"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, profile, http.StatusOK)
}

func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	target := mux.Vars(r)["username"]
	if err := h.InteractionService.FollowUser(r.Context(), id.Username, target); err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, MessageResponse{Message: "now following " + target}, http.StatusOK)
}

func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	target := mux.Vars(r)["username"]
	if err := h.InteractionService.UnfollowUser(r.Context(), id.Username, target); err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, MessageResponse{Message: "unfollowed " + target}, http.StatusOK)
}
