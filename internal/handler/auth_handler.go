package handlers

import (
	"net/http"

	"plaintext/internal/service"
)

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := h.decode(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.AuthService.Signup(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, MessageResponse{Message: "account created"}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := h.decode(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	result, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, result, http.StatusOK)
}

func (h *Handlers) Policy(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, h.AuthService.Policy(), http.StatusOK)
}

func (h *Handlers) AcceptPolicy(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	if err := h.AuthService.AcceptPolicy(r.Context(), id.Username); err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, MessageResponse{Message: "terms accepted"}, http.StatusOK)
}
