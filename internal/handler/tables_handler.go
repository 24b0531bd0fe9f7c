package handlers

import (
	"net/http"
)

type HealthResponse struct {
	Status      string `json:"status"`
	CountTables int    `json:"countTables"`
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	count, err := h.TablesService.GetCountTablesDB(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, HealthResponse{Status: "ok", CountTables: count}, http.StatusOK)
}
