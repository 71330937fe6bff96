package handlers

import (
	"net/http"

	"github.com/vivekt74-lang/chunavmantra-backend/store"
)

type ElectionHandler struct {
	store *store.Store
}

func NewElectionHandler(st *store.Store) *ElectionHandler {
	return &ElectionHandler{store: st}
}

// GetElections handles GET /elections
func (h *ElectionHandler) GetElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.store.Elections(r.Context())
	if err != nil {
		writeServiceError(w, serviceStoreError("elections", err))
		return
	}

	respondJSON(w, http.StatusOK, elections)
}
