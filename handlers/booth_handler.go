package handlers

import (
	"net/http"

	"github.com/vivekt74-lang/chunavmantra-backend/service"
	"github.com/vivekt74-lang/chunavmantra-backend/store"
)

type BoothHandler struct {
	store *store.Store
	svc   *service.BoothAnalytics
}

func NewBoothHandler(st *store.Store, svc *service.BoothAnalytics) *BoothHandler {
	return &BoothHandler{store: st, svc: svc}
}

// GetBoothDetails handles GET /booths/{boothId}
func (h *BoothHandler) GetBoothDetails(w http.ResponseWriter, r *http.Request) {
	boothID, err := parseIDVar(r, "boothId")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	election, err := resolveElection(r.Context(), h.store, r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	details, err := h.svc.BoothDetails(r.Context(), election.ElectionID, boothID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, details)
}

// GetBoothsByConstituency handles GET /booths/constituency/{acId}
func (h *BoothHandler) GetBoothsByConstituency(w http.ResponseWriter, r *http.Request) {
	acID, err := parseIDVar(r, "acId")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_, ok, err := h.store.ConstituencyByID(r.Context(), acID)
	if err != nil {
		writeServiceError(w, serviceStoreError("booths by constituency", err))
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "Constituency not found")
		return
	}

	booths, err := h.store.BoothsByConstituency(r.Context(), acID)
	if err != nil {
		writeServiceError(w, serviceStoreError("booths by constituency", err))
		return
	}

	respondJSON(w, http.StatusOK, booths)
}
