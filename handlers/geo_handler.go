package handlers

import (
	"net/http"

	"github.com/vivekt74-lang/chunavmantra-backend/analytics"
	"github.com/vivekt74-lang/chunavmantra-backend/models"
	"github.com/vivekt74-lang/chunavmantra-backend/store"
)

// GeoHandler serves the administrative-geography lookups: states, districts
// and assembly constituencies.
type GeoHandler struct {
	store *store.Store
}

func NewGeoHandler(st *store.Store) *GeoHandler {
	return &GeoHandler{store: st}
}

// GetStates handles GET /states
func (h *GeoHandler) GetStates(w http.ResponseWriter, r *http.Request) {
	page, limit := getPaginationParams(r)

	states, total, err := h.store.States(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, serviceStoreError("states", err))
		return
	}

	respondPage(w, states, buildMeta(page, limit, total))
}

// GetState handles GET /states/{id}
func (h *GeoHandler) GetState(w http.ResponseWriter, r *http.Request) {
	stateID, err := parseIDVar(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	state, ok, err := h.store.StateByID(r.Context(), stateID)
	if err != nil {
		writeServiceError(w, serviceStoreError("state", err))
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "State not found")
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// GetStateDistricts handles GET /states/{id}/districts
func (h *GeoHandler) GetStateDistricts(w http.ResponseWriter, r *http.Request) {
	stateID, err := parseIDVar(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_, ok, err := h.store.StateByID(r.Context(), stateID)
	if err != nil {
		writeServiceError(w, serviceStoreError("state districts", err))
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "State not found")
		return
	}

	districts, err := h.store.DistrictsByState(r.Context(), stateID)
	if err != nil {
		writeServiceError(w, serviceStoreError("state districts", err))
		return
	}

	respondJSON(w, http.StatusOK, districts)
}

// GetDistrict handles GET /districts/{id}
func (h *GeoHandler) GetDistrict(w http.ResponseWriter, r *http.Request) {
	districtID, err := parseIDVar(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	district, ok, err := h.store.DistrictByID(r.Context(), districtID)
	if err != nil {
		writeServiceError(w, serviceStoreError("district", err))
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "District not found")
		return
	}

	respondJSON(w, http.StatusOK, district)
}

// GetDistrictConstituencies handles GET /districts/{id}/constituencies
func (h *GeoHandler) GetDistrictConstituencies(w http.ResponseWriter, r *http.Request) {
	districtID, err := parseIDVar(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	_, ok, err := h.store.DistrictByID(r.Context(), districtID)
	if err != nil {
		writeServiceError(w, serviceStoreError("district constituencies", err))
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "District not found")
		return
	}

	constituencies, err := h.store.ConstituenciesByDistrict(r.Context(), districtID)
	if err != nil {
		writeServiceError(w, serviceStoreError("district constituencies", err))
		return
	}
	for i := range constituencies {
		constituencies[i].Category = analytics.ConstituencyCategory(constituencies[i].ACName)
	}

	respondJSON(w, http.StatusOK, constituencies)
}

type constituencyDetail struct {
	store.ConstituencyInfo
	Category   string             `json:"category"`
	Candidates []models.Candidate `json:"candidates"`
}

// GetConstituency handles GET /constituencies/{id}
func (h *GeoHandler) GetConstituency(w http.ResponseWriter, r *http.Request) {
	acID, err := parseIDVar(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	info, ok, err := h.store.ConstituencyByID(r.Context(), acID)
	if err != nil {
		writeServiceError(w, serviceStoreError("constituency", err))
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "Constituency not found")
		return
	}

	election, err := resolveElection(r.Context(), h.store, r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	candidates, err := h.store.CandidatesByConstituency(r.Context(), acID, election.ElectionID)
	if err != nil {
		writeServiceError(w, serviceStoreError("constituency", err))
		return
	}

	respondJSON(w, http.StatusOK, constituencyDetail{
		ConstituencyInfo: info,
		Category:         analytics.ConstituencyCategory(info.ACName),
		Candidates:       candidates,
	})
}

// SearchConstituencies handles GET /constituencies/search?q=
func (h *GeoHandler) SearchConstituencies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respondError(w, http.StatusBadRequest, "Search term is required")
		return
	}

	constituencies, err := h.store.SearchConstituencies(r.Context(), q, 10)
	if err != nil {
		writeServiceError(w, serviceStoreError("search constituencies", err))
		return
	}
	for i := range constituencies {
		constituencies[i].Category = analytics.ConstituencyCategory(constituencies[i].ACName)
	}

	respondJSON(w, http.StatusOK, constituencies)
}
