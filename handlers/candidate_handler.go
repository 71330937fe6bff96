package handlers

import (
	"net/http"

	"github.com/vivekt74-lang/chunavmantra-backend/store"
)

type CandidateHandler struct {
	store *store.Store
}

func NewCandidateHandler(st *store.Store) *CandidateHandler {
	return &CandidateHandler{store: st}
}

// GetCandidates handles GET /candidates?page=&limit=
func (h *CandidateHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	page, limit := getPaginationParams(r)

	candidates, total, err := h.store.Candidates(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, serviceStoreError("candidates", err))
		return
	}

	respondPage(w, candidates, buildMeta(page, limit, total))
}

// GetCandidate handles GET /candidates/{id}
func (h *CandidateHandler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID, err := parseIDVar(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	candidate, ok, err := h.store.CandidateByID(r.Context(), candidateID)
	if err != nil {
		writeServiceError(w, serviceStoreError("candidate", err))
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "Candidate not found")
		return
	}

	respondJSON(w, http.StatusOK, candidate)
}

// GetParties handles GET /parties
func (h *CandidateHandler) GetParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.store.Parties(r.Context())
	if err != nil {
		writeServiceError(w, serviceStoreError("parties", err))
		return
	}

	respondJSON(w, http.StatusOK, parties)
}
