package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vivekt74-lang/chunavmantra-backend/config"
	"github.com/vivekt74-lang/chunavmantra-backend/service"
	"github.com/vivekt74-lang/chunavmantra-backend/store"
)

type BoothAnalysisHandler struct {
	store *store.Store
	svc   *service.BoothAnalytics
}

func NewBoothAnalysisHandler(st *store.Store, svc *service.BoothAnalytics) *BoothAnalysisHandler {
	return &BoothAnalysisHandler{store: st, svc: svc}
}

// GetConstituencyAnalysis handles
// GET /booth-analysis/constituency/{acId}/booth-analysis
func (h *BoothAnalysisHandler) GetConstituencyAnalysis(w http.ResponseWriter, r *http.Request) {
	acID, err := parseIDVar(r, "acId")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	election, err := resolveElection(r.Context(), h.store, r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Analysis composites are the heaviest endpoints; serve repeats from
	// cache within the freshness window.
	cacheKey := config.GetCacheKey("analysis", acID, election.ElectionID)
	if cached, found := config.AnalysisCache.Get(cacheKey); found {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	analysis, err := h.svc.ConstituencyBoothAnalysis(r.Context(), election.ElectionID, acID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.AnalysisCache.Set(cacheKey, analysis, 0)
	respondJSON(w, http.StatusOK, analysis)
}

// GetPartyPerformance handles
// GET /booth-analysis/party-performance/{acId}/{partyName}
func (h *BoothAnalysisHandler) GetPartyPerformance(w http.ResponseWriter, r *http.Request) {
	acID, err := parseIDVar(r, "acId")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	partyName := mux.Vars(r)["partyName"]

	election, err := resolveElection(r.Context(), h.store, r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	performance, err := h.svc.PartyPerformance(r.Context(), election.ElectionID, acID, partyName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, performance)
}

// GetClusters handles GET /booth-analysis/clusters/{acId}
func (h *BoothAnalysisHandler) GetClusters(w http.ResponseWriter, r *http.Request) {
	acID, err := parseIDVar(r, "acId")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	election, err := resolveElection(r.Context(), h.store, r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	clusters, err := h.svc.BoothClusters(r.Context(), election.ElectionID, acID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, clusters)
}

type compareRequest struct {
	BoothIDs []int `json:"boothIds"`
}

// CompareBooths handles POST /booth-analysis/compare
func (h *BoothAnalysisHandler) CompareBooths(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: boothIds array is required")
		return
	}

	election, err := resolveElection(r.Context(), h.store, r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	comparison, err := h.svc.CompareBooths(r.Context(), election.ElectionID, req.BoothIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, comparison)
}

// GetRecommendations handles GET /booth-analysis/recommendations/{acId}
func (h *BoothAnalysisHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	acID, err := parseIDVar(r, "acId")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	election, err := resolveElection(r.Context(), h.store, r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	recommendations, err := h.svc.Recommendations(r.Context(), election.ElectionID, acID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, recommendations)
}

// GetDemographics handles GET /booth-analysis/demographics/{acId}
func (h *BoothAnalysisHandler) GetDemographics(w http.ResponseWriter, r *http.Request) {
	acID, err := parseIDVar(r, "acId")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	election, err := resolveElection(r.Context(), h.store, r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	demographics, err := h.svc.Demographics(r.Context(), election.ElectionID, acID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, demographics)
}

// GetHeatmap handles GET /booth-analysis/heatmap/{acId}?metric=turnout|voters
func (h *BoothAnalysisHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	acID, err := parseIDVar(r, "acId")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	metric := r.URL.Query().Get("metric")

	election, err := resolveElection(r.Context(), h.store, r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	cacheKey := config.GetCacheKey("heatmap", acID, election.ElectionID, metric)
	if cached, found := config.AnalysisCache.Get(cacheKey); found {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	heatmap, err := h.svc.Heatmap(r.Context(), election.ElectionID, acID, metric)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	config.AnalysisCache.Set(cacheKey, heatmap, 0)
	respondJSON(w, http.StatusOK, heatmap)
}
