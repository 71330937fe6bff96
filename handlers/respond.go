package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vivekt74-lang/chunavmantra-backend/config"
	"github.com/vivekt74-lang/chunavmantra-backend/models"
	"github.com/vivekt74-lang/chunavmantra-backend/service"
	"github.com/vivekt74-lang/chunavmantra-backend/store"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(models.Response{Success: true, Data: data}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondPage(w http.ResponseWriter, data interface{}, meta models.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(models.PaginatedResponse{Success: true, Data: data, Meta: meta}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.Response{Success: false, Error: message})
}

// writeServiceError maps the service error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is an unexpected failure: log it, return a
// generic message.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("Unhandled error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// parseIDVar extracts a positive integer path variable. Anything else is an
// InvalidArgument.
func parseIDVar(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", service.ErrInvalidArgument, name)
	}
	return id, nil
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

func getPaginationParams(r *http.Request) (page, limit int) {
	page, limit = 1, defaultPageLimit
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
		if limit > maxPageLimit {
			limit = maxPageLimit
		}
	}
	return page, limit
}

func buildMeta(page, limit, total int) models.Meta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return models.Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// resolveElection picks the election scope for a request: an explicit
// ?year= parameter when supplied, otherwise the most recent election.
func resolveElection(ctx context.Context, st *store.Store, r *http.Request) (models.Election, error) {
	rawYear := r.URL.Query().Get("year")
	if rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil || year <= 0 {
			return models.Election{}, fmt.Errorf("%w: year must be a positive integer", service.ErrInvalidArgument)
		}

		cacheKey := config.GetCacheKey("election:year", year)
		if cached, found := config.LookupCache.Get(cacheKey); found {
			return cached.(models.Election), nil
		}

		election, ok, err := st.ElectionByYear(ctx, year)
		if err != nil {
			return models.Election{}, serviceStoreError("resolve election", err)
		}
		if !ok {
			return models.Election{}, fmt.Errorf("%w: no election held in %d", service.ErrNotFound, year)
		}
		config.LookupCache.Set(cacheKey, election, 0)
		return election, nil
	}

	cacheKey := config.GetCacheKey("election", "current")
	if cached, found := config.LookupCache.Get(cacheKey); found {
		return cached.(models.Election), nil
	}

	election, ok, err := st.CurrentElection(ctx)
	if err != nil {
		return models.Election{}, serviceStoreError("resolve election", err)
	}
	if !ok {
		return models.Election{}, fmt.Errorf("%w: no elections in dataset", service.ErrNotFound)
	}
	config.LookupCache.Set(cacheKey, election, 0)
	return election, nil
}

// serviceStoreError converts a raw store failure encountered in the handler
// layer into the service taxonomy, logging the detail.
func serviceStoreError(op string, err error) error {
	if errors.Is(err, store.ErrUnavailable) {
		log.Printf("%s: %v", op, err)
		return fmt.Errorf("%w: election data store is unreachable", service.ErrUnavailable)
	}
	return err
}
