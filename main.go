package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/vivekt74-lang/chunavmantra-backend/analytics"
	"github.com/vivekt74-lang/chunavmantra-backend/config"
	"github.com/vivekt74-lang/chunavmantra-backend/handlers"
	"github.com/vivekt74-lang/chunavmantra-backend/middleware"
	"github.com/vivekt74-lang/chunavmantra-backend/service"
	"github.com/vivekt74-lang/chunavmantra-backend/store"
)

type HealthResponse struct {
	Status    string `json:"status"`
	DBStatus  string `json:"db_status"`
	DBDetails struct {
		Host     string   `json:"host"`
		Port     string   `json:"port"`
		Database string   `json:"database"`
		Tables   []string `json:"tables,omitempty"`
	} `json:"db_details"`
	Error string `json:"error,omitempty"`
}

func healthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{Status: "ok"}

		if err := db.Ping(); err != nil {
			response.Status = "error"
			response.DBStatus = "connection_error"
			response.Error = "Database ping failed"
			log.Printf("Health check ping failed: %v", err)
		} else {
			response.DBStatus = "connected"
			response.DBDetails.Host = os.Getenv("DB_HOST")
			response.DBDetails.Port = os.Getenv("DB_PORT")
			response.DBDetails.Database = os.Getenv("DB_NAME")

			tables := []string{
				"states", "districts", "assembly_constituencies", "booths",
				"elections", "booth_turnout", "booth_results", "candidates", "parties",
			}
			var existingTables []string
			for _, table := range tables {
				var exists bool
				err := db.QueryRow(`
					SELECT EXISTS (
						SELECT FROM information_schema.tables
						WHERE table_name = $1
					)`, table).Scan(&exists)
				if err == nil && exists {
					existingTables = append(existingTables, table)
				}
			}
			response.DBDetails.Tables = existingTables
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

func main() {
	startTime := time.Now()
	log.Printf("Starting server initialization at %s", startTime.Format(time.RFC3339))

	config.LoadEnv()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("No PORT environment variable found, using default: %s", port)
	}

	log.Println("Initializing PostgreSQL database...")
	db, err := config.OpenDBWithRetry(5)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	log.Println("PostgreSQL database initialized successfully")
	defer db.Close()

	config.InitCache()

	st := store.New(db)
	svc := service.NewWithThresholds(st, analytics.DefaultThresholds())

	r := mux.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"https://chunavmantra.com",
			"https://www.chunavmantra.com",
		},
		AllowedMethods: []string{
			"GET", "POST", "OPTIONS",
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Requested-With",
			"Origin",
		},
		ExposedHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		AllowCredentials: false,
		MaxAge:           86400,
	})

	// Apply middlewares in order
	r.Use(corsHandler.Handler)
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CompressHandler)

	api := r.PathPrefix("/api/v1").Subrouter()
	registerRoutes(api, db, st, svc)
	log.Println("Routes registered successfully")

	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + port,
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting server on port %s...", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("Shutdown signal received")
	case err := <-serverErrors:
		log.Printf("Server error received: %v", err)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	} else {
		log.Println("Server shutdown completed successfully")
	}
}

func registerRoutes(api *mux.Router, db *sql.DB, st *store.Store, svc *service.BoothAnalytics) {
	boothHandler := handlers.NewBoothHandler(st, svc)
	analysisHandler := handlers.NewBoothAnalysisHandler(st, svc)
	geoHandler := handlers.NewGeoHandler(st)
	candidateHandler := handlers.NewCandidateHandler(st)
	electionHandler := handlers.NewElectionHandler(st)

	// Booth routes
	api.HandleFunc("/booths/constituency/{acId}", boothHandler.GetBoothsByConstituency).Methods("GET")
	api.HandleFunc("/booths/{boothId}", boothHandler.GetBoothDetails).Methods("GET")

	// Booth analysis routes
	api.HandleFunc("/booth-analysis/constituency/{acId}/booth-analysis", analysisHandler.GetConstituencyAnalysis).Methods("GET")
	api.HandleFunc("/booth-analysis/party-performance/{acId}/{partyName}", analysisHandler.GetPartyPerformance).Methods("GET")
	api.HandleFunc("/booth-analysis/clusters/{acId}", analysisHandler.GetClusters).Methods("GET")
	api.HandleFunc("/booth-analysis/compare", analysisHandler.CompareBooths).Methods("POST")
	api.HandleFunc("/booth-analysis/recommendations/{acId}", analysisHandler.GetRecommendations).Methods("GET")
	api.HandleFunc("/booth-analysis/demographics/{acId}", analysisHandler.GetDemographics).Methods("GET")
	api.HandleFunc("/booth-analysis/heatmap/{acId}", analysisHandler.GetHeatmap).Methods("GET")

	// Geography routes
	api.HandleFunc("/states", geoHandler.GetStates).Methods("GET")
	api.HandleFunc("/states/{id}", geoHandler.GetState).Methods("GET")
	api.HandleFunc("/states/{id}/districts", geoHandler.GetStateDistricts).Methods("GET")
	api.HandleFunc("/districts/{id}", geoHandler.GetDistrict).Methods("GET")
	api.HandleFunc("/districts/{id}/constituencies", geoHandler.GetDistrictConstituencies).Methods("GET")
	api.HandleFunc("/constituencies/search", geoHandler.SearchConstituencies).Methods("GET")
	api.HandleFunc("/constituencies/{id}", geoHandler.GetConstituency).Methods("GET")

	// Candidate and party routes
	api.HandleFunc("/candidates", candidateHandler.GetCandidates).Methods("GET")
	api.HandleFunc("/candidates/{id}", candidateHandler.GetCandidate).Methods("GET")
	api.HandleFunc("/parties", candidateHandler.GetParties).Methods("GET")

	// Election routes
	api.HandleFunc("/elections", electionHandler.GetElections).Methods("GET")

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
	api.HandleFunc("/health/detailed", healthCheck(db)).Methods("GET")
}
