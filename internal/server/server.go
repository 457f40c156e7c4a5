// Package server provides the HTTP server for the fitlens measurement
// service.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ideal206/fitlens/internal/avatar"
	"github.com/ideal206/fitlens/internal/catalog"
	"github.com/ideal206/fitlens/internal/fit"
	"github.com/ideal206/fitlens/internal/measure"
	"github.com/ideal206/fitlens/internal/posedetect"
	"github.com/ideal206/fitlens/internal/server/api"
	"github.com/ideal206/fitlens/internal/store"
)

// Config holds the server configuration.
type Config struct {
	Store       *store.Store
	Detector    posedetect.Detector
	Catalog     *catalog.Catalog
	Params      measure.Params
	CascadePath string
	StaticDir   string
}

// Server represents the HTTP server for the fitlens application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Measurement pipeline endpoints require a detector.
	if s.config.Detector != nil {
		engine := measure.NewEngine(s.config.Params)
		s.mux.Handle("/api/measure", api.NewMeasureHandler(s.config.Detector, engine, s.config.Store))
		s.mux.Handle("/api/preview", NewPreviewHandler(s.config.Detector))
	}

	// Fit and size endpoints only need the catalog.
	if s.config.Catalog != nil {
		s.mux.Handle("/api/fit/analyze", api.NewFitHandler(fit.NewAnalyzer(), s.config.Catalog))

		sizesHandler := api.NewSizesHandler(fit.NewRecommender(s.config.Catalog), s.config.Catalog)
		s.mux.Handle("/api/sizes/", sizesHandler)

		var cropper *avatar.FaceCropper
		if s.config.CascadePath != "" {
			cropper = avatar.NewFaceCropper(s.config.CascadePath)
		}
		s.mux.Handle("/api/avatar", api.NewAvatarHandler(avatar.NewGenerator(), cropper, s.config.Catalog))
	}

	// Profile CRUD and measurement history require persistence.
	if s.config.Store != nil {
		profilesHandler := api.NewProfilesHandler(s.config.Store)
		s.mux.Handle("/api/profiles", profilesHandler)
		s.mux.Handle("/api/profiles/", profilesHandler)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
