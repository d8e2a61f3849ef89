// Package api exposes zipcode assignment, price lookup, and refresh over
// HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/fuelcast/gasprice-cli/internal/geo"
	"github.com/fuelcast/gasprice-cli/internal/monitoring"
	"github.com/fuelcast/gasprice-cli/internal/pricing"
)

// Server routes HTTP requests to the geo assigner and pricing service.
type Server struct {
	assigner        *geo.Assigner
	svc             *pricing.Service
	collector       *monitoring.Collector
	staleAfterHours int
}

// NewServer creates a Server. The collector may be nil; the status route
// then reports 503.
func NewServer(assigner *geo.Assigner, svc *pricing.Service, collector *monitoring.Collector, staleAfterHours int) *Server {
	return &Server{
		assigner:        assigner,
		svc:             svc,
		collector:       collector,
		staleAfterHours: staleAfterHours,
	}
}

// Router builds the HTTP handler with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/msa/{zipcode}", s.handleMSA)
		r.Get("/price/{zipcode}", s.handlePrice)
		r.Get("/history/{msa}", s.handleHistory)
		r.Post("/refresh", s.handleRefresh)
		r.Get("/status", s.handleStatus)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type msaResponse struct {
	geo.Assignment
	PricingMultiplier float64 `json:"pricing_multiplier"`
	Proximity         string  `json:"proximity,omitempty"`
}

func (s *Server) handleMSA(w http.ResponseWriter, r *http.Request) {
	assignment := s.assigner.AssignMSA(chi.URLParam(r, "zipcode"))
	multiplier := 1.0
	if c := geo.CenterByName(assignment.MSA); c != nil {
		multiplier = c.Multiplier
	}
	proximity := ""
	if assignment.Distance != nil {
		proximity = geo.ClassifyProximity(*assignment.Distance, s.assigner.RadiusMiles())
	}
	writeJSON(w, http.StatusOK, msaResponse{
		Assignment:        assignment,
		PricingMultiplier: multiplier,
		Proximity:         proximity,
	})
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	result := s.svc.PriceForZipcode(r.Context(), chi.URLParam(r, "zipcode"))
	writeJSON(w, http.StatusOK, result)
}

type historyResponse struct {
	MSAName string               `json:"msa_name"`
	Days    int                  `json:"days"`
	History []pricing.PricePoint `json:"history"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	msaName := chi.URLParam(r, "msa")
	if geo.CenterByName(msaName) == nil && msaName != geo.NationalAverage {
		writeError(w, http.StatusNotFound, "unknown MSA")
		return
	}

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 365 {
			writeError(w, http.StatusBadRequest, "days must be an integer between 1 and 365")
			return
		}
		days = n
	}

	points := s.svc.PriceHistory(r.Context(), msaName, days)
	writeJSON(w, http.StatusOK, historyResponse{
		MSAName: msaName,
		Days:    len(points),
		History: points,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.RefreshAll(r.Context())
	if err != nil {
		zap.L().Error("api: refresh failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "refresh failed")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type statusResponse struct {
	*monitoring.MetricsSnapshot
	Time time.Time `json:"time"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if s.collector == nil {
		writeError(w, http.StatusServiceUnavailable, "status collector not configured")
		return
	}
	snap, err := s.collector.Collect(r.Context(), s.staleAfterHours)
	if err != nil {
		zap.L().Error("api: status collection failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "status collection failed")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{MetricsSnapshot: snap, Time: time.Now().UTC()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
