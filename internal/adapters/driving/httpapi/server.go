// Package httpapi exposes the analysis pipeline over a small REST
// surface for browser frontends.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/policypulse-labs/policypulse-cli/internal/core/domain"
	"github.com/policypulse-labs/policypulse-cli/internal/core/ports/driving"
	"github.com/policypulse-labs/policypulse-cli/internal/logger"
)

// DefaultAddr is the default listen address.
const DefaultAddr = ":8000"

// DefaultAllowedOrigins covers local frontend dev servers.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
}

// Config holds server configuration.
type Config struct {
	// Addr is the listen address (default :8000).
	Addr string

	// AllowedOrigins is the CORS allow-list. Empty uses
	// DefaultAllowedOrigins; a single "*" allows any origin.
	AllowedOrigins []string
}

// Server serves the REST API.
type Server struct {
	analysis driving.AnalysisService
	feedback driving.FeedbackService
	status   driving.StatusService

	allowedOrigins []string
	httpServer     *http.Server
}

// NewServer creates a REST API server over the given services.
func NewServer(
	cfg Config,
	analysis driving.AnalysisService,
	feedback driving.FeedbackService,
	status driving.StatusService,
) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = DefaultAllowedOrigins
	}

	s := &Server{
		analysis:       analysis,
		feedback:       feedback,
		status:         status,
		allowedOrigins: cfg.AllowedOrigins,
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /feedback", s.handleFeedback)
	mux.HandleFunc("GET /system-status", s.handleStatus)
	return s.cors(mux)
}

// ListenAndServe starts the server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	logger.Info("API listening on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// cors applies the origin allow-list and answers preflight requests.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

type analyzeRequest struct {
	Query  string `json:"query"`
	Sector string `json:"sector"`
}

type analyzeResponse struct {
	Verdict  string      `json:"verdict"`
	Message  string      `json:"message"`
	Policy   *policyJSON `json:"policy,omitempty"`
	Drift    *driftJSON  `json:"drift,omitempty"`
	Strategy string      `json:"strategy,omitempty"`
}

type policyJSON struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	Sector string `json:"sector"`
	Scope  string `json:"scope"`
}

type driftJSON struct {
	Score        float64 `json:"drift_score"`
	Detected     bool    `json:"drift_detected"`
	Explanation  string  `json:"explanation"`
	Region       string  `json:"region"`
	ActualImpact string  `json:"actual_impact"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.analysis == nil {
		writeError(w, http.StatusServiceUnavailable, "analysis service not configured")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := s.analysis.Analyze(r.Context(), req.Query, req.Sector)
	if err != nil {
		logger.Warn("Analyze failed: %v", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, toAnalyzeResponse(analysis))
}

func toAnalyzeResponse(analysis domain.Analysis) analyzeResponse {
	resp := analyzeResponse{
		Verdict:  string(analysis.Recommendation.Verdict),
		Message:  analysis.Recommendation.Message,
		Strategy: analysis.Strategy,
	}

	if p := analysis.Recommendation.Policy; p != nil {
		resp.Policy = &policyJSON{
			ID:     p.ID,
			Title:  p.Title,
			Text:   p.Text,
			Sector: p.Sector,
			Scope:  p.Scope,
		}
	}

	if d := analysis.Drift; d != nil {
		resp.Drift = &driftJSON{
			Score:        d.Score,
			Detected:     d.Detected,
			Explanation:  d.Explanation,
			Region:       d.Region,
			ActualImpact: d.ActualImpact,
		}
	}

	return resp
}

type feedbackRequest struct {
	Policy  string `json:"policy"`
	State   string `json:"state"`
	Opinion string `json:"opinion"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if s.feedback == nil {
		writeError(w, http.StatusServiceUnavailable, "feedback service not configured")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.feedback.Record(r.Context(), req.Policy, req.State, req.Opinion); err != nil {
		logger.Warn("Feedback failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to record feedback")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged"})
}

type statusResponse struct {
	PoliciesIndexed int    `json:"policies_indexed"`
	ImpactsIndexed  int    `json:"impacts_indexed"`
	StoragePath     string `json:"storage_path,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if s.status == nil {
		writeError(w, http.StatusServiceUnavailable, "status service not configured")
		return
	}

	status, err := s.status.Status(r.Context())
	if err != nil {
		logger.Warn("Status failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get status")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		PoliciesIndexed: status.PoliciesIndexed,
		ImpactsIndexed:  status.ImpactsIndexed,
		StoragePath:     status.StoragePath,
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
