package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"duty-validator/internal/domain"
	"duty-validator/internal/logging"
	"duty-validator/internal/usecase"
)

const maxBodyBytes = 1 << 20

// Server is a primary adapter that exposes HTTP API + UI.
// It depends on the use case (primary port).
type Server struct {
	usecase usecase.ValidationUseCase
	ids     domain.IDGenerator
	server  *http.Server
}

// NewServer creates the HTTP server bound to addr.
func NewServer(uc usecase.ValidationUseCase, ids domain.IDGenerator, addr string) *Server {
	srv := &Server{usecase: uc, ids: ids}
	srv.server = &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv
}

// Handler returns the routed handler, wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/validate", s.handleValidate)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/", s.handleRoot)
	return loggingMiddleware(mux)
}

// Start blocks and serves HTTP traffic.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req validateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	ws, err := req.toWorksheet(s.ids)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	policy := s.usecase.Settings().LegalPolicy
	var result domain.ValidationResult
	if req.Policy != "" {
		if result, err = s.usecase.ValidateWith(ws, domain.LegalPolicy(req.Policy)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		policy, _ = domain.ParseLegalPolicy(req.Policy)
	} else {
		result = s.usecase.Validate(ws)
	}

	respondJSON(w, http.StatusOK, NewResultView(result, policy))
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, settingsToView(s.usecase.Settings()))
	case http.MethodPut:
		var req settingsPayload
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		settings := s.usecase.Settings()
		if req.LegalPolicy != nil {
			settings.LegalPolicy = domain.LegalPolicy(*req.LegalPolicy)
		}
		if req.MaxDutyWithoutBreakMinutes != nil {
			settings.MaxDutyWithoutBreak = *req.MaxDutyWithoutBreakMinutes
		}
		if req.MinBreakMinutes != nil {
			settings.MinBreak = *req.MinBreakMinutes
		}

		if err := settings.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.usecase.UpdateSettings(settings); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondJSON(w, http.StatusOK, settingsToView(s.usecase.Settings()))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Errorf("encode JSON: %v", err)
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Infof("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
