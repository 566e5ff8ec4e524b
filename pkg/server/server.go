package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/termopark/finboard/pkg/cache"
	"github.com/termopark/finboard/pkg/config"
	"github.com/termopark/finboard/pkg/service"
)

// Server handles HTTP requests for the finance dashboard API.
type Server struct {
	config  *config.Config
	logger  *log.Logger
	mux     *http.ServeMux
	service *service.Service
	cache   *cache.Cache
	limiter *cache.Bucket
	routed  bool
}

// New creates a new HTTP server around a reporting service.
func New(cfg *config.Config, logger *log.Logger, svc *service.Service) *Server {
	return &Server{
		config:  cfg,
		logger:  logger,
		mux:     http.NewServeMux(),
		service: svc,
		cache:   cache.New(cfg.CacheTTL),
		limiter: cache.NewBucket(cfg.RateLimitBurst, cfg.RateLimitPerSec),
	}
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	s.setupRoutes()
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) setupRoutes() {
	if s.routed {
		return
	}
	s.routed = true
	s.mux.HandleFunc("/api/finance", s.withLogging(s.handleFinance))
	s.mux.HandleFunc("/healthz", s.withLogging(s.handleHealth))
}

// Handler exposes the routed mux, mostly for tests.
func (s *Server) Handler() http.Handler {
	s.setupRoutes()
	return s.mux
}

func (s *Server) handleFinance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}
	if !s.limiter.Allow() {
		s.respondError(w, r, http.StatusTooManyRequests, "rate limit exceeded", nil)
		return
	}

	query := service.Query{
		Unit:             r.URL.Query().Get("unit"),
		From:             r.URL.Query().Get("from"),
		To:               r.URL.Query().Get("to"),
		IncludeBreakfast: r.URL.Query().Get("includeBreakfast") == "true",
	}
	key := cache.Key(query.Unit, query.From, query.To, query.IncludeBreakfast)

	if r.URL.Query().Get("refresh") == "" {
		if report, ok := s.cache.Get(key); ok {
			s.logger.Debug("serving cached report", "key", key)
			s.writeJSON(w, http.StatusOK, report)
			return
		}
	}

	report, err := s.service.BuildReport(r.Context(), query)
	if err != nil {
		// A stale answer beats an error page while the upstream quota
		// recovers.
		if stale, ok := s.cache.GetStale(key); ok {
			s.logger.Warn("serving stale report after source failure", "key", key, "error", err)
			s.writeJSON(w, http.StatusOK, stale)
			return
		}
		s.respondError(w, r, http.StatusBadGateway, "failed to build report", err)
		return
	}

	s.cache.Put(key, report)
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- helpers ---

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log request start/end and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
