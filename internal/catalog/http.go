package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"APIDirectory/pkg/kit"
)

const (
	// LoadFailedMessage is the only failure text clients see; the cause is logged.
	LoadFailedMessage = "Failed to load API data"

	readyTimeout = 1 * time.Second

	// isoMillis matches JavaScript's Date.prototype.toISOString.
	isoMillis = "2006-01-02T15:04:05.000Z07:00"
)

// ListResponse is the body of GET /api/apis.
type ListResponse struct {
	Success bool    `json:"success"`
	Count   int     `json:"count"`
	Data    []Entry `json:"data"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type Server struct {
	Catalog *Holder
	Log     *zap.Logger
	Limiter *kit.IPRateLimiter
	Now     func() time.Time
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.health)
	r.Get("/readyz", s.ready)

	if s.Limiter != nil {
		r.With(s.Limiter.Middleware).Get("/api/apis", s.list)
	} else {
		r.Get("/api/apis", s.list)
	}

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Catalog.Get(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list apis failed", zap.Error(err))
		}
		kit.WriteFailure(w, http.StatusInternalServerError, LoadFailedMessage)
		return
	}

	data := snap.Entries()
	kit.WriteJSON(w, http.StatusOK, ListResponse{
		Success: true,
		Count:   len(data),
		Data:    data,
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	kit.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: now().UTC().Format(isoMillis),
	})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Catalog.Store.Ping(ctx); err != nil {
		if s.Log != nil {
			s.Log.Warn("readyz failed: ping", zap.Error(err))
		}
		kit.WriteFailure(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	if _, err := s.Catalog.Get(ctx); err != nil {
		if s.Log != nil {
			s.Log.Warn("readyz failed: load", zap.Error(err))
		}
		kit.WriteFailure(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
}
