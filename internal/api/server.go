// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/novachain/mentormatch/internal/common"
	"github.com/novachain/mentormatch/internal/indexer"
	"github.com/novachain/mentormatch/internal/match"
	"github.com/novachain/mentormatch/internal/mentor"
)

// Server exposes the matching pipeline, the mentor reference store, and the
// indexing job over HTTP.
type Server struct {
	router  chi.Router
	matcher *match.Matcher
	mentors mentor.Reference
	store   *mentor.Store
	indexer *indexer.Indexer
}

// NewServer wires the API over its collaborators. The matcher and mentor
// store are required; the indexer may be nil when the deployment has no
// write path.
func NewServer(matcher *match.Matcher, store *mentor.Store, ix *indexer.Indexer) (*Server, error) {
	if matcher == nil {
		return nil, fmt.Errorf("matcher required")
	}
	if store == nil {
		return nil, fmt.Errorf("mentor store required")
	}
	srv := &Server{
		router:  chi.NewRouter(),
		matcher: matcher,
		mentors: store,
		store:   store,
		indexer: ix,
	}
	srv.routes()
	common.Logger().Info("api: server ready")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")
	s.router.Use(requestID)
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"dur", time.Since(start),
				"request_id", w.Header().Get("X-Request-ID"),
				"remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/v1/match", s.handleMatch)
	s.router.Get("/v1/mentors", s.handleMentorList)
	s.router.Post("/v1/mentors", s.handleMentorUpsert)
	s.router.Get("/v1/mentors/{id}", s.handleMentorGet)
	s.router.Post("/v1/index", s.handleIndex)
	s.router.Get("/v1/logs", s.handleLogs)
}

// requestID tags every request with a UUID so log lines across the pipeline
// can be correlated.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
