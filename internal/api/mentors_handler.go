// File path: internal/api/mentors_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/novachain/mentormatch/internal/common"
	"github.com/novachain/mentormatch/internal/mentor"
)

func (s *Server) handleMentorList(w http.ResponseWriter, r *http.Request) {
	var (
		profiles []mentor.Profile
		err      error
	)
	if r.URL.Query().Get("available") == "true" {
		profiles, err = s.mentors.Available(r.Context())
	} else {
		profiles, err = s.mentors.All(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mentors": profiles,
		"count":   len(profiles),
	})
}

func (s *Server) handleMentorGet(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("mentor id required"))
		return
	}
	prof, err := s.mentors.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, mentor.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, prof)
}

func (s *Server) handleMentorUpsert(w http.ResponseWriter, r *http.Request) {
	var prof mentor.Profile
	if err := json.NewDecoder(r.Body).Decode(&prof); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(prof.ID) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("mentor id required"))
		return
	}
	if !prof.PrimaryArchetype.Known() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown archetype %q", prof.PrimaryArchetype))
		return
	}
	prof.Normalize()
	if err := s.store.Upsert(r.Context(), prof); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	common.Logger().Info("api: mentor upserted", "mentor_id", prof.ID, "archetype", prof.PrimaryArchetype)
	writeJSON(w, http.StatusOK, prof)
}
