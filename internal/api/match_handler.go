// File path: internal/api/match_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/novachain/mentormatch/internal/common"
	"github.com/novachain/mentormatch/internal/match"
	"github.com/novachain/mentormatch/internal/profile"
)

type matchRequest struct {
	Newcomer    profile.Newcomer  `json:"newcomer"`
	Preferences match.Preferences `json:"preferences"`
}

type matchResponse struct {
	Results  []match.Result `json:"results"`
	Fallback bool           `json:"fallback"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	logger.Info("api: match request",
		"newcomer_id", req.Newcomer.ID,
		"archetype", req.Newcomer.PrimaryArchetype,
		"max_results", req.Preferences.MaxResults)
	results, err := s.matcher.Match(r.Context(), req.Newcomer, req.Preferences)
	if err != nil {
		if errors.Is(err, profile.ErrInvalidProfile) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	fallback := len(results) > 0 && results[0].Strategy == match.StrategyFallback
	writeJSON(w, http.StatusOK, matchResponse{Results: results, Fallback: fallback})
}
