// File path: internal/api/index_handler.go
package api

import (
	"fmt"
	"net/http"

	"github.com/novachain/mentormatch/internal/common"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.indexer == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("indexing not configured"))
		return
	}
	common.Logger().Info("api: index run requested")
	summary, err := s.indexer.Run(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	entries := common.LogEntries()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"logs":  entries,
		"count": len(entries),
	})
}
