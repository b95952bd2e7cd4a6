package httpapi

import (
	"net/http"
	"strings"
)

type trackRequest struct {
	Address   string `json:"address"`
	Action    string `json:"action"`
	Digest    string `json:"digest"`
	Timestamp int64  `json:"timestamp"`
}

// track records a client-side wallet action in the log. Nothing is stored.
func (s *HTTPServer) track(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Address) == "" || strings.TrimSpace(req.Action) == "" {
		writeError(w, r, http.StatusBadRequest, "address and action are required")
		return
	}

	s.logger.Info(r.Context(), "wallet action",
		"address", req.Address,
		"action", req.Action,
		"digest", req.Digest,
		"client_timestamp", req.Timestamp,
	)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
