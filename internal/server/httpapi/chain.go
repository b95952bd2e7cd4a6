package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/certledger/internal/server/models"
)

// chainCertificates lists certificate objects held by owner. With
// object_id it instead waits for that object to be indexed.
func (s *HTTPServer) chainCertificates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	owner, objectID := q.Get("owner"), q.Get("object_id")
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "owner is required")
		return
	}
	if s.svc.Chain == nil {
		writeError(w, r, http.StatusServiceUnavailable, "chain lookup disabled")
		return
	}

	if objectID != "" {
		obj, err := s.svc.Chain.WaitForObject(r.Context(), owner, objectID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"object": obj})
		return
	}

	objects, err := s.svc.Chain.OwnedCertificates(r.Context(), owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Objects []models.OwnedObject `json:"objects"`
		Count   int                  `json:"count"`
	}{objects, len(objects)})
}
