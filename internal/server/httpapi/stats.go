package httpapi

import "net/http"

func (s *HTTPServer) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats.Get(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
