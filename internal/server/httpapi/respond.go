package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/certledger/internal/common"
	"github.com/dmitrijs2005/certledger/internal/server/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, errorBody{Error: message, RequestID: requestIDFrom(r.Context())})
}

// fail maps a service error onto a response. Unclassified errors are logged
// and reported as 500 without detail.
func (s *HTTPServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, r, http.StatusBadRequest, ve.Error())
	case errors.Is(err, common.ErrorValidation):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorEmailConflict):
		writeError(w, r, http.StatusBadRequest, "Email is already registered by another institution")
	case errors.Is(err, common.ErrorUserNotFound):
		writeError(w, r, http.StatusNotFound, "User not found. Please try reconnecting your wallet.")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, r, http.StatusUnauthorized, "unauthorized")
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
