package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/certledger/internal/common"
	"github.com/dmitrijs2005/certledger/internal/server/models"
	"github.com/dmitrijs2005/certledger/internal/server/services"
)

type institutionRequest struct {
	InstitutionName string `json:"institution_name"`
	Email           string `json:"email"`
	Website         string `json:"website"`
	WalletAddress   string `json:"wallet_address"`
}

type registrationResponse struct {
	Success     bool                `json:"success"`
	Outcome     string              `json:"outcome"`
	Institution *models.Institution `json:"institution"`
	User        *models.User        `json:"user"`
	Message     string              `json:"message"`
}

type institutionLookupResponse struct {
	Institution *models.Institution `json:"institution"`
	Found       bool                `json:"found"`
}

type institutionListResponse struct {
	Institutions []*models.Institution `json:"institutions"`
	Count        int                   `json:"count"`
}

// registerInstitution serves both POST and PUT; the service decides
// whether the request creates or updates.
func (s *HTTPServer) registerInstitution(w http.ResponseWriter, r *http.Request) {
	var req institutionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !s.requireWallet(w, r, req.WalletAddress) {
		return
	}

	reg, err := s.svc.Institutions.RegisterOrUpdate(r.Context(), services.InstitutionRequest{
		InstitutionName: req.InstitutionName,
		Email:           req.Email,
		Website:         req.Website,
		WalletAddress:   req.WalletAddress,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	status, message := http.StatusOK, "Institution updated successfully"
	if reg.Outcome == services.OutcomeCreated {
		status, message = http.StatusCreated, "Institution registered successfully"
	}
	s.logger.Info(r.Context(), "institution reconciled",
		"outcome", reg.Outcome.String(), "institution_id", reg.Institution.ID, "wallet", req.WalletAddress)

	writeJSON(w, status, registrationResponse{
		Success:     true,
		Outcome:     reg.Outcome.String(),
		Institution: reg.Institution,
		User:        reg.User,
		Message:     message,
	})
}

// getInstitutions looks up by wallet_address or email, or lists all
// institutions when neither is given.
func (s *HTTPServer) getInstitutions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	wallet, email := strings.TrimSpace(q.Get("wallet_address")), strings.TrimSpace(q.Get("email"))

	if wallet == "" && email == "" {
		items, err := s.svc.Institutions.List(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, institutionListResponse{Institutions: items, Count: len(items)})
		return
	}

	institution, err := s.svc.Institutions.Get(r.Context(), wallet, email)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, institutionLookupResponse{Institution: institution, Found: institution != nil})
}
