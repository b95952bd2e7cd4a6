package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/certledger/internal/server/models"
	"github.com/dmitrijs2005/certledger/internal/server/services"
)

type createCertificateRequest struct {
	RecipientName          string `json:"recipient_name"`
	CourseName             string `json:"course_name"`
	InstitutionName        string `json:"institution_name"`
	RecipientWalletAddress string `json:"recipient_wallet_address"`
	IssueDate              string `json:"issue_date"`
	CompletionDate         string `json:"completion_date"`
	Description            string `json:"description"`
	ObjectID               string `json:"object_id"`
	TransactionHash        string `json:"transaction_hash"`
}

func (s *HTTPServer) createCertificate(w http.ResponseWriter, r *http.Request) {
	var req createCertificateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !s.requireWallet(w, r, "") {
		return
	}

	cert, err := s.svc.Certificates.Create(r.Context(), services.CreateCertificateRequest(req))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "certificate": cert})
}

func (s *HTTPServer) listCertificates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := s.svc.Certificates.List(r.Context(), services.CertificateFilter{
		RecipientWallet: q.Get("recipient_wallet"),
		InstitutionName: q.Get("institution_name"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Certificates []*models.CertificateView `json:"certificates"`
	}{items})
}
