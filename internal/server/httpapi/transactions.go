package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/certledger/internal/server/models"
	"github.com/dmitrijs2005/certledger/internal/server/services"
)

type createTransactionRequest struct {
	WalletAddress   string `json:"wallet_address"`
	TransactionType string `json:"transaction_type"`
	TxHash          string `json:"txHash"`
	Status          bool   `json:"status"`
	Description     string `json:"description"`
}

func (s *HTTPServer) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !s.requireWallet(w, r, req.WalletAddress) {
		return
	}

	tx, err := s.svc.Transactions.Create(r.Context(), services.CreateTransactionRequest(req))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "transaction": tx})
}

func (s *HTTPServer) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := s.svc.Transactions.List(r.Context(), services.TransactionFilter{
		WalletAddress: q.Get("wallet_address"),
		TxHash:        q.Get("txHash"),
		Type:          q.Get("type"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Transactions []*models.Transaction `json:"transactions"`
	}{items})
}
