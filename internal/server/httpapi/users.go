package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/certledger/internal/common"
	"github.com/dmitrijs2005/certledger/internal/server/models"
	"github.com/dmitrijs2005/certledger/internal/server/services"
)

type createUserRequest struct {
	WalletAddress   string `json:"wallet_address"`
	InstitutionName string `json:"institution_name"`
	Email           string `json:"email"`
	Website         string `json:"website"`
}

type createUserResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
}

type getUserResponse struct {
	User *models.User `json:"user"`
}

func (s *HTTPServer) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.svc.Users.CreateOrGet(r.Context(), services.CreateUserRequest{
		WalletAddress:   req.WalletAddress,
		InstitutionName: req.InstitutionName,
		Email:           req.Email,
		Website:         req.Website,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	status, message := http.StatusOK, "User already exists"
	if res.Created {
		status, message = http.StatusCreated, "User created successfully"
	}
	writeJSON(w, status, createUserResponse{Success: true, User: res.User, Message: message, Token: res.Token})
}

func (s *HTTPServer) getUser(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet_address")
	if wallet == "" {
		writeError(w, r, http.StatusBadRequest, "wallet_address is required")
		return
	}

	user, err := s.svc.Users.Get(r.Context(), wallet)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, getUserResponse{User: user})
}
