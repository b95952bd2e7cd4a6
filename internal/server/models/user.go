package models

import "time"

// User is a wallet-identified actor. The institution triple is a
// snapshot of the affiliated institution, kept in step with InstitutionID.
type User struct {
	ID              int64     `json:"id"`
	WalletAddress   string    `json:"wallet_address"`
	InstitutionID   *int64    `json:"institution_id"`
	InstitutionName *string   `json:"institution_name"`
	Email           *string   `json:"email"`
	Website         *string   `json:"website"`
	CreatedAt       time.Time `json:"created_at"`
}
