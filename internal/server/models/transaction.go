package models

import "time"

// Transaction records a chain transaction submitted on behalf of a user.
type Transaction struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	WalletAddress   string    `json:"wallet_address"`
	TransactionType string    `json:"transaction_type"`
	TxHash          *string   `json:"txHash"`
	Status          bool      `json:"status"`
	Description     *string   `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}
