package models

import "time"

// Certificate is the off-chain bookkeeping row for a minted certificate.
type Certificate struct {
	ID                     int64     `json:"id"`
	RecipientName          string    `json:"recipient_name"`
	CourseName             string    `json:"course_name"`
	InstitutionName        string    `json:"institution_name"`
	RecipientWalletAddress string    `json:"recipient_wallet_address"`
	IssueDate              time.Time `json:"issue_date"`
	CompletionDate         time.Time `json:"completion_date"`
	Description            *string   `json:"description"`
	ObjectID               *string   `json:"object_id"`
	TransactionHash        *string   `json:"transaction_hash"`
	CreatedAt              time.Time `json:"created_at"`
}

// CertificateView is a row of view_certificates: the certificate plus the
// status of the chain transaction that minted it, when known.
type CertificateView struct {
	Certificate
	TransactionStatus *bool `json:"transaction_status"`
}
