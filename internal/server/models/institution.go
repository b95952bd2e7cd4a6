package models

import "time"

// Institution is an issuing organisation, unique by email.
type Institution struct {
	ID              int64     `json:"id"`
	InstitutionName string    `json:"institution_name"`
	Email           string    `json:"email"`
	Website         string    `json:"website"`
	CreatedAt       time.Time `json:"created_at"`
}
