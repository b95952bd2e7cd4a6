package models

import "time"

type StatsOverview struct {
	TotalUsers             int64 `json:"total_users"`
	TotalInstitutions      int64 `json:"total_institutions"`
	TotalCertificates      int64 `json:"total_certificates"`
	TotalTransactions      int64 `json:"total_transactions"`
	SuccessfulTransactions int64 `json:"successful_transactions"`
}

type DailyCertificates struct {
	Date              time.Time `json:"date"`
	CertificatesCount int64     `json:"certificates_count"`
}

type InstitutionCertificates struct {
	InstitutionName   string `json:"institution_name"`
	CertificatesCount int64  `json:"certificates_count"`
}

type Stats struct {
	Overview          StatsOverview             `json:"overview"`
	DailyCertificates []DailyCertificates       `json:"daily_certificates"`
	TopInstitutions   []InstitutionCertificates `json:"top_institutions"`
}
