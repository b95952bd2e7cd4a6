// Package services contains server-side business logic: institution
// reconciliation, user provisioning, certificate and transaction
// bookkeeping, and aggregate statistics.
package services

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/certledger/internal/common"
)

// ValidationError names the request fields that were missing or malformed.
// It matches common.ErrorValidation under errors.Is.
type ValidationError struct {
	Fields []string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return common.ErrorValidation }

type field struct {
	name  string
	value string
}

// requireFields returns a *ValidationError listing, in argument order, every
// field whose value is blank, or nil when all are present.
func requireFields(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if blank(f.value) {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// optional maps a blank string to NULL.
func optional(s string) *string {
	if blank(s) {
		return nil
	}
	return &s
}

func persistence(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorPersistence, err)
}
