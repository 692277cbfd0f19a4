// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/jobtrail/jobtrail/internal/model"
)

// Storage defines the contract for the record store: the audit trail of
// parsed emails and the tracked applications derived from them. The pattern
// library itself is not stored here; it lives in its own human-editable
// document owned by the pattern store.
type Storage interface {
	// Parsed email records
	SaveParsedEmail(ctx context.Context, record *model.ParsedEmailRecord) error
	GetParsedEmail(ctx context.Context, id int64) (*model.ParsedEmailRecord, error)
	ListParsedEmails(ctx context.Context, limit int) ([]model.ParsedEmailRecord, error)
	SaveCorrection(ctx context.Context, id int64, correction model.Correction) error

	// Applications
	UpsertApplication(ctx context.Context, result model.ParseResult) (*model.Application, error)
	GetApplicationByCompany(ctx context.Context, company string) (*model.Application, error)
	ListApplications(ctx context.Context) ([]model.Application, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
