package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jobtrail/jobtrail/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecord validates a parsed email record before insert.
func validateRecord(record *model.ParsedEmailRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if err := validateString(record.Subject, "subject"); err != nil {
		return err
	}
	if err := validateString(record.Sender, "sender"); err != nil {
		return err
	}
	if record.Result.Status == "" {
		return fmt.Errorf("%w: result.status", ErrEmptyString)
	}
	return nil
}
