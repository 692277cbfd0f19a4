package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jobtrail/jobtrail/internal/common"
	"github.com/jobtrail/jobtrail/internal/model"
)

// SaveParsedEmail inserts an audit record for one parse and fills in its ID.
func (s *SQLiteStorage) SaveParsedEmail(ctx context.Context, record *model.ParsedEmailRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	patternsJSON, err := json.Marshal(record.Result.RulesUsed)
	if err != nil {
		return fmt.Errorf("failed to marshal patterns used: %w", err)
	}

	var datesJSON sql.NullString
	if len(record.Result.Dates) > 0 {
		data, marshalErr := json.Marshal(record.Result.Dates)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal dates: %w", marshalErr)
		}
		datesJSON = sql.NullString{String: string(data), Valid: true}
	}

	var cooldownJSON sql.NullString
	if record.Result.Cooldown != nil {
		data, marshalErr := json.Marshal(record.Result.Cooldown)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal cooldown: %w", marshalErr)
		}
		cooldownJSON = sql.NullString{String: string(data), Valid: true}
	}

	query := `
		INSERT INTO parsed_emails (
			email_id, subject, sender, body_snippet,
			company, role, status, job_id, source, confidence,
			patterns_used, dates, cooldown
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		nullIfEmpty(record.EmailID), record.Subject, record.Sender, record.BodySnippet,
		nullIfEmpty(record.Result.Company), nullIfEmpty(record.Result.Role),
		record.Result.Status, nullIfEmpty(record.Result.JobID),
		record.Result.Source, record.Result.Confidence,
		string(patternsJSON), datesJSON, cooldownJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save parsed email: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get parsed email ID: %w", err)
	}
	record.ID = id

	return nil
}

const parsedEmailColumns = `
	id, email_id, subject, sender, body_snippet,
	company, role, status, job_id, source, confidence,
	patterns_used, dates, cooldown, created_at,
	correction_is_correct, corrected_company, corrected_role, corrected_status
`

// GetParsedEmail retrieves a parsed email record by ID.
func (s *SQLiteStorage) GetParsedEmail(ctx context.Context, id int64) (*model.ParsedEmailRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+parsedEmailColumns+` FROM parsed_emails WHERE id = ?`, id)

	record, err := scanParsedEmail(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("parsed email %d: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get parsed email: %w", err)
	}

	return record, nil
}

// ListParsedEmails retrieves the most recent parsed email records.
func (s *SQLiteStorage) ListParsedEmails(ctx context.Context, limit int) ([]model.ParsedEmailRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+parsedEmailColumns+` FROM parsed_emails ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list parsed emails: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.ParsedEmailRecord
	for rows.Next() {
		record, scanErr := scanParsedEmail(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan parsed email: %w", scanErr)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parsed emails: %w", err)
	}

	return records, nil
}

// SaveCorrection attaches a user verdict to an existing parsed email record.
func (s *SQLiteStorage) SaveCorrection(ctx context.Context, id int64, correction model.Correction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	query := `
		UPDATE parsed_emails SET
			correction_is_correct = ?,
			corrected_company = ?,
			corrected_role = ?,
			corrected_status = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		correction.IsCorrect,
		nullIfEmpty(correction.Company),
		nullIfEmpty(correction.Role),
		nullIfEmpty(correction.Status),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to save correction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("parsed email %d: %w", id, common.ErrNotFound)
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanParsedEmail(row rowScanner) (*model.ParsedEmailRecord, error) {
	var record model.ParsedEmailRecord
	var emailID, company, role, jobID, patternsJSON sql.NullString
	var datesJSON, cooldownJSON sql.NullString
	var isCorrect sql.NullBool
	var correctedCompany, correctedRole, correctedStatus sql.NullString

	err := row.Scan(
		&record.ID, &emailID, &record.Subject, &record.Sender, &record.BodySnippet,
		&company, &role, &record.Result.Status, &jobID, &record.Result.Source,
		&record.Result.Confidence,
		&patternsJSON, &datesJSON, &cooldownJSON, &record.CreatedAt,
		&isCorrect, &correctedCompany, &correctedRole, &correctedStatus,
	)
	if err != nil {
		return nil, err
	}

	record.EmailID = emailID.String
	record.Result.Company = company.String
	record.Result.Role = role.String
	record.Result.JobID = jobID.String

	if patternsJSON.Valid && patternsJSON.String != "" {
		if err := json.Unmarshal([]byte(patternsJSON.String), &record.Result.RulesUsed); err != nil {
			return nil, fmt.Errorf("failed to unmarshal patterns used: %w", err)
		}
	}
	if datesJSON.Valid {
		if err := json.Unmarshal([]byte(datesJSON.String), &record.Result.Dates); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dates: %w", err)
		}
	}
	if cooldownJSON.Valid {
		var cooldown model.Cooldown
		if err := json.Unmarshal([]byte(cooldownJSON.String), &cooldown); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cooldown: %w", err)
		}
		record.Result.Cooldown = &cooldown
	}

	if isCorrect.Valid {
		record.Correction = &model.Correction{
			IsCorrect: isCorrect.Bool,
			Company:   correctedCompany.String,
			Role:      correctedRole.String,
			Status:    correctedStatus.String,
		}
	}

	return &record, nil
}

// nullIfEmpty converts an empty string to a SQL NULL.
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
