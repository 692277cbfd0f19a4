package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jobtrail/jobtrail/internal/common"
	"github.com/jobtrail/jobtrail/internal/model"
)

// UpsertApplication creates or updates the tracked application for the
// company named in a parse result. Lookup is case-insensitive on company;
// a newly detected status overwrites the stored one, and role/job details
// are filled in when the existing record lacks them.
func (s *SQLiteStorage) UpsertApplication(ctx context.Context, result model.ParseResult) (*model.Application, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(result.Company, "result.company"); err != nil {
		return nil, err
	}

	existing, err := s.GetApplicationByCompany(ctx, result.Company)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	if existing == nil {
		status := result.Status
		if status == "" {
			status = model.StatusApplied
		}

		query := `
			INSERT INTO applications (company, role, status, job_id, source)
			VALUES (?, ?, ?, ?, ?)
		`
		res, execErr := s.db.ExecContext(ctx, query,
			result.Company, nullIfEmpty(result.Role), status,
			nullIfEmpty(result.JobID), result.Source)
		if execErr != nil {
			return nil, fmt.Errorf("failed to create application: %w", execErr)
		}

		id, idErr := res.LastInsertId()
		if idErr != nil {
			return nil, fmt.Errorf("failed to get application ID: %w", idErr)
		}
		return s.getApplicationByID(ctx, id)
	}

	role := existing.Role
	if role == "" {
		role = result.Role
	}
	jobID := existing.JobID
	if jobID == "" {
		jobID = result.JobID
	}
	status := existing.Status
	if result.Status != "" && result.Status != existing.Status {
		status = result.Status
	}

	query := `
		UPDATE applications SET
			role = ?, status = ?, job_id = ?, source = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, execErr := s.db.ExecContext(ctx, query,
		nullIfEmpty(role), status, nullIfEmpty(jobID), result.Source, existing.ID); execErr != nil {
		return nil, fmt.Errorf("failed to update application: %w", execErr)
	}

	return s.getApplicationByID(ctx, existing.ID)
}

const applicationColumns = `id, company, role, status, job_id, source, applied_at, updated_at`

// GetApplicationByCompany retrieves an application by company name,
// case-insensitively.
func (s *SQLiteStorage) GetApplicationByCompany(ctx context.Context, company string) (*model.Application, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(company, "company"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE company = ? COLLATE NOCASE`,
		company)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("application for %q: %w", company, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return app, nil
}

func (s *SQLiteStorage) getApplicationByID(ctx context.Context, id int64) (*model.Application, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("application %d: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return app, nil
}

// ListApplications retrieves all tracked applications, most recent first.
func (s *SQLiteStorage) ListApplications(ctx context.Context) ([]model.Application, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications ORDER BY applied_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var apps []model.Application
	for rows.Next() {
		app, scanErr := scanApplication(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan application: %w", scanErr)
		}
		apps = append(apps, *app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return apps, nil
}

func scanApplication(row rowScanner) (*model.Application, error) {
	var app model.Application
	var role, jobID sql.NullString

	err := row.Scan(
		&app.ID, &app.Company, &role, &app.Status, &jobID, &app.Source,
		&app.AppliedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.Role = role.String
	app.JobID = jobID.String

	return &app, nil
}
