package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS parsed_emails (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					email_id TEXT,
					subject TEXT NOT NULL,
					sender TEXT NOT NULL,
					body_snippet TEXT,
					company TEXT,
					role TEXT,
					status TEXT NOT NULL,
					job_id TEXT,
					source TEXT NOT NULL DEFAULT 'direct',
					confidence INTEGER NOT NULL DEFAULT 0,
					patterns_used TEXT NOT NULL DEFAULT '[]',
					dates TEXT,
					cooldown TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_parsed_emails_company ON parsed_emails(company)`,
				`CREATE INDEX idx_parsed_emails_status ON parsed_emails(status)`,

				`CREATE TABLE IF NOT EXISTS applications (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					company TEXT NOT NULL,
					role TEXT,
					status TEXT NOT NULL DEFAULT 'Applied',
					job_id TEXT,
					source TEXT NOT NULL DEFAULT 'direct',
					applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE UNIQUE INDEX idx_applications_company ON applications(company COLLATE NOCASE)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add user correction columns for feedback auditing",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE parsed_emails ADD COLUMN correction_is_correct INTEGER`,
				`ALTER TABLE parsed_emails ADD COLUMN corrected_company TEXT`,
				`ALTER TABLE parsed_emails ADD COLUMN corrected_role TEXT`,
				`ALTER TABLE parsed_emails ADD COLUMN corrected_status TEXT`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", migration.Version, execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	return nil
}
