package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/jobtrail/jobtrail/internal/config"
	"github.com/jobtrail/jobtrail/internal/patternstore"
	"github.com/jobtrail/jobtrail/internal/service"
	"github.com/jobtrail/jobtrail/internal/storage"
)

// initPatternStore creates the pattern store over the configured document path.
func initPatternStore() *patternstore.Store {
	path := viper.GetString("patterns.path")
	if path == "" {
		path = "$HOME/.config/jobtrail/patterns.json"
	}
	return patternstore.New(config.ExpandPath(path))
}

// initStorage initializes the record store with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/jobtrail/jobtrail.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// snippet truncates a body for record storage.
func snippet(body string) string {
	const maxSnippet = 500
	if len(body) <= maxSnippet {
		return body
	}
	return body[:maxSnippet]
}
