package store

import (
	"context"
	"fmt"

	"github.com/avoskresensky/go-note-locker/internal/config"
	"github.com/avoskresensky/go-note-locker/internal/logger"
)

// Storages groups all storage repositories into a single value that can be
// passed around the service layer.
type Storages struct {
	// Notes is the SQLite-backed repository for note metadata and content
	// blobs.
	Notes NoteRepository

	// Folders persists the folder records notes are organized into.
	Folders FolderRepository

	// SecurityConfig persists the installation-wide global PIN record.
	SecurityConfig SecurityConfigRepository

	db *DB
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}

// NewStorages initialises the storage layer using the supplied configuration
// and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Runs the [NoteRepository.Repair] consistency pass so a crash between
//     a metadata write and a blob write never surfaces to callers.
//
// Returns an error if the database connection cannot be established or if
// migration fails. A repair failure is logged but does not abort startup:
// the store remains usable for consistent notes.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	notes := NewNoteRepository(db, logger)
	if repaired, err := notes.Repair(ctx); err != nil {
		logger.Err(err).Msg("note consistency repair pass failed")
	} else if repaired > 0 {
		logger.Warn().Int("repaired", repaired).Msg("repaired inconsistent note entries")
	}

	return &Storages{
		Notes:          notes,
		Folders:        NewFolderRepository(db, logger),
		SecurityConfig: NewSecurityConfigRepository(db, logger),
		db:             db,
	}, nil
}
