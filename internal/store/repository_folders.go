package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoskresensky/go-note-locker/internal/logger"
	"github.com/avoskresensky/go-note-locker/models"
)

type folderRepository struct {
	*DB
	logger *logger.Logger
}

func NewFolderRepository(db *DB, logger *logger.Logger) FolderRepository {
	return &folderRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *folderRepository) Save(ctx context.Context, folder models.Folder) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, upsertFolder,
		folder.ID,
		folder.Name,
		folder.Color,
		folder.CreatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "folderRepository.Save").
			Str("folder_id", folder.ID).
			Msg("failed to upsert folder")
		return fmt.Errorf("upsert folder (id=%s): %w", folder.ID, err)
	}

	return nil
}

func (r *folderRepository) Get(ctx context.Context, id string) (models.Folder, error) {
	var folder models.Folder

	err := r.DB.QueryRowContext(ctx, getFolder, id).Scan(
		&folder.ID,
		&folder.Name,
		&folder.Color,
		&folder.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Folder{}, ErrFolderNotFound
	}
	if err != nil {
		return models.Folder{}, fmt.Errorf("scan folder row (id=%s): %w", id, err)
	}

	return folder, nil
}

func (r *folderRepository) List(ctx context.Context) ([]models.Folder, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listFolders)
	if err != nil {
		log.Err(err).
			Str("func", "folderRepository.List").
			Msg("failed to query folders")
		return nil, fmt.Errorf("query folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := rows.Scan(&folder.ID, &folder.Name, &folder.Color, &folder.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan folder row: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folder rows: %w", err)
	}

	return folders, nil
}

func (r *folderRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, deleteFolder, id); err != nil {
		log.Err(err).
			Str("func", "folderRepository.Delete").
			Str("folder_id", id).
			Msg("failed to delete folder")
		return fmt.Errorf("delete folder (id=%s): %w", id, err)
	}

	return nil
}
