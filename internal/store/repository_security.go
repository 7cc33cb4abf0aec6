package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avoskresensky/go-note-locker/internal/logger"
	"github.com/avoskresensky/go-note-locker/models"
)

type securityConfigRepository struct {
	*DB
	logger *logger.Logger
}

func NewSecurityConfigRepository(db *DB, logger *logger.Logger) SecurityConfigRepository {
	return &securityConfigRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *securityConfigRepository) Get(ctx context.Context) (models.GlobalSecurityConfig, error) {
	var (
		cfg         models.GlobalSecurityConfig
		rawVerifier string
	)

	err := r.DB.QueryRowContext(ctx, getSecurityConfig).Scan(
		&cfg.Salt,
		&rawVerifier,
		&cfg.PINLength,
		&cfg.CreatedAtUnix,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GlobalSecurityConfig{}, ErrSecurityConfigNotFound
	}
	if err != nil {
		return models.GlobalSecurityConfig{}, fmt.Errorf("scan security config row: %w", err)
	}

	if err = json.Unmarshal([]byte(rawVerifier), &cfg.Verifier); err != nil {
		return models.GlobalSecurityConfig{}, fmt.Errorf("decode global verifier: %w", err)
	}

	return cfg, nil
}

func (r *securityConfigRepository) Put(ctx context.Context, cfg models.GlobalSecurityConfig) error {
	log := logger.FromContext(ctx)

	rawVerifier, err := json.Marshal(cfg.Verifier)
	if err != nil {
		return fmt.Errorf("encode global verifier: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, putSecurityConfig,
		cfg.Salt,
		string(rawVerifier),
		cfg.PINLength,
		cfg.CreatedAtUnix,
	)
	if err != nil {
		log.Err(err).
			Str("func", "securityConfigRepository.Put").
			Msg("failed to upsert global security config")
		return fmt.Errorf("upsert global security config: %w", err)
	}

	return nil
}
