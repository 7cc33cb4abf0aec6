package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/avoskresensky/go-note-locker/internal/logger"
	"github.com/avoskresensky/go-note-locker/models"
)

func newTestSecurityRepo(t *testing.T) (*securityConfigRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &securityConfigRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestSecurityConfigRepository_Get_NotConfigured(t *testing.T) {
	repo, mock, db := newTestSecurityRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT salt, verifier, pin_length, created_at_unix").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background())
	if !errors.Is(err, ErrSecurityConfigNotFound) {
		t.Fatalf("expected ErrSecurityConfigNotFound, got %v", err)
	}
}

func TestSecurityConfigRepository_Get_DecodesVerifier(t *testing.T) {
	repo, mock, db := newTestSecurityRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"salt", "verifier", "pin_length", "created_at_unix"}).
		AddRow([]byte("salt-bytes"), `{"cipher_text":"Y2lwaGVy","iv":"aXY="}`, 4, int64(1773500000))

	mock.ExpectQuery("SELECT salt, verifier, pin_length, created_at_unix").
		WillReturnRows(rows)

	cfg, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(cfg.Salt) != "salt-bytes" {
		t.Errorf("unexpected salt: %q", cfg.Salt)
	}
	if cfg.Verifier.CipherText != "Y2lwaGVy" || cfg.Verifier.IV != "aXY=" {
		t.Errorf("unexpected verifier: %+v", cfg.Verifier)
	}
	if cfg.PINLength != 4 {
		t.Errorf("unexpected pin length: %d", cfg.PINLength)
	}
}

func TestSecurityConfigRepository_Put_UpsertsSingleRow(t *testing.T) {
	repo, mock, db := newTestSecurityRepo(t)
	defer db.Close()

	cfg := models.GlobalSecurityConfig{
		SecurityRecord: models.SecurityRecord{
			Salt:      []byte("salt-bytes"),
			Verifier:  models.Envelope{CipherText: "Y2lwaGVy", IV: "aXY="},
			PINLength: 4,
		},
		CreatedAtUnix: 1773500000,
	}

	mock.ExpectExec("INSERT INTO security_config").
		WithArgs(cfg.Salt, `{"cipher_text":"Y2lwaGVy","iv":"aXY="}`, 4, int64(1773500000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Put(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
