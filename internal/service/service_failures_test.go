// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avoskresensky/go-note-locker/internal/config"
	"github.com/avoskresensky/go-note-locker/internal/crypto"
	"github.com/avoskresensky/go-note-locker/internal/logger"
	"github.com/avoskresensky/go-note-locker/internal/mock"
	"github.com/avoskresensky/go-note-locker/internal/session"
	"github.com/avoskresensky/go-note-locker/models"
)

var errStorage = errors.New("storage broke")

func TestNoteService_Save_RepoLookupFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	notes := mock.NewMockNoteRepository(ctrl)
	folders := mock.NewMockFolderRepository(ctrl)

	notes.EXPECT().Get(gomock.Any(), "n1").Return(models.Note{}, errStorage)

	svc := NewNoteService(notes, folders, crypto.NewKeyChainService(), session.NewSecuritySession(), config.Media{Dir: t.TempDir()}, logger.Nop())
	_, err := svc.Save(context.Background(), SaveRequest{ID: "n1", Title: "x"})
	assert.ErrorIs(t, err, errStorage)
}

func TestNoteService_SweepTrash_RepoFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	notes := mock.NewMockNoteRepository(ctrl)
	folders := mock.NewMockFolderRepository(ctrl)

	notes.EXPECT().SweepTrash(gomock.Any(), gomock.Any()).Return(nil, nil, errStorage)

	svc := NewNoteService(notes, folders, crypto.NewKeyChainService(), session.NewSecuritySession(), config.Media{Dir: t.TempDir()}, logger.Nop())
	_, err := svc.SweepTrash(context.Background())
	assert.ErrorIs(t, err, errStorage)
}

func TestSecurityService_SetGlobalPin_VerifierFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	keychain := mock.NewMockKeyChainService(ctrl)
	notes := mock.NewMockNoteRepository(ctrl)
	cfg := mock.NewMockSecurityConfigRepository(ctrl)

	errVerifier := errors.New("entropy source unavailable")
	keychain.EXPECT().CreateVerifier("1234").Return(models.SecurityRecord{}, errVerifier)

	sess := session.NewSecuritySession()
	svc := NewSecurityService(keychain, notes, cfg, sess, nil, logger.Nop())

	err := svc.SetGlobalPin(context.Background(), "1234")
	require.ErrorIs(t, err, errVerifier)
	assert.False(t, sess.IsActive(), "session must stay inactive when setup fails")
}

func TestSecurityService_GlobalPinConfigured_LookupFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	keychain := mock.NewMockKeyChainService(ctrl)
	notes := mock.NewMockNoteRepository(ctrl)
	cfg := mock.NewMockSecurityConfigRepository(ctrl)

	cfg.EXPECT().Get(gomock.Any()).Return(models.GlobalSecurityConfig{}, errStorage)

	svc := NewSecurityService(keychain, notes, cfg, session.NewSecuritySession(), nil, logger.Nop())
	_, err := svc.GlobalPinConfigured(context.Background())
	assert.ErrorIs(t, err, errStorage)
}

func TestSecurityService_OpenNote_MissingBlobIsDecryptionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	keychain := mock.NewMockKeyChainService(ctrl)
	notes := mock.NewMockNoteRepository(ctrl)
	cfg := mock.NewMockSecurityConfigRepository(ctrl)

	// A locked metadata row whose blob row is gone, as the repository
	// reports it between a crash and the next repair pass.
	broken := models.Note{
		ID:        "n1",
		Lock:      models.GlobalLocked(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	notes.EXPECT().Get(gomock.Any(), "n1").Return(broken, nil)

	sess := session.NewSecuritySession()
	sess.Acquire([]byte{1, 2, 3})

	svc := NewSecurityService(keychain, notes, cfg, sess, nil, logger.Nop())
	_, err := svc.OpenNote(context.Background(), "n1")
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
}
