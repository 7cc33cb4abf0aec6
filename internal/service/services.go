package service

import (
	"github.com/avoskresensky/go-note-locker/internal/adapter"
	"github.com/avoskresensky/go-note-locker/internal/config"
	"github.com/avoskresensky/go-note-locker/internal/crypto"
	"github.com/avoskresensky/go-note-locker/internal/logger"
	"github.com/avoskresensky/go-note-locker/internal/session"
	"github.com/avoskresensky/go-note-locker/internal/store"
)

// Services wires the full service layer of the app. Sync fields are nil when
// no backup endpoint is configured; everything else works regardless.
type Services struct {
	Security     SecurityService
	Notes        NoteService
	Autosave     AutoSaver
	Sync         SyncService
	SyncJob      SyncJob
	RetentionJob RetentionJob
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, cache session.CredentialCache, log *logger.Logger) *Services {
	keychain := crypto.NewKeyChainService()
	sess := session.NewSecuritySession()

	securitySvc := NewSecurityService(keychain, storages.Notes, storages.SecurityConfig, sess, cache, log)
	noteSvc := NewNoteService(storages.Notes, storages.Folders, keychain, sess, cfg.Storage.Media, log)

	services := &Services{
		Security:     securitySvc,
		Notes:        noteSvc,
		Autosave:     NewAutoSaver(noteSvc, cfg.Workers.AutosaveDelay, log),
		RetentionJob: NewRetentionJob(noteSvc, cfg.Workers.RetentionInterval),
	}

	if cfg.SyncEnabled() {
		remote := adapter.NewHTTPRemoteVault(adapter.HTTPClientConfig{
			BaseURL: cfg.Sync.BaseURL,
			Token:   cfg.Sync.Token,
			Timeout: cfg.Sync.RequestTimeout,
		})
		services.Sync = NewSyncService(storages.Notes, remote, log)
		services.SyncJob = NewSyncJob(services.Sync, cfg.Workers.SyncInterval)
	}

	return services
}
