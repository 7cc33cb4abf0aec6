// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/avoskresensky/go-note-locker/internal/crypto"
	"github.com/avoskresensky/go-note-locker/internal/logger"
	"github.com/avoskresensky/go-note-locker/internal/session"
	"github.com/avoskresensky/go-note-locker/internal/store"
	"github.com/avoskresensky/go-note-locker/models"
)

// securityService is the concrete implementation of SecurityService.
//
// It maps a note's lock state to a key source: global-locked notes read the
// key from the shared SecuritySession, custom-locked notes derive it from
// their own security record and a caller-supplied PIN. The service owns the
// transitions between the three lock states and keeps the note's structural
// invariants intact across every one of them.
type securityService struct {
	keychain crypto.KeyChainService
	notes    store.NoteRepository
	config   store.SecurityConfigRepository
	session  *session.SecuritySession
	cache    session.CredentialCache
	logger   *logger.Logger

	failedPins atomic.Int64
}

// NewSecurityService constructs a SecurityService. cache may be the no-op
// implementation; every flow then requires manual PIN entry.
func NewSecurityService(keychain crypto.KeyChainService, notes store.NoteRepository, config store.SecurityConfigRepository, sess *session.SecuritySession, cache session.CredentialCache, logger *logger.Logger) SecurityService {
	if cache == nil {
		cache = session.NopCredentialCache{}
	}
	return &securityService{
		keychain: keychain,
		notes:    notes,
		config:   config,
		session:  sess,
		cache:    cache,
		logger:   logger,
	}
}

// GlobalPinConfigured reports whether the installation-wide security record
// exists.
func (s *securityService) GlobalPinConfigured(ctx context.Context) (bool, error) {
	_, err := s.config.Get(ctx)
	if errors.Is(err, store.ErrSecurityConfigNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("global security config lookup: %w", err)
	}
	return true, nil
}

// SetGlobalPin creates and persists a fresh global verifier for pin and
// establishes the session key, so the user is authenticated immediately
// after setup.
func (s *securityService) SetGlobalPin(ctx context.Context, pin string) error {
	log := logger.FromContext(ctx)

	if pin == "" {
		return ErrEmptyPin
	}

	record, err := s.keychain.CreateVerifier(pin)
	if err != nil {
		log.Err(err).Str("func", "SetGlobalPin").Msg("verifier creation failed")
		return fmt.Errorf("global verifier creation: %w", err)
	}

	cfg := models.GlobalSecurityConfig{
		SecurityRecord: record,
		CreatedAtUnix:  time.Now().Unix(),
	}
	if err := s.config.Put(ctx, cfg); err != nil {
		log.Err(err).Str("func", "SetGlobalPin").Msg("global security config save failed")
		return fmt.Errorf("global security config save: %w", err)
	}

	s.session.Acquire(s.keychain.DeriveKey(pin, record.Salt))
	s.cache.Forget()

	log.Info().Str("func", "SetGlobalPin").Msg("global pin configured")
	return nil
}

// AuthenticateGlobal validates pin against the global verifier and installs
// the derived key as the session key. On failure the session keeps whatever
// state it had.
func (s *securityService) AuthenticateGlobal(ctx context.Context, pin string) error {
	log := logger.FromContext(ctx)

	key, err := s.authenticate(ctx, pin)
	if err != nil {
		return err
	}

	s.session.Acquire(key)
	s.cache.SetGlobalSecret(pin)

	log.Info().Str("func", "AuthenticateGlobal").Msg("global session established")
	return nil
}

// AuthenticateCached replays the device-cached PIN through the normal
// verification path. A stale cached PIN (changed since caching) fails
// verification like any wrong PIN and is dropped from the cache.
func (s *securityService) AuthenticateCached(ctx context.Context) error {
	pin, ok := s.cache.GetGlobalSecret()
	if !ok {
		return ErrAuthRequired
	}

	key, err := s.authenticate(ctx, pin)
	if err != nil {
		s.cache.Forget()
		return err
	}

	s.session.Acquire(key)
	return nil
}

func (s *securityService) authenticate(ctx context.Context, pin string) ([]byte, error) {
	log := logger.FromContext(ctx)

	if pin == "" {
		return nil, ErrEmptyPin
	}

	cfg, err := s.config.Get(ctx)
	if errors.Is(err, store.ErrSecurityConfigNotFound) {
		return nil, ErrGlobalPinNotSet
	}
	if err != nil {
		log.Err(err).Str("func", "authenticate").Msg("global security config lookup failed")
		return nil, fmt.Errorf("global security config lookup: %w", err)
	}

	return s.checkSecret(pin, cfg.Salt, cfg.Verifier)
}

// checkSecret funnels every PIN verification through the failed-attempt
// counter. The counter is informational for callers; no lockout is enforced.
func (s *securityService) checkSecret(pin string, salt []byte, verifier models.Envelope) ([]byte, error) {
	key, err := s.keychain.CheckSecret(pin, salt, verifier)
	if errors.Is(err, crypto.ErrAuthFailed) {
		s.failedPins.Add(1)
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	s.failedPins.Store(0)
	return key, nil
}

// FailedAttempts reports how many PIN verifications failed since the last
// successful one.
func (s *securityService) FailedAttempts() int {
	return int(s.failedPins.Load())
}

// OpenNote resolves the note to plaintext when a key is available without
// asking the user for anything. It never writes: repeated opens observe the
// same UpdatedAt.
func (s *securityService) OpenNote(ctx context.Context, id string) (UnlockedNote, error) {
	log := logger.FromContext(ctx)

	note, err := s.notes.Get(ctx, id)
	if err != nil {
		return UnlockedNote{}, fmt.Errorf("note lookup: %w", err)
	}

	switch note.Lock.Mode {
	case models.LockModeNone:
		return UnlockedNote{
			Note:    note,
			Payload: models.NotePayload{Title: note.Title, Content: note.Content},
		}, nil

	case models.LockModeGlobal:
		key, ok := s.session.Key()
		if !ok {
			return UnlockedNote{}, ErrAuthRequired
		}
		if note.EncryptedData == nil {
			log.Warn().Str("func", "OpenNote").Str("note_id", id).Msg("locked note has no blob, awaiting repair")
			return UnlockedNote{}, crypto.ErrDecryptionFailed
		}
		payload, err := s.keychain.DecryptPayload(*note.EncryptedData, key)
		if err != nil {
			log.Err(err).Str("func", "OpenNote").Str("note_id", id).Msg("global-locked note decryption failed")
			return UnlockedNote{}, err
		}
		return UnlockedNote{Note: note, Payload: payload}, nil

	case models.LockModeCustom:
		// The global session is never valid for a custom-locked note.
		return UnlockedNote{}, ErrAuthRequired

	default:
		return UnlockedNote{}, fmt.Errorf("%w: unknown lock mode %q", models.ErrInvariantViolation, note.Lock.Mode)
	}
}

// OpenNoteWithPin opens a custom-locked note by validating pin against the
// note's own security record. The returned Key must accompany subsequent
// saves of this note while it stays open.
func (s *securityService) OpenNoteWithPin(ctx context.Context, id, pin string) (UnlockedNote, error) {
	log := logger.FromContext(ctx)

	if pin == "" {
		return UnlockedNote{}, ErrEmptyPin
	}

	note, err := s.notes.Get(ctx, id)
	if err != nil {
		return UnlockedNote{}, fmt.Errorf("note lookup: %w", err)
	}
	if note.Lock.Mode != models.LockModeCustom || note.Lock.Security == nil {
		return UnlockedNote{}, ErrNoteNotLocked
	}

	key, err := s.checkSecret(pin, note.Lock.Security.Salt, note.Lock.Security.Verifier)
	if err != nil {
		return UnlockedNote{}, err
	}

	if note.EncryptedData == nil {
		log.Warn().Str("func", "OpenNoteWithPin").Str("note_id", id).Msg("locked note has no blob, awaiting repair")
		return UnlockedNote{}, crypto.ErrDecryptionFailed
	}
	payload, err := s.keychain.DecryptPayload(*note.EncryptedData, key)
	if err != nil {
		log.Err(err).Str("func", "OpenNoteWithPin").Str("note_id", id).Msg("custom-locked note decryption failed")
		return UnlockedNote{}, err
	}

	return UnlockedNote{Note: note, Payload: payload, Key: key}, nil
}

// LockNoteGlobal moves an unlocked note under the session key. The plaintext
// title, content, and preview are scrubbed in the same write that stores the
// ciphertext.
func (s *securityService) LockNoteGlobal(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	configured, err := s.GlobalPinConfigured(ctx)
	if err != nil {
		return err
	}
	if !configured {
		return ErrGlobalPinNotSet
	}

	key, ok := s.session.Key()
	if !ok {
		return ErrAuthRequired
	}

	note, err := s.notes.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("note lookup: %w", err)
	}
	if note.Locked() {
		return ErrNoteAlreadyLocked
	}

	if err := s.sealNote(ctx, &note, key, models.GlobalLocked()); err != nil {
		log.Err(err).Str("func", "LockNoteGlobal").Str("note_id", id).Msg("note lock failed")
		return err
	}

	log.Info().Str("func", "LockNoteGlobal").Str("note_id", id).Msg("note locked under session key")
	return nil
}

// LockNoteWithPin moves an unlocked note under a key derived from pin, with
// its own fresh salt and verifier. Two notes locked with the same PIN end up
// under different keys.
func (s *securityService) LockNoteWithPin(ctx context.Context, id, pin string) error {
	log := logger.FromContext(ctx)

	if pin == "" {
		return ErrEmptyPin
	}

	note, err := s.notes.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("note lookup: %w", err)
	}
	if note.Locked() {
		return ErrNoteAlreadyLocked
	}

	record, err := s.keychain.CreateVerifier(pin)
	if err != nil {
		log.Err(err).Str("func", "LockNoteWithPin").Str("note_id", id).Msg("verifier creation failed")
		return fmt.Errorf("note verifier creation: %w", err)
	}
	key := s.keychain.DeriveKey(pin, record.Salt)

	if err := s.sealNote(ctx, &note, key, models.CustomLocked(record)); err != nil {
		log.Err(err).Str("func", "LockNoteWithPin").Str("note_id", id).Msg("note lock failed")
		return err
	}

	log.Info().Str("func", "LockNoteWithPin").Str("note_id", id).Msg("note locked under custom pin")
	return nil
}

// sealNote encrypts the note's plaintext under key, installs lock, scrubs
// the plaintext fields, and persists the result as one save.
func (s *securityService) sealNote(ctx context.Context, note *models.Note, key []byte, lock models.LockState) error {
	payload := models.NotePayload{Title: note.Title, Content: note.Content}
	env, err := s.keychain.EncryptPayload(payload, key)
	if err != nil {
		return fmt.Errorf("note encryption: %w", err)
	}

	note.Lock = lock
	note.EncryptedData = &env
	note.Title = ""
	note.Content = ""
	note.Preview = ""
	note.UpdatedAt = time.Now()
	note.Synced = false

	if err := s.notes.Save(ctx, *note); err != nil {
		return fmt.Errorf("locked note save: %w", err)
	}
	return nil
}

// UnlockNote permanently removes the note's lock. For a global-locked note
// the session key is used when active, otherwise pin is checked against the
// global verifier. For a custom-locked note pin is always required.
func (s *securityService) UnlockNote(ctx context.Context, id, pin string) error {
	log := logger.FromContext(ctx)

	note, err := s.notes.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("note lookup: %w", err)
	}
	if !note.Locked() {
		return ErrNoteNotLocked
	}

	var key []byte
	switch note.Lock.Mode {
	case models.LockModeGlobal:
		if sessionKey, ok := s.session.Key(); ok {
			key = sessionKey
			break
		}
		key, err = s.authenticate(ctx, pin)
		if err != nil {
			return err
		}
	case models.LockModeCustom:
		if pin == "" {
			return ErrEmptyPin
		}
		if note.Lock.Security == nil {
			return fmt.Errorf("%w: custom-locked note has no security record", models.ErrInvariantViolation)
		}
		key, err = s.checkSecret(pin, note.Lock.Security.Salt, note.Lock.Security.Verifier)
		if err != nil {
			return err
		}
	}

	if note.EncryptedData == nil {
		log.Warn().Str("func", "UnlockNote").Str("note_id", id).Msg("locked note has no blob, awaiting repair")
		return crypto.ErrDecryptionFailed
	}
	payload, err := s.keychain.DecryptPayload(*note.EncryptedData, key)
	if err != nil {
		log.Err(err).Str("func", "UnlockNote").Str("note_id", id).Msg("note decryption failed")
		return err
	}

	note.Lock = models.Unlocked()
	note.EncryptedData = nil
	note.Title = payload.Title
	note.Content = payload.Content
	note.Preview = models.MakePreview(payload.Content)
	note.UpdatedAt = time.Now()
	note.Synced = false

	if err := s.notes.Save(ctx, note); err != nil {
		return fmt.Errorf("unlocked note save: %w", err)
	}

	log.Info().Str("func", "UnlockNote").Str("note_id", id).Msg("note lock removed")
	return nil
}

// LockSession drops the session key. The credential cache survives so a
// device keystore can re-establish the session without manual PIN entry.
func (s *securityService) LockSession() {
	s.session.Clear()
}
