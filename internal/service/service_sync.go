// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/avoskresensky/go-note-locker/internal/adapter"
	"github.com/avoskresensky/go-note-locker/internal/logger"
	"github.com/avoskresensky/go-note-locker/internal/store"
	"github.com/avoskresensky/go-note-locker/models"
)

const (
	pushRetryBase = 500 * time.Millisecond
	pushRetryMax  = 4
)

// syncService is the concrete implementation of SyncService.
//
// Local data is authoritative: a failed or interrupted sync leaves local
// notes exactly as they were, and nothing a user does locally ever waits on
// the network. Conflicts resolve last-write-wins on UpdatedAt, full note
// granularity.
type syncService struct {
	notes  store.NoteRepository
	remote adapter.RemoteVault
	logger *logger.Logger

	retryBase time.Duration
	retryMax  uint64

	// mu serializes sync passes: a manual FullSync and a background tick
	// must not interleave, and lastSync is only touched under it.
	mu       sync.Mutex
	lastSync time.Time
}

// NewSyncService constructs a SyncService talking to remote.
func NewSyncService(notes store.NoteRepository, remote adapter.RemoteVault, logger *logger.Logger) SyncService {
	return &syncService{
		notes:     notes,
		remote:    remote,
		logger:    logger,
		retryBase: pushRetryBase,
		retryMax:  pushRetryMax,
	}
}

// MergeRemote is the pure conflict policy: it compares a local note against
// a remote change for the same id by UpdatedAt alone. Deterministic, so two
// devices comparing the same pair reach the same decision.
func MergeRemote(local models.Note, remote models.RemoteChange) models.MergeDecision {
	switch {
	case remote.UpdatedAt.After(local.UpdatedAt):
		return models.MergeTakeRemote
	case local.UpdatedAt.After(remote.UpdatedAt):
		return models.MergePushLocal
	default:
		return models.MergeNoop
	}
}

// FullSync runs one complete reconciliation pass: fetch remote changes,
// apply the ones that win locally, then push every local note the remote has
// not seen. Pull failures abort the pass; push failures for individual notes
// are retried with backoff and then skipped, leaving the note unsynced for
// the next pass.
func (s *syncService) FullSync(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	changes, err := s.remote.FetchChanges(ctx, s.lastSync)
	if err != nil {
		return fmt.Errorf("fetch remote changes: %w", err)
	}

	for _, change := range changes {
		if err := s.applyRemote(ctx, change); err != nil {
			return err
		}
	}

	unsynced, err := s.notes.ListUnsynced(ctx)
	if err != nil {
		return fmt.Errorf("list unsynced notes: %w", err)
	}

	for _, note := range unsynced {
		if err := s.pushNote(ctx, note); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			// Note stays unsynced and is retried next pass.
			log.Err(err).Str("func", "FullSync").Str("note_id", note.ID).Msg("note push failed")
			continue
		}
		if err := s.notes.MarkSynced(ctx, note.ID); err != nil {
			return fmt.Errorf("mark note synced (id=%s): %w", note.ID, err)
		}
	}

	s.lastSync = time.Now()

	log.Info().
		Str("func", "FullSync").
		Int("pulled", len(changes)).
		Int("pushed", len(unsynced)).
		Msg("sync pass complete")
	return nil
}

// applyRemote merges one remote change into local storage according to
// MergeRemote. Notes the remote wins are replaced wholesale, ciphertext and
// lock state included, and marked synced.
func (s *syncService) applyRemote(ctx context.Context, change models.RemoteChange) error {
	log := logger.FromContext(ctx)

	local, err := s.notes.Get(ctx, change.ID)
	if errors.Is(err, store.ErrNoteNotFound) {
		// Unknown id: the remote copy is the only copy.
		return s.takeRemote(ctx, change)
	}
	if err != nil {
		return fmt.Errorf("local note lookup (id=%s): %w", change.ID, err)
	}

	switch MergeRemote(local, change) {
	case models.MergeTakeRemote:
		return s.takeRemote(ctx, change)
	case models.MergePushLocal:
		// Local wins; the push phase handles it.
		return nil
	default:
		if !local.Synced {
			if err := s.notes.MarkSynced(ctx, local.ID); err != nil {
				return fmt.Errorf("mark note synced (id=%s): %w", local.ID, err)
			}
		}
		log.Debug().Str("func", "applyRemote").Str("note_id", change.ID).Msg("remote change is a no-op")
		return nil
	}
}

func (s *syncService) takeRemote(ctx context.Context, change models.RemoteChange) error {
	var note models.Note
	if err := json.Unmarshal(change.Blob, &note); err != nil {
		return fmt.Errorf("decode remote note (id=%s): %w", change.ID, err)
	}
	if err := note.Validate(); err != nil {
		return fmt.Errorf("remote note (id=%s): %w", change.ID, err)
	}

	note.Synced = true
	if err := s.notes.Save(ctx, note); err != nil {
		return fmt.Errorf("save remote note (id=%s): %w", change.ID, err)
	}
	return nil
}

// pushNote uploads one note, retrying transient remote failures with
// fibonacci backoff. Auth failures are not retried; the token has to be
// refreshed first.
func (s *syncService) pushNote(ctx context.Context, note models.Note) error {
	blob, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("encode note (id=%s): %w", note.ID, err)
	}
	change := models.RemoteChange{ID: note.ID, UpdatedAt: note.UpdatedAt, Blob: blob}

	backoff := retry.WithMaxRetries(s.retryMax, retry.NewFibonacci(s.retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := s.remote.Push(ctx, change)
		if errors.Is(err, adapter.ErrUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}
