// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/avoskresensky/go-note-locker/internal/config"
	"github.com/avoskresensky/go-note-locker/internal/crypto"
	"github.com/avoskresensky/go-note-locker/internal/logger"
	"github.com/avoskresensky/go-note-locker/internal/session"
	"github.com/avoskresensky/go-note-locker/internal/store"
	"github.com/avoskresensky/go-note-locker/internal/utils"
	"github.com/avoskresensky/go-note-locker/models"
)

// noteService is the concrete implementation of NoteService.
//
// Every write goes through the SaveGate so a debounced auto-save and a
// manual save for the same note never interleave. Saves are idempotent:
// persisting the same state twice leaves row bytes and UpdatedAt untouched,
// which keeps auto-save from generating phantom sync work.
type noteService struct {
	notes    store.NoteRepository
	folders  store.FolderRepository
	keychain crypto.KeyChainService
	session  *session.SecuritySession
	gate     *store.SaveGate
	ids      *utils.UUIDGenerator
	mediaDir string
	logger   *logger.Logger

	now func() time.Time
}

// NewNoteService constructs a NoteService. media configures where purged
// notes' attachment files are removed from.
func NewNoteService(notes store.NoteRepository, folders store.FolderRepository, keychain crypto.KeyChainService, sess *session.SecuritySession, media config.Media, logger *logger.Logger) NoteService {
	return &noteService{
		notes:    notes,
		folders:  folders,
		keychain: keychain,
		session:  sess,
		gate:     store.NewSaveGate(),
		ids:      utils.NewUUIDGenerator(),
		mediaDir: media.Dir,
		logger:   logger,
		now:      time.Now,
	}
}

// Create persists a brand-new unlocked note built from req. The request's
// ID and Key fields are ignored.
func (n *noteService) Create(ctx context.Context, req SaveRequest) (models.Note, error) {
	log := logger.FromContext(ctx)

	now := n.now()
	note := models.Note{
		ID:        n.ids.Generate(),
		Title:     req.Title,
		Content:   req.Content,
		Preview:   models.MakePreview(req.Content),
		Lock:      models.Unlocked(),
		FolderID:  req.FolderID,
		Tags:      req.Tags,
		Color:     req.Color,
		Pinned:    req.Pinned,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := n.persist(ctx, note); err != nil {
		log.Err(err).Str("func", "Create").Msg("note creation failed")
		return models.Note{}, err
	}

	log.Info().Str("func", "Create").Str("note_id", note.ID).Msg("note created")
	return note, nil
}

// Save applies req to the existing note. When the note is locked the new
// payload is re-encrypted under the note's key; the caller supplies it in
// req.Key for custom-locked notes, global-locked notes fall back to the
// session key. Saving an identical state is a no-op.
func (n *noteService) Save(ctx context.Context, req SaveRequest) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := n.notes.Get(ctx, req.ID)
	if err != nil {
		return models.Note{}, fmt.Errorf("note lookup: %w", err)
	}

	var (
		updated models.Note
		changed bool
	)
	if note.Locked() {
		updated, changed, err = n.applyLocked(note, req)
	} else {
		updated, changed, err = n.applyPlain(note, req)
	}
	if err != nil {
		return models.Note{}, err
	}

	// Identical state: nothing to write, UpdatedAt stays put.
	if !changed {
		return note, nil
	}

	if err := n.persist(ctx, updated); err != nil {
		log.Err(err).Str("func", "Save").Str("note_id", req.ID).Msg("note save failed")
		return models.Note{}, err
	}
	return updated, nil
}

// applyPlain merges req into an unlocked note. The changed flag reports
// whether anything actually differed; UpdatedAt is bumped only then.
func (n *noteService) applyPlain(note models.Note, req SaveRequest) (models.Note, bool, error) {
	if note.Title == req.Title && note.Content == req.Content && n.metadataEqual(note, req) {
		return note, false, nil
	}

	note.Title = req.Title
	note.Content = req.Content
	note.Preview = models.MakePreview(req.Content)
	n.applyMetadata(&note, req)
	note.UpdatedAt = n.now()
	note.Synced = false
	return note, true, nil
}

// applyLocked merges req into a locked note, re-encrypting the payload under
// the note's key. Equality is checked on the decrypted payload so that an
// unchanged edit does not produce a fresh envelope.
func (n *noteService) applyLocked(note models.Note, req SaveRequest) (models.Note, bool, error) {
	key := req.Key
	if key == nil && note.Lock.Mode == models.LockModeGlobal {
		sessionKey, ok := n.session.Key()
		if !ok {
			return models.Note{}, false, ErrAuthRequired
		}
		key = sessionKey
	}
	if key == nil {
		return models.Note{}, false, ErrAuthRequired
	}

	if note.EncryptedData == nil {
		// Locked metadata without a blob: Repair territory, never a
		// decrypt attempt.
		return models.Note{}, false, crypto.ErrDecryptionFailed
	}
	current, err := n.keychain.DecryptPayload(*note.EncryptedData, key)
	if err != nil {
		return models.Note{}, false, err
	}

	if current.Title == req.Title && current.Content == req.Content && n.metadataEqual(note, req) {
		return note, false, nil
	}

	env, err := n.keychain.EncryptPayload(models.NotePayload{Title: req.Title, Content: req.Content}, key)
	if err != nil {
		return models.Note{}, false, fmt.Errorf("note re-encryption: %w", err)
	}

	note.EncryptedData = &env
	n.applyMetadata(&note, req)
	note.UpdatedAt = n.now()
	note.Synced = false
	return note, true, nil
}

func (n *noteService) metadataEqual(note models.Note, req SaveRequest) bool {
	if note.FolderID != req.FolderID || note.Color != req.Color || note.Pinned != req.Pinned {
		return false
	}
	if len(note.Tags) != len(req.Tags) {
		return false
	}
	for i := range note.Tags {
		if note.Tags[i] != req.Tags[i] {
			return false
		}
	}
	return true
}

func (n *noteService) applyMetadata(note *models.Note, req SaveRequest) {
	note.FolderID = req.FolderID
	note.Tags = req.Tags
	note.Color = req.Color
	note.Pinned = req.Pinned
}

// persist validates and writes note under the per-id save gate.
func (n *noteService) persist(ctx context.Context, note models.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}

	n.gate.Acquire(note.ID)
	defer n.gate.Release(note.ID)

	return n.notes.Save(ctx, note)
}

func (n *noteService) Get(ctx context.Context, id string) (models.Note, error) {
	return n.notes.Get(ctx, id)
}

func (n *noteService) List(ctx context.Context) ([]models.Note, error) {
	return n.notes.List(ctx)
}

func (n *noteService) ListTrashed(ctx context.Context) ([]models.Note, error) {
	return n.notes.ListTrashed(ctx)
}

func (n *noteService) Search(ctx context.Context, filter store.SearchFilter) ([]models.Note, error) {
	return n.notes.Search(ctx, filter)
}

// Trash soft-deletes the note. Content and lock state stay untouched so a
// restore brings the note back exactly as it was.
func (n *noteService) Trash(ctx context.Context, id string) error {
	return n.notes.SetTrashed(ctx, id, true, n.now())
}

// Restore brings a trashed note back, clearing its deletion timestamp.
func (n *noteService) Restore(ctx context.Context, id string) error {
	return n.notes.SetTrashed(ctx, id, false, n.now())
}

// Purge permanently removes the note and its media files.
func (n *noteService) Purge(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	refs, err := n.notes.Purge(ctx, id)
	if err != nil {
		return err
	}
	n.removeMedia(ctx, refs)

	log.Info().Str("func", "Purge").Str("note_id", id).Msg("note purged")
	return nil
}

// SweepTrash purges every note whose trash residence exceeds the retention
// window and returns how many were removed.
func (n *noteService) SweepTrash(ctx context.Context) (int, error) {
	cutoff := n.now().Add(-models.TrashRetention)

	purged, refs, err := n.notes.SweepTrash(ctx, cutoff)
	if err != nil {
		return len(purged), err
	}
	n.removeMedia(ctx, refs)
	return len(purged), nil
}

// removeMedia deletes the files behind refs from the media directory. A
// missing file is fine (already removed or never materialized); other
// failures are logged and skipped so a stray file never blocks a purge.
func (n *noteService) removeMedia(ctx context.Context, refs []string) {
	log := logger.FromContext(ctx)

	if n.mediaDir == "" {
		return
	}
	for _, ref := range refs {
		name := filepath.Base(ref)
		if err := os.Remove(filepath.Join(n.mediaDir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Err(err).Str("func", "removeMedia").Str("media_ref", ref).Msg("media file removal failed")
		}
	}
}

// SaveFolder creates or updates a folder. A request without an ID creates a
// new folder.
func (n *noteService) SaveFolder(ctx context.Context, folder models.Folder) (models.Folder, error) {
	if folder.ID == "" {
		folder.ID = n.ids.Generate()
		folder.CreatedAt = n.now()
	}
	if err := n.folders.Save(ctx, folder); err != nil {
		return models.Folder{}, fmt.Errorf("folder save: %w", err)
	}
	return folder, nil
}

func (n *noteService) ListFolders(ctx context.Context) ([]models.Folder, error) {
	return n.folders.List(ctx)
}

// DeleteFolder removes the folder record. Notes inside keep their folder id
// and render as unfiled.
func (n *noteService) DeleteFolder(ctx context.Context, id string) error {
	return n.folders.Delete(ctx, id)
}
