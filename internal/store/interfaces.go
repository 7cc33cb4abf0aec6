package store

import (
	"context"
	"time"

	"github.com/avoskresensky/go-note-locker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// NoteRepository persists notes as a metadata row plus a content blob keyed
// by note id. Both rows are written inside one transaction so they cannot
// drift apart under a completed call; Repair covers everything else.
type NoteRepository interface {
	// Save upserts the note's metadata and its content-or-ciphertext blob
	// atomically.
	Save(ctx context.Context, note models.Note) error
	// Get returns the full note: metadata joined with its blob.
	Get(ctx context.Context, id string) (models.Note, error)
	// List returns metadata of all non-trashed notes, newest first.
	// Content blobs are not loaded.
	List(ctx context.Context) ([]models.Note, error)
	// ListTrashed returns metadata of all trashed notes.
	ListTrashed(ctx context.Context) ([]models.Note, error)
	// ListUnsynced returns full notes whose local state is ahead of the
	// last known remote copy.
	ListUnsynced(ctx context.Context) ([]models.Note, error)
	// Search returns metadata of non-trashed notes matching the filter.
	Search(ctx context.Context, f SearchFilter) ([]models.Note, error)
	// SetTrashed flips the soft-delete markers without touching content.
	SetTrashed(ctx context.Context, id string, trashed bool, at time.Time) error
	// MarkSynced records that the remote copy now matches local state.
	MarkSynced(ctx context.Context, id string) error
	// Purge removes metadata and blob permanently. Returns the media refs
	// the note held so the caller can remove the files.
	Purge(ctx context.Context, id string) ([]string, error)
	// SweepTrash purges every note trashed before cutoff. Returns the
	// purged ids and the media refs those notes held.
	SweepTrash(ctx context.Context, cutoff time.Time) ([]string, []string, error)
	// Repair reconciles metadata and blobs after a crash: orphaned blobs
	// are dropped, metadata without a blob is reset to an empty unlocked
	// note. Returns the number of repaired entries.
	Repair(ctx context.Context) (int, error)
}

// FolderRepository persists the folder records notes are organized into.
type FolderRepository interface {
	Save(ctx context.Context, folder models.Folder) error
	Get(ctx context.Context, id string) (models.Folder, error)
	List(ctx context.Context) ([]models.Folder, error)
	// Delete removes the folder; notes keep their folder id and fall back
	// to unfiled rendering.
	Delete(ctx context.Context, id string) error
}

// SecurityConfigRepository persists the single installation-wide security
// record for the global PIN.
type SecurityConfigRepository interface {
	Get(ctx context.Context) (models.GlobalSecurityConfig, error)
	// Put creates or replaces the global config.
	Put(ctx context.Context, cfg models.GlobalSecurityConfig) error
}
