package service

import (
	"context"

	"github.com/avoskresensky/go-note-locker/internal/store"
	"github.com/avoskresensky/go-note-locker/models"
)

// UnlockedNote is a note whose plaintext is available to the caller. For a
// locked note the payload comes from decryption and Note still carries its
// scrubbed (title-less, preview-less) metadata.
type UnlockedNote struct {
	Note    models.Note
	Payload models.NotePayload

	// Key is set only when the note is custom-locked: it is the
	// note-scoped key the caller needs for subsequent saves. Callers must
	// drop it when the note view closes; it is never cached globally.
	Key []byte
}

// SecurityService is the lock policy state machine. It decides which key
// protects a note, runs the authentication flows, and performs lock state
// transitions. Crypto failures surface as the sentinel errors of the crypto
// package (ErrAuthFailed, ErrDecryptionFailed), never as raw cipher errors.
type SecurityService interface {
	// GlobalPinConfigured reports whether first-run PIN setup happened.
	GlobalPinConfigured(ctx context.Context) (bool, error)
	// SetGlobalPin runs first-run setup (or explicit reset): it creates a
	// fresh global verifier, persists it, and establishes the session key.
	SetGlobalPin(ctx context.Context, pin string) error
	// AuthenticateGlobal validates pin against the global verifier and
	// refreshes the session key. A wrong pin leaves the session untouched.
	AuthenticateGlobal(ctx context.Context, pin string) error
	// AuthenticateCached tries the device credential cache instead of a
	// manual pin entry. Returns ErrAuthRequired when nothing is cached.
	AuthenticateCached(ctx context.Context) error
	// OpenNote resolves a note to plaintext if a key is available.
	// Unlocked notes open directly. Global-locked notes open when the
	// session is active, otherwise ErrAuthRequired. Custom-locked notes
	// always return ErrAuthRequired: the global session is never trusted
	// for them. Opening never mutates the note.
	OpenNote(ctx context.Context, id string) (UnlockedNote, error)
	// OpenNoteWithPin opens a custom-locked note by validating pin
	// against the note's own security record.
	OpenNoteWithPin(ctx context.Context, id, pin string) (UnlockedNote, error)
	// LockNoteGlobal locks an unlocked note under the session key.
	// Requires the global PIN to be configured and the session active.
	LockNoteGlobal(ctx context.Context, id string) error
	// LockNoteWithPin locks an unlocked note under a brand-new key
	// derived from pin, with a fresh per-note salt and verifier. The
	// global configuration is not involved.
	LockNoteWithPin(ctx context.Context, id, pin string) error
	// UnlockNote permanently removes the lock: it decrypts with whatever
	// key source applies (session key for global locks, pin for custom
	// locks or an inactive session) and persists the plaintext, dropping
	// ciphertext and security record in the same write.
	UnlockNote(ctx context.Context, id, pin string) error
	// LockSession drops the session key. Called when the app backgrounds
	// or the lock overlay engages; open global-locked notes become
	// unreadable until re-authentication.
	LockSession()
	// FailedAttempts reports the number of wrong PIN entries since the
	// last successful verification. Informational only, there is no
	// lockout.
	FailedAttempts() int
}

// SaveRequest carries one note edit. Key is consulted only when the target
// note is locked: global-locked notes fall back to the session key when Key
// is nil, custom-locked notes require the note-scoped key from the open
// flow.
type SaveRequest struct {
	ID       string
	Title    string
	Content  string
	FolderID string
	Tags     []string
	Color    string
	Pinned   bool
	Key      []byte
}

// NoteService is the note storage facade: it owns the metadata/content
// split, per-note save serialization, search, trash, and retention.
type NoteService interface {
	Create(ctx context.Context, req SaveRequest) (models.Note, error)
	// Save applies the edit, re-encrypting when the note is locked.
	// Saving unchanged content is a no-op that leaves the persisted bytes
	// and UpdatedAt untouched. At most one save per note id runs at a
	// time; a racing save waits for the in-flight one to settle.
	Save(ctx context.Context, req SaveRequest) (models.Note, error)
	Get(ctx context.Context, id string) (models.Note, error)
	List(ctx context.Context) ([]models.Note, error)
	ListTrashed(ctx context.Context) ([]models.Note, error)
	Search(ctx context.Context, filter store.SearchFilter) ([]models.Note, error)
	Trash(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	// Purge permanently removes the note, its blob, and any media files
	// the note referenced.
	Purge(ctx context.Context, id string) error
	// SweepTrash purges all notes trashed longer than the retention
	// window and returns how many were removed.
	SweepTrash(ctx context.Context) (int, error)

	SaveFolder(ctx context.Context, folder models.Folder) (models.Folder, error)
	ListFolders(ctx context.Context) ([]models.Folder, error)
	DeleteFolder(ctx context.Context, id string) error
}

// AutoSaver coalesces the save requests an editor emits while the user is
// typing into a single Save call after a quiet period. Only the most recent
// request for the debounce window is written.
type AutoSaver interface {
	// Queue schedules req to be saved once the quiet period elapses
	// without another Queue call.
	Queue(ctx context.Context, req SaveRequest)
	// Flush writes the pending request immediately, if any. Called when
	// the note view closes or the app backgrounds.
	Flush()
	// Stop drops the pending request without writing it.
	Stop()
}

// SyncService reconciles local notes with the backup service. Local data is
// authoritative; sync is opportunistic and its failures never block local
// reads or writes.
type SyncService interface {
	// FullSync fetches remote changes, merges them last-write-wins, and
	// pushes local notes that are ahead of the remote.
	FullSync(ctx context.Context) error
}

// SyncJob runs FullSync periodically in the background.
type SyncJob interface {
	Start(ctx context.Context)
	Stop()
}

// RetentionJob runs the trash sweep periodically in the background.
type RetentionJob interface {
	Start(ctx context.Context)
	Stop()
}
