// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package models

import (
	"errors"
	"time"
	"unicode/utf8"
)

// PreviewLength is the maximum number of runes kept in the plaintext preview
// of an unlocked note. Locked notes never carry a preview.
const PreviewLength = 120

// TrashRetention is how long a trashed note survives before the retention
// sweep purges it permanently.
const TrashRetention = 30 * 24 * time.Hour

var ErrInvariantViolation = errors.New("note invariant violation")

// Note is the full logical note entity: metadata plus content. Content and
// EncryptedData are mutually exclusive; which one is populated is dictated by
// the lock state (see [LockState]).
type Note struct {
	ID string `json:"id"`

	// Title and Content hold plaintext only while the note is unlocked.
	// Locking moves both into EncryptedData and empties them.
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`

	// Preview is a truncated plaintext summary used by list views and
	// search. Empty whenever the note is locked.
	Preview string `json:"preview,omitempty"`

	Lock LockState `json:"lock"`

	// EncryptedData is present iff the note is locked.
	EncryptedData *Envelope `json:"encrypted_data,omitempty"`

	FolderID string   `json:"folder_id,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Color    string   `json:"color,omitempty"`
	Pinned   bool     `json:"pinned,omitempty"`

	// MediaRefs lists identifiers of media files embedded in the content.
	// Purging the note removes the referenced files as well.
	MediaRefs []string `json:"media_refs,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Trashed   bool       `json:"trashed,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// Synced reports whether the last known remote copy matches local state.
	Synced bool `json:"synced"`
}

// NotePayload is the plaintext pair that gets sealed into an [Envelope] when
// a note is locked. Round-tripping through encrypt/decrypt must reproduce it
// exactly.
type NotePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Locked reports whether the note content is only recoverable via decryption.
func (n *Note) Locked() bool {
	return n.Lock.Mode != LockModeNone
}

// Validate checks the structural invariants of the note:
//
//   - locked ⇔ EncryptedData present ⇔ Content/Preview empty;
//   - custom lock ⇒ per-note security record present;
//   - trashed ⇒ DeletedAt set.
//
// Returns an error wrapping [ErrInvariantViolation] on the first violation.
func (n *Note) Validate() error {
	switch n.Lock.Mode {
	case LockModeNone:
		if n.EncryptedData != nil {
			return errors.Join(ErrInvariantViolation, errors.New("unlocked note carries ciphertext"))
		}
		if n.Lock.Security != nil {
			return errors.Join(ErrInvariantViolation, errors.New("unlocked note carries security record"))
		}
	case LockModeGlobal, LockModeCustom:
		if n.EncryptedData == nil {
			return errors.Join(ErrInvariantViolation, errors.New("locked note has no ciphertext"))
		}
		if n.Content != "" || n.Preview != "" || n.Title != "" {
			return errors.Join(ErrInvariantViolation, errors.New("locked note leaks plaintext"))
		}
		if n.Lock.Mode == LockModeCustom && n.Lock.Security == nil {
			return errors.Join(ErrInvariantViolation, errors.New("custom-locked note has no security record"))
		}
	default:
		return errors.Join(ErrInvariantViolation, errors.New("unknown lock mode"))
	}

	if n.Trashed && n.DeletedAt == nil {
		return errors.Join(ErrInvariantViolation, errors.New("trashed note has no deletion timestamp"))
	}

	return nil
}

// MakePreview derives the truncated plaintext preview from content.
func MakePreview(content string) string {
	if utf8.RuneCountInString(content) <= PreviewLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:PreviewLength])
}
