package models

import "time"

// RemoteChange is one note state as reported by the backup service. Blob is
// the full serialized note (metadata plus content-or-ciphertext); the merge
// policy only ever inspects ID and UpdatedAt.
type RemoteChange struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
	Blob      []byte    `json:"blob"`
}

// MergeDecision is the outcome of comparing a local note against a remote
// change for the same id.
type MergeDecision int

const (
	// MergeNoop means both sides carry the same timestamp: already synced.
	MergeNoop MergeDecision = iota
	// MergeTakeRemote means the remote copy is strictly newer and replaces
	// the local note entirely.
	MergeTakeRemote
	// MergePushLocal means the local note is strictly newer and must be
	// scheduled for upload.
	MergePushLocal
)
