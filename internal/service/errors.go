package service

import "errors"

var (
	// ErrAuthRequired means the operation needs a key that is not
	// available: the caller must run an authentication flow first.
	ErrAuthRequired = errors.New("authentication required")

	// ErrGlobalPinNotSet means a global lock was requested before the
	// app-wide PIN was configured.
	ErrGlobalPinNotSet = errors.New("global pin is not set up")

	// ErrEmptyPin rejects blank secrets during setup flows.
	ErrEmptyPin = errors.New("pin must not be empty")

	// ErrNoteAlreadyLocked rejects locking an already-locked note; the
	// caller must unlock first to change the mode.
	ErrNoteAlreadyLocked = errors.New("note is already locked")

	// ErrNoteNotLocked rejects unlock of a note that carries no lock.
	ErrNoteNotLocked = errors.New("note is not locked")
)
