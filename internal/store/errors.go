package store

import "errors"

var (
	// ErrNoteNotFound is returned when no metadata row exists for an id.
	ErrNoteNotFound = errors.New("note not found")

	// ErrFolderNotFound is returned when no folder row exists for an id.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrSecurityConfigNotFound is returned when global PIN setup has not
	// run yet on this installation.
	ErrSecurityConfigNotFound = errors.New("global security config not found")
)
