package adapter

import "errors"

var (
	// ErrUnauthorized means the backup token is missing, expired, or was
	// rejected by the service.
	ErrUnauthorized = errors.New("backup client unauthorized")

	// ErrUnavailable means the backup service could not be reached or
	// answered with a server error. The caller retries on the next sync
	// trigger; local data stays authoritative.
	ErrUnavailable = errors.New("backup service unavailable")
)
