package adapter

import (
	"context"
	"time"

	"github.com/avoskresensky/go-note-locker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RemoteVault is the cloud-backup transport the sync service talks to. The
// implementation is responsible for the wire protocol only; merge policy
// lives in the sync service. Every method honors ctx cancellation so sync
// can be aborted on connectivity loss without blocking local paths.
type RemoteVault interface {
	// FetchChanges returns all remote note states updated since the given
	// time. A zero since requests the full remote state.
	FetchChanges(ctx context.Context, since time.Time) ([]models.RemoteChange, error)
	// Push uploads one local note state, overwriting the remote copy.
	Push(ctx context.Context, change models.RemoteChange) error
	// SetToken replaces the bearer token used for subsequent requests.
	SetToken(token string)
}
