// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avoskresensky/go-note-locker/internal/adapter"
	"github.com/avoskresensky/go-note-locker/internal/logger"
	"github.com/avoskresensky/go-note-locker/internal/mock"
	"github.com/avoskresensky/go-note-locker/models"
)

func newTestSyncSvc(t *testing.T, ctrl *gomock.Controller) (*syncService, *memNoteRepo, *mock.MockRemoteVault) {
	t.Helper()

	notes := newMemNoteRepo()
	remote := mock.NewMockRemoteVault(ctrl)

	svc := NewSyncService(notes, remote, logger.Nop()).(*syncService)
	svc.retryBase = time.Millisecond
	return svc, notes, remote
}

func syncedNote(id string, updatedAt time.Time) models.Note {
	return models.Note{
		ID:        id,
		Title:     "title " + id,
		Content:   "content " + id,
		Preview:   "content " + id,
		Lock:      models.Unlocked(),
		CreatedAt: updatedAt.Add(-time.Hour),
		UpdatedAt: updatedAt,
		Synced:    true,
	}
}

func remoteChange(t *testing.T, note models.Note) models.RemoteChange {
	t.Helper()

	blob, err := json.Marshal(note)
	require.NoError(t, err)
	return models.RemoteChange{ID: note.ID, UpdatedAt: note.UpdatedAt, Blob: blob}
}

func TestMergeRemote_Deterministic(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		local  time.Time
		remote time.Time
		want   models.MergeDecision
	}{
		{"remote newer wins", base, base.Add(time.Second), models.MergeTakeRemote},
		{"local newer wins", base.Add(time.Second), base, models.MergePushLocal},
		{"equal timestamps are settled", base, base, models.MergeNoop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := models.Note{ID: "n1", UpdatedAt: tt.local}
			remote := models.RemoteChange{ID: "n1", UpdatedAt: tt.remote}

			got := MergeRemote(local, remote)
			assert.Equal(t, tt.want, got)

			// Same comparison on another device reaches the same decision.
			assert.Equal(t, got, MergeRemote(local, remote))
		})
	}
}

func TestSyncService_FullSync_TakesNewerRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, notes, remote := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	local := syncedNote("n1", base)
	require.NoError(t, notes.Save(ctx, local))

	newer := syncedNote("n1", base.Add(time.Minute))
	newer.Content = "remote content"

	remote.EXPECT().FetchChanges(ctx, gomock.Any()).Return([]models.RemoteChange{remoteChange(t, newer)}, nil)

	require.NoError(t, svc.FullSync(ctx))

	got, err := notes.Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "remote content", got.Content)
	assert.True(t, got.Synced)
}

func TestSyncService_FullSync_KeepsNewerLocalAndPushes(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, notes, remote := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	local := syncedNote("n1", base.Add(time.Minute))
	local.Content = "local content"
	local.Synced = false
	require.NoError(t, notes.Save(ctx, local))

	older := syncedNote("n1", base)

	remote.EXPECT().FetchChanges(ctx, gomock.Any()).Return([]models.RemoteChange{remoteChange(t, older)}, nil)
	remote.EXPECT().Push(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, change models.RemoteChange) error {
		assert.Equal(t, "n1", change.ID)
		var pushed models.Note
		require.NoError(t, json.Unmarshal(change.Blob, &pushed))
		assert.Equal(t, "local content", pushed.Content)
		return nil
	})

	require.NoError(t, svc.FullSync(ctx))

	got, err := notes.Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "local content", got.Content, "local winner must survive the merge")
	assert.True(t, got.Synced)
}

func TestSyncService_FullSync_AdoptsUnknownRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, notes, remote := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	incoming := syncedNote("n9", time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	remote.EXPECT().FetchChanges(ctx, gomock.Any()).Return([]models.RemoteChange{remoteChange(t, incoming)}, nil)

	require.NoError(t, svc.FullSync(ctx))

	got, err := notes.Get(ctx, "n9")
	require.NoError(t, err)
	assert.Equal(t, incoming.Content, got.Content)
	assert.True(t, got.Synced)
}

func TestSyncService_FullSync_RetriesUnavailablePush(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, notes, remote := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	local := syncedNote("n1", time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	local.Synced = false
	require.NoError(t, notes.Save(ctx, local))

	remote.EXPECT().FetchChanges(ctx, gomock.Any()).Return(nil, nil)
	gomock.InOrder(
		remote.EXPECT().Push(gomock.Any(), gomock.Any()).Return(adapter.ErrUnavailable),
		remote.EXPECT().Push(gomock.Any(), gomock.Any()).Return(adapter.ErrUnavailable),
		remote.EXPECT().Push(gomock.Any(), gomock.Any()).Return(nil),
	)

	require.NoError(t, svc.FullSync(ctx))

	got, err := notes.Get(ctx, "n1")
	require.NoError(t, err)
	assert.True(t, got.Synced)
}

func TestSyncService_FullSync_FailedPushLeavesNoteUnsynced(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, notes, remote := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	local := syncedNote("n1", time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	local.Synced = false
	require.NoError(t, notes.Save(ctx, local))

	remote.EXPECT().FetchChanges(ctx, gomock.Any()).Return(nil, nil)
	remote.EXPECT().Push(gomock.Any(), gomock.Any()).Return(adapter.ErrUnauthorized)

	// An auth failure on push does not fail the pass; the note stays queued.
	require.NoError(t, svc.FullSync(ctx))

	got, err := notes.Get(ctx, "n1")
	require.NoError(t, err)
	assert.False(t, got.Synced)
}

func TestSyncService_FullSync_FetchFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, notes, remote := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	local := syncedNote("n1", time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	require.NoError(t, notes.Save(ctx, local))

	remote.EXPECT().FetchChanges(ctx, gomock.Any()).Return(nil, adapter.ErrUnavailable)

	err := svc.FullSync(ctx)
	assert.ErrorIs(t, err, adapter.ErrUnavailable)

	// Local state is untouched by the failed pass.
	got, err := notes.Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, local.Content, got.Content)
}

func TestSyncService_FullSync_NoopChangeMarksSynced(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, notes, remote := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	local := syncedNote("n1", base)
	local.Synced = false
	require.NoError(t, notes.Save(ctx, local))

	remote.EXPECT().FetchChanges(ctx, gomock.Any()).Return([]models.RemoteChange{remoteChange(t, syncedNote("n1", base))}, nil)

	require.NoError(t, svc.FullSync(ctx))

	got, err := notes.Get(ctx, "n1")
	require.NoError(t, err)
	assert.True(t, got.Synced)
}

func TestSyncService_ConcurrentPassesDoNotInterleave(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, remote := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	inPass := make(chan struct{}, 1)
	remote.EXPECT().
		FetchChanges(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, time.Time) ([]models.RemoteChange, error) {
			select {
			case inPass <- struct{}{}:
			default:
				t.Error("a second pass started while one was in flight")
			}
			time.Sleep(5 * time.Millisecond)
			<-inPass
			return nil, nil
		}).
		Times(2)

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() { done <- svc.FullSync(ctx) }()
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, <-done)
	}
}
