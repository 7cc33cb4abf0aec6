package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoSaver_CoalescesBurstIntoOneWrite(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, SaveRequest{Title: "draft", Content: "a"})
	require.NoError(t, err)
	writesBefore := f.notes.saveCount

	saver := NewAutoSaver(f.svc, 50*time.Millisecond, f.svc.logger)
	for _, content := range []string{"ab", "abc", "abcd"} {
		saver.Queue(ctx, SaveRequest{ID: created.ID, Title: "draft", Content: content})
	}

	require.Eventually(t, func() bool {
		got, err := f.svc.Get(ctx, created.ID)
		return err == nil && got.Content == "abcd"
	}, 2*time.Second, 5*time.Millisecond)

	// only the last request of the burst reached the repository
	assert.Equal(t, writesBefore+1, f.notes.saveCount)
}

func TestAutoSaver_FlushWritesPendingImmediately(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, SaveRequest{Title: "draft", Content: "a"})
	require.NoError(t, err)

	saver := NewAutoSaver(f.svc, time.Hour, f.svc.logger)
	saver.Queue(ctx, SaveRequest{ID: created.ID, Title: "draft", Content: "final"})
	saver.Flush()

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Content)
}

func TestAutoSaver_StopDropsPending(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, SaveRequest{Title: "draft", Content: "a"})
	require.NoError(t, err)

	saver := NewAutoSaver(f.svc, 10*time.Millisecond, f.svc.logger)
	saver.Queue(ctx, SaveRequest{ID: created.ID, Title: "draft", Content: "discarded"})
	saver.Stop()

	time.Sleep(30 * time.Millisecond)
	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Content)
}
