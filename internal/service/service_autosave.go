package service

import (
	"context"
	"time"

	"github.com/avoskresensky/go-note-locker/internal/logger"
	"github.com/avoskresensky/go-note-locker/internal/workers"
)

type autoSaver struct {
	notes    NoteService
	debounce *workers.Debouncer
	logger   *logger.Logger
}

// NewAutoSaver returns an AutoSaver that writes through notes after delay of
// editor quiet time.
func NewAutoSaver(notes NoteService, delay time.Duration, log *logger.Logger) AutoSaver {
	return &autoSaver{
		notes:    notes,
		debounce: workers.NewDebouncer(delay),
		logger:   log,
	}
}

func (a *autoSaver) Queue(ctx context.Context, req SaveRequest) {
	a.debounce.Trigger(func() {
		if _, err := a.notes.Save(ctx, req); err != nil {
			a.logger.Err(err).Str("func", "Queue").Str("note_id", req.ID).Msg("auto-save failed")
		}
	})
}

func (a *autoSaver) Flush() {
	a.debounce.Flush()
}

func (a *autoSaver) Stop() {
	a.debounce.Stop()
}
