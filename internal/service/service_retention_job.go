package service

import (
	"context"
	"sync"
	"time"
)

type retentionJob struct {
	noteService NoteService
	interval    time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRetentionJob creates a retentionJob that runs the trash sweep on a
// ticker. If interval is zero or negative it defaults to one hour. One sweep
// runs immediately on Start so notes that expired while the app was closed
// do not linger until the first tick.
func NewRetentionJob(noteService NoteService, interval time.Duration) RetentionJob {
	if interval <= 0 {
		interval = time.Hour
	}
	return &retentionJob{noteService: noteService, interval: interval}
}

// Start implements RetentionJob. It stops any previously running job, then
// launches a background goroutine that sweeps expired trash every interval.
func (j *retentionJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()

		_, _ = j.noteService.SweepTrash(jobCtx)

		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				_, _ = j.noteService.SweepTrash(jobCtx)
			}
		}
	}()
}

// Stop implements RetentionJob. Safe to call when the job is not running.
func (j *retentionJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
