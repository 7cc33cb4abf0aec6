// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package service

import (
	"context"
	"sync"
	"time"

	"github.com/avoskresensky/go-note-locker/internal/store"
	"github.com/avoskresensky/go-note-locker/models"
)

// memNoteRepo is an in-memory store.NoteRepository. Scenario tests run the
// real service logic against it instead of scripting every repository call.
type memNoteRepo struct {
	mu        sync.Mutex
	notes     map[string]models.Note
	saveCount int
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{notes: make(map[string]models.Note)}
}

func (r *memNoteRepo) Save(_ context.Context, note models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes[note.ID] = note
	r.saveCount++
	return nil
}

func (r *memNoteRepo) Get(_ context.Context, id string) (models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	note, ok := r.notes[id]
	if !ok {
		return models.Note{}, store.ErrNoteNotFound
	}
	return note, nil
}

func (r *memNoteRepo) List(_ context.Context) ([]models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Note
	for _, n := range r.notes {
		if !n.Trashed {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNoteRepo) ListTrashed(_ context.Context) ([]models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Note
	for _, n := range r.notes {
		if n.Trashed {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNoteRepo) ListUnsynced(_ context.Context) ([]models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Note
	for _, n := range r.notes {
		if !n.Synced {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNoteRepo) Search(_ context.Context, _ store.SearchFilter) ([]models.Note, error) {
	return nil, nil
}

func (r *memNoteRepo) SetTrashed(_ context.Context, id string, trashed bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	note, ok := r.notes[id]
	if !ok {
		return store.ErrNoteNotFound
	}
	note.Trashed = trashed
	if trashed {
		note.DeletedAt = &at
	} else {
		note.DeletedAt = nil
	}
	note.Synced = false
	r.notes[id] = note
	return nil
}

func (r *memNoteRepo) MarkSynced(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	note, ok := r.notes[id]
	if !ok {
		return store.ErrNoteNotFound
	}
	note.Synced = true
	r.notes[id] = note
	return nil
}

func (r *memNoteRepo) Purge(_ context.Context, id string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	note, ok := r.notes[id]
	if !ok {
		return nil, store.ErrNoteNotFound
	}
	delete(r.notes, id)
	return note.MediaRefs, nil
}

func (r *memNoteRepo) SweepTrash(_ context.Context, cutoff time.Time) ([]string, []string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var purged, refs []string
	for id, n := range r.notes {
		if n.Trashed && n.DeletedAt != nil && n.DeletedAt.Before(cutoff) {
			purged = append(purged, id)
			refs = append(refs, n.MediaRefs...)
			delete(r.notes, id)
		}
	}
	return purged, refs, nil
}

func (r *memNoteRepo) Repair(_ context.Context) (int, error) { return 0, nil }

// memConfigRepo is an in-memory store.SecurityConfigRepository.
type memConfigRepo struct {
	mu  sync.Mutex
	cfg *models.GlobalSecurityConfig
}

func (r *memConfigRepo) Get(_ context.Context) (models.GlobalSecurityConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cfg == nil {
		return models.GlobalSecurityConfig{}, store.ErrSecurityConfigNotFound
	}
	return *r.cfg, nil
}

func (r *memConfigRepo) Put(_ context.Context, cfg models.GlobalSecurityConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = &cfg
	return nil
}

// memFolderRepo is an in-memory store.FolderRepository.
type memFolderRepo struct {
	mu      sync.Mutex
	folders map[string]models.Folder
}

func newMemFolderRepo() *memFolderRepo {
	return &memFolderRepo{folders: make(map[string]models.Folder)}
}

func (r *memFolderRepo) Save(_ context.Context, folder models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.folders[folder.ID] = folder
	return nil
}

func (r *memFolderRepo) Get(_ context.Context, id string) (models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok {
		return models.Folder{}, store.ErrFolderNotFound
	}
	return f, nil
}

func (r *memFolderRepo) List(_ context.Context) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Folder
	for _, f := range r.folders {
		out = append(out, f)
	}
	return out, nil
}

func (r *memFolderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.folders[id]; !ok {
		return store.ErrFolderNotFound
	}
	delete(r.folders, id)
	return nil
}
