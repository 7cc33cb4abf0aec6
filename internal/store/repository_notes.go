// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avoskresensky/go-note-locker/internal/logger"
	"github.com/avoskresensky/go-note-locker/models"
)

// Content blob kinds. A note has exactly one blob, whose kind mirrors the
// metadata lock state.
const (
	blobKindPlain  = "plain"
	blobKindCipher = "cipher"
)

type noteRepository struct {
	*DB
	logger *logger.Logger
}

func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *noteRepository) Save(ctx context.Context, note models.Note) error {
	log := logger.FromContext(ctx)

	if err := note.Validate(); err != nil {
		log.Err(err).
			Str("func", "noteRepository.Save").
			Str("note_id", note.ID).
			Msg("refusing to persist inconsistent note")
		return fmt.Errorf("validate note before save (id=%s): %w", note.ID, err)
	}

	kind, body, err := encodeBlob(note)
	if err != nil {
		return fmt.Errorf("encode content blob (id=%s): %w", note.ID, err)
	}

	security, err := encodeSecurity(note.Lock.Security)
	if err != nil {
		return fmt.Errorf("encode security record (id=%s): %w", note.ID, err)
	}

	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return fmt.Errorf("encode tags (id=%s): %w", note.ID, err)
	}
	mediaRefs, err := json.Marshal(note.MediaRefs)
	if err != nil {
		return fmt.Errorf("encode media refs (id=%s): %w", note.ID, err)
	}

	// Metadata and blob go in one transaction: a completed Save can never
	// leave them disagreeing.
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Save").
			Str("note_id", note.ID).
			Msg("failed to begin save transaction")
		return fmt.Errorf("begin save transaction (id=%s): %w", note.ID, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, upsertNoteMetadata,
		note.ID,
		note.Title,
		note.Preview,
		string(note.Lock.Mode),
		security,
		note.FolderID,
		string(tags),
		note.Color,
		note.Pinned,
		string(mediaRefs),
		note.CreatedAt,
		note.UpdatedAt,
		note.Trashed,
		note.DeletedAt,
		note.Synced,
	)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Save").
			Str("note_id", note.ID).
			Msg("failed to upsert note metadata")
		return fmt.Errorf("upsert note metadata (id=%s): %w", note.ID, err)
	}

	if _, err = tx.ExecContext(ctx, upsertNoteBlob, note.ID, kind, body); err != nil {
		log.Err(err).
			Str("func", "noteRepository.Save").
			Str("note_id", note.ID).
			Msg("failed to upsert note blob")
		return fmt.Errorf("upsert note blob (id=%s): %w", note.ID, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "noteRepository.Save").
			Str("note_id", note.ID).
			Msg("failed to commit save transaction")
		return fmt.Errorf("commit save transaction (id=%s): %w", note.ID, err)
	}

	return nil
}

func (r *noteRepository) Get(ctx context.Context, id string) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getNoteWithBlob, id)

	var (
		note      models.Note
		lockMode  string
		security  sql.NullString
		tags      string
		mediaRefs string
		deletedAt sql.NullTime
		blobKind  sql.NullString
		blobBody  sql.NullString
	)

	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Preview,
		&lockMode,
		&security,
		&note.FolderID,
		&tags,
		&note.Color,
		&note.Pinned,
		&mediaRefs,
		&note.CreatedAt,
		&note.UpdatedAt,
		&note.Trashed,
		&deletedAt,
		&note.Synced,
		&blobKind,
		&blobBody,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Get").
			Str("note_id", id).
			Msg("failed to scan note row")
		return models.Note{}, fmt.Errorf("scan note row (id=%s): %w", id, err)
	}

	if err = decodeMetadata(&note, lockMode, security, tags, mediaRefs, deletedAt); err != nil {
		return models.Note{}, fmt.Errorf("decode note metadata (id=%s): %w", id, err)
	}
	if err = decodeBlob(&note, blobKind, blobBody); err != nil {
		return models.Note{}, fmt.Errorf("decode note blob (id=%s): %w", id, err)
	}

	return note, nil
}

func (r *noteRepository) List(ctx context.Context) ([]models.Note, error) {
	return r.queryMetadata(ctx, "noteRepository.List", listNotes)
}

func (r *noteRepository) ListTrashed(ctx context.Context) ([]models.Note, error) {
	return r.queryMetadata(ctx, "noteRepository.ListTrashed", listTrashedNotes)
}

func (r *noteRepository) ListUnsynced(ctx context.Context) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listUnsyncedIDs)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListUnsynced").
			Msg("failed to query unsynced ids")
		return nil, fmt.Errorf("query unsynced ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan unsynced id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unsynced ids: %w", err)
	}

	notes := make([]models.Note, 0, len(ids))
	for _, id := range ids {
		note, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func (r *noteRepository) Search(ctx context.Context, f SearchFilter) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSearchQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.Search").
			Msg("failed to execute search query")
		return nil, fmt.Errorf("execute search query: %w", err)
	}
	defer rows.Close()

	return scanMetadataRows(rows)
}

func (r *noteRepository) SetTrashed(ctx context.Context, id string, trashed bool, at time.Time) error {
	log := logger.FromContext(ctx)

	var deletedAt any
	if trashed {
		deletedAt = at
	}

	result, err := r.DB.ExecContext(ctx, setNoteTrashed, trashed, deletedAt, id)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.SetTrashed").
			Str("note_id", id).
			Msg("failed to flip trash flag")
		return fmt.Errorf("flip trash flag (id=%s): %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected after trash flip (id=%s): %w", id, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func (r *noteRepository) MarkSynced(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, markNoteSynced, id); err != nil {
		log.Err(err).
			Str("func", "noteRepository.MarkSynced").
			Str("note_id", id).
			Msg("failed to mark note synced")
		return fmt.Errorf("mark note synced (id=%s): %w", id, err)
	}
	return nil
}

func (r *noteRepository) Purge(ctx context.Context, id string) ([]string, error) {
	log := logger.FromContext(ctx)

	var rawRefs string
	err := r.DB.QueryRowContext(ctx, selectNoteMediaRefs, id).Scan(&rawRefs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load media refs before purge (id=%s): %w", id, err)
	}

	var mediaRefs []string
	if rawRefs != "" {
		if err = json.Unmarshal([]byte(rawRefs), &mediaRefs); err != nil {
			// Unreadable refs must not block the purge itself.
			log.Warn().
				Str("func", "noteRepository.Purge").
				Str("note_id", id).
				Msg("could not decode media refs, purging note anyway")
			mediaRefs = nil
		}
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin purge transaction (id=%s): %w", id, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteNoteBlob, id); err != nil {
		log.Err(err).
			Str("func", "noteRepository.Purge").
			Str("note_id", id).
			Msg("failed to delete note blob")
		return nil, fmt.Errorf("delete note blob (id=%s): %w", id, err)
	}
	if _, err = tx.ExecContext(ctx, deleteNoteMetadata, id); err != nil {
		log.Err(err).
			Str("func", "noteRepository.Purge").
			Str("note_id", id).
			Msg("failed to delete note metadata")
		return nil, fmt.Errorf("delete note metadata (id=%s): %w", id, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit purge transaction (id=%s): %w", id, err)
	}

	return mediaRefs, nil
}

func (r *noteRepository) SweepTrash(ctx context.Context, cutoff time.Time) ([]string, []string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, selectExpiredTrash, cutoff)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.SweepTrash").
			Msg("failed to query expired trash")
		return nil, nil, fmt.Errorf("query expired trash: %w", err)
	}

	var expired []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scan expired trash id: %w", err)
		}
		expired = append(expired, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, nil, fmt.Errorf("iterate expired trash ids: %w", err)
	}
	rows.Close()

	purged := make([]string, 0, len(expired))
	var mediaRefs []string
	for _, id := range expired {
		refs, err := r.Purge(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNoteNotFound) {
				continue
			}
			return purged, mediaRefs, err
		}
		purged = append(purged, id)
		mediaRefs = append(mediaRefs, refs...)
	}

	if len(purged) > 0 {
		log.Info().
			Str("func", "noteRepository.SweepTrash").
			Int("count", len(purged)).
			Msg("purged expired trash")
	}

	return purged, mediaRefs, nil
}

// Repair runs the post-crash consistency pass. A blob whose metadata row is
// gone carries ciphertext or plaintext nobody can reach: dropped. A metadata
// row whose blob is gone has lost its content: reset to an empty unlocked
// note so the UI shows a browsable, empty entry instead of failing to load.
func (r *noteRepository) Repair(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	repaired := 0

	orphans, err := r.collectIDs(ctx, selectOrphanedBlobs)
	if err != nil {
		return 0, fmt.Errorf("find orphaned blobs: %w", err)
	}
	for _, id := range orphans {
		if _, err := r.DB.ExecContext(ctx, deleteNoteBlob, id); err != nil {
			return repaired, fmt.Errorf("drop orphaned blob (note_id=%s): %w", id, err)
		}
		log.Warn().
			Str("func", "noteRepository.Repair").
			Str("note_id", id).
			Msg("dropped orphaned content blob")
		repaired++
	}

	blobless, err := r.collectIDs(ctx, selectBloblessNotes)
	if err != nil {
		return repaired, fmt.Errorf("find blobless notes: %w", err)
	}
	for _, id := range blobless {
		tx, err := r.DB.BeginTx(ctx, nil)
		if err != nil {
			return repaired, fmt.Errorf("begin repair transaction (id=%s): %w", id, err)
		}
		if _, err = tx.ExecContext(ctx, resetNoteToEmpty, id); err != nil {
			tx.Rollback()
			return repaired, fmt.Errorf("reset blobless note (id=%s): %w", id, err)
		}
		if _, err = tx.ExecContext(ctx, upsertNoteBlob, id, blobKindPlain, ""); err != nil {
			tx.Rollback()
			return repaired, fmt.Errorf("insert empty blob (id=%s): %w", id, err)
		}
		if err = tx.Commit(); err != nil {
			return repaired, fmt.Errorf("commit repair transaction (id=%s): %w", id, err)
		}
		log.Warn().
			Str("func", "noteRepository.Repair").
			Str("note_id", id).
			Msg("note metadata had no content blob, reset to empty note")
		repaired++
	}

	return repaired, nil
}

func (r *noteRepository) collectIDs(ctx context.Context, query string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *noteRepository) queryMetadata(ctx context.Context, fn, query string) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Msg("failed to execute metadata query")
		return nil, fmt.Errorf("query note metadata: %w", err)
	}
	defer rows.Close()

	return scanMetadataRows(rows)
}

func scanMetadataRows(rows *sql.Rows) ([]models.Note, error) {
	var notes []models.Note

	for rows.Next() {
		var (
			note      models.Note
			lockMode  string
			security  sql.NullString
			tags      string
			mediaRefs string
			deletedAt sql.NullTime
		)

		err := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Preview,
			&lockMode,
			&security,
			&note.FolderID,
			&tags,
			&note.Color,
			&note.Pinned,
			&mediaRefs,
			&note.CreatedAt,
			&note.UpdatedAt,
			&note.Trashed,
			&deletedAt,
			&note.Synced,
		)
		if err != nil {
			return nil, fmt.Errorf("scan note metadata row: %w", err)
		}

		if err = decodeMetadata(&note, lockMode, security, tags, mediaRefs, deletedAt); err != nil {
			return nil, fmt.Errorf("decode note metadata (id=%s): %w", note.ID, err)
		}

		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate note metadata rows: %w", err)
	}

	return notes, nil
}

func decodeMetadata(note *models.Note, lockMode string, security sql.NullString, tags, mediaRefs string, deletedAt sql.NullTime) error {
	note.Lock.Mode = models.LockMode(lockMode)
	if security.Valid && security.String != "" {
		var rec models.SecurityRecord
		if err := json.Unmarshal([]byte(security.String), &rec); err != nil {
			return fmt.Errorf("decode security record: %w", err)
		}
		note.Lock.Security = &rec
	}

	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &note.Tags); err != nil {
			return fmt.Errorf("decode tags: %w", err)
		}
	}
	if mediaRefs != "" {
		if err := json.Unmarshal([]byte(mediaRefs), &note.MediaRefs); err != nil {
			return fmt.Errorf("decode media refs: %w", err)
		}
	}

	if deletedAt.Valid {
		t := deletedAt.Time
		note.DeletedAt = &t
	}

	return nil
}

func decodeBlob(note *models.Note, kind, body sql.NullString) error {
	if !kind.Valid {
		// Missing blob: Repair handles this on startup; until then the
		// note is presented as empty rather than failing the read.
		return nil
	}

	switch kind.String {
	case blobKindPlain:
		note.Content = body.String
	case blobKindCipher:
		var env models.Envelope
		if err := json.Unmarshal([]byte(body.String), &env); err != nil {
			return fmt.Errorf("decode envelope: %w", err)
		}
		note.EncryptedData = &env
	default:
		return fmt.Errorf("unknown blob kind %q", kind.String)
	}

	return nil
}

func encodeBlob(note models.Note) (kind, body string, err error) {
	if note.Locked() {
		raw, err := json.Marshal(note.EncryptedData)
		if err != nil {
			return "", "", fmt.Errorf("encode envelope: %w", err)
		}
		return blobKindCipher, string(raw), nil
	}
	return blobKindPlain, note.Content, nil
}

func encodeSecurity(rec *models.SecurityRecord) (any, error) {
	if rec == nil {
		return nil, nil
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}
