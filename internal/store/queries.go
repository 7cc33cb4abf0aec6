// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package store

const (
	upsertNoteMetadata = `
		INSERT INTO notes (
			id,
			title,
			preview,
			lock_mode,
			security,
			folder_id,
			tags,
			color,
			pinned,
			media_refs,
			created_at,
			updated_at,
			trashed,
			deleted_at,
			synced
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			title      = excluded.title,
			preview    = excluded.preview,
			lock_mode  = excluded.lock_mode,
			security   = excluded.security,
			folder_id  = excluded.folder_id,
			tags       = excluded.tags,
			color      = excluded.color,
			pinned     = excluded.pinned,
			media_refs = excluded.media_refs,
			updated_at = excluded.updated_at,
			trashed    = excluded.trashed,
			deleted_at = excluded.deleted_at,
			synced     = excluded.synced;`

	upsertNoteBlob = `
		INSERT INTO note_blobs (note_id, kind, body)
		VALUES ($1, $2, $3)
		ON CONFLICT (note_id) DO UPDATE SET
			kind = excluded.kind,
			body = excluded.body;`

	noteMetadataColumns = `
			id,
			title,
			preview,
			lock_mode,
			security,
			folder_id,
			tags,
			color,
			pinned,
			media_refs,
			created_at,
			updated_at,
			trashed,
			deleted_at,
			synced`

	getNoteWithBlob = `
		SELECT
			n.id,
			n.title,
			n.preview,
			n.lock_mode,
			n.security,
			n.folder_id,
			n.tags,
			n.color,
			n.pinned,
			n.media_refs,
			n.created_at,
			n.updated_at,
			n.trashed,
			n.deleted_at,
			n.synced,
			b.kind,
			b.body
		FROM notes n
		LEFT JOIN note_blobs b ON b.note_id = n.id
		WHERE n.id = $1;`

	listNotes = `
		SELECT ` + noteMetadataColumns + `
		FROM notes
		WHERE trashed = false
		ORDER BY pinned DESC, updated_at DESC;`

	listTrashedNotes = `
		SELECT ` + noteMetadataColumns + `
		FROM notes
		WHERE trashed = true
		ORDER BY deleted_at DESC;`

	listUnsyncedIDs = `
		SELECT id
		FROM notes
		WHERE synced = false;`

	setNoteTrashed = `
		UPDATE notes SET
			trashed    = $1,
			deleted_at = $2,
			synced     = false
		WHERE id = $3;`

	markNoteSynced = `
		UPDATE notes SET synced = true WHERE id = $1;`

	selectNoteMediaRefs = `
		SELECT media_refs FROM notes WHERE id = $1;`

	deleteNoteMetadata = `
		DELETE FROM notes WHERE id = $1;`

	deleteNoteBlob = `
		DELETE FROM note_blobs WHERE note_id = $1;`

	selectExpiredTrash = `
		SELECT id
		FROM notes
		WHERE trashed = true AND deleted_at IS NOT NULL AND deleted_at < $1;`

	selectOrphanedBlobs = `
		SELECT note_id
		FROM note_blobs
		WHERE note_id NOT IN (SELECT id FROM notes);`

	selectBloblessNotes = `
		SELECT id
		FROM notes
		WHERE id NOT IN (SELECT note_id FROM note_blobs);`

	resetNoteToEmpty = `
		UPDATE notes SET
			lock_mode = '',
			security  = NULL,
			preview   = '',
			synced    = FALSE
		WHERE id = $1;`

	upsertFolder = `
		INSERT INTO folders (id, name, color, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name  = excluded.name,
			color = excluded.color;`

	getFolder = `
		SELECT id, name, color, created_at FROM folders WHERE id = $1;`

	listFolders = `
		SELECT id, name, color, created_at FROM folders ORDER BY name;`

	deleteFolder = `
		DELETE FROM folders WHERE id = $1;`

	getSecurityConfig = `
		SELECT salt, verifier, pin_length, created_at_unix
		FROM security_config
		WHERE id = 1;`

	putSecurityConfig = `
		INSERT INTO security_config (id, salt, verifier, pin_length, created_at_unix)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			salt            = excluded.salt,
			verifier        = excluded.verifier,
			pin_length      = excluded.pin_length,
			created_at_unix = excluded.created_at_unix;`
)
