package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// SearchFilter describes a note listing query. All fields are optional; the
// zero filter lists every non-trashed note. Text matches plaintext metadata
// only (title, preview): locked notes carry neither, so they can never leak
// content through search. With an empty Text they still show up as
// featureless entries.
type SearchFilter struct {
	Text     string
	FolderID string
	Tag      string
	Color    string
	Pinned   *bool
	Trashed  bool
}

// buildSearchQuery assembles the dynamic listing query. Squirrel is used
// here instead of a const query because every filter is optional.
func buildSearchQuery(f SearchFilter) (string, []any, error) {
	b := sq.Select(
		"id",
		"title",
		"preview",
		"lock_mode",
		"security",
		"folder_id",
		"tags",
		"color",
		"pinned",
		"media_refs",
		"created_at",
		"updated_at",
		"trashed",
		"deleted_at",
		"synced",
	).
		From("notes").
		Where(sq.Eq{"trashed": f.Trashed}).
		OrderBy("pinned DESC", "updated_at DESC").
		PlaceholderFormat(sq.Dollar)

	if f.Text != "" {
		pattern := "%" + f.Text + "%"
		b = b.Where(sq.Or{
			sq.Like{"title": pattern},
			sq.Like{"preview": pattern},
		})
	}
	if f.FolderID != "" {
		b = b.Where(sq.Eq{"folder_id": f.FolderID})
	}
	if f.Tag != "" {
		// Tags are stored as a JSON array; match the quoted element.
		b = b.Where(sq.Like{"tags": fmt.Sprintf(`%%%q%%`, f.Tag)})
	}
	if f.Color != "" {
		b = b.Where(sq.Eq{"color": f.Color})
	}
	if f.Pinned != nil {
		b = b.Where(sq.Eq{"pinned": *f.Pinned})
	}

	return b.ToSql()
}
