// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildSearchQuery_ZeroFilterListsNonTrashed(t *testing.T) {
	query, args, err := buildSearchQuery(SearchFilter{})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "select")
	require.Contains(t, q, "from notes")
	require.Contains(t, q, "trashed")
	require.Contains(t, q, "order by pinned desc, updated_at desc")

	// Only the trashed flag is bound.
	require.Len(t, args, 1)
	assert.Equal(t, false, args[0])
}

func Test_buildSearchQuery_TextMatchesTitleAndPreviewOnly(t *testing.T) {
	query, args, err := buildSearchQuery(SearchFilter{Text: "milk"})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "title like")
	require.Contains(t, q, "preview like")

	// Content is split into blobs and must never be searched: a locked
	// note has no plaintext to leak through this query.
	assert.NotContains(t, q, "content")
	assert.NotContains(t, q, "note_blobs")

	assert.Contains(t, args, "%milk%")
}

func Test_buildSearchQuery_AllFiltersBindArgs(t *testing.T) {
	pinned := true
	query, args, err := buildSearchQuery(SearchFilter{
		Text:     "milk",
		FolderID: "f1",
		Tag:      "errands",
		Color:    "#ff8800",
		Pinned:   &pinned,
	})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "folder_id")
	require.Contains(t, q, "tags like")
	require.Contains(t, q, "color")
	require.Contains(t, q, "pinned")

	// trashed + text(title) + text(preview) + folder + tag + color + pinned
	require.Len(t, args, 7)
	assert.Contains(t, args, "f1")
	assert.Contains(t, args, `%"errands"%`)
	assert.Contains(t, args, "#ff8800")
	assert.Contains(t, args, true)
}

func Test_buildSearchQuery_PlaceholderFormat(t *testing.T) {
	query, _, err := buildSearchQuery(SearchFilter{FolderID: "f1"})
	require.NoError(t, err)

	require.Contains(t, query, "$1")
	require.Contains(t, query, "$2")
	assert.NotContains(t, query, "?")
}

func Test_buildSearchQuery_TrashedFilter(t *testing.T) {
	_, args, err := buildSearchQuery(SearchFilter{Trashed: true})
	require.NoError(t, err)

	require.Len(t, args, 1)
	assert.Equal(t, true, args[0])
}
