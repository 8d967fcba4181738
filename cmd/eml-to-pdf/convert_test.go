// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

func TestSettingsFromFlags_EnvOverrides(t *testing.T) {
	t.Setenv("EML_TO_PDF_PAGE_SIZE", "a4")
	t.Setenv("EML_TO_PDF_USE_BROWSER", "false")
	initConfig()

	s, err := settingsFromFlags(convertCmd)
	require.NoError(t, err)
	assert.Equal(t, types.PageA4, s.PageSize)
	assert.False(t, s.UseBrowser)

	// Untouched keys keep their defaults.
	assert.Equal(t, "Helvetica", s.FontFamily)
	assert.True(t, s.OrganizeByDate)
}

func TestSettingsFromFlags_FlagBeatsEnv(t *testing.T) {
	t.Setenv("EML_TO_PDF_PAGE_SIZE", "a4")
	initConfig()

	f := convertCmd.Flags().Lookup("page-size")
	require.NoError(t, f.Value.Set("letter"))
	f.Changed = true
	t.Cleanup(func() {
		f.Value.Set("")
		f.Changed = false
	})

	s, err := settingsFromFlags(convertCmd)
	require.NoError(t, err)
	assert.Equal(t, types.PageLetter, s.PageSize)
}

func TestSettingsFromFlags_InvalidPageSize(t *testing.T) {
	t.Setenv("EML_TO_PDF_PAGE_SIZE", "legal")
	initConfig()

	_, err := settingsFromFlags(convertCmd)
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly", truncate("exactly", 7))

	got := truncate("日本語のとても長い件名です", 8)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "日本語のと...", got)
}
