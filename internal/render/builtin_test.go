// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

// onePixelPNG is a valid 1x1 PNG, base64-encoded.
const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func pngData(t *testing.T) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(onePixelPNG)
	require.NoError(t, err)
	return data
}

// assertPDF checks that path holds a non-trivial PDF file.
func assertPDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 100, "PDF too small: %d bytes", len(data))
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestBuiltinRender(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "email.pdf")

	doc := testDocument()
	doc.BodyText = "Hello.\n\nThis is a longer body that should wrap across the page when it runs past the content width of the document."

	b := NewBuiltin()
	assert.Equal(t, "builtin", b.Name())
	require.NoError(t, b.Render(doc, out))
	assertPDF(t, out)
}

func TestBuiltinRender_A4(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "a4.pdf")

	doc := testDocument()
	doc.Settings.PageSize = types.PageA4

	require.NoError(t, NewBuiltin().Render(doc, out))
	assertPDF(t, out)
}

func TestBuiltinRender_InlineImage(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "image.pdf")

	doc := testDocument()
	doc.Inlines = []types.InlineImage{
		{CID: "img1", ContentType: "image/png", Data: pngData(t)},
	}

	require.NoError(t, NewBuiltin().Render(doc, out))
	assertPDF(t, out)
}

func TestBuiltinRender_CorruptImage(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "corrupt.pdf")

	doc := testDocument()
	doc.Inlines = []types.InlineImage{
		{CID: "bad", ContentType: "image/png", Data: []byte("not an image")},
		{CID: "odd", ContentType: "image/tiff", Data: pngData(t)},
	}

	// Undecodable or unsupported images become placeholder lines, not errors.
	require.NoError(t, NewBuiltin().Render(doc, out))
	assertPDF(t, out)
}

func TestBuiltinRender_Attachments(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "attachments.pdf")

	doc := testDocument()
	doc.Attachments = []AttachmentInfo{
		{Name: "notes.txt", Size: 120, ContentType: "text/plain"},
		{Name: "photo.jpg", Size: 1 << 20, ContentType: "image/jpeg"},
	}

	require.NoError(t, NewBuiltin().Render(doc, out))
	assertPDF(t, out)
}

func TestBuiltinRender_NonASCII(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "unicode.pdf")

	doc := testDocument()
	doc.Meta.Subject = "Réunion café"
	doc.BodyText = "Déjà vu – naïve façade"

	require.NoError(t, NewBuiltin().Render(doc, out))
	assertPDF(t, out)
}

func TestPageFormat(t *testing.T) {
	assert.Equal(t, "Letter", pageFormat(types.PageLetter))
	assert.Equal(t, "A4", pageFormat(types.PageA4))
	assert.Equal(t, "Letter", pageFormat(""))
}

func TestImageType(t *testing.T) {
	tests := []struct {
		ct   string
		want string
	}{
		{"image/png", "PNG"},
		{"image/jpeg", "JPG"},
		{"image/gif", "GIF"},
		{"image/webp", ""},
	}
	for _, tt := range tests {
		if got := imageType(tt.ct); got != tt.want {
			t.Errorf("imageType(%q) = %q, want %q", tt.ct, got, tt.want)
		}
	}
}
