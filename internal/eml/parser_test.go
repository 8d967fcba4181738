// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eml

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// crlf joins message lines with CRLF, as wire-format email requires.
func crlf(lines ...string) string {
	return strings.Join(lines, "\r\n")
}

// onePixelPNG is a valid 1x1 PNG, base64-encoded.
const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func TestParse_PlainEmail(t *testing.T) {
	msg := crlf(
		"From: Alice <alice@example.com>",
		"To: Bob <bob@example.com>, carol@example.com",
		"Cc: Dave <dave@example.com>",
		"Subject: Project update",
		"Date: Mon, 15 Jan 2024 10:30:00 +0000",
		"Message-Id: <abc123@example.com>",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"Hi Bob,",
		"Here is the update.",
	)

	parsed, err := Parse(strings.NewReader(msg))
	require.NoError(t, err)

	assert.Equal(t, "abc123@example.com", parsed.MessageID)
	assert.Equal(t, "Project update", parsed.Subject)
	assert.Equal(t, "Alice <alice@example.com>", parsed.Sender)
	assert.Equal(t, []string{"Bob <bob@example.com>", "carol@example.com"}, parsed.Recipients)
	assert.Equal(t, []string{"Dave <dave@example.com>"}, parsed.CC)
	assert.Empty(t, parsed.BCC)
	assert.Contains(t, parsed.BodyText, "Here is the update.")
	assert.Empty(t, parsed.BodyHTML)

	want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.True(t, parsed.Date.Equal(want), "date = %v", parsed.Date)
}

func TestParse_EncodedSubject(t *testing.T) {
	msg := crlf(
		"From: sender@example.com",
		"Subject: =?UTF-8?B?w4luw6lyZ2llIQ==?=",
		"Content-Type: text/plain",
		"",
		"body",
	)

	parsed, err := Parse(strings.NewReader(msg))
	require.NoError(t, err)
	assert.Equal(t, "Énérgie!", parsed.Subject)
}

func TestParse_MissingDate(t *testing.T) {
	msg := crlf(
		"From: sender@example.com",
		"Subject: undated",
		"Content-Type: text/plain",
		"",
		"body",
	)

	parsed, err := Parse(strings.NewReader(msg))
	require.NoError(t, err)
	assert.True(t, parsed.Date.IsZero())
	assert.Empty(t, parsed.DateHeader)
}

func TestParse_InlineImage(t *testing.T) {
	msg := crlf(
		"From: sender@example.com",
		"Subject: picture",
		"MIME-Version: 1.0",
		`Content-Type: multipart/related; boundary="BOUND"`,
		"",
		"--BOUND",
		"Content-Type: text/html; charset=utf-8",
		"",
		`<html><body><p>Look at this:</p><img src="cid:img1@mail"></body></html>`,
		"--BOUND",
		"Content-Type: image/png",
		"Content-ID: <img1@mail>",
		"Content-Transfer-Encoding: base64",
		"Content-Disposition: inline",
		"",
		onePixelPNG,
		"--BOUND--",
	)

	parsed, err := Parse(strings.NewReader(msg))
	require.NoError(t, err)

	assert.Contains(t, parsed.BodyHTML, "cid:img1@mail")
	require.Len(t, parsed.Inlines, 1)
	assert.Equal(t, "img1@mail", parsed.Inlines[0].CID)
	assert.Equal(t, "image/png", parsed.Inlines[0].ContentType)
	assert.True(t, bytes.HasPrefix(parsed.Inlines[0].Data, []byte("\x89PNG")))
	assert.Empty(t, parsed.Attachments)
}

func TestParse_Attachment(t *testing.T) {
	msg := crlf(
		"From: sender@example.com",
		"Subject: with attachment",
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="BOUND"`,
		"",
		"--BOUND",
		"Content-Type: text/plain",
		"",
		"See attached.",
		"--BOUND",
		`Content-Type: application/pdf; name="doc.pdf"`,
		`Content-Disposition: attachment; filename="doc.pdf"`,
		"Content-Transfer-Encoding: base64",
		"",
		"JVBERi0xLjQK",
		"--BOUND--",
	)

	parsed, err := Parse(strings.NewReader(msg))
	require.NoError(t, err)

	require.Len(t, parsed.Attachments, 1)
	att := parsed.Attachments[0]
	assert.Equal(t, "doc.pdf", att.Filename)
	assert.True(t, bytes.HasPrefix(att.Data, []byte("%PDF")))
	assert.Empty(t, parsed.Inlines)
}

func TestParse_NamelessAttachmentGetsExtension(t *testing.T) {
	msg := crlf(
		"From: sender@example.com",
		"Subject: nameless",
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="BOUND"`,
		"",
		"--BOUND",
		"Content-Type: text/plain",
		"",
		"body",
		"--BOUND",
		"Content-Type: image/png",
		"Content-Disposition: attachment",
		"Content-Transfer-Encoding: base64",
		"",
		onePixelPNG,
		"--BOUND--",
	)

	parsed, err := Parse(strings.NewReader(msg))
	require.NoError(t, err)

	require.Len(t, parsed.Attachments, 1)
	assert.Equal(t, "attachment_1.png", parsed.Attachments[0].Filename)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.eml")
	msg := crlf(
		"From: sender@example.com",
		"Subject: from disk",
		"Content-Type: text/plain",
		"",
		"body",
	)
	require.NoError(t, os.WriteFile(path, []byte(msg), 0o644))

	parsed, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from disk", parsed.Subject)

	_, err = ParseFile(filepath.Join(dir, "missing.eml"))
	assert.Error(t, err)
}

func TestParse_NotAnEmail(t *testing.T) {
	// enmime tolerates headerless input; a completely empty reader should
	// still produce an empty parse rather than a panic.
	parsed, err := Parse(strings.NewReader(""))
	if err != nil {
		return
	}
	assert.Empty(t, parsed.Subject)
	assert.Empty(t, parsed.BodyText)
}
