// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eml parses .eml files into the structured form the conversion
// pipeline works on. MIME decoding is delegated to enmime, which handles
// multipart trees, transfer encodings, charsets, and RFC 2047 headers.
package eml

import (
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jhillyerd/enmime"

	"github.com/pdiddy/eml-to-pdf/internal/names"
	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

// ParseFile parses the .eml file at path.
func ParseFile(path string) (*types.ParsedEmail, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a MIME message and returns its structured form. Inline image
// parts with a content-ID are collected separately from attachments so the
// renderer can resolve cid: references in the HTML body.
func Parse(r io.Reader) (*types.ParsedEmail, error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return nil, fmt.Errorf("reading MIME envelope: %w", err)
	}

	parsed := &types.ParsedEmail{
		MessageID:  strings.Trim(env.GetHeader("Message-Id"), "<> "),
		Subject:    env.GetHeader("Subject"),
		Sender:     env.GetHeader("From"),
		DateHeader: env.GetHeader("Date"),
		BodyText:   env.Text,
		BodyHTML:   env.HTML,
	}

	parsed.Recipients = addressList(env, "To")
	parsed.CC = addressList(env, "Cc")
	parsed.BCC = addressList(env, "Bcc")

	if t, err := names.ParseDate(parsed.DateHeader); err == nil {
		parsed.Date = t
	}

	collectParts(env, parsed)
	return parsed, nil
}

// addressList returns the formatted addresses of a header, or nil when the
// header is absent or unparseable.
func addressList(env *enmime.Envelope, key string) []string {
	addrs, err := env.AddressList(key)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, formatAddress(a))
	}
	return out
}

func formatAddress(a *mail.Address) string {
	if a.Name != "" {
		return fmt.Sprintf("%s <%s>", a.Name, a.Address)
	}
	return a.Address
}

// collectParts sorts the envelope's non-body parts into inline CID images
// and attachments. enmime's classification is the starting point: Inlines
// and OtherParts carrying an image with a content-ID become CID images;
// everything else with a payload is an attachment.
func collectParts(env *enmime.Envelope, parsed *types.ParsedEmail) {
	var unnamed int

	addAttachment := func(p *enmime.Part) {
		if len(p.Content) == 0 {
			return
		}
		name := p.FileName
		if name == "" {
			unnamed++
			name = fmt.Sprintf("attachment_%d%s", unnamed, guessExtension(p))
		}
		parsed.Attachments = append(parsed.Attachments, types.Attachment{
			Filename:    name,
			ContentType: p.ContentType,
			Data:        p.Content,
		})
	}

	classifyInline := func(p *enmime.Part) {
		cid := strings.Trim(p.ContentID, "<> ")
		if cid != "" && strings.HasPrefix(p.ContentType, "image/") && len(p.Content) > 0 {
			parsed.Inlines = append(parsed.Inlines, types.InlineImage{
				CID:         cid,
				ContentType: p.ContentType,
				Data:        p.Content,
			})
			return
		}
		if p.FileName != "" {
			addAttachment(p)
		}
	}

	for _, p := range env.Inlines {
		classifyInline(p)
	}
	for _, p := range env.OtherParts {
		classifyInline(p)
	}
	for _, p := range env.Attachments {
		addAttachment(p)
	}
}

// guessExtension picks a file extension for a nameless attachment, sniffing
// the content when the declared type is unhelpful.
func guessExtension(p *enmime.Part) string {
	if ext := mimetype.Lookup(p.ContentType); ext != nil && ext.Extension() != "" {
		return ext.Extension()
	}
	if detected := mimetype.Detect(p.Content); detected.Extension() != "" {
		return detected.Extension()
	}
	return ".bin"
}
