// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render produces PDF documents from prepared email content.
// Two backends implement the Renderer interface: a headless-browser
// renderer for faithful HTML output and a builtin layout that needs no
// external binary. The batch driver tries them in order.
package render

import (
	"fmt"

	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

// AttachmentInfo describes an attachment for the listing at the end of a
// rendered document.
type AttachmentInfo struct {
	Name        string
	Size        int64
	ContentType string
}

// Document is everything a renderer needs to produce one PDF.
type Document struct {
	Meta types.Metadata

	// BodyHTML is the sanitized HTML body with cid: references resolved.
	// Empty when the source email only had plain text.
	BodyHTML string

	// BodyText is the flowable text used by the builtin layout. Always set.
	BodyText string

	Inlines     []types.InlineImage
	Attachments []AttachmentInfo
	Settings    types.Settings
}

// Renderer writes a composed document to a PDF file.
type Renderer interface {
	// Name identifies the backend in results and status output.
	Name() string

	// Render writes the document to outputPath.
	Render(doc *Document, outputPath string) error
}

// FormatSize renders a byte count in human-readable form.
func FormatSize(size int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case size < kb:
		return fmt.Sprintf("%d B", size)
	case size < mb:
		return fmt.Sprintf("%.1f KB", float64(size)/kb)
	case size < gb:
		return fmt.Sprintf("%.1f MB", float64(size)/mb)
	default:
		return fmt.Sprintf("%.1f GB", float64(size)/gb)
	}
}

// metadataField is one label/value pair in the rendered header block.
type metadataField struct {
	label string
	value string
}

// metadataFields returns the header rows to render, honoring the per-field
// include flags. CC and BCC rows appear only when the email had them.
func metadataFields(meta types.Metadata, s types.Settings) []metadataField {
	var fields []metadataField
	if s.IncludeSubject {
		fields = append(fields, metadataField{"Subject", meta.Subject})
	}
	if s.IncludeFrom {
		fields = append(fields, metadataField{"From", meta.Sender})
	}
	if s.IncludeTo {
		fields = append(fields, metadataField{"To", meta.Recipients})
	}
	if s.IncludeCC && meta.CC != "" && meta.CC != types.NoCC {
		fields = append(fields, metadataField{"CC", meta.CC})
	}
	if s.IncludeBCC && meta.BCC != "" && meta.BCC != types.NoBCC {
		fields = append(fields, metadataField{"BCC", meta.BCC})
	}
	if s.IncludeDate {
		fields = append(fields, metadataField{"Date", meta.Date})
	}
	return fields
}
