// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

const (
	pageMargin = 54.0 // points, 0.75in
	labelWidth = 58.0
	pxToPt     = 72.0 / 96.0
)

// Builtin lays out email content with fpdf: a metadata block, the
// word-wrapped body text, embedded inline images, and an attachment
// listing. It has no external dependencies and is the fallback for every
// conversion.
type Builtin struct{}

// NewBuiltin returns the builtin PDF layout backend.
func NewBuiltin() *Builtin {
	return &Builtin{}
}

func (b *Builtin) Name() string { return "builtin" }

// Render writes the document to outputPath.
func (b *Builtin) Render(doc *Document, outputPath string) error {
	s := doc.Settings
	font := s.FontFamily
	if font == "" {
		font = "Helvetica"
	}
	size := s.FontSize
	if size <= 0 {
		size = 11
	}
	lineH := size * 1.45

	pdf := fpdf.New("P", "pt", pageFormat(s.PageSize), "")
	pdf.SetTitle(doc.Meta.Subject, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	// Core fonts are cp1252; translate UTF-8 where possible.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, f := range metadataFields(doc.Meta, s) {
		pdf.SetFont(font, "B", size)
		pdf.CellFormat(labelWidth, lineH, tr(f.label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont(font, "", size)
		pdf.MultiCell(0, lineH, tr(f.value), "", "L", false)
	}

	drawDivider(pdf, lineH)

	pdf.SetFont(font, "", size)
	pdf.MultiCell(0, lineH, tr(doc.BodyText), "", "L", false)

	embedInlines(pdf, doc.Inlines, font, size, lineH, tr)

	if len(doc.Attachments) > 0 {
		drawDivider(pdf, lineH)
		pdf.SetFont(font, "B", size)
		pdf.MultiCell(0, lineH, "Attachments", "", "L", false)
		pdf.SetFont(font, "", size)
		for _, att := range doc.Attachments {
			line := fmt.Sprintf("%s (%s) [%s]", att.Name, FormatSize(att.Size), att.ContentType)
			pdf.MultiCell(0, lineH, tr(line), "", "L", false)
		}
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("writing PDF %s: %w", outputPath, err)
	}
	return nil
}

func pageFormat(p types.PageSize) string {
	if p == types.PageA4 {
		return "A4"
	}
	return "Letter"
}

func drawDivider(pdf *fpdf.Fpdf, lineH float64) {
	pdf.Ln(lineH / 2)
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(left, pdf.GetY(), pageW-right, pdf.GetY())
	pdf.Ln(lineH / 2)
}

// embedInlines places the email's CID images after the body, scaled to the
// content width. Formats fpdf cannot embed are listed by name instead.
func embedInlines(pdf *fpdf.Fpdf, inlines []types.InlineImage, font string, size, lineH float64, tr func(string) string) {
	if len(inlines) == 0 {
		return
	}

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentW := pageW - left - right

	for _, img := range inlines {
		imgType := imageType(img.ContentType)
		cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data))
		if imgType == "" || err != nil {
			pdf.SetFont(font, "I", size)
			pdf.MultiCell(0, lineH, tr(fmt.Sprintf("[inline image %s could not be embedded]", img.CID)), "", "L", false)
			pdf.SetFont(font, "", size)
			continue
		}

		w := float64(cfg.Width) * pxToPt
		if w > contentW {
			w = contentW
		}

		pdf.Ln(lineH / 2)
		opts := fpdf.ImageOptions{ImageType: imgType, ReadDpi: false}
		pdf.RegisterImageOptionsReader(img.CID, opts, bytes.NewReader(img.Data))
		pdf.ImageOptions(img.CID, left, 0, w, 0, true, opts, 0, "")
	}
}

// imageType maps a MIME content type to fpdf's image type tag.
func imageType(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return "PNG"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "JPG"
	case strings.Contains(contentType, "gif"):
		return "GIF"
	default:
		return ""
	}
}
