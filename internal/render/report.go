// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

// ReportFileName is the skipped-files report written to the output folder.
const ReportFileName = "Skipped_Files_Report.pdf"

// WriteSkippedReport writes a PDF listing every failed conversion with its
// reason. Returns the report path, or "" when there were no failures.
func WriteSkippedReport(results []types.ConversionResult, dir string, s types.Settings) (string, error) {
	var failed []types.ConversionResult
	for _, r := range results {
		if !r.Succeeded() {
			failed = append(failed, r)
		}
	}
	if len(failed) == 0 {
		return "", nil
	}

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
	pdf.SetTitle("Skipped Files Report", true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(font, "B", 16)
	pdf.MultiCell(0, 16*1.45, "Skipped Files Report", "", "C", false)
	pdf.Ln(lineH)

	pdf.SetFont(font, "B", size)
	pdf.MultiCell(0, lineH, "The following files were skipped during processing:", "", "L", false)
	pdf.Ln(lineH / 2)

	pdf.SetFont(font, "", size)
	for _, r := range failed {
		reason := r.Reason
		if reason == "" {
			reason = "unknown error"
		}
		pdf.MultiCell(0, lineH, tr(fmt.Sprintf("%s: %s", r.SourceFile, reason)), "", "L", false)
		pdf.Ln(lineH / 4)
	}

	path := filepath.Join(dir, ReportFileName)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("writing skipped files report: %w", err)
	}
	return path, nil
}
