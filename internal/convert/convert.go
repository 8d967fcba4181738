// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives the batch conversion of EML files into PDFs,
// coordinating parsing, rendering, attachment extraction, and reporting.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/eml-to-pdf/internal/attachments"
	"github.com/pdiddy/eml-to-pdf/internal/contacts"
	"github.com/pdiddy/eml-to-pdf/internal/content"
	"github.com/pdiddy/eml-to-pdf/internal/eml"
	"github.com/pdiddy/eml-to-pdf/internal/names"
	"github.com/pdiddy/eml-to-pdf/internal/render"
	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

// DefaultOutputDirName is the output folder created under the input
// directory when no explicit output is given.
const DefaultOutputDirName = "PDF"

// AddressBookFileName is the CSV written when address book export is on.
const AddressBookFileName = "address_book.csv"

// Options configures a batch conversion run.
type Options struct {
	// InputDir is scanned (non-recursively) for .eml files.
	InputDir string
	// OutputDir receives the PDFs. Defaults to <InputDir>/PDF when empty.
	OutputDir string
	// Settings controls layout, organization, and optional outputs.
	Settings types.Settings
	// Renderers are tried in order for each email until one succeeds.
	Renderers []render.Renderer
	// Progress, when set, is called after each file completes.
	Progress func(done, total int, filename string)
}

// ListEmailFiles returns the .eml files directly under dir, sorted by
// modification time (oldest first). The extension match is case-insensitive.
func ListEmailFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input folder %s: %w", dir, err)
	}

	type fileInfo struct {
		path    string
		modTime int64
	}
	var files []fileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".eml") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{
			path:    filepath.Join(dir, e.Name()),
			modTime: info.ModTime().UnixNano(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime != files[j].modTime {
			return files[i].modTime < files[j].modTime
		}
		return files[i].path < files[j].path
	})

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}

// Run converts every EML file in the input folder, printing per-file status
// to w and returning a summary. Cancellation via ctx stops the run between
// files; already written PDFs are kept.
func Run(ctx context.Context, opts Options, w io.Writer) (*types.BatchResult, error) {
	if len(opts.Renderers) == 0 {
		return nil, fmt.Errorf("no renderers configured")
	}

	files, err := ListEmailFiles(opts.InputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no EML files found in %s", opts.InputDir)
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = filepath.Join(opts.InputDir, DefaultOutputDirName)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output folder %s: %w", outDir, err)
	}

	result := &types.BatchResult{OutputDir: outDir}
	book := contacts.NewBook()
	used := make(map[string]struct{})

	for i, path := range files {
		if ctx.Err() != nil {
			result.Cancelled = true
			fmt.Fprintf(w, "\ncancelled after %d of %d files\n", i, len(files))
			break
		}

		res, email := convertOne(path, outDir, used, opts)
		result.Results = append(result.Results, res)
		if res.Succeeded() {
			result.Converted++
			fmt.Fprintf(w, "converted: %s -> %s\n", filepath.Base(path), res.OutputPath)
		} else {
			result.Failed++
			fmt.Fprintf(w, "failed:  %s (%s)\n", filepath.Base(path), res.Reason)
		}
		if email != nil && opts.Settings.AddressBook {
			book.Add(email)
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(files), filepath.Base(path))
		}
	}

	if reportPath, err := render.WriteSkippedReport(result.Results, outDir, opts.Settings); err != nil {
		fmt.Fprintf(w, "warning: %v\n", err)
	} else {
		result.ReportPath = reportPath
	}

	if err := WriteManifest(result, outDir); err != nil {
		fmt.Fprintf(w, "warning: %v\n", err)
	}

	// A cancelled run writes no address book; a partial export would be
	// mistaken for a complete one.
	if opts.Settings.AddressBook && !result.Cancelled && book.Len() > 0 {
		bookPath := filepath.Join(outDir, AddressBookFileName)
		if err := contacts.WriteCSV(book.Contacts(), bookPath); err != nil {
			fmt.Fprintf(w, "warning: writing address book: %v\n", err)
		} else {
			result.AddressBookPath = bookPath
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result, nil
}

// convertOne converts a single EML file. It always returns a result; the
// parsed email is returned when parsing succeeded, even if rendering failed.
func convertOne(path, outDir string, used map[string]struct{}, opts Options) (types.ConversionResult, *types.ParsedEmail) {
	res := types.ConversionResult{
		SourceFile: filepath.Base(path),
		Status:     types.ConversionFailed,
	}

	email, err := eml.ParseFile(path)
	if err != nil {
		res.Reason = err.Error()
		return res, nil
	}

	meta := metadataFor(email)
	res.Subject = meta.Subject
	res.Sender = meta.Sender
	res.Date = email.Date

	body, isHTML, err := content.SelectBody(email)
	if err != nil {
		res.Reason = err.Error()
		return res, email
	}

	destDir := outDir
	if opts.Settings.OrganizeByDate {
		year, month := names.YearMonth(email.Date)
		destDir = filepath.Join(outDir, year, month)
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			res.Reason = fmt.Sprintf("creating folder %s: %v", destDir, err)
			return res, email
		}
	}

	base := names.Base(email.Date, email.Subject, used)

	doc := &render.Document{
		Meta:     meta,
		Inlines:  email.Inlines,
		Settings: opts.Settings,
	}
	for _, att := range email.Attachments {
		doc.Attachments = append(doc.Attachments, render.AttachmentInfo{
			Name:        att.Filename,
			Size:        int64(len(att.Data)),
			ContentType: att.ContentType,
		})
	}

	if isHTML {
		resolved, err := content.ResolveCIDs(body, email.Inlines)
		if err != nil {
			resolved = body
		}
		doc.BodyHTML = content.Sanitize(resolved)
		if text, err := content.Flatten(doc.BodyHTML); err == nil {
			doc.BodyText = text
		}
	} else {
		doc.BodyText = body
	}

	if opts.Settings.ExtractAttachments {
		saved, err := attachments.Extract(email, destDir, base)
		if err != nil {
			res.Reason = fmt.Sprintf("extracting attachments: %v", err)
			return res, email
		}
		for _, s := range saved {
			res.Attachments = append(res.Attachments, s.Path)
		}
	}

	outputPath := filepath.Join(destDir, base+".pdf")
	var renderErr error
	for _, r := range opts.Renderers {
		if renderErr = r.Render(doc, outputPath); renderErr == nil {
			res.Renderer = r.Name()
			break
		}
	}
	if renderErr != nil {
		res.Reason = renderErr.Error()
		return res, email
	}

	res.Status = types.ConversionDone
	res.OutputPath = outputPath
	return res, email
}

// metadataFor fills display metadata from a parsed email, substituting
// placeholders for missing fields.
func metadataFor(email *types.ParsedEmail) types.Metadata {
	m := types.Metadata{
		Subject:    email.Subject,
		Sender:     email.Sender,
		Recipients: strings.Join(email.Recipients, ", "),
		CC:         strings.Join(email.CC, ", "),
		BCC:        strings.Join(email.BCC, ", "),
	}
	if m.Subject == "" {
		m.Subject = types.NoSubject
	}
	if m.Sender == "" {
		m.Sender = types.UnknownSender
	}
	if m.Recipients == "" {
		m.Recipients = types.NoRecipients
	}
	if m.CC == "" {
		m.CC = types.NoCC
	}
	if m.BCC == "" {
		m.BCC = types.NoBCC
	}
	// The header is rendered verbatim; the parsed Date only drives
	// organization and naming.
	m.Date = types.UnknownDate
	if email.DateHeader != "" {
		m.Date = email.DateHeader
	}
	return m
}
