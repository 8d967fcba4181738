// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the eml-to-pdf pipeline:
// parsed email structure, per-file conversion outcomes, batch summaries,
// and conversion settings.
package types

import "time"

// ParsedEmail is the structured form of one .eml file: headers, body
// representations, inline images, and attachments. An instance lives for a
// single conversion and is discarded after rendering.
type ParsedEmail struct {
	MessageID   string
	Subject     string
	Sender      string // decoded From header, e.g. `Jane Doe <jane@example.com>`
	Recipients  []string
	CC          []string
	BCC         []string
	Date        time.Time // zero when the Date header is missing or unparseable
	DateHeader  string    // raw decoded Date header, rendered verbatim
	BodyText    string
	BodyHTML    string
	Inlines     []InlineImage
	Attachments []Attachment
}

// InlineImage is an image part referenced from the HTML body by content-ID.
type InlineImage struct {
	CID         string // content-ID without angle brackets
	ContentType string
	Data        []byte
}

// Attachment is a non-inline payload carried by the email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Metadata holds the header fields rendered at the top of each PDF. Missing
// headers carry the placeholder values so the block is always complete.
type Metadata struct {
	Subject    string
	Sender     string
	Recipients string
	CC         string
	BCC        string
	Date       string
}

// Placeholder values for missing header fields.
const (
	NoSubject     = "No Subject"
	UnknownSender = "Unknown Sender"
	NoRecipients  = "No Recipients"
	NoCC          = "No CC"
	NoBCC         = "No BCC"
	UnknownDate   = "Unknown Date"
)

// ConversionStatus describes the outcome of converting a single file.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "done"
	ConversionFailed ConversionStatus = "failed"
)

// ConversionResult records the outcome of converting one .eml file.
type ConversionResult struct {
	SourceFile  string           `yaml:"source_file"`
	Status      ConversionStatus `yaml:"status"`
	OutputPath  string           `yaml:"output_path,omitempty"`
	Reason      string           `yaml:"reason,omitempty"`
	Renderer    string           `yaml:"renderer,omitempty"`
	Subject     string           `yaml:"subject,omitempty"`
	Sender      string           `yaml:"sender,omitempty"`
	Date        time.Time        `yaml:"date,omitempty"`
	Attachments []string         `yaml:"attachments,omitempty"`
}

// Succeeded reports whether the file produced a PDF.
func (r ConversionResult) Succeeded() bool {
	return r.Status == ConversionDone
}

// BatchResult aggregates the outcome of a conversion run.
type BatchResult struct {
	Converted       int
	Failed          int
	Cancelled       bool
	OutputDir       string
	Results         []ConversionResult
	ReportPath      string // skipped-files report PDF, empty when no failures
	AddressBookPath string // address book CSV, empty unless enabled
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}
