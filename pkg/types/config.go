// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// PageSize selects the PDF page format.
type PageSize string

const (
	PageLetter PageSize = "letter"
	PageA4     PageSize = "a4"
)

// AvailableFonts lists the core PDF fonts available without embedding.
var AvailableFonts = []string{"Helvetica", "Times", "Courier"}

// Settings holds the conversion options for a batch run. Loaded once
// (settings file, environment, flags) and read-only for the whole run.
type Settings struct {
	// Page settings.
	PageSize   PageSize `json:"page_size" mapstructure:"page_size"`
	FontFamily string   `json:"font_family" mapstructure:"font_family"`
	FontSize   float64  `json:"font_size" mapstructure:"font_size"`

	// OrganizeByDate places output under YYYY/MM folders derived from the
	// email's Date header.
	OrganizeByDate bool `json:"organize_by_date" mapstructure:"organize_by_date"`

	// Metadata fields to include in the rendered header block.
	IncludeSubject bool `json:"include_subject" mapstructure:"include_subject"`
	IncludeFrom    bool `json:"include_from" mapstructure:"include_from"`
	IncludeTo      bool `json:"include_to" mapstructure:"include_to"`
	IncludeCC      bool `json:"include_cc" mapstructure:"include_cc"`
	IncludeBCC     bool `json:"include_bcc" mapstructure:"include_bcc"`
	IncludeDate    bool `json:"include_date" mapstructure:"include_date"`

	// ExtractAttachments writes attachment payloads next to each PDF.
	ExtractAttachments bool `json:"extract_attachments" mapstructure:"extract_attachments"`

	// UseBrowser enables HTML rendering through a headless Chrome or
	// Chromium binary when one is available. The builtin text layout is
	// always the fallback.
	UseBrowser bool `json:"use_browser" mapstructure:"use_browser"`

	// AddressBook writes address_book.csv with the contacts seen in a run.
	AddressBook bool `json:"address_book" mapstructure:"address_book"`

	// Catalog records per-file outcomes into a SQLite catalog in the
	// output folder.
	Catalog bool `json:"catalog" mapstructure:"catalog"`
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		PageSize:       PageLetter,
		FontFamily:     "Helvetica",
		FontSize:       11,
		OrganizeByDate: true,
		IncludeSubject: true,
		IncludeFrom:    true,
		IncludeTo:      true,
		IncludeCC:      true,
		IncludeBCC:     true,
		IncludeDate:    true,
		UseBrowser:     true,
	}
}

// Validate checks that page size and font name are usable.
func (s Settings) Validate() error {
	switch s.PageSize {
	case PageLetter, PageA4:
	default:
		return fmt.Errorf("unsupported page size %q: use letter or a4", s.PageSize)
	}
	for _, f := range AvailableFonts {
		if s.FontFamily == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported font %q: use Helvetica, Times, or Courier", s.FontFamily)
}
