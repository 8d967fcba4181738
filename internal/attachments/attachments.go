// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package attachments writes email attachment payloads to disk alongside
// the rendered PDF.
package attachments

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/eml-to-pdf/internal/names"
	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

// SavedAttachment describes an attachment written to disk.
type SavedAttachment struct {
	Name        string // original filename
	Path        string // where it was written
	Size        int64
	ContentType string
}

// Extract writes the email's attachments under <outDir>/<baseName>_attachments/.
// Filenames are sanitized and made unique within the folder. The folder is
// only created when there is at least one attachment to write.
func Extract(email *types.ParsedEmail, outDir, baseName string) ([]SavedAttachment, error) {
	if len(email.Attachments) == 0 {
		return nil, nil
	}

	dir := filepath.Join(outDir, baseName+"_attachments")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating attachment folder %s: %w", dir, err)
	}

	saved := make([]SavedAttachment, 0, len(email.Attachments))
	for _, att := range email.Attachments {
		path := names.UniquePath(dir, names.Sanitize(att.Filename))
		if err := os.WriteFile(path, att.Data, 0o644); err != nil {
			return saved, fmt.Errorf("writing attachment %s: %w", att.Filename, err)
		}
		saved = append(saved, SavedAttachment{
			Name:        att.Filename,
			Path:        path,
			Size:        int64(len(att.Data)),
			ContentType: att.ContentType,
		})
	}
	return saved, nil
}
