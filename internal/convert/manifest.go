// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

// ManifestFileName is the YAML run manifest written to the output folder.
const ManifestFileName = "conversion_report.yaml"

// manifest is the serialized form of a batch run.
type manifest struct {
	GeneratedAt string                   `yaml:"generated_at"`
	OutputDir   string                   `yaml:"output_dir"`
	Converted   int                      `yaml:"converted"`
	Failed      int                      `yaml:"failed"`
	Cancelled   bool                     `yaml:"cancelled,omitempty"`
	Results     []types.ConversionResult `yaml:"results"`
}

// WriteManifest writes the run manifest as YAML into the output folder.
func WriteManifest(result *types.BatchResult, dir string) error {
	m := manifest{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		OutputDir:   result.OutputDir,
		Converted:   result.Converted,
		Failed:      result.Failed,
		Cancelled:   result.Cancelled,
		Results:     result.Results,
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling run manifest: %w", err)
	}

	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run manifest %s: %w", path, err)
	}
	return nil
}
