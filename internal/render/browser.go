// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// browserBins are the binaries probed for headless rendering, in order.
var browserBins = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

var defaultExec executor = osExecutor{}

// Browser renders the composed HTML document to PDF with a headless Chrome
// or Chromium binary. It produces faithful HTML output but is optional;
// conversions fall back to the builtin layout when rendering fails.
type Browser struct {
	bin  string
	exec executor
}

// DetectBrowser probes the PATH for a usable browser binary. Returns an
// error when none is found.
func DetectBrowser() (*Browser, error) {
	return detectBrowser(defaultExec)
}

func detectBrowser(e executor) (*Browser, error) {
	for _, bin := range browserBins {
		if _, err := e.LookPath(bin); err == nil {
			return &Browser{bin: bin, exec: e}, nil
		}
	}
	return nil, fmt.Errorf("no browser binary found: tried %s", strings.Join(browserBins, ", "))
}

func (b *Browser) Name() string { return b.bin }

// Render composes the HTML document, writes it to a temporary file, and
// prints it to PDF with the headless browser.
func (b *Browser) Render(doc *Document, outputPath string) error {
	tmp, err := os.CreateTemp("", "eml-to-pdf-*.html")
	if err != nil {
		return fmt.Errorf("creating temp HTML file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, writeErr := tmp.WriteString(BuildHTML(doc))
	closeErr := tmp.Close()
	if writeErr != nil {
		return fmt.Errorf("writing temp HTML file: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing temp HTML file: %w", closeErr)
	}

	args := []string{
		"--headless",
		"--disable-gpu",
		"--no-pdf-header-footer",
		"--print-to-pdf=" + outputPath,
		tmpPath,
	}
	if err := b.exec.Run(b.bin, args...); err != nil {
		return fmt.Errorf("rendering with %s: %w", b.bin, err)
	}

	// Chrome exits zero in some failure modes; verify the output exists.
	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		return fmt.Errorf("%s produced no output for %s", b.bin, outputPath)
	}
	return nil
}
