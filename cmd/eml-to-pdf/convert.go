// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/eml-to-pdf/internal/catalog"
	"github.com/pdiddy/eml-to-pdf/internal/convert"
	"github.com/pdiddy/eml-to-pdf/internal/render"
	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a folder of EML files to PDF",
	Long: `Convert processes every .eml file in the input folder (oldest first) and
writes one PDF per email to the output folder, organized into year/month
subfolders. Emails are rendered with a headless browser when one is
available, falling back to the builtin layout engine otherwise.

Failed files are listed in Skipped_Files_Report.pdf and the full run is
recorded in conversion_report.yaml. Interrupting with Ctrl-C stops the run
between files; PDFs already written are kept.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input")
	if inputDir == "" {
		return fmt.Errorf("input folder required: use --input")
	}
	if info, err := os.Stat(inputDir); err != nil || !info.IsDir() {
		return fmt.Errorf("input folder %s does not exist", inputDir)
	}

	settings, err := settingsFromFlags(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	var renderers []render.Renderer
	if settings.UseBrowser {
		if browser, err := render.DetectBrowser(); err == nil {
			renderers = append(renderers, browser)
		} else if !quiet {
			fmt.Fprintf(os.Stderr, "warning: %v; using builtin renderer\n", err)
		}
	}
	renderers = append(renderers, render.NewBuiltin())

	outputDir, _ := cmd.Flags().GetString("output")
	opts := convert.Options{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Settings:  settings,
		Renderers: renderers,
	}

	var w io.Writer = io.Discard
	if verbose {
		w = os.Stdout
	} else if !quiet {
		opts.Progress = newProgressBar(os.Stderr)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := convert.Run(ctx, opts, w)
	if err != nil {
		return err
	}
	if !verbose && !quiet {
		fmt.Fprintln(os.Stderr)
	}

	if settings.Catalog {
		if err := recordRun(ctx, result); err != nil && !quiet {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	if !quiet {
		fmt.Printf("Converted %d of %d emails to %s\n",
			result.Converted, result.Total(), result.OutputDir)
		if result.Failed > 0 {
			fmt.Printf("%d files skipped; see %s\n", result.Failed, result.ReportPath)
		}
		if result.AddressBookPath != "" {
			fmt.Printf("Address book written to %s\n", result.AddressBookPath)
		}
	}

	if result.Cancelled {
		return fmt.Errorf("conversion cancelled")
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// settingsFromFlags merges defaults, the settings file, environment, and
// command-line flags, in increasing order of precedence.
func settingsFromFlags(cmd *cobra.Command) (types.Settings, error) {
	settings := types.DefaultSettings()
	if err := viper.Unmarshal(&settings); err != nil {
		return settings, fmt.Errorf("reading settings: %w", err)
	}

	if cmd.Flags().Changed("page-size") {
		pageSize, _ := cmd.Flags().GetString("page-size")
		settings.PageSize = types.PageSize(pageSize)
	}
	if cmd.Flags().Changed("extract-attachments") {
		settings.ExtractAttachments, _ = cmd.Flags().GetBool("extract-attachments")
	}
	if cmd.Flags().Changed("no-organize") {
		noOrganize, _ := cmd.Flags().GetBool("no-organize")
		settings.OrganizeByDate = !noOrganize
	}
	if cmd.Flags().Changed("no-browser") {
		noBrowser, _ := cmd.Flags().GetBool("no-browser")
		settings.UseBrowser = !noBrowser
	}
	if cmd.Flags().Changed("address-book") {
		settings.AddressBook, _ = cmd.Flags().GetBool("address-book")
	}
	if cmd.Flags().Changed("catalog") {
		settings.Catalog, _ = cmd.Flags().GetBool("catalog")
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// recordRun appends the run's results to the catalog database in the
// output folder.
func recordRun(ctx context.Context, result *types.BatchResult) error {
	store, err := catalog.Open(filepath.Join(result.OutputDir, catalog.DBFileName))
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordRun(ctx, result)
}

// newProgressBar returns a progress callback that draws a single-line bar
// with an ETA estimate to w.
func newProgressBar(w io.Writer) func(done, total int, filename string) {
	const width = 40
	start := time.Now()
	return func(done, total int, filename string) {
		filled := done * width / total
		bar := strings.Repeat("=", filled) + strings.Repeat("-", width-filled)

		eta := "--:--"
		if done > 0 && done < total {
			perFile := time.Since(start) / time.Duration(done)
			remaining := perFile * time.Duration(total-done)
			eta = fmt.Sprintf("%02d:%02d", int(remaining.Minutes()), int(remaining.Seconds())%60)
		}

		name := filename
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		fmt.Fprintf(w, "\r[%s] %d/%d eta %s %-30s", bar, done, total, eta, name)
	}
}

func init() {
	convertCmd.Flags().StringP("input", "i", "", "folder containing .eml files (required)")
	convertCmd.Flags().StringP("output", "o", "", "output folder (default: <input>/PDF)")
	convertCmd.Flags().String("page-size", "", "page size: letter or a4")
	convertCmd.Flags().Bool("extract-attachments", false, "save attachments next to each PDF")
	convertCmd.Flags().Bool("no-organize", false, "write all PDFs to one folder instead of year/month subfolders")
	convertCmd.Flags().Bool("no-browser", false, "skip browser rendering, use the builtin layout engine")
	convertCmd.Flags().Bool("address-book", false, "export an address_book.csv of all senders and recipients")
	convertCmd.Flags().Bool("catalog", false, "record results in the catalog database")
	convertCmd.Flags().BoolP("verbose", "v", false, "print per-file status lines")
	convertCmd.Flags().BoolP("quiet", "q", false, "suppress all output except errors")

	rootCmd.AddCommand(convertCmd)
}
