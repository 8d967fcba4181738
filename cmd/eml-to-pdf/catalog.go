// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/eml-to-pdf/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Search and list past conversion results",
	Long: `Catalog manages the SQLite database of past conversion runs. Runs are
recorded when convert is invoked with --catalog. Use subcommands to search
the catalog by subject or sender, or list recent entries.`,
}

// --- query subcommand ---

var catalogQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Full-text search over subject, sender, and filename",
	Long: `Query searches the catalog with FTS5 full-text search over email
subjects, senders, and source filenames, ranked by relevance.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCatalogQuery,
}

func runCatalogQuery(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Query(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCatalogOutput(entries, jsonOutput)
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent catalog entries",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	failedOnly, _ := cmd.Flags().GetBool("failed")
	entries, err := store.List(cmd.Context(), failedOnly, limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCatalogOutput(entries, jsonOutput)
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("catalog database %s not found: run convert with --catalog first", dbPath)
	}
	return catalog.Open(dbPath)
}

func formatCatalogOutput(entries []catalog.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-30s  %-30s  %-25s  %-10s  %s\n",
		"File", "Subject", "Sender", "Status", "Date")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%-30s  %-30s  %-25s  %-10s  %s\n",
			truncate(e.SourceFile, 30), truncate(e.Subject, 30),
			truncate(e.Sender, 25), e.Status, e.Date)
	}

	fmt.Fprintf(os.Stdout, "\n%d entries\n", len(entries))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}

func init() {
	catalogCmd.PersistentFlags().String("db", catalog.DBFileName, "path to the catalog database")
	catalogCmd.PersistentFlags().Int("limit", 20, "maximum number of entries")
	catalogCmd.PersistentFlags().Bool("json", false, "output entries as JSON")

	catalogListCmd.Flags().Bool("failed", false, "only show failed conversions")

	catalogCmd.AddCommand(catalogQueryCmd)
	catalogCmd.AddCommand(catalogListCmd)

	rootCmd.AddCommand(catalogCmd)
}
