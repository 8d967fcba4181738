// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/eml-to-pdf/internal/contacts"
	"github.com/pdiddy/eml-to-pdf/internal/convert"
	"github.com/pdiddy/eml-to-pdf/internal/eml"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Export an address book CSV from a folder of EML files",
	Long: `Contacts scans a folder of .eml files and exports every sender and
recipient address to a CSV address book, deduplicated by email address.
No PDFs are produced; unparseable files are skipped with a warning.`,
	RunE: runContacts,
}

func runContacts(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input")
	if inputDir == "" {
		return fmt.Errorf("input folder required: use --input")
	}

	files, err := convert.ListEmailFiles(inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no EML files found in %s", inputDir)
	}

	book := contacts.NewBook()
	for _, path := range files {
		email, err := eml.ParseFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", filepath.Base(path), err)
			continue
		}
		book.Add(email)
	}

	outPath, _ := cmd.Flags().GetString("output")
	if err := contacts.WriteCSV(book.Contacts(), outPath); err != nil {
		return err
	}
	fmt.Printf("Address book written to %s\n", outPath)
	return nil
}

func init() {
	contactsCmd.Flags().StringP("input", "i", "", "folder containing .eml files (required)")
	contactsCmd.Flags().StringP("output", "o", convert.AddressBookFileName, "output CSV path")

	rootCmd.AddCommand(contactsCmd)
}
