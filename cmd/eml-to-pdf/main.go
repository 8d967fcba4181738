// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the eml-to-pdf CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the eml-to-pdf CLI.
var rootCmd = &cobra.Command{
	Use:   "eml-to-pdf",
	Short: "Convert EML email files to PDF documents",
	Long: `eml-to-pdf converts folders of EML email files into clean, readable PDF
documents. Each email becomes one PDF with a metadata header (subject, sender,
recipients, date), the message body with inline images resolved, and a listing
of its attachments.

Conversions are batch-oriented: point the convert subcommand at a folder and
every .eml file in it is processed, organized into year/month subfolders, and
summarized in a skipped-files report and a YAML run manifest.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "settings file (default: ./settings.json or ~/.config/eml-to-pdf/settings.json)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("settings")
		viper.SetConfigType("json")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "eml-to-pdf"))
		}
	}

	// Every settings key must be registered for AutomaticEnv values to
	// reach Unmarshal.
	defaults := types.DefaultSettings()
	viper.SetDefault("page_size", string(defaults.PageSize))
	viper.SetDefault("font_family", defaults.FontFamily)
	viper.SetDefault("font_size", defaults.FontSize)
	viper.SetDefault("organize_by_date", defaults.OrganizeByDate)
	viper.SetDefault("include_subject", defaults.IncludeSubject)
	viper.SetDefault("include_from", defaults.IncludeFrom)
	viper.SetDefault("include_to", defaults.IncludeTo)
	viper.SetDefault("include_cc", defaults.IncludeCC)
	viper.SetDefault("include_bcc", defaults.IncludeBCC)
	viper.SetDefault("include_date", defaults.IncludeDate)
	viper.SetDefault("extract_attachments", defaults.ExtractAttachments)
	viper.SetDefault("use_browser", defaults.UseBrowser)
	viper.SetDefault("address_book", defaults.AddressBook)
	viper.SetDefault("catalog", defaults.Catalog)

	viper.SetEnvPrefix("EML_TO_PDF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using settings file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
