package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for jpnews.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jpnews",
		Short: "Japanese news notes with automatic furigana",
		Long: `jpnews keeps short Japanese news items with bilingual notes and
annotates Japanese text with furigana readings.

Readings come from the kagome morphological analyzer. When the analyzer is
unavailable or finds nothing to annotate, a per-kanji reading table is used
instead, optionally widened with a Kanjidic2 file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	pf := cmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.StringP("config", "c", "",
		"Configuration file path (default: .jpnews.yaml or $XDG_CONFIG_HOME/jpnews/config.yaml)")
	pf.String("db-dir", "", "Directory holding the SQLite database (default: XDG data dir)")
	pf.String("dict", "", "Analyzer dictionary: ipa or uni")
	pf.String("mode", "", "Analyzer mode: normal, search or extended")
	pf.String("kanjidic2", "", "Path to kanjidic2.xml for the fallback reading table")
	pf.Bool("log-json", false, "Write logs as JSON")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewAnnotateCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
