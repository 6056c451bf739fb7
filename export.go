package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"jpnews/furigana"
	"jpnews/report"
	"jpnews/store"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <news-id>",
		Short: "Export a news item and its notes as Markdown",
		Long: `Export writes a Markdown study sheet for one news item: its metadata,
every note with furigana, and the Chinese notes.

Examples:
  jpnews export 3
  jpnews export 3 -f ruby -o sheets/3.md`,
		Args: cobra.ExactArgs(1),
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("format", "f", "", "Furigana format: ruby or bracket (default from config)")
	cmd.Flags().StringP("output", "o", "",
		"Write the sheet to specified file path (creates directories if needed)")

	return cmd
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid news id %q", args[0])
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := stringFlag(cmd, "format", &cfg.Format); err != nil {
		return err
	}
	if err := validate(cfg); err != nil {
		return err
	}
	format, err := furigana.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg)

	st, err := store.Open(cfg.DBDir, store.Options{EnableWAL: true, AutoMigrate: true})
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	news, err := st.GetNews(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("news %d: %w", id, err)
	}
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		if err := os.MkdirAll(filepath.Dir(output), 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		f, err := os.Create(output) //nolint:gosec // user-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	mw := report.NewMarkdownWriter(w, buildAnnotator(cfg, logger), report.Options{
		Format:      format,
		Concurrency: cfg.Concurrency,
	})
	if err := mw.Write(ctx, news); err != nil {
		return err
	}
	if output != "" {
		logger.Info("sheet written", "path", output, "notes", len(news.Notes))
	}
	return nil
}
