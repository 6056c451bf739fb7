package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"jpnews/furigana"
	"jpnews/ingest"
	jplog "jpnews/logger"
	"jpnews/model"
)

// formatJSON prints the annotation lists instead of rendered markup.
const formatJSON = "json"

// errNoInput is returned when neither arguments nor stdin carry text.
var errNoInput = errors.New("no input text")

// traceRecord is written per sentence when --trace-dir is set.
type traceRecord struct {
	Sentence ingest.Sentence        `json:"sentence"`
	Result   model.AnnotationResult `json:"result"`
}

// NewAnnotateCmd creates the annotate command.
func NewAnnotateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate [text...]",
		Short: "Annotate Japanese text with furigana",
		Long: `Annotate prints each input with furigana. Every argument is one input;
with no arguments, each non-blank line of standard input is one input.

Examples:
  # Ruby HTML
  jpnews annotate 日本語を勉強します。

  # Bracket notation for a file, eight lines at a time
  jpnews annotate -f bracket -n 8 < article.txt

  # Annotation lists as JSON, with one trace file per line
  jpnews annotate -f json --trace-dir logs < article.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnnotateCmd,
	}

	cmd.Flags().StringP("format", "f", "", "Output format: ruby, bracket or json (default from config)")
	cmd.Flags().IntP("concurrency", "n", 0, "Inputs annotated in parallel (default from config)")
	cmd.Flags().String("trace-dir", "", "Write one JSON trace file per input to this directory")

	return cmd
}

func runAnnotateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if outFormat == "" {
		outFormat = cfg.Format
	}
	if outFormat != formatJSON {
		f, err := furigana.ParseFormat(outFormat)
		if err != nil {
			return err
		}
		outFormat = string(f)
	}
	if cmd.Flags().Changed("concurrency") {
		if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
			return err
		}
	}
	traceDir, err := cmd.Flags().GetString("trace-dir")
	if err != nil {
		return err
	}
	if err := validate(cfg); err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg)

	var sentences []ingest.Sentence
	if len(args) > 0 {
		sentences, err = ingest.FromArgs(args)
	} else {
		sentences, err = ingest.Lines(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}
	if len(sentences) == 0 {
		return errNoInput
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := buildAnnotator(cfg, logger)
	results, err := furigana.AnnotateAll(ctx, a, ingest.Texts(sentences), cfg.Concurrency)
	if err != nil {
		return err
	}

	if traceDir != "" {
		if err := writeTraces(traceDir, sentences, results); err != nil {
			return err
		}
		logger.Debug("traces written", "dir", traceDir, "count", len(results))
	}

	return writeAnnotations(cmd.OutOrStdout(), results, outFormat)
}

// writeTraces writes <sentence-id>.json into dir for every result. Other
// files in dir are left untouched.
func writeTraces(dir string, sentences []ingest.Sentence, results []model.AnnotationResult) error {
	if err := jplog.InitLogs(dir); err != nil {
		return fmt.Errorf("init trace dir: %w", err)
	}
	for i, s := range sentences {
		if err := jplog.LogJSON(dir, s.ID, traceRecord{Sentence: s, Result: results[i]}); err != nil {
			return fmt.Errorf("write trace %s: %w", s.ID, err)
		}
	}
	return nil
}

// writeAnnotations prints results, one rendered line per input, or a JSON
// array for the json format.
func writeAnnotations(w io.Writer, results []model.AnnotationResult, outFormat string) error {
	if outFormat == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	f := furigana.Format(outFormat)
	for _, r := range results {
		if _, err := fmt.Fprintln(w, furigana.Render(r, f)); err != nil {
			return err
		}
	}
	return nil
}
