package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"jpnews/config"
	"jpnews/furigana"
	"jpnews/kanji"
	jplog "jpnews/logger"
	"jpnews/tokenize"
)

// buildConfig layers defaults, the config file and command-line flags, in
// that order, and validates the result.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	path := config.FindConfigFile(configFlag)
	if path == "" && configFlag != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configFlag)
	}
	if path != "" {
		f, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.Apply(f); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	flags := []struct {
		name string
		dst  *string
	}{
		{"db-dir", &cfg.DBDir},
		{"dict", &cfg.Dictionary},
		{"mode", &cfg.Mode},
		{"kanjidic2", &cfg.Kanjidic2Path},
	}
	for _, f := range flags {
		if err := stringFlag(cmd, f.name, f.dst); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("log-json") {
		if cfg.LogJSON, err = cmd.Flags().GetBool("log-json"); err != nil {
			return nil, err
		}
	}
	if cfg.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// stringFlag copies flag name into dst when the user set it.
func stringFlag(cmd *cobra.Command, name string, dst *string) error {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func validate(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	return nil
}

func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	logger := jplog.New(cmd.ErrOrStderr(), jplog.Options{
		Verbose: cfg.Verbose,
		JSON:    cfg.LogJSON,
		Level:   cfg.LogLevel,
	})
	slog.SetDefault(logger)
	return logger
}

// buildAnnotator constructs the analyzer once. A failed construction is
// logged and leaves the annotator on fallback readings for the whole run.
func buildAnnotator(cfg *config.Config, logger *slog.Logger) *furigana.Annotator {
	var analyzer tokenize.Analyzer
	k, err := tokenize.New(tokenize.WithDictionary(cfg.Dictionary), tokenize.WithMode(cfg.Mode))
	if err != nil {
		logger.Warn("analyzer unavailable, using fallback readings only", "error", err)
		analyzer = tokenize.Unavailable(err)
	} else {
		analyzer = k
	}

	var extra kanji.Table
	if cfg.Kanjidic2Path != "" {
		t, err := kanji.LoadKanjidic2(cfg.Kanjidic2Path)
		if err != nil {
			logger.Warn("kanjidic2 not loaded", "path", cfg.Kanjidic2Path, "error", err)
		} else {
			extra = t
			logger.Info("kanjidic2 loaded", "entries", len(t))
		}
	}

	return furigana.NewAnnotator(analyzer,
		furigana.WithLogger(logger),
		furigana.WithFallback(furigana.NewFallback(extra)),
	)
}
