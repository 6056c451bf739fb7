package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jpnews/store"
)

// NewMigrateCmd creates the migrate command.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		Long: `Migrate creates the database if needed and adds columns introduced by
newer versions (such as news.youtube_url) to an existing database.
The serve command does this on startup as well.`,
		Args: cobra.NoArgs,
		RunE: runMigrateCmd,
	}
}

func runMigrateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := validate(cfg); err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg)

	opts := store.DefaultOptions()
	opts.AutoMigrate = false
	st, err := store.Open(cfg.DBDir, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	added, err := st.Migrate(context.Background())
	if err != nil {
		return err
	}
	logger.Debug("migration finished", "path", st.Path(), "added", len(added))

	out := cmd.OutOrStdout()
	if len(added) == 0 {
		fmt.Fprintln(out, "schema is up to date")
		return nil
	}
	for _, c := range added {
		fmt.Fprintf(out, "added column %s\n", c)
	}
	return nil
}
