package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/lexcodex/outlinify/config"
	"github.com/lexcodex/outlinify/index"
)

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [path]",
		Short: "Index the outlines of every matching file in a workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := flagWorkspace
			if len(args) > 0 {
				root = args[0]
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}
			info, err := os.Stat(root)
			if err != nil {
				return fmt.Errorf("path does not exist: %w", err)
			}
			if !info.IsDir() {
				return fmt.Errorf("path is not a directory: %s", root)
			}

			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			dbPath := filepath.Join(root, cfg.Index.DBPath)
			if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
				return fmt.Errorf("create index directory: %w", err)
			}
			store, err := index.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open index store: %w", err)
			}
			defer store.Close()

			manager := index.NewManager(store, index.Config{
				WorkspacePath: root,
				Includes:      cfg.Index.Includes,
				Excludes:      cfg.Index.Excludes,
			})
			bar := progressbar.NewOptions(-1,
				progressbar.OptionSetDescription("Indexing"),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSpinnerType(14),
			)
			count, err := manager.IndexWorkspace(func(path string) {
				_ = bar.Add(1)
			})
			_ = bar.Finish()
			if err != nil {
				return err
			}
			stats, err := store.GetStats()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nIndexed %d files, %d declarations (%s)\n",
				count, stats.TotalDefs, dbPath)
			return nil
		},
	}
	return cmd
}
