package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lexcodex/outlinify/config"
	"github.com/lexcodex/outlinify/index"
)

func newSearchCmd() *cobra.Command {
	var kind string
	var limit int
	cmd := &cobra.Command{
		Use:   "search <pattern>",
		Short: "Search indexed declarations by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(flagWorkspace)
			if err != nil {
				return err
			}
			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			store, err := index.Open(filepath.Join(root, cfg.Index.DBPath))
			if err != nil {
				return fmt.Errorf("open index store (run 'outlinify index' first): %w", err)
			}
			defer store.Close()

			results, err := store.Search(index.Query{
				NamePattern: args[0],
				Kind:        kind,
				Limit:       limit,
			})
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
				return nil
			}
			for _, rec := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d\t%s\t%s\n",
					rec.Path, rec.Line, rec.CharStart, rec.Kind, rec.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by legacy kind label (function, class, method, static method)")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of results")
	return cmd
}
