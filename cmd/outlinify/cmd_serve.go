package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lexcodex/outlinify/config"
	"github.com/lexcodex/outlinify/index"
	"github.com/lexcodex/outlinify/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the outline language server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(flagWorkspace)
			if err != nil {
				return err
			}
			cfg, err := config.Load(root)
			if err != nil {
				return err
			}
			logger := log.New(os.Stderr, "outlinify-lsp ", log.LstdFlags)
			if cfg.LSP.LogFile != "" {
				f, err := os.OpenFile(cfg.LSP.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				logger.SetOutput(f)
			}

			// workspace/symbol works only when an index exists
			var store *index.Store
			dbPath := filepath.Join(root, cfg.Index.DBPath)
			if _, err := os.Stat(dbPath); err == nil {
				store, err = index.Open(dbPath)
				if err != nil {
					logger.Printf("index unavailable: %v", err)
					store = nil
				} else {
					defer store.Close()
				}
			}

			logger.Printf("serving on stdio (workspace %s)", root)
			return server.ServeStdio(context.Background(), server.NewServer(store, logger))
		},
	}
	return cmd
}
