package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lexcodex/outlinify/outline"
	"github.com/lexcodex/outlinify/tui"
)

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse <file>",
		Short: "Browse a file's outline interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return tui.Run(args[0], outline.FromSource(string(data)))
		},
	}
	return cmd
}
