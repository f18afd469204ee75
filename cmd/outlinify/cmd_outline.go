package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexcodex/outlinify/outline"
)

func newOutlineCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "outline <file>",
		Short: "Print the outline of one source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			defs := outline.FromSource(string(data))
			switch format {
			case "tree":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(outline.TreeJSON(defs))
			case "legacy":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(outline.LegacyJSON(outline.Flatten(defs)))
			case "text":
				return outline.WriteText(cmd.OutOrStdout(), defs)
			default:
				return fmt.Errorf("unknown format %q (want tree, legacy, or text)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "tree", "Output format: tree, legacy, or text")
	return cmd
}
