package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagWorkspace string

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "outlinify",
		Short: "Declaration outlines for Hack-style source files",
	}
	root.PersistentFlags().StringVar(&flagWorkspace, "workspace", ".", "Workspace root (used for config and the index)")

	root.AddCommand(newOutlineCmd(), newIndexCmd(), newSearchCmd(), newServeCmd(), newBrowseCmd())
	return root
}
