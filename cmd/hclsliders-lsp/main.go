package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jsvensson/hclsliders/internal/lsp"
)

var version = "dev"

func main() {
	var verbose int

	cmd := &cobra.Command{
		Use:     "hclsliders-lsp",
		Short:   "Language server for color literals and hclsliders settings files",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return lsp.NewServer(version).Run(verbose)
		},
	}
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "log more (repeat for debug output)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
