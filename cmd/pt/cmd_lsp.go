package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/parseltongue/workspace"
)

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return workspace.NewLSPServer(version).RunStdio()
		},
	}

	return cmd
}
