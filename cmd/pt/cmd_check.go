package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/parseltongue/transpile"
)

func newCheckCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "check [files|dirs...]",
		Short: "Report sources whose Python output is missing or out of date",
		Long: `Transpile every source in memory and compare the result with the
existing output file. Nothing is written. Exits with status 1 when a file
fails to parse or an output would change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, modules, err := loadModules(args, outputDir)
			if err != nil {
				return err
			}

			results, err := transpile.New(proj).Check(cmd.Context(), modules)
			for _, res := range results {
				if res.Err == nil && res.Changed {
					fmt.Fprintf(cmd.OutOrStdout(), "would change: %s\n", displayPath(res.Output))
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory holding the generated files")

	return cmd
}
