package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/parseltongue/transpile"
	"github.com/dhamidi/parseltongue/workspace"
)

func newWatchCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Transpile sources whenever they change",
		Long: `Transpile every source below dir (default: the project root), then keep
transpiling files as they are written until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			proj, err := loadProject(outputDir)
			if err != nil {
				return err
			}
			dir := proj.RootDir
			if len(args) == 1 {
				dir = args[0]
			}

			tr := transpile.New(proj)
			tr.Progress = func(res transpile.Result) {
				switch {
				case res.Err != nil:
					renderError(cmd.ErrOrStderr(), res.Err)
				case res.Changed:
					fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", displayPath(res.Source), displayPath(res.Output))
				}
			}
			build := func(paths []string) {
				if len(paths) == 0 {
					return
				}
				modules, err := proj.Discover(paths...)
				if err != nil {
					renderError(cmd.ErrOrStderr(), err)
					return
				}
				// Failures were reported through Progress.
				tr.Files(ctx, modules)
			}

			w, err := workspace.ForProject(proj, build)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer w.Close()

			existing, err := w.AddTree(dir)
			if err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			build(existing)

			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s\n", displayPath(dir))
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for the generated files (default: next to the sources)")

	return cmd
}
