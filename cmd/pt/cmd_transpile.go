package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/parseltongue/project"
	"github.com/dhamidi/parseltongue/transpile"
)

func newTranspileCmd() *cobra.Command {
	var outputDir string
	var jobs int

	cmd := &cobra.Command{
		Use:   "transpile [files|dirs...]",
		Short: "Write the Python rendering of Parseltongue sources",
		Long: `Transpile .pt files to .py files.

Directories are searched recursively for .pt files. Without arguments the
project root is used. Each output keeps the newline style and file mode of
its source. A failing file does not stop the others.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, modules, err := loadModules(args, outputDir)
			if err != nil {
				return err
			}

			tr := transpile.New(proj)
			tr.Jobs = jobs
			tr.Progress = func(res transpile.Result) {
				if res.Written {
					fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", displayPath(res.Source), displayPath(res.Output))
				}
			}

			_, err = tr.Files(cmd.Context(), modules)
			return err
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for the generated files (default: next to the sources)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of files transpiled at once (default: from the project, or the number of CPUs)")

	return cmd
}

// loadProject loads the project around the working directory. A non-empty
// outputDir overrides output_dir.
func loadProject(outputDir string) (*project.Project, error) {
	proj, err := project.Load()
	if err != nil {
		return nil, err
	}
	if outputDir != "" {
		abs, err := filepath.Abs(outputDir)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", outputDir, err)
		}
		proj.Config.OutputDir = abs
	}
	return proj, nil
}

// loadModules loads the project and discovers the modules named by args.
func loadModules(args []string, outputDir string) (*project.Project, []*project.Module, error) {
	proj, err := loadProject(outputDir)
	if err != nil {
		return nil, nil, err
	}
	modules, err := proj.Discover(args...)
	if err != nil {
		return nil, nil, err
	}
	return proj, modules, nil
}
