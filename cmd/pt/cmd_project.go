package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/parseltongue/project"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Show project structure",
		Long: `Display the project root, its configuration and every module in
import order. Modules that can run as scripts are marked with their
command name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(cmd.OutOrStdout())
		},
	}

	return cmd
}

func runProject(out io.Writer) error {
	proj, err := project.Load()
	if err != nil {
		return err
	}

	config := proj.ConfigFile
	if config == "" {
		config = "(defaults)"
	}
	outDir := proj.Config.OutputDir
	if outDir == "" {
		outDir = "(next to sources)"
	}
	fmt.Fprintf(out, "Root:    %s\n", proj.RootDir)
	fmt.Fprintf(out, "Config:  %s\n", config)
	fmt.Fprintf(out, "Output:  %s\n", outDir)
	fmt.Fprintf(out, "Target:  Python 3.%d\n", proj.Config.TargetVersion)

	modules, err := proj.Discover()
	if err != nil {
		return err
	}
	for _, m := range modules {
		if err := m.Analyze(); err != nil {
			fmt.Fprintf(out, "\n%s\n", formatError(err))
		}
	}

	fmt.Fprintf(out, "\nModules:\n")
	for _, m := range project.ModulesInOrder(modules) {
		fmt.Fprintf(out, "  %s\n", m.Name)
		fmt.Fprintf(out, "    src: %s\n", displayPath(m.Path))
		fmt.Fprintf(out, "    out: %s\n", displayPath(m.OutputPath()))
		if m.Entrypoint {
			fmt.Fprintf(out, "    run: %s\n", m.Slug())
		}
	}

	return nil
}
