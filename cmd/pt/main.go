package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/parseltongue/project"
)

const version = "0.1.0"

func main() {
	var verbose int
	var logFile string

	rootCmd := &cobra.Command{
		Use:           "pt",
		Short:         "Transpile Parseltongue to Python",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(cmd, verbose, logFile)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log more (repeat for more detail)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newTranspileCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newUICmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		renderError(os.Stderr, err)
		os.Exit(1)
	}
}

// configureLogging applies -v and --log. Without -v the project's
// log_level is used.
func configureLogging(cmd *cobra.Command, verbose int, logFile string) {
	verbosity := verbose
	if !cmd.Flags().Changed("verbose") {
		if proj, err := project.Load(); err == nil {
			verbosity = proj.Config.Verbosity()
		}
	}
	var path *string
	if logFile != "" {
		path = &logFile
	}
	commonlog.Configure(verbosity, path)
}
