// Package commands implements the CLI commands for lcr.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/lcr/internal/app"
	"go.trai.ch/lcr/internal/build"
	"go.trai.ch/lcr/internal/core/ports"
)

// logSettings is implemented by loggers whose format can change at runtime.
type logSettings interface {
	SetJSON(enable bool)
	SetQuiet(enable bool)
}

// CLI represents the command line interface for lcr.
type CLI struct {
	app     *app.App
	logger  ports.Logger
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "lcr",
		Short:         "Pick or build a runtime image that can run legacy Python code",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("json", false, "Print reports as JSON")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write log records as JSON")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log warnings and errors")

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		settings, ok := c.logger.(logSettings)
		if !ok {
			return
		}
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		quiet, _ := cmd.Flags().GetBool("quiet")
		settings.SetJSON(jsonLogs)
		settings.SetQuiet(quiet)
	}

	rootCmd.AddCommand(c.newAnalyzeCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newRuntimesCmd())
	rootCmd.AddCommand(c.newSelectCmd())
	rootCmd.AddCommand(c.newSynthesizeCmd())
	rootCmd.AddCommand(c.newCreateCmd())
	rootCmd.AddCommand(c.newRenderCmd())
	rootCmd.AddCommand(c.newDefinitionsCmd())
	rootCmd.AddCommand(c.newLearnCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newHistoryCmd())
	rootCmd.AddCommand(c.newDoctorCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects cobra's own output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func outputOptions(cmd *cobra.Command) app.OutputOptions {
	asJSON, _ := cmd.Flags().GetBool("json")
	return app.OutputOptions{JSON: asJSON}
}
