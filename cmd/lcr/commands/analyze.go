package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file>",
		Short: "Detect the Python version, imports and signals of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Analyze(cmd.Context(), args[0], outputOptions(cmd))
		},
	}
}

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <file>",
		Short: "Map the imports of a source file to pip and apt packages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Resolve(cmd.Context(), args[0], outputOptions(cmd))
		},
	}
}

func (c *CLI) newRuntimesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runtimes",
		Short: "List the active runtime image rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Runtimes(outputOptions(cmd))
		},
	}
}

func (c *CLI) newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <file>",
		Short: "Score the runtime rules against a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Select(cmd.Context(), args[0], outputOptions(cmd))
		},
	}
}
