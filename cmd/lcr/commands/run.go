package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lcr/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a script inside its selected runtime",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			runtime, _ := cmd.Flags().GetString("runtime")
			data, _ := cmd.Flags().GetString("data")
			out, _ := cmd.Flags().GetString("output")
			return c.app.Run(cmd.Context(), args[0], app.RunOptions{
				Runtime:   runtime,
				DataDir:   data,
				OutputDir: out,
			})
		},
	}
	cmd.Flags().StringP("runtime", "r", "", "Runtime rule id, bypassing selection")
	cmd.Flags().StringP("data", "d", "", "Data directory mounted read-only at /data")
	cmd.Flags().StringP("output", "o", "", "Directory receiving a timestamped LCR_RUN_ folder")
	return cmd
}

func (c *CLI) newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.History(outputOptions(cmd))
		},
	}
}

func (c *CLI) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the docker daemon and the runtime images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Doctor(cmd.Context(), outputOptions(cmd))
		},
	}
}
