package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lcr/internal/app"
)

func addSynthesisFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("base", "b", "", "Base runtime rule id (selected from the code when empty)")
	cmd.Flags().StringP("tag", "t", "", "Image tag of the new environment")
	cmd.Flags().String("name", "", "Display name of the new environment")
}

func synthesisOptions(cmd *cobra.Command) app.SynthesizeOptions {
	base, _ := cmd.Flags().GetString("base")
	tag, _ := cmd.Flags().GetString("tag")
	name, _ := cmd.Flags().GetString("name")
	return app.SynthesizeOptions{Base: base, Tag: tag, Name: name}
}

func (c *CLI) newSynthesizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synthesize <file>",
		Short: "Print the environment definition a source file needs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Synthesize(cmd.Context(), args[0], synthesisOptions(cmd))
		},
	}
	addSynthesisFlags(cmd)
	return cmd
}

func (c *CLI) newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <file>",
		Short: "Synthesize, persist and build a new runtime environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Create(cmd.Context(), args[0], synthesisOptions(cmd))
		},
	}
	addSynthesisFlags(cmd)
	return cmd
}

func (c *CLI) newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <definition>",
		Short: "Render the Dockerfile of a stored definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			return c.app.Render(cmd.Context(), args[0], write)
		},
	}
	cmd.Flags().BoolP("write", "w", false, "Write the Dockerfile into the images directory")
	return cmd
}

func (c *CLI) newDefinitionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "definitions",
		Aliases: []string{"defs"},
		Short:   "List the stored environment definitions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Definitions(outputOptions(cmd))
		},
	}
}

func (c *CLI) newLearnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn <import>",
		Short: "Teach the resolver which packages provide an import",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pip, _ := cmd.Flags().GetStringSlice("pip")
			apt, _ := cmd.Flags().GetStringSlice("apt")
			if len(pip) == 0 && len(apt) == 0 {
				_ = cmd.Help()
				return nil
			}
			return c.app.Learn(args[0], pip, apt)
		},
	}
	cmd.Flags().StringSlice("pip", nil, "pip requirement providing the import")
	cmd.Flags().StringSlice("apt", nil, "apt package providing the import")
	return cmd
}
