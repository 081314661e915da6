package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zpkg/internal/app"
)

func (c *CLI) newInitCmd() *cobra.Command {
	opts := app.InitOptions{}

	cmd := &cobra.Command{
		Use:   "init [NAME]",
		Short: "Create a new package manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Name = args[0]
			}
			opts.File = c.file
			return c.app.Init(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Version, "version", "", "Initial package version (default \""+app.DefaultVersion+"\")")
	cmd.Flags().BoolVar(&opts.Lib, "lib", false, "Mark the package as a library")
	cmd.Flags().BoolVar(&opts.Publish, "publish", false, "Mark the package for publishing")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite the identity of an existing manifest")

	return cmd
}
