package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zpkg/internal/app"
)

func (c *CLI) newSetCmd() *cobra.Command {
	var (
		name, version string
		lib, publish  bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the package name, version or flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			opts := app.IdentityOptions{File: c.file}
			if flags.Changed("name") {
				opts.Name = &name
			}
			if flags.Changed("version") {
				opts.Version = &version
			}
			if flags.Changed("lib") {
				opts.Lib = &lib
			}
			if flags.Changed("publish") {
				opts.Publish = &publish
			}

			if opts.Name == nil && opts.Version == nil && opts.Lib == nil && opts.Publish == nil {
				return cmd.Usage()
			}

			return c.app.SetIdentity(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Package name")
	cmd.Flags().StringVar(&version, "version", "", "Package version")
	cmd.Flags().BoolVar(&lib, "lib", false, "Library flag")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish flag")

	return cmd
}
