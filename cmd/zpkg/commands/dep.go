package commands

import "github.com/spf13/cobra"

func (c *CLI) newDepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage package dependencies",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME CONSTRAINT",
		Short: "Declare a dependency with a version constraint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.AddDependency(cmd.Context(), c.file, args[0], args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"remove"},
		Short:   "Remove a dependency",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RemoveDependency(cmd.Context(), c.file, args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check NAME VERSION",
		Short: "Check a version against the declared constraint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.CheckDependency(cmd.Context(), c.file, args[0], args[1])
		},
	})

	return cmd
}
