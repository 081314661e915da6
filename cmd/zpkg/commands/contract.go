package commands

import "github.com/spf13/cobra"

func (c *CLI) newContractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Manage contract aliases",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add ALIAS [NAME]",
		Short: "Register a contract alias, bound to NAME or to itself",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 2 {
				name = args[1]
			}
			return c.app.AddContract(cmd.Context(), c.file, args[0], name)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm ALIAS",
		Aliases: []string{"remove"},
		Short:   "Unregister a contract alias",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RemoveContract(cmd.Context(), c.file, args[0])
		},
	})

	return cmd
}
