package commands

import "github.com/spf13/cobra"

func (c *CLI) newNetworkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "network [NETWORK...]",
		Short: "Show the package state on each network",
		Long: "Show the package state recorded in the network companion manifests.\n" +
			"Without arguments the networks listed in zpkg.yaml are inspected.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.app.NetworkStatus(cmd.Context(), c.file, args)
			return err
		},
	}
}
