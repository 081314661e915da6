package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zpkg/internal/app"
)

func (c *CLI) newShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the package manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Show(cmd.Context(), app.ShowOptions{File: c.file, JSON: asJSON})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the manifest as stored")

	return cmd
}
