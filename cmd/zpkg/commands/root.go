// Package commands implements the CLI commands for zpkg.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/zpkg/internal/app"
	"go.trai.ch/zpkg/internal/build"
)

// CLI represents the command line interface for zpkg.
type CLI struct {
	app         Application
	rootCmd     *cobra.Command
	file        string
	logFormat   string
	onLogFormat func(flag string) error
}

// Application represents the application logic interface.
type Application interface {
	Init(ctx context.Context, opts app.InitOptions) error
	Show(ctx context.Context, opts app.ShowOptions) error
	SetIdentity(ctx context.Context, opts app.IdentityOptions) error
	AddDependency(ctx context.Context, file, name, constraint string) error
	RemoveDependency(ctx context.Context, file, name string) error
	CheckDependency(ctx context.Context, file, name, version string) error
	AddContract(ctx context.Context, file, alias, name string) error
	RemoveContract(ctx context.Context, file, alias string) error
	NetworkStatus(ctx context.Context, file string, networks []string) ([]app.NetworkReport, error)
	Watch(ctx context.Context, file string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "zpkg",
		Short:         "Manage zos.json package manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.file, "file", "f", "",
		"Path to the package manifest (default: from zpkg.yaml, else zos.json)")
	rootCmd.PersistentFlags().StringVar(&c.logFormat, "log-format", "auto",
		"Log format: auto, pretty or json")
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		if c.onLogFormat == nil {
			return nil
		}
		return c.onLogFormat(c.logFormat)
	}

	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newSetCmd())
	rootCmd.AddCommand(c.newDepCmd())
	rootCmd.AddCommand(c.newContractCmd())
	rootCmd.AddCommand(c.newNetworkCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// OnLogFormat registers fn to receive the --log-format flag before any command runs.
func (c *CLI) OnLogFormat(fn func(flag string) error) {
	c.onLogFormat = fn
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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
