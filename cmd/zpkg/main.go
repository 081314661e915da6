// Package main is the entry point for the zpkg manifest tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/zpkg/cmd/zpkg/commands"
	"go.trai.ch/zpkg/internal/adapters/detector"
	"go.trai.ch/zpkg/internal/app"
	"go.trai.ch/zpkg/internal/core/domain"
	_ "go.trai.ch/zpkg/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

// configurableLogger is implemented by loggers whose rendering can be changed.
type configurableLogger interface {
	SetOutput(w io.Writer)
	SetJSON(enable bool)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	if l, ok := components.Logger.(configurableLogger); ok {
		l.SetOutput(stderr)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)
	cli.OnLogFormat(func(flag string) error {
		return configureLogging(components, flag)
	})

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}

// configureLogging selects the log format from the flag, falling back to the settings.
func configureLogging(components *app.Components, flag string) error {
	configured := domain.LogFormatPretty
	if flag == "auto" || flag == "" {
		settings, err := components.App.Settings()
		if err != nil {
			return err
		}
		configured = settings.LogFormat
	}

	format, err := detector.ResolveLogFormat(flag, configured)
	if err != nil {
		return err
	}

	if l, ok := components.Logger.(configurableLogger); ok {
		l.SetJSON(format == domain.LogFormatJSON)
	}
	return nil
}
