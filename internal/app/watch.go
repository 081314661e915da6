package app

import (
	"context"
	"fmt"

	"go.trai.ch/zpkg/internal/adapters/watcher" //nolint:depguard // Debouncer has no port
	"golang.org/x/sync/errgroup"
)

// Watch reports every change to the package manifest until ctx is done.
// Bursts of file events are coalesced into one reload.
func (a *App) Watch(ctx context.Context, file string) error {
	path, err := a.resolve(file)
	if err != nil {
		return err
	}

	w, err := a.newWatcher()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.Start(ctx, path); err != nil {
		_ = w.Stop()
		return err
	}

	a.logger.Info("Watching " + path)
	a.reload(path)

	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func([]string) {
		a.reload(path)
	})
	defer debouncer.Stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		for event := range w.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return w.Stop()
	})

	return g.Wait()
}

// reload opens the manifest and logs a one-line summary, or the failure.
func (a *App) reload(path string) {
	pkg, err := a.opener.Open(path)
	if err != nil {
		a.logger.Error(err)
		return
	}

	if !pkg.Exists() {
		a.logger.Warn(path + " does not exist")
		return
	}

	a.logger.Info(fmt.Sprintf("%s: %s@%s, %d dependencies, %d contracts",
		path, pkg.Name(), pkg.Version(), len(pkg.DependencyNames()), len(pkg.ContractAliases())))
}
