// Package app implements the application layer for zpkg.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"go.trai.ch/zpkg/internal/core/domain"
	"go.trai.ch/zpkg/internal/core/ports"
	"go.trai.ch/zpkg/internal/engine/descriptor"
)

// DefaultVersion is the version given to packages initialized without one.
const DefaultVersion = "0.1.0"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	opener       *descriptor.Opener
	logger       ports.Logger
	newWatcher   ports.WatcherFactory
	out          io.Writer
	workDir      string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	opener *descriptor.Opener,
	log ports.Logger,
	newWatcher ports.WatcherFactory,
) *App {
	return &App{
		configLoader: loader,
		opener:       opener,
		logger:       log,
		newWatcher:   newWatcher,
		out:          os.Stdout,
		workDir:      ".",
	}
}

// WithOutput sets the writer reports are printed to.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithWorkDir sets the directory settings discovery starts from.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// Settings loads the project settings.
func (a *App) Settings() (domain.Settings, error) {
	settings, err := a.configLoader.Load(a.workDir)
	if err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to load settings")
	}
	return settings, nil
}

// InitOptions configures Init.
type InitOptions struct {
	File    string
	Name    string
	Version string
	Lib     bool
	Publish bool
	Force   bool
}

// Init creates a new package manifest.
func (a *App) Init(_ context.Context, opts InitOptions) error {
	settings, err := a.Settings()
	if err != nil {
		return err
	}
	path := manifestPath(settings, opts.File)

	pkg, err := a.opener.Open(path)
	if err != nil {
		return err
	}
	if pkg.Exists() && !opts.Force {
		return zerr.With(domain.ErrManifestExists, "path", path)
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(settings.Root)
	}
	version := opts.Version
	if version == "" {
		version = DefaultVersion
	}
	if err := domain.ValidateVersion(version); err != nil {
		return err
	}

	pkg.SetName(name)
	pkg.SetVersion(version)
	if opts.Lib {
		pkg.SetLib(true)
	}
	if opts.Publish {
		pkg.SetPublish(true)
	}

	return pkg.Write()
}

// IdentityOptions configures SetIdentity. Nil fields are left unchanged.
type IdentityOptions struct {
	File    string
	Name    *string
	Version *string
	Lib     *bool
	Publish *bool
}

// SetIdentity updates the package name, version and flags.
func (a *App) SetIdentity(_ context.Context, opts IdentityOptions) error {
	if opts.Version != nil {
		if err := domain.ValidateVersion(*opts.Version); err != nil {
			return err
		}
	}

	return a.mutate(opts.File, func(pkg *descriptor.Package) error {
		if opts.Name != nil {
			pkg.SetName(*opts.Name)
		}
		if opts.Version != nil {
			pkg.SetVersion(*opts.Version)
		}
		if opts.Lib != nil {
			pkg.SetLib(*opts.Lib)
		}
		if opts.Publish != nil {
			pkg.SetPublish(*opts.Publish)
		}
		return nil
	})
}

// AddDependency declares name with the given version constraint.
func (a *App) AddDependency(_ context.Context, file, name, constraint string) error {
	if err := domain.ValidateConstraint(constraint); err != nil {
		return zerr.With(err, "dependency", name)
	}

	return a.mutate(file, func(pkg *descriptor.Package) error {
		pkg.SetDependency(name, constraint)
		return nil
	})
}

// RemoveDependency removes the dependency declared as name.
func (a *App) RemoveDependency(_ context.Context, file, name string) error {
	return a.mutate(file, func(pkg *descriptor.Package) error {
		if _, ok := pkg.DependencyVersion(name); !ok {
			a.logger.Warn(fmt.Sprintf("dependency '%s' is not declared in %s", name, pkg.Path()))
			return nil
		}
		pkg.UnsetDependency(name)
		return nil
	})
}

// CheckDependency fails unless version satisfies the constraint declared for name.
func (a *App) CheckDependency(_ context.Context, file, name, version string) error {
	pkg, err := a.open(file)
	if err != nil {
		return err
	}

	constraint, ok := pkg.DependencyVersion(name)
	if !ok {
		return zerr.With(zerr.With(domain.ErrDependencyNotFound, "dependency", name), "path", pkg.Path())
	}

	if !pkg.DependencyMatches(name, version) {
		err := zerr.With(domain.ErrDependencyUnsatisfied, "dependency", name)
		err = zerr.With(err, "version", version)
		return zerr.With(err, "constraint", constraint)
	}

	newReporter(a.out).satisfied(name, version, constraint)
	return nil
}

// AddContract registers alias for the contract called name, or for itself when name is empty.
func (a *App) AddContract(_ context.Context, file, alias, name string) error {
	return a.mutate(file, func(pkg *descriptor.Package) error {
		return pkg.AddContract(alias, name)
	})
}

// RemoveContract unregisters alias.
func (a *App) RemoveContract(_ context.Context, file, alias string) error {
	return a.mutate(file, func(pkg *descriptor.Package) error {
		if _, ok := pkg.Contract(alias); !ok {
			a.logger.Warn(fmt.Sprintf("contract alias '%s' is not registered in %s", alias, pkg.Path()))
			return nil
		}
		pkg.UnsetContract(alias)
		return nil
	})
}

// ShowOptions configures Show.
type ShowOptions struct {
	File string
	JSON bool
}

// Show prints the package manifest.
func (a *App) Show(_ context.Context, opts ShowOptions) error {
	pkg, err := a.open(opts.File)
	if err != nil {
		return err
	}

	r := newReporter(a.out)
	if opts.JSON {
		return r.manifestJSON(pkg)
	}
	r.pkg(pkg)
	return nil
}

// mutate opens the manifest, applies fn and writes the result if anything changed.
func (a *App) mutate(file string, fn func(pkg *descriptor.Package) error) error {
	pkg, err := a.open(file)
	if err != nil {
		return err
	}

	if err := fn(pkg); err != nil {
		return err
	}

	if !pkg.Modified() {
		a.logger.Info("No changes to " + pkg.Path())
		return nil
	}

	return pkg.Write()
}

func (a *App) open(file string) (*descriptor.Package, error) {
	path, err := a.resolve(file)
	if err != nil {
		return nil, err
	}
	return a.opener.Open(path)
}

func (a *App) resolve(file string) (string, error) {
	if file != "" {
		return file, nil
	}
	settings, err := a.Settings()
	if err != nil {
		return "", err
	}
	return manifestPath(settings, ""), nil
}

// manifestPath resolves the manifest path: an explicit file wins over the
// settings, which are relative to the settings root.
func manifestPath(settings domain.Settings, file string) string {
	if file != "" {
		return file
	}
	if settings.ManifestPath == "" {
		return filepath.Join(settings.Root, domain.DefaultManifestFileName)
	}
	if filepath.IsAbs(settings.ManifestPath) {
		return settings.ManifestPath
	}
	return filepath.Join(settings.Root, settings.ManifestPath)
}
