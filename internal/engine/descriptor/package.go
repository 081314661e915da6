// Package descriptor implements the package descriptor model: an in-memory,
// mutable view of a package manifest and of its network-scoped companions.
//
// A descriptor is owned by a single caller and performs no locking. All
// mutations stay in memory until Write is called.
package descriptor

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
	"go.trai.ch/zpkg/internal/core/domain"
	"go.trai.ch/zpkg/internal/core/ports"
)

// Package is the descriptor of a package manifest.
type Package struct {
	path     string
	manifest *domain.Manifest

	store  ports.DocumentStore
	gate   ports.VersionGate
	logger ports.Logger

	// written is the fingerprint of the document as last loaded or written.
	written uint64
}

// Open loads the manifest stored at path, or starts a fresh one if nothing is
// stored there. An empty path selects domain.DefaultManifestFileName.
// The declared schema version is checked before the descriptor is returned.
func Open(store ports.DocumentStore, gate ports.VersionGate, logger ports.Logger, path string) (*Package, error) {
	if path == "" {
		path = domain.DefaultManifestFileName
	}

	doc, err := store.LoadIfExists(path)
	if err != nil {
		return nil, err
	}

	manifest := domain.NewManifest()
	if doc != nil {
		manifest, err = domain.DecodeManifest(doc)
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
	}

	if err := gate.Check(manifest.SchemaVersion, path); err != nil {
		return nil, err
	}

	p := &Package{
		path:     path,
		manifest: manifest,
		store:    store,
		gate:     gate,
		logger:   logger,
	}

	if doc != nil {
		// Hash the re-encoded form so formatting differences in the stored
		// file do not count as modifications.
		if p.written, err = p.Fingerprint(); err != nil {
			return nil, zerr.With(err, "path", path)
		}
	}

	return p, nil
}

// Path returns the path the descriptor is bound to.
func (p *Package) Path() string {
	return p.path
}

// Exists reports whether the bound path currently holds a document.
func (p *Package) Exists() bool {
	return p.store.Exists(p.path)
}

// SchemaVersion returns the declared manifest format version.
func (p *Package) SchemaVersion() string {
	return p.manifest.SchemaVersion
}

// Manifest returns a snapshot of the manifest.
func (p *Package) Manifest() *domain.Manifest {
	return p.manifest.Clone()
}

// Name returns the package name, or "" when unset.
func (p *Package) Name() string {
	return deref(p.manifest.Name)
}

// SetName overwrites the package name.
func (p *Package) SetName(name string) {
	p.manifest.Name = &name
}

// HasName reports whether the package name is set and equal to name.
func (p *Package) HasName(name string) bool {
	return p.manifest.Name != nil && *p.manifest.Name == name
}

// Version returns the package release version, or "" when unset.
func (p *Package) Version() string {
	return deref(p.manifest.Version)
}

// SetVersion overwrites the package release version.
func (p *Package) SetVersion(version string) {
	p.manifest.Version = &version
}

// IsCurrentVersion reports whether the package version is set and equal to version.
func (p *Package) IsCurrentVersion(version string) bool {
	return p.manifest.Version != nil && *p.manifest.Version == version
}

// Lib returns the library flag.
func (p *Package) Lib() bool {
	return deref(p.manifest.Lib)
}

// SetLib sets the library flag.
func (p *Package) SetLib(lib bool) {
	p.manifest.Lib = &lib
}

// Publish returns the publish flag.
func (p *Package) Publish() bool {
	return deref(p.manifest.Publish)
}

// SetPublish sets the publish flag.
func (p *Package) SetPublish(publish bool) {
	p.manifest.Publish = &publish
}

// IsLib reports whether the package is a library with no deployable instance.
func (p *Package) IsLib() bool {
	return p.Lib()
}

// IsLightweight reports whether the package is neither published nor a library.
func (p *Package) IsLightweight() bool {
	return !p.Publish() && !p.IsLib()
}

// Dependencies returns a snapshot of the dependency constraints, keyed by name.
// The result is never nil.
func (p *Package) Dependencies() map[string]string {
	return snapshot(p.manifest.Dependencies)
}

// DependencyNames returns the declared dependency names in sorted order.
func (p *Package) DependencyNames() []string {
	return slices.Sorted(maps.Keys(p.manifest.Dependencies))
}

// DependencyVersion returns the version constraint declared for name.
func (p *Package) DependencyVersion(name string) (string, bool) {
	constraint, ok := p.manifest.Dependencies[name]
	return constraint, ok
}

// HasDependency reports whether name is declared with a non-empty constraint.
func (p *Package) HasDependency(name string) bool {
	return p.manifest.Dependencies[name] != ""
}

// HasDependencies reports whether any dependency is declared.
func (p *Package) HasDependencies() bool {
	return len(p.manifest.Dependencies) > 0
}

// SetDependency declares name with the given version constraint, replacing any previous one.
func (p *Package) SetDependency(name, constraint string) {
	if p.manifest.Dependencies == nil {
		p.manifest.Dependencies = make(map[string]string)
	}
	p.manifest.Dependencies[name] = constraint
}

// UnsetDependency removes name from the dependencies. It is a no-op if name is not declared.
func (p *Package) UnsetDependency(name string) {
	delete(p.manifest.Dependencies, name)
}

// DependencyMatches reports whether name is declared and version satisfies its constraint.
func (p *Package) DependencyMatches(name, version string) bool {
	if !p.HasDependency(name) {
		return false
	}
	return domain.SatisfiesVersion(version, p.manifest.Dependencies[name])
}

// Contracts returns a snapshot of the contract registry, alias to contract name.
// The result is never nil.
func (p *Package) Contracts() map[string]string {
	return snapshot(p.manifest.Contracts)
}

// ContractAliases returns the registered aliases in sorted order.
func (p *Package) ContractAliases() []string {
	return slices.Sorted(maps.Keys(p.manifest.Contracts))
}

// ContractNames returns the contract names in alias order.
// Two aliases bound to the same contract yield the name twice.
func (p *Package) ContractNames() []string {
	names := make([]string, 0, len(p.manifest.Contracts))
	for _, alias := range p.ContractAliases() {
		names = append(names, p.manifest.Contracts[alias])
	}
	return names
}

// Contract returns the contract name registered under alias.
func (p *Package) Contract(alias string) (string, bool) {
	name, ok := p.manifest.Contracts[alias]
	return name, ok
}

// HasContract reports whether alias is bound to a non-empty contract name.
func (p *Package) HasContract(alias string) bool {
	return p.manifest.Contracts[alias] != ""
}

// HasContracts reports whether any contract alias is registered.
func (p *Package) HasContracts() bool {
	return len(p.manifest.Contracts) > 0
}

// AddContract binds alias to name. Without a name, or with an empty one, the
// contract is aliased to itself.
//
// Unlike dependencies, the contracts mapping is not created on demand: a
// manifest loaded without one yields ErrMissingContractsContainer.
func (p *Package) AddContract(alias string, name ...string) error {
	if alias == "" {
		return domain.ErrInvalidContractAlias
	}
	if p.manifest.Contracts == nil {
		return zerr.With(domain.ErrMissingContractsContainer, "path", p.path)
	}

	target := alias
	if len(name) > 0 && name[0] != "" {
		target = name[0]
	}
	p.manifest.Contracts[alias] = target

	return nil
}

// UnsetContract removes alias from the registry. It is a no-op if alias is not registered.
func (p *Package) UnsetContract(alias string) {
	delete(p.manifest.Contracts, alias)
}

// SetContracts replaces the whole contract registry with a copy of contracts.
func (p *Package) SetContracts(contracts map[string]string) {
	p.manifest.Contracts = snapshot(contracts)
}

// Fingerprint returns a hash of the manifest as it would be written.
func (p *Package) Fingerprint() (uint64, error) {
	doc, err := p.manifest.Encode()
	if err != nil {
		return 0, err
	}
	return fingerprint(doc), nil
}

// Modified reports whether the manifest differs from what was last loaded or written.
func (p *Package) Modified() bool {
	current, err := p.Fingerprint()
	if err != nil {
		return true
	}
	return current != p.written
}

// Write persists the manifest to the bound path, replacing previous content.
// Store errors are returned unchanged.
func (p *Package) Write() error {
	doc, err := p.manifest.Encode()
	if err != nil {
		return zerr.With(err, "path", p.path)
	}

	if err := p.store.Write(p.path, doc); err != nil {
		return err
	}

	p.written = fingerprint(doc)
	p.logger.Info("Successfully written " + p.path)

	return nil
}

func fingerprint(doc domain.Document) uint64 {
	// Map keys are sorted by encoding/json, which keeps the hash stable.
	data, err := json.Marshal(doc)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(data)
}

func snapshot(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return maps.Clone(m)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
