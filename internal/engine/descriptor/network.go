package descriptor

import (
	"maps"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
	"go.trai.ch/zpkg/internal/core/domain"
)

var extensionSuffix = regexp.MustCompile(regexp.QuoteMeta(domain.ManifestExtension) + `\s*$`)

// NetworkPath derives the network-scoped companion path of manifestPath by
// replacing its trailing extension, so "pkg.json" becomes "pkg.<network>.json".
func NetworkPath(manifestPath, network string) (string, error) {
	if strings.TrimSpace(network) == "" {
		return "", zerr.With(domain.ErrPathDerivation, "path", manifestPath)
	}

	derived := extensionSuffix.ReplaceAllLiteralString(manifestPath, "."+network+domain.ManifestExtension)
	if derived == manifestPath {
		return "", zerr.With(domain.ErrPathDerivation, "path", manifestPath)
	}

	return derived, nil
}

// NetworkDescriptor opens the companion descriptor holding this package's
// state on network. The companion shares the package's store, gate and logger.
func (p *Package) NetworkDescriptor(network string) (*Network, error) {
	path, err := NetworkPath(p.path, network)
	if err != nil {
		return nil, err
	}
	return openNetwork(p, network, path)
}

// Network is the descriptor of a network-scoped companion manifest.
type Network struct {
	parent   *Package
	network  string
	path     string
	manifest *domain.NetworkManifest
}

func openNetwork(parent *Package, network, path string) (*Network, error) {
	doc, err := parent.store.LoadIfExists(path)
	if err != nil {
		return nil, err
	}

	manifest := domain.NewNetworkManifest()
	if doc != nil {
		manifest, err = domain.DecodeNetworkManifest(doc)
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
	}

	if err := parent.gate.Check(manifest.SchemaVersion, path); err != nil {
		return nil, err
	}

	return &Network{
		parent:   parent,
		network:  network,
		path:     path,
		manifest: manifest,
	}, nil
}

// Network returns the network identifier.
func (n *Network) Network() string {
	return n.network
}

// Path returns the path the descriptor is bound to.
func (n *Network) Path() string {
	return n.path
}

// Parent returns the package descriptor the network descriptor was derived from.
func (n *Network) Parent() *Package {
	return n.parent
}

// Exists reports whether the bound path currently holds a document.
func (n *Network) Exists() bool {
	return n.parent.store.Exists(n.path)
}

// SchemaVersion returns the declared manifest format version.
func (n *Network) SchemaVersion() string {
	return n.manifest.SchemaVersion
}

// Manifest returns a snapshot of the network manifest.
func (n *Network) Manifest() *domain.NetworkManifest {
	return n.manifest.Clone()
}

// Version returns the package version deployed on the network, or "" when unset.
func (n *Network) Version() string {
	return deref(n.manifest.Version)
}

// SetVersion records the package version deployed on the network.
func (n *Network) SetVersion(version string) {
	n.manifest.Version = &version
}

// IsFrozen reports whether the deployed release is frozen.
func (n *Network) IsFrozen() bool {
	return deref(n.manifest.Frozen)
}

// SetFrozen sets the frozen flag.
func (n *Network) SetFrozen(frozen bool) {
	n.manifest.Frozen = &frozen
}

// HasMatchingVersion reports whether the deployed version is the parent package's current version.
func (n *Network) HasMatchingVersion() bool {
	return n.parent.IsCurrentVersion(n.Version())
}

// Contracts returns a snapshot of the deployed contracts, keyed by alias.
func (n *Network) Contracts() map[string]domain.DeployedContract {
	if n.manifest.Contracts == nil {
		return map[string]domain.DeployedContract{}
	}
	return maps.Clone(n.manifest.Contracts)
}

// Contract returns the deployment recorded for alias.
func (n *Network) Contract(alias string) (domain.DeployedContract, bool) {
	c, ok := n.manifest.Contracts[alias]
	return c, ok
}

// HasContract reports whether a deployment with an address is recorded for alias.
func (n *Network) HasContract(alias string) bool {
	return n.manifest.Contracts[alias].Address != ""
}

// SetContract records the deployment of alias.
func (n *Network) SetContract(alias string, contract domain.DeployedContract) {
	if n.manifest.Contracts == nil {
		n.manifest.Contracts = make(map[string]domain.DeployedContract)
	}
	n.manifest.Contracts[alias] = contract
}

// UnsetContract removes the deployment recorded for alias.
func (n *Network) UnsetContract(alias string) {
	delete(n.manifest.Contracts, alias)
}

// Dependencies returns a snapshot of the linked dependencies, keyed by name.
func (n *Network) Dependencies() map[string]domain.DeployedDependency {
	if n.manifest.Dependencies == nil {
		return map[string]domain.DeployedDependency{}
	}
	return maps.Clone(n.manifest.Dependencies)
}

// DependencyVersion returns the version linked for name on the network.
func (n *Network) DependencyVersion(name string) (string, bool) {
	dep, ok := n.manifest.Dependencies[name]
	return dep.Version, ok
}

// SetDependency records the dependency release linked on the network.
func (n *Network) SetDependency(name string, dep domain.DeployedDependency) {
	if n.manifest.Dependencies == nil {
		n.manifest.Dependencies = make(map[string]domain.DeployedDependency)
	}
	n.manifest.Dependencies[name] = dep
}

// UnsetDependency removes the dependency linked under name.
func (n *Network) UnsetDependency(name string) {
	delete(n.manifest.Dependencies, name)
}

// DependencySatisfiesRequirement reports whether the version linked for name
// satisfies the constraint the parent package declares for it.
func (n *Network) DependencySatisfiesRequirement(name string) bool {
	version, ok := n.DependencyVersion(name)
	if !ok {
		return false
	}
	return n.parent.DependencyMatches(name, version)
}

// UnsatisfiedDependencies returns, in sorted order, the parent's dependencies
// that are either not linked on the network or linked at a version outside
// the declared constraint.
func (n *Network) UnsatisfiedDependencies() []string {
	var out []string
	for _, name := range n.parent.DependencyNames() {
		if !n.DependencySatisfiesRequirement(name) {
			out = append(out, name)
		}
	}
	return out
}

// Write persists the network manifest to the bound path.
func (n *Network) Write() error {
	doc, err := n.manifest.Encode()
	if err != nil {
		return zerr.With(err, "path", n.path)
	}

	if err := n.parent.store.Write(n.path, doc); err != nil {
		return err
	}

	n.parent.logger.Info("Successfully written " + n.path)
	return nil
}
