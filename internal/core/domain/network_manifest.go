package domain

import "maps"

// Network manifest keys as persisted in a network-scoped companion file.
const (
	KeyFrozen = "frozen"
)

// DeployedContract records a contract instance deployed on a network.
type DeployedContract struct {
	Address      string `json:"address"`
	BytecodeHash string `json:"bytecodeHash,omitempty"`
}

// DeployedDependency records the dependency release linked on a network.
type DeployedDependency struct {
	Package string `json:"package,omitempty"`
	Version string `json:"version"`
}

// NetworkManifest is the typed view of a network-scoped companion document.
type NetworkManifest struct {
	SchemaVersion string
	Version       *string
	Frozen        *bool
	Contracts     map[string]DeployedContract
	Dependencies  map[string]DeployedDependency

	extra Document
}

// NewNetworkManifest returns a fresh network manifest stamped with the current schema version.
func NewNetworkManifest() *NetworkManifest {
	return &NetworkManifest{
		SchemaVersion: SchemaVersion,
		Contracts:     make(map[string]DeployedContract),
		Dependencies:  make(map[string]DeployedDependency),
	}
}

// DecodeNetworkManifest builds a NetworkManifest from a stored document.
func DecodeNetworkManifest(doc Document) (*NetworkManifest, error) {
	m := &NetworkManifest{extra: make(Document)}

	for key, raw := range doc {
		var err error
		switch key {
		case KeySchemaVersion:
			err = decodeField(key, raw, &m.SchemaVersion)
		case KeyVersion:
			err = decodeField(key, raw, &m.Version)
		case KeyFrozen:
			err = decodeField(key, raw, &m.Frozen)
		case KeyContracts:
			err = decodeField(key, raw, &m.Contracts)
		case KeyDependencies:
			err = decodeField(key, raw, &m.Dependencies)
		default:
			m.extra[key] = raw
		}
		if err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Encode renders the network manifest back into a document.
func (m *NetworkManifest) Encode() (Document, error) {
	doc := m.extra.Clone()
	if doc == nil {
		doc = make(Document)
	}

	if err := encodeField(doc, KeySchemaVersion, m.SchemaVersion); err != nil {
		return nil, err
	}
	if err := encodeOptional(doc, KeyVersion, m.Version); err != nil {
		return nil, err
	}
	if err := encodeOptional(doc, KeyFrozen, m.Frozen); err != nil {
		return nil, err
	}
	if err := encodeMap(doc, KeyContracts, m.Contracts); err != nil {
		return nil, err
	}
	if err := encodeMap(doc, KeyDependencies, m.Dependencies); err != nil {
		return nil, err
	}

	return doc, nil
}

// Extra returns a copy of the keys the network manifest does not model.
func (m *NetworkManifest) Extra() Document {
	return m.extra.Clone()
}

// Clone returns a deep copy of the network manifest.
func (m *NetworkManifest) Clone() *NetworkManifest {
	c := *m
	c.Version = clonePtr(m.Version)
	c.Frozen = clonePtr(m.Frozen)
	c.Contracts = maps.Clone(m.Contracts)
	c.Dependencies = maps.Clone(m.Dependencies)
	c.extra = m.extra.Clone()
	return &c
}

func encodeOptional[T any](doc Document, key string, v *T) error {
	if v == nil {
		delete(doc, key)
		return nil
	}
	return encodeField(doc, key, v)
}

func encodeMap[K comparable, V any](doc Document, key string, v map[K]V) error {
	if v == nil {
		delete(doc, key)
		return nil
	}
	return encodeField(doc, key, v)
}
