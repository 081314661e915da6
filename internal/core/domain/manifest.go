package domain

import "maps"

// Manifest keys as persisted in the package manifest.
const (
	KeySchemaVersion = "zosversion"
	KeyName          = "name"
	KeyVersion       = "version"
	KeyLib           = "lib"
	KeyPublish       = "publish"
	KeyDependencies  = "dependencies"
	KeyContracts     = "contracts"
)

// Manifest is the typed view of a package manifest document.
// Optional fields are nil when absent from the document.
type Manifest struct {
	SchemaVersion string
	Name          *string
	Version       *string
	Lib           *bool
	Publish       *bool

	// Dependencies maps a dependency name to its version constraint.
	Dependencies map[string]string

	// Contracts maps a contract alias to the contract name it stands for.
	Contracts map[string]string

	extra Document
}

// NewManifest returns a fresh manifest stamped with the current schema version.
// Both mappings are initialized so that mutators never find them missing.
func NewManifest() *Manifest {
	return &Manifest{
		SchemaVersion: SchemaVersion,
		Dependencies:  make(map[string]string),
		Contracts:     make(map[string]string),
	}
}

// DecodeManifest builds a Manifest from a stored document.
// Keys other than the known manifest keys are retained untouched.
//
//nolint:cyclop // one case per manifest key
func DecodeManifest(doc Document) (*Manifest, error) {
	m := &Manifest{extra: make(Document)}

	for key, raw := range doc {
		var err error
		switch key {
		case KeySchemaVersion:
			err = decodeField(key, raw, &m.SchemaVersion)
		case KeyName:
			err = decodeField(key, raw, &m.Name)
		case KeyVersion:
			err = decodeField(key, raw, &m.Version)
		case KeyLib:
			err = decodeField(key, raw, &m.Lib)
		case KeyPublish:
			err = decodeField(key, raw, &m.Publish)
		case KeyDependencies:
			err = decodeField(key, raw, &m.Dependencies)
		case KeyContracts:
			err = decodeField(key, raw, &m.Contracts)
		default:
			m.extra[key] = raw
		}
		if err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Encode renders the manifest back into a document. Unknown keys captured by
// DecodeManifest are written back as they were read.
func (m *Manifest) Encode() (Document, error) {
	doc := m.extra.Clone()
	if doc == nil {
		doc = make(Document)
	}

	if err := encodeField(doc, KeySchemaVersion, m.SchemaVersion); err != nil {
		return nil, err
	}
	if err := encodeOptional(doc, KeyName, m.Name); err != nil {
		return nil, err
	}
	if err := encodeOptional(doc, KeyVersion, m.Version); err != nil {
		return nil, err
	}
	if err := encodeOptional(doc, KeyLib, m.Lib); err != nil {
		return nil, err
	}
	if err := encodeOptional(doc, KeyPublish, m.Publish); err != nil {
		return nil, err
	}
	if err := encodeMap(doc, KeyDependencies, m.Dependencies); err != nil {
		return nil, err
	}
	if err := encodeMap(doc, KeyContracts, m.Contracts); err != nil {
		return nil, err
	}

	return doc, nil
}

// Extra returns a copy of the keys the manifest does not model.
func (m *Manifest) Extra() Document {
	return m.extra.Clone()
}

// Clone returns a deep copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	c := *m
	c.Name = clonePtr(m.Name)
	c.Version = clonePtr(m.Version)
	c.Lib = clonePtr(m.Lib)
	c.Publish = clonePtr(m.Publish)
	c.Dependencies = maps.Clone(m.Dependencies)
	c.Contracts = maps.Clone(m.Contracts)
	c.extra = m.extra.Clone()
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
