// Package versiongate checks manifest schema versions against the supported range.
package versiongate

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
	"go.trai.ch/zpkg/internal/core/domain"
	"go.trai.ch/zpkg/internal/core/ports"
)

var _ ports.VersionGate = (*Gate)(nil)

// Gate implements ports.VersionGate with a semver range.
type Gate struct {
	supported  string
	constraint *semver.Constraints
}

// New creates a Gate accepting every patch release of the supported
// major.minor schema version, e.g. "2.2" accepts "2.2" and "2.2.1" but not "2.3".
func New(supported string) (*Gate, error) {
	constraint, err := semver.NewConstraint("~" + supported)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid supported schema version"), "supported", supported)
	}
	return &Gate{
		supported:  supported,
		constraint: constraint,
	}, nil
}

// Check fails with domain.ErrSchemaVersionMismatch if declared is missing,
// malformed, or outside the supported range.
func (g *Gate) Check(declared, path string) error {
	if strings.TrimSpace(declared) == "" {
		return g.mismatch(declared, path, "schema version identifier not found")
	}

	v, err := semver.NewVersion(declared)
	if err != nil {
		return g.mismatch(declared, path, "schema version identifier is malformed")
	}

	if !g.constraint.Check(v) {
		return g.mismatch(declared, path, "schema version is not supported by this tool")
	}

	return nil
}

func (g *Gate) mismatch(declared, path, reason string) error {
	err := zerr.With(domain.ErrSchemaVersionMismatch, "path", path)
	err = zerr.With(err, "version", declared)
	err = zerr.With(err, "supported", g.supported)
	return zerr.With(err, "reason", reason)
}
