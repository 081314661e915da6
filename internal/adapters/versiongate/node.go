package versiongate

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zpkg/internal/core/domain"
	"go.trai.ch/zpkg/internal/core/ports"
)

// NodeID is the unique identifier for the version gate Graft node.
const NodeID graft.ID = "adapter.version_gate"

func init() {
	graft.Register(graft.Node[ports.VersionGate]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VersionGate, error) {
			return New(domain.SchemaVersion)
		},
	})
}
