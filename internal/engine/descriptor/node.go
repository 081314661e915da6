package descriptor

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zpkg/internal/adapters/docstore"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/zpkg/internal/adapters/logger"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/zpkg/internal/adapters/versiongate" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/zpkg/internal/core/ports"
)

// NodeID is the unique identifier for the descriptor opener Graft node.
const NodeID graft.ID = "engine.descriptor"

func init() {
	graft.Register(graft.Node[*Opener]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			docstore.NodeID,
			versiongate.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Opener, error) {
			store, err := graft.Dep[ports.DocumentStore](ctx)
			if err != nil {
				return nil, err
			}

			gate, err := graft.Dep[ports.VersionGate](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewOpener(store, gate, log), nil
		},
	})
}
