package descriptor

import "go.trai.ch/zpkg/internal/core/ports"

// Opener opens package descriptors against a fixed set of collaborators.
type Opener struct {
	store  ports.DocumentStore
	gate   ports.VersionGate
	logger ports.Logger
}

// NewOpener creates a new Opener.
func NewOpener(store ports.DocumentStore, gate ports.VersionGate, logger ports.Logger) *Opener {
	return &Opener{
		store:  store,
		gate:   gate,
		logger: logger,
	}
}

// Open opens the package descriptor at path. See Open.
func (o *Opener) Open(path string) (*Package, error) {
	return Open(o.store, o.gate, o.logger, path)
}
