package app

import (
	"context"

	"go.trai.ch/zerr"
	"go.trai.ch/zpkg/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// NetworkReport summarizes the state of the package on one network.
type NetworkReport struct {
	Network        string
	Path           string
	Exists         bool
	Version        string
	Frozen         bool
	VersionMatches bool
	Contracts      []string
	Unsatisfied    []string
	OtherKeys      []string
}

// NetworkStatus inspects the companion manifest of each network. Without
// networks the ones listed in the settings are used. Reports are returned and
// printed in the order of networks.
func (a *App) NetworkStatus(ctx context.Context, file string, networks []string) ([]NetworkReport, error) {
	settings, err := a.Settings()
	if err != nil {
		return nil, err
	}
	if len(networks) == 0 {
		networks = settings.Networks
	}
	if len(networks) == 0 {
		return nil, domain.ErrNoNetworks
	}
	for _, network := range networks {
		if err := domain.ValidateNetworkName(network); err != nil {
			return nil, err
		}
	}
	path := manifestPath(settings, file)

	reports := make([]NetworkReport, len(networks))
	g, ctx := errgroup.WithContext(ctx)

	for i, network := range networks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			// Descriptors are single-owner: every goroutine opens its own.
			pkg, err := a.opener.Open(path)
			if err != nil {
				return err
			}

			nd, err := pkg.NetworkDescriptor(network)
			if err != nil {
				return zerr.With(err, "network", network)
			}

			reports[i] = NetworkReport{
				Network:        network,
				Path:           nd.Path(),
				Exists:         nd.Exists(),
				Version:        nd.Version(),
				Frozen:         nd.IsFrozen(),
				VersionMatches: nd.HasMatchingVersion(),
				Contracts:      sortedKeys(nd.Contracts()),
				Unsatisfied:    nd.UnsatisfiedDependencies(),
				OtherKeys:      sortedKeys(nd.Manifest().Extra()),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := newReporter(a.out)
	for _, report := range reports {
		r.network(report)
	}

	return reports, nil
}
