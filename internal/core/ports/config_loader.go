package ports

import "go.trai.ch/zpkg/internal/core/domain"

// ConfigLoader defines the interface for loading project settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the settings file by walking up from cwd and returns the resolved settings.
	// When no settings file exists it returns domain.DefaultSettings(cwd).
	Load(cwd string) (domain.Settings, error)
}
