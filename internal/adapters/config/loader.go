// Package config provides the settings loader for zpkg.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"go.trai.ch/zpkg/internal/core/domain"
	"go.trai.ch/zpkg/internal/core/ports"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load discovers zpkg.yaml by walking up from cwd.
// Without a settings file the defaults rooted at cwd are returned.
// Relative paths are resolved against the process working directory first.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrConfigRead.Error()), "path", cwd)
	}

	settingsPath, found, err := findSettings(cwd)
	if err != nil {
		return domain.Settings{}, err
	}
	if !found {
		return domain.DefaultSettings(cwd), nil
	}

	var file SettingsFile
	if err := readAndUnmarshalYAML(settingsPath, &file); err != nil {
		return domain.Settings{}, zerr.With(err, "path", settingsPath)
	}

	settings := domain.DefaultSettings(filepath.Dir(settingsPath))

	if file.Manifest != "" {
		settings.ManifestPath = file.Manifest
	}

	networks, err := l.normalizeNetworks(file.Networks)
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", settingsPath)
	}
	settings.Networks = networks

	switch domain.LogFormat(file.Log.Format) {
	case "":
	case domain.LogFormatPretty, domain.LogFormatJSON:
		settings.LogFormat = domain.LogFormat(file.Log.Format)
	default:
		return domain.Settings{}, zerr.With(zerr.With(domain.ErrInvalidLogFormat, "format", file.Log.Format), "path", settingsPath)
	}

	return settings, nil
}

// findSettings returns the path of the nearest settings file at or above cwd.
func findSettings(cwd string) (string, bool, error) {
	currentDir := cwd

	for {
		candidate := filepath.Join(currentDir, domain.SettingsFileName)
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", false, zerr.With(zerr.Wrap(err, domain.ErrConfigRead.Error()), "path", candidate)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false, nil
		}
		currentDir = parentDir
	}
}

func (l *Loader) normalizeNetworks(networks []string) ([]string, error) {
	seen := make(map[string]bool, len(networks))
	out := make([]string, 0, len(networks))

	for _, network := range networks {
		if err := domain.ValidateNetworkName(network); err != nil {
			return nil, err
		}
		if seen[network] {
			l.Logger.Warn("network '" + network + "' is listed more than once in " + domain.SettingsFileName)
			continue
		}
		seen[network] = true
		out = append(out, network)
	}

	return out, nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by findSettings
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigRead.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParse.Error())
	}

	return nil
}
