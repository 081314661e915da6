package domain

import (
	"regexp"

	"go.trai.ch/zerr"
)

var validNetworkName = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// ValidateNetworkName fails with ErrInvalidNetworkName unless network consists
// only of letters, digits, underscores and dashes.
func ValidateNetworkName(network string) error {
	if !validNetworkName.MatchString(network) {
		return zerr.With(ErrInvalidNetworkName, "network", network)
	}
	return nil
}

// LogFormat selects how log records are rendered.
type LogFormat string

const (
	// LogFormatPretty renders human-readable, colored log lines.
	LogFormatPretty LogFormat = "pretty"
	// LogFormatJSON renders one JSON object per log record.
	LogFormatJSON LogFormat = "json"
)

// Settings holds the resolved project settings.
type Settings struct {
	// Root is the directory the settings were discovered in.
	Root string

	// ManifestPath is the package manifest path, relative to Root unless absolute.
	ManifestPath string

	// Networks lists the networks inspected by default.
	Networks []string

	// LogFormat is the requested log rendering.
	LogFormat LogFormat
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings(root string) Settings {
	return Settings{
		Root:         root,
		ManifestPath: DefaultManifestFileName,
		LogFormat:    LogFormatPretty,
	}
}
