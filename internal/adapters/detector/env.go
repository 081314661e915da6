// Package detector inspects the terminal environment to pick log rendering.
package detector

import (
	"io"
	"os"

	"go.trai.ch/zerr"
	"go.trai.ch/zpkg/internal/core/domain"
	"golang.org/x/term"
)

type fileDescriptor interface {
	Fd() uintptr
}

// IsCI reports whether the CI environment variable marks a CI run.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// IsInteractive reports whether w is a terminal outside of CI.
func IsInteractive(w io.Writer) bool {
	f, ok := w.(fileDescriptor)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) && !IsCI() //nolint:gosec // fd fits in int
}

// ResolveLogFormat applies the user's flag over the configured format.
// flag should be one of "auto", "pretty", "json", or empty.
func ResolveLogFormat(flag string, configured domain.LogFormat) (domain.LogFormat, error) {
	switch flag {
	case "auto", "":
		if configured == "" {
			return domain.LogFormatPretty, nil
		}
		return configured, nil
	case string(domain.LogFormatPretty):
		return domain.LogFormatPretty, nil
	case string(domain.LogFormatJSON):
		return domain.LogFormatJSON, nil
	default:
		return "", zerr.With(domain.ErrInvalidLogFormat, "format", flag)
	}
}
