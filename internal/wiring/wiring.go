// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/zpkg/internal/adapters/config"
	_ "go.trai.ch/zpkg/internal/adapters/docstore"
	_ "go.trai.ch/zpkg/internal/adapters/logger"
	_ "go.trai.ch/zpkg/internal/adapters/versiongate"
	_ "go.trai.ch/zpkg/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/zpkg/internal/app"
	_ "go.trai.ch/zpkg/internal/engine/descriptor"
)
