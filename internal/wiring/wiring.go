// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lcr/internal/adapters/config"
	_ "go.trai.ch/lcr/internal/adapters/definitions"
	_ "go.trai.ch/lcr/internal/adapters/docker"
	_ "go.trai.ch/lcr/internal/adapters/dockerfile"
	_ "go.trai.ch/lcr/internal/adapters/history"
	_ "go.trai.ch/lcr/internal/adapters/knowledge"
	_ "go.trai.ch/lcr/internal/adapters/logger"
	_ "go.trai.ch/lcr/internal/adapters/pyast"
	_ "go.trai.ch/lcr/internal/adapters/pypi"
	// Register app and engine nodes.
	_ "go.trai.ch/lcr/internal/app"
	_ "go.trai.ch/lcr/internal/engine/resolver"
	_ "go.trai.ch/lcr/internal/engine/runplan"
	_ "go.trai.ch/lcr/internal/engine/selector"
	_ "go.trai.ch/lcr/internal/engine/synth"
	_ "go.trai.ch/lcr/internal/engine/txn"
)
