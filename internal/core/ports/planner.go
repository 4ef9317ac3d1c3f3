package ports

import "go.trai.ch/lcr/internal/core/domain"

// RunPlanner prepares the container configuration for running a script.
//
//go:generate mockgen -source=planner.go -destination=mocks/mock_planner.go -package=mocks
type RunPlanner interface {
	Plan(rule domain.ImageRule, script string, opts domain.RunOptions) (domain.RunConfig, error)
}
