package tui

import (
	"github.com/rgehrsitz/dpgo/internal/compare"
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Scene represents the explorer's screens
type Scene int

const (
	ScenePlan Scene = iota
	SceneCompare
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case ScenePlan:
		return "Plan"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// SimulationCompleteMsg carries the result for one budget and strategy.
// Results for settings that are no longer current are dropped.
type SimulationCompleteMsg struct {
	Budget   decimal.Decimal
	Strategy domain.Strategy
	Result   *domain.SimulationResult
	Err      error
}

// ComparisonCompleteMsg carries a strategy comparison for one budget
type ComparisonCompleteMsg struct {
	Budget      decimal.Decimal
	Comparisons *compare.ComparisonSet
	Err         error
}
