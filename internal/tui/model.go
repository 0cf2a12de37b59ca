// Package tui implements the interactive payoff explorer.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/dpgo/internal/calculation"
	"github.com/rgehrsitz/dpgo/internal/compare"
	"github.com/rgehrsitz/dpgo/internal/domain"
)

var (
	smallStep = decimal.NewFromInt(10)
	largeStep = decimal.NewFromInt(100)
)

// Model represents the entire explorer state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Plan and engines
	plan    *domain.Plan
	runner  calculation.Runner
	compare *compare.CompareEngine

	// Current selections
	budget     decimal.Decimal
	strategy   domain.Strategy
	strategies []domain.Strategy
	minimum    decimal.Decimal

	// Latest results; previous is kept to show trends.
	result     *domain.SimulationResult
	previous   *domain.SimulationResult
	comparison *compare.ComparisonSet

	accounts table.Model
	keys     keyMap
	help     help.Model

	// err holds the latest simulation error, such as a budget below the
	// minimums. It is shown inline and cleared by the next good run.
	err     error
	loading bool
}

// NewModel creates an explorer over plan. runner is typically a simulator
// recording its schedule so the balance chart can be drawn.
func NewModel(plan *domain.Plan, runner calculation.Runner) Model {
	req := plan.Request()

	strategies := []domain.Strategy{domain.Avalanche, domain.Snowball}
	if len(plan.CustomOrder) > 0 {
		strategies = append(strategies, domain.Custom)
	}

	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Account", Width: 22},
		{Title: "Balance", Width: 12},
		{Title: "APR", Width: 8},
		{Title: "Payoff", Width: 18},
		{Title: "Interest", Width: 12},
	}

	return Model{
		currentScene: ScenePlan,
		width:        100,
		height:       30,
		plan:         plan,
		runner:       runner,
		compare:      compare.NewCompareEngine(runner),
		budget:       req.MonthlyBudget,
		strategy:     req.Strategy,
		strategies:   strategies,
		minimum:      calculation.TotalMinimumPayments(req.Accounts, plan.MinimumRule()),
		accounts:     table.New(table.WithColumns(columns), table.WithHeight(len(req.Accounts)+1)),
		keys:         defaultKeyMap(),
		help:         help.New(),
		loading:      true,
	}
}

// Init starts the first simulation (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return m.simulateCmd()
}

// Budget returns the budget currently explored.
func (m Model) Budget() decimal.Decimal { return m.budget }

// Strategy returns the strategy currently explored.
func (m Model) Strategy() domain.Strategy { return m.strategy }

// Scene returns the visible scene.
func (m Model) Scene() Scene { return m.currentScene }

// Result returns the latest simulation result.
func (m Model) Result() *domain.SimulationResult { return m.result }

func (m Model) request() domain.SimulationRequest {
	req := m.plan.Request()
	req.MonthlyBudget = m.budget
	req.Strategy = m.strategy
	return req
}

// simulateCmd returns a command that runs the current settings
func (m Model) simulateCmd() tea.Cmd {
	req := m.request()
	runner := m.runner
	return func() tea.Msg {
		result, err := runner.Run(context.Background(), req)
		return SimulationCompleteMsg{
			Budget:   req.MonthlyBudget,
			Strategy: req.Strategy,
			Result:   result,
			Err:      err,
		}
	}
}

// compareCmd returns a command that compares every strategy at the current
// budget
func (m Model) compareCmd() tea.Cmd {
	req := m.request()
	engine := m.compare
	alternatives := compare.DefaultAlternatives(req.Strategy, req.CustomOrder)
	return func() tea.Msg {
		set, err := engine.Compare(context.Background(), req, compare.CompareOptions{
			BaseStrategy: req.Strategy,
			Alternatives: alternatives,
		})
		return ComparisonCompleteMsg{Budget: req.MonthlyBudget, Comparisons: set, Err: err}
	}
}

func (m Model) nextStrategy() domain.Strategy {
	for i, s := range m.strategies {
		if s == m.strategy {
			return m.strategies[(i+1)%len(m.strategies)]
		}
	}
	return m.strategies[0]
}
