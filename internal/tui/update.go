package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/output"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case SimulationCompleteMsg:
		if !msg.Budget.Equal(m.budget) || msg.Strategy != m.strategy {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.previous = m.result
			m.result = msg.Result
			m.accounts.SetRows(accountRows(msg.Result))
		}
		return m, nil

	case ComparisonCompleteMsg:
		if !msg.Budget.Equal(m.budget) {
			return m, nil
		}
		if msg.Err != nil {
			m.err = msg.Err
			m.comparison = nil
		} else {
			m.comparison = msg.Comparisons
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.currentScene == SceneHelp {
			m.currentScene = m.previousScene
		} else {
			m.previousScene = m.currentScene
			m.currentScene = SceneHelp
		}
		m.help.ShowAll = m.currentScene == SceneHelp
		return m, nil

	case key.Matches(msg, m.keys.Increase):
		return m.adjustBudget(smallStep)

	case key.Matches(msg, m.keys.Decrease):
		return m.adjustBudget(smallStep.Neg())

	case key.Matches(msg, m.keys.IncreaseLarge):
		return m.adjustBudget(largeStep)

	case key.Matches(msg, m.keys.DecreaseLarge):
		return m.adjustBudget(largeStep.Neg())

	case key.Matches(msg, m.keys.Strategy):
		m.strategy = m.nextStrategy()
		cmd := m.refresh()
		return m, cmd

	case key.Matches(msg, m.keys.Compare):
		if m.currentScene == SceneCompare {
			m.currentScene = ScenePlan
			return m, nil
		}
		m.previousScene = m.currentScene
		m.currentScene = SceneCompare
		m.comparison = nil
		return m, m.compareCmd()
	}

	return m, nil
}

// adjustBudget moves the budget by delta, never below zero, and reruns.
func (m Model) adjustBudget(delta decimal.Decimal) (tea.Model, tea.Cmd) {
	budget := m.budget.Add(delta)
	if budget.IsNegative() {
		budget = decimal.Zero
	}
	if budget.Equal(m.budget) {
		return m, nil
	}
	m.budget = budget
	cmd := m.refresh()
	return m, cmd
}

// refresh reruns the simulation and, on the compare scene, the comparison.
func (m *Model) refresh() tea.Cmd {
	m.loading = true
	if m.currentScene == SceneCompare {
		m.comparison = nil
		return tea.Batch(m.simulateCmd(), m.compareCmd())
	}
	return m.simulateCmd()
}

func accountRows(result *domain.SimulationResult) []table.Row {
	rows := []table.Row{}
	for _, a := range result.InPaymentOrder() {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", a.PaymentOrder),
			a.Label(),
			output.FormatCurrency(a.InitialBalance),
			output.FormatPercentage(a.APR),
			output.FormatDuration(a.MonthsToPayoff),
			output.FormatCurrency(a.TotalInterest),
		})
	}
	return rows
}
