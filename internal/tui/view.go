package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/dpgo/internal/compare"
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/output"
	"github.com/rgehrsitz/dpgo/internal/tui/components"
)

// View renders the current state of the explorer
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case ScenePlan:
		content = m.renderPlan()
	case SceneCompare:
		content = m.renderCompare()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		StatusBarStyle.Render(m.help.View(m.keys)),
	))
}

// renderTitleBar renders the title and the current settings
func (m Model) renderTitleBar() string {
	name := m.plan.Name
	if name == "" {
		name = "Debt Payoff Explorer"
	}
	settings := fmt.Sprintf("%s / %s at %s a month (minimums %s)",
		m.currentScene, m.strategy, FormatCurrency(m.budget), FormatCurrency(m.minimum))
	if m.loading {
		settings += " …"
	}
	return lipgloss.JoinVertical(lipgloss.Left, TitleStyle.Render(name), SubtitleStyle.Render(settings))
}

func (m Model) renderError() string {
	if m.err == nil {
		return ""
	}
	return ErrorStyle.Render("Error: " + m.err.Error())
}

// renderPlan renders the summary cards, the account table and the chart
func (m Model) renderPlan() string {
	if m.result == nil {
		if m.err != nil {
			return m.renderError()
		}
		return BorderStyle.Render("Simulating...")
	}

	sections := []string{}
	if m.err != nil {
		sections = append(sections, m.renderError())
	}
	sections = append(sections, components.MetricGrid(m.metricCards(), 4), m.accounts.View())

	if m.result.Warning != "" {
		sections = append(sections, WarningStyle.Render("Warning: "+m.result.Warning))
	}
	if points := remainingBalances(m.result); len(points) > 0 {
		chart := components.NewBalanceChart("Remaining balance", points).WithSize(max(10, m.width-8), 6)
		sections = append(sections, BorderStyle.Render(chart.Render()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) metricCards() []*components.MetricCard {
	r := m.result
	months := components.NewMetricCard("Debt-free in", output.FormatDuration(r.TotalMonths))
	interest := components.NewMetricCard("Total interest", FormatCurrency(r.TotalInterest))

	if p := m.previous; p != nil {
		if diff := r.TotalInterest.Sub(p.TotalInterest); !diff.IsZero() {
			interest.WithTrend(diff.IsNegative(), FormatCurrency(diff.Abs()))
		}
		if r.TotalMonths.Known() && p.TotalMonths.Known() && r.TotalMonths != p.TotalMonths {
			diff := int(r.TotalMonths) - int(p.TotalMonths)
			months.WithTrend(diff < 0, fmt.Sprintf("%d months", abs(diff)))
		}
	}

	return []*components.MetricCard{
		components.NewMetricCard("Total debt", FormatCurrency(r.TotalDebt())),
		months,
		interest,
		components.NewMetricCard("Total paid", FormatCurrency(r.TotalPaid)),
	}
}

// renderCompare renders the strategy comparison at the current budget
func (m Model) renderCompare() string {
	if m.comparison == nil {
		if m.err != nil {
			return m.renderError()
		}
		return BorderStyle.Render("Comparing strategies...")
	}

	set := m.comparison
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-12s %18s %14s %14s\n", "Strategy", "Debt-free in", "Interest", "Total paid")
	for _, r := range set.All() {
		marker := " "
		if r.Strategy == set.Best {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s%-11s %18s %14s %14s\n", marker, r.Strategy,
			output.FormatDuration(r.TotalMonths), FormatCurrency(r.TotalInterest), FormatCurrency(r.TotalPaid))
	}
	sb.WriteString("\n")
	sb.WriteString(InfoStyle.Render((&compare.TableFormatter{}).FormatCompact(set)))
	for _, rec := range set.Recommendations {
		sb.WriteString("\n• " + rec)
	}
	return BorderStyle.Render(sb.String())
}

// renderHelp renders the key reference
func (m Model) renderHelp() string {
	helpText := `Debt Payoff Explorer

Adjust the monthly budget and watch the payoff plan update.
The avalanche strategy pays the highest APR first, the snowball
strategy the smallest balance first.

  +/-              budget ±$10
  shift+↑/shift+↓  budget ±$100  (also ] and [)
  s                cycle strategy
  c                toggle the strategy comparison
  ?                toggle this help
  q/Ctrl+C         quit`
	return BorderStyle.Render(helpText)
}

// remainingBalances sums each month's ending balances.
func remainingBalances(result *domain.SimulationResult) []float64 {
	points := make([]float64, 0, len(result.Schedule))
	for _, month := range result.Schedule {
		total := 0.0
		for _, b := range month.Balances {
			total += b.InexactFloat64()
		}
		points = append(points, total)
	}
	return points
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
