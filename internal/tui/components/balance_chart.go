package components

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/dpgo/internal/tui/tuistyles"
)

var blocks = []rune(" ▁▂▃▄▅▆▇█")

// BalanceChart draws a column chart of the remaining balance per month.
// When there are more months than columns, each column shows the first
// month of its bucket.
type BalanceChart struct {
	Title  string
	Points []float64
	Width  int
	Height int
}

// NewBalanceChart creates a chart for the given points
func NewBalanceChart(title string, points []float64) *BalanceChart {
	return &BalanceChart{Title: title, Points: points, Width: 60, Height: 6}
}

// WithSize sets the chart dimensions
func (c *BalanceChart) WithSize(width, height int) *BalanceChart {
	c.Width = width
	c.Height = height
	return c
}

// Columns downsamples the points to at most Width values.
func (c *BalanceChart) Columns() []float64 {
	if c.Width <= 0 || len(c.Points) <= c.Width {
		return c.Points
	}
	cols := make([]float64, c.Width)
	for i := range cols {
		cols[i] = c.Points[i*len(c.Points)/c.Width]
	}
	return cols
}

// Render returns the chart, one text row per Height unit.
func (c *BalanceChart) Render() string {
	if len(c.Points) == 0 || c.Height <= 0 {
		return tuistyles.InfoStyle.Render("No schedule to chart")
	}

	cols := c.Columns()
	peak := 0.0
	for _, v := range cols {
		if v > peak {
			peak = v
		}
	}

	levels := len(blocks) - 1
	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(tuistyles.MetricLabelStyle.Render(c.Title))
		sb.WriteString("\n")
	}
	for row := c.Height - 1; row >= 0; row-- {
		line := make([]rune, len(cols))
		for i, v := range cols {
			eighths := 0
			if peak > 0 {
				eighths = int(v / peak * float64(c.Height*levels))
			}
			fill := eighths - row*levels
			switch {
			case fill >= levels:
				line[i] = blocks[levels]
			case fill <= 0:
				line[i] = blocks[0]
			default:
				line[i] = blocks[fill]
			}
		}
		sb.WriteString(tuistyles.ChartStyle.Render(string(line)))
		sb.WriteString("\n")
	}
	sb.WriteString(tuistyles.MetricLabelStyle.Render(fmt.Sprintf("month 1 … %d", len(c.Points))))
	return sb.String()
}
