package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/dpgo/internal/tui"
)

func exploreCmd(a *app) *cobra.Command {
	var input planInput

	cmd := &cobra.Command{
		Use:   "explore [plan-file]",
		Short: "Explore budgets and strategies interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := input.load(cmd.Context(), cmd, a, args)
			if err != nil {
				return err
			}

			model := tui.NewModel(plan, a.runner(plan.MinimumRule()))
			p := tea.NewProgram(
				model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running explorer: %w", err)
			}
			return nil
		},
	}

	input.register(cmd)
	return cmd
}
