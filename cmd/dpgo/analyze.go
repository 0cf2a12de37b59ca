package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/dpgo/internal/breakeven"
	"github.com/rgehrsitz/dpgo/internal/calculation"
	"github.com/rgehrsitz/dpgo/internal/compare"
	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/money"
)

func compareCmd(a *app) *cobra.Command {
	var (
		input  planInput
		format string
	)

	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare payoff strategies at the same budget",
		Long: `Compare the plan's strategy against the other payoff strategies.

Examples:
  dpgo compare plan.yaml
  dpgo compare plan.yaml --budget 500 --format csv
  dpgo compare --from-ledger --budget 400 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			plan, err := input.load(ctx, cmd, a, args)
			if err != nil {
				return err
			}

			req := plan.Request()
			engine := compare.NewCompareEngine(a.runner(plan.MinimumRule()))
			set, err := engine.Compare(ctx, req, compare.CompareOptions{
				BaseStrategy: req.Strategy,
				Alternatives: compare.DefaultAlternatives(req.Strategy, req.CustomOrder),
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			if len(args) > 0 {
				set.PlanPath = args[0]
			}

			var out string
			switch strings.ToLower(format) {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
			case "table", "console", "":
				out = (&compare.TableFormatter{}).Format(set)
			default:
				return fmt.Errorf("unknown output format %q (valid: table, csv, json)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to format %s: %w", format, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	input.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	return cmd
}

func solveCmd(a *app) *cobra.Command {
	var (
		input         planInput
		targetMonths  int
		maxInterest   float64
		allStrategies bool
		format        string
	)

	cmd := &cobra.Command{
		Use:   "solve [plan-file]",
		Short: "Find the smallest budget that meets a payoff goal",
		Long: `Binary-search the smallest monthly budget that pays everything off within
a number of months, or keeps total interest under a limit.

Examples:
  dpgo solve plan.yaml --target-months 24
  dpgo solve plan.yaml --max-interest 1500 --all-strategies
  dpgo solve --account "Visa,4000,24.99" --target-months 18 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			plan, err := input.load(ctx, cmd, a, args)
			if err != nil {
				return err
			}

			req := breakeven.SolverRequest{Request: plan.Request(), Goal: breakeven.GoalTargetMonths}
			switch {
			case cmd.Flags().Changed("max-interest"):
				req.Goal = breakeven.GoalMaxInterest
				req.MaxInterest = money.FromFloat(maxInterest)
			case targetMonths > 0:
				req.TargetMonths = targetMonths
			default:
				req.TargetMonths = plan.TargetMonths
			}
			if req.Goal == breakeven.GoalTargetMonths && req.TargetMonths <= 0 {
				return fmt.Errorf("--target-months or a plan target_months is required")
			}

			opts := breakeven.DefaultSolverOptions()
			opts.MinimumRule = plan.MinimumRule()
			solver := breakeven.NewSolver(a.runner(opts.MinimumRule), opts)

			var result any
			if allStrategies {
				strategies := []domain.Strategy{domain.Avalanche, domain.Snowball}
				if len(plan.CustomOrder) > 0 {
					strategies = append(strategies, domain.Custom)
				}
				result, err = solver.SolveStrategies(ctx, req, strategies)
			} else {
				result, err = solver.Solve(ctx, req)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "json":
				text, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
			case "table", "console", "":
				tf := &breakeven.TableFormatter{}
				switch r := result.(type) {
				case *breakeven.StrategySolveResult:
					fmt.Fprint(out, tf.FormatStrategies(r))
				case *breakeven.SolverResult:
					fmt.Fprint(out, tf.Format(r))
				}
			default:
				return fmt.Errorf("unknown output format %q (valid: table, json)", format)
			}
			return nil
		},
	}

	input.register(cmd)
	cmd.Flags().IntVarP(&targetMonths, "target-months", "t", 0,
		fmt.Sprintf("Debt-free within this many months (1-%d)", calculation.DefaultMaxMonths))
	cmd.Flags().Float64Var(&maxInterest, "max-interest", 0, "Keep total interest at or below this amount")
	cmd.Flags().BoolVar(&allStrategies, "all-strategies", false, "Solve under every strategy and pick the cheapest budget")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	return cmd
}
