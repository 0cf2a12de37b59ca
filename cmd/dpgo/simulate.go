package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/dpgo/internal/calculation"
	"github.com/rgehrsitz/dpgo/internal/config"
	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/rgehrsitz/dpgo/internal/output"
)

func simulateCmd(a *app) *cobra.Command {
	var (
		input      planInput
		format     string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "simulate [plan-file]",
		Short: "Simulate paying off every account with one monthly budget",
		Long: `Simulate the month-by-month payoff of several debts sharing one budget.

Examples:
  dpgo simulate plan.yaml
  dpgo simulate plan.yaml --budget 600 --strategy snowball --format csv
  dpgo simulate --account "Visa,4000,24.99" --account "Store,600,9.9" --budget 350
  dpgo simulate --from-ledger --budget 500 --format html --output report.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(output.AvailableFormatAliases(), ", "))
			}

			ctx := cmd.Context()
			plan, err := input.load(ctx, cmd, a, args)
			if err != nil {
				return err
			}

			result, err := a.runner(plan.MinimumRule()).Run(ctx, plan.Request())
			if err != nil {
				return err
			}
			slog.Debug("simulation complete", "strategy", result.Strategy, "months", int(result.TotalMonths))

			data, err := f.Format(result)
			if err != nil {
				return fmt.Errorf("failed to format %s output: %w", f.Name(), err)
			}
			if outputFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outputFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputFile, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputFile)
			return nil
		},
	}

	input.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatAliases(), ", ")+")")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to this file instead of stdout")
	return cmd
}

func estimateCmd() *cobra.Command {
	var balance, apr, payment float64

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the payoff of a single card with a fixed payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := money.FromFloat(balance)
			estimate := calculation.EstimatePayoff(b, money.FromFloat(apr), money.FromFloat(payment))

			out := cmd.OutOrStdout()
			if !estimate.Feasible {
				fmt.Fprintf(out, "A payment of %s never pays off %s at %s APR.\n",
					money.FormatCurrency(money.FromFloat(payment)), money.FormatCurrency(b), money.FormatPercentage(money.FromFloat(apr)))
				fmt.Fprintf(out, "Minimum payment this month: %s\n",
					money.FormatCurrency(calculation.MinimumPayment(b, money.FromFloat(apr))))
				return nil
			}
			fmt.Fprintf(out, "Paid off in:     %s\n", output.FormatDuration(estimate.Months))
			fmt.Fprintf(out, "Total interest:  %s\n", money.FormatCurrency(estimate.TotalInterest))
			fmt.Fprintf(out, "Total paid:      %s\n", money.FormatCurrency(b.Add(estimate.TotalInterest)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&balance, "balance", 0, "Current balance")
	cmd.Flags().Float64Var(&apr, "apr", 0, "Annual percentage rate, e.g. 19.99")
	cmd.Flags().Float64Var(&payment, "payment", 0, "Fixed monthly payment")
	_ = cmd.MarkFlagRequired("balance")
	_ = cmd.MarkFlagRequired("payment")
	return cmd
}

func minimumCmd(a *app) *cobra.Command {
	var input planInput

	cmd := &cobra.Command{
		Use:   "minimum [plan-file]",
		Short: "Show the minimum payment of each account and their total",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := input.load(cmd.Context(), cmd, a, args)
			if err != nil {
				return err
			}

			rule := plan.MinimumRule()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-24s %14s %8s %12s\n", "Account", "Balance", "APR", "Minimum")
			fmt.Fprintln(out, strings.Repeat("-", 61))
			for _, acct := range plan.DebtAccounts() {
				fmt.Fprintf(out, "%-24s %14s %8s %12s\n",
					truncate(acct.Label(), 24),
					money.FormatCurrency(acct.InitialBalance),
					money.FormatPercentage(acct.APR),
					money.FormatCurrency(calculation.MinimumPaymentWithRule(acct.InitialBalance, acct.APR, rule)))
			}
			fmt.Fprintln(out, strings.Repeat("-", 61))
			total := money.RoundCents(calculation.TotalMinimumPayments(plan.DebtAccounts(), rule))
			fmt.Fprintf(out, "%-24s %36s\n", "Total minimum", money.FormatCurrency(total))
			return nil
		},
	}

	input.register(cmd)
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan file %s is valid\n", args[0])
			return nil
		},
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
