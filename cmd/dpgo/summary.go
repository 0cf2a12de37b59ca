package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/ledger"
	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/rgehrsitz/dpgo/internal/storage"
)

// ledgerSummary is the combined view printed by the summary command.
type ledgerSummary struct {
	Cards    ledger.CardSummary  `json:"cards"`
	Payments ledger.PaymentStats `json:"payments"`
	CashFlow ledger.CashFlow     `json:"cash_flow"`
	Upcoming []domain.Bill       `json:"upcoming_bills"`
}

func summaryCmd(a *app) *cobra.Command {
	var (
		days     int
		jsonOut  bool
		asOfDate string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize credit cards, payment habits and monthly cash flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if asOfDate != "" {
				t, err := parseDate(asOfDate)
				if err != nil {
					return err
				}
				now = t
			}

			return a.withStore(cmd, func(ctx context.Context, store storage.Store, out io.Writer) error {
				summary, err := buildSummary(ctx, store, now, days)
				if err != nil {
					return err
				}
				if jsonOut {
					data, err := json.MarshalIndent(summary, "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintln(out, string(data))
					return nil
				}
				printSummary(out, summary, days)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 14, "Show unpaid bills due within this many days")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the summary as JSON")
	cmd.Flags().StringVar(&asOfDate, "as-of", "", "Evaluate as of this date (YYYY-MM-DD)")
	return cmd
}

func buildSummary(ctx context.Context, store storage.Store, now time.Time, days int) (*ledgerSummary, error) {
	accounts, err := store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := store.ListTransactions(ctx, "")
	if err != nil {
		return nil, err
	}
	bills, err := store.ListBills(ctx)
	if err != nil {
		return nil, err
	}
	incomes, err := store.ListIncome(ctx)
	if err != nil {
		return nil, err
	}

	return &ledgerSummary{
		Cards:    ledger.SummarizeCards(accounts),
		Payments: ledger.ComputePaymentStats(accounts, txs, bills, now),
		CashFlow: ledger.MonthlyCashFlow(incomes, bills),
		Upcoming: ledger.UpcomingBills(bills, now, days),
	}, nil
}

func printSummary(out io.Writer, s *ledgerSummary, days int) {
	fmt.Fprintln(out, "CREDIT CARDS")
	fmt.Fprintf(out, "  Cards:             %d\n", s.Cards.Cards)
	fmt.Fprintf(out, "  Total owed:        %s\n", money.FormatCurrency(s.Cards.TotalOwed))
	fmt.Fprintf(out, "  Total limit:       %s\n", money.FormatCurrency(s.Cards.TotalLimit))
	fmt.Fprintf(out, "  Available credit:  %s\n", money.FormatCurrency(s.Cards.AvailableCredit))
	fmt.Fprintf(out, "  Utilization:       %s (%s)\n", money.FormatPercentage(s.Cards.Utilization), s.Cards.Rating)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "PAYMENTS (last %d months)\n", ledger.StatsWindowMonths)
	fmt.Fprintf(out, "  Payments:          %d\n", s.Payments.Payments)
	fmt.Fprintf(out, "  Total paid:        %s\n", money.FormatCurrency(s.Payments.TotalPaid))
	fmt.Fprintf(out, "  Average paid:      %s of statement\n", money.FormatPercentage(s.Payments.AveragePaymentRate))
	fmt.Fprintf(out, "  Minimum only:      %d\n", s.Payments.MinimumOnly)
	fmt.Fprintf(out, "  Paid in full:      %d\n", s.Payments.FullPayments)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "MONTHLY CASH FLOW")
	fmt.Fprintf(out, "  Income:            %s\n", money.FormatCurrency(s.CashFlow.MonthlyIncome))
	fmt.Fprintf(out, "  Bills:             %s\n", money.FormatCurrency(s.CashFlow.MonthlyBills))
	fmt.Fprintf(out, "  Surplus:           %s\n", money.FormatCurrency(s.CashFlow.Surplus))
	fmt.Fprintln(out)

	fmt.Fprintf(out, "UPCOMING BILLS (next %d days)\n", days)
	if len(s.Upcoming) == 0 {
		fmt.Fprintln(out, "  none")
	}
	for _, b := range s.Upcoming {
		fmt.Fprintf(out, "  %s  %-20s %12s\n", formatDate(b.DueDate), truncate(b.Name, 20), money.FormatCurrency(b.Amount))
	}
}
