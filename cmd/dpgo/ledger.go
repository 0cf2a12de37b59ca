package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/dpgo/internal/domain"
	"github.com/rgehrsitz/dpgo/internal/money"
	"github.com/rgehrsitz/dpgo/internal/storage"
)

const dateLayout = "2006-01-02"

func ledgerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Manage accounts, transactions, bills and income",
		Long: `Keep a small ledger of accounts and their running balances.

For credit cards the balance is the amount owed: a withdrawal (a purchase)
raises it and a deposit (a payment) lowers it. A transaction with --pay-to
moves money from one account to pay a card.`,
	}

	cmd.AddCommand(
		ledgerAccountCmd(a),
		ledgerTxCmd(a),
		ledgerBillCmd(a),
		ledgerIncomeCmd(a),
	)
	return cmd
}

// withStore opens the ledger for the duration of fn.
func (a *app) withStore(cmd *cobra.Command, fn func(ctx context.Context, store storage.Store, out io.Writer) error) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cmd.Context(), store, cmd.OutOrStdout())
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func ledgerAccountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage ledger accounts",
	}

	var (
		name, accountType   string
		balance, limit, apr float64
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseAccountType(accountType)
			if err != nil {
				return err
			}
			account := &domain.Account{
				Name:           name,
				Type:           t,
				CurrentBalance: money.RoundCents(money.FromFloat(balance)),
				CreditLimit:    money.RoundCents(money.FromFloat(limit)),
				APR:            money.FromFloat(apr),
			}
			return a.withStore(cmd, func(ctx context.Context, store storage.Store, out io.Writer) error {
				if err := store.CreateAccount(ctx, account); err != nil {
					return err
				}
				fmt.Fprintf(out, "Created account %s\n", account.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "Account name")
	add.Flags().StringVar(&accountType, "type", string(domain.AccountChecking), "Account type: checking, savings, credit card, cash, investment, loan")
	add.Flags().Float64Var(&balance, "balance", 0, "Opening balance (amount owed for credit cards)")
	add.Flags().Float64Var(&limit, "limit", 0, "Credit limit")
	add.Flags().Float64Var(&apr, "apr", 0, "Annual percentage rate")
	_ = add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store storage.Store, out io.Writer) error {
				accounts, err := store.ListAccounts(ctx)
				if err != nil {
					return err
				}
				if len(accounts) == 0 {
					fmt.Fprintln(out, "No accounts")
					return nil
				}
				fmt.Fprintf(out, "%-36s  %-20s %-12s %14s %12s %8s\n", "ID", "Name", "Type", "Balance", "Limit", "APR")
				for _, acct := range accounts {
					fmt.Fprintf(out, "%-36s  %-20s %-12s %14s %12s %8s\n",
						acct.ID, truncate(acct.Name, 20), acct.Type,
						money.FormatCurrency(acct.CurrentBalance),
						money.FormatCurrency(acct.CreditLimit),
						money.FormatPercentage(acct.APR))
				}
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete [account-id]",
		Short: "Delete an account with its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store storage.Store, out io.Writer) error {
				if err := store.DeleteAccount(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted account %s\n", args[0])
				return nil
			})
		},
	}

	history := &cobra.Command{
		Use:   "history [account-id]",
		Short: "Show the balance history of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store storage.Store, out io.Writer) error {
				entries, err := store.BalanceHistory(ctx, args[0])
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Fprintf(out, "%s  %14s\n", e.Date.Format(time.DateTime), money.FormatCurrency(e.Balance))
				}
				return nil
			})
		},
	}

	cmd.AddCommand(add, list, del, history)
	return cmd
}

func ledgerTxCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and list transactions",
	}

	var (
		accountID, txType, date, description, category, payTo, billID string
		amount                                                        float64
		minimum                                                       bool
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction and update running balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseTransactionType(txType)
			if err != nil {
				return err
			}
			when, err := parseDate(date)
			if err != nil {
				return err
			}
			tx := &domain.Transaction{
				AccountID:          accountID,
				Type:               t,
				Amount:             money.RoundCents(money.FromFloat(amount)),
				Date:               when,
				Description:        description,
				Category:           category,
				BillID:             billID,
				PaymentToAccountID: payTo,
				IsMinimumPayment:   minimum,
			}
			return a.withStore(cmd, func(ctx context.Context, store storage.Store, out io.Writer) error {
				if err := store.CreateTransaction(ctx, tx); err != nil {
					return err
				}
				fmt.Fprintf(out, "Recorded transaction %s\n", tx.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&accountID, "account", "", "Account the money moves from or to")
	add.Flags().StringVar(&txType, "type", string(domain.Withdrawal), "Transaction type: deposit, withdrawal, transfer")
	add.Flags().Float64Var(&amount, "amount", 0, "Amount (always positive)")
	add.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD (default today)")
	add.Flags().StringVar(&description, "description", "", "Description")
	add.Flags().StringVar(&category, "category", "", "Category ("+strings.Join(domain.TransactionCategories, ", ")+")")
	add.Flags().StringVar(&payTo, "pay-to", "", "Credit card account this transaction pays")
	add.Flags().StringVar(&billID, "bill", "", "Bill this transaction pays")
	add.Flags().BoolVar(&minimum, "minimum", false, "Mark as a minimum payment")
	_ = add.MarkFlagRequired("account")
	_ = add.MarkFlagRequired("amount")

	var listAccount string
	list := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store storage.Store, out io.Writer) error {
				txs, err := store.ListTransactions(ctx, listAccount)
				if err != nil {
					return err
				}
				if len(txs) == 0 {
					fmt.Fprintln(out, "No transactions")
					return nil
				}
				for _, tx := range txs {
					fmt.Fprintf(out, "%s  %-10s  %-10s %12s  %s\n",
						formatDate(tx.Date), tx.Type, truncate(tx.Category, 10),
						money.FormatCurrency(tx.Amount), tx.Description)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&listAccount, "account", "", "Only transactions touching this account")

	del := &cobra.Command{
		Use:   "delete [transaction-id]",
		Short: "Delete a transaction and reverse its balance effects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store storage.Store, out io.Writer) error {
				if err := store.DeleteTransaction(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted transaction %s\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(add, list, del)
	return cmd
}

func ledgerBillCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Manage bills",
	}

	var (
		name, due, frequency, accountID, category string
		amount                                    float64
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a bill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			freq, err := domain.ParseFrequency(frequency)
			if err != nil {
				return err
			}
			dueDate, err := parseDate(due)
			if err != nil {
				return err
			}
			bill := &domain.Bill{
				Name:      name,
				Amount:    money.RoundCents(money.FromFloat(amount)),
				DueDate:   dueDate,
				Frequency: freq,
				Category:  category,
				AccountID: accountID,
			}
			return a.withStore(cmd, func(ctx context.Context, store storage.Store, out io.Writer) error {
				if err := store.CreateBill(ctx, bill); err != nil {
					return err
				}
				fmt.Fprintf(out, "Created bill %s\n", bill.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "Bill name")
	add.Flags().Float64Var(&amount, "amount", 0, "Amount due (the statement balance for a card)")
	add.Flags().StringVar(&due, "due", "", "Due date as YYYY-MM-DD")
	add.Flags().StringVar(&frequency, "frequency", string(domain.Monthly), "Frequency: weekly, bi-weekly, monthly, quarterly, annually, once")
	add.Flags().StringVar(&accountID, "account", "", "Account the bill belongs to")
	add.Flags().StringVar(&category, "category", "", "Category")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("due")

	list := &cobra.Command{
		Use:   "list",
		Short: "List bills by due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store storage.Store, out io.Writer) error {
				bills, err := store.ListBills(ctx)
				if err != nil {
					return err
				}
				if len(bills) == 0 {
					fmt.Fprintln(out, "No bills")
					return nil
				}
				for _, b := range bills {
					status := "due"
					if b.Paid {
						status = "paid"
					}
					fmt.Fprintf(out, "%-36s  %s  %-20s %12s  %-10s %s\n",
						b.ID, formatDate(b.DueDate), truncate(b.Name, 20),
						money.FormatCurrency(b.Amount), b.Frequency, status)
				}
				return nil
			})
		},
	}

	var unpaid bool
	pay := &cobra.Command{
		Use:   "pay [bill-id]",
		Short: "Mark a bill as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store storage.Store, out io.Writer) error {
				if err := store.MarkBillPaid(ctx, args[0], !unpaid); err != nil {
					return err
				}
				if unpaid {
					fmt.Fprintf(out, "Bill %s marked unpaid\n", args[0])
				} else {
					fmt.Fprintf(out, "Bill %s marked paid\n", args[0])
				}
				return nil
			})
		},
	}
	pay.Flags().BoolVar(&unpaid, "unpaid", false, "Mark the bill unpaid instead")

	cmd.AddCommand(add, list, pay)
	return cmd
}

func ledgerIncomeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Manage income sources",
	}

	var (
		name, frequency, next, accountID string
		amount                           float64
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an income source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			freq, err := domain.ParseFrequency(frequency)
			if err != nil {
				return err
			}
			nextDate, err := parseDate(next)
			if err != nil {
				return err
			}
			income := &domain.IncomeSource{
				Name:      name,
				Amount:    money.RoundCents(money.FromFloat(amount)),
				Frequency: freq,
				NextDate:  nextDate,
				AccountID: accountID,
			}
			return a.withStore(cmd, func(ctx context.Context, store storage.Store, out io.Writer) error {
				if err := store.CreateIncome(ctx, income); err != nil {
					return err
				}
				fmt.Fprintf(out, "Created income %s\n", income.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "Income name")
	add.Flags().Float64Var(&amount, "amount", 0, "Amount per payment")
	add.Flags().StringVar(&frequency, "frequency", string(domain.Monthly), "Frequency: weekly, bi-weekly, monthly, quarterly, annually, once")
	add.Flags().StringVar(&next, "next", "", "Next payment date as YYYY-MM-DD")
	add.Flags().StringVar(&accountID, "account", "", "Account the income is paid into")
	_ = add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List income sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store storage.Store, out io.Writer) error {
				incomes, err := store.ListIncome(ctx)
				if err != nil {
					return err
				}
				if len(incomes) == 0 {
					fmt.Fprintln(out, "No income sources")
					return nil
				}
				for _, in := range incomes {
					fmt.Fprintf(out, "%-36s  %-20s %12s  %-10s next %s\n",
						in.ID, truncate(in.Name, 20), money.FormatCurrency(in.Amount), in.Frequency, formatDate(in.NextDate))
				}
				return nil
			})
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}
