package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/ledger"
	"github.com/tripsplit-dev/tripsplit/internal/model"
	"github.com/tripsplit-dev/tripsplit/internal/trip"
)

func newExpenseCommand(a *app) *cobra.Command {
	expenseCmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses"},
		Short:   "Manage shared expenses",
	}
	expenseCmd.AddCommand(
		newExpenseAddCommand(a),
		&cobra.Command{
			Use:   "rm <number>",
			Short: "Remove an expense by its number in 'expense ls'",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runExpenseRemove(cmd, a, args[0])
			},
		},
		&cobra.Command{
			Use:   "ls",
			Short: "List expenses in the order they were added",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runExpenseList(cmd, a)
			},
		},
	)
	return expenseCmd
}

func newExpenseAddCommand(a *app) *cobra.Command {
	var e trip.Expense

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpenseAdd(cmd, a, e)
		},
	}

	cmd.Flags().StringVar(&e.Description, "desc", "", "what the expense was for")
	cmd.Flags().StringVar(&e.Amount, "amount", "", "amount paid (required)")
	cmd.Flags().StringVar(&e.PaidBy, "paid-by", "", "participant who paid (required)")
	cmd.Flags().StringSliceVar(&e.SplitAmong, "split", nil, "participants sharing the cost, in order (default everyone)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("paid-by")

	return cmd
}

func runExpenseAdd(cmd *cobra.Command, a *app, e trip.Expense) error {
	f, l, err := a.loadTrip()
	if err != nil {
		return err
	}

	if err := trip.AddExpense(l, e); err != nil {
		return err
	}
	txs := l.Transactions()
	tx := txs[len(txs)-1]
	fmt.Fprintf(cmd.OutOrStdout(), "Added expense %d: %s %s\n", tx.Seq, tx.Description, formatAmount(currencyOf(f), tx.Amount))

	return a.saveTrip(f, l)
}

func runExpenseRemove(cmd *cobra.Command, a *app, arg string) error {
	n, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("expense number %q: %w", arg, ledger.ErrValidation)
	}

	f, l, err := a.loadTrip()
	if err != nil {
		return err
	}

	// A freshly loaded trip numbers its expenses 1..n in file order.
	var target *model.Transaction
	for _, tx := range l.Transactions() {
		if tx.Seq == n {
			target = &tx
			break
		}
	}
	if target == nil {
		return fmt.Errorf("expense %d: %w", n, ledger.ErrNotFound)
	}

	if err := l.RemoveTransaction(target.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed expense %d: %s\n", n, target.Description)

	return a.saveTrip(f, l)
}

func runExpenseList(cmd *cobra.Command, a *app) error {
	f, l, err := a.loadTrip()
	if err != nil {
		return err
	}
	cur := currencyOf(f)
	names := participantNames(l)

	w := newTable(cmd.OutOrStdout())
	row(w, "#", "DESCRIPTION", "AMOUNT", "PAID BY", "SPLIT AMONG")
	for _, tx := range l.Transactions() {
		split := make([]string, len(tx.SplitAmong))
		for i, pid := range tx.SplitAmong {
			split[i] = names[pid]
		}
		row(w,
			strconv.FormatUint(tx.Seq, 10),
			tx.Description,
			formatAmount(cur, tx.Amount),
			names[tx.PaidBy],
			strings.Join(split, ", "),
		)
	}
	return w.Flush()
}
