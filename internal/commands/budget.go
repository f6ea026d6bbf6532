package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/ledger"
	"github.com/tripsplit-dev/tripsplit/internal/money"
	"github.com/tripsplit-dev/tripsplit/internal/trip"
)

func newBudgetCommand(a *app) *cobra.Command {
	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Plan spending by category",
	}

	var item trip.BudgetItem
	addCmd := &cobra.Command{
		Use:   "add <category>",
		Short: "Add a budget category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item.Category = args[0]
			return runBudgetAdd(cmd, a, item)
		},
	}
	addCmd.Flags().StringVar(&item.Amount, "amount", "", "planned amount (required)")
	addCmd.Flags().StringVar(&item.Currency, "currency", "", "trip or home currency (default trip currency)")
	_ = addCmd.MarkFlagRequired("amount")

	budgetCmd.AddCommand(
		addCmd,
		&cobra.Command{
			Use:   "rm <category>",
			Short: "Remove a budget category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBudgetRemove(cmd, a, args[0])
			},
		},
		&cobra.Command{
			Use:   "ls",
			Short: "List budget categories with totals in both currencies",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBudgetList(cmd, a)
			},
		},
	)
	return budgetCmd
}

func runBudgetAdd(cmd *cobra.Command, a *app, item trip.BudgetItem) error {
	f, l, err := a.loadTrip()
	if err != nil {
		return err
	}

	if item.Currency == "" {
		item.Currency = f.Currency
	}
	if !a.budgetCurrency(f, item.Currency) {
		return fmt.Errorf("budget currency must be %s or %s: %w", f.Currency, a.cfg.Exchange.HomeCurrency, ledger.ErrValidation)
	}
	if err := f.AddBudget(item); err != nil {
		return err
	}
	added := f.Budget[len(f.Budget)-1]
	cur, _ := money.Lookup(added.Currency)
	fmt.Fprintf(cmd.OutOrStdout(), "Budgeted %s for %s\n", formatAmount(cur, decimalOf(added.Amount)), added.Category)

	return a.saveTrip(f, l)
}

func runBudgetRemove(cmd *cobra.Command, a *app, category string) error {
	f, l, err := a.loadTrip()
	if err != nil {
		return err
	}

	item, err := f.RemoveBudget(category)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed budget %s\n", item.Category)

	return a.saveTrip(f, l)
}

func runBudgetList(cmd *cobra.Command, a *app) error {
	f, _, err := a.loadTrip()
	if err != nil {
		return err
	}

	tripCur := currencyOf(f)
	homeCur, err := money.Lookup(a.cfg.Exchange.HomeCurrency)
	if err != nil {
		return err
	}
	rate, err := a.cfg.ExchangeRate()
	if err != nil {
		return err
	}

	totals, err := trip.TotalBudget(f.Budget, tripCur, homeCur, rate)
	if err != nil {
		return err
	}

	w := newTable(cmd.OutOrStdout())
	row(w, "CATEGORY", "AMOUNT")
	for _, item := range f.Budget {
		cur, err := money.Lookup(item.Currency)
		if err != nil {
			return err
		}
		row(w, item.Category, formatAmount(cur, decimalOf(item.Amount)))
	}
	row(w, "TOTAL", formatAmount(tripCur, totals.Trip)+" ≈ "+formatAmount(homeCur, totals.Home))
	return w.Flush()
}

// budgetCurrency reports whether code is the trip or home currency. Unknown
// codes pass through so AddBudget can reject them.
func (a *app) budgetCurrency(f *trip.File, code string) bool {
	cur, err := money.Lookup(code)
	if err != nil {
		return true
	}
	home, err := money.Lookup(a.cfg.Exchange.HomeCurrency)
	if err != nil {
		return false
	}
	return cur.Code == currencyOf(f).Code || cur.Code == home.Code
}
