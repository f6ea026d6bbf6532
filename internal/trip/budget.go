package trip

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tripsplit-dev/tripsplit/internal/ledger"
	"github.com/tripsplit-dev/tripsplit/internal/money"
)

// BudgetItem is a planned spending category. Budgets sit beside the
// expenses and never affect balances.
type BudgetItem struct {
	Category string `yaml:"category"`
	Amount   string `yaml:"amount"`
	Currency string `yaml:"currency"`
}

// BudgetTotals is the whole budget expressed in each of the two currencies.
type BudgetTotals struct {
	Trip decimal.Decimal
	Home decimal.Decimal
}

// AddBudget appends a category. Categories are unique, ignoring case.
func (f *File) AddBudget(item BudgetItem) error {
	item.Category = strings.TrimSpace(item.Category)
	if item.Category == "" {
		return fmt.Errorf("budget category is empty: %w", ledger.ErrValidation)
	}
	if f.budgetIndex(item.Category) >= 0 {
		return fmt.Errorf("budget category %q already exists: %w", item.Category, ledger.ErrValidation)
	}

	cur, err := money.Lookup(item.Currency)
	if err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrValidation, err)
	}
	amount, err := money.Parse(item.Amount, cur.Scale)
	if err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrValidation, err)
	}
	if amount.IsNegative() {
		return fmt.Errorf("budget amount %s is negative: %w", amount, ledger.ErrValidation)
	}

	item.Currency = cur.Code
	item.Amount = amount.StringFixed(cur.Scale)
	f.Budget = append(f.Budget, item)
	return nil
}

// RemoveBudget deletes a category by name, ignoring case.
func (f *File) RemoveBudget(category string) (BudgetItem, error) {
	i := f.budgetIndex(strings.TrimSpace(category))
	if i < 0 {
		return BudgetItem{}, fmt.Errorf("budget category %q: %w", category, ledger.ErrNotFound)
	}
	item := f.Budget[i]
	f.Budget = slices.Delete(f.Budget, i, i+1)
	return item, nil
}

func (f *File) budgetIndex(category string) int {
	return slices.IndexFunc(f.Budget, func(b BudgetItem) bool { return strings.EqualFold(b.Category, category) })
}

// TotalBudget sums items into both currencies. rate is home units per trip
// unit; each item is converted and rounded on its own before summing, so the
// totals match the per-item figures a reader would add up. Items must be in
// one of the two currencies.
func TotalBudget(items []BudgetItem, tripCur, homeCur money.Currency, rate decimal.Decimal) (BudgetTotals, error) {
	totals := BudgetTotals{Trip: decimal.Zero, Home: decimal.Zero}
	for _, item := range items {
		switch {
		case strings.EqualFold(item.Currency, tripCur.Code):
			amount, err := money.Parse(item.Amount, tripCur.Scale)
			if err != nil {
				return BudgetTotals{}, fmt.Errorf("budget %q: %w", item.Category, err)
			}
			totals.Trip = totals.Trip.Add(amount)
			totals.Home = totals.Home.Add(money.Convert(amount, rate, homeCur.Scale))
		case strings.EqualFold(item.Currency, homeCur.Code):
			amount, err := money.Parse(item.Amount, homeCur.Scale)
			if err != nil {
				return BudgetTotals{}, fmt.Errorf("budget %q: %w", item.Category, err)
			}
			totals.Home = totals.Home.Add(amount)
			totals.Trip = totals.Trip.Add(money.ConvertBack(amount, rate, tripCur.Scale))
		default:
			return BudgetTotals{}, fmt.Errorf("budget %q is in %s, expected %s or %s: %w",
				item.Category, item.Currency, tripCur.Code, homeCur.Code, ledger.ErrValidation)
		}
	}
	return totals, nil
}
