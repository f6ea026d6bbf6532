package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/tripsplit-dev/tripsplit/internal/money"
)

// formatAmount renders d with the currency symbol and minor-unit digits,
// e.g. "¥1500", "-RM3.34".
func formatAmount(cur money.Currency, d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + cur.Symbol + d.Abs().StringFixed(cur.Scale)
}

// decimalOf parses an amount already checked by the trip package.
func decimalOf(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func row(w io.Writer, cols ...string) {
	fmt.Fprintln(w, strings.Join(cols, "\t"))
}
