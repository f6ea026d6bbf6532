package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/money"
)

func newConvertCommand(a *app) *cobra.Command {
	var rateFlag string
	var reverse bool

	cmd := &cobra.Command{
		Use:   "convert <amount>",
		Short: "Convert between the trip currency and the home currency at a fixed rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := money.Lookup(a.cfg.Trip.Currency)
			if err != nil {
				return err
			}
			to, err := money.Lookup(a.cfg.Exchange.HomeCurrency)
			if err != nil {
				return err
			}

			rate, err := a.cfg.ExchangeRate()
			if err != nil {
				return err
			}
			if rateFlag != "" {
				rate, err = decimal.NewFromString(rateFlag)
				if err != nil || !rate.IsPositive() {
					return fmt.Errorf("invalid rate %q", rateFlag)
				}
			}

			if reverse {
				from, to = to, from
			}
			amount, err := money.Parse(args[0], from.Scale)
			if err != nil {
				return err
			}

			var converted decimal.Decimal
			if reverse {
				converted = money.ConvertBack(amount, rate, to.Scale)
			} else {
				converted = money.Convert(amount, rate, to.Scale)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", formatAmount(from, amount), formatAmount(to, converted))
			return nil
		},
	}

	cmd.Flags().StringVar(&rateFlag, "rate", "", "override the configured rate (home units per trip unit)")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "convert from the home currency to the trip currency")
	return cmd
}
