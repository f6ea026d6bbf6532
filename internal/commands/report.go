package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/balance"
	"github.com/tripsplit-dev/tripsplit/internal/settle"
)

func newBalancesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show what each participant paid, owes, and is owed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.report(runBalances(cmd, a))
		},
	}
}

func runBalances(cmd *cobra.Command, a *app) error {
	f, l, err := a.loadTrip()
	if err != nil {
		return err
	}
	cur := currencyOf(f)

	sheet, err := balance.Of(l)
	if err != nil {
		return err
	}

	names := participantNames(l)

	w := newTable(cmd.OutOrStdout())
	row(w, "NAME", "PAID", "SHARE", "BALANCE")
	for _, s := range sheet.Summaries {
		row(w, names[s.ParticipantID], formatAmount(cur, s.Paid), formatAmount(cur, s.Share), formatAmount(cur, s.Net))
	}
	return w.Flush()
}

func newSettleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "settle",
		Short: "Suggest the payments that settle all balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.report(runSettle(cmd, a))
		},
	}
}

func runSettle(cmd *cobra.Command, a *app) error {
	f, l, err := a.loadTrip()
	if err != nil {
		return err
	}
	cur := currencyOf(f)

	sheet, err := balance.Of(l)
	if err != nil {
		return err
	}
	transfers, err := settle.Plan(sheet.Balances)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(transfers) == 0 {
		fmt.Fprintln(out, "All settled up.")
		return nil
	}

	names := participantNames(l)
	for _, t := range transfers {
		fmt.Fprintf(out, "%s pays %s %s\n", names[t.From], names[t.To], formatAmount(cur, t.Amount))
	}
	return nil
}
