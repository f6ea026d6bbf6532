// Package settle proposes the payments that clear a set of balances.
package settle

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tripsplit-dev/tripsplit/internal/balance"
	"github.com/tripsplit-dev/tripsplit/internal/ledger"
	"github.com/tripsplit-dev/tripsplit/internal/model"
)

const op = "compute settlement"

type position struct {
	id     string
	amount decimal.Decimal // magnitude, always positive
}

// Plan returns transfers that bring every balance to zero. It repeatedly
// matches the largest debtor with the largest creditor for the smaller of the
// two amounts; ties go to whoever comes first in balances. This needs at
// most n-1 transfers for n non-zero balances.
//
// Balances must sum to exactly zero and name each participant once,
// otherwise Plan fails with ledger.ErrInvariant.
func Plan(balances []model.Balance) ([]model.Transfer, error) {
	seen := make(map[string]bool, len(balances))
	for _, b := range balances {
		if seen[b.ParticipantID] {
			return nil, ledger.Invariant(op, "participant %q appears twice", b.ParticipantID)
		}
		seen[b.ParticipantID] = true
	}
	if total := balance.Sum(balances); !total.IsZero() {
		return nil, ledger.Invariant(op, "balances sum to %s, not zero", total)
	}

	var creditors, debtors []position
	for _, b := range balances {
		switch b.Amount.Sign() {
		case 1:
			creditors = append(creditors, position{id: b.ParticipantID, amount: b.Amount})
		case -1:
			debtors = append(debtors, position{id: b.ParticipantID, amount: b.Amount.Neg()})
		}
	}

	var transfers []model.Transfer
	for len(debtors) > 0 && len(creditors) > 0 {
		d, c := largest(debtors), largest(creditors)
		amount := decimal.Min(debtors[d].amount, creditors[c].amount)

		transfers = append(transfers, model.Transfer{
			From:   debtors[d].id,
			To:     creditors[c].id,
			Amount: amount,
		})

		debtors[d].amount = debtors[d].amount.Sub(amount)
		creditors[c].amount = creditors[c].amount.Sub(amount)
		if debtors[d].amount.IsZero() {
			debtors = slices.Delete(debtors, d, d+1)
		}
		if creditors[c].amount.IsZero() {
			creditors = slices.Delete(creditors, c, c+1)
		}
	}

	if len(debtors) > 0 || len(creditors) > 0 {
		return nil, ledger.Invariant(op, "%d debtor(s) and %d creditor(s) left unmatched", len(debtors), len(creditors))
	}
	return transfers, nil
}

// largest returns the index of the biggest amount, the earliest on ties.
func largest(ps []position) int {
	best := 0
	for i := 1; i < len(ps); i++ {
		if ps[i].amount.GreaterThan(ps[best].amount) {
			best = i
		}
	}
	return best
}

// Apply returns balances after every transfer is paid: the payer's balance
// rises and the receiver's falls. Applying a Plan result yields all zeros.
// Transfers naming unknown participants are ignored.
func Apply(balances []model.Balance, transfers []model.Transfer) []model.Balance {
	out := slices.Clone(balances)
	index := make(map[string]int, len(out))
	for i, b := range out {
		index[b.ParticipantID] = i
	}
	for _, t := range transfers {
		if i, ok := index[t.From]; ok {
			out[i].Amount = out[i].Amount.Add(t.Amount)
		}
		if i, ok := index[t.To]; ok {
			out[i].Amount = out[i].Amount.Sub(t.Amount)
		}
	}
	return out
}
