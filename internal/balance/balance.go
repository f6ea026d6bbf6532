// Package balance derives each participant's net position from ledger state.
// Balances are never cached: every call recomputes from the full
// transaction sequence.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/tripsplit-dev/tripsplit/internal/ledger"
	"github.com/tripsplit-dev/tripsplit/internal/model"
	"github.com/tripsplit-dev/tripsplit/internal/money"
)

const op = "compute balances"

// Summary breaks a participant's net balance into what they paid and what
// their shares of expenses came to.
type Summary struct {
	ParticipantID string
	Paid          decimal.Decimal
	Share         decimal.Decimal
	Net           decimal.Decimal // Paid - Share
}

// Sheet is the result of a balance computation.
type Sheet struct {
	Balances  []model.Balance // participant insertion order
	Summaries []Summary       // same order as Balances
}

// Of computes balances for the current state of l.
func Of(l *ledger.Ledger) (Sheet, error) {
	return Compute(l.Snapshot())
}

// Compute credits each transaction's amount to its payer and debits one
// share to each member of its split set. Shares come from money.Split, so
// the remainder units of an uneven split go to the first members of the
// split set and every transaction nets to exactly zero.
func Compute(snap ledger.Snapshot) (Sheet, error) {
	index := make(map[string]int, len(snap.Participants))
	sums := make([]Summary, len(snap.Participants))
	for i, p := range snap.Participants {
		index[p.ID] = i
		sums[i] = Summary{ParticipantID: p.ID, Paid: decimal.Zero, Share: decimal.Zero}
	}

	for _, tx := range snap.Transactions {
		payer, ok := index[tx.PaidBy]
		if !ok {
			return Sheet{}, ledger.Invariant(op, "transaction %s paid by unknown participant %q", tx.ID, tx.PaidBy)
		}

		shares, err := money.Split(tx.Amount, len(tx.SplitAmong), snap.Scale)
		if err != nil {
			return Sheet{}, ledger.Invariant(op, "transaction %s: %v", tx.ID, err)
		}

		sums[payer].Paid = sums[payer].Paid.Add(tx.Amount)
		for i, pid := range tx.SplitAmong {
			j, ok := index[pid]
			if !ok {
				return Sheet{}, ledger.Invariant(op, "transaction %s split with unknown participant %q", tx.ID, pid)
			}
			sums[j].Share = sums[j].Share.Add(shares[i])
		}
	}

	sheet := Sheet{
		Balances:  make([]model.Balance, len(sums)),
		Summaries: sums,
	}
	for i := range sums {
		sums[i].Net = sums[i].Paid.Sub(sums[i].Share)
		sheet.Balances[i] = model.Balance{ParticipantID: sums[i].ParticipantID, Amount: sums[i].Net}
	}

	if total := sheet.Sum(); !total.IsZero() {
		return Sheet{}, ledger.Invariant(op, "balances sum to %s, not zero", total)
	}
	return sheet, nil
}

// Sum adds all balances. Always zero for a sheet returned by Compute.
func (s Sheet) Sum() decimal.Decimal {
	return Sum(s.Balances)
}

// Map returns balances keyed by participant id.
func (s Sheet) Map() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(s.Balances))
	for _, b := range s.Balances {
		m[b.ParticipantID] = b.Amount
	}
	return m
}

// Of returns a participant's balance, and false if the id is not on the sheet.
func (s Sheet) Of(participantID string) (decimal.Decimal, bool) {
	for _, b := range s.Balances {
		if b.ParticipantID == participantID {
			return b.Amount, true
		}
	}
	return decimal.Zero, false
}

// Sum adds a list of balances.
func Sum(balances []model.Balance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Amount)
	}
	return total
}
