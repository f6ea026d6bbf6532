package model

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a shared expense paid by one participant and split
// evenly among a set of participants.
type Transaction struct {
	ID          string
	Seq         uint64 // insertion order, never reused
	Description string
	Amount      decimal.Decimal
	PaidBy      string
	SplitAmong  []string
	CreatedAt   time.Time
}

// References reports whether the transaction names participantID as payer
// or as one of the sharers.
func (t Transaction) References(participantID string) bool {
	return t.PaidBy == participantID || slices.Contains(t.SplitAmong, participantID)
}

// Clone returns a copy whose SplitAmong does not alias t's.
func (t Transaction) Clone() Transaction {
	t.SplitAmong = slices.Clone(t.SplitAmong)
	return t
}
