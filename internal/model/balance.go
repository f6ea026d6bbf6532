package model

import "github.com/shopspring/decimal"

// Balance is a participant's net position.
// Positive = is owed money, negative = owes money.
type Balance struct {
	ParticipantID string
	Amount        decimal.Decimal
}

// Transfer is a single settling payment from a debtor to a creditor.
type Transfer struct {
	From   string
	To     string
	Amount decimal.Decimal
}
