package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tripsplit-dev/tripsplit/internal/trip"
)

// NativeParser parses tripsplit's own expense sheet:
//
//	description,amount,paid_by,split_among
//	dinner,12000,Aiko,Aiko;Ben;Chen
//
// Participants are given by name. An empty split_among means everyone.
type NativeParser struct{}

const (
	nativeNumFields = 4
	nativeColDesc   = 0
	nativeColAmount = 1
	nativeColPaidBy = 2
	nativeColSplit  = 3
)

// Format returns the parser name.
func (p *NativeParser) Format() string { return "tripsplit" }

// Parse reads the CSV and returns expenses in file order. Amounts are left
// as text; they are checked against the trip currency when applied.
func (p *NativeParser) Parse(r io.Reader) ([]trip.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = nativeNumFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading tripsplit CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if err := checkNativeHeader(records[0]); err != nil {
		return nil, err
	}

	var expenses []trip.Expense
	for i, rec := range records[1:] {
		e, err := parseNativeRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// nativeColumns is the required first row.
var nativeColumns = []string{"description", "amount", "paid_by", "split_among"}

func checkNativeHeader(rec []string) error {
	for i, want := range nativeColumns {
		if !strings.EqualFold(strings.TrimSpace(rec[i]), want) {
			return fmt.Errorf("row 1: expected header %q, got %q", strings.Join(nativeColumns, ","), strings.Join(rec, ","))
		}
	}
	return nil
}

func parseNativeRow(rec []string) (trip.Expense, error) {
	paidBy := strings.TrimSpace(rec[nativeColPaidBy])
	if paidBy == "" {
		return trip.Expense{}, fmt.Errorf("missing paid_by")
	}
	amount := strings.TrimSpace(rec[nativeColAmount])
	if amount == "" {
		return trip.Expense{}, fmt.Errorf("missing amount")
	}

	var split []string
	if s := strings.TrimSpace(rec[nativeColSplit]); s != "" {
		for _, name := range strings.Split(s, ";") {
			split = append(split, strings.TrimSpace(name))
		}
	}

	return trip.Expense{
		Description: rec[nativeColDesc],
		Amount:      amount,
		PaidBy:      paidBy,
		SplitAmong:  split,
	}, nil
}
