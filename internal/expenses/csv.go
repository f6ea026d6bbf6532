package expenses

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tripsplit-dev/tripsplit/internal/model"
)

// Header is the CSV header for exported transactions.
// Participant ids are only stable for one load of a trip, so the listing is
// for reading and spreadsheets, not for re-import.
const Header = "seq,id,description,amount,paid_by,split_among,created_at"

const (
	numFields    = 7
	splitSep     = ";"
	colSeq       = 0
	colID        = 1
	colDesc      = 2
	colAmount    = 3
	colPaidBy    = 4
	colSplit     = 5
	colCreatedAt = 6
)

// WriteTransactions writes transactions (including header). Amounts are
// written with exactly scale fractional digits.
func WriteTransactions(w io.Writer, txs []model.Transaction, scale int32) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range txs {
		if err := cw.Write(MarshalTransaction(tx, scale)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(tx model.Transaction, scale int32) []string {
	row := make([]string, numFields)
	row[colSeq] = strconv.FormatUint(tx.Seq, 10)
	row[colID] = tx.ID
	row[colDesc] = tx.Description
	row[colAmount] = tx.Amount.StringFixed(scale)
	row[colPaidBy] = tx.PaidBy
	row[colSplit] = strings.Join(tx.SplitAmong, splitSep)
	if !tx.CreatedAt.IsZero() {
		row[colCreatedAt] = tx.CreatedAt.UTC().Format(time.RFC3339)
	}
	return row
}
