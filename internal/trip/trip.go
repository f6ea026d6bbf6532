// Package trip reads and writes trip.yaml, the hand-editable document the
// CLI keeps participants and expenses in. Participants are referenced by
// name, so names must be unique within a file.
package trip

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tripsplit-dev/tripsplit/internal/ledger"
	"github.com/tripsplit-dev/tripsplit/internal/money"
)

// File represents a trip.yaml document.
type File struct {
	Name         string       `yaml:"name"`
	Currency     string       `yaml:"currency"`
	Participants []string     `yaml:"participants"`
	Expenses     []Expense    `yaml:"expenses,omitempty"`
	Budget       []BudgetItem `yaml:"budget,omitempty"`
}

// Expense is one shared cost. An omitted split_among means everyone.
type Expense struct {
	Description string   `yaml:"description"`
	Amount      string   `yaml:"amount"`
	PaidBy      string   `yaml:"paid_by"`
	SplitAmong  []string `yaml:"split_among,omitempty"`
}

// Load reads a trip file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trip: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing trip: %w", err)
	}
	return &f, nil
}

// Save writes a trip file to disk.
func Save(path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling trip: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing trip: %w", err)
	}
	return nil
}

// Build replays the file into a new Ledger: participants first, then each
// expense through AddTransaction so every ledger invariant is enforced.
func Build(f *File, opts ...ledger.Option) (*ledger.Ledger, error) {
	cur, err := money.Lookup(f.Currency)
	if err != nil {
		return nil, fmt.Errorf("trip currency: %w", err)
	}

	l := ledger.New(append(opts, ledger.WithScale(cur.Scale))...)

	seen := make(map[string]bool, len(f.Participants))
	for _, name := range f.Participants {
		key := strings.TrimSpace(name)
		if seen[key] {
			return nil, fmt.Errorf("duplicate participant %q: %w", key, ledger.ErrValidation)
		}
		seen[key] = true
		if _, err := l.AddParticipant(name); err != nil {
			return nil, err
		}
	}

	for i, e := range f.Expenses {
		if err := AddExpense(l, e); err != nil {
			return nil, fmt.Errorf("expense %d (%s): %w", i+1, e.Description, err)
		}
	}
	return l, nil
}

// AddExpense resolves an expense's names and amount and adds it to l.
func AddExpense(l *ledger.Ledger, e Expense) error {
	amount, err := money.Parse(e.Amount, l.Scale())
	if err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrValidation, err)
	}

	payer, err := l.ParticipantByName(e.PaidBy)
	if err != nil {
		return err
	}

	var split []string
	if e.SplitAmong == nil {
		for _, p := range l.Participants() {
			split = append(split, p.ID)
		}
	} else {
		split, err = ParticipantIDs(l, e.SplitAmong)
		if err != nil {
			return err
		}
	}

	_, err = l.AddTransaction(e.Description, amount, payer.ID, split)
	return err
}

// ParticipantIDs maps participant names to ids, preserving order.
func ParticipantIDs(l *ledger.Ledger, names []string) ([]string, error) {
	ids := make([]string, len(names))
	for i, name := range names {
		p, err := l.ParticipantByName(name)
		if err != nil {
			return nil, err
		}
		ids[i] = p.ID
	}
	return ids, nil
}

// FromLedger renders the ledger's current state as a trip file. Split sets
// are always written out explicitly.
func FromLedger(name, currency string, l *ledger.Ledger) *File {
	snap := l.Snapshot()

	names := make(map[string]string, len(snap.Participants))
	f := &File{
		Name:         name,
		Currency:     currency,
		Participants: make([]string, len(snap.Participants)),
	}
	for i, p := range snap.Participants {
		names[p.ID] = p.Name
		f.Participants[i] = p.Name
	}

	for _, tx := range snap.Transactions {
		split := make([]string, len(tx.SplitAmong))
		for i, pid := range tx.SplitAmong {
			split[i] = names[pid]
		}
		f.Expenses = append(f.Expenses, Expense{
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(snap.Scale),
			PaidBy:      names[tx.PaidBy],
			SplitAmong:  split,
		})
	}
	return f
}
